package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
)

// assetIDPattern matches CoinGecko style identifiers such as "bitcoin" or "avalanche-2".
var assetIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Error collects per-field validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// ValidateAssetID checks that id is a non-empty lowercase asset identifier.
func ValidateAssetID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: identifier cannot be empty", apperrors.ErrInvalidAssetID)
	}
	if !assetIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q must be lowercase letters, digits, '.', '_' or '-'", apperrors.ErrInvalidAssetID, id)
	}
	return nil
}

// ValidateHoldingFields checks the raw fields of a holding record.
// Amount and buy price are required; amount must not be negative.
func ValidateHoldingFields(amount, buyPrice *decimal.Decimal) error {
	errors := make(map[string]string)

	if amount == nil {
		errors["amount"] = "amount is required"
	} else if amount.IsNegative() {
		errors["amount"] = "amount cannot be negative"
	}

	if buyPrice == nil {
		errors["buy_price"] = "buy_price is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
