package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
)

func TestValidateAssetID(t *testing.T) {
	valid := []string{"bitcoin", "avalanche-2", "usd-coin", "matic_network", "0x", "wrapped.eth"}
	for _, id := range valid {
		assert.NoError(t, ValidateAssetID(id), id)
	}

	invalid := []string{"", "Bitcoin", "BTC", "bit coin", "-bitcoin", "bitcoin/eth", "ビットコイン"}
	for _, id := range invalid {
		assert.ErrorIs(t, ValidateAssetID(id), apperrors.ErrInvalidAssetID, id)
	}
}

func TestValidateHoldingFields(t *testing.T) {
	one := decimal.NewFromInt(1)
	zero := decimal.Zero
	negative := decimal.NewFromInt(-1)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateHoldingFields(&one, &one))
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		assert.NoError(t, ValidateHoldingFields(&zero, &one))
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		err := ValidateHoldingFields(nil, nil)

		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
		assert.True(t, strings.HasPrefix(err.Error(), "amount: "))
	})

	t.Run("negative amount", func(t *testing.T) {
		err := ValidateHoldingFields(&negative, &one)

		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "amount")
	})
}
