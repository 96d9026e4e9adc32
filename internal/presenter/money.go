package presenter

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayFraction is the number of decimals shown for every amount of money.
const displayFraction = 2

// maxUnitFraction caps the decimals shown for a unit price.
const maxUnitFraction = 8

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// FormatMoney renders d in the given currency with the currency symbol, thousands
// separators and exactly two decimals, e.g. "$50,000.00" or "₹4,150,000.00".
// Rounding happens here and nowhere else.
func FormatMoney(d decimal.Decimal, currencyCode string) string {
	f := moneyFormatter(currencyCode)

	rounded := d.Round(displayFraction)
	minor := rounded.Shift(displayFraction)
	if minor.GreaterThan(maxMinor) || minor.LessThanOrEqual(minMinor) {
		return formatDecimal(f, rounded, displayFraction)
	}
	return f.Format(minor.IntPart())
}

// FormatUnitPrice renders a per-coin price. It shows at least two decimals and
// up to eight, so sub-cent quotes such as "$0.00000812" stay readable.
func FormatUnitPrice(d decimal.Decimal, currencyCode string) string {
	places := int32(displayFraction)
	if _, frac, ok := strings.Cut(d.String(), "."); ok && int32(len(frac)) > places {
		places = min(int32(len(frac)), maxUnitFraction)
	}
	return formatDecimal(moneyFormatter(currencyCode), d.Round(places), places)
}

func moneyFormatter(currencyCode string) *money.Formatter {
	code := strings.ToUpper(currencyCode)
	cur := money.GetCurrency(code)
	if cur == nil {
		return money.NewFormatter(displayFraction, ".", ",", code+" ", "$1")
	}
	return money.NewFormatter(displayFraction, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
}

// formatDecimal lays out d the way money.Formatter does, working from the decimal
// string so neither the int64 range nor the currency's fraction limits it.
func formatDecimal(f *money.Formatter, d decimal.Decimal, places int32) string {
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(places), ".")
	if f.Thousand != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + f.Thousand + whole[i:]
		}
	}
	s := strings.Replace(f.Template, "1", whole+f.Decimal+frac, 1)
	s = strings.Replace(s, "$", f.Grapheme, 1)
	if d.IsNegative() {
		s = "-" + s
	}
	return s
}
