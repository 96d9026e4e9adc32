package presenter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
)

var testCurrencies = model.Currencies{Primary: "usd", Secondary: "inr"}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bitcoinValuation() model.Valuation {
	return model.Valuation{
		RefreshID:  "6a1f1a7e-1d63-4a4b-9d4e-1f1f0d6c1b01",
		Currencies: testCurrencies,
		Rows: []model.ValuationRow{
			{
				ID:                    "bitcoin",
				TokenLabel:            "Bitcoin",
				Amount:                d("2"),
				BuyPrice:              d("20000"),
				CurrentPricePrimary:   d("25000"),
				CurrentPriceSecondary: d("2075000"),
				ValuePrimary:          d("50000"),
				ValueSecondary:        d("4150000"),
				GainPrimary:           d("10000"),
			},
		},
		Summary: model.PortfolioSummary{
			TotalValuePrimary:   d("50000"),
			TotalValueSecondary: d("4150000"),
		},
		Alerts: []model.AlertEvent{
			{ID: "bitcoin", Threshold: d("24000"), CurrentPrice: d("25000")},
		},
		RefreshedAt: time.Date(2026, 10, 19, 14, 5, 9, 0, time.UTC),
	}
}

func TestNewDashboard(t *testing.T) {
	dash := NewDashboard(bitcoinValuation())

	assert.Equal(t, []string{
		"Token", "Amount", "Buy Price (USD)", "Current Price (USD)",
		"Value (USD)", "Gain/Loss (USD)", "Value (INR)",
	}, dash.Columns)

	require.Len(t, dash.Rows, 1)
	assert.Equal(t, DisplayRow{
		Token:          "Bitcoin",
		Amount:         "2",
		BuyPrice:       "$20,000.00",
		CurrentPrice:   "$25,000.00",
		Value:          "$50,000.00",
		GainLoss:       "$10,000.00",
		ValueSecondary: "₹4,150,000.00",
	}, dash.Rows[0])

	require.Len(t, dash.Summary, 2)
	assert.Equal(t, "📊 Total Portfolio Value (USD)", dash.Summary[0].Label)
	assert.Equal(t, "$50,000.00", dash.Summary[0].Value)
	assert.Equal(t, "💹 Total Portfolio Value (INR)", dash.Summary[1].Label)
	assert.Equal(t, "₹4,150,000.00", dash.Summary[1].Value)

	assert.Equal(t, []string{"🚨 BITCOIN crossed $24,000.00! Current: $25,000.00"}, dash.Alerts)
	assert.Equal(t, "2026-10-19 14:05:09", dash.LastUpdated)
	assert.Empty(t, dash.Error)
}

func TestNewDashboard_SubCentPrices(t *testing.T) {
	v := bitcoinValuation()
	v.Rows = []model.ValuationRow{{
		ID:                    "shiba-inu",
		TokenLabel:            "Shiba-inu",
		Amount:                d("1000000"),
		BuyPrice:              d("0.000005"),
		CurrentPricePrimary:   d("0.00000812"),
		CurrentPriceSecondary: d("0.000675"),
		ValuePrimary:          d("8.12"),
		ValueSecondary:        d("675"),
		GainPrimary:           d("3.12"),
	}}

	row := NewDashboard(v).Rows[0]

	assert.Equal(t, "$0.000005", row.BuyPrice)
	assert.Equal(t, "$0.00000812", row.CurrentPrice)
	assert.Equal(t, "$8.12", row.Value)
	assert.Equal(t, "$3.12", row.GainLoss)
}

func TestNewDashboard_Skipped(t *testing.T) {
	v := bitcoinValuation()
	v.Skipped = []string{"ethereum"}

	dash := NewDashboard(v)

	assert.Equal(t, []string{"No price available for ETHEREUM, holding not included."}, dash.Notices)
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, NewDashboard(bitcoinValuation())))
	out := buf.String()

	assert.Contains(t, out, "# "+Title)
	assert.Contains(t, out, "| Token | Amount | Buy Price (USD) |")
	assert.Contains(t, out, "| Bitcoin | 2 | $20,000.00 | $25,000.00 | $50,000.00 | $10,000.00 | ₹4,150,000.00 |")
	assert.Contains(t, out, "- **📊 Total Portfolio Value (USD):** $50,000.00")
	assert.Contains(t, out, "## ⚠️ Alerts Triggered:")
	assert.Contains(t, out, "- 🚨 BITCOIN crossed $24,000.00! Current: $25,000.00")
	assert.Contains(t, out, "Last updated: 2026-10-19 14:05:09")
}

func TestRenderMarkdown_NoAlerts(t *testing.T) {
	v := bitcoinValuation()
	v.Alerts = nil

	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, NewDashboard(v)))

	assert.NotContains(t, buf.String(), "Alerts Triggered")
}

func TestRenderHTML(t *testing.T) {
	t.Run("renders the table and summary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderHTML(&buf, NewDashboard(bitcoinValuation())))
		out := buf.String()

		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
		assert.Contains(t, out, "<table>")
		assert.Contains(t, out, "Bitcoin")
		assert.Contains(t, out, "$50,000.00")
		assert.Contains(t, out, "₹4,150,000.00")
		assert.Contains(t, out, "BITCOIN crossed $24,000.00")
	})

	t.Run("renders a visible error state and escapes the message", func(t *testing.T) {
		dash := ErrorDashboard(errors.New("quote service error: <script>alert(1)</script>"), testCurrencies,
			time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))

		var buf bytes.Buffer
		require.NoError(t, RenderHTML(&buf, dash))
		out := buf.String()

		assert.Contains(t, out, "Refresh failed")
		assert.Contains(t, out, "quote service error")
		assert.NotContains(t, out, "<script>")
		assert.NotContains(t, out, "<table>")
		assert.Contains(t, out, "2026-10-19 08:00:00")
	})
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal(NewDashboard(bitcoinValuation()), "notty")
	require.NoError(t, err)

	assert.Contains(t, out, "Bitcoin")
	assert.Contains(t, out, "Last updated")
}
