// Package presenter turns a valuation into display strings and renders the
// dashboard as Markdown, HTML or terminal output.
package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
)

// Page texts.
const (
	Title   = "💼 Real-Time Crypto Portfolio Tracker"
	Caption = "Built with Go and the CoinGecko API"
)

// TimestampLayout is the layout of the last refreshed timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// DisplayRow is one table row, every cell already formatted.
type DisplayRow struct {
	Token          string `json:"token"`
	Amount         string `json:"amount"`
	BuyPrice       string `json:"buyPrice"`
	CurrentPrice   string `json:"currentPrice"`
	Value          string `json:"value"`
	GainLoss       string `json:"gainLoss"`
	ValueSecondary string `json:"valueSecondary"`
}

// Metric is a labelled summary value.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dashboard is the display model handed to the renderers.
type Dashboard struct {
	Title       string       `json:"title"`
	Caption     string       `json:"caption"`
	Columns     []string     `json:"columns"`
	Rows        []DisplayRow `json:"rows"`
	Summary     []Metric     `json:"summary"`
	Alerts      []string     `json:"alerts"`
	Notices     []string     `json:"notices,omitempty"`
	Error       string       `json:"error,omitempty"`
	LastUpdated string       `json:"lastUpdated"`
	RefreshID   string       `json:"refreshId,omitempty"`
}

// Columns returns the table headers for the given currencies.
func Columns(c model.Currencies) []string {
	p, s := strings.ToUpper(c.Primary), strings.ToUpper(c.Secondary)
	return []string{
		"Token",
		"Amount",
		fmt.Sprintf("Buy Price (%s)", p),
		fmt.Sprintf("Current Price (%s)", p),
		fmt.Sprintf("Value (%s)", p),
		fmt.Sprintf("Gain/Loss (%s)", p),
		fmt.Sprintf("Value (%s)", s),
	}
}

// NewDashboard formats a valuation for display.
func NewDashboard(v model.Valuation) Dashboard {
	primary, secondary := v.Currencies.Primary, v.Currencies.Secondary

	rows := make([]DisplayRow, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = DisplayRow{
			Token:          r.TokenLabel,
			Amount:         r.Amount.String(),
			BuyPrice:       FormatUnitPrice(r.BuyPrice, primary),
			CurrentPrice:   FormatUnitPrice(r.CurrentPricePrimary, primary),
			Value:          FormatMoney(r.ValuePrimary, primary),
			GainLoss:       FormatMoney(r.GainPrimary, primary),
			ValueSecondary: FormatMoney(r.ValueSecondary, secondary),
		}
	}

	alerts := make([]string, len(v.Alerts))
	for i, a := range v.Alerts {
		alerts[i] = AlertMessage(a, primary)
	}

	var notices []string
	for _, id := range v.Skipped {
		notices = append(notices, fmt.Sprintf("No price available for %s, holding not included.", strings.ToUpper(id)))
	}

	return Dashboard{
		Title:   Title,
		Caption: Caption,
		Columns: Columns(v.Currencies),
		Rows:    rows,
		Summary: []Metric{
			{
				Label: fmt.Sprintf("📊 Total Portfolio Value (%s)", strings.ToUpper(primary)),
				Value: FormatMoney(v.Summary.TotalValuePrimary, primary),
			},
			{
				Label: fmt.Sprintf("💹 Total Portfolio Value (%s)", strings.ToUpper(secondary)),
				Value: FormatMoney(v.Summary.TotalValueSecondary, secondary),
			},
		},
		Alerts:      alerts,
		Notices:     notices,
		LastUpdated: v.RefreshedAt.Format(TimestampLayout),
		RefreshID:   v.RefreshID,
	}
}

// ErrorDashboard is shown instead of the table when a refresh fails.
func ErrorDashboard(err error, currencies model.Currencies, now time.Time) Dashboard {
	return Dashboard{
		Title:       Title,
		Caption:     Caption,
		Columns:     Columns(currencies),
		Rows:        []DisplayRow{},
		Alerts:      []string{},
		Error:       err.Error(),
		LastUpdated: now.Format(TimestampLayout),
	}
}

// AlertMessage renders an alert event, e.g. "🚨 BITCOIN crossed $24,000.00! Current: $25,000.00".
func AlertMessage(a model.AlertEvent, currency string) string {
	return fmt.Sprintf("🚨 %s crossed %s! Current: %s",
		strings.ToUpper(a.ID),
		FormatMoney(a.Threshold, currency),
		FormatMoney(a.CurrentPrice, currency),
	)
}
