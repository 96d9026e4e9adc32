package coingecko

import "github.com/shopspring/decimal"

// SimplePriceResponse is the raw body of the /simple/price endpoint:
//
//	{"bitcoin": {"usd": 25000, "inr": 2075000}}
//
// A currency may be null or absent when CoinGecko has no price for it.
type SimplePriceResponse map[string]map[string]*decimal.Decimal

// errorResponse is the body CoinGecko returns on most failures.
type errorResponse struct {
	Error  string `json:"error"`
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}

func (e errorResponse) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Status.ErrorMessage
}
