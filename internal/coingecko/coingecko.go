package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
)

// DefaultBaseURL is the public CoinGecko API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// maxBodySize bounds the response body read from CoinGecko.
const maxBodySize = 4 << 20

// Client defines the interface for fetching quotes.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	FetchPrices(ctx context.Context, ids []string) (model.QuoteSet, error)
}

// Options configures a FinanceClient.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Currencies model.Currencies
}

// FinanceClient fetches unit prices for a batch of asset identifiers from the
// CoinGecko simple price endpoint.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	currencies model.Currencies
	group      singleflight.Group
}

// NewFinanceClient creates a new CoinGecko client.
// A zero timeout falls back to 10 seconds; the client never waits without a deadline.
func NewFinanceClient(opts Options) *FinanceClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &FinanceClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		currencies: opts.Currencies,
	}
}

// Currencies returns the primary and secondary currency codes requested.
func (c *FinanceClient) Currencies() model.Currencies {
	return c.currencies
}

// FetchPrices returns the current quotes of ids in one batched request.
//
// Identifiers absent from the response, or lacking either currency, are left out of
// the returned QuoteSet; deciding what to do about them is up to the caller.
// Concurrent calls for the same batch share a single upstream request. A caller
// whose ctx ends stops waiting without cancelling the request for the others.
//
// Errors wrap apperrors.ErrQuoteService.
func (c *FinanceClient) FetchPrices(ctx context.Context, ids []string) (model.QuoteSet, error) {
	if len(ids) == 0 {
		return model.QuoteSet{}, nil
	}

	endpoint := c.simplePriceURL(ids)
	// The shared request must outlive any single caller; the http.Client timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(endpoint, func() (any, error) {
		return c.querySimplePrice(shared, endpoint)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", apperrors.ErrQuoteService, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return c.ParseQuotes(res.Val.(SimplePriceResponse)), nil
	}
}

// ParseQuotes converts a raw response into a QuoteSet keyed by identifier.
func (c *FinanceClient) ParseQuotes(raw SimplePriceResponse) model.QuoteSet {
	quotes := make(model.QuoteSet, len(raw))
	for id, prices := range raw {
		primary := prices[c.currencies.Primary]
		secondary := prices[c.currencies.Secondary]
		if primary == nil || secondary == nil {
			continue
		}
		quotes[id] = model.Quote{Primary: *primary, Secondary: *secondary}
	}
	return quotes
}

func (c *FinanceClient) simplePriceURL(ids []string) string {
	values := url.Values{}
	values.Set("ids", strings.Join(ids, ","))
	values.Set("vs_currencies", c.currencies.Primary+","+c.currencies.Secondary)
	return c.baseURL + "/simple/price?" + values.Encode()
}

// querySimplePrice executes the request and decodes the response body.
func (c *FinanceClient) querySimplePrice(ctx context.Context, endpoint string) (SimplePriceResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", apperrors.ErrQuoteService, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrQuoteService, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", apperrors.ErrQuoteService, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &errResp) == nil && errResp.message() != "" {
			msg = errResp.message()
		}
		if len(msg) > 256 {
			msg = msg[:256]
		}
		return nil, fmt.Errorf("%w: status %d: %s", apperrors.ErrQuoteService, resp.StatusCode, msg)
	}

	var response SimplePriceResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %w", apperrors.ErrQuoteService, err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: malformed response: null body", apperrors.ErrQuoteService)
	}

	return response, nil
}
