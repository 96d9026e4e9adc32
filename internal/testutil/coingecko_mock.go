package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
)

// MockQuoteClient is a mock implementation of coingecko.Client for testing.
// It returns predefined quotes instead of making actual API calls.
type MockQuoteClient struct {
	mu sync.Mutex
	// Quotes is the quote set returned, filtered to the requested identifiers
	Quotes model.QuoteSet
	// MockError is the error to return from FetchPrices
	MockError error
	// Calls records the identifiers of every FetchPrices call
	Calls [][]string
}

// NewMockQuoteClient creates a mock client quoting bitcoin at 25000 USD /
// 2075000 INR and ethereum at 1800 USD / 149400 INR.
func NewMockQuoteClient() *MockQuoteClient {
	return &MockQuoteClient{
		Quotes: SampleQuotes(),
	}
}

// SampleQuotes returns the quotes used by NewMockQuoteClient.
func SampleQuotes() model.QuoteSet {
	return model.QuoteSet{
		"bitcoin":  {Primary: Dec("25000"), Secondary: Dec("2075000")},
		"ethereum": {Primary: Dec("1800"), Secondary: Dec("149400")},
	}
}

// FetchPrices returns the configured quotes for ids, or MockError.
func (m *MockQuoteClient) FetchPrices(_ context.Context, ids []string) (model.QuoteSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, append([]string(nil), ids...))
	if m.MockError != nil {
		return nil, m.MockError
	}
	out := make(model.QuoteSet, len(ids))
	for _, id := range ids {
		if q, ok := m.Quotes[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

// WithError configures the mock to fail with a quote service error.
func (m *MockQuoteClient) WithError(msg string) *MockQuoteClient {
	m.MockError = fmt.Errorf("%w: %s", apperrors.ErrQuoteService, msg)
	return m
}

// WithoutQuote removes id from the returned quotes.
func (m *MockQuoteClient) WithoutQuote(id string) *MockQuoteClient {
	delete(m.Quotes, id)
	return m
}

// CallCount returns how many times FetchPrices was called.
func (m *MockQuoteClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// FakeCoinGecko is an httptest server standing in for the CoinGecko API.
type FakeCoinGecko struct {
	*httptest.Server

	Status int
	Body   string

	requests atomic.Int32
	mu       sync.Mutex
	last     *http.Request
}

// NewFakeCoinGecko starts a server answering every request with status and body.
// The server is closed when the test completes.
func NewFakeCoinGecko(t *testing.T, status int, body string) *FakeCoinGecko {
	t.Helper()

	f := &FakeCoinGecko{Status: status, Body: body}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.mu.Lock()
		f.last = r.Clone(context.Background())
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.Status)
		_, _ = w.Write([]byte(f.Body))
	}))
	t.Cleanup(f.Close)
	return f
}

// Requests returns the number of requests served.
func (f *FakeCoinGecko) Requests() int {
	return int(f.requests.Load())
}

// LastRequest returns the most recent request, or nil.
func (f *FakeCoinGecko) LastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// SamplePriceBody is the CoinGecko response matching SampleQuotes.
const SamplePriceBody = `{"bitcoin":{"usd":25000,"inr":2075000},"ethereum":{"usd":1800,"inr":149400}}`
