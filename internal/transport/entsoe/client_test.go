package entsoe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entsocli/internal/config"
)

func testClientConfig(baseURL string) config.ClientConfig {
	return config.ClientConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		RatePerSecond:  1000,
		RateBurst:      1000,
		MaxRetries:     2,
		RetryBackoff:   time.Millisecond,
	}
}

func testRequest() FetchRequest {
	return FetchRequest{
		DocumentType: "A44",
		InDomain:     "10YFI-1--------U",
		OutDomain:    "10YFI-1--------U",
		PeriodStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchDocument(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`<Publication_MarketDocument/>`))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), nil)
	raw, err := client.FetchDocument(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, `<Publication_MarketDocument/>`, string(raw))

	assert.Equal(t, []string{"A44"}, gotQuery["documentType"])
	assert.Equal(t, []string{"10YFI-1--------U"}, gotQuery["in_Domain"])
	assert.Equal(t, []string{"202401010000"}, gotQuery["periodStart"])
	assert.Equal(t, []string{"202401020000"}, gotQuery["periodEnd"])
}

func TestFetchDocumentRetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`<GL_MarketDocument/>`))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), nil)
	raw, err := client.FetchDocument(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, `<GL_MarketDocument/>`, string(raw))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchDocumentNoRetryOn4xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), nil)
	_, err := client.FetchDocument(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

type mapCache struct {
	entries map[string][]byte
	puts    int
}

func (m *mapCache) Get(key string) ([]byte, bool, error) {
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *mapCache) Put(key string, value []byte) error {
	m.entries[key] = value
	m.puts++
	return nil
}

func TestFetchDocumentUsesCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`<Publication_MarketDocument/>`))
	}))
	defer server.Close()

	cache := &mapCache{entries: map[string][]byte{}}
	client := NewClient(testClientConfig(server.URL), nil, WithCache(cache))

	req := testRequest()
	_, err := client.FetchDocument(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, cache.puts)

	// Second fetch is served from the cache.
	raw, err := client.FetchDocument(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, `<Publication_MarketDocument/>`, string(raw))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheKeyStable(t *testing.T) {
	req := testRequest()
	assert.Equal(t,
		"A44/10YFI-1--------U/10YFI-1--------U/202401010000/202401020000",
		req.CacheKey())
}
