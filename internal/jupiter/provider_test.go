package jupiter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testInputMint  = "So11111111111111111111111111111111111111112"
	testOutputMint = "6p6xgHyF7AeE6TZkSmFsko444wqoP15icUSqi2jfGiPN"
	testPayer      = "EXAMPLEUvVHLJDW73JwHvSZ5VPXVYnLiZRkSawR5CsJo"
)

// Compact fixture: the provider must carry these bytes through to the
// swap-build request without touching them.
const testQuoteBody = `{"inputMint":"So11111111111111111111111111111111111111112","inAmount":"100000000","outputMint":"6p6xgHyF7AeE6TZkSmFsko444wqoP15icUSqi2jfGiPN","outAmount":"16198753","swapMode":"ExactIn","routePlan":[{"swapInfo":{"ammKey":"9eBMcrerxoboDRLS5s8ntFzEnwC5fyfijmuimiM7Rzz","label":"Meteora DLMM","inAmount":"100000000","outAmount":"16198753"},"percent":100}]}`

func TestProvider_GetQuote(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testQuoteBody))
	}))
	defer server.Close()

	provider := NewProvider(server.URL)

	quote, err := provider.GetQuote(context.Background(), testInputMint, testOutputMint, 100000000)
	require.NoError(t, err)

	assert.Equal(t, "/swap/v1/quote", gotPath)
	assert.Equal(t, testInputMint, gotQuery.Get("inputMint"))
	assert.Equal(t, testOutputMint, gotQuery.Get("outputMint"))
	assert.Equal(t, "100000000", gotQuery.Get("amount"))
	assert.Equal(t, testQuoteBody, string(quote))
}

func TestProvider_GetQuote_errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"no route found"}`, http.StatusBadRequest)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewProvider(server.URL)

			_, err := provider.GetQuote(context.Background(), testInputMint, testOutputMint, 100000000)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrQuoteUnavailable)
		})
	}
}

func TestProvider_GetQuote_networkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := NewProvider(server.URL)

	_, err := provider.GetQuote(context.Background(), testInputMint, testOutputMint, 100000000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestProvider_BuildSwapTransaction(t *testing.T) {
	var gotBody swapRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/swap/v1/swap", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		err := json.NewDecoder(r.Body).Decode(&gotBody)
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"swapTransaction":"AQACAwZzdHVi","lastValidBlockHeight":279632475}`))
	}))
	defer server.Close()

	provider := NewProvider(server.URL)

	encodedTx, err := provider.BuildSwapTransaction(context.Background(), json.RawMessage(testQuoteBody), testPayer)
	require.NoError(t, err)

	assert.Equal(t, "AQACAwZzdHVi", encodedTx)
	assert.Equal(t, testPayer, gotBody.UserPublicKey)
	// Routing descriptor must arrive byte-for-byte as it left the quote endpoint.
	assert.Equal(t, testQuoteBody, string(gotBody.QuoteResponse))
}

func TestProvider_BuildSwapTransaction_errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"quote expired"}`, http.StatusUnprocessableEntity)
			},
		},
		{
			name: "missing swapTransaction field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"lastValidBlockHeight":279632475}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>bad gateway</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewProvider(server.URL)

			_, err := provider.BuildSwapTransaction(context.Background(), json.RawMessage(testQuoteBody), testPayer)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSwapBuildFailed)
		})
	}
}
