package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	// ErrQuoteUnavailable covers transport failures, non-success statuses and
	// malformed bodies on the quote endpoint.
	ErrQuoteUnavailable = errors.New("jupiter: quote unavailable")

	// ErrSwapBuildFailed covers transport failures, non-success statuses and a
	// missing swapTransaction field on the swap-build endpoint.
	ErrSwapBuildFailed = errors.New("jupiter: swap build failed")
)

const defaultHTTPTimeout = 10 * time.Second

type Provider struct {
	apiURL     string
	headers    map[string]string
	httpClient *http.Client
}

// swapRequest embeds the quote response verbatim. The routing descriptor is
// owned by Jupiter; it must reach the swap endpoint byte-for-byte unmodified.
type swapRequest struct {
	UserPublicKey string          `json:"userPublicKey"`
	QuoteResponse json.RawMessage `json:"quoteResponse"`
}

type swapResponse struct {
	SwapTransaction string `json:"swapTransaction"`
}

func NewProvider(apiURL string) *Provider {
	return &Provider{
		apiURL: apiURL,
		headers: map[string]string{
			"User-Agent": "vultisig-swaprun/1.0",
			"Accept":     "application/json",
		},
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

func (p *Provider) makeRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", p.apiURL, path)
	u, err := url.Parse(fullURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, er := json.Marshal(body)
		if er != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", er)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.headers {
		req.Header.Set(k, v)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make http call: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get successful response: status_code: %d, res_body: %s", res.StatusCode, string(bodyBytes))
	}

	return bodyBytes, nil
}

// GetQuote fetches a routing descriptor for swapping amount base units of
// inputMint into outputMint. The response is returned opaquely: its schema is
// owned by Jupiter and the caller must forward it untouched.
func (p *Provider) GetQuote(
	ctx context.Context,
	inputMint, outputMint string,
	amount uint64,
) (json.RawMessage, error) {
	queryParams := url.Values{}
	queryParams.Set("inputMint", inputMint)
	queryParams.Set("outputMint", outputMint)
	queryParams.Set("amount", strconv.FormatUint(amount, 10))

	path := fmt.Sprintf("/swap/v1/quote?%s", queryParams.Encode())

	bodyBytes, err := p.makeRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get quote from Jupiter: %w", ErrQuoteUnavailable, err)
	}

	var probe map[string]json.RawMessage
	err = json.Unmarshal(bodyBytes, &probe)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal response: %w", ErrQuoteUnavailable, err)
	}

	return json.RawMessage(bodyBytes), nil
}

// BuildSwapTransaction submits the routing descriptor together with the payer
// identity and returns the base64-encoded unsigned transaction Jupiter built
// for it.
func (p *Provider) BuildSwapTransaction(
	ctx context.Context,
	quote json.RawMessage,
	userPublicKey string,
) (string, error) {
	swapReq := swapRequest{
		UserPublicKey: userPublicKey,
		QuoteResponse: quote,
	}

	bodyBytes, err := p.makeRequest(ctx, http.MethodPost, "/swap/v1/swap", swapReq)
	if err != nil {
		return "", fmt.Errorf("%w: failed to get swap transaction from Jupiter: %w", ErrSwapBuildFailed, err)
	}

	var resp swapResponse
	err = json.Unmarshal(bodyBytes, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: failed to unmarshal response: %w", ErrSwapBuildFailed, err)
	}

	if resp.SwapTransaction == "" {
		return "", fmt.Errorf("%w: response has no swapTransaction field", ErrSwapBuildFailed)
	}

	return resp.SwapTransaction, nil
}
