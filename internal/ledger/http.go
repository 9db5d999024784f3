package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient implements Service against the ledger's REST surface.
type HTTPClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

var _ Service = (*HTTPClient)(nil)

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// NewHTTPClient creates a ledger client. Every request is bounded by the
// given timeout; a timeout surfaces as ErrUnavailable, never as success.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...HTTPClientOption) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createAccountRequest struct {
	ID string `json:"id"`
}

type transferRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID string `json:"nft_id"`
}

// CreateAccount registers the account identity with the ledger.
func (c *HTTPClient) CreateAccount(ctx context.Context, id string) error {
	if _, err := c.post(ctx, "/accounts", createAccountRequest{ID: id}); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// MintToken submits an issuance request and returns the minted token. A 2xx
// response whose body does not decode into a token is still a success: the
// ledger accepted the issuance without an extractable id.
func (c *HTTPClient) MintToken(ctx context.Context, req IssuanceRequest) (Token, error) {
	body, err := c.post(ctx, "/tokens", req)
	if err != nil {
		return Token{}, fmt.Errorf("mint token: %w", err)
	}
	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return Token{}, nil
	}
	return token, nil
}

// ListTokens fetches all tokens owned by the account.
func (c *HTTPClient) ListTokens(ctx context.Context, accountID string) ([]Token, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/accounts/%s/tokens", c.baseURL, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("list tokens: build request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	var tokens []Token
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("list tokens: decode response: %w", ErrUnavailable)
	}
	return tokens, nil
}

// TransferToken reassigns token ownership between accounts.
func (c *HTTPClient) TransferToken(ctx context.Context, from, to, tokenID string) error {
	_, err := c.post(ctx, "/tokens/transfer", transferRequest{From: from, To: to, TokenID: tokenID})
	if err != nil {
		return fmt.Errorf("transfer token: %w", err)
	}
	return nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// do executes a single request. One attempt only: retry orchestration
// belongs to the caller, keyed by the request's idempotency identifier.
func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RejectionError{Status: resp.StatusCode, Reason: rejectionReason(body)}
	}
	return body, nil
}

func rejectionReason(body []byte) string {
	reason := strings.TrimSpace(string(body))
	if reason == "" {
		return "no reason given"
	}
	// The ledger reports errors as either plain text or {"error": "..."}.
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return reason
}
