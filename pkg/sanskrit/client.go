// Package sanskrit provides the transliteration and sandhi-segmentation
// adapters behind the compound pipeline. The external service is treated as
// a black box; every failure degrades to a local fallback and never reaches
// the caller as an error.
package sanskrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Transliteration schemes understood by the sandhi service.
const (
	SchemeDevanagari = "devanagari"
	SchemeIAST       = "iast"
)

// Segmentation modes.
const (
	ModeSandhi   = "sandhi"
	ModeMorpheme = "morpheme"
)

// Client talks to the external sandhi/transliteration service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service at baseURL. A zero timeout
// defaults to 5 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type splitRequest struct {
	Word string `json:"word"`
	Mode string `json:"mode,omitempty"`
}

type splitResponse struct {
	Success bool     `json:"success"`
	Parts   []string `json:"parts"`
	Error   string   `json:"error,omitempty"`
}

// Split asks the service to decompose word in the given mode.
func (c *Client) Split(ctx context.Context, word, mode string) ([]string, error) {
	var resp splitResponse
	if err := c.post(ctx, "/api/split", splitRequest{Word: word, Mode: mode}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("split %q: service reported failure: %s", word, resp.Error)
	}
	if len(resp.Parts) == 0 {
		return nil, fmt.Errorf("split %q: empty parts in response", word)
	}
	return resp.Parts, nil
}

type transliterateRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type transliterateResponse struct {
	Success        bool   `json:"success"`
	Transliterated string `json:"transliterated"`
	Error          string `json:"error,omitempty"`
}

// Transliterate converts text between schemes.
func (c *Client) Transliterate(ctx context.Context, text, from, to string) (string, error) {
	var resp transliterateResponse
	req := transliterateRequest{Text: text, From: from, To: to}
	if err := c.post(ctx, "/api/transliterate", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.Transliterated == "" {
		return "", fmt.Errorf("transliterate %q: service reported failure: %s", text, resp.Error)
	}
	return resp.Transliterated, nil
}

// Health reports whether the service answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
