// Package client talks to the prompt saver endpoints and drives a page-like
// view of the prompt form, prompt list, and flash notices.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrDecode indicates a response body that is not the expected JSON shape.
	ErrDecode = errors.New("decode response")
	// ErrStatus indicates a non-2xx response.
	ErrStatus = errors.New("unexpected response status")
)

const maxResponseBytes = 4 << 20

// Prompt is a saved prompt as returned by the list endpoint.
type Prompt struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// SaveRequest is the body of a save call.
type SaveRequest struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

type saveResponse struct {
	Success *bool `json:"success"`
}

type listResponse struct {
	Prompts *[]Prompt `json:"prompts"`
}

// Client calls the legacy save and list endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the server at baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// Save posts a prompt and returns the server's success flag.
func (c *Client) Save(ctx context.Context, req SaveRequest) (bool, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return false, fmt.Errorf("encode save request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/save_prompt", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build save request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp saveResponse
	if err := c.do(httpReq, &resp); err != nil {
		return false, err
	}
	if resp.Success == nil {
		return false, fmt.Errorf("%w: missing success field", ErrDecode)
	}
	return *resp.Success, nil
}

// List fetches the saved prompts in server order.
func (c *Client) List(ctx context.Context) ([]Prompt, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get_prompts", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	var resp listResponse
	if err := c.do(httpReq, &resp); err != nil {
		return nil, err
	}
	if resp.Prompts == nil {
		return nil, fmt.Errorf("%w: missing prompts field", ErrDecode)
	}
	return *resp.Prompts, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("%w: %s %s: %d", ErrStatus, req.Method, req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrDecode, req.Method, req.URL.Path, err)
	}
	return nil
}
