// Package client submits contact messages to the portfolio API. Input is
// validated against the shared contract before any request is sent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/portfolio/backend/pkg/contract"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// ResponseError is returned for any non-200 response. Field is set when the
// server attributed a 400 to an input field.
type ResponseError struct {
	Status  int
	Message string
	Field   string
}

func (e *ResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("contact api: %d: %s: %s", e.Status, e.Field, e.Message)
	}
	return fmt.Sprintf("contact api: %d: %s", e.Status, e.Message)
}

// Client is a raw HTTP client for the contact API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL ("https://example.com").
// A nil httpClient gets a 30 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Submit validates in locally and posts it. Invalid input returns a
// *contract.FieldError without a network call; a non-200 reply returns a
// *ResponseError.
func (c *Client) Submit(ctx context.Context, in contract.ContactInput) (*contract.SuccessResponse, error) {
	in.Normalize()
	if ferr := contract.Validate(in); ferr != nil {
		return nil, ferr
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("contact api: encode: %w", err)
	}

	route := contract.SubmitContact
	req, err := http.NewRequestWithContext(ctx, route.Method, c.baseURL+route.Path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("contact api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contact api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("contact api: read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var ok contract.SuccessResponse
		if err := json.Unmarshal(raw, &ok); err != nil {
			return nil, fmt.Errorf("contact api: decode response: %w", err)
		}
		return &ok, nil
	case http.StatusBadRequest:
		var v contract.ValidationErrorResponse
		if err := json.Unmarshal(raw, &v); err != nil || v.Message == "" {
			return nil, &ResponseError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, &ResponseError{Status: resp.StatusCode, Message: v.Message, Field: v.Field}
	default:
		var v contract.InternalErrorResponse
		if err := json.Unmarshal(raw, &v); err != nil || v.Message == "" {
			v.Message = http.StatusText(resp.StatusCode)
		}
		return nil, &ResponseError{Status: resp.StatusCode, Message: v.Message}
	}
}
