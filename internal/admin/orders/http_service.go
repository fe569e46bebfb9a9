package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// HTTPClient matches the subset of http.Client used by HTTPService.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPService implements API backed by the shop backend REST endpoints.
type HTTPService struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPService constructs an API that talks to the shop backend.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("orders: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("orders: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{
		base:   parsed,
		client: client,
	}, nil
}

// Create persists the order and returns the server-assigned laundry id.
func (s *HTTPService) Create(ctx context.Context, token string, reqBody CreateOrderRequest) (string, error) {
	req, err := s.newJSONRequest(ctx, http.MethodPost, "/orders", token, reqBody)
	if err != nil {
		return "", err
	}
	resp, err := s.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", s.errorFromResponse(resp)
	}

	var payload struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		LaundryID string `json:"laundryId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("orders: decode create response: %w", err)
	}
	if !payload.Success {
		return "", backendFailure("create", payload.Message)
	}
	if payload.LaundryID == "" {
		return "", errors.New("orders: backend returned no laundry id")
	}
	return payload.LaundryID, nil
}

// UpdateStatus persists a status transition for an existing order.
func (s *HTTPService) UpdateStatus(ctx context.Context, token, laundryID string, status Status) error {
	if strings.TrimSpace(laundryID) == "" {
		return errors.New("orders: laundry id is required")
	}
	if !status.Valid() {
		return fmt.Errorf("orders: unknown status %q", status)
	}

	endpoint := path.Join("/orders", url.PathEscape(strings.TrimSpace(laundryID)), "status")
	body := struct {
		Status Status `json:"status"`
	}{Status: status}
	req, err := s.newJSONRequest(ctx, http.MethodPut, endpoint, token, body)
	if err != nil {
		return err
	}
	resp, err := s.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.errorFromResponse(resp)
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("orders: decode status response: %w", err)
	}
	if !payload.Success {
		return backendFailure("status update", payload.Message)
	}
	return nil
}

func (s *HTTPService) do(req *http.Request) (*http.Response, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orders: request failed: %w", err)
	}
	return resp, nil
}

func (s *HTTPService) newJSONRequest(ctx context.Context, method, endpoint, token string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("orders: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.resolve(endpoint), &buf)
	if err != nil {
		return nil, fmt.Errorf("orders: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (s *HTTPService) resolve(endpoint string) string {
	trimmed := strings.TrimPrefix(endpoint, "/")
	ref := &url.URL{Path: trimmed}
	return s.base.ResolveReference(ref).String()
}

func (s *HTTPService) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()

	type errorPayload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	var payload errorPayload
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return fmt.Errorf("orders: backend error (%s): %s", strings.TrimSpace(payload.Code), payload.Message)
		}
	}
	if len(body) > 0 {
		return fmt.Errorf("orders: backend error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("orders: backend error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// backendFailure converts a success:false envelope into an error. Callers treat
// it identically to a transport failure.
func backendFailure(operation, message string) error {
	if strings.TrimSpace(message) == "" {
		message = "backend reported failure"
	}
	return fmt.Errorf("orders: %s: %s", operation, strings.TrimSpace(message))
}
