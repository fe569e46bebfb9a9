package catalog

import (
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

// HTTPService implements Service backed by the shop backend REST endpoints.
type HTTPService struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPService constructs a Service that talks to the shop backend.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("catalog: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{
		base:   parsed,
		client: client,
	}, nil
}

// Services retrieves the displayed service list for the shop.
func (s *HTTPService) Services(ctx context.Context, token, shopID string) ([]DisplayedService, error) {
	endpoint := path.Join("/services", url.PathEscape(strings.TrimSpace(shopID)))
	req, err := s.newRequest(ctx, http.MethodGet, endpoint, token)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.errorFromResponse(resp)
	}

	var payload struct {
		Success  bool               `json:"success"`
		Message  string             `json:"message"`
		Services []DisplayedService `json:"services"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("catalog: decode services: %w", err)
	}
	if !payload.Success {
		return nil, backendFailure("services", payload.Message)
	}
	return payload.Services, nil
}

// Prices retrieves the priced service categories for the shop.
func (s *HTTPService) Prices(ctx context.Context, token, shopID string) ([]ServiceCategory, error) {
	endpoint := path.Join("/prices", url.PathEscape(strings.TrimSpace(shopID)))
	req, err := s.newRequest(ctx, http.MethodGet, endpoint, token)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.errorFromResponse(resp)
	}

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Prices  []ServiceCategory `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("catalog: decode prices: %w", err)
	}
	if !payload.Success {
		return nil, backendFailure("prices", payload.Message)
	}
	return payload.Prices, nil
}

func (s *HTTPService) do(req *http.Request) (*http.Response, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request failed: %w", err)
	}
	return resp, nil
}

func (s *HTTPService) newRequest(ctx context.Context, method, endpoint, token string) (*http.Request, error) {
	urlStr := s.resolve(endpoint)
	req, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
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
			return fmt.Errorf("catalog: backend error (%s): %s", strings.TrimSpace(payload.Code), payload.Message)
		}
	}
	if len(body) > 0 {
		return fmt.Errorf("catalog: backend error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("catalog: backend error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// backendFailure converts a success:false envelope into an error. Callers treat
// it identically to a transport failure.
func backendFailure(operation, message string) error {
	if strings.TrimSpace(message) == "" {
		message = "backend reported failure"
	}
	return fmt.Errorf("catalog: %s: %s", operation, strings.TrimSpace(message))
}
