package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPClient matches the subset of http.Client used by HTTPSender.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPSender implements Sender backed by the backend SMS gateway endpoint.
type HTTPSender struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPSender constructs a Sender that talks to the shop backend.
func NewHTTPSender(baseURL string, client HTTPClient) (*HTTPSender, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("notifications: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("notifications: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSender{
		base:   parsed,
		client: client,
	}, nil
}

// Send posts the message to the SMS gateway.
func (s *HTTPSender) Send(ctx context.Context, token string, msg Message) (Delivery, error) {
	if strings.TrimSpace(msg.Recipient) == "" {
		return Delivery{}, errors.New("notifications: recipient is required")
	}
	if strings.TrimSpace(msg.Body) == "" {
		return Delivery{}, errors.New("notifications: message body is required")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return Delivery{}, fmt.Errorf("notifications: encode payload: %w", err)
	}

	ref := &url.URL{Path: "notifications/sms"}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base.ResolveReference(ref).String(), &buf)
	if err != nil {
		return Delivery{}, fmt.Errorf("notifications: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Delivery{}, fmt.Errorf("notifications: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Delivery{}, s.errorFromResponse(resp)
	}

	var payload struct {
		Success        bool   `json:"success"`
		Message        string `json:"message"`
		ProviderStatus string `json:"providerStatus"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Delivery{}, fmt.Errorf("notifications: decode response: %w", err)
	}
	if !payload.Success {
		message := strings.TrimSpace(payload.Message)
		if message == "" {
			message = "gateway reported failure"
		}
		return Delivery{}, fmt.Errorf("notifications: send: %s", message)
	}
	return Delivery{ProviderStatus: payload.ProviderStatus}, nil
}

func (s *HTTPSender) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()

	type errorPayload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	var payload errorPayload
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return fmt.Errorf("notifications: backend error (%s): %s", strings.TrimSpace(payload.Code), payload.Message)
		}
	}
	if len(body) > 0 {
		return fmt.Errorf("notifications: backend error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("notifications: backend error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
