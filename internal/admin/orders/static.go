package orders

import (
	"context"
	"fmt"
	"sync"
)

// StaticAPI is an in-memory API for local development and tests. It assigns
// sequential laundry ids and records every call.
type StaticAPI struct {
	mu       sync.Mutex
	nextID   int
	created  []CreateOrderRequest
	statuses map[string]Status

	// CreateErr, when set, fails every Create call.
	CreateErr error
	// UpdateErr, when set, fails every UpdateStatus call.
	UpdateErr error
}

// NewStaticAPI returns an empty StaticAPI.
func NewStaticAPI() *StaticAPI {
	return &StaticAPI{
		nextID:   1000,
		statuses: make(map[string]Status),
	}
}

// Create records the request and returns a generated laundry id.
func (s *StaticAPI) Create(ctx context.Context, token string, req CreateOrderRequest) (string, error) {
	if s.CreateErr != nil {
		return "", s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("L-%d", s.nextID)
	s.created = append(s.created, req)
	s.statuses[id] = StatusOnService
	return id, nil
}

// UpdateStatus records the transition for a known order.
func (s *StaticAPI) UpdateStatus(ctx context.Context, token, laundryID string, status Status) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.statuses[laundryID]; !ok {
		return fmt.Errorf("orders: unknown order %q", laundryID)
	}
	s.statuses[laundryID] = status
	return nil
}

// Created returns a copy of the recorded create requests.
func (s *StaticAPI) Created() []CreateOrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CreateOrderRequest, len(s.created))
	copy(out, s.created)
	return out
}

// StatusOf returns the last recorded status for an order.
func (s *StaticAPI) StatusOf(laundryID string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.statuses[laundryID]
	return status, ok
}
