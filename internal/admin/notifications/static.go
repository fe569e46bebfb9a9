package notifications

import (
	"context"
	"sync"
)

// StaticSender records messages in memory for local development and tests.
type StaticSender struct {
	mu   sync.Mutex
	sent []Message

	// Err, when set, is returned by every Send call.
	Err error
}

// NewStaticSender returns an empty StaticSender.
func NewStaticSender() *StaticSender {
	return &StaticSender{}
}

// Send records the message.
func (s *StaticSender) Send(ctx context.Context, token string, msg Message) (Delivery, error) {
	if s.Err != nil {
		return Delivery{}, s.Err
	}
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return Delivery{ProviderStatus: "queued"}, nil
}

// Sent returns a copy of the recorded messages.
func (s *StaticSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
