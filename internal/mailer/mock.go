package mailer

import (
	"context"
	"sync"
)

// Mock collects outgoing mail in memory. The receipt tests inspect Sent after
// the webhook handler returns; it also backs local runs without SMTP config.
type Mock struct {
	mu   sync.Mutex
	Sent []Email
	Err  error
}

func (m *Mock) Send(ctx context.Context, e Email) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, e)
	return m.Err
}
