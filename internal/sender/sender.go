// Package sender holds the outbound channel senders. The pipeline treats
// "send one message via channel X" as a capability: each call takes a
// normalized recipient address plus content and reports success or failure,
// with no retries at this layer.
package sender

import "context"

// Result represents a successful send
type Result struct {
	MessageID string `json:"messageId"`
	To        string `json:"to"`
}

// Sender is the channel sender contract consumed by the batch processor
type Sender interface {
	SendEmail(ctx context.Context, to, subject, body string) (*Result, error)
	SendSMS(ctx context.Context, to, body string) (*Result, error)
	SendWhatsApp(ctx context.Context, to, template string, parameters []string) (*Result, error)
}
