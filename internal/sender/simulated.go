package sender

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Simulated is a sender that fakes provider calls with a configurable success
// rate. Used in development and tests.
type Simulated struct {
	mu          sync.Mutex
	successRate float64 // 0.0 to 1.0 (e.g., 0.95 = 95% success)
	rand        *rand.Rand
}

// NewSimulated creates a simulated sender
// successRate: probability of successful send (0.0 to 1.0)
func NewSimulated(successRate float64) *Simulated {
	if successRate < 0.0 {
		successRate = 0.0
	}
	if successRate > 1.0 {
		successRate = 1.0
	}

	return &Simulated{
		successRate: successRate,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SendEmail simulates sending an email
func (s *Simulated) SendEmail(ctx context.Context, to, subject, body string) (*Result, error) {
	return s.send("email", to)
}

// SendSMS simulates sending an SMS
func (s *Simulated) SendSMS(ctx context.Context, to, body string) (*Result, error) {
	return s.send("sms", to)
}

// SendWhatsApp simulates sending a WhatsApp message
func (s *Simulated) SendWhatsApp(ctx context.Context, to, template string, parameters []string) (*Result, error) {
	return s.send("whatsapp", to)
}

// send is the internal mock implementation
func (s *Simulated) send(channel, to string) (*Result, error) {
	s.mu.Lock()
	success := s.rand.Float64() < s.successRate
	var reason string
	if !success {
		failures := []string{
			"network timeout",
			"invalid recipient address",
			"rate limit exceeded",
			"service temporarily unavailable",
			"insufficient balance",
		}
		reason = failures[s.rand.Intn(len(failures))]
	}
	s.mu.Unlock()

	if !success {
		return nil, fmt.Errorf("failed to send %s to %s: %s", channel, to, reason)
	}

	return &Result{MessageID: uuid.NewString(), To: to}, nil
}

// SetSuccessRate updates the success rate (for testing)
func (s *Simulated) SetSuccessRate(rate float64) {
	if rate < 0.0 {
		rate = 0.0
	}
	if rate > 1.0 {
		rate = 1.0
	}
	s.mu.Lock()
	s.successRate = rate
	s.mu.Unlock()
}
