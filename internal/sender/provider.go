package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ProviderClient sends messages through the hosted messaging provider's HTTP
// API. One JSON POST per channel; the provider returns a message id on
// success.
type ProviderClient struct {
	baseURL      string
	apiKey       string
	whatsappFrom string
	httpClient   *http.Client
}

// NewProviderClient creates a provider client
func NewProviderClient(baseURL, apiKey, whatsappFrom string) *ProviderClient {
	return &ProviderClient{
		baseURL:      baseURL,
		apiKey:       apiKey,
		whatsappFrom: whatsappFrom,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type providerResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

// SendEmail sends one email
func (c *ProviderClient) SendEmail(ctx context.Context, to, subject, body string) (*Result, error) {
	payload := map[string]interface{}{
		"to":      to,
		"subject": subject,
		"body":    body,
	}
	return c.post(ctx, "/v1/email/send", to, payload)
}

// SendSMS sends one SMS
func (c *ProviderClient) SendSMS(ctx context.Context, to, body string) (*Result, error) {
	payload := map[string]interface{}{
		"to":   to,
		"body": body,
	}
	return c.post(ctx, "/v1/sms/send", to, payload)
}

// SendWhatsApp sends one templated WhatsApp message
func (c *ProviderClient) SendWhatsApp(ctx context.Context, to, template string, parameters []string) (*Result, error) {
	payload := map[string]interface{}{
		"from":       c.whatsappFrom,
		"to":         to,
		"template":   template,
		"parameters": parameters,
	}
	return c.post(ctx, "/v1/whatsapp/send", to, payload)
}

// RegisterWhatsAppTemplate registers a message template with the provider
func (c *ProviderClient) RegisterWhatsAppTemplate(ctx context.Context, name, language, body string) (*Result, error) {
	payload := map[string]interface{}{
		"name":     name,
		"language": language,
		"body":     body,
	}
	return c.post(ctx, "/v1/whatsapp/templates", name, payload)
}

// post issues one provider API call and normalizes the response
func (c *ProviderClient) post(ctx context.Context, path, to string, payload interface{}) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal provider payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	var parsed providerResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Error != "" {
			return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, parsed.Error)
		}
		return nil, fmt.Errorf("provider returned %d", resp.StatusCode)
	}

	return &Result{MessageID: parsed.MessageID, To: to}, nil
}
