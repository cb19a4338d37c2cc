package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"tenantcast/internal/sender"
)

// SendHandler exposes the individual channel senders as HTTP endpoints.
// These are thin adapters around the provider client, mainly for
// integration testing and manual operations.
type SendHandler struct {
	provider *sender.ProviderClient
}

// NewSendHandler creates a new send handler
func NewSendHandler(provider *sender.ProviderClient) *SendHandler {
	return &SendHandler{
		provider: provider,
	}
}

// SendEmailRequest represents a single email send request
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Debug   bool   `json:"debug,omitempty"`
}

// SendSMSRequest represents a single SMS send request
type SendSMSRequest struct {
	To    string `json:"to"`
	Body  string `json:"body"`
	Debug bool   `json:"debug,omitempty"`
}

// SendWhatsAppRequest represents a single WhatsApp template send request
type SendWhatsAppRequest struct {
	To         string   `json:"to"`
	Template   string   `json:"template"`
	Parameters []string `json:"parameters,omitempty"`
	Debug      bool     `json:"debug,omitempty"`
}

// SendResponse is the success envelope for all three channel endpoints
type SendResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Details SendDetails `json:"details"`
}

// SendDetails carries the provider's delivery receipt
type SendDetails struct {
	MessageID string `json:"messageId"`
	To        string `json:"to"`
}

// SendErrorResponse is the failure envelope for all three channel endpoints
type SendErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SendEmail handles POST /send-email
func (h *SendHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.To) == "" {
		WriteValidationError(w, "Recipient email is required")
		return
	}

	if req.Debug {
		WriteOK(w, SendResponse{
			Success: true,
			Message: "debug mode: email not sent",
			Details: SendDetails{MessageID: "debug", To: req.To},
		})
		return
	}

	result, err := h.provider.SendEmail(r.Context(), req.To, req.Subject, req.Body)
	if err != nil {
		log.Printf("ERROR: email send to %s failed: %v", req.To, err)
		WriteJSON(w, http.StatusBadGateway, SendErrorResponse{Success: false, Error: err.Error()})
		return
	}

	WriteOK(w, SendResponse{
		Success: true,
		Message: "email sent",
		Details: SendDetails{MessageID: result.MessageID, To: result.To},
	})
}

// SendSMS handles POST /send-sms
func (h *SendHandler) SendSMS(w http.ResponseWriter, r *http.Request) {
	var req SendSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.To) == "" {
		WriteValidationError(w, "Recipient phone number is required")
		return
	}

	if req.Debug {
		WriteOK(w, SendResponse{
			Success: true,
			Message: "debug mode: sms not sent",
			Details: SendDetails{MessageID: "debug", To: req.To},
		})
		return
	}

	result, err := h.provider.SendSMS(r.Context(), req.To, req.Body)
	if err != nil {
		log.Printf("ERROR: sms send to %s failed: %v", req.To, err)
		WriteJSON(w, http.StatusBadGateway, SendErrorResponse{Success: false, Error: err.Error()})
		return
	}

	WriteOK(w, SendResponse{
		Success: true,
		Message: "sms sent",
		Details: SendDetails{MessageID: result.MessageID, To: result.To},
	})
}

// SendWhatsApp handles POST /send-whatsapp
func (h *SendHandler) SendWhatsApp(w http.ResponseWriter, r *http.Request) {
	var req SendWhatsAppRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.To) == "" {
		WriteValidationError(w, "Recipient WhatsApp number is required")
		return
	}
	if strings.TrimSpace(req.Template) == "" {
		WriteValidationError(w, "Template name is required")
		return
	}

	if req.Debug {
		WriteOK(w, SendResponse{
			Success: true,
			Message: "debug mode: whatsapp message not sent",
			Details: SendDetails{MessageID: "debug", To: req.To},
		})
		return
	}

	result, err := h.provider.SendWhatsApp(r.Context(), req.To, req.Template, req.Parameters)
	if err != nil {
		log.Printf("ERROR: whatsapp send to %s failed: %v", req.To, err)
		WriteJSON(w, http.StatusBadGateway, SendErrorResponse{Success: false, Error: err.Error()})
		return
	}

	WriteOK(w, SendResponse{
		Success: true,
		Message: "whatsapp message sent",
		Details: SendDetails{MessageID: result.MessageID, To: result.To},
	})
}

// RegisterTemplateRequest represents a WhatsApp template registration request
type RegisterTemplateRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Body     string `json:"body"`
}

// RegisterTemplate handles POST /register-whatsapp-template
func (h *SendHandler) RegisterTemplate(w http.ResponseWriter, r *http.Request) {
	var req RegisterTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		WriteValidationError(w, "Template name is required")
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		WriteValidationError(w, "Template body is required")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	if _, err := h.provider.RegisterWhatsAppTemplate(r.Context(), req.Name, req.Language, req.Body); err != nil {
		log.Printf("ERROR: template registration for %s failed: %v", req.Name, err)
		WriteJSON(w, http.StatusBadGateway, SendErrorResponse{Success: false, Error: err.Error()})
		return
	}

	WriteOK(w, map[string]interface{}{
		"success": true,
		"message": "template registered",
		"name":    req.Name,
	})
}
