// Package mailer wraps the transactional email service. The service is an
// external collaborator; this package only knows template identifiers and a
// flat parameter set, and reports success or failure.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

const (
	TemplateVerifyEmail         = "verify_email"
	TemplateResetPassword       = "reset_password"
	TemplateAppointmentBooked   = "appointment_booked"
	TemplateAppointmentReminder = "appointment_reminder"
	TemplateWalkInCredentials   = "walkin_credentials"
)

type Mailer interface {
	Send(ctx context.Context, templateID, to string, params map[string]string) error
}

// HTTPMailer posts send requests to the email provider's API.
type HTTPMailer struct {
	APIURL string
	APIKey string
	From   string
	Client *http.Client
}

func NewHTTPMailer(apiURL, apiKey, from string) *HTTPMailer {
	return &HTTPMailer{APIURL: apiURL, APIKey: apiKey, From: from, Client: http.DefaultClient}
}

func (m *HTTPMailer) Send(ctx context.Context, templateID, to string, params map[string]string) error {
	body, err := json.Marshal(map[string]interface{}{
		"template_id": templateID,
		"from":        m.From,
		"to":          to,
		"params":      params,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.APIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}
	return nil
}

// LogMailer is used in development when no mail provider is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, templateID, to string, params map[string]string) error {
	log.Printf("mail (dev): template=%s to=%s params=%v", templateID, to, params)
	return nil
}
