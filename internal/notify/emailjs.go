package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSClient sends ticket emails through an EmailJS template. The template
// receives to_name, to_email, subject, ticket_url, event_title and booking_ref.
type EmailJSClient struct {
	endpoint    string
	serviceID   string
	templateID  string
	publicKey   string
	accessToken string
	httpClient  *http.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func NewEmailJSClient(endpoint, serviceID, templateID, publicKey, accessToken string) *EmailJSClient {
	if endpoint == "" {
		endpoint = DefaultEmailJSURL
	}
	return &EmailJSClient{
		endpoint:    endpoint,
		serviceID:   serviceID,
		templateID:  templateID,
		publicKey:   publicKey,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *EmailJSClient) Send(ctx context.Context, msg Message) error {
	payload := emailJSRequest{
		ServiceID:   c.serviceID,
		TemplateID:  c.templateID,
		UserID:      c.publicKey,
		AccessToken: c.accessToken,
		TemplateParams: map[string]string{
			"to_name":     msg.ToName,
			"to_email":    msg.ToEmail,
			"subject":     msg.Subject,
			"ticket_url":  msg.TicketURL,
			"event_title": msg.EventTitle,
			"booking_ref": msg.BookingRef,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("emailjs rejected message: status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
