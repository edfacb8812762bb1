package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned by Send when no API key was provided.
var ErrNotConfigured = errors.New("RESEND_API_KEY not set")

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

// NewResendMailer never fails; a missing key surfaces as ErrNotConfigured on
// the first Send so that startup does not depend on the email path.
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}
}

// WithBaseURL points the mailer at another endpoint.
func (m *ResendMailer) WithBaseURL(u string) *ResendMailer {
	m.baseURL = u
	return m
}

// Configured reports whether an API key is present.
func (m *ResendMailer) Configured() bool {
	return m.apiKey != ""
}

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send posts msg to the Resend emails endpoint and returns the provider's message id.
func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return "", errors.New("email has no recipients")
	}

	body := sendRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("failed to send email: %s: %s", resp.Status, string(raw))
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// accepted by the provider; the id is informational only
		return "", nil
	}
	return out.ID, nil
}

// SendEmail sends one email and discards the provider's message id.
func (m *ResendMailer) SendEmail(ctx context.Context, to []string, subject, text, html string) error {
	_, err := m.Send(ctx, Message{To: to, Subject: subject, Text: text, HTML: html})
	return err
}
