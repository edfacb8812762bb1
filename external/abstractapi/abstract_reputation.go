package abstractapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrRejected wraps every verdict that refuses an address.
var ErrRejected = errors.New("email rejected")

type AbstractReputationValidator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAbstractReputationValidator(apiKey string) (*AbstractReputationValidator, error) {
	if apiKey == "" {
		return nil, errors.New("ABSTRACT_EMAIL_API_KEY not set")
	}

	return &AbstractReputationValidator{
		apiKey:  apiKey,
		baseURL: "https://emailreputation.abstractapi.com/v1/",
		client:  &http.Client{Timeout: 5 * time.Second},
	}, nil
}

// WithBaseURL points the validator at another endpoint.
func (v *AbstractReputationValidator) WithBaseURL(u string) *AbstractReputationValidator {
	v.baseURL = u
	return v
}

type reputationResponse struct {
	EmailDeliverability struct {
		Status string `json:"status"` // deliverable, undeliverable, unknown
	} `json:"email_deliverability"`
	EmailQuality struct {
		IsDisposable bool `json:"is_disposable"`
	} `json:"email_quality"`
	EmailReputation string `json:"email_reputation"` // LOW, MEDIUM, HIGH
	IsDisposable    bool   `json:"is_disposable_email"`
}

// Validate returns an error wrapping ErrRejected when the address should not be
// accepted, or a plain error when the reputation service could not be asked.
func (v *AbstractReputationValidator) Validate(
	ctx context.Context,
	email string,
) error {
	u, err := url.Parse(v.baseURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("api_key", v.apiKey)
	q.Set("email", email)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email reputation service error: %s", resp.Status)
	}

	var out reputationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode reputation response: %w", err)
	}

	// ---- Rules ----
	if out.IsDisposable || out.EmailQuality.IsDisposable {
		return fmt.Errorf("%w: disposable email is not allowed", ErrRejected)
	}

	if out.EmailDeliverability.Status == "undeliverable" {
		return fmt.Errorf("%w: email address is undeliverable", ErrRejected)
	}

	if out.EmailReputation == "LOW" {
		return fmt.Errorf("%w: email reputation is too low", ErrRejected)
	}

	return nil
}
