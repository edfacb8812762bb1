package resend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_NotConfiguredMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	m := NewResendMailer("", "shop@example.com").WithBaseURL(srv.URL)
	_, err := m.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "x"})

	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.Equal(t, int32(0), calls.Load())
}

func TestSend_PostsEmail(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	m := NewResendMailer("re_test", "Mithila Bazaar <orders@example.com>").WithBaseURL(srv.URL)
	id, err := m.Send(context.Background(), Message{
		To:      []string{"owner@example.com"},
		Subject: "New Order - Mithila Bazaar",
		Text:    "body",
	})
	require.NoError(t, err)

	assert.Equal(t, "email_123", id)
	assert.Equal(t, "Mithila Bazaar <orders@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "New Order - Mithila Bazaar", got.Subject)
	assert.Equal(t, "body", got.Text)
}

func TestSend_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	m := NewResendMailer("re_test", "bad").WithBaseURL(srv.URL)
	_, err := m.Send(context.Background(), Message{To: []string{"owner@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")
}

func TestSend_NoRecipients(t *testing.T) {
	m := NewResendMailer("re_test", "shop@example.com")
	_, err := m.Send(context.Background(), Message{})
	assert.Error(t, err)
}
