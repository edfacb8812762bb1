package abstractapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatorFor(t *testing.T, status int, body string) *AbstractReputationValidator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "sita@example.com", r.URL.Query().Get("email"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	v, err := NewAbstractReputationValidator("key")
	require.NoError(t, err)
	return v.WithBaseURL(srv.URL + "/v1/")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		rejected bool
		wantErr  bool
	}{
		{"good", http.StatusOK, `{"email_reputation":"HIGH","email_deliverability":{"status":"deliverable"}}`, false, false},
		{"disposable", http.StatusOK, `{"is_disposable_email":true}`, true, true},
		{"disposable quality", http.StatusOK, `{"email_quality":{"is_disposable":true}}`, true, true},
		{"undeliverable", http.StatusOK, `{"email_deliverability":{"status":"undeliverable"}}`, true, true},
		{"low reputation", http.StatusOK, `{"email_reputation":"LOW"}`, true, true},
		{"service error", http.StatusBadGateway, ``, false, true},
		{"bad json", http.StatusOK, `{`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatorFor(t, tt.status, tt.body).Validate(context.Background(), "sita@example.com")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.rejected, errors.Is(err, ErrRejected))
		})
	}
}

func TestNewValidatorRequiresKey(t *testing.T) {
	_, err := NewAbstractReputationValidator("")
	assert.Error(t, err)
}
