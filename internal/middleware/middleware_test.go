package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *TokenManager {
	t.Helper()
	m := NewTokenManager("test-secret", time.Hour)
	t.Cleanup(m.Close)
	return m
}

func serveAdmin(m *TokenManager, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	g := e.Group("/admin", m.JWTMiddleware())
	g.GET("/ping", AdminOnly(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"sub": GetClaims(c).Subject})
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := newManager(t)

	tok, exp, err := m.GenerateToken("admin", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)

	other, _, err := m.GenerateToken("admin", "admin")
	require.NoError(t, err)
	otherClaims, err := m.Parse(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)
}

func TestTokenManager_RejectsForeignAndExpired(t *testing.T) {
	m := newManager(t)

	foreign := NewTokenManager("other-secret", time.Hour)
	defer foreign.Close()
	tok, _, err := foreign.GenerateToken("admin", "admin")
	require.NoError(t, err)
	_, err = m.Parse(tok)
	assert.Error(t, err)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := m.GenerateToken("admin", "admin")
	require.NoError(t, err)
	m.now = time.Now
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestLogoutRevokesToken(t *testing.T) {
	m := newManager(t)
	tok, _, err := m.GenerateToken("admin", "admin")
	require.NoError(t, err)

	rec := serveAdmin(m, "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	m.Revoke(claims)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	rec = serveAdmin(m, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked")
}

func TestJWTMiddleware_Status(t *testing.T) {
	m := newManager(t)
	userTok, _, err := m.GenerateToken("someone", "user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"non admin role", "Bearer " + userTok, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serveAdmin(m, tt.header).Code)
		})
	}
}

type visitLog struct{ ids []string }

func (v *visitLog) RecordVisit(ctx context.Context, sessionID string) {
	v.ids = append(v.ids, sessionID)
}

func TestSession_IssuesAndReusesCookie(t *testing.T) {
	visits := &visitLog{}
	e := echo.New()
	e.Use(Session(visits))
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, SessionID(c))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, cookies[0].Value, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEqual(t, "forged", rec.Body.String())

	require.Len(t, visits.ids, 3)
	assert.Equal(t, visits.ids[0], visits.ids[1])
}
