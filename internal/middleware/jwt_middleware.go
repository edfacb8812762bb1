package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	tokenIssuer    = "mithila-bazaar"
	claimsKey      = "auth_claims"
	AdminTokenTTL  = 8 * time.Hour
	revokedCleanup = 10 * time.Minute
)

var ErrTokenRevoked = errors.New("token has been revoked")

// Claims defines JWT payload structure
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies admin tokens. Revoked token ids are kept
// until the token would have expired anyway.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	revoked *cache.TTLCache[struct{}]
	now     func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = AdminTokenTTL
	}
	return &TokenManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: cache.NewTTLCache[struct{}]("revoked_tokens", ttl, revokedCleanup),
		now:     time.Now,
	}
}

// Close stops the revocation list's cleanup loop.
func (m *TokenManager) Close() {
	m.revoked.Stop()
}

// GenerateToken creates a signed token for subject with a fresh jti.
func (m *TokenManager) GenerateToken(subject, role string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies signature, expiry and revocation.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if _, revoked := m.revoked.Get(claims.ID); revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke invalidates the token identified by claims.
func (m *TokenManager) Revoke(claims *Claims) {
	if claims == nil || claims.ID == "" {
		return
	}
	exp := m.now().Add(m.ttl)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	m.revoked.SetUntil(claims.ID, struct{}{}, exp)
}

func bearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	parts := strings.Fields(auth)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// JWTMiddleware returns an Echo middleware that validates token and sets "user" context
func (m *TokenManager) JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}
			tokenString, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}
			claims, err := m.Parse(tokenString)
			if errors.Is(err, ErrTokenRevoked) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token has been revoked"})
			}
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			// attach claims to context
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// Helper to extract claims
func GetClaims(c echo.Context) *Claims {
	v := c.Get(claimsKey)
	if v == nil {
		return nil
	}
	if cl, ok := v.(*Claims); ok {
		return cl
	}
	return nil
}

// AdminOnly middleware requires role == admin
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}
		if claims.Role != "admin" {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
		}
		return next(c)
	}
}
