package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ORDER_DISPATCH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, CatalogSourceMock, cfg.CatalogSource)
	assert.Equal(t, "MAIN-CATEGORY", cfg.CategoryAxis)
	assert.Equal(t, CartStoreMemory, cfg.CartStore)
	assert.Equal(t, DispatchEmail, cfg.OrderDispatch)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 5*time.Minute, cfg.CategoryCacheTTL)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.False(t, cfg.UseEmailReputation)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mithila")
	t.Setenv("SEARCH_DEBOUNCE", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
}

func TestLoad_RejectsUnknownModes(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"dispatch", map[string]string{"ORDER_DISPATCH": "carrier-pigeon"}},
		{"cart store", map[string]string{"CART_STORE": "disk", "ORDER_DISPATCH": "email"}},
		{"catalog", map[string]string{"CATALOG_SOURCE": "ftp", "ORDER_DISPATCH": "email"}},
		{"remote without url", map[string]string{"CATALOG_SOURCE": "remote", "ORDER_DISPATCH": "email"}},
		{"log without database", map[string]string{"ORDER_DISPATCH": "log"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))
}

func TestLoadStoreProfile(t *testing.T) {
	p, err := LoadStoreProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStoreProfile(), p)

	path := filepath.Join(t.TempDir(), "store.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Mithila Bazaar Patna\nwhatsapp_number: \"919999999999\"\n"), 0o600))

	p, err = LoadStoreProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Mithila Bazaar Patna", p.Name)
	assert.Equal(t, "919999999999", p.WhatsAppNumber)
	assert.Equal(t, DefaultStoreProfile().OrderEmail, p.OrderEmail)

	_, err = LoadStoreProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
