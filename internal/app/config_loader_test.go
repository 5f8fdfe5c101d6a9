package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/romshelf-go/internal/domain"
)

func TestValidateConfig_Defaults(t *testing.T) {
	config := domain.DefaultConfig()
	assert.NoError(t, validateConfig(config))
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Config)
	}{
		{"bad port", func(c *domain.Config) { c.Server.Port = 0 }},
		{"no sources", func(c *domain.Config) { c.Catalog.Sources = nil }},
		{"negative retries", func(c *domain.Config) { c.Catalog.MaxRetries = -1 }},
		{"zero page size", func(c *domain.Config) { c.Catalog.PageSize = 0 }},
		{"zero timeout", func(c *domain.Config) { c.Catalog.RequestTimeout = 0 }},
		{"no database path", func(c *domain.Config) { c.Session.DatabasePath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := domain.DefaultConfig()
			tt.mutate(config)
			assert.Error(t, validateConfig(config))
		})
	}
}

func TestDefaultConfig_SourceOrder(t *testing.T) {
	config := domain.DefaultConfig()

	// Primary first, fallbacks after, in fixed order
	require.Equal(t, []string{"games.json", "gbaroms.json", "sgame.json"}, config.Catalog.Sources)
	assert.Equal(t, 2, config.Catalog.MaxRetries)
	assert.Equal(t, 50, config.Catalog.PageSize)
	assert.Equal(t, ":memory:", config.Session.DatabasePath)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("ROMSHELF_TEST_DIR", "/tmp/romshelf")
	assert.Equal(t, "/tmp/romshelf/session.db", expandPath("$ROMSHELF_TEST_DIR/session.db"))
}
