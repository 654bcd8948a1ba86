package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Token: "ghp_test",
			Orgs:  []string{"euroblaze"},
		},
		Odoo: OdooConfig{
			Password: "secret",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"https://reports.example.com"},
		},
		App: AppConfig{Environment: "development"},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("accepts a complete configuration", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("reports all missing required fields", func(t *testing.T) {
		cfg := validConfig()
		cfg.Odoo.Password = ""
		cfg.GitHub.Token = ""
		cfg.GitHub.Orgs = nil

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ODOO_PASSWORD")
		assert.Contains(t, err.Error(), "GITHUB_TOKEN")
		assert.Contains(t, err.Error(), "GITHUB_ORGS")
	})

	t.Run("rejects wildcard CORS in production", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "production"
		cfg.CORS.AllowedOrigins = []string{"*"}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CORS_ALLOWED_ORIGINS")
	})

	t.Run("allows wildcard CORS outside production", func(t *testing.T) {
		cfg := validConfig()
		cfg.CORS.AllowedOrigins = []string{"*"}

		require.NoError(t, cfg.Validate())
	})
}

func TestConfig_EnvironmentPredicates(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}
