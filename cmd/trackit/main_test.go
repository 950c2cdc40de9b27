package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/trackit/internal/config"
	"github.com/jask/trackit/internal/secrets"
)

func tokenConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("TRACKIT_TOKEN", "")

	var cfg config.Config
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.Session.TokenEnv = "TRACKIT_TOKEN"
	cfg.Session.Token = "from-config"
	return cfg
}

func TestResolveTokenPrecedence(t *testing.T) {
	cfg := tokenConfig(t)

	require.Equal(t, "from-config", resolveToken(cfg))

	require.NoError(t, secrets.StoreToken(cfg.API.BaseURL, "from-store"))
	require.Equal(t, "from-store", resolveToken(cfg))

	t.Setenv("TRACKIT_TOKEN", "  from-env  ")
	require.Equal(t, "from-env", resolveToken(cfg))
}

func TestResolveTokenCustomEnv(t *testing.T) {
	cfg := tokenConfig(t)
	cfg.Session.TokenEnv = "HABITS_TOKEN"
	t.Setenv("HABITS_TOKEN", "custom")
	t.Setenv("TRACKIT_TOKEN", "ignored")

	require.Equal(t, "custom", resolveToken(cfg))
}

func TestResolveTokenBlankEnvNameFallsBackToDefault(t *testing.T) {
	cfg := tokenConfig(t)
	cfg.Session.TokenEnv = " "
	t.Setenv("TRACKIT_TOKEN", "default-env")

	require.Equal(t, "default-env", resolveToken(cfg))
}

func TestResolveTokenEmptyWhenNothingConfigured(t *testing.T) {
	cfg := tokenConfig(t)
	cfg.Session.Token = ""

	require.Empty(t, resolveToken(cfg))
}
