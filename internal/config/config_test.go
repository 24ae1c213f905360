package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("MODE", "test")
	t.Setenv("SJ_LOGIN", "user@example.org")
	t.Setenv("SJ_PASSWORD", "qwerty")
	t.Setenv("SJ_CLIENT_ID", "2024")
	t.Setenv("SJ_CLIENT_SECRET", "secret")
}

func Test_Config_LoadsFromFile(t *testing.T) {

	setRequiredEnv(t)

	cfg := Get()

	assert.Equal(t, "https://api.superjob.ru/2.20", cfg.SJ.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.SJ.RequestTimeout)
	assert.Equal(t, 13, cfg.Pipeline.TownID)
	assert.Equal(t, 5, cfg.Pipeline.Pages)
	assert.Equal(t, 100, cfg.Pipeline.PerPage)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, 75, cfg.Pipeline.Cutoff)
	assert.Equal(t, 23, cfg.Pipeline.SourceID)
	assert.Len(t, cfg.Pipeline.Catalogues, 30)
	require.NotEmpty(t, cfg.DB.ConnectionString)
}

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	setRequiredEnv(t)

	os.Setenv("DB_CONNECTION_STRING", "overrideConnectionString")
	os.Setenv("LOG_LEVEL", "DEBUG")
	defer os.Unsetenv("DB_CONNECTION_STRING")
	defer os.Unsetenv("LOG_LEVEL")

	cfg := Get()

	assert.Equal(t, "user@example.org", cfg.SJ.Login)
	assert.Equal(t, "qwerty", cfg.SJ.Password)
	assert.Equal(t, "2024", cfg.SJ.ClientID)
	assert.Equal(t, "secret", cfg.SJ.ClientSecret)
	assert.Equal(t, "overrideConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
}
