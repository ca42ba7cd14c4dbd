package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/games")
	t.Setenv("CLIENT_ID", "client")
	t.Setenv("ACCESS_TOKEN", "token")
	t.Setenv("SESSION_SECRET", "secret")
}

func TestNormalizeDatabaseURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"legacy scheme", "postgres://u:p@host/db", "postgresql://u:p@host/db"},
		{"modern scheme", "postgresql://u:p@host/db", "postgresql://u:p@host/db"},
		{"only first occurrence", "postgres://u:p@host/postgres://x", "postgresql://u:p@host/postgres://x"},
		{"sqlite path", "file::memory:", "file::memory:"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDatabaseURL(tt.in))
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgresql://user:pw@localhost:5432/games", cfg.DatabaseURL)
	assert.Equal(t, PostgresDbType, cfg.DatabaseType)
	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "token", cfg.AccessToken)
	assert.Equal(t, DefaultCatalogURL, cfg.CatalogURL)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, LogTypeConsole, cfg.LogType)
}

func TestLoad_FromDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_URL=file::memory:\nDATABASE_TYPE=sqlite\nCLIENT_ID=file-client\nACCESS_TOKEN=file-token\nSESSION_SECRET=s\nPORT=9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, SqliteDbType, cfg.DatabaseType)
	assert.Equal(t, "file-client", cfg.ClientID)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("SESSION_SECRET", "secret")

	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoggerSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      LoggerSettings
		expectedError bool
	}{
		{
			name:     "console",
			settings: LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole},
		},
		{
			name:     "file",
			settings: LoggerSettings{LogLevel: LogLevelDebug, LogType: LogTypeFile, FilePath: "app.log", MaxSize: 1, MaxBackups: 20, MaxAge: 7},
		},
		{
			name:          "file without path",
			settings:      LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, MaxSize: 1, MaxBackups: 1, MaxAge: 1},
			expectedError: true,
		},
		{
			name:          "unknown level",
			settings:      LoggerSettings{LogLevel: "verbose", LogType: LogTypeConsole},
			expectedError: true,
		},
		{
			name:          "unknown type",
			settings:      LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_DatabaseURLRequiredForPostgresOnly(t *testing.T) {
	t.Setenv("CLIENT_ID", "client")
	t.Setenv("ACCESS_TOKEN", "token")
	t.Setenv("SESSION_SECRET", "secret")

	t.Run("sqlite falls back to memory", func(t *testing.T) {
		t.Setenv("DATABASE_TYPE", SqliteDbType)

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, cfg.DatabaseSettings().DSN)
	})

	t.Run("postgres", func(t *testing.T) {
		t.Setenv("DATABASE_TYPE", PostgresDbType)

		_, err := Load(t.TempDir())
		require.Error(t, err)
	})
}

func TestLoad_TrustedProxies(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,172.16.0.0/12")
	cfg, err = Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
}
