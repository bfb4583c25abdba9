package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("UHPC_DATABASE_URL", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 4, c.CompareWorkers)
	assert.False(t, c.OTel.Enabled)
	assert.Empty(t, c.DatabaseURL)

	url, err := c.ResolveDatabaseURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file:"))
	assert.True(t, strings.HasSuffix(url, "uhpc.db"))
	assert.Equal(t, url, c.DatabaseURL)
}

func TestLoad_WithoutHomeDirectory(t *testing.T) {
	t.Setenv("HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("UHPC_DATABASE_URL", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Empty(t, c.DatabaseURL)

	_, err = c.ResolveDatabaseURL()
	assert.Error(t, err)
}

func TestResolveDatabaseURL_KeepsExplicitURL(t *testing.T) {
	c := &Config{DatabaseURL: "libsql://uhpc.turso.io"}
	url, err := c.ResolveDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "libsql://uhpc.turso.io", url)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("UHPC_DATABASE_URL", "libsql://uhpc.turso.io")
	t.Setenv("UHPC_AUTH_TOKEN", "secret")
	t.Setenv("UHPC_ADDR", ":9090")
	t.Setenv("UHPC_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("UHPC_LOG_LEVEL", "debug")
	t.Setenv("UHPC_COMPARE_WORKERS", "8")
	t.Setenv("UHPC_OTEL_ENABLED", "true")
	t.Setenv("UHPC_OTEL_ENDPOINT", "localhost:4317")
	t.Setenv("UHPC_OTEL_INSECURE", "true")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "libsql://uhpc.turso.io", c.DatabaseURL)
	assert.Equal(t, "secret", c.AuthToken)
	assert.Equal(t, ":9090", c.Addr)
	assert.Equal(t, 3*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 8, c.CompareWorkers)
	assert.Equal(t, OTel{Enabled: true, Endpoint: "localhost:4317", Insecure: true}, c.OTel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("UHPC_DATABASE_URL", "file:test.db")

	t.Setenv("UHPC_SHUTDOWN_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("UHPC_SHUTDOWN_TIMEOUT", "1s")
	t.Setenv("UHPC_COMPARE_WORKERS", "0")
	_, err = Load()
	assert.Error(t, err)
}

func TestUsage_ListsVariables(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Usage(&b))
	for _, key := range []string{"UHPC_DATABASE_URL", "UHPC_ADDR", "UHPC_COMPARE_WORKERS", "UHPC_OTEL_ENDPOINT"} {
		assert.Contains(t, b.String(), key)
	}
}
