package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "keysort.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func resetGlobalConfig() {
	globalConfig = nil
	configOnce = sync.Once{}
	v = newViper()
}

func TestLoadConfigAppliesDefaultsWithoutFile(t *testing.T) {
	resetGlobalConfig()
	require.NoError(t, LoadConfig(""))
	cfg := GetConfig()
	require.Equal(t, "GoogleStandardSql", cfg.Dialect)
	require.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadConfigReadsYAMLFile(t *testing.T) {
	resetGlobalConfig()
	path := writeTempConfigFile(t, "dialect: PostgreSql\nlog:\n  level: debug\n")
	require.NoError(t, LoadConfig(path))
	cfg := GetConfig()
	require.Equal(t, "PostgreSql", cfg.Dialect)
	require.Equal(t, "DEBUG", cfg.Log.Level)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	resetGlobalConfig()
	path := writeTempConfigFile(t, "dialect: PostgreSql\n")
	os.Setenv("KEYSORT_DIALECT", "googlestandardsql")
	defer os.Unsetenv("KEYSORT_DIALECT")
	require.NoError(t, LoadConfig(path))
	cfg := GetConfig()
	require.Equal(t, "googlestandardsql", cfg.Dialect)
}

func TestLoadConfigRejectsInvalidLogLevel(t *testing.T) {
	resetGlobalConfig()
	path := writeTempConfigFile(t, "log:\n  level: nonsense\n")
	require.NoError(t, LoadConfig(path))
	cfg := GetConfig()
	require.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadConfigIsOnceOnly(t *testing.T) {
	resetGlobalConfig()
	require.NoError(t, LoadConfig(""))
	first := GetConfig()
	require.NoError(t, LoadConfig(writeTempConfigFile(t, "dialect: PostgreSql\n")))
	require.Same(t, first, GetConfig())
}
