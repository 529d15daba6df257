package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(NewViper(), path)

	require.NoError(t, err)
	assert.Equal(t, "", cfg.Server)
	assert.False(t, cfg.VerifyTLS)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &Config{
		Server:    "https://pasty.example.com",
		Username:  "alice",
		VerifyTLS: true,
		Timeout:   5 * time.Second,
		Password:  "must-not-be-saved",
	}

	require.NoError(t, Save(in, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "must-not-be-saved")

	out, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, in.Server, out.Server)
	assert.Equal(t, in.Username, out.Username)
	assert.True(t, out.VerifyTLS)
	assert.Equal(t, 5*time.Second, out.Timeout)
	assert.Empty(t, out.Password)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(&Config{Server: "http://file", Username: "bob", Timeout: time.Second}, path))

	t.Setenv("PASTY_SERVER", "http://env")
	t.Setenv("PASTY_PASSWORD", "from-env")
	t.Setenv("PASTY_VERIFY_TLS", "true")

	cfg, err := Load(NewViper(), path)

	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.Server)
	assert.Equal(t, "bob", cfg.Username)
	assert.Equal(t, "from-env", cfg.Password)
	assert.True(t, cfg.VerifyTLS)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := Load(NewViper(), path)

	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PASTY_USERNAME=carol\n"), 0o600))
	t.Setenv("PASTY_USERNAME", "")
	os.Unsetenv("PASTY_USERNAME")

	require.NoError(t, LoadEnvFile(envPath))
	assert.Equal(t, "carol", os.Getenv("PASTY_USERNAME"))

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
	assert.NoError(t, LoadEnvFile(""))
}

func TestValidate(t *testing.T) {
	valid := Config{Server: "http://x", Username: "u", Timeout: time.Second}
	assert.NoError(t, valid.Validate())

	noServer := valid
	noServer.Server = ""
	assert.ErrorContains(t, noServer.Validate(), "no server configured")

	noUser := valid
	noUser.Username = ""
	assert.ErrorContains(t, noUser.Validate(), "no username configured")

	badTimeout := valid
	badTimeout.Timeout = 0
	assert.Error(t, badTimeout.Validate())
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, ".pasty", filepath.Base(filepath.Dir(path)))
}
