package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taxform/models"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// newTestCommand returns a command with fresh config flags parsed from args.
func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	saved := cfgFile
	t.Cleanup(func() { cfgFile = saved })
	cfgFile = ""

	c := &cobra.Command{Use: "test"}
	registerConfigFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newTestCommand(t))
	require.NoError(t, err)
	require.Equal(t, models.DefaultConfig(), cfg)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("TAXFORM_SUBMIT_URL", "https://example.com/register")
	t.Setenv("TAXFORM_RATE_LIMIT", "10")
	t.Setenv("TAXFORM_SUBMIT_TIMEOUT", "5s")

	cfg, err := loadConfig(newTestCommand(t))
	require.NoError(t, err)
	require.Equal(t, "https://example.com/register", cfg.SubmitURL)
	require.Equal(t, 10, cfg.RateLimit)
	require.Equal(t, 5*time.Second, cfg.SubmitTimeout)
}

func TestLoadConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv("TAXFORM_LOG_LEVEL", "debug")

	cfg, err := loadConfig(newTestCommand(t, "--log-level=warn"))
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxform.yaml")
	content := "address: \":9000\"\nsubmit_timeout: 12s\nsession_ttl: 2h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadConfig(newTestCommand(t, "--config", path))
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Address)
	require.Equal(t, 12*time.Second, cfg.SubmitTimeout)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(newTestCommand(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := loadConfig(newTestCommand(t, "--submit-url", "ftp://example.com/x"))
	require.Error(t, err)

	_, err = loadConfig(newTestCommand(t, "--submit-timeout", "0s"))
	require.Error(t, err)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["serve"])
	require.True(t, names["tui"])
	require.True(t, names["config"])
}

func TestMarshalConfigRoundTrip(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.SubmitTimeout = 12 * time.Second
	cfg.RateLimit = 0

	out, err := marshalConfig(cfg)
	require.NoError(t, err)
	require.Contains(t, string(out), "submit_timeout: 12s")

	path := filepath.Join(t.TempDir(), "taxform.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o600))

	got, err := loadConfig(newTestCommand(t, "--config", path))
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
