// Package cmd holds the command line entry points.
package cmd

import (
	"errors"
	"os"
	"strings"

	"taxform/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "taxform",
	Short: "Tax registration form with country-aware tax ID validation",
	Long: `taxform serves a registration form (username, country, tax ID) and
posts valid submissions to a configurable endpoint.

Settings come from flags, TAXFORM_* environment variables or taxform.yaml.

Examples:
  taxform serve                          # web form on :8000
  taxform tui                            # the same form in the terminal
  TAXFORM_SUBMIT_URL=https://example.com/register taxform serve`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	registerConfigFlags(rootCmd)
}

// registerConfigFlags adds the settings shared by every subcommand.
func registerConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./taxform.yaml)")
	flags.String("address", models.DefaultAddress, "listen address for the web server")
	flags.String("submit-url", models.DefaultSubmitURL, "endpoint receiving submissions")
	flags.Duration("submit-timeout", models.DefaultSubmitTimeout, "upper bound for one submission")
	flags.Duration("session-ttl", models.DefaultSessionTTL, "idle lifetime of a form session")
	flags.Int("rate-limit", models.DefaultRateLimit, "requests per minute per client, 0 disables")
	flags.String("log-level", models.DefaultLogLevel, "debug, info, warn or error")
}

// configKeys maps viper keys to flag names.
var configKeys = map[string]string{
	"address":        "address",
	"submit_url":     "submit-url",
	"submit_timeout": "submit-timeout",
	"session_ttl":    "session-ttl",
	"rate_limit":     "rate-limit",
	"log_level":      "log-level",
}

// loadConfig merges defaults, the config file, TAXFORM_* variables and
// flags, in increasing precedence, and validates the result.
func loadConfig(cmd *cobra.Command) (models.Config, error) {
	v := viper.New()

	def := models.DefaultConfig()
	v.SetDefault("address", def.Address)
	v.SetDefault("submit_url", def.SubmitURL)
	v.SetDefault("submit_timeout", def.SubmitTimeout)
	v.SetDefault("session_ttl", def.SessionTTL)
	v.SetDefault("rate_limit", def.RateLimit)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("TAXFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("taxform")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return models.Config{}, serr.Wrap(err, "failed to read config file")
		}
	} else {
		logger.Debug("Loaded config file", "path", v.ConfigFileUsed())
	}

	for key, flag := range configKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return models.Config{}, serr.Wrap(err, "failed to bind flag "+flag)
			}
		}
	}

	cfg := models.Config{
		Address:       v.GetString("address"),
		SubmitURL:     v.GetString("submit_url"),
		SubmitTimeout: v.GetDuration("submit_timeout"),
		SessionTTL:    v.GetDuration("session_ttl"),
		RateLimit:     v.GetInt("rate_limit"),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
	}
	if err := cfg.Validate(); err != nil {
		return models.Config{}, serr.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
