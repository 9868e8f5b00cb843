package cmd

import (
	"taxform/models"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after merging defaults, taxform.yaml,
TAXFORM_* variables and flags. The output is a valid taxform.yaml.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configFile is the on-disk layout of taxform.yaml.
type configFile struct {
	Address       string `yaml:"address"`
	SubmitURL     string `yaml:"submit_url"`
	SubmitTimeout string `yaml:"submit_timeout"`
	SessionTTL    string `yaml:"session_ttl"`
	RateLimit     int    `yaml:"rate_limit"`
	LogLevel      string `yaml:"log_level"`
}

func marshalConfig(cfg models.Config) ([]byte, error) {
	out, err := yaml.Marshal(configFile{
		Address:       cfg.Address,
		SubmitURL:     cfg.SubmitURL,
		SubmitTimeout: cfg.SubmitTimeout.String(),
		SessionTTL:    cfg.SessionTTL.String(),
		RateLimit:     cfg.RateLimit,
		LogLevel:      cfg.LogLevel,
	})
	if err != nil {
		return nil, serr.Wrap(err, "failed to encode config")
	}
	return out, nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := marshalConfig(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
