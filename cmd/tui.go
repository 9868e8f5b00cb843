package cmd

import (
	"taxform/models"
	"taxform/tui"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill in the form in the terminal",
	Long: `Fill in the form in the terminal. Submissions go to --submit-url,
so start "taxform serve" first when using the default local endpoint.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Log lines would draw over the form
	logger.SetLogLevel("error")

	if err := tui.Run(models.NewSubmitClient(cfg), cfg.SubmitTimeout); err != nil {
		return serr.Wrap(err, "running terminal form")
	}
	return nil
}
