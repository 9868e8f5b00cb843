package cmd

import (
	"taxform/web"

	"github.com/rohanthewiz/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.SetLogLevel(cfg.LogLevel)

	app := web.NewApp(cfg)
	return web.Run(web.NewServer(app), app)
}
