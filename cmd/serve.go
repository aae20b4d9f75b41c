package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerhand/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dealing and classification HTTP API",
	Long: `Serve runs an HTTP API for a browser front end:

  POST /api/hands           deal and classify a hand
  POST /api/hands/classify  classify {"cards": [...codes]}
  GET  /api/rankings        ranking labels, strongest first
  GET  /ws/deal             deal and reveal card by card over a WebSocket
  GET  /health

The server stops gracefully on interrupt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s := server.New(newDealer(cfg), server.Options{
			RevealDelay:    cfg.RevealDelay,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         logger,
		})
		return s.ListenAndServe(cmd.Context(), cfg.Server.Addr)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (default server.addr from config)")
	_ = settings.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}
