package cmd

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerhand/internal/config"
	"github.com/arcanaland/pokerhand/internal/deck"
)

var (
	cfgFile string
	verbose bool

	settings = config.NewViper()
	logger   = slog.Default()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pokerhand",
	Short: "Deal five-card poker hands and name their ranking",
	Long: `Pokerhand deals five cards from a remote card-dealing API, shows them in the
terminal and names the best poker ranking the hand holds.

The deck is remembered between runs and reshuffled before every deal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
		slog.SetDefault(logger)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/pokerhand/config.toml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log API requests and other details")
	RootCmd.PersistentFlags().String("api-url", "", "base URL of the card-dealing API")
	_ = settings.BindPFlag("api_url", RootCmd.PersistentFlags().Lookup("api-url"))

	RootCmd.AddCommand(validateCmd)
}

func newLogger(debug bool) *slog.Logger {
	pl := pterm.DefaultLogger.WithWriter(os.Stderr)
	if debug {
		pl = pl.WithLevel(pterm.LogLevelDebug)
	}
	return slog.New(pterm.NewSlogHandler(pl))
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(settings, cfgFile)
}

func newClient(cfg *config.Config) *deck.Client {
	return deck.NewClient(cfg.APIURL, deck.WithTimeout(cfg.Timeout), deck.WithLogger(logger))
}

func newDealer(cfg *config.Config) *deck.Dealer {
	d := deck.NewDealer(newClient(cfg), config.NewFileSessionStore(""), logger)
	d.SetDeckCount(cfg.DeckCount)
	return d
}
