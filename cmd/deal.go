package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Deal a five-card hand and name its ranking",
	Long: `Deal reshuffles the remembered deck (or asks the dealing API for a new one),
draws five cards, turns them over one at a time and prints the best poker
ranking of the hand.

Examples:
  pokerhand deal
  pokerhand deal --sort --reveal-delay 0
  pokerhand deal --art`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sorted, _ := cmd.Flags().GetBool("sort")

		dealer := newDealer(cfg)
		spinner, _ := pterm.DefaultSpinner.Start("Shuffling the deck ...")
		h, state, err := dealer.DealHand(cmd.Context())
		if err != nil {
			spinner.Fail("Could not deal a hand")
			return err
		}
		spinner.Success(fmt.Sprintf("Dealt from deck %s, %d cards left", state.ID, state.Remaining))

		cards := h.Cards()
		if sorted {
			cards = h.SortByRank(true)
		}

		var art []string
		if cfg.Art {
			art, err = handArt(cmd.Context(), newClient(cfg), cards, cfg.ArtWidth)
			if err != nil {
				logger.Warn("falling back to plain cards", "error", err)
				art = nil
			}
		}

		out := cmd.OutOrStdout()
		showHand(out, cards, art, cfg.RevealDelay)
		fmt.Fprintln(out, rankingLine(h.HighestHand()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dealCmd)

	dealCmd.Flags().Bool("art", false, "draw the card faces as ANSI art")
	dealCmd.Flags().Duration("reveal-delay", 0, "pause between turning cards over (default reveal_delay from config)")
	dealCmd.Flags().Bool("sort", false, "show the cards ordered by rank, ace high")
	_ = settings.BindPFlag("art", dealCmd.Flags().Lookup("art"))
	_ = settings.BindPFlag("reveal_delay", dealCmd.Flags().Lookup("reveal-delay"))
}
