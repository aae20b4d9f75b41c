package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerhand/internal/config"
	"github.com/arcanaland/pokerhand/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage the remembered deck",
	Long: `Commands for managing the deck that deal reuses between runs. The deck id
is kept in $XDG_DATA_HOME/pokerhand/session.toml.`,
}

// deckNewCmd represents the deck new command
var deckNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Ask the dealing API for a new shuffled deck and remember it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			count = cfg.DeckCount
		}

		state, err := newClient(cfg).NewDeck(cmd.Context(), count)
		if err != nil {
			return err
		}
		if err := config.NewFileSessionStore("").SetDeckID(state.ID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "New deck %s (%d cards)\n", state.ID, state.Remaining)
		return nil
	},
}

// deckShuffleCmd represents the deck shuffle command
var deckShuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Reshuffle the remembered deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		id, err := config.NewFileSessionStore("").DeckID()
		if err != nil {
			return err
		}
		if id == "" {
			return fmt.Errorf("no deck remembered yet, run 'pokerhand deck new' or 'pokerhand deal'")
		}

		remaining, _ := cmd.Flags().GetBool("remaining")
		state, err := newClient(cfg).Shuffle(cmd.Context(), id, remaining)
		if errors.Is(err, deck.ErrDeckNotFound) {
			return fmt.Errorf("the dealing API no longer knows deck %s, run 'pokerhand deck new': %w", id, err)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Shuffled deck %s (%d cards)\n", state.ID, state.Remaining)
		return nil
	},
}

// deckShowCmd represents the deck show command
var deckShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the remembered deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewFileSessionStore("")
		session, err := store.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if session.DeckID == "" {
			fmt.Fprintln(out, "No deck remembered yet.")
			return nil
		}
		fmt.Fprintf(out, "Deck:    %s\n", session.DeckID)
		fmt.Fprintf(out, "Updated: %s\n", session.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "File:    %s\n", store.Path)
		return nil
	},
}

// deckForgetCmd represents the deck forget command
var deckForgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Forget the remembered deck so the next deal starts a new one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.NewFileSessionStore("").Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deck forgotten.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckNewCmd)
	deckCmd.AddCommand(deckShuffleCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckForgetCmd)

	deckNewCmd.Flags().Int("count", 0, "number of 52-card decks to shuffle together (default deck_count from config)")
	deckShuffleCmd.Flags().Bool("remaining", false, "only shuffle the cards still in the deck")
}
