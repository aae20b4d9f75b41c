package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerhand/internal/validator"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [code...]",
	Short: "Name the ranking of five cards given by code",
	Long: `Classify works offline: it reads five card codes, draws the cards and prints
the best poker ranking they hold.

Example:
  pokerhand classify 0S JS QS KS AS`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := validator.NewValidator(args)
		results, err := v.Validate()
		if err != nil {
			return err
		}
		if !results.Valid() {
			printResults(cmd.ErrOrStderr(), results)
			return fmt.Errorf("invalid hand")
		}
		for _, warn := range results.Warnings {
			logger.Warn(warn)
		}

		cards := v.Hand.Cards()
		if sorted, _ := cmd.Flags().GetBool("sort"); sorted {
			cards = v.Hand.SortByRank(true)
		}

		out := cmd.OutOrStdout()
		showHand(out, cards, nil, 0)
		fmt.Fprintln(out, rankingLine(v.Hand.HighestHand()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().Bool("sort", false, "show the cards ordered by rank, ace high")
}
