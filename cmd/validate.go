package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerhand/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [code...]",
	Short: "Check that card codes make a valid five-card hand",
	Long: `Validate checks that exactly five card codes were given and that each one
names a real card. Repeated cards are reported as warnings, since a shoe of
several decks can deal them.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := validator.NewValidator(args)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		hand := strings.Join(args, " ")
		if results.Valid() {
			fmt.Fprintln(out, "Validation Results:")
			fmt.Fprintln(out, "-------------------")
			fmt.Fprintf(out, "✅ Hand '%s' is valid: %s\n", hand, v.Hand)
			printWarnings(out, results.Warnings)
			return nil
		}

		printResults(out, results)
		return fmt.Errorf("validation failed")
	},
}

func printResults(w io.Writer, results validator.ValidationResults) {
	fmt.Fprintln(w, "Validation Results:")
	fmt.Fprintln(w, "-------------------")
	fmt.Fprintf(w, "❌ %d validation errors:\n", len(results.Errors))
	for i, err := range results.Errors {
		fmt.Fprintf(w, "%d. %s\n", i+1, err)
	}
	printWarnings(w, results.Warnings)
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "\nWarnings:")
	width := terminalWidth() - 3
	for i, warn := range warnings {
		lines := wrapText(warn, width)
		fmt.Fprintf(w, "%d. %s\n", i+1, lines[0])
		for _, l := range lines[1:] {
			fmt.Fprintf(w, "   %s\n", l)
		}
	}
}
