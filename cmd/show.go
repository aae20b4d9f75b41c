package cmd

import (
	"fmt"
	"io"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerhand/internal/card"
)

var showCmd = &cobra.Command{
	Use:   "show [code]",
	Short: "Display a single card with ANSI art",
	Long: `Show fetches the face of a card from the dealing API, converts it to ANSI
terminal art and prints it next to the card's details.

Codes are a rank followed by a suit letter; the ten may be written 0, 10 or T.

Examples:
  pokerhand show AS
  pokerhand show 10h --width 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := card.ParseCode(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = cfg.ArtWidth
		}

		c, err = withImageFrom(c, cfg.APIURL)
		if err != nil {
			return err
		}

		art, err := cardArt(cmd.Context(), newClient(cfg), c, width)
		if err != nil {
			logger.Warn("no art for card, drawing a box instead", "card", c.Code(), "error", err)
			art = strings.Join(cardBox(c), "\n")
		}

		displayCard(cmd.OutOrStdout(), c, art, terminalWidth())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().IntP("width", "w", 0, "width of the ANSI art in characters (default art_width from config)")
}

// withImageFrom points the card's image at the host serving apiURL, so a
// self-hosted dealing API also serves the faces.
func withImageFrom(c card.Card, apiURL string) (card.Card, error) {
	host, ok := strings.CutSuffix(strings.TrimRight(apiURL, "/"), "/api/deck")
	if !ok {
		return c, nil
	}
	return card.NewCard(c.Code(), c.Suit().String(), c.Value().String(), host+"/static/img/"+c.Code()+".png")
}

// cardInfo lists the details printed beside a card
func cardInfo(c card.Card) []string {
	colour := "black"
	if c.Suit().Red() {
		colour = "red"
	}
	return []string{
		colorize.CyanString("Card:  ") + colorize.HiWhiteString("%s", c),
		colorize.CyanString("Code:  ") + colorize.HiWhiteString(c.Code()),
		colorize.CyanString("Rank:  ") + colorize.HiWhiteString(c.Value().String()),
		colorize.CyanString("Suit:  ") + colorize.HiWhiteString("%s · %s · %s", strings.ToLower(c.Suit().String()), c.Suit().Symbol(), colour),
		colorize.CyanString("Image: ") + colorize.HiWhiteString(c.Image()),
	}
}

// displayCard prints the art on the left and the card details on the right
func displayCard(w io.Writer, c card.Card, art string, width int) {
	artLines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	artWidth := blockWidth(artLines)

	spacing := 4
	infoStartCol := artWidth + spacing
	infoWidth := max(20, width-infoStartCol-2)

	var infoLines []string
	for _, line := range cardInfo(c) {
		if visibleWidth(line) <= infoWidth {
			infoLines = append(infoLines, line)
			continue
		}
		infoLines = append(infoLines, wrapText(line, infoWidth)...)
	}

	fmt.Fprintln(w)
	for i := 0; i < max(len(artLines), len(infoLines)); i++ {
		fmt.Fprint(w, "  ")
		if i < len(artLines) {
			fmt.Fprint(w, artLines[i])
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol-visibleWidth(artLines[i])))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol))
		}
		if i < len(infoLines) {
			fmt.Fprint(w, infoLines[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
