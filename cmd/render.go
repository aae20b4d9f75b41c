package cmd

import (
	"context"
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/arcanaland/pokerhand/internal/card"
	"github.com/arcanaland/pokerhand/internal/config"
	"github.com/arcanaland/pokerhand/internal/deck"
	"github.com/arcanaland/pokerhand/internal/hand"
)

const (
	boxInner  = 5
	columnGap = 2
)

var (
	redSuit   = colorize.New(colorize.FgHiRed, colorize.Bold)
	blackSuit = colorize.New(colorize.FgHiWhite, colorize.Bold)
	cardBack  = colorize.New(colorize.FgBlue)
)

// cardBox draws a face-up card as a small box
func cardBox(c card.Card) []string {
	paint := blackSuit
	if c.Suit().Red() {
		paint = redSuit
	}
	label := c.Value().String()
	border := strings.Repeat("─", boxInner)

	return []string{
		"┌" + border + "┐",
		"│" + paint.Sprint(padRight(label, boxInner)) + "│",
		"│" + paint.Sprint(center(c.Suit().Symbol(), boxInner)) + "│",
		"│" + paint.Sprint(padLeft(label, boxInner)) + "│",
		"└" + border + "┘",
	}
}

// backBox draws a face-down card
func backBox() []string {
	border := strings.Repeat("─", boxInner)
	fill := cardBack.Sprint(strings.Repeat("░", boxInner))
	return []string{
		"┌" + border + "┐",
		"│" + fill + "│",
		"│" + fill + "│",
		"│" + fill + "│",
		"└" + border + "┘",
	}
}

// handBlocks returns one block per card, face up for the first shown cards.
// art, when present, replaces the box of a face-up card.
func handBlocks(cards []card.Card, art []string, shown int) [][]string {
	blocks := make([][]string, len(cards))
	for i, c := range cards {
		switch {
		case i >= shown:
			blocks[i] = backBox()
		case i < len(art) && art[i] != "":
			blocks[i] = strings.Split(strings.TrimRight(art[i], "\n"), "\n")
		default:
			blocks[i] = cardBox(c)
		}
	}
	return blocks
}

// layoutColumns places blocks side by side, starting a new row whenever the
// next block would not fit in width.
func layoutColumns(blocks [][]string, width int) string {
	var out strings.Builder
	var row [][]string
	rowWidth := 0

	flush := func() {
		if len(row) == 0 {
			return
		}
		writeRow(&out, row)
		row = nil
		rowWidth = 0
	}

	for _, b := range blocks {
		w := blockWidth(b)
		if len(row) > 0 && rowWidth+columnGap+w > width {
			flush()
		}
		if len(row) > 0 {
			rowWidth += columnGap
		}
		row = append(row, b)
		rowWidth += w
	}
	flush()

	return strings.TrimRight(out.String(), "\n")
}

func writeRow(out *strings.Builder, row [][]string) {
	height := 0
	for _, b := range row {
		height = max(height, len(b))
	}
	for y := 0; y < height; y++ {
		var line strings.Builder
		for i, b := range row {
			if i > 0 {
				line.WriteString(strings.Repeat(" ", columnGap))
			}
			cell := ""
			if y < len(b) {
				cell = b[y]
			}
			line.WriteString(cell)
			line.WriteString(strings.Repeat(" ", blockWidth(b)-visibleWidth(cell)))
		}
		out.WriteString(strings.TrimRight(line.String(), " "))
		out.WriteString("\n")
	}
}

// showHand prints the hand. On a terminal with a delay the cards are turned
// over one at a time in a pterm area; otherwise they are printed at once.
func showHand(w io.Writer, cards []card.Card, art []string, delay time.Duration) {
	width := terminalWidth()
	if delay <= 0 || !isTerminal(w) {
		fmt.Fprintln(w, layoutColumns(handBlocks(cards, art, len(cards)), width))
		return
	}

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		fmt.Fprintln(w, layoutColumns(handBlocks(cards, art, len(cards)), width))
		return
	}
	for shown := 0; shown <= len(cards); shown++ {
		area.Update(layoutColumns(handBlocks(cards, art, shown), width))
		if shown < len(cards) {
			time.Sleep(delay)
		}
	}
	_ = area.Stop()
}

func rankingLine(r hand.Ranking) string {
	return colorize.CyanString("Ranking: ") + colorize.New(colorize.FgHiYellow, colorize.Bold).Sprint(r.String())
}

// handArt converts every card face to ANSI art, width characters wide
func handArt(ctx context.Context, client *deck.Client, cards []card.Card, width int) ([]string, error) {
	art := make([]string, len(cards))
	for i, c := range cards {
		a, err := cardArt(ctx, client, c, width)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", c.Code(), err)
		}
		art[i] = a
	}
	return art, nil
}

// cardArt returns the ANSI art for a card, converting and caching it on first use
func cardArt(ctx context.Context, client *deck.Client, c card.Card, width int) (string, error) {
	cacheDir := filepath.Join(config.GetCacheDir(), "ansi_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}

	key := fmt.Sprintf("%s@%d", c.Image(), width)
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	img, err := client.FetchImage(ctx, c.Image())
	if err != nil {
		return "", err
	}
	art := imageToAnsi(img, width, artHeight(img, width))

	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		logger.Debug("could not cache ANSI art", "path", cachePath, "error", err)
	}
	return art, nil
}

// artHeight keeps the image's aspect ratio. Each character cell shows two
// pixels stacked vertically, so rows are half the scaled height.
func artHeight(img image.Image, width int) int {
	b := img.Bounds()
	if b.Dx() == 0 {
		return 1
	}
	return max(1, width*b.Dy()/b.Dx()/2)
}

// imageToAnsi converts an image to ANSI art, width by height character cells
func imageToAnsi(img image.Image, width, height int) string {
	// doubled for half-block characters
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			col2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// top pixels as foreground, bottom pixels as background
			fg := averageColor(col1, col2)
			bg := averageColor(col3, col4)
			buffer.WriteString(ansiColorString('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}.Clamped()
}

// ansiColorString formats a character with 24-bit foreground and background colors
func ansiColorString(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	currentLine := words[0]
	for _, word := range words[1:] {
		if visibleWidth(currentLine)+1+visibleWidth(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}
	return append(result, currentLine)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func blockWidth(block []string) int {
	w := 0
	for _, line := range block {
		w = max(w, visibleWidth(line))
	}
	return w
}

func visibleWidth(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s)))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s))) + s
}

func center(s string, width int) string {
	gap := max(0, width-utf8.RuneCountInString(s))
	return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
}
