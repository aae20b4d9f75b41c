package cmd

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/pokerhand/internal/card"
	"github.com/arcanaland/pokerhand/internal/hand"
)

func TestMain(m *testing.M) {
	colorize.NoColor = true
	os.Exit(m.Run())
}

func mustCard(t *testing.T, code string) card.Card {
	t.Helper()
	c, err := card.ParseCode(code)
	require.NoError(t, err)
	return c
}

func TestCardBox(t *testing.T) {
	assert.Equal(t, []string{
		"┌─────┐",
		"│10   │",
		"│  ♥  │",
		"│   10│",
		"└─────┘",
	}, cardBox(mustCard(t, "0H")))

	assert.Equal(t, []string{
		"┌─────┐",
		"│A    │",
		"│  ♠  │",
		"│    A│",
		"└─────┘",
	}, cardBox(mustCard(t, "AS")))
}

func TestHandBlocks(t *testing.T) {
	cards := []card.Card{mustCard(t, "AS"), mustCard(t, "KD"), mustCard(t, "2C")}

	blocks := handBlocks(cards, nil, 1)
	require.Len(t, blocks, 3)
	assert.Equal(t, cardBox(cards[0]), blocks[0])
	assert.Equal(t, backBox(), blocks[1])
	assert.Equal(t, backBox(), blocks[2])

	blocks = handBlocks(cards, []string{"", "xx\nyy\n", ""}, 3)
	assert.Equal(t, cardBox(cards[0]), blocks[0])
	assert.Equal(t, []string{"xx", "yy"}, blocks[1])
	assert.Equal(t, cardBox(cards[2]), blocks[2])
}

func TestLayoutColumns(t *testing.T) {
	a := []string{"aaa", "a"}
	b := []string{"bb", "bb", "bb"}

	assert.Equal(t, "aaa  bb\na    bb\n     bb", layoutColumns([][]string{a, b}, 80))
	assert.Equal(t, "aaa\na\nbb\nbb\nbb", layoutColumns([][]string{a, b}, 6))
}

func TestLayoutColumnsFitsFiveCards(t *testing.T) {
	h, err := hand.FromCodes("2S", "3H", "4D", "5C", "6S")
	require.NoError(t, err)

	out := layoutColumns(handBlocks(h.Cards(), nil, hand.Size), 80)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, 5*7+4*columnGap, visibleWidth(lines[0]))
	assert.Contains(t, lines[2], "♠")
	assert.Contains(t, lines[2], "♥")
}

func TestShowHandWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	showHand(&buf, []card.Card{mustCard(t, "QC")}, nil, 0)
	assert.Equal(t, strings.Join(cardBox(mustCard(t, "QC")), "\n")+"\n", buf.String())
}

func TestImageToAnsi(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	height := artHeight(img, 4)
	assert.Equal(t, 3, height)

	art := imageToAnsi(img, 4, height)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, "▀▀▀▀", stripAnsi(line))
		assert.Contains(t, line, "\x1b[38;2;255;0;0m")
	}
}

func TestArtHeightNeverZero(t *testing.T) {
	wide := image.NewRGBA(image.Rect(0, 0, 100, 1))
	assert.Equal(t, 1, artHeight(wide, 10))
}

func TestStripAnsi(t *testing.T) {
	assert.Equal(t, "hello", stripAnsi("\x1b[31mhel\x1b[0mlo"))
	assert.Equal(t, 3, visibleWidth("\x1b[1m♠10\x1b[0m"))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{""}, wrapText("   ", 20))
	assert.Equal(t,
		[]string{"duplicate cards", "(only possible with", "more than one deck)"},
		wrapText("duplicate cards (only possible with more than one deck)", 19))
}

func TestDisplayCard(t *testing.T) {
	var buf bytes.Buffer
	c := mustCard(t, "KD")
	displayCard(&buf, c, strings.Join(cardBox(c), "\n"), 100)

	out := buf.String()
	assert.Contains(t, out, "Code:  KD")
	assert.Contains(t, out, "Suit:  diamonds · ♦ · red")
	assert.Contains(t, out, "┌─────┐    Card:  K♦")
	assert.Contains(t, out, "│K    │    Code:  KD")
}

func TestRankingLine(t *testing.T) {
	assert.Equal(t, "Ranking: Full House", rankingLine(hand.FullHouse))
}
