package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/pokerhand/internal/hand"
)

func TestValidateGoodHand(t *testing.T) {
	v := NewValidator([]string{"2S", "3S", "4S", "5S", "6S"})
	results, err := v.Validate()
	require.NoError(t, err)

	assert.True(t, results.Valid())
	assert.Empty(t, results.Warnings)
	require.NotNil(t, v.Hand)
	assert.Equal(t, hand.StraightFlush, v.Hand.HighestHand())
}

func TestValidateAcceptsCodeVariants(t *testing.T) {
	v := NewValidator([]string{"10h", "TH", "0d", "as", "2C"})
	results, err := v.Validate()
	require.NoError(t, err)
	assert.True(t, results.Valid())
	assert.Len(t, results.Warnings, 1, "10h and TH are the same card")
	assert.Contains(t, results.Warnings[0], "0H x2")
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		codes  []string
		errors []string
	}{
		{
			name:   "too few",
			codes:  []string{"AS", "KS"},
			errors: []string{"expected 5 cards, got 2"},
		},
		{
			name:   "too many",
			codes:  []string{"AS", "KS", "QS", "JS", "0S", "9S"},
			errors: []string{"expected 5 cards, got 6"},
		},
		{
			name:   "bad code",
			codes:  []string{"AS", "KS", "QS", "JS", "1X"},
			errors: []string{`card 5: "1X" is not a card code`},
		},
		{
			name:  "everything wrong",
			codes: []string{"ZZ", ""},
			errors: []string{
				"expected 5 cards, got 2",
				`card 1: "ZZ" is not a card code`,
				`card 2: "" is not a card code`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(tt.codes)
			results, err := v.Validate()
			require.NoError(t, err)
			assert.False(t, results.Valid())
			assert.Equal(t, tt.errors, results.Errors)
			assert.Nil(t, v.Hand)
		})
	}
}

func TestValidateDuplicatesWarnOnce(t *testing.T) {
	v := NewValidator([]string{"AS", "AS", "AS", "KD", "KD"})
	results, err := v.Validate()
	require.NoError(t, err)

	assert.True(t, results.Valid())
	assert.Equal(t, []string{"duplicate cards (only possible with more than one deck): AS x3, KD x2"}, results.Warnings)
	assert.Equal(t, hand.FullHouse, v.Hand.HighestHand())
}

func TestValidateIsRepeatable(t *testing.T) {
	v := NewValidator([]string{"AS"})
	first, _ := v.Validate()
	second, _ := v.Validate()
	assert.Equal(t, first, second)
}

func TestValidateFiveOfTheSameCard(t *testing.T) {
	v := NewValidator([]string{"AS", "AS", "AS", "AS", "AS"})
	results, err := v.Validate()
	require.NoError(t, err)

	// a multi-deck shoe can deal the same card five times
	assert.True(t, results.Valid())
	assert.Equal(t, []string{"duplicate cards (only possible with more than one deck): AS x5"}, results.Warnings)
	require.NotNil(t, v.Hand)
	assert.Equal(t, hand.Flush, v.Hand.HighestHand())
}
