package validator

import (
	"fmt"
	"strings"

	"github.com/arcanaland/pokerhand/internal/card"
	"github.com/arcanaland/pokerhand/internal/hand"
)

// ValidationResults collects the problems found in a set of card codes.
type ValidationResults struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid reports whether validation found no errors.
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

// Validator checks a proposed set of card codes before it is classified.
type Validator struct {
	Codes   []string
	Results ValidationResults

	// Hand is set by Validate when there are no errors.
	Hand *hand.Hand

	cards []card.Card
}

// NewValidator returns a Validator for codes.
func NewValidator(codes []string) *Validator {
	return &Validator{
		Codes:   codes,
		Results: ValidationResults{},
	}
}

// Validate runs every check and returns the collected results. The error
// return is reserved for failures outside the codes themselves.
func (v *Validator) Validate() (ValidationResults, error) {
	v.Results = ValidationResults{}
	v.Hand = nil
	v.cards = nil

	v.validateCount()
	v.validateCodes()
	v.validateDuplicates()

	if len(v.Results.Errors) > 0 {
		return v.Results, nil
	}

	h, err := hand.New(v.cards...)
	if err != nil {
		return v.Results, fmt.Errorf("building hand: %w", err)
	}
	v.Hand = h
	return v.Results, nil
}

// validateCount checks that exactly one hand's worth of codes was given
func (v *Validator) validateCount() {
	if len(v.Codes) != hand.Size {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("expected %d cards, got %d", hand.Size, len(v.Codes)))
	}
}

func (v *Validator) validateCodes() {
	for i, code := range v.Codes {
		c, err := card.ParseCode(code)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %d: %q is not a card code", i+1, code))
			continue
		}
		v.cards = append(v.cards, c)
	}
}

// validateDuplicates warns about repeated cards. A shoe of several decks can
// deal them, so they are not an error.
func (v *Validator) validateDuplicates() {
	seen := make(map[string]int, len(v.cards))
	for _, c := range v.cards {
		seen[c.Code()]++
	}

	var dups []string
	for _, c := range v.cards {
		if n := seen[c.Code()]; n > 1 {
			dups = append(dups, fmt.Sprintf("%s x%d", c.Code(), n))
			seen[c.Code()] = 0
		}
	}
	if len(dups) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			"duplicate cards (only possible with more than one deck): "+strings.Join(dups, ", "))
	}
}
