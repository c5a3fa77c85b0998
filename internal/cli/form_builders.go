package cli

import "github.com/charmbracelet/huh"

// amountInput returns a huh.Input for a decimal amount. Blank means zero.
func amountInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("0").
		Value(value).
		Validate(validateAmount)
}

// countInput returns a huh.Input for a whole-number target. Blank means zero.
func countInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("0").
		Value(value).
		Validate(validateCount)
}
