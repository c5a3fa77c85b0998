package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank", "   \t ", nil},
		{"words", "tier set 2 rate 4.5", []string{"tier", "set", "2", "rate", "4.5"}},
		{"extra spaces", "  set   parcels  6000 ", []string{"set", "parcels", "6000"}},
		{"single quotes", "search 'Key Account'", []string{"search", "Key Account"}},
		{"double quotes", `search "Sales Exec"`, []string{"search", "Sales Exec"}},
		{"escaped space", `search Key\ Account`, []string{"search", "Key Account"}},
		{"escaped quote in double quotes", `search "a\"b"`, []string{"search", `a"b`}},
		{"backslash literal in single quotes", `search 'a\b'`, []string{"search", `a\b`}},
		{"empty quoted word", `search ""`, []string{"search", ""}},
		{"quote joins word", `set value 1'000'`, []string{"set", "value", "1000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitArgs_Errors(t *testing.T) {
	_, err := splitArgs(`search "open`)
	assert.ErrorContains(t, err, "unterminated quoted string")

	_, err = splitArgs(`search 'open`)
	assert.ErrorContains(t, err, "unterminated quoted string")

	_, err = splitArgs(`search trailing\`)
	assert.ErrorContains(t, err, "unterminated escape")
}
