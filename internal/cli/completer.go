package cli

import (
	"strings"

	"github.com/alexanderramin/logisales/internal/domain"
)

// commandNames lists the command bar commands for autocomplete.
func commandNames() []string {
	return []string{
		"global", "select", "search",
		"set", "type", "tier",
		"reset", "save", "saved",
		"help", "clear", "quit", "exit",
	}
}

// argumentNames returns the first-argument suggestions per command.
func argumentNames() map[string][]string {
	fields := make([]string, len(domain.SettingsFields))
	for i, f := range domain.SettingsFields {
		fields[i] = string(f)
	}
	return map[string][]string{
		"set":  fields,
		"type": {"flat", "percentage", "tiered"},
		"tier": {"add", "rm", "set"},
		"save": {"all"},
	}
}

// tierFieldNames are the field suggestions for "tier set N".
func tierFieldNames() []string {
	return []string{
		string(domain.TierFieldFrom),
		string(domain.TierFieldTo),
		string(domain.TierFieldRate),
		string(domain.TierFieldType),
	}
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}
