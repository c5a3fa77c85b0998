package cli

import "github.com/alexanderramin/logisales/internal/domain"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Sidebar search query. Set by "/" in the home view and by the
	// search command.
	SearchQuery string

	// Terminal dimensions
	Width  int
	Height int
}

// VisibleEmployees returns the employees matching the current search.
func (s *SharedState) VisibleEmployees() []domain.Employee {
	return s.App.Settings.Search(s.SearchQuery)
}

// Currency is the symbol printed before flat amounts.
func (s *SharedState) Currency() string {
	return currencyOf(s.App)
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
