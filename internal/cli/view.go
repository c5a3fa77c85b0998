package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID tells the root model what kind of view is on top. Forms capture
// every key; the settings view only does while its search box is open.
type ViewID int

const (
	ViewSettings ViewID = iota
	ViewForm
)

type View interface {
	tea.Model
	ID() ViewID
	// Title is this view's segment of the header breadcrumb.
	Title() string
	// ShortHelp lists the key hints for the status bar.
	ShortHelp() []key.Binding
}
