package resolver

import "strings"

// GlobalKeyword is the textual form of the global selection.
const GlobalKeyword = "global"

// Selection identifies whose settings are being viewed or edited: either the
// global defaults or a single employee. The zero value is the global
// selection.
type Selection struct {
	employeeID string
}

// Global selects the process-wide default settings.
var Global = Selection{}

// Employee selects the settings of the employee with the given id. An empty
// id is the global selection.
func Employee(id string) Selection {
	return Selection{employeeID: id}
}

// ParseSelection maps "global" (any case) or an empty string to Global and
// anything else to an employee selection.
func ParseSelection(s string) Selection {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, GlobalKeyword) {
		return Global
	}
	return Employee(s)
}

func (s Selection) IsGlobal() bool {
	return s.employeeID == ""
}

// EmployeeID returns the selected employee id, or "" for the global selection.
func (s Selection) EmployeeID() string {
	return s.employeeID
}

func (s Selection) String() string {
	if s.IsGlobal() {
		return GlobalKeyword
	}
	return s.employeeID
}
