package domain

import "strings"

type Employee struct {
	ID     string
	Name   string
	Role   string
	Avatar string

	// IndividualSettings overrides the global settings when non-nil.
	// nil means the employee inherits the global settings.
	IndividualSettings *TargetSettings
}

// HasOverride reports whether the employee carries individual settings.
func (e Employee) HasOverride() bool {
	return e.IndividualSettings != nil
}

// WithSettings returns a copy of e whose override is a private copy of s.
func (e Employee) WithSettings(s TargetSettings) Employee {
	c := s.Clone()
	e.IndividualSettings = &c
	return e
}

// WithoutSettings returns a copy of e that inherits the global settings.
func (e Employee) WithoutSettings() Employee {
	e.IndividualSettings = nil
	return e
}

// Initials returns the first letter of each word of the name, e.g. "RK" for
// "Rahim Khan".
func (e Employee) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(e.Name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}
