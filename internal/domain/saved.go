package domain

import "time"

// GlobalScope is the save scope of the global settings. Employee overrides
// are saved under the employee id.
const GlobalScope = "global"

// SavedSettings is the last value handed to the save collaborator for one
// scope. Only the latest value per scope is kept.
type SavedSettings struct {
	Scope     string
	Settings  TargetSettings
	SavedAt   time.Time
	SaveCount int
}
