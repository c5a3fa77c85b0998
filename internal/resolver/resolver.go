package resolver

import (
	"strings"

	"github.com/alexanderramin/logisales/internal/domain"
)

// State is the whole editable dataset: the global defaults and the ordered
// employee list. State values are never mutated in place; every operation in
// this package returns a new State.
type State struct {
	Global    domain.TargetSettings
	Employees []domain.Employee
}

// Clone returns a copy that shares no slices with st. Override pointers are
// replaced with pointers to private copies.
func (st State) Clone() State {
	out := State{Global: st.Global.Clone()}
	if st.Employees != nil {
		out.Employees = make([]domain.Employee, len(st.Employees))
		for i, e := range st.Employees {
			if e.IndividualSettings != nil {
				e = e.WithSettings(*e.IndividualSettings)
			}
			out.Employees[i] = e
		}
	}
	return out
}

// Active is shorthand for ActiveSettings over st.
func (st State) Active(sel Selection) domain.TargetSettings {
	return ActiveSettings(sel, st.Global, st.Employees)
}

// ActiveSettings resolves the settings that apply to sel. An employee without
// an override, or an id that matches no employee, resolves to global.
func ActiveSettings(sel Selection, global domain.TargetSettings, employees []domain.Employee) domain.TargetSettings {
	if sel.IsGlobal() {
		return global.Clone()
	}
	e, ok := FindEmployee(employees, sel.EmployeeID())
	if !ok || e.IndividualSettings == nil {
		return global.Clone()
	}
	return e.IndividualSettings.Clone()
}

// IsInheriting reports whether sel is an employee currently resolving to the
// global settings.
func IsInheriting(st State, sel Selection) bool {
	if sel.IsGlobal() {
		return false
	}
	e, ok := FindEmployee(st.Employees, sel.EmployeeID())
	return !ok || !e.HasOverride()
}

// ApplyUpdate writes s into the slot named by sel. For an employee the
// override is replaced wholesale; other employees keep their existing
// override pointers. An unknown employee leaves the state unchanged.
func ApplyUpdate(st State, sel Selection, s domain.TargetSettings) State {
	if sel.IsGlobal() {
		return State{Global: s.Clone(), Employees: st.Employees}
	}
	return replaceEmployee(st, sel.EmployeeID(), func(e domain.Employee) domain.Employee {
		return e.WithSettings(s)
	})
}

// ResetToDefault clears the selected employee's override. It is a no-op for
// the global selection and for unknown employees.
func ResetToDefault(st State, sel Selection) State {
	if sel.IsGlobal() {
		return st
	}
	return replaceEmployee(st, sel.EmployeeID(), func(e domain.Employee) domain.Employee {
		return e.WithoutSettings()
	})
}

func replaceEmployee(st State, id string, fn func(domain.Employee) domain.Employee) State {
	idx := employeeIndex(st.Employees, id)
	if idx < 0 {
		return st
	}
	employees := make([]domain.Employee, len(st.Employees))
	copy(employees, st.Employees)
	employees[idx] = fn(employees[idx])
	return State{Global: st.Global, Employees: employees}
}

// FindEmployee returns the employee with the given id.
func FindEmployee(employees []domain.Employee, id string) (domain.Employee, bool) {
	if idx := employeeIndex(employees, id); idx >= 0 {
		return employees[idx], true
	}
	return domain.Employee{}, false
}

func employeeIndex(employees []domain.Employee, id string) int {
	for i, e := range employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// FilterEmployees keeps employees whose name or role contains query,
// ignoring case, in their original order. An empty query returns employees
// as given.
func FilterEmployees(employees []domain.Employee, query string) []domain.Employee {
	if query == "" {
		return employees
	}
	q := strings.ToLower(query)
	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Role), q) {
			out = append(out, e)
		}
	}
	return out
}
