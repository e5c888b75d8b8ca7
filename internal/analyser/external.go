package analyser

import (
	"slices"
)

// VariableRef names a variable by component and variable name.
type VariableRef struct {
	Component string
	Variable  string
}

func (r VariableRef) String() string {
	return r.Component + "." + r.Variable
}

// ExternalVariable marks a variable as supplied by the embedding
// application. Dependencies lists the variables the application needs in
// order to compute it; the analyser orders their equations first.
type ExternalVariable struct {
	Component    string
	Variable     string
	Dependencies []VariableRef
}

// NewExternalVariable creates an external variable without dependencies.
func NewExternalVariable(component, variable string) *ExternalVariable {
	return &ExternalVariable{Component: component, Variable: variable}
}

// Ref returns the variable the declaration is about.
func (ev *ExternalVariable) Ref() VariableRef {
	return VariableRef{Component: ev.Component, Variable: ev.Variable}
}

// AddDependency records that ev depends on ref. A dependency already listed
// is ignored and reported with false.
func (ev *ExternalVariable) AddDependency(ref VariableRef) bool {
	if slices.Contains(ev.Dependencies, ref) {
		return false
	}
	ev.Dependencies = append(ev.Dependencies, ref)
	return true
}

// AddExternalVariable registers ev for the next analyses. A nil value or a
// variable that is already registered is ignored and reported with false.
func (a *Analyser) AddExternalVariable(ev *ExternalVariable) bool {
	if ev == nil {
		return false
	}
	for _, existing := range a.externals {
		if existing.Ref() == ev.Ref() {
			return false
		}
	}
	clone := &ExternalVariable{
		Component:    ev.Component,
		Variable:     ev.Variable,
		Dependencies: slices.Clone(ev.Dependencies),
	}
	a.externals = append(a.externals, clone)
	return true
}

// RemoveExternalVariable unregisters the named variable.
func (a *Analyser) RemoveExternalVariable(component, variable string) bool {
	ref := VariableRef{Component: component, Variable: variable}
	for i, existing := range a.externals {
		if existing.Ref() == ref {
			a.externals = slices.Delete(a.externals, i, i+1)
			return true
		}
	}
	return false
}

// RemoveAllExternalVariables unregisters every external variable.
func (a *Analyser) RemoveAllExternalVariables() {
	a.externals = nil
}

// ExternalVariables returns copies of the registered declarations.
func (a *Analyser) ExternalVariables() []*ExternalVariable {
	out := make([]*ExternalVariable, len(a.externals))
	for i, ev := range a.externals {
		out[i] = &ExternalVariable{
			Component:    ev.Component,
			Variable:     ev.Variable,
			Dependencies: slices.Clone(ev.Dependencies),
		}
	}
	return out
}
