package analyser

import (
	"fmt"
	"strings"
)

// Level is the severity of an Issue.
type Level uint8

const (
	LevelError Level = iota
	LevelWarning
	LevelMessage
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelMessage:
		return "message"
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// ParseLevel converts "error", "warning" or "message" into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "message", "info":
		return LevelMessage, nil
	}
	return LevelWarning, fmt.Errorf("unknown issue level %q", s)
}

// Cause names the kind of model item an Issue is about.
type Cause uint8

const (
	CauseVariable Cause = iota
	CauseEquation
	CauseExternal
	CauseUnits
)

func (c Cause) String() string {
	switch c {
	case CauseVariable:
		return "variable"
	case CauseEquation:
		return "equation"
	case CauseExternal:
		return "external"
	case CauseUnits:
		return "units"
	}
	return fmt.Sprintf("cause(%d)", uint8(c))
}

// Code identifies the rule an Issue reports on.
type Code string

const (
	CodeUnknownVariable         Code = "UNKNOWN_VARIABLE"
	CodeInvalidEquation         Code = "INVALID_EQUATION"
	CodeOverconstrained         Code = "OVERCONSTRAINED"
	CodeUnderconstrained        Code = "UNDERCONSTRAINED"
	CodeCyclicDependency        Code = "CYCLIC_DEPENDENCY"
	CodeVOIConflict             Code = "VOI_CONFLICT"
	CodeStateNotInitialised     Code = "STATE_NOT_INITIALISED"
	CodeNonConstantInitialValue Code = "NON_CONSTANT_INITIAL_VALUE"
	CodeInvalidExternal         Code = "INVALID_EXTERNAL"
	CodeUnbalancedSystem        Code = "UNBALANCED_SYSTEM"
	CodeUnitsMismatch           Code = "UNITS_MISMATCH"
	CodeUnitsUnresolved         Code = "UNITS_UNRESOLVED"
	CodeInitialGuessIgnored     Code = "INITIAL_GUESS_IGNORED"
)

// NoEquation is the ItemRef.Equation value of issues not tied to an equation.
const NoEquation = -1

// ItemRef points at the model item an Issue is about. Equation is the
// declaration index of the equation across the whole model, or NoEquation.
type ItemRef struct {
	Component string
	Variable  string
	Equation  int
}

func (r ItemRef) String() string {
	var parts []string
	if r.Component != "" {
		name := r.Component
		if r.Variable != "" {
			name += "." + r.Variable
		}
		parts = append(parts, name)
	}
	if r.Equation != NoEquation {
		parts = append(parts, fmt.Sprintf("equation #%d", r.Equation))
	}
	return strings.Join(parts, ", ")
}

// Issue is a diagnostic produced by the analysis. Issues are data: the
// analysis always completes and reports what it found through them.
type Issue struct {
	Level       Level
	Cause       Cause
	Code        Code
	Description string
	Item        ItemRef
}

// Error implements error, so issues can be joined or wrapped by callers.
func (i *Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Level, i.Description)
}
