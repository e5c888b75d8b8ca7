package analyser

import "fmt"

// VariableType is the role a variable plays in the computed system.
type VariableType uint8

const (
	VarVOI VariableType = iota
	VarState
	VarConstant
	VarComputedConstant
	VarAlgebraic
	VarExternal
)

var variableTypeNames = [...]string{
	VarVOI:              "VARIABLE_OF_INTEGRATION",
	VarState:            "STATE",
	VarConstant:         "CONSTANT",
	VarComputedConstant: "COMPUTED_CONSTANT",
	VarAlgebraic:        "ALGEBRAIC",
	VarExternal:         "EXTERNAL",
}

func (t VariableType) String() string {
	if int(t) < len(variableTypeNames) {
		return variableTypeNames[t]
	}
	return fmt.Sprintf("VariableType(%d)", uint8(t))
}

// VariableTypes lists every variable type in output order.
func VariableTypes() []VariableType {
	return []VariableType{VarVOI, VarState, VarConstant, VarComputedConstant, VarAlgebraic, VarExternal}
}

// EquationType tells a generator where an equation is evaluated.
type EquationType uint8

const (
	// EqTrueConstant equations read no variable at all.
	EqTrueConstant EquationType = iota
	// EqVariableBasedConstant equations read only constants and computed
	// constants.
	EqVariableBasedConstant
	EqRate
	EqAlgebraic
	// EqNLA equations are members of a nonlinear system and are solved
	// together with their siblings.
	EqNLA
	// EqExternal equations stand for a variable supplied by the caller.
	EqExternal
)

var equationTypeNames = [...]string{
	EqTrueConstant:          "TRUE_CONSTANT",
	EqVariableBasedConstant: "VARIABLE_BASED_CONSTANT",
	EqRate:                  "RATE",
	EqAlgebraic:             "ALGEBRAIC",
	EqNLA:                   "NLA",
	EqExternal:              "EXTERNAL",
}

func (t EquationType) String() string {
	if int(t) < len(equationTypeNames) {
		return equationTypeNames[t]
	}
	return fmt.Sprintf("EquationType(%d)", uint8(t))
}

// ModelType is the overall classification of an analysed model.
type ModelType uint8

const (
	ModelUnknown ModelType = iota
	ModelAlgebraic
	ModelODE
	ModelDAE
	ModelNLA
	ModelInvalid
	ModelUnderconstrained
	ModelOverconstrained
	ModelUnsuitablyConstrained
)

var modelTypeNames = [...]string{
	ModelUnknown:               "UNKNOWN",
	ModelAlgebraic:             "ALGEBRAIC",
	ModelODE:                   "ODE",
	ModelDAE:                   "DAE",
	ModelNLA:                   "NLA",
	ModelInvalid:               "INVALID",
	ModelUnderconstrained:      "UNDERCONSTRAINED",
	ModelOverconstrained:       "OVERCONSTRAINED",
	ModelUnsuitablyConstrained: "UNSUITABLY_CONSTRAINED",
}

func (t ModelType) String() string {
	if int(t) < len(modelTypeNames) {
		return modelTypeNames[t]
	}
	return fmt.Sprintf("ModelType(%d)", uint8(t))
}

// IsSolvable reports whether the type describes a system a generator can
// emit code for.
func (t ModelType) IsSolvable() bool {
	switch t {
	case ModelAlgebraic, ModelODE, ModelDAE, ModelNLA:
		return true
	}
	return false
}
