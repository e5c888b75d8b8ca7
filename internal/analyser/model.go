package analyser

import (
	"slices"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/model"
	"github.com/vk/cellan/internal/units"
)

// NoNLASystem is the NLASystemIndex of equations outside nonlinear systems.
const NoNLASystem = -1

// Variable is the analysed view of one equivalence set of model variables.
type Variable struct {
	Type VariableType
	// Index is the position of the variable in the array of its type.
	Index int

	variable     *model.Variable
	equivalents  []*model.Variable
	hasInitial   bool
	initial      float64
	initialising *model.Variable
	equations    []*Equation
}

// Variable returns the representative of the equivalence set: its first
// member in depth-first declaration order.
func (v *Variable) Variable() *model.Variable { return v.variable }

// Equivalents returns every member of the equivalence set, representative
// first.
func (v *Variable) Equivalents() []*model.Variable { return slices.Clone(v.equivalents) }

// InitialValue returns the value the variable starts from. For a variable
// computed by an equation this is the guess handed to a nonlinear solver.
func (v *Variable) InitialValue() (float64, bool) { return v.initial, v.hasInitial }

// InitialisingVariable returns the variable the initial value was taken
// from, or nil for literal initial values.
func (v *Variable) InitialisingVariable() *model.Variable { return v.initialising }

// Equations returns the equations that compute the variable, or its rate for
// a state.
func (v *Variable) Equations() []*Equation { return slices.Clone(v.equations) }

func (v *Variable) String() string { return v.variable.String() }

// Equation is the analysed view of one model equation, or the stand-in of an
// external variable.
type Equation struct {
	Type EquationType
	// Order is the position of the equation in evaluation order.
	Order int

	root         *ast.Node
	component    *model.Component
	handle       int
	dependencies []*Variable
	variables    []*Variable
	states       []*Variable
	nlaIndex     int
	siblings     []*Equation
	residual     *ast.Node
}

// AST returns the equation tree, or nil for an external variable.
func (e *Equation) AST() *ast.Node { return e.root }

// Component returns the component the equation belongs to.
func (e *Equation) Component() *model.Component { return e.component }

// Dependencies returns the variables the equation reads.
func (e *Equation) Dependencies() []*Variable { return slices.Clone(e.dependencies) }

// Variables returns the variables the equation computes. Rate equations
// compute no variable; see States.
func (e *Equation) Variables() []*Variable { return slices.Clone(e.variables) }

// States returns the states whose rate a rate equation computes.
func (e *Equation) States() []*Variable { return slices.Clone(e.states) }

// NLASystemIndex returns the index of the nonlinear system the equation
// belongs to, or NoNLASystem.
func (e *Equation) NLASystemIndex() int { return e.nlaIndex }

// NLASiblings returns the other members of the equation's nonlinear system.
func (e *Equation) NLASiblings() []*Equation { return slices.Clone(e.siblings) }

// DeclarationIndex returns the position of the equation among all model
// equations in declaration order, or -1 for an external variable.
func (e *Equation) DeclarationIndex() int { return e.handle }

// Residual returns lhs - rhs for members of a nonlinear system, nil
// otherwise.
func (e *Equation) Residual() *ast.Node { return e.residual }

// NLASystem is a group of equations solved together by root finding.
type NLASystem struct {
	Index     int
	Equations []*Equation
	Unknowns  []*Variable
}

// Model is the result of an analysis. It is immutable once returned.
type Model struct {
	typ       ModelType
	voi       *Variable
	variables []*Variable
	byType    map[VariableType][]*Variable
	lookup    map[*model.Variable]*Variable
	equations []*Equation
	systems   []*NLASystem
	issues    []*Issue
	needs     map[ast.Kind]bool
	nodeUnits map[*ast.Node]units.Vector
}

func emptyModel() *Model {
	return &Model{
		typ:       ModelUnknown,
		byType:    make(map[VariableType][]*Variable),
		lookup:    make(map[*model.Variable]*Variable),
		needs:     make(map[ast.Kind]bool),
		nodeUnits: make(map[*ast.Node]units.Vector),
	}
}

// Type returns the overall classification of the model.
func (m *Model) Type() ModelType { return m.typ }

// IsValid reports whether the model can be handed to a generator: its type
// is solvable and no issue is an error.
func (m *Model) IsValid() bool { return m.typ.IsSolvable() && m.ErrorCount() == 0 }

// VOI returns the variable of integration, or nil.
func (m *Model) VOI() *Variable { return m.voi }

func (m *Model) States() []*Variable { return m.VariablesOfType(VarState) }
func (m *Model) Constants() []*Variable { return m.VariablesOfType(VarConstant) }
func (m *Model) ComputedConstants() []*Variable { return m.VariablesOfType(VarComputedConstant) }
func (m *Model) AlgebraicVariables() []*Variable { return m.VariablesOfType(VarAlgebraic) }
func (m *Model) ExternalVariables() []*Variable { return m.VariablesOfType(VarExternal) }

// VariablesOfType returns the variables of type t, ordered by index.
func (m *Model) VariablesOfType(t VariableType) []*Variable {
	return slices.Clone(m.byType[t])
}

// Variables returns every analysed variable in declaration order of the
// representatives.
func (m *Model) Variables() []*Variable { return slices.Clone(m.variables) }

// Variable returns the analysed variable for any member of an equivalence
// set, or nil when v is not part of the analysed model.
func (m *Model) Variable(v *model.Variable) *Variable { return m.lookup[v] }

// AreEquivalentVariables reports whether a and b belong to the same
// equivalence set.
func (m *Model) AreEquivalentVariables(a, b *model.Variable) bool {
	va, vb := m.lookup[a], m.lookup[b]
	return va != nil && va == vb
}

// Equations returns the equations in evaluation order. Members of a
// nonlinear system form a contiguous run.
func (m *Model) Equations() []*Equation { return slices.Clone(m.equations) }

// NLASystems returns the nonlinear systems ordered by index.
func (m *Model) NLASystems() []*NLASystem { return slices.Clone(m.systems) }

// Issues returns every issue in the order it was found.
func (m *Model) Issues() []*Issue { return slices.Clone(m.issues) }

// IssuesOfLevel returns the issues of the given level.
func (m *Model) IssuesOfLevel(level Level) []*Issue {
	var out []*Issue
	for _, issue := range m.issues {
		if issue.Level == level {
			out = append(out, issue)
		}
	}
	return out
}

// ErrorCount returns the number of error issues.
func (m *Model) ErrorCount() int { return len(m.IssuesOfLevel(LevelError)) }

// NodeUnits returns the units worked out for an equation node. ok is false
// when the units check was off or the units could not be determined.
func (m *Model) NodeUnits(n *ast.Node) (v units.Vector, ok bool) {
	v, ok = m.nodeUnits[n]
	return v, ok
}

// NeedsFunction reports whether the ordered equations use operator k and k
// requires a helper function in generated code.
func (m *Model) NeedsFunction(k ast.Kind) bool { return m.needs[k] }

// HelperFunctions returns the helper operators in use, sorted.
func (m *Model) HelperFunctions() []ast.Kind {
	out := make([]ast.Kind, 0, len(m.needs))
	for k := range m.needs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (m *Model) NeedEqFunction() bool { return m.needs[ast.Eq] }
func (m *Model) NeedNeqFunction() bool { return m.needs[ast.Neq] }
func (m *Model) NeedLtFunction() bool { return m.needs[ast.Lt] }
func (m *Model) NeedLeqFunction() bool { return m.needs[ast.Leq] }
func (m *Model) NeedGtFunction() bool { return m.needs[ast.Gt] }
func (m *Model) NeedGeqFunction() bool { return m.needs[ast.Geq] }
func (m *Model) NeedAndFunction() bool { return m.needs[ast.And] }
func (m *Model) NeedOrFunction() bool { return m.needs[ast.Or] }
func (m *Model) NeedXorFunction() bool { return m.needs[ast.Xor] }
func (m *Model) NeedNotFunction() bool { return m.needs[ast.Not] }
func (m *Model) NeedMinFunction() bool { return m.needs[ast.Min] }
func (m *Model) NeedMaxFunction() bool { return m.needs[ast.Max] }
func (m *Model) NeedSecFunction() bool { return m.needs[ast.Sec] }
func (m *Model) NeedCscFunction() bool { return m.needs[ast.Csc] }
func (m *Model) NeedCotFunction() bool { return m.needs[ast.Cot] }
func (m *Model) NeedSechFunction() bool { return m.needs[ast.Sech] }
func (m *Model) NeedCschFunction() bool { return m.needs[ast.Csch] }
func (m *Model) NeedCothFunction() bool { return m.needs[ast.Coth] }
func (m *Model) NeedAsecFunction() bool { return m.needs[ast.Asec] }
func (m *Model) NeedAcscFunction() bool { return m.needs[ast.Acsc] }
func (m *Model) NeedAcotFunction() bool { return m.needs[ast.Acot] }
func (m *Model) NeedAsechFunction() bool { return m.needs[ast.Asech] }
func (m *Model) NeedAcschFunction() bool { return m.needs[ast.Acsch] }
func (m *Model) NeedAcothFunction() bool { return m.needs[ast.Acoth] }

// result assembles the immutable Model from the analysis state.
func (a *analysis) result() *Model {
	m := emptyModel()

	vars := make(map[int]*Variable, len(a.reps))
	for _, r := range a.reps {
		c := a.classes[r]
		v := &Variable{
			Type:       c.final,
			Index:      c.index,
			variable:   a.vars[r].v,
			hasInitial: c.hasValue,
			initial:    c.value,
		}
		if c.initVia != none {
			v.initialising = a.vars[c.initVia].v
		}
		for _, h := range c.members {
			v.equivalents = append(v.equivalents, a.vars[h].v)
			m.lookup[a.vars[h].v] = v
		}
		vars[r] = v
		m.variables = append(m.variables, v)
		m.byType[v.Type] = append(m.byType[v.Type], v)
	}
	if a.voi != none {
		m.voi = vars[a.voi]
	}

	for _, b := range a.ordered {
		var members []*Equation
		for _, n := range b.nodes {
			node := a.nodes[n]
			e := &Equation{Order: len(m.equations), nlaIndex: b.index, handle: none}
			if node.ext != nil {
				ev := vars[node.ext.class]
				e.Type = EqExternal
				e.component = a.vars[node.ext.handle].comp
				e.variables = []*Variable{ev}
				for _, d := range node.ext.deps {
					e.dependencies = append(e.dependencies, vars[d])
				}
				ev.equations = append(ev.equations, e)
			} else {
				eq := node.eq
				e.Type = eq.eqType
				e.root = eq.root
				e.component = eq.comp
				e.handle = eq.handle
				for _, r := range eq.reads {
					e.dependencies = appendUnique(e.dependencies, vars[r])
				}
				for _, s := range eq.rateReads {
					e.dependencies = appendUnique(e.dependencies, vars[s])
				}
				target := vars[eq.matched]
				if eq.form == formRate {
					e.states = []*Variable{target}
				} else {
					e.variables = []*Variable{target}
				}
				target.equations = append(target.equations, e)
				if b.nla {
					e.residual = ast.Sub(eq.root.LHS().Clone(), eq.root.RHS().Clone())
				}
			}
			m.equations = append(m.equations, e)
			members = append(members, e)
		}

		if !b.nla {
			continue
		}
		sys := &NLASystem{Index: b.index, Equations: members}
		for _, u := range b.unknowns {
			sys.Unknowns = append(sys.Unknowns, vars[u])
		}
		for _, e := range members {
			for _, sibling := range members {
				if sibling != e {
					e.siblings = append(e.siblings, sibling)
				}
			}
		}
		m.systems = append(m.systems, sys)
	}

	m.issues = a.issues
	m.needs = a.needs
	if a.nodeUnits != nil {
		m.nodeUnits = a.nodeUnits
	}
	m.typ = a.terminalType(len(m.byType[VarState]) > 0, len(m.systems) > 0)
	return m
}

func (a *analysis) terminalType(hasStates, hasSystems bool) ModelType {
	switch {
	case a.invalid:
		return ModelInvalid
	case a.over && a.under:
		return ModelUnsuitablyConstrained
	case a.over:
		return ModelOverconstrained
	case a.under:
		return ModelUnderconstrained
	case hasStates && hasSystems:
		return ModelDAE
	case hasStates:
		return ModelODE
	case hasSystems:
		return ModelNLA
	}
	return ModelAlgebraic
}

func appendUnique(list []*Variable, v *Variable) []*Variable {
	if v == nil || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
