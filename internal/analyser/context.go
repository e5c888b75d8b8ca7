package analyser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/ctxlog"
	"github.com/vk/cellan/internal/dag"
	"github.com/vk/cellan/internal/model"
	"github.com/vk/cellan/internal/units"
)

const none = -1

// analysis holds everything one Analyse call works on. Variables and
// equations live in flat slices and refer to each other by handle.
type analysis struct {
	logger *slog.Logger
	opts   options
	src    *model.Model

	// vars is the variable arena, in depth-first declaration order.
	vars   []varSlot
	handle map[*model.Variable]int
	parent []int

	// classes is indexed by handle; only representatives have an entry.
	classes []*class
	reps    []int

	eqs       []*equation
	externals []*externalSlot
	declared  []*ExternalVariable

	voi int

	// Graph stage.
	graph   *dag.Graph
	nodes   []graphNode
	blocks  []*block
	ordered []*block

	nodeUnits map[*ast.Node]units.Vector
	needs     map[ast.Kind]bool

	issues               []*Issue
	invalid, over, under bool
}

type varSlot struct {
	v    *model.Variable
	comp *model.Component
}

// classKind is the role a class gets before equations are ordered.
type classKind uint8

const (
	kindUnknown classKind = iota
	kindVOI
	kindState
	kindConstant
	kindInitComputed
	kindExternal
)

// class is an equivalence set, represented by its lowest handle.
type class struct {
	rep     int
	members []int
	kind    classKind

	// initFrom is the member whose initial value the class uses.
	initFrom  int
	initial   model.InitialValue
	hasValue  bool
	value     float64
	initVia   int
	initState initState
	// initSource marks a class that another class takes its initial value
	// from. guess marks a literal-initialised constant that an implicit
	// equation may still solve for, its value becoming the initial guess.
	initSource bool
	guess      bool

	explicitTarget bool
	usedAsState    bool
	external       *externalSlot

	// determinedBy is the graph node computing the class, rate the one
	// computing its rate when the class is a state.
	determinedBy int
	rate         int

	final VariableType
	index int
}

type initState uint8

const (
	initPending initState = iota
	initResolving
	initResolved
	initFailed
)

func (c *class) isKnown() bool {
	switch c.kind {
	case kindVOI, kindState, kindConstant, kindInitComputed, kindExternal:
		return true
	}
	return false
}

func newAnalysis(ctx context.Context, m *model.Model, opts options, externals []*ExternalVariable) *analysis {
	a := &analysis{
		logger:   ctxlog.FromContext(ctx),
		opts:     opts,
		src:      m,
		handle:   make(map[*model.Variable]int),
		declared: externals,
		voi:      none,
	}
	a.buildArena()
	return a
}

// buildArena assigns handles to variables and equations and merges
// equivalent variables.
func (a *analysis) buildArena() {
	for _, comp := range a.src.AllComponents() {
		for _, v := range comp.Variables {
			a.handle[v] = len(a.vars)
			a.vars = append(a.vars, varSlot{v: v, comp: comp})
		}
		for _, eq := range comp.Equations {
			a.eqs = append(a.eqs, newEquation(len(a.eqs), eq, comp))
		}
	}

	a.parent = make([]int, len(a.vars))
	for i := range a.parent {
		a.parent[i] = i
	}
	for _, eq := range a.src.Equivalences {
		h1, ok1 := a.handle[eq.First]
		h2, ok2 := a.handle[eq.Second]
		if !ok1 || !ok2 {
			continue
		}
		a.union(h1, h2)
	}

	a.classes = make([]*class, len(a.vars))
	for h := range a.vars {
		r := a.find(h)
		if a.classes[r] == nil {
			a.classes[r] = &class{
				rep:          r,
				initFrom:     none,
				initVia:      none,
				determinedBy: none,
				rate:         none,
			}
			a.reps = append(a.reps, r)
		}
		c := a.classes[r]
		c.members = append(c.members, h)
		if c.initFrom == none && a.vars[h].v.Initial.IsSet() {
			c.initFrom = h
			c.initial = a.vars[h].v.Initial
		}
	}

	a.logger.Debug("Built analysis arena.",
		"variables", len(a.vars),
		"classes", len(a.reps),
		"equations", len(a.eqs),
	)
}

func (a *analysis) find(h int) int {
	root := h
	for a.parent[root] != root {
		root = a.parent[root]
	}
	for a.parent[h] != root {
		next := a.parent[h]
		a.parent[h] = root
		h = next
	}
	return root
}

// union keeps the lower handle as the root, so the representative of a set
// is always its first variable in declaration order.
func (a *analysis) union(x, y int) {
	rx, ry := a.find(x), a.find(y)
	if rx == ry {
		return
	}
	if ry < rx {
		rx, ry = ry, rx
	}
	a.parent[ry] = rx
}

// repVar returns the representative variable of the class with root r.
func (a *analysis) repVar(r int) *model.Variable {
	return a.vars[r].v
}

func (a *analysis) run() {
	a.analyseStructure()
	a.applyExternals()
	a.resolveInitialValues()
	a.matchEquations()
	a.buildGraph()
	a.detectBlocks()
	a.orderBlocks()
	a.assignTypes()
	if a.opts.unitsCheck {
		a.checkUnits()
	}
	a.scanHelpers()
}

// Issue reporting.

func (a *analysis) report(level Level, cause Cause, code Code, item ItemRef, format string, args ...any) {
	a.issues = append(a.issues, &Issue{
		Level:       level,
		Cause:       cause,
		Code:        code,
		Description: fmt.Sprintf(format, args...),
		Item:        item,
	})
}

func (a *analysis) varItem(h int) ItemRef {
	return ItemRef{
		Component: a.vars[h].comp.Name,
		Variable:  a.vars[h].v.Name,
		Equation:  NoEquation,
	}
}

func (a *analysis) eqItem(eq *equation) ItemRef {
	return ItemRef{Component: eq.comp.Name, Equation: eq.handle}
}

func (a *analysis) markInvalid()          { a.invalid = true }
func (a *analysis) markOverconstrained()  { a.over = true }
func (a *analysis) markUnderconstrained() { a.under = true }
