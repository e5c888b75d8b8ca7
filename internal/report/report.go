package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/cellan/internal/analyser"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// ParseFormat converts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Report is the serialisable summary of one analysis.
type Report struct {
	Model           string      `json:"model" yaml:"model"`
	Type            string      `json:"type" yaml:"type"`
	Valid           bool        `json:"valid" yaml:"valid"`
	VOI             string      `json:"voi,omitempty" yaml:"voi,omitempty"`
	Variables       []Variable  `json:"variables" yaml:"variables"`
	Equations       []Equation  `json:"equations" yaml:"equations"`
	NLASystems      []NLASystem `json:"nla_systems,omitempty" yaml:"nla_systems,omitempty"`
	HelperFunctions []string    `json:"helper_functions,omitempty" yaml:"helper_functions,omitempty"`
	Issues          []Issue     `json:"issues,omitempty" yaml:"issues,omitempty"`
}

type Variable struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Index       int      `json:"index" yaml:"index"`
	Units       string   `json:"units,omitempty" yaml:"units,omitempty"`
	Initial     *float64 `json:"initial,omitempty" yaml:"initial,omitempty"`
	InitialFrom string   `json:"initial_from,omitempty" yaml:"initial_from,omitempty"`
	Equivalents []string `json:"equivalents,omitempty" yaml:"equivalents,omitempty"`
}

type Equation struct {
	Order        int      `json:"order" yaml:"order"`
	Type         string   `json:"type" yaml:"type"`
	Component    string   `json:"component" yaml:"component"`
	Equation     string   `json:"equation,omitempty" yaml:"equation,omitempty"`
	Computes     []string `json:"computes,omitempty" yaml:"computes,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	NLASystem    *int     `json:"nla_system,omitempty" yaml:"nla_system,omitempty"`
}

type NLASystem struct {
	Index     int      `json:"index" yaml:"index"`
	Equations []int    `json:"equations" yaml:"equations"`
	Unknowns  []string `json:"unknowns" yaml:"unknowns"`
}

type Issue struct {
	Level       string `json:"level" yaml:"level"`
	Cause       string `json:"cause" yaml:"cause"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Item        string `json:"item,omitempty" yaml:"item,omitempty"`
}

// Build summarises res. name is the model name, which the result does not
// carry.
func Build(name string, res *analyser.Model) *Report {
	r := &Report{
		Model: name,
		Type:  res.Type().String(),
		Valid: res.IsValid(),
	}
	if voi := res.VOI(); voi != nil {
		r.VOI = voi.String()
	}

	for _, vt := range analyser.VariableTypes() {
		for _, v := range res.VariablesOfType(vt) {
			r.Variables = append(r.Variables, buildVariable(v))
		}
	}

	for _, e := range res.Equations() {
		entry := Equation{
			Order:        e.Order,
			Type:         e.Type.String(),
			Computes:     names(e.Variables()),
			Dependencies: names(e.Dependencies()),
		}
		if e.Type == analyser.EqRate {
			entry.Computes = names(e.States())
		}
		if c := e.Component(); c != nil {
			entry.Component = c.Name
		}
		if root := e.AST(); root != nil {
			entry.Equation = root.String()
		}
		if idx := e.NLASystemIndex(); idx != analyser.NoNLASystem {
			entry.NLASystem = &idx
		}
		r.Equations = append(r.Equations, entry)
	}

	for _, sys := range res.NLASystems() {
		entry := NLASystem{Index: sys.Index, Unknowns: names(sys.Unknowns)}
		for _, e := range sys.Equations {
			entry.Equations = append(entry.Equations, e.Order)
		}
		r.NLASystems = append(r.NLASystems, entry)
	}

	for _, k := range res.HelperFunctions() {
		r.HelperFunctions = append(r.HelperFunctions, k.String())
	}

	for _, issue := range res.Issues() {
		r.Issues = append(r.Issues, Issue{
			Level:       issue.Level.String(),
			Cause:       issue.Cause.String(),
			Code:        string(issue.Code),
			Description: issue.Description,
			Item:        issue.Item.String(),
		})
	}
	return r
}

func buildVariable(v *analyser.Variable) Variable {
	out := Variable{
		Name:  v.String(),
		Type:  v.Type.String(),
		Index: v.Index,
		Units: v.Variable().Units,
	}
	if value, ok := v.InitialValue(); ok {
		out.Initial = &value
	}
	if from := v.InitialisingVariable(); from != nil {
		out.InitialFrom = from.String()
	}
	if eqs := v.Equivalents(); len(eqs) > 1 {
		for _, other := range eqs[1:] {
			out.Equivalents = append(out.Equivalents, other.String())
		}
	}
	return out
}

func names(vars []*analyser.Variable) []string {
	if len(vars) == 0 {
		return nil
	}
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.String()
	}
	return out
}

// Render writes r to w in the given format.
func Render(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatText, "":
		return renderText(w, r)
	case FormatJSON:
		return renderJSON(w, r)
	case FormatYAML:
		return renderYAML(w, r)
	}
	return fmt.Errorf("unknown output format %q", f)
}
