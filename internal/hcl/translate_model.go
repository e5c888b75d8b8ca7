// This file assembles the decoded blocks of every model file into a single
// format-agnostic model.Model.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/cellan/internal/ctxlog"
	"github.com/vk/cellan/internal/model"
)

type pendingConnection struct {
	file  string
	block *connectionBlock
}

// assembler merges model blocks file by file. Connections are resolved last,
// because they may name components declared in a later file.
type assembler struct {
	ctx         context.Context
	m           *model.Model
	connections []pendingConnection
}

func newAssembler(ctx context.Context) *assembler {
	return &assembler{ctx: ctx}
}

func (a *assembler) addFile(file string, root *fileRoot) error {
	logger := ctxlog.FromContext(a.ctx)

	for _, mb := range root.Models {
		if a.m == nil {
			a.m = model.New(mb.Name)
		} else if a.m.Name != mb.Name {
			return fmt.Errorf("%w: %q and %q (in %s)", ErrMultipleModels, a.m.Name, mb.Name, file)
		}

		for _, ub := range mb.Units {
			u, diags := translateUnits(a.ctx, ub)
			if diags.HasErrors() {
				return fmt.Errorf("failed to translate units %q in %s: %w", ub.Name, file, diags)
			}
			if err := a.m.AddUnits(u); err != nil {
				return fmt.Errorf("in %s: %w", file, err)
			}
		}

		for _, cb := range mb.Components {
			c, diags := translateComponent(a.ctx, file, cb)
			if diags.HasErrors() {
				return fmt.Errorf("failed to translate component %q in %s: %w", cb.Name, file, diags)
			}
			if err := checkComponentNames(a.m, c); err != nil {
				return fmt.Errorf("in %s: %w", file, err)
			}
			if err := a.m.AddComponent(c); err != nil {
				return fmt.Errorf("in %s: %w", file, err)
			}
		}

		for _, conn := range mb.Connections {
			a.connections = append(a.connections, pendingConnection{file: file, block: conn})
		}

		logger.Debug("Merged model block.",
			"model", mb.Name,
			"file", file,
			"units", len(mb.Units),
			"components", len(mb.Components),
			"connections", len(mb.Connections),
		)
	}
	return nil
}

// finish resolves the connections and returns the assembled model.
func (a *assembler) finish() (*model.Model, error) {
	if a.m == nil {
		return nil, ErrNoModel
	}
	for _, pc := range a.connections {
		if err := a.connect(pc.block); err != nil {
			return nil, fmt.Errorf("failed to resolve connection in %s: %w", pc.file, err)
		}
	}
	ctxlog.FromContext(a.ctx).Debug("Model assembled.",
		"model", a.m.Name,
		"components", len(a.m.AllComponents()),
		"variables", a.m.VariableCount(),
		"equivalences", len(a.m.Equivalences),
	)
	return a.m, nil
}

func (a *assembler) connect(cb *connectionBlock) error {
	first := a.m.Component(cb.Component1)
	if first == nil {
		return hcl.Diagnostics{diagError(cb.DeclRange, "Unknown component", "There is no component named %q.", cb.Component1)}
	}
	second := a.m.Component(cb.Component2)
	if second == nil {
		return hcl.Diagnostics{diagError(cb.DeclRange, "Unknown component", "There is no component named %q.", cb.Component2)}
	}

	pairs, diags := connectionPairs(cb)
	if diags.HasErrors() {
		return diags
	}
	for _, p := range pairs {
		v1 := first.Variable(p[0])
		if v1 == nil {
			return hcl.Diagnostics{diagError(cb.Variables.Range(), "Unknown variable",
				"Component %q has no variable named %q.", first.Name, p[0])}
		}
		v2 := second.Variable(p[1])
		if v2 == nil {
			return hcl.Diagnostics{diagError(cb.Variables.Range(), "Unknown variable",
				"Component %q has no variable named %q.", second.Name, p[1])}
		}
		if err := a.m.AddEquivalence(v1, v2); err != nil {
			return err
		}
	}
	return nil
}
