package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/cellan/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional fields with zero-width
// placeholder expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	// A real attribute occupies bytes in the file; a placeholder for an
	// omitted one starts and ends on the same byte.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)

	return isDefined
}

// staticName returns the name an expression spells, either as a bare
// identifier or as a quoted string. Object keys written as identifiers are
// covered by the keyword case.
func staticName(expr hcl.Expression) (string, hcl.Diagnostics) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	name, err := toString(val)
	if err != nil {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid name",
			Detail:   fmt.Sprintf("A variable or component name is required: %s.", err),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return name, nil
}

// diagError builds a single error diagnostic located at rng.
func diagError(rng hcl.Range, summary, detail string, args ...any) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(detail, args...),
		Subject:  rng.Ptr(),
	}
}
