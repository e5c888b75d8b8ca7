package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// toString converts a known, non-null value to a Go string, accepting
// anything cty can convert (numbers and bools included).
func toString(val cty.Value) (string, error) {
	var out string
	if err := decodeAs(val, cty.String, &out); err != nil {
		return "", err
	}
	return out, nil
}

// toNumber converts a known, non-null value to a float64. Numeric strings are
// accepted.
func toNumber(val cty.Value) (float64, error) {
	var out float64
	if err := decodeAs(val, cty.Number, &out); err != nil {
		return 0, err
	}
	return out, nil
}

func decodeAs(val cty.Value, ty cty.Type, target any) error {
	if !val.IsWhollyKnown() {
		return fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return fmt.Errorf("value is null")
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

// toCtyValue converts a native Go value into its corresponding cty.Value.
func toCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}
