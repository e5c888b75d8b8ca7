package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/app"
	"github.com/vk/cellan/internal/testutil"
)

// TestLoading_MergesFilesFromDirectory checks that a model split over several
// files, including subdirectories, is analysed as one.
func TestLoading_MergesFilesFromDirectory(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"model.hcl": `
model "connected" {
  connection {
    component_1 = "a"
    component_2 = "b"
    variables   = { x = "y" }
  }
}`,
		"components/a.hcl": `
model "connected" {
  component "a" {
    variable "x" {
      interface = "public"
    }
  }
}`,
		"components/b.hcl": `
model "connected" {
  component "b" {
    variable "y" {
      initial   = 5
      interface = "public"
    }
    variable "z" {}
    equation {
      lhs = z
      rhs = y * 3
    }
  }
}`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	r := result.Report
	assert.Equal(t, "ALGEBRAIC", r.Type)
	require.Len(t, r.Variables, 2, "x and y are one variable")

	// Files are read in path order, so a.x is declared first and represents
	// the pair.
	x, ok := variable(r, "a.x")
	require.True(t, ok)
	assert.Equal(t, "CONSTANT", x.Type)
	require.NotNil(t, x.Initial)
	assert.InDelta(t, 5.0, *x.Initial, 0)
	assert.Equal(t, []string{"b.y"}, x.Equivalents)

	z, ok := variable(r, "b.z")
	require.True(t, ok)
	assert.Equal(t, "COMPUTED_CONSTANT", z.Type)
}

func TestLoading_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"main.hcl": "model \"m\" {\n  component \"c\" {\n"},
			wantErr: "failed to parse",
		},
		{
			name:    "no model files",
			files:   map[string]string{"README.md": "not a model"},
			wantErr: "no .hcl model files",
		},
		{
			name: "unknown component in connection",
			files: map[string]string{"main.hcl": `
model "m" {
  component "a" {
    variable "x" {}
  }
  connection {
    component_1 = "a"
    component_2 = "missing"
    variables   = { x = "x" }
  }
}`},
			wantErr: `There is no component named "missing".`,
		},
		{
			name: "duplicate variable",
			files: map[string]string{"main.hcl": `
model "m" {
  component "a" {
    variable "x" {}
    variable "x" {}
  }
}`},
			wantErr: "Duplicate variable",
		},
		{
			name: "two different models",
			files: map[string]string{
				"one.hcl": `model "one" {}`,
				"two.hcl": `model "two" {}`,
			},
			wantErr: "more than one model",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := testutil.RunIntegrationTest(t, tc.files)

			require.Error(t, result.Err)
			assert.NotErrorIs(t, result.Err, app.ErrInvalidModel)
			assert.Contains(t, result.Err.Error(), "failed to load model")
			assert.Contains(t, result.Err.Error(), tc.wantErr)
			assert.Nil(t, result.Report)
			assert.Empty(t, result.Output, "nothing is reported for a model that failed to load")
		})
	}
}
