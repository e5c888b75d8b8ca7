package integrationtests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/cellan/internal/app"
	"github.com/vk/cellan/internal/report"
	"github.com/vk/cellan/internal/testutil"
)

const externalHCL = `
model "ext" {
  component "main" {
    variable "a" { initial = 1 }
    variable "x" {}
    variable "y" {}
    equation {
      lhs = y
      rhs = x * 2
    }
  }
}`

const ohmHCL = `
model "ohm" {
  component "main" {
    variable "v" { units = "volt" }
    variable "i" {
      units   = "ampere"
      initial = 1
    }
    equation {
      lhs = v
      rhs = i
    }
  }
}`

func TestOptions_ExternalVariables(t *testing.T) {
	t.Parallel()

	t.Run("without externals the model is underconstrained", func(t *testing.T) {
		t.Parallel()

		result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": externalHCL})

		require.ErrorIs(t, result.Err, app.ErrInvalidModel)
		assert.Equal(t, "UNDERCONSTRAINED", result.Report.Type)
	})

	t.Run("supplied variable with a dependency", func(t *testing.T) {
		t.Parallel()

		result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": externalHCL},
			withExternals("main.x:main.a"))

		require.NoError(t, result.Err)
		r := result.Report
		assert.Equal(t, "ALGEBRAIC", r.Type)

		x, ok := variable(r, "main.x")
		require.True(t, ok)
		assert.Equal(t, "EXTERNAL", x.Type)

		require.Len(t, r.Equations, 2)
		assert.Equal(t, "EXTERNAL", r.Equations[0].Type)
		assert.Equal(t, []string{"main.x"}, r.Equations[0].Computes)
		assert.Equal(t, []string{"main.a"}, r.Equations[0].Dependencies)
		assert.Equal(t, "ALGEBRAIC", r.Equations[1].Type)
	})

	t.Run("unknown external is reported", func(t *testing.T) {
		t.Parallel()

		result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": externalHCL},
			withExternals("main.x", "main.nothing"))

		require.ErrorIs(t, result.Err, app.ErrInvalidModel)
		assert.Contains(t, issueCodes(result.Report), "INVALID_EXTERNAL")
	})
}

func TestOptions_UnitsStrictness(t *testing.T) {
	t.Parallel()

	files := map[string]string{"main.hcl": ohmHCL}

	t.Run("mismatch is a warning by default", func(t *testing.T) {
		t.Parallel()

		result := testutil.RunIntegrationTest(t, files)

		require.NoError(t, result.Err)
		require.Len(t, result.Report.Issues, 1)
		assert.Equal(t, "UNITS_MISMATCH", result.Report.Issues[0].Code)
		assert.Equal(t, "warning", result.Report.Issues[0].Level)
	})

	t.Run("strict mismatch fails the model", func(t *testing.T) {
		t.Parallel()

		result := testutil.RunIntegrationTest(t, files, withStrictUnits)

		require.ErrorIs(t, result.Err, app.ErrInvalidModel)
		assert.Equal(t, "ALGEBRAIC", result.Report.Type, "units never change the model type")
		assert.False(t, result.Report.Valid)
		assert.Equal(t, "error", result.Report.Issues[0].Level)
	})

	t.Run("check disabled", func(t *testing.T) {
		t.Parallel()

		result := testutil.RunIntegrationTest(t, files, withStrictUnits, func(c *app.Config) {
			c.UnitsCheck = false
		})

		require.NoError(t, result.Err)
		assert.Empty(t, result.Report.Issues)
	})
}

func TestOptions_OutputFormats(t *testing.T) {
	t.Parallel()

	files := map[string]string{"main.hcl": ohmHCL}

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		result := testutil.RunIntegrationTest(t, files, func(c *app.Config) { c.OutputFormat = "yaml" })
		require.NoError(t, result.Err)

		var decoded report.Report
		require.NoError(t, yaml.Unmarshal([]byte(result.Output), &decoded))
		assert.Equal(t, *result.Report, decoded)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		result := testutil.RunIntegrationTest(t, files, func(c *app.Config) { c.OutputFormat = "text" })
		require.NoError(t, result.Err)

		assert.Contains(t, result.Output, "Model ohm")
		assert.Contains(t, result.Output, "UNITS_MISMATCH")
	})
}

func TestOptions_MetricsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cellan.prom")
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": ohmHCL}, func(c *app.Config) {
		c.MetricsFile = path
	})
	require.NoError(t, result.Err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cellan_analyses_total{model_type="ALGEBRAIC"} 1`)
	assert.Contains(t, string(data), "cellan_model_variables")
}
