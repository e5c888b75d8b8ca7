package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/app"
	"github.com/vk/cellan/internal/cli"
)

const decayHCL = `
model "decay" {
  component "main" {
    variable "t" { units = "second" }
    variable "x" {
      units   = "dimensionless"
      initial = 1
    }
    variable "k" {
      units   = "per_second"
      initial = 0.5
    }
    equation {
      lhs = ode(x, t)
      rhs = -k * x
    }
  }
  units "per_second" {
    unit "second" { exponent = -1 }
  }
}
`

const underconstrainedHCL = `
model "loose" {
  component "main" {
    variable "x" {}
    variable "y" {}
    equation {
      lhs = x
      rhs = y + 1
    }
  }
}
`

func writeModel(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0600), "failed to set up test file")
	return path
}

func TestRun_ValidModel(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeModel(t, decayHCL)
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{"-output", "json", path})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"type": "ODE"`)
	assert.Contains(t, logs.String(), "Analysis finished.")
	assert.Equal(t, 0, exitCode(err))
}

func TestRun_InvalidModel(t *testing.T) {
	t.Parallel()

	path := writeModel(t, underconstrainedHCL)
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	err := run(out, logs, []string{"-m", path})

	require.ErrorIs(t, err, app.ErrInvalidModel)
	assert.Contains(t, out.String(), "UNDERCONSTRAINED")
	assert.Equal(t, exitInvalidModel, exitCode(err))
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntax error is reported as an ordinary failure, not a usage error.
	path := writeModel(t, "model \"broken\" {\n  component \"c\" {\n")
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{path})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load model")
	assert.Contains(t, err.Error(), "failed to parse")
	assert.Equal(t, 1, exitCode(err))
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should propagate the error from cli.Parse.
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitCode(err))
}
