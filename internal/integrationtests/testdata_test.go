package integrationtests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/report"
	"github.com/vk/cellan/internal/testutil"
)

// readFixture returns every file of testdata/<name> keyed by its name.
func readFixture(t *testing.T, name string) map[string]string {
	t.Helper()
	dir := filepath.Join("testdata", name)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	files := make(map[string]string, len(entries))
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		require.NoError(t, err)
		files[entry.Name()] = string(data)
	}
	return files
}

func countByType(vars []report.Variable) map[string]int {
	out := make(map[string]int)
	for _, v := range vars {
		out[v.Type]++
	}
	return out
}

func TestFixture_HodgkinHuxley(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, readFixture(t, "hh"))

	// --- Assert ---
	require.NoError(t, result.Err)
	r := result.Report
	assert.Equal(t, "hodgkin_huxley_squid_axon_1952", r.Model)
	assert.Equal(t, "ODE", r.Type)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Issues)
	assert.Equal(t, "environment.time", r.VOI)

	assert.Equal(t, map[string]int{
		"VARIABLE_OF_INTEGRATION": 1,
		"STATE":                   4,
		"CONSTANT":                5,
		"COMPUTED_CONSTANT":       3,
		"ALGEBRAIC":               10,
	}, countByType(r.Variables))

	v, ok := variable(r, "membrane.V")
	require.True(t, ok)
	assert.Equal(t, "STATE", v.Type)
	require.NotNil(t, v.Initial)
	assert.InDelta(t, -75.0, *v.Initial, 0)
	assert.ElementsMatch(t, []string{"sodium_channel.V", "potassium_channel.V", "leakage_current.V"}, v.Equivalents)

	require.Len(t, r.Equations, 17)
	position := make(map[string]int)
	for i, e := range r.Equations {
		assert.Equal(t, i, e.Order)
		assert.Nil(t, e.NLASystem)
		for _, name := range e.Computes {
			if e.Type != "RATE" {
				position[name] = i
			}
		}
	}
	for _, e := range r.Equations {
		for _, dep := range e.Dependencies {
			if at, ok := position[dep]; ok {
				assert.Less(t, at, e.Order, "%s is computed before equation %d reads it", dep, e.Order)
			}
		}
	}
	assert.Equal(t, []string{"leq", "geq", "and"}, r.HelperFunctions, "the stimulus condition needs comparison and logic helpers")
}
