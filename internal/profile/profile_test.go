package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLookup(t *testing.T) {
	table := Default()

	e, err := table.Lookup(9, Easy)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 36, Max: 45}, e.Givens)
	assert.Positive(t, e.Budget)

	e, err = table.Lookup(6, Expert)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 12, Max: 15}, e.Givens)

	_, err = table.Lookup(12, Easy)
	assert.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		got, err := ParseDifficulty(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := ParseDifficulty("brutal")
	assert.Error(t, err)
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 36, Max: 45}
	assert.True(t, r.Contains(36))
	assert.True(t, r.Contains(45))
	assert.False(t, r.Contains(35))
	assert.False(t, r.Contains(46))
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `
"9":
  Easy:
    givens:
      min: 40
      max: 44
    budget: 500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	e, err := table.Lookup(9, Easy)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 40, Max: 44}, e.Givens)
	assert.Equal(t, 500, e.Budget)

	// Untouched entries keep their defaults.
	e, err = table.Lookup(9, Hard)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 24, Max: 29}, e.Givens)
	e, err = table.Lookup(16, Expert)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 80, Max: 99}, e.Givens)
}

func TestValidateRejectsBadTables(t *testing.T) {
	bad := Default()
	bad[12] = bad[9]
	assert.Error(t, bad.Validate(), "unsupported size")

	bad = Default()
	bad[9][Easy] = Entry{Givens: Range{Min: 50, Max: 40}, Budget: 100}
	assert.Error(t, bad.Validate(), "inverted range")

	bad = Default()
	bad[6][Hard] = Entry{Givens: Range{Min: 16, Max: 19}, Budget: 0}
	assert.Error(t, bad.Validate(), "zero budget")

	bad = Default()
	delete(bad[16], Medium)
	assert.Error(t, bad.Validate(), "missing tier")
}
