package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "amon ra st brown", Normalize("Amon-Ra St. Brown"))
	assert.Equal(t, "marvin harrison jr", Normalize("  Marvin   Harrison Jr. "))
	assert.Equal(t, "devon achane", Normalize("De'Von Achane"))
	assert.Equal(t, "", Normalize("..."))
}

func TestIndexExactBeatsContainment(t *testing.T) {
	idx := NewIndex(map[string]int{
		"Josh Allen":        1,
		"Josh Allen Backup": 2,
	})

	m, ok := idx.Lookup("josh allen")
	require.True(t, ok)
	assert.Equal(t, 1, m.Value)
	assert.True(t, m.Exact)
}

func TestIndexSuffixVariance(t *testing.T) {
	idx := NewIndex(map[string]float64{
		"Brian Thomas Jr.":   6100,
		"Michael Pittman":    3100,
		"Kenneth Walker III": 4000,
	})

	m, ok := idx.Lookup("Brian Thomas")
	require.True(t, ok)
	assert.Equal(t, "Brian Thomas Jr.", m.Name)
	assert.False(t, m.Exact)

	m, ok = idx.Lookup("Michael Pittman Jr.")
	require.True(t, ok)
	assert.Equal(t, 3100.0, m.Value)

	m, ok = idx.Lookup("KENNETH WALKER")
	require.True(t, ok)
	assert.Equal(t, 4000.0, m.Value)
}

func TestIndexShortQueriesDoNotFuzzyMatch(t *testing.T) {
	idx := NewIndex(map[string]int{"Jalen Hurts": 1})
	_, ok := idx.Lookup("al")
	assert.False(t, ok)

	_, ok = idx.Lookup("Tom Brady")
	assert.False(t, ok)
}

func TestNilIndex(t *testing.T) {
	var idx *Index[int]
	_, ok := idx.Lookup("anyone")
	assert.False(t, ok)
	assert.Zero(t, idx.Len())
}
