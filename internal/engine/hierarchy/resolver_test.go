package hierarchy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/engine/hierarchy"
)

func catalog() *domain.VPS {
	return &domain.VPS{
		Classes: []domain.ReservingClassType{
			{Name: "Total", Formula: "X - Y", EEXFormula: "X"},
			{Name: "Motor", Formula: `"Private Car" + Fleet`},
			{Name: "Fleet"},
			{Name: "Private Car"},
			{Name: "Net", Formula: "Gross - Ceded - Ceded"},
		},
	}
}

func TestResolve_FormulaWithEEX(t *testing.T) {
	levels, err := hierarchy.Resolve("total", []string{"L1"}, catalog())
	require.NoError(t, err)
	require.Len(t, levels, 1)

	l := levels[0]
	assert.Equal(t, "L1", l.Column)
	assert.ElementsMatch(t, []string{"Total", "X", "Y"}, l.Included)
	assert.Equal(t, []string{"Y"}, l.Excluded)
	assert.Equal(t, []string{"Y"}, l.Adjusted)
}

func TestResolve_Levels(t *testing.T) {
	levels, err := hierarchy.Resolve(`Motor\\fleet/Extra`, []string{"L1", "L2", "L3"}, catalog())
	require.NoError(t, err)
	require.Len(t, levels, 3)

	assert.Equal(t, []string{"Motor", "Private Car", "Fleet"}, levels[0].Included)
	assert.Empty(t, levels[0].Excluded)
	assert.Empty(t, levels[0].Adjusted)

	assert.False(t, levels[1].Filters())
	assert.True(t, levels[1].Includes("anything"))

	assert.Equal(t, []string{"Fleet"}, levels[2].Included)
	assert.True(t, levels[2].Includes("Fleet"))
	assert.False(t, levels[2].Includes("Motor"))
}

func TestResolve_ExtraSegmentsIgnored(t *testing.T) {
	levels, err := hierarchy.Resolve("Motor/Fleet/Unknown", []string{"L1", "L2"}, catalog())
	require.NoError(t, err)
	assert.Len(t, levels, 2)
}

func TestResolve_DuplicateExclusionsCollapse(t *testing.T) {
	levels, err := hierarchy.Resolve("net", []string{"L1"}, catalog())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ceded"}, levels[0].Excluded)
	assert.True(t, levels[0].Excludes("Ceded"))
	assert.False(t, levels[0].Excludes("Gross"))
}

func TestResolve_UnknownCategory(t *testing.T) {
	_, err := hierarchy.Resolve("Motor/Marine", []string{"L1", "L2"}, catalog())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownCategory))
	assert.Equal(t, "Marine", domain.NameOf(err))
}

func TestResolve_EmptyPath(t *testing.T) {
	levels, err := hierarchy.Resolve("", []string{"L1", "L2"}, catalog())
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"A", "", "C"}, hierarchy.SplitPath("A//C"))
	assert.Equal(t, []string{"A", "B"}, hierarchy.SplitPath(`A\B`))
	assert.Nil(t, hierarchy.SplitPath("  "))
}
