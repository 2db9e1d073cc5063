package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReduceMergesIdenticalUnits(t *testing.T) {
	occs := []Occurrence{
		{Content: "Save", Kind: Simple, File: "a.svelte", Line: 3},
		{Content: "Save", Kind: Simple, File: "b.svelte", Line: 7},
	}

	units := Reduce(occs)
	require.Len(t, units, 1)
	require.Equal(t, "Save", units[0].Content)
	require.Equal(t, []Location{
		{File: "a.svelte", Line: 3},
		{File: "b.svelte", Line: 7},
	}, units[0].Locations)
}

func TestReduceCollapsesDuplicateLocations(t *testing.T) {
	occs := []Occurrence{
		{Content: "Save", Kind: Simple, File: "a.svelte", Line: 3},
		{Content: "Save", Kind: Simple, File: "a.svelte", Line: 3},
		{Content: "Save", Kind: Simple, File: "a.svelte", Line: 9},
	}

	units := Reduce(occs)
	require.Len(t, units, 1)
	require.Equal(t, []Location{
		{File: "a.svelte", Line: 3},
		{File: "a.svelte", Line: 9},
	}, units[0].Locations)
}

func TestReduceKeepsSimpleAndPluralDistinct(t *testing.T) {
	occs := []Occurrence{
		{Content: "item", Kind: Simple, File: "a.svelte", Line: 1},
		{Content: "item", Kind: PluralPair, PluralContent: "items", File: "a.svelte", Line: 2},
	}

	units := Reduce(occs)
	require.Len(t, units, 2)

	// Same content sorts together; simple before plural.
	require.Equal(t, Simple, units[0].Kind)
	require.Equal(t, PluralPair, units[1].Kind)
	require.Equal(t, "items", units[1].PluralContent)
}

func TestReduceDeterministicOrder(t *testing.T) {
	occs := []Occurrence{
		{Content: "zebra", Kind: Simple, File: "z.svelte", Line: 1},
		{Content: "apple", Kind: Simple, File: "a.svelte", Line: 5},
		{Content: "apple", Kind: Simple, File: "a.svelte", Line: 2},
		{Content: "mango", Kind: PluralPair, PluralContent: "mangoes", File: "m.svelte", Line: 9},
	}

	units := Reduce(occs)
	require.Len(t, units, 3)
	require.Equal(t, "apple", units[0].Content)
	require.Equal(t, "mango", units[1].Content)
	require.Equal(t, "zebra", units[2].Content)

	// Locations sorted by file then line.
	require.Equal(t, []Location{
		{File: "a.svelte", Line: 2},
		{File: "a.svelte", Line: 5},
	}, units[0].Locations)
}

func TestReduceEmpty(t *testing.T) {
	require.Empty(t, Reduce(nil))
}

func TestReferenceMap(t *testing.T) {
	units := Reduce([]Occurrence{
		{Content: "Save", Kind: Simple, File: "a.svelte", Line: 3},
		{Content: "item", Kind: PluralPair, PluralContent: "items", File: "b.svelte", Line: 4},
	})

	refs := ReferenceMap(units)
	require.Len(t, refs, 2)
	require.Equal(t,
		[]Location{{File: "a.svelte", Line: 3}},
		refs[Key{Kind: Simple, Content: "Save"}])
	require.Equal(t,
		[]Location{{File: "b.svelte", Line: 4}},
		refs[Key{Kind: PluralPair, Content: "item", PluralContent: "items"}])
}
