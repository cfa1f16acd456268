package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/model"
)

func newSpecies(id, name string) *model.Species {
	return &model.Species{ID: id, Name: name, Type: model.TypeProtein, Annotations: model.NewAnnotationBag()}
}

func TestModel_LookupAndAscendingOrder(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(newSpecies("s1", "A"))
	m.AddSpecies(newSpecies("s2", "B"))
	m.AddSpecies(newSpecies("s3", "C"))

	got := m.AllSpecies()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"s1", "s2", "s3"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestModel_MergeIntoRedirectsLookup(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(newSpecies("a", "A"))
	m.AddSpecies(newSpecies("b", "B"))
	m.AddSpecies(newSpecies("p", "P"))

	require.NoError(t, m.MergeInto("a", "p"))
	require.NoError(t, m.DeleteSpecies("a", model.RequireDetached))

	_, ok := m.Lookup("a")
	assert.False(t, ok, "a should no longer be independently visible")

	resolved, ok := m.Resolve("a")
	require.True(t, ok)
	assert.Equal(t, "p", resolved)
}

func TestModel_MergeIntoFailsOnMergedAwayTarget(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(newSpecies("a", "A"))
	m.AddSpecies(newSpecies("b", "B"))
	m.AddSpecies(newSpecies("c", "C"))

	require.NoError(t, m.MergeInto("b", "c"))
	require.NoError(t, m.DeleteSpecies("b", model.RequireDetached))

	err := m.MergeInto("a", "b")
	require.Error(t, err)
}

func TestAnnotationBag_MergeIsCommutativeAndIdempotent(t *testing.T) {
	t.Parallel()

	a := model.NewAnnotationBag()
	a.Add(model.QualifierIs, "urn:miriam:uniprot:P1")
	a.Add(model.QualifierIsDescribedBy, "urn:miriam:pubmed:123")

	b := model.NewAnnotationBag()
	b.Add(model.QualifierIs, "urn:miriam:uniprot:P1") // duplicate across bags
	b.Add(model.QualifierIs, "urn:miriam:uniprot:P2")

	merged1 := model.NewAnnotationBag()
	merged1.MergeFrom(a)
	merged1.MergeFrom(b)

	merged2 := model.NewAnnotationBag()
	merged2.MergeFrom(b)
	merged2.MergeFrom(a)

	assert.ElementsMatch(t, merged1.URIs(model.QualifierIs), merged2.URIs(model.QualifierIs))
	assert.Len(t, merged1.URIs(model.QualifierIs), 2)

	// Idempotent: merging a second time changes nothing.
	before := len(merged1.URIs(model.QualifierIs))
	merged1.MergeFrom(a)
	assert.Equal(t, before, len(merged1.URIs(model.QualifierIs)))
}

func TestModel_DeleteSpeciesDropsIncidentReactions(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(newSpecies("a", "A"))
	m.AddSpecies(newSpecies("b", "B"))
	m.AddReaction(&model.Reaction{ID: "r1", Type: model.ReactionStateTransition, Reactants: []string{"a"}, Products: []string{"b"}})

	require.NoError(t, m.DeleteSpecies("a", model.DropIncidentReactions))

	assert.Empty(t, m.AllReactions())
}

func TestModel_CheckReferentialIntegrity(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(newSpecies("a", "A"))
	m.AddReaction(&model.Reaction{ID: "r1", Type: model.ReactionStateTransition, Reactants: []string{"a"}, Products: []string{"ghost"}})

	bad := m.CheckReferentialIntegrity()
	require.Len(t, bad, 1)
	assert.Equal(t, "ghost", bad[0].SpeciesID)
}
