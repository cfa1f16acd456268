package reducer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/model"
	"github.com/turtacn/sbgnqual/internal/domain/reducer"
)

func species(id, name string, typ model.SpeciesType) *model.Species {
	return &model.Species{ID: id, Name: name, Type: typ, Annotations: model.NewAnnotationBag()}
}

// Scenario 1 (spec.md §8): minimal heterodimer — A, B, C all proteins;
// R2 should merge A and B into C, leaving only C.
func TestReduce_R2MinimalHeterodimer(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(species("A", "A", model.TypeProtein))
	m.AddSpecies(species("B", "B", model.TypeProtein))
	m.AddSpecies(species("C", "C", model.TypeProtein))
	m.AddReaction(&model.Reaction{
		ID: "r1", Type: model.ReactionHeterodimerAssociation,
		Reactants: []string{"A", "B"}, Products: []string{"C"},
	})

	reducer.Reduce(m, nil)

	_, okA := m.Lookup("A")
	_, okB := m.Lookup("B")
	c, okC := m.Lookup("C")
	assert.False(t, okA)
	assert.False(t, okB)
	require.True(t, okC)
	assert.Equal(t, "C", c.ID)

	rs := m.AllReactions()
	require.Len(t, rs, 1)
	assert.Empty(t, rs[0].Reactants)
	assert.Equal(t, []string{"C"}, rs[0].Products)

	bad := m.CheckReferentialIntegrity()
	assert.Empty(t, bad)
}

// Scenario 2 (spec.md §8): receptor collapse — L (protein), Recv
// (receptor), LR (complex); L and LR survive, Recv is removed.
func TestReduce_R1ReceptorCollapse(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(species("L", "L", model.TypeProtein))
	m.AddSpecies(species("Recv", "Recv", model.TypeReceptor))
	m.AddSpecies(species("LR", "LR", model.TypeComplex))
	m.AddReaction(&model.Reaction{
		ID: "r1", Type: model.ReactionHeterodimerAssociation,
		Reactants: []string{"L", "Recv"}, Products: []string{"LR"},
	})

	reducer.Reduce(m, nil)

	_, okL := m.Lookup("L")
	_, okRecv := m.Lookup("Recv")
	_, okLR := m.Lookup("LR")
	assert.True(t, okL)
	assert.False(t, okRecv)
	assert.True(t, okLR)

	rs := m.AllReactions()
	require.Len(t, rs, 1)
	assert.Equal(t, []string{"L"}, rs[0].Reactants)

	bad := m.CheckReferentialIntegrity()
	assert.Empty(t, bad)
}

func TestReduce_R3SameNamePassthrough(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(species("a1", "Foo", model.TypeProtein))
	m.AddSpecies(species("a2", "Foo", model.TypeProtein)) // same biological name
	m.AddReaction(&model.Reaction{
		ID: "r1", Type: model.ReactionStateTransition,
		Reactants: []string{"a1"}, Products: []string{"a2"},
	})

	reducer.Reduce(m, nil)

	_, ok1 := m.Lookup("a1")
	_, ok2 := m.Lookup("a2")
	assert.False(t, ok1)
	assert.True(t, ok2)
	assert.Empty(t, m.AllReactions())
}

func TestReduce_R4TransportMerge(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(species("cyto", "Foo", model.TypeProtein))
	m.AddSpecies(species("nuc", "Foo", model.TypeProtein))
	m.AddReaction(&model.Reaction{
		ID: "t1", Type: model.ReactionTransport,
		Reactants: []string{"cyto"}, Products: []string{"nuc"},
	})
	// cyto is also produced elsewhere — allowed by R4's relaxed condition.
	m.AddSpecies(species("src", "Src", model.TypeProtein))
	m.AddReaction(&model.Reaction{
		ID: "r0", Type: model.ReactionStateTransition,
		Reactants: []string{"src"}, Products: []string{"cyto"},
	})

	reducer.Reduce(m, nil)

	_, okCyto := m.Lookup("cyto")
	nuc, okNuc := m.Lookup("nuc")
	require.False(t, okCyto)
	require.True(t, okNuc)

	for _, r := range m.AllReactions() {
		if r.ID == "r0" {
			assert.Equal(t, []string{nuc.ID}, r.Products)
		}
	}
	bad := m.CheckReferentialIntegrity()
	assert.Empty(t, bad)
}

// Reduce is idempotent on its own output.
func TestReduce_IdempotentOnOutput(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	m.AddSpecies(species("A", "A", model.TypeProtein))
	m.AddSpecies(species("B", "B", model.TypeProtein))
	m.AddSpecies(species("C", "C", model.TypeProtein))
	m.AddReaction(&model.Reaction{
		ID: "r1", Type: model.ReactionHeterodimerAssociation,
		Reactants: []string{"A", "B"}, Products: []string{"C"},
	})

	reducer.Reduce(m, nil)
	speciesBefore := m.SpeciesCount()
	reactionsBefore := m.ReactionCount()

	reducer.Reduce(m, nil)

	assert.Equal(t, speciesBefore, m.SpeciesCount())
	assert.Equal(t, reactionsBefore, m.ReactionCount())
}
