package abstracter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/sbgnqual/internal/domain/abstracter"
	"github.com/turtacn/sbgnqual/internal/domain/model"
)

func TestAbstract_CatalystAndInhibitor(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	for _, id := range []string{"E", "S", "P", "I"} {
		m.AddSpecies(&model.Species{ID: id, Name: id, Type: model.TypeProtein, Annotations: model.NewAnnotationBag()})
	}
	m.AddReaction(&model.Reaction{
		ID: "r1", Type: model.ReactionStateTransition,
		Reactants: []string{"S"}, Products: []string{"P"},
		Modifiers: []model.Modifier{
			{SpeciesID: "E", Kind: model.ModifierCatalyst},
			{SpeciesID: "I", Kind: model.ModifierInhibitor},
		},
	})

	arcs := abstracter.Abstract(m)
	assert.Len(t, arcs, 3)

	byKey := map[[2]string]model.Sign{}
	for _, a := range arcs {
		byKey[[2]string{a.Source, a.Target}] = a.Sign
	}
	assert.Equal(t, model.Positive, byKey[[2]string{"S", "P"}])
	assert.Equal(t, model.Positive, byKey[[2]string{"E", "P"}])
	assert.Equal(t, model.Negative, byKey[[2]string{"I", "P"}])
}

func TestAbstract_NoMutualInhibitionBetweenCoReactants(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	for _, id := range []string{"A", "B", "C"} {
		m.AddSpecies(&model.Species{ID: id, Name: id, Type: model.TypeProtein, Annotations: model.NewAnnotationBag()})
	}
	m.AddReaction(&model.Reaction{
		ID: "r1", Type: model.ReactionHeterodimerAssociation,
		Reactants: []string{"A", "B"}, Products: []string{"C"},
	})

	arcs := abstracter.Abstract(m)
	for _, a := range arcs {
		assert.NotEqual(t, "A", a.Target, "reactants must never be influence targets of each other")
		assert.NotEqual(t, "B", a.Target)
	}
	assert.Len(t, arcs, 2)
}

func TestAbstract_DeduplicatesRepeatedArcs(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	for _, id := range []string{"A", "P"} {
		m.AddSpecies(&model.Species{ID: id, Name: id, Type: model.TypeProtein, Annotations: model.NewAnnotationBag()})
	}
	m.AddReaction(&model.Reaction{ID: "r1", Type: model.ReactionStateTransition, Reactants: []string{"A"}, Products: []string{"P"}})
	m.AddReaction(&model.Reaction{ID: "r2", Type: model.ReactionStateTransition, Reactants: []string{"A"}, Products: []string{"P"}})

	arcs := abstracter.Abstract(m)
	assert.Len(t, arcs, 1)
}
