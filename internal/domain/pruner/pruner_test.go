package pruner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
	"github.com/turtacn/sbgnqual/internal/domain/pruner"
)

func sp(m *model.Model, id string) {
	m.AddSpecies(&model.Species{ID: id, Name: id, Type: model.TypeProtein, Annotations: model.NewAnnotationBag()})
}

func inf(source, target string, sign model.Sign) model.Influence {
	return model.Influence{Source: source, Target: target, Sign: sign}
}

// Scenario 5 (spec.md §8): two components of sizes 5 and 2.
func buildTwoComponents() (*model.Model, []model.Influence) {
	m := model.NewModel()
	big := []string{"A1", "A2", "A3", "A4", "A5"}
	small := []string{"B1", "B2"}
	for _, id := range append(append([]string{}, big...), small...) {
		sp(m, id)
	}
	influences := []model.Influence{
		inf("A1", "A2", model.Positive),
		inf("A2", "A3", model.Positive),
		inf("A3", "A4", model.Positive),
		inf("A4", "A5", model.Positive),
		inf("B1", "B2", model.Positive),
	}
	return m, influences
}

func TestPrune_ComponentFilter_PositiveThresholdDropsSmall(t *testing.T) {
	t.Parallel()
	m, influences := buildTwoComponents()

	pruner.Prune(m, influences, pruner.Params{ComponentThreshold: 3}, nil)

	for _, id := range []string{"A1", "A2", "A3", "A4", "A5"} {
		_, ok := m.Lookup(id)
		assert.True(t, ok, id)
	}
	for _, id := range []string{"B1", "B2"} {
		_, ok := m.Lookup(id)
		assert.False(t, ok, id)
	}
}

func TestPrune_ComponentFilter_NegativeThresholdKeepsLargest(t *testing.T) {
	t.Parallel()
	m, influences := buildTwoComponents()

	pruner.Prune(m, influences, pruner.Params{ComponentThreshold: -1}, nil)

	_, okA1 := m.Lookup("A1")
	_, okB1 := m.Lookup("B1")
	assert.True(t, okA1)
	assert.False(t, okB1)
}

func TestPrune_ComponentFilter_ZeroIsNoOp(t *testing.T) {
	t.Parallel()
	m, influences := buildTwoComponents()

	pruner.Prune(m, influences, pruner.Params{ComponentThreshold: 0}, nil)

	for _, id := range []string{"A1", "A2", "A3", "A4", "A5", "B1", "B2"} {
		_, ok := m.Lookup(id)
		assert.True(t, ok, id)
	}
}

// Scenario 6 (spec.md §8): chain A->B->C->D plus isolated X->Y;
// --upstream D keeps {A,B,C,D}, drops {X,Y}.
func TestPrune_UpstreamCone(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	for _, id := range []string{"A", "B", "C", "D", "X", "Y"} {
		sp(m, id)
	}
	influences := []model.Influence{
		inf("A", "B", model.Positive),
		inf("B", "C", model.Positive),
		inf("C", "D", model.Positive),
		inf("X", "Y", model.Positive),
	}

	pruner.Prune(m, influences, pruner.Params{UpstreamNames: []string{"D"}}, nil)

	for _, id := range []string{"A", "B", "C", "D"} {
		_, ok := m.Lookup(id)
		assert.True(t, ok, id)
	}
	for _, id := range []string{"X", "Y"} {
		_, ok := m.Lookup(id)
		assert.False(t, ok, id)
	}
}

func TestPrune_DownstreamCone(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	for _, id := range []string{"A", "B", "C", "D", "X", "Y"} {
		sp(m, id)
	}
	influences := []model.Influence{
		inf("A", "B", model.Positive),
		inf("B", "C", model.Positive),
		inf("C", "D", model.Positive),
		inf("X", "Y", model.Positive),
	}

	pruner.Prune(m, influences, pruner.Params{DownstreamNames: []string{"A"}}, nil)

	for _, id := range []string{"A", "B", "C", "D"} {
		_, ok := m.Lookup(id)
		assert.True(t, ok, id)
	}
	for _, id := range []string{"X", "Y"} {
		_, ok := m.Lookup(id)
		assert.False(t, ok, id)
	}
}

func TestPrune_BothConesKeepUnion(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	for _, id := range []string{"A", "B", "C", "X", "Y", "Z"} {
		sp(m, id)
	}
	influences := []model.Influence{
		inf("A", "B", model.Positive),
		inf("B", "C", model.Positive), // upstream of C reaches A,B,C
		inf("X", "Y", model.Positive),
		inf("Y", "Z", model.Positive), // downstream of X reaches X,Y,Z
	}

	pruner.Prune(m, influences, pruner.Params{UpstreamNames: []string{"C"}, DownstreamNames: []string{"X"}}, nil)

	for _, id := range []string{"A", "B", "C", "X", "Y", "Z"} {
		_, ok := m.Lookup(id)
		assert.True(t, ok, id)
	}
}

// Dropped species referenced inside a surviving formula are replaced by
// FALSE and the formula re-simplified.
func TestPrune_SubstitutesDroppedReferencesAndSimplifies(t *testing.T) {
	t.Parallel()

	m := model.NewModel()
	sp(m, "Keep")
	sp(m, "Gone")
	keep, _ := m.Lookup("Keep")
	keep.Function = expr.And(expr.Var("Keep"), expr.Var("Gone"))

	pruner.Prune(m, nil, pruner.Params{UpstreamNames: []string{"Keep"}}, nil)

	k, ok := m.Lookup("Keep")
	require.True(t, ok)
	assert.Equal(t, "FALSE", k.Function.String())
	_, okGone := m.Lookup("Gone")
	assert.False(t, okGone)
}
