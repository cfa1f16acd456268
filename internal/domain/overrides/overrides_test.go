package overrides_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/model"
	"github.com/turtacn/sbgnqual/internal/domain/overrides"
)

func namedSpecies(m *model.Model, id, publicName string) {
	m.AddSpecies(&model.Species{ID: id, Name: publicName, PublicName: publicName, Type: model.TypeProtein, Annotations: model.NewAnnotationBag()})
}

func TestApply_KnockOutSetsFalse(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	namedSpecies(m, "s1", "P53")

	unresolved := overrides.Apply(m, []overrides.Override{{Name: "P53", Value: 0}})
	assert.Empty(t, unresolved)

	s, ok := m.Lookup("s1")
	require.True(t, ok)
	assert.Equal(t, "FALSE", s.Function.String())
	require.NotNil(t, s.FixedValue)
	assert.Equal(t, 0, *s.FixedValue)
}

func TestApply_KnockInSetsTrue(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	namedSpecies(m, "s1", "RAS")

	overrides.Apply(m, []overrides.Override{{Name: "RAS", Value: 1}})

	s, ok := m.Lookup("s1")
	require.True(t, ok)
	assert.Equal(t, "TRUE", s.Function.String())
}

func TestApply_UnresolvedNameReportedNotFatal(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	namedSpecies(m, "s1", "RAS")

	unresolved := overrides.Apply(m, []overrides.Override{{Name: "Nonexistent", Value: 1}})
	require.Len(t, unresolved, 1)

	s, ok := m.Lookup("s1")
	require.True(t, ok)
	assert.Nil(t, s.Function) // untouched
}
