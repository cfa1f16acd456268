package namer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/sbgnqual/internal/domain/model"
	"github.com/turtacn/sbgnqual/internal/domain/namer"
)

func sp(id, name string, typ model.SpeciesType) *model.Species {
	return &model.Species{ID: id, Name: name, Type: typ, Annotations: model.NewAnnotationBag()}
}

func TestName_UniqueNamesAreUntouched(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(sp("s1", "Foo", model.TypeProtein))
	m.AddSpecies(sp("s2", "Bar", model.TypeProtein))

	namer.Name(m, namer.Params{})

	foo, _ := m.Lookup("s1")
	bar, _ := m.Lookup("s2")
	assert.Equal(t, "Foo", foo.PublicName)
	assert.Equal(t, "Bar", bar.PublicName)
	assert.Equal(t, "Foo", foo.ExportID)
	assert.Equal(t, "Bar", bar.ExportID)
}

func TestName_TypeSuffixDisambiguates(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(sp("s1", "Foo", model.TypeRNA))
	m.AddSpecies(sp("s2", "Foo", model.TypeGene))

	namer.Name(m, namer.Params{})

	a, _ := m.Lookup("s1")
	b, _ := m.Lookup("s2")
	assert.Equal(t, "Foo_rna", a.PublicName)
	assert.Equal(t, "Foo_gene", b.PublicName)
}

func TestName_FallsBackToNumericSuffixWhenTypesIdentical(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(sp("s1", "Foo", model.TypeProtein))
	m.AddSpecies(sp("s2", "Foo", model.TypeProtein))

	namer.Name(m, namer.Params{})

	a, _ := m.Lookup("s1")
	b, _ := m.Lookup("s2")
	assert.Equal(t, "Foo_protein_1", a.PublicName)
	assert.Equal(t, "Foo_protein_2", b.PublicName)
}

func TestName_ExportIDSanitizesNonSIdCharacters(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(sp("s1", "9-Foo/Bar", model.TypeProtein))

	namer.Name(m, namer.Params{})

	s, _ := m.Lookup("s1")
	assert.Equal(t, "_9_Foo_Bar", s.ExportID)
}

func TestName_NamesFlagSwapsExportIDBasis(t *testing.T) {
	t.Parallel()

	// Default mode: ExportID is sanitize(PublicName), so it carries the
	// type-suffix disambiguation.
	mDefault := model.NewModel()
	mDefault.AddSpecies(sp("s1", "Foo", model.TypeProtein))
	mDefault.AddSpecies(sp("s2", "Foo", model.TypeProtein))
	namer.Name(mDefault, namer.Params{})
	d1, _ := mDefault.Lookup("s1")
	d2, _ := mDefault.Lookup("s2")
	assert.Equal(t, "Foo_protein_1", d1.ExportID)
	assert.Equal(t, "Foo_protein_2", d2.ExportID)

	// --names mode: ExportID is sanitize(raw biological name), so it
	// disambiguates independently of the PublicName's type suffix.
	mNames := model.NewModel()
	mNames.AddSpecies(sp("s1", "Foo", model.TypeProtein))
	mNames.AddSpecies(sp("s2", "Foo", model.TypeProtein))
	namer.Name(mNames, namer.Params{PreferNamesAsID: true})
	n1, _ := mNames.Lookup("s1")
	n2, _ := mNames.Lookup("s2")
	assert.Equal(t, "Foo_protein_1", n1.PublicName) // display name unaffected by the flag
	assert.Equal(t, "Foo_1", n1.ExportID)
	assert.Equal(t, "Foo_2", n2.ExportID)
}
