package celldesigner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/model"
)

const minimalHeterodimer = `<?xml version="1.0"?>
<sbgn-pd-map>
  <listOfSpecies>
    <species id="A" name="A" class="PROTEIN"/>
    <species id="B" name="B" class="PROTEIN"/>
    <species id="C" name="C" class="PROTEIN"/>
  </listOfSpecies>
  <listOfReactions>
    <reaction id="R1" class="HETERODIMER_ASSOCIATION">
      <listOfReactants>
        <speciesReference species="A"/>
        <speciesReference species="B"/>
      </listOfReactants>
      <listOfProducts>
        <speciesReference species="C"/>
      </listOfProducts>
    </reaction>
  </listOfReactions>
</sbgn-pd-map>`

func TestRead_MinimalHeterodimer(t *testing.T) {
	t.Parallel()
	m, err := Read(strings.NewReader(minimalHeterodimer))
	require.NoError(t, err)

	require.Equal(t, 3, m.SpeciesCount())
	require.Equal(t, 1, m.ReactionCount())

	a, ok := m.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, model.TypeProtein, a.Type)

	r := m.AllReactions()[0]
	assert.Equal(t, model.ReactionHeterodimerAssociation, r.Type)
	assert.Equal(t, []string{"A", "B"}, r.Reactants)
	assert.Equal(t, []string{"C"}, r.Products)
}

func TestRead_UnknownSpeciesClassIsMalformed(t *testing.T) {
	t.Parallel()
	doc := `<sbgn-pd-map>
  <listOfSpecies><species id="A" name="A" class="NOT_A_REAL_CLASS"/></listOfSpecies>
</sbgn-pd-map>`
	_, err := Read(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestRead_MissingSpeciesIDIsMalformed(t *testing.T) {
	t.Parallel()
	doc := `<sbgn-pd-map>
  <listOfSpecies><species name="A" class="PROTEIN"/></listOfSpecies>
</sbgn-pd-map>`
	_, err := Read(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestRead_ModifiersAndAnnotations(t *testing.T) {
	t.Parallel()
	doc := `<sbgn-pd-map>
  <listOfSpecies>
    <species id="E" name="E" class="PROTEIN"/>
    <species id="S" name="S" class="SIMPLE_MOLECULE"/>
    <species id="P" name="P" class="SIMPLE_MOLECULE">
      <annotation><rdf><description qualifier="is">urn:miriam:uniprot:P1</description></rdf></annotation>
    </species>
  </listOfSpecies>
  <listOfReactions>
    <reaction id="R1" class="STATE_TRANSITION">
      <listOfReactants><speciesReference species="S"/></listOfReactants>
      <listOfProducts><speciesReference species="P"/></listOfProducts>
      <listOfModifiers><modifierSpeciesReference species="E" role="CATALYST"/></listOfModifiers>
    </reaction>
  </listOfReactions>
</sbgn-pd-map>`
	m, err := Read(strings.NewReader(doc))
	require.NoError(t, err)

	r := m.AllReactions()[0]
	require.Len(t, r.Modifiers, 1)
	assert.Equal(t, model.ModifierCatalyst, r.Modifiers[0].Kind)

	p, ok := m.Lookup("P")
	require.True(t, ok)
	assert.Equal(t, []string{"urn:miriam:uniprot:P1"}, p.Annotations.URIs(model.QualifierIs))
}
