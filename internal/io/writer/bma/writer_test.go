package bma

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
)

func TestWrite_SimpleModel(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(&model.Species{ID: "a", Name: "A", PublicName: "A", ExportID: "A", Type: model.TypeGene})
	m.AddSpecies(&model.Species{ID: "b", Name: "B", PublicName: "B", ExportID: "B",
		Function: expr.Var("a")})

	influences := []model.Influence{
		{Source: "a", Target: "b", Sign: model.Positive},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, influences, "test-model", Params{Granularity: 1}))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "test-model", doc.Model.Name)
	require.Len(t, doc.Model.Variables, 2)
	require.Len(t, doc.Model.Relationships, 1)
	require.Equal(t, "Activator", doc.Model.Relationships[0].Type)
}

func TestWrite_GranularityDefaultsToOne(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(&model.Species{ID: "a", Name: "A", PublicName: "A", ExportID: "A"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, nil, "m", Params{}))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, 1, doc.Model.Variables[0].RangeTo)
}

func TestWrite_ColourConstant(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(&model.Species{ID: "a", Name: "A", PublicName: "A", ExportID: "A", Type: model.TypeGene})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, nil, "m", Params{Granularity: 1, ColourConstant: true}))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, defaultColour, doc.Layout.Variables[0].Colour)
}
