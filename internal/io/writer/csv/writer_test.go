package csv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
)

func TestWrite_HeaderAndRows(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(&model.Species{ID: "a", Name: "AlphaProtein", PublicName: "A", ExportID: "A",
		Function: expr.Var("x")})
	m.AddSpecies(&model.Species{ID: "b", Name: "B", PublicName: "B", ExportID: "B"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))

	want := "id,name,formula,alias\nA,A,x,AlphaProtein\nB,B,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_EmptyModel(t *testing.T) {
	t.Parallel()
	m := model.NewModel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Equal(t, "id,name,formula,alias\n", buf.String())
}
