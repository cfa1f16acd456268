package bnet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
)

func TestWrite_FormulaAndFreeInput(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(&model.Species{ID: "a", Name: "A", ExportID: "A"})
	m.AddSpecies(&model.Species{ID: "b", Name: "B", ExportID: "B",
		Function: expr.Not(expr.Var("A"))})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))

	want := "targets, factors\nA, A\nB, NOT A\n"
	assert.Equal(t, want, buf.String())
}
