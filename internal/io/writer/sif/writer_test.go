package sif

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/model"
)

func TestWrite_FiltersDroppedEndpoints(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	m.AddSpecies(&model.Species{ID: "a", Name: "A", ExportID: "A"})
	m.AddSpecies(&model.Species{ID: "b", Name: "B", ExportID: "B"})

	influences := []model.Influence{
		{Source: "a", Target: "b", Sign: model.Positive},
		{Source: "a", Target: "dropped", Sign: model.Negative},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, influences))
	assert.Equal(t, "A\t+\tB\n", buf.String())
}
