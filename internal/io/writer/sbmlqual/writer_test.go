package sbmlqual

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
)

func TestWrite_SimpleModel(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	a := &model.Species{ID: "a", Name: "A", Type: model.TypeProtein, PublicName: "A", ExportID: "A"}
	p := &model.Species{ID: "p", Name: "P", Type: model.TypeProtein, PublicName: "P", ExportID: "P", Function: expr.Var("a")}
	m.AddSpecies(a)
	m.AddSpecies(p)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, "test_model"))

	out := buf.String()
	assert.True(t, strings.Contains(out, `id="A"`))
	assert.True(t, strings.Contains(out, `id="P"`))
	assert.True(t, strings.Contains(out, `qualitativeSpecies="A"`))
}

func TestWrite_FreeInputHasNoTransition(t *testing.T) {
	t.Parallel()
	m := model.NewModel()
	a := &model.Species{ID: "a", Name: "A", PublicName: "A", ExportID: "A"}
	m.AddSpecies(a)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, "m"))
	assert.False(t, strings.Contains(buf.String(), "<transition"))
}
