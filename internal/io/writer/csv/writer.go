// Package csv writes the compiled species catalog as id,name,formula,alias
// rows (SPEC_FULL.md §6, the -c/--csv CLI flag).
package csv

import (
	"encoding/csv"
	"io"

	"github.com/turtacn/sbgnqual/internal/domain/model"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// Write renders m's surviving species, one row per species in ascending
// handle order, as id,name,formula,alias. formula is the textual
// rendering of the species' function ("" for a free input); alias is
// the biological name when it differs from the public name, else empty.
func Write(w io.Writer, m *model.Model) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "formula", "alias"}); err != nil {
		return cerrors.Wrap(cerrors.CodeWriterIO, "csv: header write failed", err)
	}
	for _, s := range m.AllSpecies() {
		formula := ""
		if s.Function != nil {
			formula = s.Function.String()
		}
		alias := ""
		if s.Name != s.PublicName {
			alias = s.Name
		}
		row := []string{s.ExportID, s.PublicName, formula, alias}
		if err := cw.Write(row); err != nil {
			return cerrors.Wrap(cerrors.CodeWriterIO, "csv: row write failed", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return cerrors.Wrap(cerrors.CodeWriterIO, "csv: flush failed", err)
	}
	return nil
}
