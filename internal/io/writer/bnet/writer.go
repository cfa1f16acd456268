// Package bnet writes the compiled model in the conventional BoolNet
// (.bnet) syntax: one "id, formula" row per species (SPEC_FULL.md §6,
// the CSV sidecar's companion requested by -c/--csv). Free inputs are
// rendered as self-loops (id, id), BoolNet's idiom for an unconstrained
// boundary variable.
package bnet

import (
	"bufio"
	"io"

	"github.com/turtacn/sbgnqual/internal/domain/model"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// Write renders m's surviving species as BNet rows, in ascending
// handle order.
func Write(w io.Writer, m *model.Model) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("targets, factors\n"); err != nil {
		return cerrors.Wrap(cerrors.CodeWriterIO, "bnet: header write failed", err)
	}
	for _, s := range m.AllSpecies() {
		formula := s.ExportID
		if s.Function != nil {
			formula = s.Function.String()
		}
		if _, err := bw.WriteString(s.ExportID + ", " + formula + "\n"); err != nil {
			return cerrors.Wrap(cerrors.CodeWriterIO, "bnet: row write failed", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return cerrors.Wrap(cerrors.CodeWriterIO, "bnet: flush failed", err)
	}
	return nil
}
