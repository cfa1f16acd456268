// Package sif writes the influence graph as a Simple Interaction
// Format (SIF) sidecar: one "source sign target" line per influence
// (SPEC_FULL.md §6, the -s/--sif CLI flag).
package sif

import (
	"bufio"
	"io"

	"github.com/turtacn/sbgnqual/internal/domain/model"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// Write renders influences as SIF, one line per arc whose endpoints
// both survive in m (the Abstracter runs before the Pruner, so
// influences may still reference since-dropped species), naming each
// endpoint by its post-Namer export id.
func Write(w io.Writer, m *model.Model, influences []model.Influence) error {
	bw := bufio.NewWriter(w)
	for _, inf := range influences {
		src, ok := m.Lookup(inf.Source)
		if !ok {
			continue
		}
		dst, ok := m.Lookup(inf.Target)
		if !ok {
			continue
		}
		if _, err := bw.WriteString(src.ExportID + "\t" + inf.Sign.String() + "\t" + dst.ExportID + "\n"); err != nil {
			return cerrors.Wrap(cerrors.CodeWriterIO, "sif: write failed", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return cerrors.Wrap(cerrors.CodeWriterIO, "sif: flush failed", err)
	}
	return nil
}
