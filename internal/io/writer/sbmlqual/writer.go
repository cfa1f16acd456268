// Package sbmlqual serializes a fully-compiled model (post Reducer,
// Abstracter, Rule Builder, Pruner, Namer, Overrides, Simplifier) to
// SBML-Qual XML (SPEC_FULL.md §6 "Exit data format"): each species
// becomes a qualitativeSpecies with its computed formula rendered as a
// MathML-free default transition expression. Like the reader, this
// writer carries no biological semantics — it only renders the final
// model.
package sbmlqual

import (
	"encoding/xml"
	"io"

	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

type sbmlDocument struct {
	XMLName xml.Name `xml:"sbml"`
	Level   int      `xml:"level,attr"`
	Version int      `xml:"version,attr"`
	Model   sbmlModel `xml:"model"`
}

type sbmlModel struct {
	ID                 string               `xml:"id,attr"`
	QualitativeSpecies []qualitativeSpecies `xml:"listOfQualitativeSpecies>qualitativeSpecies"`
	Transitions        []transition         `xml:"listOfTransitions>transition"`
}

type qualitativeSpecies struct {
	ID              string `xml:"id,attr"`
	Name            string `xml:"name,attr"`
	Compartment     string `xml:"compartment,attr"`
	MaxLevel        int    `xml:"maxLevel,attr"`
	ConstantVal     bool   `xml:"constant,attr"`
}

type transition struct {
	ID     string           `xml:"id,attr"`
	Inputs []transitionRef  `xml:"listOfInputs>input"`
	Output transitionRef    `xml:"listOfOutputs>output"`
	Func   defaultTermExpr  `xml:"listOfFunctionTerms>defaultTerm"`
}

type transitionRef struct {
	QualitativeSpecies string `xml:"qualitativeSpecies,attr"`
}

type defaultTermExpr struct {
	ResultLevel int    `xml:"resultLevel,attr"`
	Expression  string `xml:"math"`
}

// Write renders m to SBML-Qual Level 3 Version 1, qual package v1. m
// must already satisfy invariants I1-I6 (i.e. the full pipeline has
// run): every species carries a PublicName/ExportID and, unless it is a
// free input, a simplified Function.
func Write(w io.Writer, m *model.Model, modelID string) error {
	doc := sbmlDocument{
		Level:   3,
		Version: 1,
		Model:   sbmlModel{ID: modelID},
	}

	for _, s := range m.AllSpecies() {
		doc.Model.QualitativeSpecies = append(doc.Model.QualitativeSpecies, qualitativeSpecies{
			ID:          s.ExportID,
			Name:        s.PublicName,
			Compartment: s.Compartment,
			MaxLevel:    1,
			ConstantVal: s.FixedValue != nil,
		})

		if s.Function == nil {
			continue
		}
		doc.Model.Transitions = append(doc.Model.Transitions, transition{
			ID:     "tr_" + s.ExportID,
			Inputs: inputRefs(m, s.Function),
			Output: transitionRef{QualitativeSpecies: s.ExportID},
			Func:   defaultTermExpr{ResultLevel: 1, Expression: s.Function.String()},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return cerrors.Wrap(cerrors.CodeWriterIO, "sbmlqual: failed writing XML header", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return cerrors.Wrap(cerrors.CodeWriterIO, "sbmlqual: failed encoding SBML document", err)
	}
	return nil
}

// inputRefs lists, in ascending id order, every species var the
// formula depends on — the listOfInputs SBML-Qual requires per
// transition, rendered as the referenced species' export id.
func inputRefs(m *model.Model, e *expr.Expr) []transitionRef {
	vars := e.Vars()
	out := make([]transitionRef, 0, len(vars))
	for _, v := range vars {
		id := v
		if s, ok := m.Lookup(v); ok {
			id = s.ExportID
		}
		out = append(out, transitionRef{QualitativeSpecies: id})
	}
	return out
}
