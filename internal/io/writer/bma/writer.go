// Package bma writes the compiled model as a BMA (Bio Model Analyzer)
// JSON document, the optional alternative export target named in
// SPEC_FULL.md §1 and driven by the -b/--bma, -g/--granularity,
// -i/--input and -C/--colourConstant flags (§6).
package bma

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/turtacn/sbgnqual/internal/domain/model"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// Params carries the BMA writer's CLI-driven knobs.
type Params struct {
	// Granularity is the number of discrete levels a BMA variable can
	// take; Boolean species map to the range [0, Granularity].
	Granularity int
	// DefaultInput is written as the constant formula of every free
	// input (a species with neither a synthesized formula nor a fixed
	// value).
	DefaultInput int
	// ColourConstant, when true, assigns every variable the same BMA
	// fill colour instead of one derived from species type.
	ColourConstant bool
}

type document struct {
	Model      bmaModel      `json:"Model"`
	Layout     bmaLayout     `json:"Layout"`
}

type bmaModel struct {
	Name         string         `json:"Name"`
	Variables    []bmaVariable  `json:"Variables"`
	Relationships []bmaRelationship `json:"Relationships"`
}

type bmaVariable struct {
	ID             int    `json:"Id"`
	Name           string `json:"Name"`
	RangeFrom      int    `json:"RangeFrom"`
	RangeTo        int    `json:"RangeTo"`
	Formula        string `json:"Formula"`
}

type bmaRelationship struct {
	ID        int    `json:"Id"`
	FromVar   int    `json:"FromVariable"`
	ToVar     int    `json:"ToVariable"`
	Type      string `json:"Type"` // "Activator" | "Inhibitor"
}

type bmaLayout struct {
	Variables []bmaLayoutVariable `json:"Variables"`
}

type bmaLayoutVariable struct {
	ID          int     `json:"Id"`
	Name        string  `json:"Name"`
	Type        string  `json:"Type"`
	PositionX   float64 `json:"PositionX"`
	PositionY   float64 `json:"PositionY"`
	Width       float64 `json:"CellWidth"`
	Height      float64 `json:"CellHeight"`
	Colour      string  `json:"Description,omitempty"`
}

const defaultColour = "Grey"

// Write renders m (and the influence graph used to derive
// Activator/Inhibitor relationships) as BMA JSON.
func Write(w io.Writer, m *model.Model, influences []model.Influence, modelName string, p Params) error {
	if p.Granularity <= 0 {
		p.Granularity = 1
	}

	species := m.AllSpecies()
	idOf := make(map[string]int, len(species))
	for i, s := range species {
		idOf[s.ID] = i + 1
	}

	doc := document{Model: bmaModel{Name: modelName}}
	for _, s := range species {
		formula := ""
		if s.Function != nil {
			formula = s.Function.String()
		} else if s.FixedValue == nil {
			formula = strconv.Itoa(p.DefaultInput) // free input: constant DefaultInput level
		}
		doc.Model.Variables = append(doc.Model.Variables, bmaVariable{
			ID:        idOf[s.ID],
			Name:      s.PublicName,
			RangeFrom: 0,
			RangeTo:   p.Granularity,
			Formula:   formula,
		})

		colour := defaultColour
		if !p.ColourConstant {
			colour = colourForType(s.Type)
		}
		doc.Layout.Variables = append(doc.Layout.Variables, bmaLayoutVariable{
			ID:        idOf[s.ID],
			Name:      s.PublicName,
			Type:      "Constant",
			PositionX: s.Layout.X,
			PositionY: s.Layout.Y,
			Width:     s.Layout.W,
			Height:    s.Layout.H,
			Colour:    colour,
		})
	}

	relID := 1
	for _, inf := range influences {
		fromID, okFrom := idOf[inf.Source]
		toID, okTo := idOf[inf.Target]
		if !okFrom || !okTo {
			continue
		}
		kind := "Activator"
		if inf.Sign == model.Negative {
			kind = "Inhibitor"
		}
		doc.Model.Relationships = append(doc.Model.Relationships, bmaRelationship{
			ID: relID, FromVar: fromID, ToVar: toID, Type: kind,
		})
		relID++
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return cerrors.Wrap(cerrors.CodeWriterIO, "bma: encode failed", err)
	}
	return nil
}

func colourForType(t model.SpeciesType) string {
	switch t {
	case model.TypeGene, model.TypeRNA, model.TypeAntisenseRNA:
		return "Green"
	case model.TypeReceptor:
		return "Blue"
	case model.TypeDrug:
		return "Red"
	default:
		return defaultColour
	}
}
