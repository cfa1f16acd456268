// Package namer assigns a unique, informative public display name and a
// valid-SId export identifier to every surviving species (component F,
// SPEC_FULL.md §4.F).
package namer

import (
	"fmt"
	"strings"

	"github.com/turtacn/sbgnqual/internal/domain/model"
)

// Params controls the Namer. PreferNamesAsID implements the --names
// flag: when set, the biological name (rather than the disambiguated
// public display name) is the basis for the exported SId.
type Params struct {
	PreferNamesAsID bool
}

// Name assigns PublicName and ExportID to every live species in m.
func Name(m *model.Model, p Params) {
	species := m.AllSpecies() // ascending Handle order: the determinism axis

	assignPublicNames(species)
	assignExportIDs(species, p.PreferNamesAsID)
}

// assignPublicNames computes each species' disambiguated display name:
// base biological name, then (only for still-colliding groups, in
// order) a type suffix, a single-distinctive-modification suffix, a
// compartment suffix, and finally a numeric suffix for anything still
// colliding.
func assignPublicNames(species []*model.Species) {
	current := make([]string, len(species))
	for i, s := range species {
		current[i] = s.Name
	}

	steps := []func(*model.Species) string{
		func(s *model.Species) string { return "_" + string(s.Type) },
		func(s *model.Species) string {
			if len(s.Modifications) == 1 {
				return "_" + string(s.Modifications[0])
			}
			return ""
		},
		func(s *model.Species) string {
			if s.Compartment != "" {
				return "_" + s.Compartment
			}
			return ""
		},
	}

	for _, step := range steps {
		for _, idxs := range groupIndices(current) {
			if len(idxs) < 2 {
				continue
			}
			for _, i := range idxs {
				if suf := step(species[i]); suf != "" {
					current[i] += suf
				}
			}
		}
	}

	finalized := disambiguateNumerically(current)
	for i, s := range species {
		s.PublicName = finalized[i]
	}
}

// assignExportIDs sanitizes each species' id basis into a valid SId and
// disambiguates any remaining collision numerically.
func assignExportIDs(species []*model.Species, preferNamesAsID bool) {
	base := make([]string, len(species))
	for i, s := range species {
		src := s.PublicName
		if preferNamesAsID {
			src = s.Name
		}
		base[i] = sanitizeSID(src)
	}

	finalized := disambiguateNumerically(base)
	for i, s := range species {
		s.ExportID = finalized[i]
	}
}

// groupIndices buckets indices of names sharing the same string value,
// preserving ascending index order within each bucket.
func groupIndices(names []string) map[string][]int {
	g := make(map[string][]int)
	for i, n := range names {
		g[n] = append(g[n], i)
	}
	return g
}

// disambiguateNumerically appends "_1", "_2", ... to every member of a
// colliding group, ordered by ascending index (SPEC_FULL.md §4.F, §5).
func disambiguateNumerically(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	for _, idxs := range groupIndices(names) {
		if len(idxs) < 2 {
			continue
		}
		for n, i := range idxs {
			out[i] = fmt.Sprintf("%s_%d", names[i], n+1)
		}
	}
	return out
}

// sanitizeSID replaces every character outside [A-Za-z0-9_] with '_' and
// prepends '_' if the result would start with a digit, per the SBML SId
// grammar (invariant I5).
func sanitizeSID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}
