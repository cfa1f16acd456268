// Package pruner implements the optional connected-component filter and
// upstream/downstream cone restriction over the influence graph
// (component E, SPEC_FULL.md §4.E). It runs after the Rule Builder, so
// any species it removes must also be scrubbed out of surviving
// formulae.
package pruner

import (
	"sort"

	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
	"github.com/turtacn/sbgnqual/internal/domain/simplify"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
)

// Params carries the Pruner's three independent, optional controls.
type Params struct {
	// ComponentThreshold is S. S > 0 drops components with fewer than S
	// nodes; S < 0 keeps only the |S| largest components; S == 0 disables
	// component filtering entirely.
	ComponentThreshold int

	// UpstreamNames and DownstreamNames name species by biological name
	// (not id) — the cone targets. Either, both, or neither may be set.
	UpstreamNames   []string
	DownstreamNames []string
}

// Prune restricts m to the species selected by p's controls, given the
// influence graph produced by the Abstracter. Dropped species are
// removed from m (along with any reaction that still references them);
// any reference to a dropped species surviving inside another species'
// formula is replaced with FALSE and the formula is re-simplified.
func Prune(m *model.Model, influences []model.Influence, p Params, logger logging.Logger) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	allIDs := make([]string, 0, m.SpeciesCount())
	for _, s := range m.AllSpecies() {
		allIDs = append(allIDs, s.ID)
	}

	forward, backward := buildAdjacency(influences)

	keep := make(map[string]bool, len(allIDs))
	for _, id := range allIDs {
		keep[id] = true
	}

	if p.ComponentThreshold != 0 {
		undirected := mergeAdjacency(forward, backward)
		comps := weakComponents(allIDs, undirected)
		survivors := filterComponents(comps, p.ComponentThreshold)
		keep = make(map[string]bool, len(allIDs))
		for _, comp := range survivors {
			for _, id := range comp {
				keep[id] = true
			}
		}
		logger.Debug("component filter applied",
			logging.Int("threshold", p.ComponentThreshold),
			logging.Int("components_total", len(comps)),
			logging.Int("components_kept", len(survivors)))
	}

	if len(p.UpstreamNames) > 0 || len(p.DownstreamNames) > 0 {
		coneKeep := make(map[string]bool)
		for u := range resolveNamesToIDs(m, p.UpstreamNames) {
			for id := range ancestors(u, backward) {
				coneKeep[id] = true
			}
		}
		for d := range resolveNamesToIDs(m, p.DownstreamNames) {
			for id := range descendants(d, forward) {
				coneKeep[id] = true
			}
		}
		for id := range keep {
			if !coneKeep[id] {
				delete(keep, id)
			}
		}
	}

	dropped := make(map[string]bool)
	for _, id := range allIDs {
		if !keep[id] {
			dropped[id] = true
		}
	}
	if len(dropped) == 0 {
		return
	}

	for _, s := range m.AllSpecies() {
		if dropped[s.ID] || s.Function == nil {
			continue
		}
		substituted := expr.Substitute(s.Function, func(id string) (bool, bool) {
			if dropped[id] {
				return false, true
			}
			return false, false
		})
		s.Function = simplify.Simplify(substituted)
	}

	for id := range dropped {
		if err := m.DeleteSpecies(id, model.DropIncidentReactions); err != nil {
			logger.Warn("pruner: delete failed", logging.String("species", id), logging.Err(err))
		}
	}
	logger.Info("pruner pass complete", logging.Int("dropped", len(dropped)))
}

func resolveNamesToIDs(m *model.Model, names []string) map[string]bool {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	out := make(map[string]bool)
	for _, s := range m.AllSpecies() {
		if wanted[s.Name] {
			out[s.ID] = true
		}
	}
	return out
}

func buildAdjacency(influences []model.Influence) (forward, backward map[string][]string) {
	forward = make(map[string][]string)
	backward = make(map[string][]string)
	for _, inf := range influences {
		forward[inf.Source] = append(forward[inf.Source], inf.Target)
		backward[inf.Target] = append(backward[inf.Target], inf.Source)
	}
	return forward, backward
}

func mergeAdjacency(forward, backward map[string][]string) map[string][]string {
	out := make(map[string][]string, len(forward)+len(backward))
	for k, vs := range forward {
		out[k] = append(out[k], vs...)
	}
	for k, vs := range backward {
		out[k] = append(out[k], vs...)
	}
	return out
}

// weakComponents partitions ids into weakly connected components using
// undirected (both-direction) adjacency, visiting ids in the order given
// so that component construction is deterministic.
func weakComponents(ids []string, undirected map[string][]string) [][]string {
	visited := make(map[string]bool, len(ids))
	var comps [][]string
	for _, id := range ids {
		if visited[id] {
			continue
		}
		var comp []string
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range undirected[cur] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}
	return comps
}

// filterComponents applies the threshold S described in SPEC_FULL.md
// §4.E: S > 0 drops components smaller than S; S < 0 keeps the |S|
// largest (ties broken by lexicographic minimum species id).
func filterComponents(comps [][]string, threshold int) [][]string {
	if threshold > 0 {
		var out [][]string
		for _, c := range comps {
			if len(c) >= threshold {
				out = append(out, c)
			}
		}
		return out
	}

	keepCount := -threshold
	sorted := make([][]string, len(comps))
	copy(sorted, comps)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i][0] < sorted[j][0] // comps are pre-sorted ascending internally
	})
	if keepCount > len(sorted) {
		keepCount = len(sorted)
	}
	return sorted[:keepCount]
}

func ancestors(u string, backward map[string][]string) map[string]bool {
	visited := map[string]bool{u: true}
	queue := []string{u}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, pred := range backward[cur] {
			if !visited[pred] {
				visited[pred] = true
				queue = append(queue, pred)
			}
		}
	}
	return visited
}

func descendants(d string, forward map[string][]string) map[string]bool {
	visited := map[string]bool{d: true}
	queue := []string{d}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, succ := range forward[cur] {
			if !visited[succ] {
				visited[succ] = true
				queue = append(queue, succ)
			}
		}
	}
	return visited
}
