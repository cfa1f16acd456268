package model

// Influence is a signed arc between two surviving species (spec.md §3),
// produced only by the Abstracter (component C). It is a derived view:
// influences need not survive into the exported SBML-Qual model, but
// they drive the Pruner's component/cone computations and are exported
// directly by the SIF writer.
type Influence struct {
	Source string
	Target string
	Sign   Sign
}
