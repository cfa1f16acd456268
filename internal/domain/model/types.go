// Package model implements the in-memory reaction hypergraph: the typed
// store of species, reactions, modifiers, annotations, and layout that
// every later pipeline stage reads and mutates. It is the "A" component
// of the compiler (see SPEC_FULL.md §2).
package model

// SpeciesType is the closed vocabulary of biochemical entity kinds a
// CellDesigner/SBGN-PD map can express. The exact set is inherited from
// the source XML dialect (SPEC_FULL.md §9 open question): this is the
// full set observed across CellDesigner reaction maps.
type SpeciesType string

const (
	TypeProtein       SpeciesType = "protein"
	TypeReceptor      SpeciesType = "receptor"
	TypeRNA           SpeciesType = "rna"
	TypeGene          SpeciesType = "gene"
	TypeAntisenseRNA  SpeciesType = "antisenseRNA"
	TypeSimpleMolecule SpeciesType = "simpleMolecule"
	TypeIon           SpeciesType = "ion"
	TypeComplex       SpeciesType = "complex"
	TypeDegraded      SpeciesType = "degraded"
	TypeUnknown       SpeciesType = "unknown"
	TypePhenotype     SpeciesType = "phenotype"
	TypeDrug          SpeciesType = "drug"
)

// Modification is the closed vocabulary of post-translational / state
// modifications a species may carry.
type Modification string

const (
	ModNone           Modification = ""
	ModPhosphorylated Modification = "phosphorylated"
	ModActive         Modification = "active"
	ModGlycosylated   Modification = "glycosylated"
	ModUbiquitinated  Modification = "ubiquitinated"
	ModMethylated     Modification = "methylated"
	ModAcetylated     Modification = "acetylated"
	ModTruncated      Modification = "truncated"
)

// ReactionType is the closed vocabulary of reaction/process kinds.
type ReactionType string

const (
	ReactionStateTransition            ReactionType = "stateTransition"
	ReactionHeterodimerAssociation     ReactionType = "heterodimer_association"
	ReactionDissociation               ReactionType = "dissociation"
	ReactionTransport                  ReactionType = "transport"
	ReactionTranscription              ReactionType = "transcription"
	ReactionTranslation                ReactionType = "translation"
	ReactionTruePositiveInfluence      ReactionType = "truePositiveInfluence"
	ReactionTrueNegativeInfluence      ReactionType = "trueNegativeInfluence"
	ReactionUnknownPositiveInfluence   ReactionType = "unknownPositiveInfluence"
	ReactionUnknownNegativeInfluence   ReactionType = "unknownNegativeInfluence"
	ReactionReducedPhysicalStimulation ReactionType = "reducedPhysicalStimulation"
	ReactionReducedModulation          ReactionType = "reducedModulation"
	ReactionReducedInhibition          ReactionType = "reducedInhibition"
	ReactionReducedTrigger             ReactionType = "reducedTrigger"
)

// ModifierKind is the closed vocabulary of roles a modifier species can
// play in a reaction. Polarity classification (SPEC_FULL.md §3) depends
// only on this set.
type ModifierKind string

const (
	ModifierCatalyst                  ModifierKind = "catalyst"
	ModifierTranscriptionalActivator  ModifierKind = "transcriptional_activator"
	ModifierPhysicalStimulation       ModifierKind = "physical_stimulation"
	ModifierUnknownPositive           ModifierKind = "unknown_positive"
	ModifierModulator                 ModifierKind = "modulator"
	ModifierTrigger                   ModifierKind = "trigger"
	ModifierInhibitor                 ModifierKind = "inhibitor"
	ModifierUnknownNegative           ModifierKind = "unknown_negative"
	ModifierTranscriptionalInhibitor  ModifierKind = "transcriptional_inhibitor"
)

// positiveModifierKinds and negativeModifierKinds partition ModifierKind
// per SPEC_FULL.md §3's polarity classification.
var positiveModifierKinds = map[ModifierKind]bool{
	ModifierCatalyst:                 true,
	ModifierTranscriptionalActivator: true,
	ModifierPhysicalStimulation:      true,
	ModifierUnknownPositive:          true,
	ModifierModulator:                true,
	ModifierTrigger:                  true,
}

var negativeModifierKinds = map[ModifierKind]bool{
	ModifierInhibitor:                true,
	ModifierUnknownNegative:          true,
	ModifierTranscriptionalInhibitor: true,
}

// IsPositive reports whether this modifier kind contributes positively
// (an activator-like OR term) to rule construction.
func (k ModifierKind) IsPositive() bool { return positiveModifierKinds[k] }

// IsNegative reports whether this modifier kind contributes negatively
// (a NOT-conjoined inhibitor) to rule construction.
func (k ModifierKind) IsNegative() bool { return negativeModifierKinds[k] }

// Sign is the polarity of an Influence arc.
type Sign int

const (
	Positive Sign = iota
	Negative
)

func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// MIRIAMQualifier is the closed vocabulary of standardized annotation
// predicates tagging a URI in a species' annotation bag.
type MIRIAMQualifier string

const (
	QualifierIs               MIRIAMQualifier = "is"
	QualifierIsDescribedBy    MIRIAMQualifier = "isDescribedBy"
	QualifierIsHomologTo      MIRIAMQualifier = "isHomologTo"
	QualifierHasPart          MIRIAMQualifier = "hasPart"
	QualifierIsPartOf         MIRIAMQualifier = "isPartOf"
	QualifierIsVersionOf      MIRIAMQualifier = "isVersionOf"
	QualifierIsEncodedBy      MIRIAMQualifier = "isEncodedBy"
)
