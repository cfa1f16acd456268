package celldesigner

import "github.com/turtacn/sbgnqual/internal/domain/model"

// The following tables translate the CellDesigner/SBGN-ML XML dialect's
// class/role strings onto the compiler's closed internal vocabularies
// (SPEC_FULL.md §9 open question: "exact vocabulary ... is inherited
// from the source XML dialect"). Names follow CellDesigner's own
// PROTEIN/GENE/RNA/... class constants and reaction-type names.
var speciesTypes = map[string]model.SpeciesType{
	"PROTEIN":         model.TypeProtein,
	"RECEPTOR":        model.TypeReceptor,
	"RNA":             model.TypeRNA,
	"GENE":            model.TypeGene,
	"ANTISENSE_RNA":   model.TypeAntisenseRNA,
	"SIMPLE_MOLECULE": model.TypeSimpleMolecule,
	"ION":             model.TypeIon,
	"COMPLEX":         model.TypeComplex,
	"DEGRADED":        model.TypeDegraded,
	"UNKNOWN":         model.TypeUnknown,
	"PHENOTYPE":       model.TypePhenotype,
	"DRUG":            model.TypeDrug,
}

var modifications = map[string]model.Modification{
	"":              model.ModNone,
	"PHOSPHORYLATED": model.ModPhosphorylated,
	"ACTIVE":         model.ModActive,
	"GLYCOSYLATED":   model.ModGlycosylated,
	"UBIQUITINATED":  model.ModUbiquitinated,
	"METHYLATED":     model.ModMethylated,
	"ACETYLATED":     model.ModAcetylated,
	"TRUNCATED":      model.ModTruncated,
}

var reactionTypes = map[string]model.ReactionType{
	"STATE_TRANSITION":             model.ReactionStateTransition,
	"HETERODIMER_ASSOCIATION":      model.ReactionHeterodimerAssociation,
	"DISSOCIATION":                 model.ReactionDissociation,
	"TRANSPORT":                    model.ReactionTransport,
	"TRANSCRIPTION":                model.ReactionTranscription,
	"TRANSLATION":                  model.ReactionTranslation,
	"TRUE_POSITIVE_INFLUENCE":      model.ReactionTruePositiveInfluence,
	"TRUE_NEGATIVE_INFLUENCE":      model.ReactionTrueNegativeInfluence,
	"UNKNOWN_POSITIVE_INFLUENCE":   model.ReactionUnknownPositiveInfluence,
	"UNKNOWN_NEGATIVE_INFLUENCE":   model.ReactionUnknownNegativeInfluence,
	"REDUCED_PHYSICAL_STIMULATION": model.ReactionReducedPhysicalStimulation,
	"REDUCED_MODULATION":          model.ReactionReducedModulation,
	"REDUCED_INHIBITION":          model.ReactionReducedInhibition,
	"REDUCED_TRIGGER":             model.ReactionReducedTrigger,
}

var modifierKinds = map[string]model.ModifierKind{
	"CATALYST":                    model.ModifierCatalyst,
	"TRANSCRIPTIONAL_ACTIVATOR":   model.ModifierTranscriptionalActivator,
	"PHYSICAL_STIMULATION":        model.ModifierPhysicalStimulation,
	"UNKNOWN_POSITIVE":            model.ModifierUnknownPositive,
	"MODULATOR":                   model.ModifierModulator,
	"TRIGGER":                     model.ModifierTrigger,
	"INHIBITOR":                   model.ModifierInhibitor,
	"UNKNOWN_NEGATIVE":            model.ModifierUnknownNegative,
	"TRANSCRIPTIONAL_INHIBITOR":   model.ModifierTranscriptionalInhibitor,
}

var miriamQualifiers = map[string]model.MIRIAMQualifier{
	"is":            model.QualifierIs,
	"isDescribedBy": model.QualifierIsDescribedBy,
	"isHomologTo":   model.QualifierIsHomologTo,
	"hasPart":       model.QualifierHasPart,
	"isPartOf":      model.QualifierIsPartOf,
	"isVersionOf":   model.QualifierIsVersionOf,
	"isEncodedBy":   model.QualifierIsEncodedBy,
}
