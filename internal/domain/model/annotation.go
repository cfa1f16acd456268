package model

// AnnotationBag maps a MIRIAM qualifier to an insertion-ordered,
// deduplicated list of URI strings (SPEC_FULL.md §9 "Annotation bag").
type AnnotationBag struct {
	order []MIRIAMQualifier
	uris  map[MIRIAMQualifier][]string
	seen  map[MIRIAMQualifier]map[string]bool
}

// NewAnnotationBag returns an empty annotation bag.
func NewAnnotationBag() *AnnotationBag {
	return &AnnotationBag{
		uris: make(map[MIRIAMQualifier][]string),
		seen: make(map[MIRIAMQualifier]map[string]bool),
	}
}

// Add appends uri under qualifier if not already present, preserving
// first-seen order.
func (b *AnnotationBag) Add(qualifier MIRIAMQualifier, uri string) {
	if b.seen[qualifier] == nil {
		b.seen[qualifier] = make(map[string]bool)
	}
	if b.seen[qualifier][uri] {
		return
	}
	if _, ok := b.uris[qualifier]; !ok {
		b.order = append(b.order, qualifier)
	}
	b.seen[qualifier][uri] = true
	b.uris[qualifier] = append(b.uris[qualifier], uri)
}

// URIs returns the deduplicated, first-seen-ordered URI list for a
// qualifier (nil if absent).
func (b *AnnotationBag) URIs(qualifier MIRIAMQualifier) []string {
	return b.uris[qualifier]
}

// Qualifiers returns the set of qualifiers present, in first-seen order.
func (b *AnnotationBag) Qualifiers() []MIRIAMQualifier {
	return b.order
}

// MergeFrom unions src into b: per qualifier, URIs from src are appended
// after b's own (already deduplicated) entries, preserving first-seen
// order within each source. Merge is commutative for the resulting set
// of (qualifier,uri) pairs and idempotent: merging the same bag twice
// changes nothing the second time.
func (b *AnnotationBag) MergeFrom(src *AnnotationBag) {
	if src == nil {
		return
	}
	for _, q := range src.order {
		for _, uri := range src.uris[q] {
			b.Add(q, uri)
		}
	}
}

// Empty reports whether the bag has no annotations at all.
func (b *AnnotationBag) Empty() bool { return len(b.order) == 0 }
