package render

// BlanklineReason tags a blank line the Intermediary inserted so two
// insertions at the same position for the same reason can be recognized as
// a duplicate and suppressed (spec.md §4.3, P6). It has no other
// behavioral role; it exists for observability and de-duplication only
// (spec.md §6.3).
type BlanklineReason int

const (
	// ComesAfterEnd tags a blank line inserted after an `end` that
	// precedes a construct wanting vertical separation (spec.md R2, R3).
	ComesAfterEnd BlanklineReason = iota
)

func (r BlanklineReason) String() string {
	switch r {
	case ComesAfterEnd:
		return "ComesAfterEnd"
	default:
		return "Unknown"
	}
}

// blanklineInsertion records why a blank line was spliced into the buffer
// and the index of the Indent it was spliced in front of (as that index
// stands after the splice), so a later insertion before the same Indent
// with the same reason can be recognized as a no-op duplicate.
type blanklineInsertion struct {
	index  int
	reason BlanklineReason
}
