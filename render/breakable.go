package render

import "github.com/bibstha/rubyfmt/linetoken"

// MaxLineLength is the column budget breakable entries are measured
// against. Fixed per spec.md §6.3; not configurable at runtime.
const MaxLineLength = 120

// QueueItem is either a concrete token or a nested breakable region. The
// tree walker emits a flat top-level sequence of these (spec.md §3.3).
type QueueItem interface {
	queueItem()
}

// Queue is the flat, ordered sequence the tree walker produces.
type Queue []QueueItem

// Token wraps a linetoken.ConcreteLineToken so it satisfies QueueItem.
type Token struct {
	Tok linetoken.ConcreteLineToken
}

func (Token) queueItem() {}

// BreakableEntry is a nested group holding two equivalent renderings of the
// same region: single_line_tokens and multi_line_tokens (spec.md §3.2). The
// producer (the external tree walker, stood in for here by queuedoc)
// computes SingleLineStringLength at construction time; the layout engine
// never recomputes it from SingleLineTokens.
type BreakableEntry struct {
	SingleLineTokens Queue
	MultiLineTokens  Queue

	// SingleLineStringLength is the exact column width the single-line
	// alternative would occupy when rendered, assuming no further
	// rewrites (spec.md §6.1). It deliberately ignores the column the
	// writer is currently at (spec.md §4.2, §9).
	SingleLineStringLength int

	// ForcedMultiline is set by the producer when the region must break
	// regardless of width (e.g. it contains a user comment). The layout
	// engine never infers this itself (spec.md §9).
	ForcedMultiline bool

	// FormattingContext is the enclosing syntactic context. Only
	// StringInterpolation changes layout behavior (spec.md §4.4).
	FormattingContext FormattingContext
}

func (BreakableEntry) queueItem() {}
