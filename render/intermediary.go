package render

import "github.com/bibstha/rubyfmt/linetoken"

// Intermediary is an append-mostly ordered sequence of concrete line
// tokens. After every public operation it is a syntactically consistent
// prefix of the final output (spec.md §3.4): nothing here ever produces a
// half-formed construct that must later be unwound.
type Intermediary struct {
	tokens        []linetoken.ConcreteLineToken
	lastInsertion *blanklineInsertion
}

// NewIntermediary returns an empty buffer.
func NewIntermediary() *Intermediary {
	return &Intermediary{}
}

// Push appends a concrete token.
func (im *Intermediary) Push(tok linetoken.ConcreteLineToken) {
	im.tokens = append(im.tokens, tok)
}

// Last returns the last n tokens as a window, or (nil, false) if fewer than
// n tokens have been pushed.
func (im *Intermediary) Last(n int) ([]linetoken.ConcreteLineToken, bool) {
	if len(im.tokens) < n {
		return nil, false
	}
	return im.tokens[len(im.tokens)-n:], true
}

// IntoTokens returns the accumulated token sequence. The Intermediary
// should not be reused after calling this.
func (im *Intermediary) IntoTokens() []linetoken.ConcreteLineToken {
	return im.tokens
}

// dropLast removes the final token. Shared by the two peephole rules that
// resolve to "the producer emitted one HardNewLine too many."
func (im *Intermediary) dropLast() {
	n := len(im.tokens)
	if n == 0 {
		return
	}
	im.tokens = im.tokens[:n-1]
}

// PopHeredocMistake implements R1: the producer emits an extra HardNewLine
// that duplicates the one implicit after a heredoc close, on the suffix
// [HeredocClose, HardNewLine, Indent, HardNewLine].
func (im *Intermediary) PopHeredocMistake() {
	im.dropLast()
}

// FixHeredocArgNewlineMistake implements R5: a duplicate trailing
// HardNewLine on the suffix
// [HeredocClose, HardNewLine, Indent, Delim, Comma, HardNewLine, HardNewLine].
func (im *Intermediary) FixHeredocArgNewlineMistake() {
	im.dropLast()
}

// FixHeredocIndentMistake implements R4: the producer emits two consecutive
// Indent tokens when a heredoc appears as an argument to a bracketed call,
// on the suffix [HeredocClose, HardNewLine, Indent, Indent, Delim]. Collapse
// the duplicate indent, keeping exactly one before the delimiter.
func (im *Intermediary) FixHeredocIndentMistake() {
	n := len(im.tokens)
	if n < 5 {
		return
	}
	// Drop the outer of the two Indent tokens at n-3.
	kept := make([]linetoken.ConcreteLineToken, 0, n-1)
	kept = append(kept, im.tokens[:n-3]...)
	kept = append(kept, im.tokens[n-2:]...)
	im.tokens = kept
}

// InsertTrailingBlankline splices a HardNewLine into the buffer immediately
// before the Indent that precedes the token that triggered the rule,
// tagged with reason for de-duplication: two consecutive insertions with
// the same reason at the same position are a no-op (spec.md §4.3, P6).
func (im *Intermediary) InsertTrailingBlankline(reason BlanklineReason) {
	n := len(im.tokens)
	if n < 2 {
		return
	}
	pos := n - 2 // index of the Indent token immediately preceding the trigger

	if im.lastInsertion != nil && im.lastInsertion.index == pos && im.lastInsertion.reason == reason {
		return
	}

	inserted := make([]linetoken.ConcreteLineToken, 0, n+1)
	inserted = append(inserted, im.tokens[:pos]...)
	inserted = append(inserted, linetoken.HardNewLine{})
	inserted = append(inserted, im.tokens[pos:]...)
	im.tokens = inserted

	// The Indent now sits one slot later; a repeat call targets that slot.
	im.lastInsertion = &blanklineInsertion{index: pos + 1, reason: reason}
}

// isBreakableGarbage reports whether tok is one of the fixed kinds
// ClearBreakableGarbage strips. The list is closed and must be ported
// verbatim from the reference implementation (spec.md §9): Comma, Space,
// and an empty DirectPart are the only items single-line expansion can
// leave directly before a close delimiter.
func isBreakableGarbage(tok linetoken.ConcreteLineToken) bool {
	switch t := tok.(type) {
	case linetoken.Comma:
		return true
	case linetoken.Space:
		return true
	case linetoken.DirectPart:
		return t.Text == ""
	default:
		return false
	}
}

// ClearBreakableGarbage strips trailing artifacts that single-line
// expansion of a breakable can leave at position len-2 (spec.md §4.2):
// typically a stray [Comma, Space, DirectPart{""}] sequence preceding the
// close delimiter. It removes items at that position until what remains
// there is not on the garbage list.
func (im *Intermediary) ClearBreakableGarbage() {
	for {
		n := len(im.tokens)
		if n < 2 {
			return
		}
		if !isBreakableGarbage(im.tokens[n-2]) {
			return
		}
		im.tokens = append(im.tokens[:n-2:n-2], im.tokens[n-1])
	}
}
