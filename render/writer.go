package render

import (
	"io"

	"github.com/bibstha/rubyfmt/linetoken"
	"github.com/pkg/errors"
)

// DebugAssertions gates the debug-only tracing (queue item and final token
// counts, logged with log.Printf) that the teacher's Rust original gates
// behind #[cfg(debug_assertions)]. It enables no invariant checks. Go has
// no separate debug build profile, so this is a plain package variable the
// CLI can flip with -debug-assertions; it defaults to false in production
// use.
var DebugAssertions = false

// debugf calls fn when DebugAssertions is set. Kept as a function value
// rather than a logger import: the teacher carries no logging framework
// either, just a couple of gated debug! calls.
func debugf(fn func()) {
	if DebugAssertions {
		fn()
	}
}

// Writer orchestrates expansion of breakable entries, invokes the peephole
// corrections after every push, and serializes the final token sequence
// (spec.md §4.1). It is purely synchronous and single-threaded, and holds
// no state outside its Intermediary (spec.md §5).
type Writer struct{}

// NewWriter returns a Writer. Writer carries no configuration: all
// tunables (spec.md §6.3) are package-level constants.
func NewWriter() *Writer {
	return &Writer{}
}

// Write consumes queue and writes formatted text to sink. The only failure
// mode is a sink write failure (spec.md §7); malformed queues are a
// programming error and are not checked, whether or not DebugAssertions is
// set.
func (w *Writer) Write(queue Queue, sink io.Writer) error {
	accum := NewIntermediary()

	debugf(func() { traceQueue("first tokens", queue) })

	renderAs(accum, queue)

	return writeFinalTokens(sink, accum.IntoTokens())
}

// renderAs is the core render loop (spec.md §4.1 step 2): push concrete
// tokens, recursively expand breakables, and run the peephole rules after
// every step. Expansion is recursive so nested breakables independently
// choose fit vs. break (spec.md §4.2).
func renderAs(accum *Intermediary, queue Queue) {
	for _, item := range queue {
		switch v := item.(type) {
		case BreakableEntry:
			formatBreakableEntry(accum, v)
		case *BreakableEntry:
			formatBreakableEntry(accum, *v)
		case Token:
			accum.Push(v.Tok)
		}

		runPeepholeRules(accum)
	}
}

// runPeepholeRules evaluates R1–R5 in the fixed order given by spec.md
// §4.3, each keyed on a suffix pattern of the buffer's tail. At most one
// rule applies per call; a successful rewrite does not cascade within the
// same step (spec.md P5: convergence in ≤1 step).
func runPeepholeRules(accum *Intermediary) {
	// R1 — Heredoc tail de-duplication.
	if win, ok := accum.Last(4); ok {
		if isHeredocClose(win[0]) && isHardNewLine(win[1]) && isIndent(win[2]) && isHardNewLine(win[3]) {
			accum.PopHeredocMistake()
			return
		}
	}

	// R2 — Blank line after `end`.
	if win, ok := accum.Last(4); ok {
		if isEnd(win[0]) && isHardNewLine(win[1]) && isIndent(win[2]) {
			x := win[3]
			if x.IsInNeedOfATrailingBlankline() {
				accum.InsertTrailingBlankline(ComesAfterEnd)
				return
			}
		}
	}

	// R3 — Blank line after `end` through a call chain.
	if win, ok := accum.Last(5); ok {
		if isEnd(win[0]) && isAfterCallChain(win[1]) && isHardNewLine(win[2]) && isIndent(win[3]) {
			x := win[4]
			if !isDefKeyword(x) && x.IsInNeedOfATrailingBlankline() && !x.IsMethodVisibilityModifier() {
				accum.InsertTrailingBlankline(ComesAfterEnd)
				return
			}
		}
	}

	// R4 — Heredoc indent correction.
	if win, ok := accum.Last(5); ok {
		if isHeredocClose(win[0]) && isHardNewLine(win[1]) && isIndent(win[2]) && isIndent(win[3]) && isDelim(win[4]) {
			accum.FixHeredocIndentMistake()
			return
		}
	}

	// R5 — Heredoc arg newline correction.
	if win, ok := accum.Last(7); ok {
		if isHeredocClose(win[0]) && isHardNewLine(win[1]) && isIndent(win[2]) && isDelim(win[3]) &&
			isComma(win[4]) && isHardNewLine(win[5]) && isHardNewLine(win[6]) {
			accum.FixHeredocArgNewlineMistake()
			return
		}
	}
}

// formatBreakableEntry implements spec.md §4.2: choose the multi-line
// alternative when the single-line form overflows the column budget or was
// forced open, unless the surrounding context is a string interpolation
// (breaking inside one would change the string's runtime value). Otherwise
// expand the single-line form and clean up the garbage single-line
// expansion can leave before the close delimiter.
func formatBreakableEntry(accum *Intermediary, be BreakableEntry) {
	overflows := be.SingleLineStringLength > MaxLineLength || be.ForcedMultiline

	if overflows && be.FormattingContext != StringInterpolation {
		renderAs(accum, be.MultiLineTokens)
		return
	}

	renderAs(accum, be.SingleLineTokens)
	accum.ClearBreakableGarbage()
}

// writeFinalTokens implements spec.md §4.4: collapse a trailing double
// HardNewLine to exactly one, then flatten the buffer to text, linearly and
// without further allocation beyond the sink's own buffering.
func writeFinalTokens(sink io.Writer, tokens []linetoken.ConcreteLineToken) error {
	debugf(func() { traceTokens("final tokens", tokens) })

	n := len(tokens)
	if n > 1 {
		if isHardNewLine(tokens[n-2]) && isHardNewLine(tokens[n-1]) {
			tokens = tokens[:n-1]
		}
	}

	for _, tok := range tokens {
		if _, err := io.WriteString(sink, tok.IntoText()); err != nil {
			return errors.Wrap(err, "writing formatted ruby source")
		}
	}
	return nil
}

func isHardNewLine(t linetoken.ConcreteLineToken) bool {
	_, ok := t.(linetoken.HardNewLine)
	return ok
}

func isIndent(t linetoken.ConcreteLineToken) bool {
	_, ok := t.(linetoken.Indent)
	return ok
}

func isHeredocClose(t linetoken.ConcreteLineToken) bool {
	_, ok := t.(linetoken.HeredocClose)
	return ok
}

func isEnd(t linetoken.ConcreteLineToken) bool {
	_, ok := t.(linetoken.End)
	return ok
}

func isAfterCallChain(t linetoken.ConcreteLineToken) bool {
	_, ok := t.(linetoken.AfterCallChain)
	return ok
}

func isDefKeyword(t linetoken.ConcreteLineToken) bool {
	_, ok := t.(linetoken.DefKeyword)
	return ok
}

func isDelim(t linetoken.ConcreteLineToken) bool {
	_, ok := t.(linetoken.Delim)
	return ok
}

func isComma(t linetoken.ConcreteLineToken) bool {
	_, ok := t.(linetoken.Comma)
	return ok
}
