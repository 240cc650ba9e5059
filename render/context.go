package render

// FormattingContext names the enclosing syntactic role of a breakable
// region. Only StringInterpolation is load-bearing for layout decisions
// (spec.md §4.4): the writer refuses to break an interpolation across lines
// because doing so would change the string's runtime value. Ternary and
// CaseWhen are not drawn from any source node vocabulary; they round out
// the set so conditional bodies get the same breakable treatment as other
// compound statements. They carry no special-cased behavior beyond
// ordinary fit-vs-break.
type FormattingContext int

const (
	TopLevel FormattingContext = iota
	ClassOrModule
	Def
	ArgsList
	CurlyBlock
	DoBlock
	StringInterpolation
	Ternary
	CaseWhen
)

func (c FormattingContext) String() string {
	switch c {
	case TopLevel:
		return "TopLevel"
	case ClassOrModule:
		return "ClassOrModule"
	case Def:
		return "Def"
	case ArgsList:
		return "ArgsList"
	case CurlyBlock:
		return "CurlyBlock"
	case DoBlock:
		return "DoBlock"
	case StringInterpolation:
		return "StringInterpolation"
	case Ternary:
		return "Ternary"
	case CaseWhen:
		return "CaseWhen"
	default:
		return "Unknown"
	}
}
