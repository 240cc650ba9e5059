// Package queuedoc decodes the JSON-serialized render queue that an
// external Ruby tree walker (spec.md §4.5, §6.1) would emit, into the
// render.Queue this component's layout engine consumes. It performs no
// parsing of Ruby source itself — it trusts that its input already is the
// normalized tree-walker output spec.md describes, and only validates the
// queue document's own structure.
package queuedoc

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/bibstha/rubyfmt/linetoken"
	"github.com/bibstha/rubyfmt/render"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

// document is the top-level shape of a render queue document.
type document struct {
	Items []itemDoc `json:"items"`
}

type itemDoc struct {
	Kind string `json:"kind"`

	// Present when Kind == "token".
	Token *tokenDoc `json:"token,omitempty"`

	// Present when Kind == "breakable".
	SingleLine      []itemDoc `json:"single_line,omitempty"`
	MultiLine       []itemDoc `json:"multi_line,omitempty"`
	ForcedMultiline bool      `json:"forced_multiline,omitempty"`
	Context         string    `json:"context,omitempty"`
}

type tokenDoc struct {
	Kind  string `json:"kind"`
	Depth int    `json:"depth,omitempty"`
	Text  string `json:"text,omitempty"`
	ID    string `json:"id,omitempty"`
}

// Decode reads a render queue document from r and builds the render.Queue
// the layout engine should run it through.
func Decode(r io.Reader) (render.Queue, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding render queue document")
	}
	return decodeItems(doc.Items)
}

func decodeItems(items []itemDoc) (render.Queue, error) {
	queue := make(render.Queue, 0, len(items))
	for _, it := range items {
		qi, err := decodeItem(it)
		if err != nil {
			return nil, err
		}
		queue = append(queue, qi)
	}
	return queue, nil
}

func decodeItem(it itemDoc) (render.QueueItem, error) {
	switch it.Kind {
	case "token":
		if it.Token == nil {
			return nil, errors.New("render queue item has kind \"token\" but no token field")
		}
		tok, err := decodeToken(*it.Token)
		if err != nil {
			return nil, err
		}
		return render.Token{Tok: tok}, nil

	case "breakable":
		single, err := decodeItems(it.SingleLine)
		if err != nil {
			return nil, errors.Wrap(err, "decoding single_line alternative")
		}
		multi, err := decodeItems(it.MultiLine)
		if err != nil {
			return nil, errors.Wrap(err, "decoding multi_line alternative")
		}
		if len(single) == 0 && len(multi) != 0 {
			return nil, errors.New("breakable has an empty single_line alternative but a non-empty multi_line one")
		}
		if len(multi) == 0 && len(single) != 0 {
			return nil, errors.New("breakable has an empty multi_line alternative but a non-empty single_line one")
		}

		ctx, err := parseContext(it.Context)
		if err != nil {
			return nil, err
		}

		return render.BreakableEntry{
			SingleLineTokens:       single,
			MultiLineTokens:        multi,
			SingleLineStringLength: singleLineWidth(single),
			ForcedMultiline:        it.ForcedMultiline,
			FormattingContext:      ctx,
		}, nil

	default:
		return nil, errors.Errorf("unknown render queue item kind %q", it.Kind)
	}
}

func decodeToken(t tokenDoc) (linetoken.ConcreteLineToken, error) {
	switch t.Kind {
	case "indent":
		return linetoken.Indent{Depth: t.Depth}, nil
	case "hard_newline":
		return linetoken.HardNewLine{}, nil
	case "soft_newline":
		return linetoken.SoftNewLine{}, nil
	case "collapsing_newline":
		return linetoken.CollapsingNewLine{}, nil
	case "direct_part":
		return linetoken.DirectPart{Text: t.Text}, nil
	case "delim":
		return linetoken.Delim{Text: t.Text}, nil
	case "comma":
		return linetoken.Comma{}, nil
	case "space":
		return linetoken.Space{}, nil
	case "dot":
		return linetoken.Dot{}, nil
	case "lonely_operator":
		return linetoken.LonelyOperator{}, nil
	case "def_keyword":
		return linetoken.DefKeyword{}, nil
	case "class_keyword":
		return linetoken.ClassKeyword{}, nil
	case "module_keyword":
		return linetoken.ModuleKeyword{}, nil
	case "end":
		return linetoken.End{}, nil
	case "after_call_chain":
		return linetoken.AfterCallChain{}, nil
	case "heredoc_close":
		return linetoken.HeredocClose{Indent: t.Depth, ID: t.ID}, nil
	default:
		return nil, errors.Errorf("unknown token kind %q", t.Kind)
	}
}

func parseContext(s string) (render.FormattingContext, error) {
	switch s {
	case "", "TopLevel":
		return render.TopLevel, nil
	case "ClassOrModule":
		return render.ClassOrModule, nil
	case "Def":
		return render.Def, nil
	case "ArgsList":
		return render.ArgsList, nil
	case "CurlyBlock":
		return render.CurlyBlock, nil
	case "DoBlock":
		return render.DoBlock, nil
	case "StringInterpolation":
		return render.StringInterpolation, nil
	case "Ternary":
		return render.Ternary, nil
	case "CaseWhen":
		return render.CaseWhen, nil
	default:
		return 0, errors.Errorf("unknown formatting context %q", s)
	}
}

// singleLineWidth computes the exact column width the single-line
// alternative would occupy if rendered as-is, per spec.md §6.1. It uses
// go-runewidth so multi-byte UTF-8 in string literals and comments is
// measured in display columns rather than bytes, the same way the teacher
// measures table cell and heading width (markdown/randerer_table.go,
// markdown/renderer_heading.go).
func singleLineWidth(items render.Queue) int {
	var sb strings.Builder
	writeFlatText(&sb, items)
	return runewidth.StringWidth(sb.String())
}

func writeFlatText(sb *strings.Builder, items render.Queue) {
	for _, it := range items {
		switch v := it.(type) {
		case render.Token:
			sb.WriteString(v.Tok.IntoText())
		case render.BreakableEntry:
			// A breakable nested inside a single-line alternative is
			// measured by its own single-line form: that's what would
			// actually be emitted if the enclosing region also fits.
			writeFlatText(sb, v.SingleLineTokens)
		}
	}
}
