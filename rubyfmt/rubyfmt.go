// Package rubyfmt wires the render queue decoder to the layout engine and
// exposes the single public entry point the CLI (and any other caller)
// needs.
package rubyfmt

import (
	"bytes"
	"io/ioutil"

	"github.com/bibstha/rubyfmt/queuedoc"
	"github.com/bibstha/rubyfmt/render"
	"github.com/pkg/errors"
)

// Process formats a render queue document. If src is nil, the document is
// read from filename. Mirrors markdownfmt.Process's (filename, src) shape.
func Process(filename string, src []byte) ([]byte, error) {
	doc, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}

	queue, err := queuedoc.Decode(bytes.NewReader(doc))
	if err != nil {
		return nil, errors.Wrapf(err, "reading render queue from %s", displayName(filename))
	}

	var out bytes.Buffer
	if err := render.NewWriter().Write(queue, &out); err != nil {
		return nil, errors.Wrapf(err, "formatting %s", displayName(filename))
	}
	return out.Bytes(), nil
}

func displayName(filename string) string {
	if filename == "" {
		return "<input>"
	}
	return filename
}

// readSource returns src if non-nil, otherwise reads filename.
func readSource(filename string, src []byte) ([]byte, error) {
	if src != nil {
		return src, nil
	}
	return ioutil.ReadFile(filename)
}
