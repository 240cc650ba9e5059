package render

import (
	"log"

	"github.com/bibstha/rubyfmt/linetoken"
)

// traceQueue prints a debug trace of a render queue. Only ever called from
// behind the DebugAssertions gate; mirrors the teacher's sparse use of
// log.Fatal-style diagnostics rather than pulling in a logging framework
// this component has no other need for.
func traceQueue(label string, queue Queue) {
	log.Printf("%s: %d items", label, len(queue))
}

// traceTokens prints a debug trace of a flattened token sequence.
func traceTokens(label string, tokens []linetoken.ConcreteLineToken) {
	log.Printf("%s: %d tokens", label, len(tokens))
}
