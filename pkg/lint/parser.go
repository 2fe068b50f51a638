package lint

import (
	"context"

	"github.com/yaklabco/a11ylint/pkg/dom"
)

// Parser parses HTML, CSS or Markdown content into a dom.Document.
//
// The lint package defines this interface so the engine does not depend on
// concrete parsers. Implementations live under pkg/parser.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw bytes into a fully built Document.
	//
	// On success the returned Document satisfies:
	//   - doc.Path == path
	//   - bytes.Equal(doc.Content, content)
	//   - doc.Root != nil && doc.Root.Kind == dom.NodeDocument
	//   - every node has node.Doc == doc
	//
	// When no tree can be produced, Parse returns a *MalformedInputError and
	// no partial document.
	Parse(ctx context.Context, path string, content []byte) (*dom.Document, error)
}
