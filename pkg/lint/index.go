package lint

import (
	"strings"

	"github.com/yaklabco/a11ylint/pkg/dom"
)

// DocIndex provides pre-computed element collections for a document.
//
// The engine builds one index per document before any rule runs and shares
// it between rules, so the tree is walked once instead of once per rule.
// After construction the index is read-only and safe for concurrent use.
//
// Do not mutate returned slices; they are shared across rules.
type DocIndex struct {
	elements  []*dom.Node
	byTag     map[string][]*dom.Node
	byID      map[string][]*dom.Node
	labelsFor map[string][]*dom.Node
}

// NewDocIndex walks doc once and indexes its elements.
func NewDocIndex(doc *dom.Document) *DocIndex {
	idx := &DocIndex{
		byTag:     make(map[string][]*dom.Node),
		byID:      make(map[string][]*dom.Node),
		labelsFor: make(map[string][]*dom.Node),
	}
	if doc == nil {
		return idx
	}

	//nolint:errcheck // callback never fails
	dom.Walk(doc.Root, func(n *dom.Node) error {
		if n.Kind != dom.NodeElement {
			return nil
		}
		idx.elements = append(idx.elements, n)
		idx.byTag[n.Tag] = append(idx.byTag[n.Tag], n)
		if id := n.ID(); id != "" {
			idx.byID[id] = append(idx.byID[id], n)
		}
		if n.Tag == "label" {
			if target := strings.TrimSpace(n.AttrValue("for")); target != "" {
				idx.labelsFor[target] = append(idx.labelsFor[target], n)
			}
		}
		return nil
	})

	return idx
}

// Elements returns elements with one of the tags in document order.
// With no tags every element is returned.
func (idx *DocIndex) Elements(tags ...string) []*dom.Node {
	switch len(tags) {
	case 0:
		return idx.elements
	case 1:
		return idx.byTag[tags[0]]
	}

	var out []*dom.Node
	for _, n := range idx.elements {
		if n.IsElement(tags...) {
			out = append(out, n)
		}
	}
	return out
}

// ByID returns the first element with the given id, or nil.
func (idx *DocIndex) ByID(id string) *dom.Node {
	if nodes := idx.byID[id]; len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// AllByID returns every element carrying id, in document order.
func (idx *DocIndex) AllByID(id string) []*dom.Node {
	return idx.byID[id]
}

// IDs returns the set of ids in the document with their elements.
func (idx *DocIndex) IDs() map[string][]*dom.Node {
	return idx.byID
}

// LabelsFor returns <label for=id> elements.
func (idx *DocIndex) LabelsFor(id string) []*dom.Node {
	return idx.labelsFor[id]
}
