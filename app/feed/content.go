package feed

import (
	"log/slog"
	"strings"

	"github.com/lysyi3m/feedshelf/app/xmltree"
)

type ContentKind int

const (
	ContentAbsent ContentKind = iota
	ContentText
	ContentMixed
)

// Content is a field value as found in the document: missing, a plain string,
// or a mixed node carrying a text payload and/or paragraph and caption elements.
type Content struct {
	Kind       ContentKind
	Text       string
	Paragraphs []string
	Captions   []string
}

func ContentOf(n *xmltree.Node) Content {
	if n == nil {
		return Content{Kind: ContentAbsent}
	}
	if n.IsLeaf() {
		return Content{Kind: ContentText, Text: n.Text}
	}

	c := Content{Kind: ContentMixed}
	if strings.TrimSpace(n.Text) != "" {
		c.Text = n.Text
	}
	for _, p := range n.ChildrenNamed("p") {
		c.Paragraphs = append(c.Paragraphs, p.Text)
	}
	for _, caption := range n.ChildrenNamed("figcaption") {
		c.Captions = append(c.Captions, caption.Text)
	}
	return c
}

// ContentString flattens a field value into one string.
// The boolean is false when nothing usable was found.
func ContentString(c Content) (string, bool) {
	switch c.Kind {
	case ContentText:
		return c.Text, true
	case ContentMixed:
		if c.Text != "" {
			return c.Text, true
		}
		text := strings.TrimSpace(strings.Join(c.Paragraphs, " ") + strings.Join(c.Captions, ""))
		if text == "" {
			return "", false
		}
		return text, true
	default:
		slog.Debug("Content is absent, nothing to extract")
		return "", false
	}
}

// firstPresent returns the first node that exists and is not an empty leaf.
func firstPresent(nodes ...*xmltree.Node) *xmltree.Node {
	for _, n := range nodes {
		if !n.IsEmpty() {
			return n
		}
	}
	return nil
}

// textOf resolves a node to its string value, or "" when there is none.
func textOf(n *xmltree.Node) string {
	if n.IsEmpty() {
		return ""
	}
	text, _ := ContentString(ContentOf(n))
	return text
}
