package xmltree

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

const xmlNamespaceURI = "http://www.w3.org/XML/1998/namespace"

var ErrNoRootElement = errors.New("document has no root element")

type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads a whole XML document into a Document tree.
// The pull parser runs in strict mode: mismatched or unclosed tags, bare ampersands,
// unquoted attributes and non-XML entities are rejected, as are truncated documents.
func Parse(r io.Reader) (*Document, error) {
	p := xpp.NewXMLPullParser(r, true, charset.NewReaderLabel)

	var root *Node
	var stack []*Node

	for {
		event, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to read XML: %w", err)
		}

		switch event {
		case xpp.StartTag:
			node := &Node{
				Name:  qualify(p.Spaces, p.Space, p.Name),
				Attrs: attributes(p),
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("unexpected second root element <%s>", node.Name)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xpp.EndTag:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected closing tag </%s>", p.Name)
			}
			stack = stack[:len(stack)-1]

		case xpp.Text:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += p.Text
			}

		case xpp.EndDocument:
			if root == nil {
				return nil, ErrNoRootElement
			}
			if len(stack) > 0 {
				return nil, fmt.Errorf("document ended inside <%s>", stack[len(stack)-1].Name)
			}
			return &Document{Root: root}, nil
		}
	}
}

func attributes(p *xpp.XMLPullParser) map[string]string {
	if len(p.Attrs) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(p.Attrs))
	for _, attr := range p.Attrs {
		attrs[qualify(p.Spaces, attr.Name.Space, attr.Name.Local)] = attr.Value
	}
	return attrs
}

// qualify maps a resolved namespace URI back to the prefix declared in the document.
// Undeclared prefixes are left as written by the decoder.
func qualify(spaces map[string]string, space, local string) string {
	if space == "" {
		return local
	}
	if space == xmlNamespaceURI {
		return "xml:" + local
	}
	if prefix, ok := spaces[space]; ok {
		if prefix == "" {
			return local
		}
		return prefix + ":" + local
	}
	return space + ":" + local
}
