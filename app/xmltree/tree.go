package xmltree

// Node is a single element of a deserialized XML document.
// Element names keep the namespace prefix used in the source (e.g. "media:credit").
// Children is always a sequence: an element that occurs once is a one-element slice.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string // direct character data, concatenated
	Children []*Node
}

// Document is the generic tree produced from a feed payload.
type Document struct {
	Root *Node
}

func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var children []*Node
	for _, child := range n.Children {
		if child.Name == name {
			children = append(children, child)
		}
	}
	return children
}

func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	value, ok := n.Attrs[name]
	return value, ok
}

// IsLeaf reports whether the node has no child elements.
func (n *Node) IsLeaf() bool {
	return n != nil && len(n.Children) == 0
}

// IsEmpty reports whether the node is missing or is a leaf without text or attributes.
func (n *Node) IsEmpty() bool {
	return n == nil || (len(n.Children) == 0 && len(n.Attrs) == 0 && n.Text == "")
}
