package vdom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <tag attrs>children</tag>
	KindText                // string content
	KindNumber              // numeric content
	KindBool                // boolean content
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// Node is a single node of the tree.
type Node struct {
	Kind     Kind    // Node type
	Tag      string  // Element tag name, used verbatim
	Attrs    Attrs   // Element attributes, in insertion order
	Children []*Node // Element children, in output order
	Text     string  // For KindText
	Num      float64 // For KindNumber
	Bool     bool    // For KindBool
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Kind: KindText, Text: content}
}

// Number creates a numeric text-like node.
func Number(n float64) *Node {
	return &Node{Kind: KindNumber, Num: n}
}

// Integer creates a numeric text-like node from an int.
func Integer(n int) *Node {
	return Number(float64(n))
}

// Boolean creates a boolean text-like node.
func Boolean(b bool) *Node {
	return &Node{Kind: KindBool, Bool: b}
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == KindElement
}

// IsTextLike reports whether n is a string, number or boolean node.
func (n *Node) IsTextLike() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindText, KindNumber, KindBool:
		return true
	}
	return false
}

// Value returns the scalar carried by a text-like node.
func (n *Node) Value() (Value, bool) {
	if n == nil {
		return Value{}, false
	}
	switch n.Kind {
	case KindText:
		return StringValue(n.Text), true
	case KindNumber:
		return NumberValue(n.Num), true
	case KindBool:
		return BoolValue(n.Bool), true
	}
	return Value{}, false
}
