package vdom

import "github.com/vango-dev/vxml/internal/errors"

// V converts a Go value to a node.
// *Node is returned as-is, Value becomes a text-like node, strings become
// text nodes, booleans boolean nodes and every integer and float kind a
// number node. Anything else, including a nil *Node, fails with an
// invalid node error.
func V(value any) (*Node, error) {
	switch v := value.(type) {
	case *Node:
		if v == nil {
			return nil, errors.New(errors.CodeInvalidNode).WithDetail("nil *Node")
		}
		return v, nil
	case Value:
		return v.Node(), nil
	case string:
		return Text(v), nil
	case bool:
		return Boolean(v), nil
	case int:
		return Number(float64(v)), nil
	case int8:
		return Number(float64(v)), nil
	case int16:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint:
		return Number(float64(v)), nil
	case uint8:
		return Number(float64(v)), nil
	case uint16:
		return Number(float64(v)), nil
	case uint32:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case float32:
		return Number(float64(v)), nil
	case float64:
		return Number(v), nil
	default:
		return nil, errors.New(errors.CodeInvalidNode).
			WithDetailf("cannot convert %T to a node", value)
	}
}

// Map applies fn to each item and returns the resulting nodes, in order.
// Useful for building children from a slice.
func Map[T any](items []T, fn func(T) *Node) []*Node {
	result := make([]*Node, len(items))
	for i, item := range items {
		result[i] = fn(item)
	}
	return result
}

// Walk traverses the tree depth-first, pre-order, calling fn for each node
// with its depth (the root is 0). Returning false skips the node's children.
// Nil nodes are not visited.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	walkNode(root, fn, 0)
}

func walkNode(n *Node, fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walkNode(child, fn, depth+1)
	}
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, int) bool {
		count++
		return true
	})
	return count
}
