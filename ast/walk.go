package ast

// Visitor is called for each node in pre-order with the node's ancestors, root first.
// Returning false skips the node's children.
type Visitor func(node *Node, ancestors []*Node) bool

// Walk traverses node in pre-order
func Walk(node *Node, visit Visitor) {
	walk(node, nil, visit)
}

func walk(node *Node, ancestors []*Node, visit Visitor) {
	if node == nil {
		return
	}
	if !visit(node, ancestors) {
		return
	}
	ancestors = append(ancestors, node)
	for _, child := range node.Children() {
		walk(child, ancestors, visit)
	}
}

// Inspect traverses node in pre-order; returning false skips the node's children
func Inspect(node *Node, fn func(*Node) bool) {
	Walk(node, func(n *Node, _ []*Node) bool { return fn(n) })
}

// Nodes returns node and all of its descendants in pre-order
func Nodes(node *Node) []*Node {
	var result []*Node
	Inspect(node, func(n *Node) bool {
		result = append(result, n)
		return true
	})
	return result
}

// Tag sets the execution event id on node and all of its descendants
func Tag(node *Node, executionEventID string) {
	Inspect(node, func(n *Node) bool {
		n.ExecutionEventID = executionEventID
		return true
	})
}
