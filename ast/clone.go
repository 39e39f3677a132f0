package ast

// Clone returns a structural deep copy of node
func Clone(node *Node) *Node {
	if node == nil {
		return nil
	}
	clone := *node
	if node.Names != nil {
		clone.Names = append([]string(nil), node.Names...)
	}
	clone.Decorators = cloneAll(node.Decorators)
	clone.Value = Clone(node.Value)
	clone.Test = Clone(node.Test)
	clone.Targets = cloneAll(node.Targets)
	clone.Sources = cloneAll(node.Sources)
	clone.Args = cloneAll(node.Args)
	clone.Body = cloneAll(node.Body)
	clone.Elifs = cloneAll(node.Elifs)
	clone.Else = Clone(node.Else)
	clone.Handlers = cloneAll(node.Handlers)
	clone.Finally = Clone(node.Finally)
	return &clone
}

func cloneAll(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	result := make([]*Node, len(nodes))
	for i, node := range nodes {
		result[i] = Clone(node)
	}
	return result
}

// Shift moves the location and header of node and all of its descendants by lines
func Shift(node *Node, lines int) {
	if lines == 0 {
		return
	}
	Inspect(node, func(n *Node) bool {
		n.Location = n.Location.Shift(lines)
		n.Header = n.Header.Shift(lines)
		return true
	})
}
