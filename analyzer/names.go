package analyzer

import "github.com/viant/gather/ast"

// expressionChildren returns child nodes evaluated as part of n itself, leaving out nested suites
func expressionChildren(n *ast.Node) []*ast.Node {
	var result []*ast.Node
	appendNodes := func(nodes ...*ast.Node) {
		for _, node := range nodes {
			if node != nil {
				result = append(result, node)
			}
		}
	}
	appendNodes(n.Decorators...)
	appendNodes(n.Targets...)
	appendNodes(n.Value, n.Test)
	appendNodes(n.Sources...)
	appendNodes(n.Args...)
	return result
}

// inspectExpressions visits n and its expression descendants in pre-order
func inspectExpressions(n *ast.Node, fn func(*ast.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range expressionChildren(n) {
		inspectExpressions(child, fn)
	}
}

// freeNames calls fn for every name read by n that is not bound by an enclosing lambda or comprehension
func freeNames(n *ast.Node, bound map[string]bool, fn func(*ast.Node)) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Name:
		if !bound[n.Name] {
			fn(n)
		}
	case ast.Lambda:
		inner := copyBound(bound)
		for _, param := range n.Args {
			freeNames(param.Value, bound, fn)
			inner[param.Name] = true
		}
		freeNames(n.Value, inner, fn)
	case ast.Comprehension:
		inner := copyBound(bound)
		for _, clause := range n.Args {
			switch clause.Kind {
			case ast.CompFor:
				for _, source := range clause.Sources {
					freeNames(source, inner, fn)
				}
				for _, target := range clause.Targets {
					for _, name := range targetNames(target) {
						inner[name.Name] = true
					}
				}
			case ast.CompIf:
				freeNames(clause.Test, inner, fn)
			}
		}
		freeNames(n.Value, inner, fn)
	default:
		for _, child := range expressionChildren(n) {
			freeNames(child, bound, fn)
		}
	}
}

func copyBound(bound map[string]bool) map[string]bool {
	result := make(map[string]bool, len(bound)+2)
	for k, v := range bound {
		result[k] = v
	}
	return result
}

// targetNames returns names bound when unpacking into target
func targetNames(target *ast.Node) []*ast.Node {
	switch target.Kind {
	case ast.Name:
		return []*ast.Node{target}
	case ast.Tuple, ast.List:
		var result []*ast.Node
		for _, item := range target.Args {
			result = append(result, targetNames(item)...)
		}
		return result
	case ast.Starred:
		if target.Value != nil {
			return targetNames(target.Value)
		}
	}
	return nil
}

// gatherNames returns the names of the objects an expression refers to: x, x.y and x[i] all refer to x
func gatherNames(n *ast.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.Name:
		return []*ast.Node{n}
	case ast.Dot, ast.Index, ast.Starred:
		return gatherNames(n.Value)
	case ast.Tuple, ast.List:
		var result []*ast.Node
		for _, item := range n.Args {
			result = append(result, gatherNames(item)...)
		}
		return result
	}
	return nil
}

// dottedName returns a.b.c for a chain of attribute accesses on a name, "" otherwise
func dottedName(n *ast.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case ast.Name:
		return n.Name
	case ast.Dot:
		if prefix := dottedName(n.Value); prefix != "" {
			return prefix + "." + n.Name
		}
	}
	return ""
}
