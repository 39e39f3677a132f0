package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/gather/ast"
)

func (c *converter) expressions(nodes []*sitter.Node) []*ast.Node {
	var result []*ast.Node
	for _, n := range nodes {
		if expr := c.expression(n); expr != nil {
			result = append(result, expr)
		}
	}
	return result
}

// flatten expands bare expression lists (del a, b) into their elements
func (c *converter) flatten(nodes []*sitter.Node) []*ast.Node {
	var result []*ast.Node
	for _, n := range nodes {
		if n.Type() == "expression_list" {
			result = append(result, c.expressions(namedChildren(n))...)
			continue
		}
		result = append(result, c.expression(n))
	}
	return result
}

func (c *converter) expression(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	at := location(n)
	switch n.Type() {
	case "identifier":
		return ast.NewName(c.text(n), at)
	case "attribute":
		return &ast.Node{Kind: ast.Dot, Location: at,
			Value: c.expression(n.ChildByFieldName("object")),
			Name:  c.text(n.ChildByFieldName("attribute"))}
	case "subscript":
		value := n.ChildByFieldName("value")
		node := &ast.Node{Kind: ast.Index, Location: at, Value: c.expression(value)}
		for _, child := range namedChildren(n) {
			if sameNode(child, value) {
				continue
			}
			node.Args = append(node.Args, c.expression(child))
		}
		return node
	case "slice":
		return &ast.Node{Kind: ast.Slice, Location: at, Args: c.expressions(namedChildren(n))}
	case "call":
		node := &ast.Node{Kind: ast.Call, Location: at, Value: c.expression(n.ChildByFieldName("function"))}
		arguments := n.ChildByFieldName("arguments")
		if arguments != nil && arguments.Type() == "generator_expression" {
			node.Args = []*ast.Node{{Kind: ast.Arg, Location: location(arguments), Value: c.expression(arguments)}}
		} else {
			node.Args = c.arguments(arguments)
		}
		return node
	case "parenthesized_expression", "type":
		if inner := firstNamed(n); inner != nil {
			return c.expression(inner)
		}
		return &ast.Node{Kind: ast.Tuple, Location: at}
	case "tuple", "expression_list", "pattern_list", "tuple_pattern":
		return &ast.Node{Kind: ast.Tuple, Location: at, Args: c.expressions(namedChildren(n))}
	case "list", "list_pattern":
		return &ast.Node{Kind: ast.List, Location: at, Args: c.expressions(namedChildren(n))}
	case "set":
		return &ast.Node{Kind: ast.Set, Location: at, Args: c.expressions(namedChildren(n))}
	case "dictionary":
		return &ast.Node{Kind: ast.Dict, Location: at, Args: c.expressions(namedChildren(n))}
	case "pair":
		return &ast.Node{Kind: ast.Pair, Location: at,
			Args: c.expressions([]*sitter.Node{n.ChildByFieldName("key"), n.ChildByFieldName("value")})}
	case "list_splat", "list_splat_pattern", "dictionary_splat", "dictionary_splat_pattern":
		return &ast.Node{Kind: ast.Starred, Location: at, Value: c.expression(firstNamed(n))}
	case "list_comprehension", "set_comprehension", "dictionary_comprehension", "generator_expression":
		return c.comprehension(n)
	case "binary_operator", "boolean_operator":
		return &ast.Node{Kind: ast.Binary, Location: at,
			Op:   c.text(n.ChildByFieldName("operator")),
			Args: c.expressions([]*sitter.Node{n.ChildByFieldName("left"), n.ChildByFieldName("right")})}
	case "comparison_operator":
		return &ast.Node{Kind: ast.Binary, Location: at, Op: c.operators(n), Args: c.expressions(namedChildren(n))}
	case "not_operator":
		return &ast.Node{Kind: ast.Unary, Location: at, Op: "not",
			Args: c.expressions([]*sitter.Node{n.ChildByFieldName("argument")})}
	case "unary_operator":
		return &ast.Node{Kind: ast.Unary, Location: at,
			Op:   c.text(n.ChildByFieldName("operator")),
			Args: c.expressions([]*sitter.Node{n.ChildByFieldName("argument")})}
	case "conditional_expression":
		children := namedChildren(n)
		if len(children) != 3 {
			return &ast.Node{Kind: ast.Other, Location: at, Args: c.expressions(children)}
		}
		return &ast.Node{Kind: ast.IfExpr, Location: at,
			Test: c.expression(children[1]),
			Args: c.expressions([]*sitter.Node{children[0], children[2]})}
	case "lambda":
		return &ast.Node{Kind: ast.Lambda, Location: at,
			Args:  c.parameters(n.ChildByFieldName("parameters")),
			Value: c.expression(n.ChildByFieldName("body"))}
	case "await":
		return &ast.Node{Kind: ast.Await, Location: at, Value: c.expression(firstNamed(n))}
	case "yield":
		return &ast.Node{Kind: ast.Yield, Location: at, Value: c.expression(firstNamed(n))}
	case "string", "concatenated_string":
		return &ast.Node{Kind: ast.Literal, Location: at, Literal: c.text(n), Args: c.interpolations(n)}
	case "integer", "float", "true", "false", "none", "ellipsis":
		return &ast.Node{Kind: ast.Literal, Location: at, Literal: c.text(n)}
	case "keyword_argument":
		return &ast.Node{Kind: ast.Arg, Location: at,
			Name:  c.text(n.ChildByFieldName("name")),
			Value: c.expression(n.ChildByFieldName("value"))}
	}
	children := namedChildren(n)
	if len(children) == 0 {
		return &ast.Node{Kind: ast.Other, Location: at, Literal: c.text(n)}
	}
	return &ast.Node{Kind: ast.Other, Location: at, Args: c.expressions(children)}
}

func (c *converter) operators(n *sitter.Node) string {
	var operators []string
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && !child.IsNamed() {
			operators = append(operators, child.Type())
		}
	}
	return strings.Join(operators, " ")
}

func (c *converter) interpolations(n *sitter.Node) []*ast.Node {
	var result []*ast.Node
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "interpolation":
			if expr := c.expression(firstNamed(child)); expr != nil {
				result = append(result, expr)
			}
		case "string":
			result = append(result, c.interpolations(child)...)
		}
	}
	return result
}

func (c *converter) comprehension(n *sitter.Node) *ast.Node {
	node := &ast.Node{Kind: ast.Comprehension, Location: location(n)}
	switch n.Type() {
	case "list_comprehension":
		node.Op = "list"
	case "set_comprehension":
		node.Op = "set"
	case "dictionary_comprehension":
		node.Op = "dict"
	default:
		node.Op = "generator"
	}
	body := n.ChildByFieldName("body")
	node.Value = c.expression(body)
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "for_in_clause":
			left := child.ChildByFieldName("left")
			clause := &ast.Node{Kind: ast.CompFor, Location: location(child), Targets: []*ast.Node{c.expression(left)}}
			for _, source := range namedChildren(child) {
				if sameNode(source, left) {
					continue
				}
				clause.Sources = append(clause.Sources, c.expression(source))
			}
			node.Args = append(node.Args, clause)
		case "if_clause":
			node.Args = append(node.Args, &ast.Node{Kind: ast.CompIf, Location: location(child), Test: c.expression(firstNamed(child))})
		}
	}
	return node
}

func (c *converter) arguments(n *sitter.Node) []*ast.Node {
	var result []*ast.Node
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "keyword_argument":
			result = append(result, c.expression(child))
		case "list_splat":
			result = append(result, &ast.Node{Kind: ast.Arg, Location: location(child), Op: "*", Value: c.expression(firstNamed(child))})
		case "dictionary_splat":
			result = append(result, &ast.Node{Kind: ast.Arg, Location: location(child), Op: "**", Value: c.expression(firstNamed(child))})
		default:
			result = append(result, &ast.Node{Kind: ast.Arg, Location: location(child), Value: c.expression(child)})
		}
	}
	return result
}

func (c *converter) parameters(n *sitter.Node) []*ast.Node {
	var result []*ast.Node
	for _, child := range namedChildren(n) {
		if param := c.parameter(child); param != nil {
			result = append(result, param)
		}
	}
	return result
}

func (c *converter) parameter(n *sitter.Node) *ast.Node {
	param := &ast.Node{Kind: ast.Param, Location: location(n)}
	switch n.Type() {
	case "identifier":
		param.Name = c.text(n)
	case "list_splat_pattern", "dictionary_splat_pattern":
		param.Op = "*"
		if n.Type() == "dictionary_splat_pattern" {
			param.Op = "**"
		}
		param.Name = c.text(firstNamed(n))
	case "typed_parameter":
		inner := firstNamed(n)
		if inner == nil {
			return nil
		}
		if inner.Type() != "identifier" {
			if nested := c.parameter(inner); nested != nil {
				nested.Location = param.Location
				return nested
			}
			return nil
		}
		param.Name = c.text(inner)
	case "default_parameter", "typed_default_parameter":
		param.Name = c.text(n.ChildByFieldName("name"))
		param.Value = c.expression(n.ChildByFieldName("value"))
	default:
		return nil
	}
	return param
}
