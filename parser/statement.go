package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/gather/ast"
)

type converter struct {
	src []byte
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.src)
}

func (c *converter) statements(parent *sitter.Node) []*ast.Node {
	var result []*ast.Node
	for _, child := range namedChildren(parent) {
		if stmt := c.statement(child); stmt != nil {
			result = append(result, stmt)
		}
	}
	return result
}

func (c *converter) statement(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "expression_statement":
		return c.expressionStatement(n)
	case "import_statement":
		return c.importStatement(n)
	case "import_from_statement", "future_import_statement":
		return c.fromStatement(n)
	case "function_definition":
		return c.functionDefinition(n)
	case "class_definition":
		return c.classDefinition(n)
	case "decorated_definition":
		return c.decoratedDefinition(n)
	case "if_statement":
		return c.ifStatement(n)
	case "for_statement":
		return c.forStatement(n)
	case "while_statement":
		return c.whileStatement(n)
	case "try_statement":
		return c.tryStatement(n)
	case "with_statement":
		return c.withStatement(n)
	case "return_statement":
		return &ast.Node{Kind: ast.Return, Location: location(n), Value: c.expression(firstNamed(n))}
	case "raise_statement":
		return &ast.Node{Kind: ast.Raise, Location: location(n), Args: c.expressions(namedChildren(n))}
	case "pass_statement":
		return &ast.Node{Kind: ast.Pass, Location: location(n)}
	case "break_statement":
		return &ast.Node{Kind: ast.Break, Location: location(n)}
	case "continue_statement":
		return &ast.Node{Kind: ast.Continue, Location: location(n)}
	case "global_statement", "nonlocal_statement":
		kind := ast.Global
		if n.Type() == "nonlocal_statement" {
			kind = ast.Nonlocal
		}
		node := &ast.Node{Kind: kind, Location: location(n)}
		for _, child := range namedChildren(n) {
			node.Names = append(node.Names, c.text(child))
		}
		return node
	case "delete_statement":
		return &ast.Node{Kind: ast.Del, Location: location(n), Args: c.flatten(namedChildren(n))}
	case "assert_statement":
		return &ast.Node{Kind: ast.Assert, Location: location(n), Args: c.expressions(namedChildren(n))}
	case "comment":
		return nil
	}
	return &ast.Node{Kind: ast.Expr, Location: location(n), Value: c.expression(n)}
}

func (c *converter) expressionStatement(n *sitter.Node) *ast.Node {
	children := namedChildren(n)
	if len(children) == 1 {
		switch children[0].Type() {
		case "assignment":
			return c.assignment(children[0], n)
		case "augmented_assignment":
			child := children[0]
			return &ast.Node{
				Kind:     ast.Assign,
				Location: location(n),
				Op:       c.text(child.ChildByFieldName("operator")),
				Targets:  []*ast.Node{c.expression(child.ChildByFieldName("left"))},
				Sources:  []*ast.Node{c.expression(child.ChildByFieldName("right"))},
			}
		}
		return &ast.Node{Kind: ast.Expr, Location: location(n), Value: c.expression(children[0])}
	}
	return &ast.Node{Kind: ast.Expr, Location: location(n),
		Value: &ast.Node{Kind: ast.Tuple, Location: location(n), Args: c.expressions(children)}}
}

// assignment flattens chained assignments (a = b = value) into one node with several targets
func (c *converter) assignment(n *sitter.Node, stmt *sitter.Node) *ast.Node {
	node := &ast.Node{Kind: ast.Assign, Location: location(stmt)}
	for current := n; current != nil; {
		right := current.ChildByFieldName("right")
		if right == nil {
			if len(node.Targets) == 0 {
				// annotation without a value binds nothing
				return &ast.Node{Kind: ast.Expr, Location: location(stmt), Value: c.expression(current.ChildByFieldName("type"))}
			}
			break
		}
		node.Targets = append(node.Targets, c.expression(current.ChildByFieldName("left")))
		if right.Type() == "assignment" {
			current = right
			continue
		}
		node.Sources = []*ast.Node{c.expression(right)}
		break
	}
	return node
}

func (c *converter) importStatement(n *sitter.Node) *ast.Node {
	node := &ast.Node{Kind: ast.Import, Location: location(n)}
	for _, child := range namedChildren(n) {
		node.Args = append(node.Args, c.alias(child))
	}
	return node
}

func (c *converter) fromStatement(n *sitter.Node) *ast.Node {
	node := &ast.Node{Kind: ast.From, Location: location(n), Path: "__future__"}
	moduleName := n.ChildByFieldName("module_name")
	if moduleName != nil {
		node.Path = c.text(moduleName)
	}
	for _, child := range namedChildren(n) {
		if sameNode(child, moduleName) {
			continue
		}
		node.Args = append(node.Args, c.alias(child))
	}
	return node
}

func (c *converter) alias(n *sitter.Node) *ast.Node {
	node := &ast.Node{Kind: ast.Alias, Location: location(n)}
	switch n.Type() {
	case "aliased_import":
		node.Path = c.text(n.ChildByFieldName("name"))
		node.Name = c.text(n.ChildByFieldName("alias"))
	case "wildcard_import":
		node.Path = "*"
	default:
		node.Path = c.text(n)
	}
	return node
}

func (c *converter) functionDefinition(n *sitter.Node) *ast.Node {
	return &ast.Node{
		Kind:     ast.Def,
		Location: location(n),
		Header:   header(n),
		Name:     c.text(n.ChildByFieldName("name")),
		Args:     c.parameters(n.ChildByFieldName("parameters")),
		Body:     c.statements(n.ChildByFieldName("body")),
	}
}

func (c *converter) classDefinition(n *sitter.Node) *ast.Node {
	return &ast.Node{
		Kind:     ast.Class,
		Location: location(n),
		Header:   header(n),
		Name:     c.text(n.ChildByFieldName("name")),
		Args:     c.arguments(n.ChildByFieldName("superclasses")),
		Body:     c.statements(n.ChildByFieldName("body")),
	}
}

func (c *converter) decoratedDefinition(n *sitter.Node) *ast.Node {
	definition := n.ChildByFieldName("definition")
	if definition == nil {
		return &ast.Node{Kind: ast.Expr, Location: location(n), Value: c.expression(n)}
	}
	node := c.statement(definition)
	node.Location = location(n)
	for _, child := range namedChildren(n) {
		if child.Type() == "decorator" {
			node.Decorators = append(node.Decorators, c.expression(firstNamed(child)))
		}
	}
	return node
}

func (c *converter) ifStatement(n *sitter.Node) *ast.Node {
	node := &ast.Node{
		Kind:     ast.If,
		Location: location(n),
		Header:   header(n),
		Test:     c.expression(n.ChildByFieldName("condition")),
		Body:     c.statements(n.ChildByFieldName("consequence")),
	}
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "elif_clause":
			node.Elifs = append(node.Elifs, &ast.Node{
				Kind:     ast.Elif,
				Location: location(child),
				Header:   header(child),
				Test:     c.expression(child.ChildByFieldName("condition")),
				Body:     c.statements(child.ChildByFieldName("consequence")),
			})
		case "else_clause":
			node.Else = c.elseClause(child)
		}
	}
	return node
}

func (c *converter) elseClause(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		body = lastOfType(n, "block")
	}
	return &ast.Node{Kind: ast.Else, Location: header(n), Header: header(n), Body: c.statements(body)}
}

func (c *converter) forStatement(n *sitter.Node) *ast.Node {
	return &ast.Node{
		Kind:     ast.For,
		Location: location(n),
		Header:   header(n),
		Targets:  []*ast.Node{c.expression(n.ChildByFieldName("left"))},
		Sources:  []*ast.Node{c.expression(n.ChildByFieldName("right"))},
		Body:     c.statements(n.ChildByFieldName("body")),
		Else:     c.elseClause(n.ChildByFieldName("alternative")),
	}
}

func (c *converter) whileStatement(n *sitter.Node) *ast.Node {
	return &ast.Node{
		Kind:     ast.While,
		Location: location(n),
		Header:   header(n),
		Test:     c.expression(n.ChildByFieldName("condition")),
		Body:     c.statements(n.ChildByFieldName("body")),
		Else:     c.elseClause(n.ChildByFieldName("alternative")),
	}
}

func (c *converter) tryStatement(n *sitter.Node) *ast.Node {
	node := &ast.Node{
		Kind:     ast.Try,
		Location: location(n),
		Header:   header(n),
		Body:     c.statements(n.ChildByFieldName("body")),
	}
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "except_clause", "except_group_clause":
			node.Handlers = append(node.Handlers, c.exceptClause(child))
		case "else_clause":
			node.Else = c.elseClause(child)
		case "finally_clause":
			node.Finally = &ast.Node{Kind: ast.Finally, Location: header(child), Header: header(child),
				Body: c.statements(lastOfType(child, "block"))}
		}
	}
	return node
}

func (c *converter) exceptClause(n *sitter.Node) *ast.Node {
	node := &ast.Node{Kind: ast.Handler, Location: header(n), Header: header(n)}
	afterAs := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch {
		case child.Type() == "as":
			afterAs = true
		case child.Type() == "block":
			node.Body = c.statements(child)
		case !child.IsNamed() || child.Type() == "comment":
		case child.Type() == "as_pattern":
			node.Value = c.expression(firstNamed(child))
			node.Name = c.aliasName(child.ChildByFieldName("alias"))
		case afterAs:
			node.Name = c.text(child)
		case node.Value == nil:
			node.Value = c.expression(child)
		}
	}
	return node
}

func (c *converter) aliasName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == "as_pattern_target" {
		if inner := firstNamed(n); inner != nil {
			return c.text(inner)
		}
	}
	return c.text(n)
}

func (c *converter) withStatement(n *sitter.Node) *ast.Node {
	node := &ast.Node{
		Kind:     ast.With,
		Location: location(n),
		Header:   header(n),
		Body:     c.statements(n.ChildByFieldName("body")),
	}
	var collect func(parent *sitter.Node)
	collect = func(parent *sitter.Node) {
		for _, child := range namedChildren(parent) {
			switch child.Type() {
			case "with_item":
				node.Sources = append(node.Sources, c.withItem(child))
			case "with_clause":
				collect(child)
			}
		}
	}
	collect(n)
	return node
}

func (c *converter) withItem(n *sitter.Node) *ast.Node {
	node := &ast.Node{Kind: ast.WithItem, Location: location(n)}
	value := n.ChildByFieldName("value")
	if value == nil {
		value = firstNamed(n)
	}
	if value != nil && value.Type() == "as_pattern" {
		node.Value = c.expression(firstNamed(value))
		if alias := value.ChildByFieldName("alias"); alias != nil {
			target := alias
			if alias.Type() == "as_pattern_target" && firstNamed(alias) != nil {
				target = firstNamed(alias)
			}
			node.Targets = []*ast.Node{c.expression(target)}
		}
		return node
	}
	node.Value = c.expression(value)
	if alias := n.ChildByFieldName("alias"); alias != nil {
		node.Targets = []*ast.Node{c.expression(alias)}
	}
	return node
}

func lastOfType(n *sitter.Node, nodeType string) *sitter.Node {
	var result *sitter.Node
	for _, child := range namedChildren(n) {
		if child.Type() == nodeType {
			result = child
		}
	}
	return result
}
