package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/viant/gather/ast"
	"github.com/viant/gather/loc"
)

// ErrSyntax is wrapped by every SyntaxError
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports the first erroneous node of a parse
type SyntaxError struct {
	Location loc.Location
	Text     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %v near %q", e.Location, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Parser converts Python source into ast nodes using tree-sitter
type Parser struct {
	language *sitter.Language
}

// New creates a Python parser
func New() *Parser {
	return &Parser{language: python.GetLanguage()}
}

// Parse parses source and returns a Module node. Sources with syntax errors return a *SyntaxError.
func (p *Parser) Parse(ctx context.Context, source string) (*ast.Node, error) {
	src := []byte(source)
	parser := sitter.NewParser()
	parser.SetLanguage(p.language)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, src)
	}
	c := &converter{src: src}
	return &ast.Node{Kind: ast.Module, Location: location(root), Body: c.statements(root)}, nil
}

func syntaxError(root *sitter.Node, src []byte) error {
	var found *sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if found != nil || n == nil {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)
	if found == nil {
		found = root
	}
	return &SyntaxError{Location: location(found), Text: found.Content(src)}
}

func location(n *sitter.Node) loc.Location {
	start, end := n.StartPoint(), n.EndPoint()
	return loc.Location{
		FirstLine:   int(start.Row) + 1,
		FirstColumn: int(start.Column),
		LastLine:    int(end.Row) + 1,
		LastColumn:  int(end.Column),
	}
}

// header returns the span from the start of a compound statement to its first colon
func header(n *sitter.Node) loc.Location {
	result := location(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && child.Type() == ":" {
			end := child.EndPoint()
			result.LastLine = int(end.Row) + 1
			result.LastColumn = int(end.Column)
			return result
		}
	}
	return result
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var result []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		result = append(result, child)
	}
	return result
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if children := namedChildren(n); len(children) > 0 {
		return children[0]
	}
	return nil
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
