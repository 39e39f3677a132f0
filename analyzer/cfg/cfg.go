package cfg

import (
	"fmt"
	"strings"

	"github.com/viant/gather/ast"
)

// Block is a basic block: statements that execute in sequence
type Block struct {
	ID         int
	Hint       string
	Statements []*ast.Node
}

func (b *Block) String() string {
	return fmt.Sprintf("%d (%s)", b.ID, b.Hint)
}

// Dependency is a control dependency: To executes depending on the outcome of From
type Dependency struct {
	From *ast.Node
	To   *ast.Node
}

// Graph is a control flow graph over statements
type Graph struct {
	blocks       []*Block
	entry        *Block
	exit         *Block
	successors   map[int][]*Block
	predecessors map[int][]*Block
	structural   []Dependency
}

// scope tracks the jump targets of the construct being built
type scope struct {
	loopHead  *Block
	loopExit  *Block
	exception *Block
	header    *ast.Node
}

// New builds a graph over module level statements
func New(statements []*ast.Node) *Graph {
	g := newGraph()
	last := g.build(statements, g.entry, &scope{})
	g.finish(last)
	return g
}

// NewFunction builds a graph over the body of def
func NewFunction(def *ast.Node) *Graph {
	g := newGraph()
	last := g.build(def.Body, g.entry, &scope{})
	g.finish(last)
	return g
}

func newGraph() *Graph {
	g := &Graph{successors: map[int][]*Block{}, predecessors: map[int][]*Block{}}
	g.entry = g.newBlock("entry")
	g.exit = g.newBlock("exit")
	return g
}

// Entry returns the entry block
func (g *Graph) Entry() *Block { return g.entry }

// Exit returns the exit block
func (g *Graph) Exit() *Block { return g.exit }

// Blocks returns all blocks in creation order
func (g *Graph) Blocks() []*Block { return g.blocks }

// Successors returns the successors of block
func (g *Graph) Successors(block *Block) []*Block { return g.successors[block.ID] }

// Predecessors returns the predecessors of block
func (g *Graph) Predecessors(block *Block) []*Block { return g.predecessors[block.ID] }

// Statements returns the statements of all blocks in block order
func (g *Graph) Statements() []*ast.Node {
	var result []*ast.Node
	for _, block := range g.blocks {
		result = append(result, block.Statements...)
	}
	return result
}

func (g *Graph) String() string {
	builder := strings.Builder{}
	for _, block := range g.blocks {
		var ids []string
		for _, succ := range g.successors[block.ID] {
			ids = append(ids, fmt.Sprint(succ.ID))
		}
		builder.WriteString(fmt.Sprintf("%v -> [%s]\n", block, strings.Join(ids, ",")))
	}
	return builder.String()
}

func (g *Graph) newBlock(hint string, statements ...*ast.Node) *Block {
	block := &Block{ID: len(g.blocks), Hint: hint, Statements: statements}
	g.blocks = append(g.blocks, block)
	return block
}

func (g *Graph) link(from *Block, to ...*Block) {
	for _, target := range to {
		if g.hasEdge(from, target) {
			continue
		}
		g.successors[from.ID] = append(g.successors[from.ID], target)
		g.predecessors[target.ID] = append(g.predecessors[target.ID], from)
	}
}

func (g *Graph) hasEdge(from, to *Block) bool {
	for _, succ := range g.successors[from.ID] {
		if succ == to {
			return true
		}
	}
	return false
}

func (g *Graph) finish(last *Block) {
	g.link(last, g.exit)
	for _, block := range g.blocks {
		if block != g.exit && len(g.successors[block.ID]) == 0 {
			g.link(block, g.exit)
		}
	}
}

// place appends stmt to block, recording its dependency on the enclosing construct header
func (g *Graph) place(block *Block, stmt *ast.Node, s *scope) {
	block.Statements = append(block.Statements, stmt)
	if s.header != nil {
		g.structural = append(g.structural, Dependency{From: s.header, To: stmt})
	}
}

func (s *scope) nested(header *ast.Node) *scope {
	ret := *s
	ret.header = header
	return &ret
}

func (g *Graph) build(statements []*ast.Node, current *Block, s *scope) *Block {
	for _, stmt := range statements {
		switch stmt.Kind {
		case ast.If:
			current = g.buildIf(stmt, current, s)
		case ast.While:
			current = g.buildWhile(stmt, current, s)
		case ast.For:
			current = g.buildFor(stmt, current, s)
		case ast.Try:
			current = g.buildTry(stmt, current, s)
		case ast.With:
			current = g.buildWith(stmt, current, s)
		case ast.Return:
			g.place(current, stmt, s)
			g.link(current, g.exit)
			current = g.newBlock("unreachable")
		case ast.Raise:
			g.place(current, stmt, s)
			if s.exception != nil {
				g.link(current, s.exception)
			} else {
				g.link(current, g.exit)
			}
			current = g.newBlock("unreachable")
		case ast.Break:
			g.place(current, stmt, s)
			if s.loopExit != nil {
				g.link(current, s.loopExit)
				current = g.newBlock("unreachable")
			}
		case ast.Continue:
			g.place(current, stmt, s)
			if s.loopHead != nil {
				g.link(current, s.loopHead)
				current = g.newBlock("unreachable")
			}
		default:
			g.place(current, stmt, s)
		}
	}
	return current
}

func (g *Graph) buildIf(stmt *ast.Node, current *Block, s *scope) *Block {
	join := g.newBlock("if join")
	cond := g.newBlock("if cond")
	g.place(cond, header(stmt, stmt.Test), s)
	g.link(current, cond)
	body := g.newBlock("if body")
	g.link(cond, body)
	g.link(g.build(stmt.Body, body, s.nested(cond.Statements[0])), join)

	for _, elif := range stmt.Elifs {
		next := g.newBlock("elif cond")
		g.place(next, header(elif, elif.Test), s)
		g.link(cond, next)
		cond = next
		body = g.newBlock("elif body")
		g.link(cond, body)
		g.link(g.build(elif.Body, body, s.nested(cond.Statements[0])), join)
	}
	if stmt.Else == nil {
		g.link(cond, join)
		return join
	}
	elseBlock := g.newBlock("else")
	g.place(elseBlock, stmt.Else, s)
	g.link(cond, elseBlock)
	body = g.newBlock("else body")
	g.link(elseBlock, body, join)
	g.link(g.build(stmt.Else.Body, body, s.nested(stmt.Else)), join)
	return join
}

func (g *Graph) buildWhile(stmt *ast.Node, current *Block, s *scope) *Block {
	head := g.newBlock("while head")
	g.place(head, header(stmt, stmt.Test), s)
	g.link(current, head)
	return g.buildLoop(stmt, head, s)
}

func (g *Graph) buildFor(stmt *ast.Node, current *Block, s *scope) *Block {
	head := g.newBlock("for head")
	g.place(head, &ast.Node{
		Kind:             ast.Assign,
		Location:         stmt.Header,
		Header:           stmt.Header,
		ExecutionEventID: stmt.ExecutionEventID,
		Targets:          stmt.Targets,
		Sources:          stmt.Sources,
	}, s)
	g.link(current, head)
	return g.buildLoop(stmt, head, s)
}

func (g *Graph) buildLoop(stmt *ast.Node, head *Block, s *scope) *Block {
	after := g.newBlock(head.Hint + " exit")
	body := g.newBlock(head.Hint + " body")
	g.link(head, body)
	inner := s.nested(head.Statements[0])
	inner.loopHead = head
	inner.loopExit = after
	g.link(g.build(stmt.Body, body, inner), head)
	if stmt.Else == nil {
		g.link(head, after)
		return after
	}
	elseBlock := g.newBlock("loop else")
	g.place(elseBlock, stmt.Else, s)
	g.link(head, elseBlock)
	elseBody := g.newBlock("loop else body")
	g.link(elseBlock, elseBody, after)
	g.link(g.build(stmt.Else.Body, elseBody, s.nested(stmt.Else)), after)
	return after
}

func (g *Graph) buildTry(stmt *ast.Node, current *Block, s *scope) *Block {
	after := g.newBlock("try exit")
	exit := after
	var finallyBlock *Block
	if stmt.Finally != nil {
		finallyBlock = g.newBlock("finally")
		g.place(finallyBlock, stmt.Finally, s)
		finallyBody := g.newBlock("finally body")
		g.link(finallyBlock, finallyBody)
		g.link(g.build(stmt.Finally.Body, finallyBody, s.nested(stmt.Finally)), after)
		exit = finallyBlock
	}

	tryHeader := &ast.Node{Kind: ast.Try, Location: stmt.Header, Header: stmt.Header, ExecutionEventID: stmt.ExecutionEventID}
	headerBlock := g.newBlock("try")
	g.place(headerBlock, tryHeader, s)
	g.link(current, headerBlock)

	handlers := make([]*Block, len(stmt.Handlers))
	for i, handler := range stmt.Handlers {
		handlers[i] = g.newBlock("except")
		g.place(handlers[i], handler, s)
	}
	var exception *Block
	if len(handlers) > 0 {
		exception = handlers[0]
	} else {
		exception = exit
	}

	body := g.newBlock("try body")
	g.link(headerBlock, body, exception)
	inner := s.nested(tryHeader)
	inner.exception = exception
	bodyEnd := g.build(stmt.Body, body, inner)
	g.link(bodyEnd, exception)

	for i, handler := range stmt.Handlers {
		handlerBody := g.newBlock("except body")
		g.link(handlers[i], handlerBody)
		if i+1 < len(handlers) {
			g.link(handlers[i], handlers[i+1])
		} else {
			g.link(handlers[i], exit)
		}
		g.link(g.build(handler.Body, handlerBody, s.nested(handler)), exit)
	}

	if stmt.Else == nil {
		g.link(bodyEnd, exit)
		return after
	}
	elseBlock := g.newBlock("try else")
	g.place(elseBlock, stmt.Else, s)
	g.link(bodyEnd, elseBlock)
	elseBody := g.newBlock("try else body")
	g.link(elseBlock, elseBody)
	g.link(g.build(stmt.Else.Body, elseBody, s.nested(stmt.Else)), exit)
	return after
}

func (g *Graph) buildWith(stmt *ast.Node, current *Block, s *scope) *Block {
	head := g.newBlock("with")
	for _, item := range stmt.Sources {
		if len(item.Targets) == 0 {
			g.place(head, &ast.Node{Kind: ast.Expr, Location: item.Location, ExecutionEventID: stmt.ExecutionEventID, Value: item.Value}, s)
			continue
		}
		g.place(head, &ast.Node{
			Kind:             ast.Assign,
			Location:         item.Location,
			ExecutionEventID: stmt.ExecutionEventID,
			Targets:          item.Targets,
			Sources:          []*ast.Node{item.Value},
		}, s)
	}
	if len(head.Statements) == 0 {
		g.place(head, &ast.Node{Kind: ast.Expr, Location: stmt.Header, ExecutionEventID: stmt.ExecutionEventID}, s)
	}
	g.link(current, head)
	after := g.newBlock("with exit")
	body := g.newBlock("with body")
	// entering the context may raise and skip the body
	g.link(head, body, after)
	g.link(g.build(stmt.Body, body, s.nested(head.Statements[len(head.Statements)-1])), after)
	return after
}

// header returns the condition of a compound statement, or a placeholder spanning its header
func header(stmt, test *ast.Node) *ast.Node {
	if test != nil {
		return test
	}
	return &ast.Node{Kind: ast.Expr, Location: stmt.Header, ExecutionEventID: stmt.ExecutionEventID}
}
