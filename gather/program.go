package gather

import (
	"context"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/gather/analyzer"
	"github.com/viant/gather/ast"
	"github.com/viant/gather/parser"
)

// CellProgram is the parsed form of one cell execution. Statement locations are relative to the cell text.
type CellProgram struct {
	Cell       Cell
	Statements []*ast.Node
	Defs       *analyzer.RefSet
	Uses       *analyzer.RefSet
	HasError   bool
}

// Program is a composite of consecutive cell executions
type Program struct {
	Text string
	Tree *ast.Node
	// CellToLineMap maps an execution event id to the program lines owned by that execution
	CellToLineMap map[string][]int
	// LineToCellMap maps a program line to the cell that owns it
	LineToCellMap map[int]Cell
}

// CellStart returns the first program line of the execution with executionEventID, or 0
func (p *Program) CellStart(executionEventID string) int {
	lines := p.CellToLineMap[executionEventID]
	if len(lines) == 0 {
		return 0
	}
	return lines[0]
}

// ProgramBuilder keeps parsed cell executions in order and assembles composite programs from them
type ProgramBuilder struct {
	parser   *parser.Parser
	rewriter *parser.MagicsRewriter
	analyzer *analyzer.Analyzer
	logger   logrus.FieldLogger
	programs []*CellProgram
}

// NewProgramBuilder creates a program builder
func NewProgramBuilder(p *parser.Parser, rewriter *parser.MagicsRewriter, dataflow *analyzer.Analyzer, logger logrus.FieldLogger) *ProgramBuilder {
	if p == nil {
		p = parser.New()
	}
	if rewriter == nil {
		rewriter = parser.NewMagicsRewriter()
	}
	if dataflow == nil {
		dataflow = analyzer.New()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProgramBuilder{parser: p, rewriter: rewriter, analyzer: dataflow, logger: logger}
}

// Add parses cells and appends them to the history. A cell that fails to parse is kept with HasError set.
func (b *ProgramBuilder) Add(ctx context.Context, cells ...Cell) {
	for _, cell := range cells {
		b.programs = append(b.programs, b.cellProgram(ctx, cell))
	}
}

func (b *ProgramBuilder) cellProgram(ctx context.Context, cell Cell) *CellProgram {
	ret := &CellProgram{Cell: cell, Defs: analyzer.NewRefSet(), Uses: analyzer.NewRefSet()}
	module, err := b.parser.Parse(ctx, b.rewriter.Rewrite(cell.Text()))
	if err != nil {
		b.logger.WithFields(logrus.Fields{
			"cell":             cell.ID(),
			"executionEventId": cell.ExecutionEventID(),
			"error":            err,
		}).Debug("cell excluded from programs")
		ret.HasError = true
		return ret
	}
	ast.Tag(module, cell.ExecutionEventID())
	ret.Statements = module.Body
	symbols := analyzer.NewSymbolTable()
	for _, statement := range module.Body {
		defsUses := b.analyzer.DefsUses(statement, symbols)
		symbols.Record(statement)
		ret.Defs.Add(defsUses.Defs.Items()...)
		ret.Uses.Add(defsUses.Uses.Items()...)
	}
	return ret
}

// CellProgram returns the most recent program of the execution with executionEventID, or nil
func (b *ProgramBuilder) CellProgram(executionEventID string) *CellProgram {
	if index := b.find(executionEventID); index != -1 {
		return b.programs[index]
	}
	return nil
}

func (b *ProgramBuilder) find(executionEventID string) int {
	for i := len(b.programs) - 1; i >= 0; i-- {
		if b.programs[i].Cell.ExecutionEventID() == executionEventID {
			return i
		}
	}
	return -1
}

// BuildTo assembles the program that led to the execution with executionEventID. Earlier executions are
// included while their execution counts strictly decrease; the walk stops at the first count that does not.
// Failed executions are skipped.
// It returns nil when the execution is unknown or failed to parse.
func (b *ProgramBuilder) BuildTo(executionEventID string) *Program {
	index := b.find(executionEventID)
	if index == -1 || b.programs[index].HasError {
		return nil
	}
	anchor := b.programs[index]
	selected := []*CellProgram{anchor}
	lastSeen, counted := anchor.Cell.ExecutionCount()
	for i := index - 1; i >= 0; i-- {
		program := b.programs[i]
		count, ok := program.Cell.ExecutionCount()
		if !ok {
			continue
		}
		if counted && count >= lastSeen {
			break
		}
		lastSeen, counted = count, true
		if program.HasError {
			continue
		}
		selected = append(selected, program)
	}
	slices.Reverse(selected)
	return build(selected)
}

// BuildFrom assembles the program of the execution with executionEventID and every later execution
// that parsed. It returns nil when the execution is unknown or failed to parse.
func (b *ProgramBuilder) BuildFrom(executionEventID string) *Program {
	index := b.find(executionEventID)
	if index == -1 || b.programs[index].HasError {
		return nil
	}
	var selected []*CellProgram
	for _, program := range b.programs[index:] {
		if !program.HasError {
			selected = append(selected, program)
		}
	}
	return build(selected)
}

// Reset drops the history and the cached definitions and uses
func (b *ProgramBuilder) Reset() {
	b.programs = nil
	b.analyzer.Reset()
}

func build(programs []*CellProgram) *Program {
	ret := &Program{
		Tree:          &ast.Node{Kind: ast.Module},
		CellToLineMap: map[string][]int{},
		LineToCellMap: map[int]Cell{},
	}
	var texts []string
	start := 1
	for _, program := range programs {
		text := program.Cell.Text()
		texts = append(texts, text)
		lineCount := strings.Count(text, "\n") + 1
		eventID := program.Cell.ExecutionEventID()
		for line := start; line < start+lineCount; line++ {
			ret.CellToLineMap[eventID] = append(ret.CellToLineMap[eventID], line)
			ret.LineToCellMap[line] = program.Cell
		}
		for _, statement := range program.Statements {
			clone := ast.Clone(statement)
			ast.Shift(clone, start-1)
			ret.Tree.Body = append(ret.Tree.Body, clone)
		}
		start += lineCount
	}
	ret.Text = strings.Join(texts, "\n")
	return ret
}
