// Package gather records notebook cell executions and gathers the code behind their results
package gather

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/gather/analyzer"
	"github.com/viant/gather/analyzer/cfg"
	"github.com/viant/gather/loc"
	"github.com/viant/gather/parser"
	"github.com/viant/gather/slicer"
)

// WholeCell is the default seed of a slice; it spans every statement of a cell
var WholeCell = loc.Location{FirstLine: 1, FirstColumn: 0, LastLine: 10000, LastColumn: 10000}

// ExecutionLogSlicer records cell executions and slices the code behind them
type ExecutionLogSlicer struct {
	mux             sync.RWMutex
	executions      []*CellExecution
	builder         *ProgramBuilder
	analyzer        *analyzer.Analyzer
	parser          *parser.Parser
	rewriter        *parser.MagicsRewriter
	clock           func() time.Time
	logger          logrus.FieldLogger
	executionLogged Signal[*CellExecution]
	logReset        Signal[*Reset]
}

// New creates an execution log slicer
func New(options ...Option) *ExecutionLogSlicer {
	ret := &ExecutionLogSlicer{clock: time.Now, logger: logrus.StandardLogger()}
	for _, opt := range options {
		opt(ret)
	}
	if ret.analyzer == nil {
		ret.analyzer = analyzer.New(analyzer.WithLogger(ret.logger))
	}
	ret.builder = NewProgramBuilder(ret.parser, ret.rewriter, ret.analyzer, ret.logger)
	return ret
}

// ExecutionLogged is emitted after an execution is recorded
func (s *ExecutionLogSlicer) ExecutionLogged() *Signal[*CellExecution] {
	return &s.executionLogged
}

// LogReset is emitted after the log is cleared
func (s *ExecutionLogSlicer) LogReset() *Signal[*Reset] {
	return &s.logReset
}

// LogExecution records an execution of cell at the current time. Cells that fail to parse are recorded
// but never contribute code.
func (s *ExecutionLogSlicer) LogExecution(ctx context.Context, cell Cell) {
	s.AddExecution(ctx, NewCellExecution(cell, s.clock()))
}

// AddExecution records execution as is
func (s *ExecutionLogSlicer) AddExecution(ctx context.Context, execution *CellExecution) {
	s.mux.Lock()
	s.executions = append(s.executions, execution)
	s.builder.Add(ctx, execution.Cell)
	s.mux.Unlock()
	s.logger.WithFields(logrus.Fields{
		"cell":             execution.Cell.ID(),
		"executionEventId": execution.Cell.ExecutionEventID(),
	}).Debug("execution logged")
	s.executionLogged.Emit(execution)
}

// Executions returns the recorded executions in order
func (s *ExecutionLogSlicer) Executions() []*CellExecution {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return append([]*CellExecution(nil), s.executions...)
}

// CellProgram returns the program of the latest execution recorded for cell's execution event, or nil
func (s *ExecutionLogSlicer) CellProgram(cell Cell) *CellProgram {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.builder.CellProgram(cell.ExecutionEventID())
}

// SliceAllExecutions slices every recorded execution of cell's slot. Seeds are relative to the cell text and
// default to the whole cell. It returns nil when nothing could be sliced.
func (s *ExecutionLogSlicer) SliceAllExecutions(cell Cell, seeds *loc.LocationSet) []*SlicedExecution {
	s.mux.RLock()
	defer s.mux.RUnlock()
	if seeds == nil {
		seeds = loc.NewLocationSet(WholeCell)
	}
	times := s.executionTimes()
	var result []*SlicedExecution
	for _, execution := range s.executions {
		if execution.Cell.PersistentID() != cell.PersistentID() {
			continue
		}
		if _, ok := execution.Cell.ExecutionCount(); !ok {
			continue
		}
		if sliced := s.slice(execution, seeds, times); sliced != nil {
			result = append(result, sliced)
		}
	}
	s.logger.WithFields(logrus.Fields{
		"cell":       cell.ID(),
		"executions": len(result),
	}).Debug("slice computed")
	return result
}

// SliceLatestExecution slices the most recent execution of cell's slot, or returns nil
func (s *ExecutionLogSlicer) SliceLatestExecution(cell Cell, seeds *loc.LocationSet) *SlicedExecution {
	all := s.SliceAllExecutions(cell, seeds)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func (s *ExecutionLogSlicer) slice(execution *CellExecution, seeds *loc.LocationSet, times map[string]time.Time) *SlicedExecution {
	eventID := execution.Cell.ExecutionEventID()
	program := s.builder.BuildTo(eventID)
	if program == nil {
		return nil
	}
	offset := program.CellStart(eventID) - 1
	translated := seeds.Map(func(l loc.Location) loc.Location { return l.Shift(offset) })
	locations := slicer.Slice(program.Tree, translated, s.analyzer)

	ret := &SlicedExecution{ExecutionTime: execution.ExecutionTime}
	cellSlices := map[string]*CellSlice{}
	for _, location := range loc.Sorted(locations) {
		owner, ok := program.LineToCellMap[location.FirstLine]
		if !ok {
			continue
		}
		ownerID := owner.ExecutionEventID()
		cellSlice, ok := cellSlices[ownerID]
		if !ok {
			cellSlice = &CellSlice{Cell: owner.DeepCopy(), Slice: loc.NewLocationSet(), ExecutionTime: times[ownerID]}
			cellSlices[ownerID] = cellSlice
			ret.CellSlices = append(ret.CellSlices, cellSlice)
		}
		cellSlice.Slice.Add(location.Shift(-(program.CellStart(ownerID) - 1)))
	}
	return ret
}

func (s *ExecutionLogSlicer) executionTimes() map[string]time.Time {
	ret := make(map[string]time.Time, len(s.executions))
	for _, execution := range s.executions {
		ret[execution.Cell.ExecutionEventID()] = execution.ExecutionTime
	}
	return ret
}

// Dataflow analyzes the program that led to cell's execution, or returns nil
func (s *ExecutionLogSlicer) Dataflow(cell Cell) *analyzer.Result {
	s.mux.RLock()
	defer s.mux.RUnlock()
	program := s.builder.BuildTo(cell.ExecutionEventID())
	if program == nil {
		return nil
	}
	return s.analyzer.Analyze(cfg.New(program.Tree.Body))
}

// DependentCells returns cells executed after cell whose statements depend, directly or transitively, on
// the statements of cell's latest execution.
func (s *ExecutionLogSlicer) DependentCells(cell Cell) []Cell {
	s.mux.RLock()
	defer s.mux.RUnlock()
	eventID := cell.ExecutionEventID()
	program := s.builder.BuildFrom(eventID)
	if program == nil {
		return nil
	}
	graph := cfg.New(program.Tree.Body)
	flows := s.analyzer.Analyze(graph).Flows

	affected := loc.NewLocationSet()
	for _, statement := range program.Tree.Body {
		if statement.ExecutionEventID == eventID {
			affected.Add(statement.Location)
		}
	}
	for {
		size := affected.Len()
		for _, flow := range flows.Items() {
			if loc.ContainsWithin(affected, flow.From.Location) {
				affected.Add(flow.To.Location)
			}
		}
		if affected.Len() == size {
			break
		}
	}

	var result []Cell
	seen := map[string]bool{eventID: true}
	for _, location := range loc.Sorted(affected) {
		owner, ok := program.LineToCellMap[location.FirstLine]
		if !ok || seen[owner.ExecutionEventID()] {
			continue
		}
		seen[owner.ExecutionEventID()] = true
		result = append(result, owner)
	}
	return result
}

// Reset clears the log and the program history
func (s *ExecutionLogSlicer) Reset() {
	s.mux.Lock()
	dropped := len(s.executions)
	s.executions = nil
	s.builder.Reset()
	s.mux.Unlock()
	s.logReset.Emit(&Reset{Executions: dropped})
}
