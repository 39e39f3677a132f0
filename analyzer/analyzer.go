package analyzer

import (
	"cmp"
	"github.com/sirupsen/logrus"
	"github.com/viant/gather/analyzer/cfg"
	"github.com/viant/gather/ast"
	"slices"
	"sync"
)

// DefaultCacheLimit is the default number of cached statement definitions and uses
const DefaultCacheLimit = 8192

// Analyzer computes definitions and uses of statements and the dataflow between them
type Analyzer struct {
	rules         []*Rule
	logger        logrus.FieldLogger
	graphExporter GraphExporter
	mux           sync.Mutex
	cache         map[cacheKey]*DefsUses
	cacheLimit    int
}

type cacheKey struct {
	id          ast.NodeID
	moduleNames string
}

// Result is the outcome of a dataflow analysis
type Result struct {
	Flows         *FlowSet
	UndefinedRefs *RefSet
}

// New creates an analyzer
func New(options ...Option) *Analyzer {
	ret := &Analyzer{
		rules:      DefaultRules(),
		logger:     logrus.StandardLogger(),
		cache:      map[cacheKey]*DefsUses{},
		cacheLimit: DefaultCacheLimit,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// DefsUses returns definitions and uses of statement given the module names known before it.
// Results are cached for statements that carry both an execution event id and a location.
func (a *Analyzer) DefsUses(statement *ast.Node, symbols *SymbolTable) *DefsUses {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	id := statement.ID()
	if id.ExecutionEventID == "" || id.Location.IsZero() {
		return a.defsUses(statement, symbols)
	}
	key := cacheKey{id: id, moduleNames: symbols.key()}
	a.mux.Lock()
	cached, ok := a.cache[key]
	a.mux.Unlock()
	if ok {
		return cached
	}
	ret := a.defsUses(statement, symbols)
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.cacheLimit > 0 && len(a.cache) >= a.cacheLimit {
		a.logger.WithField("entries", len(a.cache)).Debug("defs and uses cache cleared")
		a.cache = map[cacheKey]*DefsUses{}
	}
	a.cache[key] = ret
	return ret
}

func (a *Analyzer) defsUses(statement *ast.Node, symbols *SymbolTable) *DefsUses {
	return &DefsUses{Defs: a.Defs(statement, symbols), Uses: a.Uses(statement, symbols)}
}

// CacheLen returns the number of cached statement definitions and uses
func (a *Analyzer) CacheLen() int {
	a.mux.Lock()
	defer a.mux.Unlock()
	return len(a.cache)
}

// Reset drops cached definitions and uses
func (a *Analyzer) Reset() {
	a.mux.Lock()
	defer a.mux.Unlock()
	a.cache = map[cacheKey]*DefsUses{}
}

// moduleNames returns, for each statement, the module names imported by statements that precede it in source order
func moduleNames(statements []*ast.Node) map[*ast.Node]*SymbolTable {
	ordered := slices.Clone(statements)
	slices.SortStableFunc(ordered, func(a, b *ast.Node) int {
		if c := cmp.Compare(a.Location.FirstLine, b.Location.FirstLine); c != 0 {
			return c
		}
		return cmp.Compare(a.Location.FirstColumn, b.Location.FirstColumn)
	})
	ret := make(map[*ast.Node]*SymbolTable, len(ordered))
	symbols := NewSymbolTable()
	for _, statement := range ordered {
		ret[statement] = symbols
		if len(importedNames(statement)) > 0 {
			symbols = symbols.Clone()
			symbols.Record(statement)
		}
	}
	return ret
}

// Analyze runs a reaching definitions fixed point over graph. Names in namesDefined are
// treated as defined before the graph's entry.
func (a *Analyzer) Analyze(graph *cfg.Graph, namesDefined ...string) *Result {
	defined := map[string]bool{}
	for _, name := range namesDefined {
		defined[name] = true
	}
	symbols := moduleNames(graph.Statements())
	blocks := graph.Blocks()
	reachIn := map[ReferenceType][]*RefSet{}
	reachOut := map[ReferenceType][]*RefSet{}
	for _, level := range referenceTypes {
		reachIn[level] = make([]*RefSet, len(blocks))
		reachOut[level] = make([]*RefSet, len(blocks))
		for i := range blocks {
			reachIn[level][i] = NewRefSet()
			reachOut[level][i] = NewRefSet()
		}
	}
	flows := NewFlowSet()
	candidates := NewRefSet()
	satisfied := NewRefSet()

	var worklist []*cfg.Block
	queued := map[int]bool{}
	for i := len(blocks) - 1; i >= 0; i-- {
		worklist = append(worklist, blocks[i])
		queued[blocks[i].ID] = true
	}
	for len(worklist) > 0 {
		block := worklist[0]
		worklist = worklist[1:]
		queued[block.ID] = false

		reaching := map[ReferenceType]*RefSet{}
		for _, level := range referenceTypes {
			incoming := reachIn[level][block.ID]
			for _, pred := range graph.Predecessors(block) {
				incoming = incoming.Union(reachOut[level][pred.ID])
			}
			reachIn[level][block.ID] = incoming
			reaching[level] = incoming
		}

		for _, statement := range block.Statements {
			defsUses := a.DefsUses(statement, symbols[statement])
			statementRefs := map[ReferenceType]*RefSet{Definition: NewRefSet(), Update: NewRefSet(), Use: NewRefSet()}
			for _, def := range defsUses.Defs.Items() {
				statementRefs[def.Level].Add(def)
				if _, ok := dependsOn[def.Level]; ok {
					candidates.Add(def)
				}
			}
			for _, use := range defsUses.Uses.Items() {
				if definedHere(defsUses.Defs, use) {
					continue
				}
				statementRefs[Use].Add(use)
				candidates.Add(use)
			}

			for _, level := range referenceTypes {
				for _, ref := range statementRefs[level].Items() {
					for _, source := range dependsOn[level] {
						for _, from := range reaching[source].Items() {
							if from.Name != ref.Name {
								continue
							}
							flows.Add(&Dataflow{From: from.Statement, To: statement})
							satisfied.Add(ref)
						}
					}
				}
			}

			for _, level := range []ReferenceType{Definition, Update} {
				generated := statementRefs[level]
				if generated.Len() == 0 {
					continue
				}
				survives := func(r *Ref) bool {
					return !generated.Some(func(g *Ref) bool { return g.Name == r.Name })
				}
				reaching[Definition] = reaching[Definition].Filter(survives)
				reaching[Update] = reaching[Update].Filter(survives)
			}
			for _, level := range []ReferenceType{Definition, Update} {
				reaching[level] = reaching[level].Union(statementRefs[level])
			}
		}

		changed := false
		for _, level := range referenceTypes {
			if !reaching[level].Equal(reachOut[level][block.ID]) {
				reachOut[level][block.ID] = reaching[level]
				changed = true
			}
		}
		if !changed {
			continue
		}
		for _, succ := range graph.Successors(block) {
			if !queued[succ.ID] {
				worklist = append(worklist, succ)
				queued[succ.ID] = true
			}
		}
	}

	undefined := candidates.Filter(func(r *Ref) bool {
		return !satisfied.Has(r) && !defined[r.Name]
	})
	return &Result{Flows: flows, UndefinedRefs: undefined}
}

// definedHere returns true for a use that the statement itself defines at the same location
func definedHere(defs *RefSet, use *Ref) bool {
	return defs.Some(func(def *Ref) bool {
		return def.Level == Definition && def.Name == use.Name && def.Location == use.Location
	})
}
