// Package slicer computes backward program slices
package slicer

import (
	"github.com/viant/gather/analyzer"
	"github.com/viant/gather/analyzer/cfg"
	"github.com/viant/gather/ast"
	"github.com/viant/gather/loc"
)

// Slice returns the locations of statements of module needed to preserve the meaning of seeds.
// A nil seeds set slices the whole program. A nil analyzer uses a default one.
func Slice(module *ast.Node, seeds *loc.LocationSet, dataflow *analyzer.Analyzer) *loc.LocationSet {
	if dataflow == nil {
		dataflow = analyzer.New()
	}
	graph := cfg.New(module.Body)
	flows := dataflow.Analyze(graph).Flows
	for _, dependency := range graph.ControlDependencies() {
		flows.Add(&analyzer.Dataflow{From: dependency.From, To: dependency.To})
	}

	seedStatements := loc.NewLocationSet()
	for _, statement := range graph.Statements() {
		if seeds == nil || loc.Intersects(seeds, statement.Location) {
			seedStatements.Add(statement.Location)
		}
	}

	sliced := seedStatements.Union()
	for {
		size := sliced.Len()
		for _, flow := range flows.Items() {
			if seeds == nil ||
				loc.Intersects(seedStatements, flow.To.Location) ||
				loc.ContainsWithin(sliced, flow.To.Location) {
				sliced.Add(flow.From.Location)
			}
		}
		if sliced.Len() == size {
			return sliced
		}
	}
}
