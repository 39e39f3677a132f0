package analyzer

import (
	"fmt"
	"github.com/viant/gather/ast"
)

// IRNode represents a statement in the intermediate representation graph.
type IRNode struct {
	ID         string                 `yaml:"id"`
	Type       string                 `yaml:"type"`
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

// IREdge represents a dependency between two statements.
type IREdge struct {
	Source     string                 `yaml:"source"`
	Target     string                 `yaml:"target"`
	Type       string                 `yaml:"type"`
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

// IRGraph holds the nodes and edges for the intermediate representation.
type IRGraph struct {
	Nodes []IRNode `yaml:"nodes"`
	Edges []IREdge `yaml:"edges"`
}

// GraphExporter defines an interface to export an IRGraph to a storage backend (e.g., a file or a graph database).
type GraphExporter interface {
	Export(graph *IRGraph) error
}

// WithGraphExporter registers a GraphExporter used by Export.
func WithGraphExporter(exporter GraphExporter) Option {
	return func(a *Analyzer) {
		a.graphExporter = exporter
	}
}

// Export sends the graph of result to the registered exporter, if any
func (a *Analyzer) Export(result *Result) error {
	if a.graphExporter == nil {
		return nil
	}
	if err := a.graphExporter.Export(result.Graph()); err != nil {
		return fmt.Errorf("failed to export graph: %w", err)
	}
	return nil
}

// normalizeID builds a unique statement ID combining its execution event and location.
func normalizeID(node *ast.Node) string {
	return fmt.Sprintf("%s:%s", node.ExecutionEventID, node.Location)
}

// Graph builds an IRGraph with one node per statement taking part in a flow and one edge per flow
func (r *Result) Graph() *IRGraph {
	graph := &IRGraph{}
	seen := map[string]bool{}
	addNode := func(node *ast.Node) string {
		id := normalizeID(node)
		if seen[id] {
			return id
		}
		seen[id] = true
		graph.Nodes = append(graph.Nodes, IRNode{
			ID:   id,
			Type: node.Kind.String(),
			Properties: map[string]interface{}{
				"executionEventId": node.ExecutionEventID,
				"firstLine":        node.Location.FirstLine,
				"lastLine":         node.Location.LastLine,
			},
		})
		return id
	}
	for _, flow := range r.Flows.Items() {
		if flow.From == nil || flow.To == nil {
			continue
		}
		edge := IREdge{
			Source: addNode(flow.From),
			Target: addNode(flow.To),
			Type:   "dataflow",
		}
		if names := r.flowNames(flow); len(names) > 0 {
			edge.Properties = map[string]interface{}{"names": names}
		}
		graph.Edges = append(graph.Edges, edge)
	}
	for _, ref := range r.UndefinedRefs.Items() {
		if ref.Statement == nil {
			continue
		}
		id := addNode(ref.Statement)
		for i := range graph.Nodes {
			if graph.Nodes[i].ID != id {
				continue
			}
			undefined, _ := graph.Nodes[i].Properties["undefined"].([]string)
			graph.Nodes[i].Properties["undefined"] = append(undefined, ref.Name)
		}
	}
	return graph
}

// flowNames returns names mentioned by both ends of flow
func (r *Result) flowNames(flow *Dataflow) []string {
	var names []string
	seen := map[string]bool{}
	sources := map[string]bool{}
	for _, node := range ast.Nodes(flow.From) {
		if node.Kind == ast.Name {
			sources[node.Name] = true
		}
	}
	for _, node := range ast.Nodes(flow.To) {
		if node.Kind == ast.Name && sources[node.Name] && !seen[node.Name] {
			seen[node.Name] = true
			names = append(names, node.Name)
		}
	}
	return names
}
