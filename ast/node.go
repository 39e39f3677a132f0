package ast

import (
	"github.com/viant/gather/loc"
)

// Node is a syntax tree node. Fields are used depending on Kind:
//
//	Module:        Body
//	Import:        Args (Alias)
//	From:          Path (module), Args (Alias; Path "*" for a wildcard)
//	Assign:        Targets, Sources, Op (augmented operator, e.g. "+=")
//	Def:           Name, Args (Param), Body, Decorators
//	Class:         Name, Args (Arg bases), Body, Decorators
//	If/Elif:       Test, Body, Elifs (If only), Else
//	Else/Finally:  Body; Location is the header
//	For:           Targets, Sources (iterable), Body, Else; Header is the declaration
//	While:         Test, Body, Else
//	Try:           Body, Handlers, Else, Finally
//	Handler:       Value (exception type), Name (bound name), Body; Location is the header
//	With:          Sources (WithItem), Body
//	WithItem:      Value (context), Targets (as target)
//	Return/Yield/Await/Expr/Starred: Value
//	Raise/Assert/Del: Args
//	Global/Nonlocal: Names
//	Name:          Name
//	Dot:           Value (receiver), Name (attribute)
//	Index:         Value, Args (subscripts)
//	Call:          Value (callee), Args (Arg)
//	Arg:           Name (keyword), Value, Op ("*" or "**")
//	Param:         Name, Value (default), Op ("*" or "**")
//	Literal:       Literal (source text), Args (f-string interpolations)
//	Binary/Unary:  Op, Args
//	IfExpr:        Test, Args (then, else)
//	Lambda:        Args (Param), Value (body)
//	Tuple/List/Set/Dict/Slice/Other: Args
//	Pair:          Args (key, value)
//	Comprehension: Op (list, set, dict, generator), Value (element), Args (CompFor, CompIf)
//	CompFor:       Targets, Sources
//	CompIf:        Test
//	Alias:         Path (dotted name), Name (as name)
type Node struct {
	Kind     Kind
	Location loc.Location
	// Header is the span of a compound statement header, up to and including the colon
	Header loc.Location
	// ExecutionEventID tags the node with the cell execution it was parsed from
	ExecutionEventID string

	Name    string
	Path    string
	Op      string
	Literal string
	Names   []string

	Decorators []*Node
	Value      *Node
	Test       *Node
	Targets    []*Node
	Sources    []*Node
	Args       []*Node
	Body       []*Node
	Elifs      []*Node
	Else       *Node
	Handlers   []*Node
	Finally    *Node
}

// Children returns direct child nodes in source order
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var result []*Node
	appendNodes := func(nodes ...*Node) {
		for _, node := range nodes {
			if node != nil {
				result = append(result, node)
			}
		}
	}
	appendNodes(n.Decorators...)
	switch n.Kind {
	case Comprehension:
		appendNodes(n.Value)
		appendNodes(n.Args...)
	case Lambda:
		appendNodes(n.Args...)
		appendNodes(n.Value)
	case IfExpr:
		if len(n.Args) > 0 {
			appendNodes(n.Args[0])
		}
		appendNodes(n.Test)
		if len(n.Args) > 1 {
			appendNodes(n.Args[1:]...)
		}
	default:
		appendNodes(n.Targets...)
		appendNodes(n.Value, n.Test)
		appendNodes(n.Sources...)
		appendNodes(n.Args...)
	}
	appendNodes(n.Body...)
	appendNodes(n.Elifs...)
	appendNodes(n.Else)
	appendNodes(n.Handlers...)
	appendNodes(n.Finally)
	return result
}

// ID returns the identity of a node within a history of executions
func (n *Node) ID() NodeID {
	return NodeID{ExecutionEventID: n.ExecutionEventID, Location: n.Location}
}

// NodeID identifies a node by its execution event and location
type NodeID struct {
	ExecutionEventID string
	Location         loc.Location
}

// NewName creates a name node
func NewName(name string, location loc.Location) *Node {
	return &Node{Kind: Name, Name: name, Location: location}
}
