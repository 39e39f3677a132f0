package analyzer

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/viant/gather/ast"
	"github.com/viant/gather/loc"
)

// SymbolType is the kind of symbol a reference names
type SymbolType int

const (
	Variable SymbolType = iota
	Class
	Function
	Import
	Mutation
	Magic
)

var symbolTypeNames = [...]string{"variable", "class", "function", "import", "mutation", "magic"}

func (t SymbolType) String() string {
	if t < 0 || int(t) >= len(symbolTypeNames) {
		return "unknown"
	}
	return symbolTypeNames[t]
}

// ReferenceType is the level of a reference
type ReferenceType int

const (
	// Definition binds a fresh value to a name
	Definition ReferenceType = iota
	// Update mutates the object bound to a name
	Update
	// Use reads a name
	Use
)

var referenceTypeNames = [...]string{"definition", "update", "use"}

func (t ReferenceType) String() string {
	if t < 0 || int(t) >= len(referenceTypeNames) {
		return "unknown"
	}
	return referenceTypeNames[t]
}

var referenceTypes = []ReferenceType{Definition, Update, Use}

// dependsOn lists the levels a reference of a given level takes its value from
var dependsOn = map[ReferenceType][]ReferenceType{
	Use:    {Update, Definition},
	Update: {Update, Definition},
}

// Ref is a reference to a symbol made by a statement
type Ref struct {
	Type      SymbolType
	Level     ReferenceType
	Name      string
	Location  loc.Location
	Statement *ast.Node
}

func (r *Ref) String() string {
	return fmt.Sprintf("%v %v %s@%v", r.Level, r.Type, r.Name, r.Location)
}

type refKey struct {
	name     string
	level    ReferenceType
	location loc.Location
}

func keyOfRef(r *Ref) refKey {
	return refKey{name: r.Name, level: r.Level, location: r.Location}
}

// RefSet is a set of references identified by name, level and location
type RefSet = loc.Set[refKey, *Ref]

// NewRefSet creates a reference set
func NewRefSet(refs ...*Ref) *RefSet {
	return loc.NewSet(keyOfRef, refs...)
}

// Dataflow is an edge from a statement to a statement depending on its effect
type Dataflow struct {
	From *ast.Node
	To   *ast.Node
}

func (d *Dataflow) String() string {
	return fmt.Sprintf("%v -> %v", d.From.Location, d.To.Location)
}

type flowKey struct {
	from ast.NodeID
	to   ast.NodeID
}

func keyOfFlow(d *Dataflow) flowKey {
	return flowKey{from: d.From.ID(), to: d.To.ID()}
}

// FlowSet is a set of dataflow edges identified by the execution event and location of both ends
type FlowSet = loc.Set[flowKey, *Dataflow]

// NewFlowSet creates a flow set
func NewFlowSet(flows ...*Dataflow) *FlowSet {
	return loc.NewSet(keyOfFlow, flows...)
}

// DefsUses holds what a statement defines and what it reads
type DefsUses struct {
	Defs *RefSet
	Uses *RefSet
}

// SymbolTable holds names collected while analyzing statements in order
type SymbolTable struct {
	ModuleNames map[string]bool
}

// NewSymbolTable creates an empty symbol table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{ModuleNames: map[string]bool{}}
}

// Record adds the names statement imports
func (s *SymbolTable) Record(statement *ast.Node) {
	for _, name := range importedNames(statement) {
		s.ModuleNames[name] = true
	}
}

// Clone returns a copy of the symbol table
func (s *SymbolTable) Clone() *SymbolTable {
	return &SymbolTable{ModuleNames: maps.Clone(s.ModuleNames)}
}

func (s *SymbolTable) key() string {
	names := slices.Sorted(maps.Keys(s.ModuleNames))
	return strings.Join(names, ",")
}
