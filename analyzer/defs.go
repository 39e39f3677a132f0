package analyzer

import (
	"strings"

	"github.com/viant/gather/ast"
)

// Defs returns the references statement defines or updates
func (a *Analyzer) Defs(statement *ast.Node, symbols *SymbolTable) *RefSet {
	defs := NewRefSet()
	if statement == nil {
		return defs
	}
	switch statement.Kind {
	case ast.Import, ast.From:
		for _, alias := range statement.Args {
			name := importedName(statement, alias)
			if name == "" {
				continue
			}
			defs.Add(&Ref{Type: Import, Level: Definition, Name: name, Location: alias.Location, Statement: statement})
		}
	case ast.Assign:
		for _, target := range statement.Targets {
			defs.Add(targetRefs(target, Definition, statement)...)
		}
	case ast.Def:
		defs.Add(&Ref{Type: Function, Level: Definition, Name: statement.Name, Location: statement.Location, Statement: statement})
	case ast.Class:
		defs.Add(&Ref{Type: Class, Level: Definition, Name: statement.Name, Location: statement.Location, Statement: statement})
	case ast.Handler:
		if statement.Name != "" {
			defs.Add(&Ref{Type: Variable, Level: Definition, Name: statement.Name, Location: statement.Location, Statement: statement})
		}
	}
	defs.Add(a.callMutations(statement, symbols)...)
	defs.Add(a.annotatedDefs(statement)...)
	return defs
}

func importedName(statement, alias *ast.Node) string {
	name := alias.Name
	if name == "" {
		name = alias.Path
		if statement.Kind == ast.Import {
			// import a.b binds a
			name = strings.SplitN(alias.Path, ".", 2)[0]
		}
	}
	if name == "*" {
		return ""
	}
	return name
}

func importedNames(statement *ast.Node) []string {
	if statement.Kind != ast.Import && statement.Kind != ast.From {
		return nil
	}
	var result []string
	for _, alias := range statement.Args {
		if name := importedName(statement, alias); name != "" {
			result = append(result, name)
		}
	}
	return result
}

// targetRefs returns references made by assigning to target: bare names are defined, objects
// reached through attributes or subscripts are updated
func targetRefs(target *ast.Node, level ReferenceType, statement *ast.Node) []*Ref {
	if target == nil {
		return nil
	}
	switch target.Kind {
	case ast.Name:
		return []*Ref{{Type: Variable, Level: level, Name: target.Name, Location: target.Location, Statement: statement}}
	case ast.Tuple, ast.List:
		var result []*Ref
		for _, item := range target.Args {
			result = append(result, targetRefs(item, level, statement)...)
		}
		return result
	case ast.Starred:
		return targetRefs(target.Value, level, statement)
	case ast.Dot, ast.Index:
		return targetRefs(target.Value, Update, statement)
	}
	return nil
}

// callMutations assumes every call modifies its arguments and receiver unless a rule says otherwise.
// A call passing inplace=True always modifies its receiver.
func (a *Analyzer) callMutations(statement *ast.Node, symbols *SymbolTable) []*Ref {
	var result []*Ref
	mutated := func(name *ast.Node) {
		result = append(result, &Ref{Type: Mutation, Level: Update, Name: name.Name, Location: name.Location, Statement: statement})
	}
	inspectExpressions(statement, func(n *ast.Node) {
		if n.Kind != ast.Call || n.Value == nil {
			return
		}
		objectName, functionName := "", n.Value.Name
		var receiver *ast.Node
		switch n.Value.Kind {
		case ast.Dot:
			receiver = n.Value.Value
			objectName = dottedName(receiver)
		case ast.Name:
		default:
			functionName = ""
		}
		exempt := exemptions(a.rules, objectName, functionName)
		if receiver != nil && (inPlace(n) || !exemptsObject(exempt)) {
			for _, name := range gatherNames(receiver) {
				if !symbols.ModuleNames[name.Name] {
					mutated(name)
				}
			}
		}
		position := 0
		for _, arg := range n.Args {
			index := -1
			if arg.Name == "" && arg.Op == "" {
				index = position
				position++
			}
			if exemptsArgument(exempt, index, arg.Name) {
				continue
			}
			for _, name := range gatherNames(arg.Value) {
				mutated(name)
			}
		}
	})
	return result
}

func inPlace(call *ast.Node) bool {
	for _, arg := range call.Args {
		if arg.Name != "inplace" || arg.Value == nil {
			continue
		}
		return !(arg.Value.Kind == ast.Literal && (arg.Value.Literal == "False" || arg.Value.Literal == "None"))
	}
	return false
}

func exemptsObject(exempt []Exemption) bool {
	for _, e := range exempt {
		if e.Object {
			return true
		}
	}
	return false
}

func exemptsArgument(exempt []Exemption, position int, keyword string) bool {
	for _, e := range exempt {
		switch {
		case e.Arguments:
			return true
		case position >= 0 && e.Position != nil && *e.Position == position:
			return true
		case keyword != "" && e.Keyword == keyword:
			return true
		}
	}
	return false
}
