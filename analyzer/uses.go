package analyzer

import (
	"github.com/viant/gather/analyzer/cfg"
	"github.com/viant/gather/ast"
)

// Uses returns the references statement reads
func (a *Analyzer) Uses(statement *ast.Node, symbols *SymbolTable) *RefSet {
	uses := NewRefSet()
	if statement == nil {
		return uses
	}
	use := func(name *ast.Node) {
		uses.Add(&Ref{Type: Variable, Level: Use, Name: name.Name, Location: name.Location, Statement: statement})
	}
	switch statement.Kind {
	case ast.Assign:
		for _, source := range statement.Sources {
			freeNames(source, nil, use)
		}
		for _, target := range statement.Targets {
			if statement.Op != "" {
				// an augmented assignment reads its target before writing it
				for _, name := range gatherNames(target) {
					uses.Add(&Ref{Type: Variable, Level: Use, Name: name.Name, Location: statement.Location, Statement: statement})
				}
			}
			inspectExpressions(target, func(n *ast.Node) {
				if n.Kind == ast.Index {
					for _, subscript := range n.Args {
						freeNames(subscript, nil, use)
					}
				}
			})
		}
	case ast.Def:
		uses = uses.Union(a.functionUses(statement))
		for _, param := range statement.Args {
			freeNames(param.Value, nil, use)
		}
		for _, decorator := range statement.Decorators {
			freeNames(decorator, nil, use)
		}
	case ast.Class, ast.Import, ast.From:
	case ast.Handler:
		freeNames(statement.Value, nil, use)
	default:
		freeNames(statement, nil, use)
	}
	return uses
}

// functionUses returns the free variables of a function body as uses located at the definition
func (a *Analyzer) functionUses(def *ast.Node) *RefSet {
	var params []string
	for _, param := range def.Args {
		params = append(params, param.Name)
	}
	result := a.Analyze(cfg.NewFunction(def), params...)
	uses := NewRefSet()
	for _, ref := range result.UndefinedRefs.Items() {
		uses.Add(&Ref{Type: ref.Type, Level: Use, Name: ref.Name, Location: def.Location, Statement: def})
	}
	return uses
}
