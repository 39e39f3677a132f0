package analyzer

import (
	"encoding/json"
	"github.com/viant/gather/ast"
	"github.com/viant/gather/loc"
	"regexp"
)

var annotationExpr = regexp.MustCompile(`defs:\s*(\[.*\])`)

// annotatedDef is one entry of a "defs: [...]" annotation; Pos holds [line, column] pairs
// relative to the annotation's first line
type annotatedDef struct {
	Name string  `json:"name"`
	Pos  [][]int `json:"pos"`
}

// annotatedDefs reads magic definitions from "defs: <json>" string literals
func (a *Analyzer) annotatedDefs(statement *ast.Node) []*Ref {
	var result []*Ref
	inspectExpressions(statement, func(n *ast.Node) {
		if n.Kind != ast.Literal {
			return
		}
		match := annotationExpr.FindStringSubmatch(n.Literal)
		if match == nil {
			return
		}
		var annotated []*annotatedDef
		if err := json.Unmarshal([]byte(match[1]), &annotated); err != nil {
			a.logger.WithError(err).WithField("location", n.Location.String()).Debug("ignored malformed defs annotation")
			return
		}
		for _, def := range annotated {
			if def == nil || def.Name == "" || len(def.Pos) != 2 || len(def.Pos[0]) != 2 || len(def.Pos[1]) != 2 {
				continue
			}
			result = append(result, &Ref{
				Type:  Magic,
				Level: Definition,
				Name:  def.Name,
				Location: loc.Location{
					FirstLine:   n.Location.FirstLine + def.Pos[0][0],
					FirstColumn: def.Pos[0][1],
					LastLine:    n.Location.FirstLine + def.Pos[1][0],
					LastColumn:  def.Pos[1][1],
				},
				Statement: statement,
			})
		}
	})
	return result
}
