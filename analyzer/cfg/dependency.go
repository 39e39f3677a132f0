package cfg

import (
	"golang.org/x/tools/container/intsets"

	"github.com/viant/gather/ast"
)

// PostDominators returns, per block id, the set of block ids post-dominating the block
func (g *Graph) PostDominators() []*intsets.Sparse {
	all := &intsets.Sparse{}
	for _, block := range g.blocks {
		all.Insert(block.ID)
	}
	result := make([]*intsets.Sparse, len(g.blocks))
	for _, block := range g.blocks {
		result[block.ID] = &intsets.Sparse{}
		if block == g.exit {
			result[block.ID].Insert(block.ID)
			continue
		}
		result[block.ID].Copy(all)
	}

	for changed := true; changed; {
		changed = false
		for i := len(g.blocks) - 1; i >= 0; i-- {
			block := g.blocks[i]
			if block == g.exit {
				continue
			}
			next := &intsets.Sparse{}
			for j, succ := range g.successors[block.ID] {
				if j == 0 {
					next.Copy(result[succ.ID])
					continue
				}
				next.IntersectionWith(result[succ.ID])
			}
			next.Insert(block.ID)
			if !next.Equals(result[block.ID]) {
				result[block.ID] = next
				changed = true
			}
		}
	}
	return result
}

// immediatePostDominators returns the immediate post-dominator id per block id, -1 for none
func immediatePostDominators(pdom []*intsets.Sparse) []int {
	result := make([]int, len(pdom))
	for id, set := range pdom {
		result[id] = -1
		var members []int
		for _, candidate := range set.AppendTo(members) {
			if candidate != id && pdom[candidate].Len() == set.Len()-1 {
				result[id] = candidate
				break
			}
		}
	}
	return result
}

// ControlDependencies returns dependencies of statements on the headers of the constructs
// that decide whether they execute: the blocks they nest in and the branches they follow
func (g *Graph) ControlDependencies() []Dependency {
	type key struct{ from, to *ast.Node }
	seen := map[key]bool{}
	var result []Dependency
	add := func(dependency Dependency) {
		k := key{dependency.From, dependency.To}
		if seen[k] || dependency.From == dependency.To {
			return
		}
		seen[k] = true
		result = append(result, dependency)
	}
	for _, dependency := range g.structural {
		add(dependency)
	}

	pdom := g.PostDominators()
	ipdom := immediatePostDominators(pdom)
	for _, from := range g.blocks {
		if len(from.Statements) == 0 {
			continue
		}
		controller := from.Statements[len(from.Statements)-1]
		for _, to := range g.successors[from.ID] {
			if pdom[from.ID].Has(to.ID) {
				continue
			}
			// every block on the post-dominator tree path from to up to ipdom(from) depends on from
			stop := ipdom[from.ID]
			for runner := to.ID; runner != -1 && runner != stop; runner = ipdom[runner] {
				if runner == from.ID {
					continue
				}
				for _, stmt := range g.blocks[runner].Statements {
					add(Dependency{From: controller, To: stmt})
				}
			}
		}
	}
	return result
}
