package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gather/loc"
)

func line(n, from, to int) loc.Location {
	return loc.Location{FirstLine: n, FirstColumn: from, LastLine: n, LastColumn: to}
}

func forLoop() *Node {
	// for x in xs:
	//     total += x
	return &Node{
		Kind:     For,
		Location: loc.Location{FirstLine: 1, FirstColumn: 0, LastLine: 2, LastColumn: 14},
		Header:   line(1, 0, 12),
		Targets:  []*Node{NewName("x", line(1, 4, 5))},
		Sources:  []*Node{NewName("xs", line(1, 9, 11))},
		Body: []*Node{{
			Kind:     Assign,
			Op:       "+=",
			Location: line(2, 4, 14),
			Targets:  []*Node{NewName("total", line(2, 4, 9))},
			Sources:  []*Node{NewName("x", line(2, 13, 14))},
		}},
	}
}

func TestClone(t *testing.T) {
	original := forLoop()
	original.Names = []string{"a"}
	clone := Clone(original)
	assert.Equal(t, original, clone)

	clone.Body[0].Targets[0].Name = "other"
	clone.Names[0] = "b"
	Shift(clone, 3)

	assert.Equal(t, "total", original.Body[0].Targets[0].Name)
	assert.Equal(t, "a", original.Names[0])
	assert.Equal(t, 1, original.Location.FirstLine)
	assert.Equal(t, line(1, 0, 12), original.Header)
}

func TestShift(t *testing.T) {
	node := forLoop()
	Shift(node, 4)
	assert.Equal(t, line(5, 0, 12), node.Header)
	assert.Equal(t, loc.Location{FirstLine: 5, FirstColumn: 0, LastLine: 6, LastColumn: 14}, node.Location)
	for _, n := range Nodes(node.Body[0]) {
		assert.Equal(t, 6, n.Location.FirstLine)
	}
}

func TestWalk(t *testing.T) {
	node := forLoop()
	var kinds []Kind
	var depths []int
	Walk(node, func(n *Node, ancestors []*Node) bool {
		kinds = append(kinds, n.Kind)
		depths = append(depths, len(ancestors))
		return true
	})
	assert.Equal(t, []Kind{For, Name, Name, Assign, Name, Name}, kinds)
	assert.Equal(t, []int{0, 1, 1, 1, 2, 2}, depths)

	var visited int
	Inspect(node, func(n *Node) bool {
		visited++
		return n.Kind != Assign
	})
	assert.Equal(t, 4, visited)

	Tag(node, "evt-1")
	for _, n := range Nodes(node) {
		assert.Equal(t, "evt-1", n.ExecutionEventID)
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "assign", Assign.String())
	assert.Equal(t, "unknown", Kind(-1).String())
	assert.True(t, Expr.IsStatement())
	assert.False(t, Name.IsStatement())
	assert.True(t, For.IsCompound())
	assert.False(t, Assign.IsCompound())
}
