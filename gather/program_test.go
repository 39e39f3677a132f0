package gather

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(cells ...Cell) *ProgramBuilder {
	builder := NewProgramBuilder(nil, nil, nil, nil)
	builder.Add(context.Background(), cells...)
	return builder
}

func TestProgramBuilder_BuildTo(t *testing.T) {
	tests := []struct {
		description string
		cells       []*NotebookCell
		anchor      int
		expectText  string
	}{
		{
			description: "earlier cells in order",
			cells: []*NotebookCell{
				NewCell("a = 1", WithExecutionCount(1)),
				NewCell("b = a", WithExecutionCount(2)),
				NewCell("c = b", WithExecutionCount(3)),
			},
			anchor:     2,
			expectText: "a = 1\nb = a\nc = b",
		},
		{
			description: "later cells are left out",
			cells: []*NotebookCell{
				NewCell("a = 1", WithExecutionCount(1)),
				NewCell("b = a", WithExecutionCount(2)),
				NewCell("c = b", WithExecutionCount(3)),
			},
			anchor:     1,
			expectText: "a = 1\nb = a",
		},
		{
			description: "executions from before a restart are excluded",
			cells: []*NotebookCell{
				NewCell("a = 0", WithExecutionCount(3)),
				NewCell("a = 1", WithExecutionCount(1)),
				NewCell("b = a", WithExecutionCount(2)),
			},
			anchor:     2,
			expectText: "a = 1\nb = a",
		},
		{
			description: "the chain stops at a restart",
			cells: []*NotebookCell{
				NewCell("x = 1", WithExecutionCount(1)),
				NewCell("z = 9", WithExecutionCount(4)),
				NewCell("b = x", WithExecutionCount(2)),
			},
			anchor:     2,
			expectText: "b = x",
		},
		{
			description: "failed cells are skipped without breaking the chain",
			cells: []*NotebookCell{
				NewCell("a = 1", WithExecutionCount(1)),
				NewCell("b = (", WithExecutionCount(2)),
				NewCell("c = a", WithExecutionCount(3)),
			},
			anchor:     2,
			expectText: "a = 1\nc = a",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var cells []Cell
			for _, cell := range tc.cells {
				cells = append(cells, cell)
			}
			program := newBuilder(cells...).BuildTo(tc.cells[tc.anchor].ExecutionEventID())
			require.NotNil(t, program)
			assert.Equal(t, tc.expectText, program.Text)
		})
	}
}

func TestProgramBuilder_BuildTo_Locations(t *testing.T) {
	first := NewCell("a = 1\nb = 2", WithExecutionCount(1))
	second := NewCell("for i in a:\n    b += i", WithExecutionCount(2))
	program := newBuilder(first, second).BuildTo(second.ExecutionEventID())
	require.NotNil(t, program)

	require.Len(t, program.Tree.Body, 3)
	loop := program.Tree.Body[2]
	assert.Equal(t, 3, loop.Location.FirstLine)
	assert.Equal(t, 4, loop.Location.LastLine)
	assert.Equal(t, 3, loop.Header.FirstLine)
	assert.Equal(t, 4, loop.Body[0].Location.FirstLine)
	assert.Equal(t, second.ExecutionEventID(), loop.Body[0].ExecutionEventID)

	if diff := cmp.Diff([]int{3, 4}, program.CellToLineMap[second.ExecutionEventID()]); diff != "" {
		t.Errorf("cell lines mismatch (-want +got):\n%s", diff)
	}

	cached := newBuilder(first, second).CellProgram(second.ExecutionEventID())
	require.NotNil(t, cached)
	assert.Equal(t, 1, cached.Statements[0].Location.FirstLine)
}

func TestProgramBuilder_LineRoundTrip(t *testing.T) {
	cells := []Cell{
		NewCell("import os\npath = os.getcwd()\n", WithExecutionCount(1)),
		NewCell("x = 1", WithExecutionCount(2)),
		NewCell("if x:\n    y = path\nelse:\n    y = None", WithExecutionCount(3)),
	}
	program := newBuilder(cells...).BuildTo(cells[2].ExecutionEventID())
	require.NotNil(t, program)

	total := strings.Count(program.Text, "\n") + 1
	for line := 1; line <= total; line++ {
		owner, ok := program.LineToCellMap[line]
		require.True(t, ok, "line %d", line)
		relative := line - program.CellStart(owner.ExecutionEventID()) + 1
		ownerLines := strings.Count(owner.Text(), "\n") + 1
		assert.True(t, relative >= 1 && relative <= ownerLines, "line %d", line)
	}
}

func TestProgramBuilder_ParseFailure(t *testing.T) {
	broken := NewCell("def f(:", WithExecutionCount(1))
	after := NewCell("x = 1", WithExecutionCount(2))
	builder := newBuilder(broken, after)

	failed := builder.CellProgram(broken.ExecutionEventID())
	require.NotNil(t, failed)
	assert.True(t, failed.HasError)
	assert.Empty(t, failed.Statements)

	assert.Nil(t, builder.BuildTo(broken.ExecutionEventID()))
	program := builder.BuildTo(after.ExecutionEventID())
	require.NotNil(t, program)
	assert.Equal(t, "x = 1", program.Text)
}

func TestProgramBuilder_BuildFrom(t *testing.T) {
	cells := []Cell{
		NewCell("a = 1", WithExecutionCount(1)),
		NewCell("b = a", WithExecutionCount(2)),
		NewCell("c = b", WithExecutionCount(3)),
	}
	builder := newBuilder(cells...)
	program := builder.BuildFrom(cells[1].ExecutionEventID())
	require.NotNil(t, program)
	assert.Equal(t, "b = a\nc = b", program.Text)
	assert.Nil(t, builder.BuildFrom("unknown"))
}

func TestProgramBuilder_Reset(t *testing.T) {
	cell := NewCell("a = 1", WithExecutionCount(1))
	builder := newBuilder(cell)
	builder.Reset()
	assert.Nil(t, builder.CellProgram(cell.ExecutionEventID()))
	assert.Nil(t, builder.BuildTo(cell.ExecutionEventID()))
}
