package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gather/analyzer"
	"github.com/viant/gather/loc"
	"gopkg.in/yaml.v3"
)

func uploadCells(t *testing.T, texts ...string) []string {
	ctx := context.Background()
	var URLs []string
	for i, text := range texts {
		URL := "mem://localhost/" + t.Name() + "/cell" + string(rune('a'+i)) + ".py"
		require.NoError(t, fs.Upload(ctx, URL, 0644, strings.NewReader(text)))
		URLs = append(URLs, URL)
	}
	return URLs
}

func execute(args ...string) (string, error) {
	sliceCell, sliceLines, sliceRules, sliceFormat, graphCell = "", "", "", "", ""
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSliceCommand(t *testing.T) {
	URLs := uploadCells(t, "a = 1\n", "z = 2\n", "b = a + 1\nc = z\n")

	output, err := execute(append([]string{"slice"}, URLs...)...)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nz = 2\nb = a + 1\nc = z\n", output)

	output, err = execute(append([]string{"slice", "--lines", "1"}, URLs...)...)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb = a + 1\n", output)

	output, err = execute(append([]string{"slice", "--cell", URLs[1]}, URLs...)...)
	require.NoError(t, err)
	assert.Equal(t, "z = 2\n", output)

	output, err = execute(append([]string{"slice", "--lines", "1", "--format", "yaml"}, URLs...)...)
	require.NoError(t, err)
	var cells []*cellOutput
	require.NoError(t, yaml.Unmarshal([]byte(output), &cells))
	assert.Equal(t, []*cellOutput{
		{Cell: URLs[0], Count: 1, Lines: []int{1}, Text: "a = 1"},
		{Cell: URLs[2], Count: 3, Lines: []int{1}, Text: "b = a + 1"},
	}, cells)
}

func TestSliceCommand_Errors(t *testing.T) {
	URLs := uploadCells(t, "a = 1\n")

	_, err := execute("slice", "mem://localhost/missing/cell.py")
	assert.Error(t, err)

	_, err = execute("slice", "--cell", "mem://localhost/other.py", URLs[0])
	assert.Error(t, err)

	_, err = execute("slice", "--lines", "x-2", URLs[0])
	assert.Error(t, err)

	_, err = execute("slice", "--rules", "mem://localhost/missing/rules.yaml", URLs[0])
	assert.Error(t, err)
}

func TestGraphCommand(t *testing.T) {
	URLs := uploadCells(t, "a = 1\n", "b = a + 1\n")

	output, err := execute(append([]string{"graph"}, URLs...)...)
	require.NoError(t, err)
	graph := &analyzer.IRGraph{}
	require.NoError(t, yaml.Unmarshal([]byte(output), graph))
	assert.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, "dataflow", graph.Edges[0].Type)
}

func TestVersionCommand(t *testing.T) {
	output, err := execute("version")
	require.NoError(t, err)
	assert.Equal(t, "gather version dev\n", output)
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		description string
		spec        string
		expect      []loc.Location
		expectErr   bool
	}{
		{description: "empty", spec: ""},
		{description: "single line", spec: "3", expect: []loc.Location{{FirstLine: 3, LastLine: 3, LastColumn: 10000}}},
		{description: "range", spec: "2-4", expect: []loc.Location{{FirstLine: 2, LastLine: 4, LastColumn: 10000}}},
		{description: "reversed", spec: "4-2", expectErr: true},
		{description: "zero", spec: "0-1", expectErr: true},
		{description: "not a number", spec: "a-b", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			seeds, err := parseLines(tc.spec)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.expect == nil {
				assert.Nil(t, seeds)
				return
			}
			assert.Equal(t, tc.expect, seeds.Items())
		})
	}
}
