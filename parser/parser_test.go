package parser

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gather/ast"
	"gopkg.in/yaml.v3"
)

type statementSummary struct {
	Kind  string   `yaml:"kind"`
	First int      `yaml:"first"`
	Last  int      `yaml:"last"`
	Names []string `yaml:"names,omitempty"`
	Paths []string `yaml:"paths,omitempty"`
}

func summarize(module *ast.Node) []*statementSummary {
	var result []*statementSummary
	for _, stmt := range module.Body {
		summary := &statementSummary{Kind: stmt.Kind.String(), First: stmt.Location.FirstLine, Last: stmt.Location.LastLine}
		for _, n := range ast.Nodes(stmt) {
			switch n.Kind {
			case ast.Name:
				summary.Names = append(summary.Names, n.Name)
			case ast.Alias:
				summary.Paths = append(summary.Paths, n.Path)
			}
		}
		result = append(result, summary)
	}
	return result
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		description string
		source      string
		expectYaml  string
	}{
		{
			description: "assignments",
			source:      "x = 1\ny = x + 1",
			expectYaml: `- kind: assign
  first: 1
  last: 1
  names: [x]
- kind: assign
  first: 2
  last: 2
  names: [y, x]`,
		},
		{
			description: "imports",
			source:      "import numpy as np\nfrom os import path, sep",
			expectYaml: `- kind: import
  first: 1
  last: 1
  paths: [numpy]
- kind: from
  first: 2
  last: 2
  paths: [path, sep]`,
		},
		{
			description: "function with default",
			source:      "def f(a, b=c):\n    return a + b",
			expectYaml: `- kind: def
  first: 1
  last: 2
  names: [c, a, b]`,
		},
		{
			description: "class",
			source:      "class A(Base):\n    pass",
			expectYaml: `- kind: class
  first: 1
  last: 2
  names: [Base]`,
		},
		{
			description: "if else",
			source:      "if cond:\n    x = 1\nelse:\n    x = 2",
			expectYaml: `- kind: if
  first: 1
  last: 4
  names: [cond, x, x]`,
		},
		{
			description: "for loop",
			source:      "for i in range(n):\n    total += i",
			expectYaml: `- kind: for
  first: 1
  last: 2
  names: [i, range, n, total, i]`,
		},
		{
			description: "with statement",
			source:      "with open(p) as f:\n    data = f.read()",
			expectYaml: `- kind: with
  first: 1
  last: 2
  names: [f, open, p, data, f]`,
		},
		{
			description: "try statement",
			source:      "try:\n    x = f()\nexcept ValueError as e:\n    x = None",
			expectYaml: `- kind: try
  first: 1
  last: 4
  names: [x, f, ValueError, x]`,
		},
	}

	parser := New()
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			module, err := parser.Parse(context.Background(), tc.source)
			if !assert.NoError(t, err) {
				return
			}
			var expect []*statementSummary
			if err = yaml.Unmarshal([]byte(tc.expectYaml), &expect); !assert.Nil(t, err) {
				return
			}
			actual := summarize(module)
			if !assert.EqualValues(t, expect, actual) {
				data, _ := yaml.Marshal(actual)
				fmt.Println("ACTUAL:", string(data))
			}
		})
	}
}

func TestParser_Details(t *testing.T) {
	parser := New()

	module, err := parser.Parse(context.Background(), "for i in range(n):\n    total += i")
	if !assert.NoError(t, err) {
		return
	}
	loop := module.Body[0]
	assert.Equal(t, 1, loop.Header.FirstLine)
	assert.Equal(t, 1, loop.Header.LastLine)
	assert.Equal(t, 18, loop.Header.LastColumn)
	assert.Equal(t, "+=", loop.Body[0].Op)

	module, err = parser.Parse(context.Background(), "try:\n    x = f()\nexcept ValueError as e:\n    x = None")
	if !assert.NoError(t, err) {
		return
	}
	handler := module.Body[0].Handlers[0]
	assert.Equal(t, "e", handler.Name)
	assert.Equal(t, 3, handler.Location.FirstLine)
	assert.Equal(t, 3, handler.Location.LastLine)

	module, err = parser.Parse(context.Background(), "a = b = 1")
	if !assert.NoError(t, err) {
		return
	}
	assert.Len(t, module.Body[0].Targets, 2)
	assert.Len(t, module.Body[0].Sources, 1)
}

func TestParser_SyntaxError(t *testing.T) {
	_, err := New().Parse(context.Background(), "x = = 1")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}
