package slicer

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gather/analyzer"
	"github.com/viant/gather/ast"
	"github.com/viant/gather/loc"
	"github.com/viant/gather/parser"
)

func parse(t *testing.T, source string) *ast.Node {
	module, err := parser.New().Parse(context.Background(), source)
	require.NoError(t, err)
	return module
}

func lines(set *loc.LocationSet) []int {
	seen := map[int]bool{}
	var result []int
	for _, location := range set.Items() {
		if !seen[location.FirstLine] {
			seen[location.FirstLine] = true
			result = append(result, location.FirstLine)
		}
	}
	sort.Ints(result)
	return result
}

func point(line int) *loc.LocationSet {
	return loc.NewLocationSet(loc.Location{FirstLine: line, FirstColumn: 0, LastLine: line, LastColumn: 1})
}

func TestSlice(t *testing.T) {
	tests := []struct {
		description string
		source      string
		seedLine    int
		expect      []int
	}{
		{
			description: "control dependency retention",
			source:      "if cond:\n    x = 1\nelse:\n    x = 2\ny = x",
			seedLine:    5,
			expect:      []int{1, 2, 3, 4, 5},
		},
		{
			description: "kill rule",
			source:      "x = 1\nx = 2\ny = x",
			seedLine:    3,
			expect:      []int{2, 3},
		},
		{
			description: "call argument mutation",
			source:      "obj = Obj()\nf(obj)\ny = obj.value",
			seedLine:    3,
			expect:      []int{1, 2, 3},
		},
		{
			description: "non mutating call is dropped",
			source:      "obj = Obj()\nprint(obj)\ny = obj.value",
			seedLine:    3,
			expect:      []int{1, 3},
		},
		{
			description: "unrelated statements are dropped",
			source:      "a = 1\nb = 2\nc = a",
			seedLine:    3,
			expect:      []int{1, 3},
		},
		{
			description: "loop",
			source:      "total = 0\nfor i in xs:\n    total += i\nprint(total)\nunused = 3",
			seedLine:    4,
			expect:      []int{1, 2, 3, 4},
		},
		{
			description: "statement inside a branch pulls its condition",
			source:      "n = 3\nif n > 1:\n    y = 2\nz = 1",
			seedLine:    3,
			expect:      []int{1, 2, 3},
		},
		{
			description: "in place calls are kept",
			source:      "df = load()\ndf.fillna(0, inplace=True)\ndf.dropna(inplace=True)\nprint(df)",
			seedLine:    4,
			expect:      []int{1, 2, 3, 4},
		},
		{
			description: "copying call is dropped",
			source:      "df = load()\nclean = df.dropna()\nprint(df)",
			seedLine:    3,
			expect:      []int{1, 3},
		},
		{
			description: "module receiver in a branch",
			source:      "import numpy as np\nif c:\n    np.random.seed(0)\nx = np.zeros(3)",
			seedLine:    4,
			expect:      []int{1, 4},
		},
		{
			description: "module receiver",
			source:      "import numpy as np\nnp.random.seed(0)\nx = np.zeros(3)",
			seedLine:    3,
			expect:      []int{1, 3},
		},
		{
			description: "function and its free variables",
			source:      "k = 2\ndef f(v):\n    return v * k\nunused = 1\ny = f(3)",
			seedLine:    5,
			expect:      []int{1, 2, 5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			module := parse(t, tc.source)
			actual := Slice(module, point(tc.seedLine), analyzer.New())
			assert.Equal(t, tc.expect, lines(actual))
		})
	}
}

func TestSlice_Idempotent(t *testing.T) {
	module := parse(t, "if cond:\n    x = 1\nelse:\n    x = 2\ny = x\nz = y")
	first := Slice(module, point(5), nil)
	second := Slice(module, first, nil)
	assert.True(t, first.Equal(second))
}

func TestSlice_AllStatements(t *testing.T) {
	module := parse(t, "a = 1\nb = 2\nc = a")
	assert.Equal(t, []int{1, 2, 3}, lines(Slice(module, nil, nil)))
}

func TestSlice_Rules(t *testing.T) {
	tests := []struct {
		description string
		exemption   analyzer.Exemption
		expect      []int
	}{
		{description: "receiver exempt", exemption: analyzer.Exemption{Object: true}, expect: []int{1, 2, 3, 4}},
		{description: "argument exempt", exemption: analyzer.AtPosition(0), expect: []int{2, 4}},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			rule := &analyzer.Rule{FunctionName: "^m$", DoesNotModify: []analyzer.Exemption{tc.exemption}}
			require.NoError(t, rule.Init())
			module := parse(t, "a = A()\nb = B()\na.m(b)\ny = b")
			actual := Slice(module, point(4), analyzer.New(analyzer.WithRules(rule)))
			assert.Equal(t, tc.expect, lines(actual))
		})
	}
}
