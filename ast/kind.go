package ast

// Kind identifies the syntax construct a Node represents
type Kind int

const (
	Other Kind = iota
	Module

	// statements
	Import
	From
	Assign
	Def
	Class
	If
	Elif
	Else
	For
	While
	Try
	Handler
	Finally
	With
	Return
	Raise
	Break
	Continue
	Pass
	Global
	Nonlocal
	Del
	Assert
	Expr

	// expressions
	Name
	Dot
	Index
	Slice
	Call
	Arg
	Param
	Literal
	Binary
	Unary
	IfExpr
	Lambda
	Tuple
	List
	Set
	Dict
	Pair
	Comprehension
	CompFor
	CompIf
	Starred
	Yield
	Await
	WithItem
	Alias

	kindCount
)

var kindNames = [kindCount]string{
	Other:         "other",
	Module:        "module",
	Import:        "import",
	From:          "from",
	Assign:        "assign",
	Def:           "def",
	Class:         "class",
	If:            "if",
	Elif:          "elif",
	Else:          "else",
	For:           "for",
	While:         "while",
	Try:           "try",
	Handler:       "handler",
	Finally:       "finally",
	With:          "with",
	Return:        "return",
	Raise:         "raise",
	Break:         "break",
	Continue:      "continue",
	Pass:          "pass",
	Global:        "global",
	Nonlocal:      "nonlocal",
	Del:           "del",
	Assert:        "assert",
	Expr:          "expr",
	Name:          "name",
	Dot:           "dot",
	Index:         "index",
	Slice:         "slice",
	Call:          "call",
	Arg:           "arg",
	Param:         "param",
	Literal:       "literal",
	Binary:        "binary",
	Unary:         "unary",
	IfExpr:        "ifexpr",
	Lambda:        "lambda",
	Tuple:         "tuple",
	List:          "list",
	Set:           "set",
	Dict:          "dict",
	Pair:          "pair",
	Comprehension: "comprehension",
	CompFor:       "compfor",
	CompIf:        "compif",
	Starred:       "starred",
	Yield:         "yield",
	Await:         "await",
	WithItem:      "withitem",
	Alias:         "alias",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsStatement returns true for kinds that appear in statement position
func (k Kind) IsStatement() bool {
	return k >= Import && k <= Expr
}

// IsCompound returns true for statements that own a suite
func (k Kind) IsCompound() bool {
	switch k {
	case Def, Class, If, Elif, Else, For, While, Try, Handler, Finally, With:
		return true
	}
	return false
}
