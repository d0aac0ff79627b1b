package ast

// IntLit represents integer literals in any radix
// Example: "42", "0xDEADBEEF", "0b00101110"
type IntLit struct {
	Pos   Position
	Value int64
}

// FloatLit represents decimal float literals
// Example: "3.14"
type FloatLit struct {
	Pos   Position
	Value float64
}

// IdentExpr represents a reference to a name
// Example: "amount", "empty?", "True"
type IdentExpr struct {
	Pos  Position
	Name string
}

// StringLit holds the raw text between the quotes, escapes untouched.
// Example: "\"Hello, World!\""
type StringLit struct {
	Pos   Position
	Value string
}

// CharLit represents character literals
// Example: "'a'", "'''", "'\\n'"
type CharLit struct {
	Pos   Position
	Value rune
}

// ListLit represents list literals
// Example: "[1, 2, 3]"
type ListLit struct {
	Pos      Position
	Elements []Expr
}

// TupleLit represents tuple literals. The empty tuple is the unit value.
// Example: "(1, 2)", "(x,)", "()"
type TupleLit struct {
	Pos      Position
	Elements []Expr
}

// BinaryExpr represents binary operations, including the for-loop range.
// Example: "a + b", "x and y", "0..10"
type BinaryExpr struct {
	Pos   Position
	Left  Expr
	Op    Operator
	Right Expr
}

// UnaryExpr represents prefix operations
// Example: "not done", "-x", "~mask", "&value", "*ptr"
type UnaryExpr struct {
	Pos     Position
	Op      Operator
	Operand Expr
}

// FieldAccessExpr represents `.field`; `p->field` is a FieldAccessExpr on a DEREF.
// Example: "v.x", "node->next"
type FieldAccessExpr struct {
	Pos    Position
	Target Expr
	Field  string
}

// IndexExpr represents subscripts
// Example: "items[i + 1]"
type IndexExpr struct {
	Pos    Position
	Target Expr
	Index  Expr
}

// CallExpr represents calls on any callee expression
// Example: "print(42)", "obj.method()"
type CallExpr struct {
	Pos    Position
	Callee Expr
	Args   []Expr
}

// StructLit represents struct literals
// Example: "Vec2 { .x = 0, .y = 1 }"
type StructLit struct {
	Pos    Position
	Name   string
	Fields []*FieldInit
}

// FieldInit is one `.name = value` entry of a struct literal.
type FieldInit struct {
	Pos   Position
	Name  string
	Value Expr
}
