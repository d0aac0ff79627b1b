package ast

// File is the root of a parsed source: its top-level statements in order.
type File struct {
	Pos   Position
	Stmts []Stmt
}

// Ident is a declared name: a variable, parameter, member, variant or pattern.
type Ident struct {
	Pos  Position
	Name string
}

// Block is a braced statement list.
// Example: "{ let a: I64 = 1; return a; }"
type Block struct {
	Pos   Position
	Stmts []Stmt
}

// Param is a `name: Type` pair, used for function parameters and struct members.
// Example: "n: I64", "friend: &Person"
type Param struct {
	Pos  Position
	Name Ident
	Type Type
}

// Case is one arm of a switch. Default arms have no pattern.
// Example: "case Hi: return 0;", "default: return 1;"
type Case struct {
	Pos     Position
	Pattern Ident
	Default bool
	Body    []Stmt
}

// ExprStmt represents expression statements
// Example: "print(42);"
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

// AssignStmt represents plain and compound assignments. Target is an
// identifier, field access or subscript; that is not checked while parsing.
// Example: "a = b;", "x.total += 1;"
type AssignStmt struct {
	Pos    Position
	Target Expr
	Op     Operator
	Value  Expr
}

// LetStmt represents variable declarations
// Example: "let foo: I64 = 42;", "let mut i: I64 = 0;"
type LetStmt struct {
	Pos     Position
	Name    Ident
	Mutable bool
	Type    Type
	Value   Expr
}

// IfStmt represents if/else. An `else if` is an Else block whose only
// statement is another IfStmt.
// Example: "if (a < b) { return a; } else { return b; }"
type IfStmt struct {
	Pos  Position
	Cond Expr
	Then *Block
	Else *Block // nil when there is no else branch
}

// ForStmt represents for-in loops
// Example: "for i: I64 in (0..n) { a += i; }"
type ForStmt struct {
	Pos      Position
	Var      Ident
	VarType  Type
	Iterable Expr
	Body     *Block
}

// WhileStmt represents while loops
// Example: "while (i < 10) { i += 1; }"
type WhileStmt struct {
	Pos  Position
	Cond Expr
	Body *Block
}

// SwitchStmt represents switch statements
// Example: "switch (a) { case Hi: return 0; default: return 1; }"
type SwitchStmt struct {
	Pos     Position
	Subject Expr
	Cases   []*Case
}

// ReturnStmt represents return statements
// Example: "return;", "return a + b;"
type ReturnStmt struct {
	Pos   Position
	Value Expr // nil for a unit return
}

// FuncDecl represents function declarations. Return is UnitType when no
// `->` annotation was written.
// Example: "fn fib(n: I64) -> I64 { ... }"
type FuncDecl struct {
	Pos    Position
	Name   Ident
	Params []*Param
	Return Type
	Body   *Block
}

// StructDecl represents struct declarations
// Example: "struct Vec2 { x: F64, y: F64 }"
type StructDecl struct {
	Pos     Position
	Name    Ident
	Members []*Param
}

// EnumDecl represents enum declarations
// Example: "enum Bool { False, True }"
type EnumDecl struct {
	Pos      Position
	Name     Ident
	Variants []Ident
}

// FlagDecl represents bit-flag enum declarations
// Example: "flag Features { Feature1, Feature2 }"
type FlagDecl struct {
	Pos      Position
	Name     Ident
	Variants []Ident
}
