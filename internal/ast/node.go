package ast

import "github.com/alecthomas/participle/v2/lexer"

// Position tracks location information for error reporting and tooling.
type Position = lexer.Position

type Node interface {
	NodePos() Position
	String() string
}

type Expr interface {
	Node
	isExpr()
}

type Stmt interface {
	Node
	isStmt()
}

type Type interface {
	Node
	isType()
}

func (*IntLit) isExpr()          {}
func (*FloatLit) isExpr()        {}
func (*IdentExpr) isExpr()       {}
func (*StringLit) isExpr()       {}
func (*CharLit) isExpr()         {}
func (*ListLit) isExpr()         {}
func (*TupleLit) isExpr()        {}
func (*BinaryExpr) isExpr()      {}
func (*UnaryExpr) isExpr()       {}
func (*FieldAccessExpr) isExpr() {}
func (*IndexExpr) isExpr()       {}
func (*CallExpr) isExpr()        {}
func (*StructLit) isExpr()       {}

func (*ExprStmt) isStmt()   {}
func (*AssignStmt) isStmt() {}
func (*LetStmt) isStmt()    {}
func (*IfStmt) isStmt()     {}
func (*ForStmt) isStmt()    {}
func (*WhileStmt) isStmt()  {}
func (*SwitchStmt) isStmt() {}
func (*ReturnStmt) isStmt() {}
func (*FuncDecl) isStmt()   {}
func (*StructDecl) isStmt() {}
func (*EnumDecl) isStmt()   {}
func (*FlagDecl) isStmt()   {}

func (*PointerType) isType() {}
func (*ArrayType) isType()   {}
func (*NamedType) isType()   {}
func (*TupleType) isType()   {}
func (*UnitType) isType()    {}

func (f *File) NodePos() Position      { return f.Pos }
func (i *Ident) NodePos() Position     { return i.Pos }
func (b *Block) NodePos() Position     { return b.Pos }
func (p *Param) NodePos() Position     { return p.Pos }
func (c *Case) NodePos() Position      { return c.Pos }
func (f *FieldInit) NodePos() Position { return f.Pos }

func (l *IntLit) NodePos() Position          { return l.Pos }
func (l *FloatLit) NodePos() Position        { return l.Pos }
func (i *IdentExpr) NodePos() Position       { return i.Pos }
func (l *StringLit) NodePos() Position       { return l.Pos }
func (l *CharLit) NodePos() Position         { return l.Pos }
func (l *ListLit) NodePos() Position         { return l.Pos }
func (t *TupleLit) NodePos() Position        { return t.Pos }
func (b *BinaryExpr) NodePos() Position      { return b.Pos }
func (u *UnaryExpr) NodePos() Position       { return u.Pos }
func (f *FieldAccessExpr) NodePos() Position { return f.Pos }
func (i *IndexExpr) NodePos() Position       { return i.Pos }
func (c *CallExpr) NodePos() Position        { return c.Pos }
func (s *StructLit) NodePos() Position       { return s.Pos }

func (e *ExprStmt) NodePos() Position   { return e.Pos }
func (a *AssignStmt) NodePos() Position { return a.Pos }
func (l *LetStmt) NodePos() Position    { return l.Pos }
func (i *IfStmt) NodePos() Position     { return i.Pos }
func (f *ForStmt) NodePos() Position    { return f.Pos }
func (w *WhileStmt) NodePos() Position  { return w.Pos }
func (s *SwitchStmt) NodePos() Position { return s.Pos }
func (r *ReturnStmt) NodePos() Position { return r.Pos }
func (f *FuncDecl) NodePos() Position   { return f.Pos }
func (s *StructDecl) NodePos() Position { return s.Pos }
func (e *EnumDecl) NodePos() Position   { return e.Pos }
func (f *FlagDecl) NodePos() Position   { return f.Pos }

func (t *PointerType) NodePos() Position { return t.Pos }
func (t *ArrayType) NodePos() Position   { return t.Pos }
func (t *NamedType) NodePos() Position   { return t.Pos }
func (t *TupleType) NodePos() Position   { return t.Pos }
func (t *UnitType) NodePos() Position    { return t.Pos }
