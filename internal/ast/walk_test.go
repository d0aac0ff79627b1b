package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInspectVisitsInSourceOrder(t *testing.T) {
	// let x: I64 = a + f(b);
	stmt := &LetStmt{
		Name: Ident{Name: "x"},
		Type: &NamedType{Name: "I64"},
		Value: &BinaryExpr{
			Left: ident("a"),
			Op:   ADD,
			Right: &CallExpr{
				Callee: ident("f"),
				Args:   []Expr{ident("b")},
			},
		},
	}

	var names []string
	Inspect(stmt, func(n Node) bool {
		switch n := n.(type) {
		case *Ident:
			names = append(names, "decl:"+n.Name)
		case *IdentExpr:
			names = append(names, n.Name)
		case *NamedType:
			names = append(names, "type:"+n.Name)
		}
		return true
	})

	assert.Equal(t, []string{"decl:x", "type:I64", "a", "f", "b"}, names)
}

func TestInspectSkipsChildren(t *testing.T) {
	fn := &FuncDecl{
		Name:   Ident{Name: "main"},
		Return: &UnitType{},
		Body: &Block{Stmts: []Stmt{
			&ExprStmt{Expr: &CallExpr{Callee: ident("print"), Args: []Expr{intLit(42)}}},
		}},
	}

	count := 0
	Inspect(fn, func(n Node) bool {
		count++
		_, isBlock := n.(*Block)
		return !isBlock
	})

	// FuncDecl, Ident, UnitType, Block
	assert.Equal(t, 4, count)
}

func TestInspectHandlesOptionalChildren(t *testing.T) {
	file := &File{Stmts: []Stmt{
		&ReturnStmt{},
		&IfStmt{Cond: ident("ok"), Then: &Block{}},
		&SwitchStmt{Subject: ident("s"), Cases: []*Case{{Default: true}}},
	}}

	var kinds []string
	Inspect(file, func(n Node) bool {
		switch n.(type) {
		case *ReturnStmt:
			kinds = append(kinds, "return")
		case *IfStmt:
			kinds = append(kinds, "if")
		case *Case:
			kinds = append(kinds, "case")
		case *Ident:
			kinds = append(kinds, "ident")
		}
		return true
	})

	assert.Equal(t, []string{"return", "if", "case"}, kinds)
}
