package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// The printer writes every binary and unary node inside parentheses, so two
// trees print identically exactly when they have the same shape.

func (f *File) String() string {
	var b strings.Builder
	for i, stmt := range f.Stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.String())
	}
	return b.String()
}

func (i *Ident) String() string {
	return i.Name
}

func (b *Block) String() string {
	return writeBlock(b.Stmts)
}

func writeBlock(stmts []Stmt) string {
	if len(stmts) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, stmt := range stmts {
		b.WriteString("  " + strings.ReplaceAll(stmt.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (p *Param) String() string {
	return fmt.Sprintf("%s: %s", p.Name.Name, p.Type.String())
}

func (c *Case) String() string {
	var b strings.Builder
	if c.Default {
		b.WriteString("default:")
	} else {
		b.WriteString(fmt.Sprintf("case %s:", c.Pattern.Name))
	}
	for _, stmt := range c.Body {
		b.WriteString("\n  " + strings.ReplaceAll(stmt.String(), "\n", "\n  "))
	}
	return b.String()
}

func (f *FieldInit) String() string {
	return fmt.Sprintf(".%s = %s", f.Name, f.Value.String())
}

// Expressions

func (l *IntLit) String() string {
	return strconv.FormatInt(l.Value, 10)
}

func (l *FloatLit) String() string {
	s := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

func (i *IdentExpr) String() string {
	return i.Name
}

func (l *StringLit) String() string {
	return `"` + l.Value + `"`
}

func (l *CharLit) String() string {
	switch l.Value {
	case '\n':
		return `'\n'`
	case '\t':
		return `'\t'`
	case '\r':
		return `'\r'`
	case 0:
		return `'\0'`
	case '\\':
		return `'\\'`
	case '\'':
		return `'\''`
	}
	return "'" + string(l.Value) + "'"
}

func (l *ListLit) String() string {
	return "[" + joinExprs(l.Elements) + "]"
}

func (t *TupleLit) String() string {
	if len(t.Elements) == 1 {
		return "(" + t.Elements[0].String() + ",)"
	}
	return "(" + joinExprs(t.Elements) + ")"
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

func (u *UnaryExpr) String() string {
	if u.Op == NOT {
		return fmt.Sprintf("(not %s)", u.Operand.String())
	}
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand.String())
}

func (f *FieldAccessExpr) String() string {
	return fmt.Sprintf("%s.%s", f.Target.String(), f.Field)
}

func (i *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", i.Target.String(), i.Index.String())
}

func (c *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", c.Callee.String(), joinExprs(c.Args))
}

func (s *StructLit) String() string {
	if len(s.Fields) == 0 {
		return s.Name + " {}"
	}
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s { %s }", s.Name, strings.Join(parts, ", "))
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// Statements

func (e *ExprStmt) String() string {
	return e.Expr.String() + ";"
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s %s %s;", a.Target.String(), a.Op, a.Value.String())
}

func (l *LetStmt) String() string {
	mut := ""
	if l.Mutable {
		mut = "mut "
	}
	return fmt.Sprintf("let %s%s: %s = %s;", mut, l.Name.Name, l.Type.String(), l.Value.String())
}

func (i *IfStmt) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("if (%s) %s", i.Cond.String(), i.Then.String()))
	if i.Else == nil {
		return b.String()
	}
	if len(i.Else.Stmts) == 1 {
		if elseIf, ok := i.Else.Stmts[0].(*IfStmt); ok {
			b.WriteString(" else " + elseIf.String())
			return b.String()
		}
	}
	b.WriteString(" else " + i.Else.String())
	return b.String()
}

func (f *ForStmt) String() string {
	return fmt.Sprintf("for %s: %s in %s %s", f.Var.Name, f.VarType.String(), f.Iterable.String(), f.Body.String())
}

func (w *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", w.Cond.String(), w.Body.String())
}

func (s *SwitchStmt) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("switch (%s) {", s.Subject.String()))
	if len(s.Cases) == 0 {
		b.WriteString("}")
		return b.String()
	}
	b.WriteString("\n")
	for _, c := range s.Cases {
		b.WriteString(c.String() + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value.String())
}

func (f *FuncDecl) String() string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(f.Name.Name)
	b.WriteString("(")
	for i, param := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.String())
	}
	b.WriteString(")")

	if _, unit := f.Return.(*UnitType); !unit && f.Return != nil {
		b.WriteString(" -> ")
		b.WriteString(f.Return.String())
	}

	b.WriteString(" ")
	b.WriteString(f.Body.String())
	return b.String()
}

func (s *StructDecl) String() string {
	if len(s.Members) == 0 {
		return fmt.Sprintf("struct %s {}", s.Name.Name)
	}
	parts := make([]string, len(s.Members))
	for i, m := range s.Members {
		parts[i] = m.String()
	}
	return fmt.Sprintf("struct %s { %s }", s.Name.Name, strings.Join(parts, ", "))
}

func (e *EnumDecl) String() string {
	return writeVariants("enum", e.Name, e.Variants)
}

func (f *FlagDecl) String() string {
	return writeVariants("flag", f.Name, f.Variants)
}

func writeVariants(keyword string, name Ident, variants []Ident) string {
	if len(variants) == 0 {
		return fmt.Sprintf("%s %s {}", keyword, name.Name)
	}
	parts := make([]string, len(variants))
	for i, v := range variants {
		parts[i] = v.Name
	}
	return fmt.Sprintf("%s %s { %s }", keyword, name.Name, strings.Join(parts, ", "))
}

// Types

func (t *PointerType) String() string {
	return "&" + t.Elem.String()
}

func (t *ArrayType) String() string {
	return "[" + t.Elem.String() + "]"
}

func (t *NamedType) String() string {
	return t.Name
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *UnitType) String() string {
	return "()"
}
