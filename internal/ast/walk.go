package ast

// Inspect traverses the tree rooted at node in depth-first order, calling fn
// for each node. If fn returns false the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	for _, child := range children(node) {
		Inspect(child, fn)
	}
}

func children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *File:
		for _, s := range n.Stmts {
			add(s)
		}
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *Param:
		add(&n.Name, n.Type)
	case *Case:
		if !n.Default {
			add(&n.Pattern)
		}
		for _, s := range n.Body {
			add(s)
		}
	case *FieldInit:
		add(n.Value)

	case *ListLit:
		for _, e := range n.Elements {
			add(e)
		}
	case *TupleLit:
		for _, e := range n.Elements {
			add(e)
		}
	case *BinaryExpr:
		add(n.Left, n.Right)
	case *UnaryExpr:
		add(n.Operand)
	case *FieldAccessExpr:
		add(n.Target)
	case *IndexExpr:
		add(n.Target, n.Index)
	case *CallExpr:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *StructLit:
		for _, f := range n.Fields {
			add(f)
		}

	case *ExprStmt:
		add(n.Expr)
	case *AssignStmt:
		add(n.Target, n.Value)
	case *LetStmt:
		add(&n.Name, n.Type, n.Value)
	case *IfStmt:
		add(n.Cond, n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *ForStmt:
		add(&n.Var, n.VarType, n.Iterable, n.Body)
	case *WhileStmt:
		add(n.Cond, n.Body)
	case *SwitchStmt:
		add(n.Subject)
		for _, c := range n.Cases {
			add(c)
		}
	case *ReturnStmt:
		if n.Value != nil {
			add(n.Value)
		}
	case *FuncDecl:
		add(&n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Return, n.Body)
	case *StructDecl:
		add(&n.Name)
		for _, m := range n.Members {
			add(m)
		}
	case *EnumDecl:
		add(&n.Name)
		for i := range n.Variants {
			add(&n.Variants[i])
		}
	case *FlagDecl:
		add(&n.Name)
		for i := range n.Variants {
			add(&n.Variants[i])
		}

	case *PointerType:
		add(n.Elem)
	case *ArrayType:
		add(n.Elem)
	case *TupleType:
		for _, e := range n.Elems {
			add(e)
		}
	}

	return out
}
