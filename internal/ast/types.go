package ast

// PointerType is written `&T`.
type PointerType struct {
	Pos  Position
	Elem Type
}

// ArrayType is written `[T]`.
type ArrayType struct {
	Pos  Position
	Elem Type
}

// NamedType refers to a type by name, e.g. I64 or Person.
type NamedType struct {
	Pos  Position
	Name string
}

// TupleType is written `(A, B)`.
type TupleType struct {
	Pos   Position
	Elems []Type
}

// UnitType is written `()` and stands in for an absent return type.
type UnitType struct {
	Pos Position
}
