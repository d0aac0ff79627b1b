package ast

import "fmt"

type Operator int

const (
	// Special / error
	ILLEGAL_OP Operator = iota

	// Assignment
	ASSIGN
	ADD_ASSIGN
	SUB_ASSIGN
	MUL_ASSIGN
	DIV_ASSIGN
	MOD_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN
	AND_ASSIGN
	XOR_ASSIGN
	OR_ASSIGN

	// Logical
	OR
	AND
	NOT

	// Comparison
	EQUAL
	NOT_EQUAL
	LESS
	GREATER
	LESS_EQUAL
	GREATER_EQUAL

	// Bitwise
	BIT_OR
	BIT_XOR
	BIT_AND
	BIT_NOT
	SHL
	SHR

	// Arithmetic
	ADD
	SUB
	MUL
	DIV
	MOD
	NEG

	// Pointers
	ADDRESS
	DEREF

	RANGE
)

var operatorSpellings = [...]string{
	ILLEGAL_OP: "<illegal>",

	ASSIGN:     "=",
	ADD_ASSIGN: "+=",
	SUB_ASSIGN: "-=",
	MUL_ASSIGN: "*=",
	DIV_ASSIGN: "/=",
	MOD_ASSIGN: "%=",
	SHL_ASSIGN: "<<=",
	SHR_ASSIGN: ">>=",
	AND_ASSIGN: "&=",
	XOR_ASSIGN: "^=",
	OR_ASSIGN:  "|=",

	OR:  "or",
	AND: "and",
	NOT: "not",

	EQUAL:         "==",
	NOT_EQUAL:     "!=",
	LESS:          "<",
	GREATER:       ">",
	LESS_EQUAL:    "<=",
	GREATER_EQUAL: ">=",

	BIT_OR:  "|",
	BIT_XOR: "^",
	BIT_AND: "&",
	BIT_NOT: "~",
	SHL:     "<<",
	SHR:     ">>",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	DIV: "/",
	MOD: "%",
	NEG: "-",

	ADDRESS: "&",
	DEREF:   "*",

	RANGE: "..",
}

// String returns the operator as it is spelled in source.
func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorSpellings) {
		return operatorSpellings[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

func (op Operator) IsAssign() bool {
	return op >= ASSIGN && op <= OR_ASSIGN
}
