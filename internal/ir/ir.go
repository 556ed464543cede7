// Package ir defines the three-address intermediate representation:
// operands, instructions, the textual listing format, the AST→IR
// compiler and the optimizer.
package ir

import (
	"fmt"
	"strings"
)

// OpCode identifies a three-address instruction.
type OpCode int

const (
	// Arithmetic
	ADD OpCode = iota
	SUB
	MUL
	DIV

	// Comparison (result is 1 or 0)
	CMP_EQ
	CMP_NE
	CMP_LT
	CMP_GT

	// Assignment and immediate load
	ASSIGN
	LOAD_IMM

	// Control flow
	LABEL
	JMP
	JMP_IF_ZERO

	// Output
	PRINT
)

// opCodeNames maps opcodes to their listing names.
var opCodeNames = [...]string{
	ADD:         "ADD",
	SUB:         "SUB",
	MUL:         "MUL",
	DIV:         "DIV",
	CMP_EQ:      "CMP_EQ",
	CMP_NE:      "CMP_NE",
	CMP_LT:      "CMP_LT",
	CMP_GT:      "CMP_GT",
	ASSIGN:      "ASSIGN",
	LOAD_IMM:    "LOAD_IMM",
	LABEL:       "LABEL",
	JMP:         "JMP",
	JMP_IF_ZERO: "JMP_IF_ZERO",
	PRINT:       "PRINT",
}

// String returns the listing name of the opcode.
func (op OpCode) String() string {
	if int(op) < len(opCodeNames) {
		return opCodeNames[op]
	}
	return "UNKNOWN_OP"
}

// IsArithmetic returns true for ADD, SUB, MUL and DIV.
func (op OpCode) IsArithmetic() bool {
	return op >= ADD && op <= DIV
}

// IsComparison returns true for the CMP_* opcodes.
func (op OpCode) IsComparison() bool {
	return op >= CMP_EQ && op <= CMP_GT
}

// IsBinary returns true for instructions of shape R = A <OP> B.
func (op OpCode) IsBinary() bool {
	return op.IsArithmetic() || op.IsComparison()
}

// OperandKind is the type tag of an Operand.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandVariable
	OperandTemp
	OperandLiteral
	OperandLabel
)

// operandKindNames maps operand kinds to their debug names.
var operandKindNames = [...]string{
	OperandNone:     "NONE",
	OperandVariable: "VAR",
	OperandTemp:     "TEMP",
	OperandLiteral:  "LIT",
	OperandLabel:    "LABEL",
}

// String returns the debug name of the operand kind.
func (k OperandKind) String() string {
	if int(k) < len(operandKindNames) {
		return operandKindNames[k]
	}
	return "UNKNOWN"
}

// Operand is a tagged value used inside IR instructions: exactly one
// of nothing, a source variable, a generator temporary, an integer
// literal, or a label name. Variables, temporaries and labels carry a
// non-empty name; literals carry only a value.
type Operand struct {
	Name  string
	Value int32
	Kind  OperandKind
}

// None returns the empty operand.
func None() Operand {
	return Operand{Kind: OperandNone}
}

// Variable returns an operand naming a source variable.
func Variable(name string) Operand {
	return Operand{Kind: OperandVariable, Name: name}
}

// Temp returns an operand naming a generator temporary.
func Temp(name string) Operand {
	return Operand{Kind: OperandTemp, Name: name}
}

// Literal returns an integer literal operand.
func Literal(v int32) Operand {
	return Operand{Kind: OperandLiteral, Value: v}
}

// LabelRef returns an operand naming a label.
func LabelRef(name string) Operand {
	return Operand{Kind: OperandLabel, Name: name}
}

// IsNone reports whether the operand is empty.
func (o Operand) IsNone() bool { return o.Kind == OperandNone }

// IsLiteral reports whether the operand is an integer literal.
func (o Operand) IsLiteral() bool { return o.Kind == OperandLiteral }

// IsLabel reports whether the operand names a label.
func (o Operand) IsLabel() bool { return o.Kind == OperandLabel }

// IsValue reports whether the operand is value-bearing: a literal, a
// variable or a temporary.
func (o Operand) IsValue() bool {
	return o.Kind == OperandVariable || o.Kind == OperandTemp || o.Kind == OperandLiteral
}

// String renders the operand for the IR listing: variables and
// temporaries by name, literals as decimal, labels by name.
func (o Operand) String() string {
	switch o.Kind {
	case OperandVariable, OperandTemp, OperandLabel:
		return o.Name
	case OperandLiteral:
		return fmt.Sprintf("%d", o.Value)
	default:
		return ""
	}
}

// Instruction is one three-address instruction. Index is assigned
// after the instruction list is finalized and re-assigned after
// optimization.
type Instruction struct {
	Result Operand
	Arg1   Operand
	Arg2   Operand
	Op     OpCode
	Index  int
}

// String renders the instruction in the listing format: `III: body`
// with a zero-padded 3-digit index, except LABEL lines which render
// as `Lname: LABEL`.
func (in Instruction) String() string {
	if in.Op == LABEL {
		return fmt.Sprintf("%s: %s", in.Arg1.Name, in.Op)
	}

	var body string
	switch {
	case in.Op.IsBinary():
		body = fmt.Sprintf("%s = %s %s %s", in.Result, in.Arg1, in.Op, in.Arg2)
	case in.Op == ASSIGN || in.Op == LOAD_IMM:
		body = fmt.Sprintf("%s = %s", in.Result, in.Arg1)
	case in.Op == JMP:
		body = fmt.Sprintf("%s %s", in.Op, in.Arg1.Name)
	case in.Op == JMP_IF_ZERO:
		body = fmt.Sprintf("%s %s, %s", in.Op, in.Arg1, in.Arg2.Name)
	case in.Op == PRINT:
		body = fmt.Sprintf("%s %s", in.Op, in.Arg1)
	default:
		body = "UNKNOWN INSTRUCTION"
	}
	return fmt.Sprintf("%03d: %s", in.Index, body)
}

// Program is an ordered sequence of instructions; the entry point is
// index 0. Every label name is distinct and every jump target matches
// exactly one LABEL.
type Program []Instruction

// Reindex assigns sequential indices 0..N-1 to the instructions.
func (p Program) Reindex() {
	for i := range p {
		p[i].Index = i
	}
}

// String renders the whole program as a listing, one instruction per
// line.
func (p Program) String() string {
	var sb strings.Builder
	for _, in := range p {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
