// Package interp executes optimized three-address IR against a
// variable store.
package interp

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-minilang/internal/errors"
	"github.com/cwbudde/go-minilang/internal/ir"
)

// Interpreter executes an IR program with a program counter and a
// name→value store. The store is populated lazily on first write;
// reading an unset name is a runtime error. Arithmetic is 32-bit
// two's-complement, so overflow wraps around.
//
// Runtime diagnostics carry the IR instruction index in lieu of a
// source line. The first runtime error aborts execution.
type Interpreter struct {
	memory    map[string]int32
	labels    map[string]int
	sink      *errors.Sink
	out       io.Writer
	trace     io.Writer
	stepLimit int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithTrace makes the interpreter write a `PC nnn: instruction` line
// to w before executing each instruction.
func WithTrace(w io.Writer) Option {
	return func(i *Interpreter) {
		i.trace = w
	}
}

// WithStepLimit aborts execution with a runtime error after n
// executed instructions. Zero means no limit. Batch drivers use this
// as a safety net against non-terminating loops.
func WithStepLimit(n int) Option {
	return func(i *Interpreter) {
		i.stepLimit = n
	}
}

// New creates an Interpreter writing print output to out and
// reporting runtime errors to sink.
func New(out io.Writer, sink *errors.Sink, opts ...Option) *Interpreter {
	i := &Interpreter{
		memory: make(map[string]int32),
		out:    out,
		sink:   sink,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// runtimeError wraps a runtime fault with the index of the faulting
// instruction.
type runtimeError struct {
	msg   string
	index int
}

func (e *runtimeError) Error() string {
	return fmt.Sprintf("runtime error at index %d: %s", e.index, e.msg)
}

// buildLabelTable binds each label name to the index of the following
// instruction. Duplicate labels are a logic error from upstream.
func (i *Interpreter) buildLabelTable(code ir.Program) error {
	i.labels = make(map[string]int)
	for idx, in := range code {
		if in.Op != ir.LABEL {
			continue
		}
		name := in.Arg1.Name
		if _, dup := i.labels[name]; dup {
			return fmt.Errorf("duplicate label %q at index %d", name, idx)
		}
		i.labels[name] = idx + 1
	}
	return nil
}

// readOperand evaluates a value-bearing operand: a literal yields its
// stored value, a variable or temporary yields the store entry.
func (i *Interpreter) readOperand(op ir.Operand, index int) (int32, error) {
	switch op.Kind {
	case ir.OperandLiteral:
		return op.Value, nil
	case ir.OperandVariable, ir.OperandTemp:
		v, ok := i.memory[op.Name]
		if !ok {
			return 0, &runtimeError{
				msg:   fmt.Sprintf("Variable/Temp '%s' used before assignment", op.Name),
				index: index,
			}
		}
		return v, nil
	default:
		return 0, &runtimeError{
			msg:   fmt.Sprintf("attempt to read value from %s operand", op.Kind),
			index: index,
		}
	}
}

// writeOperand stores a value into a variable or temporary.
func (i *Interpreter) writeOperand(target ir.Operand, value int32, index int) error {
	if target.Kind != ir.OperandVariable && target.Kind != ir.OperandTemp {
		return &runtimeError{
			msg:   fmt.Sprintf("attempt to write value to %s operand", target.Kind),
			index: index,
		}
	}
	i.memory[target.Name] = value
	return nil
}

// jumpTarget resolves a label name to its instruction index.
func (i *Interpreter) jumpTarget(in ir.Instruction, label string) (int, error) {
	target, ok := i.labels[label]
	if !ok {
		return 0, &runtimeError{
			msg:   fmt.Sprintf("Undefined label target for %s: %s", in.Op, label),
			index: in.Index,
		}
	}
	return target, nil
}

// Execute runs the program from index 0 until the program counter
// passes the last instruction or a runtime error occurs. The first
// runtime error is registered in the sink and returned.
func (i *Interpreter) Execute(code ir.Program) error {
	if len(code) == 0 {
		return nil
	}

	if err := i.buildLabelTable(code); err != nil {
		i.sink.Add(errors.Runtime, err.Error(), 0, 0)
		return err
	}

	steps := 0
	pc := 0
	for pc < len(code) {
		in := code[pc]
		nextPC := pc + 1

		if i.trace != nil {
			fmt.Fprintf(i.trace, "PC %03d: %s\n", pc, in)
		}

		if i.stepLimit > 0 {
			steps++
			if steps > i.stepLimit {
				err := &runtimeError{
					msg:   fmt.Sprintf("step limit of %d instructions exceeded", i.stepLimit),
					index: in.Index,
				}
				i.sink.Add(errors.Runtime, err.msg, err.index, 0)
				return err
			}
		}

		jump, err := i.step(in)
		if err != nil {
			var rtErr *runtimeError
			if re, ok := err.(*runtimeError); ok {
				rtErr = re
			} else {
				rtErr = &runtimeError{msg: err.Error(), index: in.Index}
			}
			i.sink.Add(errors.Runtime, rtErr.msg, rtErr.index, 0)
			return rtErr
		}
		if jump >= 0 {
			nextPC = jump
		}

		pc = nextPC
	}
	return nil
}

// step executes one instruction and returns the jump target, or -1 to
// fall through to the next instruction.
func (i *Interpreter) step(in ir.Instruction) (int, error) {
	switch {
	case in.Op.IsArithmetic():
		return -1, i.stepArithmetic(in)
	case in.Op.IsComparison():
		return -1, i.stepComparison(in)
	}

	switch in.Op {
	case ir.ASSIGN, ir.LOAD_IMM:
		value, err := i.readOperand(in.Arg1, in.Index)
		if err != nil {
			return -1, err
		}
		return -1, i.writeOperand(in.Result, value, in.Index)

	case ir.LABEL:
		return -1, nil

	case ir.JMP:
		return i.jumpTarget(in, in.Arg1.Name)

	case ir.JMP_IF_ZERO:
		value, err := i.readOperand(in.Arg1, in.Index)
		if err != nil {
			return -1, err
		}
		if value == 0 {
			return i.jumpTarget(in, in.Arg2.Name)
		}
		return -1, nil

	case ir.PRINT:
		value, err := i.readOperand(in.Arg1, in.Index)
		if err != nil {
			return -1, err
		}
		fmt.Fprintf(i.out, "PRINT OUTPUT: %d\n", value)
		return -1, nil

	default:
		return -1, &runtimeError{
			msg:   fmt.Sprintf("unknown opcode %s", in.Op),
			index: in.Index,
		}
	}
}

func (i *Interpreter) stepArithmetic(in ir.Instruction) error {
	a, err := i.readOperand(in.Arg1, in.Index)
	if err != nil {
		return err
	}
	b, err := i.readOperand(in.Arg2, in.Index)
	if err != nil {
		return err
	}

	var result int32
	switch in.Op {
	case ir.ADD:
		result = a + b
	case ir.SUB:
		result = a - b
	case ir.MUL:
		result = a * b
	case ir.DIV:
		if b == 0 {
			return &runtimeError{msg: "Division by zero at runtime", index: in.Index}
		}
		result = a / b
	}
	return i.writeOperand(in.Result, result, in.Index)
}

func (i *Interpreter) stepComparison(in ir.Instruction) error {
	a, err := i.readOperand(in.Arg1, in.Index)
	if err != nil {
		return err
	}
	b, err := i.readOperand(in.Arg2, in.Index)
	if err != nil {
		return err
	}

	var truth bool
	switch in.Op {
	case ir.CMP_EQ:
		truth = a == b
	case ir.CMP_NE:
		truth = a != b
	case ir.CMP_LT:
		truth = a < b
	case ir.CMP_GT:
		truth = a > b
	}

	var result int32
	if truth {
		result = 1
	}
	return i.writeOperand(in.Result, result, in.Index)
}
