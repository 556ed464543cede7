package ir

import (
	"fmt"

	"github.com/cwbudde/go-minilang/internal/ast"
)

// Compiler walks the AST and produces a flat three-address
// instruction list. It keeps a counter for fresh temporaries
// (T1, T2, …), a counter for fresh labels (L1, L2, …) and a result
// slot that bubbles expression results up the traversal.
type Compiler struct {
	code         Program
	result       Operand
	tempCounter  int
	labelCounter int
}

// NewCompiler creates a new IR compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile lowers a program AST into an indexed instruction list.
// The compiler is reset first, so one Compiler can compile several
// programs in sequence.
func (c *Compiler) Compile(program *ast.Program) Program {
	c.code = nil
	c.result = None()
	c.tempCounter = 0
	c.labelCounter = 0

	if program == nil {
		return nil
	}

	c.compileProgram(program)
	c.code.Reindex()
	return c.code
}

// newTemp allocates a fresh temporary operand.
func (c *Compiler) newTemp() Operand {
	c.tempCounter++
	return Temp(fmt.Sprintf("T%d", c.tempCounter))
}

// newLabel allocates a fresh label operand.
func (c *Compiler) newLabel() Operand {
	c.labelCounter++
	return LabelRef(fmt.Sprintf("L%d", c.labelCounter))
}

// emit appends an instruction to the code list.
func (c *Compiler) emit(op OpCode, result, arg1, arg2 Operand) {
	c.code = append(c.code, Instruction{Op: op, Result: result, Arg1: arg1, Arg2: arg2, Index: -1})
}

// operatorOpCode maps a source operator lexeme to its IR opcode.
func operatorOpCode(operator string) OpCode {
	switch operator {
	case "+":
		return ADD
	case "-":
		return SUB
	case "*":
		return MUL
	case "/":
		return DIV
	case "==":
		return CMP_EQ
	case "!=":
		return CMP_NE
	case "<":
		return CMP_LT
	case ">":
		return CMP_GT
	default:
		panic(fmt.Sprintf("ir: no opcode for operator %q", operator))
	}
}

func (c *Compiler) compileProgram(program *ast.Program) {
	for _, stmt := range program.Statements {
		c.compileStatement(stmt)
	}
}

func (c *Compiler) compileStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		// Declarations have no runtime effect.
	case *ast.AssignStatement:
		c.compileAssign(s)
	case *ast.PrintStatement:
		c.compilePrint(s)
	case *ast.IfStatement:
		c.compileIf(s)
	case *ast.WhileStatement:
		c.compileWhile(s)
	default:
		panic(fmt.Sprintf("ir: unknown statement node %T", stmt))
	}
}

// compileAssign lowers the right-hand side and stores it into the
// target: LOAD_IMM when the result is a literal, ASSIGN otherwise.
func (c *Compiler) compileAssign(stmt *ast.AssignStatement) {
	rhs := c.compileExpression(stmt.Value)
	target := Variable(stmt.Name.Value)

	if rhs.IsLiteral() {
		c.emit(LOAD_IMM, target, rhs, None())
	} else {
		c.emit(ASSIGN, target, rhs, None())
	}
}

func (c *Compiler) compilePrint(stmt *ast.PrintStatement) {
	value := c.compileExpression(stmt.Value)
	c.emit(PRINT, None(), value, None())
}

// compileIf lowers a conditional. The end label is always emitted,
// even without an else branch, so both paths converge at a known join
// point.
func (c *Compiler) compileIf(stmt *ast.IfStatement) {
	labelElse := c.newLabel()
	labelEnd := c.newLabel()

	cond := c.compileExpression(stmt.Condition)
	c.emit(JMP_IF_ZERO, None(), cond, labelElse)

	c.compileProgram(stmt.Then)
	if stmt.Else != nil {
		c.emit(JMP, None(), labelEnd, None())
	}

	c.emit(LABEL, None(), labelElse, None())
	if stmt.Else != nil {
		c.compileProgram(stmt.Else)
	}

	c.emit(LABEL, None(), labelEnd, None())
}

func (c *Compiler) compileWhile(stmt *ast.WhileStatement) {
	labelStart := c.newLabel()
	labelEnd := c.newLabel()

	c.emit(LABEL, None(), labelStart, None())
	cond := c.compileExpression(stmt.Condition)
	c.emit(JMP_IF_ZERO, None(), cond, labelEnd)

	c.compileProgram(stmt.Body)
	c.emit(JMP, None(), labelStart, None())
	c.emit(LABEL, None(), labelEnd, None())
}

// compileExpression lowers an expression and returns the operand that
// holds its value.
func (c *Compiler) compileExpression(expr ast.Expression) Operand {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		c.result = Literal(e.Value)
	case *ast.Identifier:
		c.result = Variable(e.Value)
	case *ast.BinaryExpression:
		left := c.compileExpression(e.Left)
		right := c.compileExpression(e.Right)

		temp := c.newTemp()
		c.emit(operatorOpCode(e.Operator), temp, left, right)
		c.result = temp
	default:
		panic(fmt.Sprintf("ir: unknown expression node %T", expr))
	}
	return c.result
}
