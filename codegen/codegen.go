// Package codegen lowers a typed statement list into a MIPS program:
// virtual register allocation, arithmetic/conditional dispatch by
// operand kind, short-circuit logical lowering, function prologue /
// epilogue synthesis, and built-in syscall lowering (spec.md S4.4).
// Grounded on original_source/src/codegen/{mod,context,mips}.rs,
// generalized from that file's partial `Operator::Add` arm to every
// statement and expression kind spec.md names.
package codegen

import (
	"github.com/celestialhub/compass-go/ast"
	"github.com/celestialhub/compass-go/mips"
)

// Generate lowers stmts into a complete MIPS program. registerPrefix
// selects the minted register mnemonic (config-driven, default "$t");
// entrypoint selects the top-level label (config-driven, default "main")
// and doubles as the one label name a user Label statement may not reuse.
func Generate(stmts []ast.Statement, registerPrefix, entrypoint string) (*mips.Program, error) {
	ctx := NewContext(registerPrefix, entrypoint)

	if len(stmts) > 0 {
		ctx.Text.Add(mips.Lbl(entrypoint))
	}

	if err := generateAll(ctx, stmts); err != nil {
		return nil, err
	}

	return &mips.Program{Data: ctx.Data, Text: ctx.Text}, nil
}

func generateAll(ctx *Context, stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := generateStatement(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func generateStatement(ctx *Context, stmt ast.Statement) error {
	switch stmt.Kind {
	case ast.StatementVariableDeclaration:
		return generateVariableDeclaration(ctx, stmt.Variable)
	case ast.StatementConditionalJump:
		return generateConditionalJump(ctx, stmt.Condition, stmt.Label)
	case ast.StatementUnconditionalJump:
		ctx.Text.Add(mips.Instr("j", stmt.Label))
		return nil
	case ast.StatementLabel:
		if stmt.Label == ctx.Text.Entrypoint {
			return errorf("cannot use '%s' as a label name", ctx.Text.Entrypoint)
		}
		ctx.Text.Add(mips.Lbl(stmt.Label))
		return nil
	case ast.StatementFunctionDefinition:
		return generateFunctionDefinition(ctx, stmt.Function)
	case ast.StatementStore:
		return generateStore(ctx, stmt.StoreAt, stmt.StoreFrom)
	case ast.StatementCall:
		return lowerCall(ctx, stmt.Call, "")
	case ast.StatementNoOperation:
		return nil
	default:
		return errorf("unsupported statement kind")
	}
}

func generateVariableDeclaration(ctx *Context, v ast.Variable) error {
	reg := ctx.GetRegister(v.Name)
	return generateExprInto(ctx, reg, v.Value)
}

func generateExprInto(ctx *Context, dest string, expr ast.Expr) error {
	switch expr.Kind {
	case ast.ExprOperand:
		return generateOperandInto(ctx, dest, expr.Operand)
	case ast.ExprBinaryOperation:
		return generateBinaryOperationInto(ctx, dest, expr.BinaryOp)
	case ast.ExprFunctionCall:
		return lowerCall(ctx, expr.FunctionCall, dest)
	default:
		return errorf("unsupported expression kind")
	}
}

func generateOperandInto(ctx *Context, dest string, op ast.Operand) error {
	switch op.Kind {
	case ast.OperandIdentifier:
		srcReg, err := ctx.RegisterFor(op)
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr("move", dest, srcReg))
		return nil
	case ast.OperandLiteralStr:
		label := ctx.InternString(op.Str)
		ctx.Text.Add(mips.Instr("la", dest, label))
		return nil
	case ast.OperandDereference:
		return errorf("dereference operands are not yet supported in variable initializers")
	default:
		imm, err := immediateText(op)
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr("li", dest, imm))
		return nil
	}
}

func generateBinaryOperationInto(ctx *Context, dest string, bin ast.BinaryOperation) error {
	switch bin.Kind {
	case ast.BinaryArithmetic:
		return generateArithmeticInto(ctx, dest, bin)
	case ast.BinaryConditional:
		return generateMaterializedConditionalInto(ctx, dest, bin)
	default:
		return errorf("unsupported binary operation kind")
	}
}

func arithmeticMnemonic(op ast.Operator) (string, error) {
	switch op {
	case ast.Add:
		return "add", nil
	case ast.Sub:
		return "sub", nil
	case ast.Mul:
		return "mul", nil
	case ast.Div:
		return "div", nil
	default:
		return "", errorf("unsupported arithmetic operator")
	}
}

func generateArithmeticInto(ctx *Context, dest string, bin ast.BinaryOperation) error {
	if bin.OperationType.IsIntegerBitWidth64() {
		return errorf("cannot perform arithmetic on a 64-bit operand")
	}

	mnemonic, err := arithmeticMnemonic(bin.Operator)
	if err != nil {
		return err
	}

	lhsImm := bin.LHS.IsImmediate()
	rhsImm := bin.RHS.IsImmediate()

	switch {
	case !lhsImm && !rhsImm:
		lhsReg, err := ctx.RegisterFor(bin.LHS)
		if err != nil {
			return err
		}
		rhsReg, err := ctx.RegisterFor(bin.RHS)
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr(mnemonic, dest, lhsReg, rhsReg))
		return nil

	case !lhsImm && rhsImm:
		lhsReg, err := ctx.RegisterFor(bin.LHS)
		if err != nil {
			return err
		}
		rhsVal, err := immediateText(bin.RHS)
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr(mnemonic, dest, lhsReg, rhsVal))
		return nil

	case lhsImm && rhsImm:
		lhsVal, err := immediateText(bin.LHS)
		if err != nil {
			return err
		}
		fresh := ctx.FreshRegister()
		ctx.Text.Add(mips.Instr("li", fresh, lhsVal))

		rhsVal, err := immediateText(bin.RHS)
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr(mnemonic, dest, fresh, rhsVal))
		return nil

	default: // lhsImm && !rhsImm
		return errorf("invalid operands for arithmetic operation")
	}
}

func conditionMnemonic(cond ast.Condition) (string, error) {
	switch cond {
	case ast.LessThan:
		return "slt", nil
	case ast.GreaterThan:
		return "sgt", nil
	case ast.LessThanOrEqual:
		return "sle", nil
	case ast.GreaterThanOrEqual:
		return "sge", nil
	case ast.Equal:
		return "seq", nil
	case ast.NotEqual:
		return "sne", nil
	default:
		return "", errorf("cannot perform logical operations on immediate values")
	}
}

func generateMaterializedConditionalInto(ctx *Context, dest string, bin ast.BinaryOperation) error {
	if bin.Condition.IsLogical() {
		return errorf("cannot perform logical operations on immediate values")
	}
	if bin.OperationType.IsIntegerBitWidth64() {
		return errorf("cannot perform a comparison on a 64-bit operand")
	}

	mnemonic, err := conditionMnemonic(bin.Condition)
	if err != nil {
		return err
	}

	if bin.LHS.IsImmediate() {
		return errorf("invalid operands for comparison operation")
	}

	lhsReg, err := ctx.RegisterFor(bin.LHS)
	if err != nil {
		return err
	}

	var rhsText string
	if bin.RHS.IsImmediate() {
		rhsText, err = immediateText(bin.RHS)
	} else {
		rhsText, err = ctx.RegisterFor(bin.RHS)
	}
	if err != nil {
		return err
	}

	ctx.Text.Add(mips.Instr(mnemonic, dest, lhsReg, rhsText))
	return nil
}

func branchMnemonic(cond ast.Condition) (string, bool) {
	switch cond {
	case ast.LessThan:
		return "blt", true
	case ast.GreaterThan:
		return "bgt", true
	case ast.LessThanOrEqual:
		return "ble", true
	case ast.GreaterThanOrEqual:
		return "bge", true
	case ast.Equal:
		return "beq", true
	case ast.NotEqual:
		return "bne", true
	default:
		return "", false
	}
}

func generateConditionalJump(ctx *Context, condition ast.Expr, label string) error {
	switch condition.Kind {
	case ast.ExprOperand:
		return generateConditionalJumpOperand(ctx, condition.Operand, label)
	case ast.ExprBinaryOperation:
		return generateConditionalJumpBinary(ctx, condition.BinaryOp, label)
	default:
		return errorf("invalid condition expression")
	}
}

func generateConditionalJumpOperand(ctx *Context, op ast.Operand, label string) error {
	switch op.Kind {
	case ast.OperandIdentifier:
		reg, err := ctx.RegisterFor(op)
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr("beqz", reg, label))
		return nil
	case ast.OperandLiteralBool:
		if op.Bool {
			ctx.Text.Add(mips.Instr("j", label))
		}
		return nil
	default:
		return errorf("invalid condition expression")
	}
}

func generateConditionalJumpBinary(ctx *Context, bin ast.BinaryOperation, label string) error {
	if bin.Kind != ast.BinaryConditional {
		return errorf("invalid condition expression")
	}

	switch bin.Condition {
	case ast.And:
		lhsReg, err := ctx.boolOperand(bin.LHS)
		if err != nil {
			return err
		}
		rhsReg, err := ctx.boolOperand(bin.RHS)
		if err != nil {
			return err
		}
		andLabel := ctx.MintAndLabel()
		ctx.Text.Add(mips.Instr("beqz", lhsReg, andLabel))
		ctx.Text.Add(mips.Instr("beqz", rhsReg, andLabel))
		ctx.Text.Add(mips.Instr("j", label))
		ctx.Text.Add(mips.Lbl(andLabel))
		return nil

	case ast.Or:
		lhsReg, err := ctx.boolOperand(bin.LHS)
		if err != nil {
			return err
		}
		rhsReg, err := ctx.boolOperand(bin.RHS)
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr("bnez", lhsReg, label))
		ctx.Text.Add(mips.Instr("bnez", rhsReg, label))
		return nil

	default:
		mnemonic, ok := branchMnemonic(bin.Condition)
		if !ok {
			return errorf("invalid condition expression")
		}
		if bin.OperationType.IsIntegerBitWidth64() {
			return errorf("cannot perform a comparison on a 64-bit operand")
		}
		if bin.LHS.IsImmediate() {
			return errorf("invalid operands for comparison operation")
		}
		lhsReg, err := ctx.RegisterFor(bin.LHS)
		if err != nil {
			return err
		}
		var rhsText string
		if bin.RHS.IsImmediate() {
			rhsText, err = immediateText(bin.RHS)
		} else {
			rhsText, err = ctx.RegisterFor(bin.RHS)
		}
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr(mnemonic, lhsReg, rhsText, label))
		return nil
	}
}

// boolOperand resolves an operand used as a short-circuit branch guard:
// an identifier's existing register, or a materialized literal bool.
func (c *Context) boolOperand(op ast.Operand) (string, error) {
	if op.Kind == ast.OperandIdentifier {
		return c.RegisterFor(op)
	}
	if op.Kind == ast.OperandLiteralBool {
		fresh := c.FreshRegister()
		value := "0"
		if op.Bool {
			value = "1"
		}
		c.Text.Add(mips.Instr("li", fresh, value))
		return fresh, nil
	}
	return "", errorf("invalid condition expression")
}

func generateFunctionDefinition(ctx *Context, f ast.Function) error {
	ctx.RegisterFunction(f)
	label := "__" + f.Name

	saved := ctx.Text
	ctx.Text = mips.TextSection{Entrypoint: ctx.Text.Entrypoint}
	ctx.Text.Add(mips.Lbl(label))

	ctx.PushScope()
	for i, arg := range f.Args {
		if i >= len(argRegisters) {
			return errorf("function `%s` has more than %d arguments", f.Name, len(argRegisters))
		}
		ctx.BindRegister(arg.Name, argRegisters[i])
	}

	if err := generateAll(ctx, f.Body); err != nil {
		return err
	}
	ctx.PopScope()

	ctx.Text.Add(mips.Instr("jr", "$ra"))

	combined := ctx.Text
	combined.Items = append(combined.Items, saved.Items...)
	ctx.Text = combined
	return nil
}

func generateStore(ctx *Context, at, from ast.Operand) error {
	if at.Kind != ast.OperandDereference || from.Kind != ast.OperandIdentifier {
		return errorf("invalid operands for store operation")
	}

	atReg, err := ctx.RegisterFor(at)
	if err != nil {
		return err
	}
	fromReg, err := ctx.RegisterFor(from)
	if err != nil {
		return err
	}

	ctx.Text.Add(mips.Instr("sw", fromReg, atReg))
	return nil
}
