package codegen

import (
	"fmt"

	"github.com/celestialhub/compass-go/ast"
	"github.com/celestialhub/compass-go/mips"
)

// syscall selectors, per the glossary's "Syscall selector" entry.
const (
	syscallPrintString = "4"
	syscallPrintInt    = "1"
	syscallReadInt     = "5"
	syscallReadString  = "8"
)

// lowerCall dispatches a call expression or statement. dest is the
// destination register when the call is used as an expression value,
// or "" in statement position (spec.md S4.4 "Call").
func lowerCall(ctx *Context, call ast.FunctionCall, dest string) error {
	fn, ok := ctx.GetFunction(call.Name)
	if !ok {
		return errorf("unknown function `%s`", call.Name)
	}

	if fn.IsBuiltin {
		return lowerBuiltinCall(ctx, call, dest)
	}

	return lowerUserCall(ctx, call, fn, dest)
}

// materializeArg resolves an argument operand to a register: an
// existing binding for identifiers/dereferences, or a freshly minted
// register loaded via `li`/`la` for literals.
func materializeArg(ctx *Context, op ast.Operand) (string, error) {
	if op.Kind == ast.OperandIdentifier || op.Kind == ast.OperandDereference {
		return ctx.RegisterFor(op)
	}
	if op.Kind == ast.OperandLiteralStr {
		fresh := ctx.FreshRegister()
		label := ctx.InternString(op.Str)
		ctx.Text.Add(mips.Instr("la", fresh, label))
		return fresh, nil
	}
	imm, err := immediateText(op)
	if err != nil {
		return "", err
	}
	fresh := ctx.FreshRegister()
	ctx.Text.Add(mips.Instr("li", fresh, imm))
	return fresh, nil
}

func lowerBuiltinCall(ctx *Context, call ast.FunctionCall, dest string) error {
	switch call.Name {
	case "write_string":
		if len(call.Args) != 1 {
			return errorf("write_string expects 1 argument, got %d", len(call.Args))
		}
		reg, err := materializeArg(ctx, call.Args[0])
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr("li", "$v0", syscallPrintString))
		ctx.Text.Add(mips.Instr("move", "$a0", reg))
		ctx.Text.Add(mips.Instr("syscall"))
		return nil

	case "write_int":
		if len(call.Args) != 1 {
			return errorf("write_int expects 1 argument, got %d", len(call.Args))
		}
		reg, err := materializeArg(ctx, call.Args[0])
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr("li", "$v0", syscallPrintInt))
		ctx.Text.Add(mips.Instr("move", "$a0", reg))
		ctx.Text.Add(mips.Instr("syscall"))
		return nil

	case "read_int":
		if dest == "" {
			return errorf("read_int must be used as an expression")
		}
		ctx.Text.Add(mips.Instr("li", "$v0", syscallReadInt))
		ctx.Text.Add(mips.Instr("syscall"))
		ctx.Text.Add(mips.Instr("move", dest, "$v0"))
		return nil

	case "read_string":
		if dest == "" {
			return errorf("read_string must be used as an expression")
		}
		if len(call.Args) != 1 {
			return errorf("read_string expects 1 argument, got %d", len(call.Args))
		}
		if call.Args[0].Kind != ast.OperandLiteralU32 {
			return errorf("read_string requires a u32 literal size")
		}
		label := ctx.MintBuffer(call.Args[0].U32)
		ctx.Text.Add(mips.Instr("li", "$v0", syscallReadString))
		ctx.Text.Add(mips.Instr("la", "$a0", label))
		ctx.Text.Add(mips.Instr("li", "$a1", fmt.Sprintf("%d", call.Args[0].U32)))
		ctx.Text.Add(mips.Instr("syscall"))
		ctx.Text.Add(mips.Instr("move", dest, "$v0"))
		return nil

	default:
		return errorf("unknown built-in function `%s`", call.Name)
	}
}

func lowerUserCall(ctx *Context, call ast.FunctionCall, fn ast.Function, dest string) error {
	if len(call.Args) != len(fn.Args) {
		return errorf("function `%s` expects %d argument(s), got %d", call.Name, len(fn.Args), len(call.Args))
	}

	for i, arg := range call.Args {
		if i >= len(argRegisters) {
			return errorf("call to `%s` has more than %d arguments", call.Name, len(argRegisters))
		}
		reg, err := materializeArg(ctx, arg)
		if err != nil {
			return err
		}
		ctx.Text.Add(mips.Instr("move", argRegisters[i], reg))
	}

	ctx.Text.Add(mips.Instr("jal", "__"+call.Name))

	if dest != "" {
		ctx.Text.Add(mips.Instr("move", dest, "$v0"))
	}
	return nil
}
