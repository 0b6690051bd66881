package codegen

import (
	"fmt"

	"github.com/celestialhub/compass-go/ast"
	"github.com/celestialhub/compass-go/mips"
)

// argRegisters names the four MIPS argument registers, reused directly
// as a called function's parameter bindings: the call site moves values
// into $a0.. before jal, so the callee's prologue can bind its
// argument names to those same registers without a separate copy.
var argRegisters = [...]string{"$a0", "$a1", "$a2", "$a3"}

// Context is the codegen pass's mutable state: the program under
// construction, the virtual register allocator, the mangled
// user-function table, and the label-minting counters (spec.md S3
// "Codegen Context"). Grounded on
// original_source/src/codegen/context.rs, generalized from a bespoke
// Rust struct tied to the astrolabe crate into one built on the mips
// package.
type Context struct {
	Data mips.DataSection
	Text mips.TextSection

	registerPrefix  string
	registerCounter int
	registerMap     map[string]string

	functionMap map[string]ast.Function

	scopeLevel         int
	conditionalCounter int
	bufferCounter      int
}

// NewContext builds a Context. registerPrefix is the mnemonic prefix used
// for minted registers (e.g. "$t"); entrypoint is the top-level label
// (e.g. "main"). Both are sourced from config so neither is hardcoded
// into the generator.
func NewContext(registerPrefix, entrypoint string) *Context {
	return &Context{
		registerPrefix: registerPrefix,
		registerMap:    make(map[string]string),
		functionMap:    make(map[string]ast.Function),
		Text:           mips.TextSection{Entrypoint: entrypoint},
	}
}

// GetRegister returns name's bound register, minting one if this is the
// first reference. Register mapping is a partial function: once bound,
// a name keeps its register for the rest of the compilation unit
// (spec.md S3, S8 -- no reuse, no spills).
func (c *Context) GetRegister(name string) string {
	if reg, ok := c.registerMap[name]; ok {
		return reg
	}
	reg := fmt.Sprintf("%s%d", c.registerPrefix, c.registerCounter)
	c.registerCounter++
	c.registerMap[name] = reg
	return reg
}

// FreshRegister mints a scratch register not bound to any source name,
// used to materialize an immediate operand that arithmetic or a builtin
// call needs in register form.
func (c *Context) FreshRegister() string {
	reg := fmt.Sprintf("%s%d", c.registerPrefix, c.registerCounter)
	c.registerCounter++
	return reg
}

// RegisterFor resolves an Identifier or Dereference operand to its
// already-bound register, failing if the name was never declared --
// codegen runs after the parser's own UnknownVariable check, so this
// indicates an internal inconsistency rather than user error.
func (c *Context) RegisterFor(op ast.Operand) (string, error) {
	if op.Kind != ast.OperandIdentifier && op.Kind != ast.OperandDereference {
		return "", errorf("operand is not a register-bound name")
	}
	reg, ok := c.registerMap[op.Name]
	if !ok {
		return "", errorf("unknown register for `%s`", op.Name)
	}
	return reg, nil
}

// BindRegister force-binds name to reg, used for a function's argument
// prologue where the register is dictated by the calling convention
// rather than minted fresh.
func (c *Context) BindRegister(name, reg string) {
	c.registerMap[name] = reg
}

// PushScope / PopScope track nesting depth for function body generation.
func (c *Context) PushScope() {
	c.scopeLevel++
}

func (c *Context) PopScope() {
	c.scopeLevel--
}

func (c *Context) ScopeLevel() int {
	return c.scopeLevel
}

// RegisterFunction records a user-defined function under its mangled
// name (spec.md S3: "Mangling prefixes user names with __").
func (c *Context) RegisterFunction(f ast.Function) {
	c.functionMap["__"+f.Name] = f
}

// GetFunction resolves name, built-ins first -- matching
// original_source/src/codegen/context.rs's Context::get_function, which
// checks the fixed builtin list before the mangled user-function map.
func (c *Context) GetFunction(name string) (ast.Function, bool) {
	if f, ok := builtinCodegenSignatures[name]; ok {
		return f, true
	}
	f, ok := c.functionMap["__"+name]
	return f, ok
}

// InternString deduplicates a string literal into the data section,
// returning its label (spec.md S4.5).
func (c *Context) InternString(value string) string {
	if label, ok := c.Data.FindAsciiz(value); ok {
		return label
	}
	label := fmt.Sprintf("str_%d", len(c.Data.Entries))
	c.Data.Add(mips.DataEntry{Label: label, Kind: mips.Asciiz, Value: value})
	return label
}

// MintBuffer allocates a fresh, never-deduplicated scratch buffer of the
// given byte size for read_string, returning its label.
func (c *Context) MintBuffer(size uint32) string {
	label := fmt.Sprintf("__buffer_%d", c.bufferCounter)
	c.bufferCounter++
	c.Data.Add(mips.DataEntry{Label: label, Kind: mips.SpaceBuffer, Size: size})
	return label
}

// MintAndLabel allocates a fresh short-circuit AND fallthrough label.
// The counter is pre-incremented so the first mint is "__and_1", matching
// spec.md S4.4's "mint __and_N (increment conditional_counter)" and the
// S8 scenario 5 worked example, which names "__and_1" for the first &&.
func (c *Context) MintAndLabel() string {
	c.conditionalCounter++
	return fmt.Sprintf("__and_%d", c.conditionalCounter)
}

var builtinCodegenSignatures = map[string]ast.Function{
	"write_string": {Name: "write_string", IsBuiltin: true, ReturnType: ast.Void, Args: []ast.Argument{{Name: "value", VarType: ast.Str}}},
	"write_int":    {Name: "write_int", IsBuiltin: true, ReturnType: ast.Void, Args: []ast.Argument{{Name: "value", VarType: ast.I32}}},
	"read_int":     {Name: "read_int", IsBuiltin: true, ReturnType: ast.I32},
	"read_string":  {Name: "read_string", IsBuiltin: true, ReturnType: ast.Str, Args: []ast.Argument{{Name: "size", VarType: ast.U32}}},
}
