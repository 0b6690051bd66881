// Package parser reduces a compass token stream to a typed statement
// list, interleaving semantic actions (type resolution, scope
// management, call arity/type checks) against ast.Context (spec.md
// S4.2). Grounded on the teacher's current/peek-token recursive-descent
// shape, adapted from ARM-instruction-line grammar to TAC statement
// grammar; grammar productions taken from spec.md S4.2 and cross-checked
// against original_source/src/parser/mod.rs's error-kind vocabulary
// (InvalidToken, UnrecognizedToken{token, expected}).
package parser

import (
	"fmt"

	"github.com/celestialhub/compass-go/ast"
	"github.com/celestialhub/compass-go/token"
)

// Parser consumes a fixed token slice with a current/peek cursor.
type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *ast.Context
}

// New builds a Parser over tokens with a fresh symbol table.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, ctx: ast.NewContext()}
}

// Parse parses an already-lexed token stream in one call, for callers
// that don't need to inspect the resulting Context.
func Parse(tokens []token.Token) ([]ast.Statement, error) {
	return New(tokens).ParseProgram()
}

// Context exposes the symbol table accumulated while parsing.
func (p *Parser) Context() *ast.Context {
	return p.ctx
}

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) span(tok token.Token) ast.Span {
	return ast.Span{Start: tok.Start, End: tok.End}
}

// expect consumes the current token if it matches kind, else reports
// UnrecognizedToken with a single-entry expected list.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return token.Token{}, unrecognizedToken(p.span(tok), tok.Kind.String(), []string{kind.String()})
	}
	return p.advance(), nil
}

// ParseProgram parses every statement until EOF.
func (p *Parser) ParseProgram() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for p.current().Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current().Kind {
	case token.If:
		return p.parseConditionalJump()
	case token.Goto:
		return p.parseUnconditionalJump()
	case token.Func:
		return p.parseFunctionDefinition()
	case token.Store:
		return p.parseStore()
	case token.Identifier:
		switch p.peek().Kind {
		case token.Colon:
			return p.parseVariableDeclarationOrLabel()
		case token.OpenParen:
			return p.parseCallStatement()
		default:
			tok := p.current()
			return ast.Statement{}, unrecognizedToken(p.span(tok), tok.Kind.String(), []string{":", "("})
		}
	default:
		tok := p.current()
		return ast.Statement{}, unrecognizedToken(p.span(tok), tok.Kind.String(),
			[]string{"if", "goto", "func", "store", "IDENTIFIER"})
	}
}

func (p *Parser) parseConditionalJump() (ast.Statement, error) {
	start := p.current()
	p.advance() // if

	cond, err := p.parseExprValue()
	if err != nil {
		return ast.Statement{}, err
	}

	if _, err := p.expect(token.Goto); err != nil {
		return ast.Statement{}, err
	}
	labelTok, err := p.expect(token.Identifier)
	if err != nil {
		return ast.Statement{}, err
	}

	span := ast.Span{Start: start.Start, End: labelTok.End}
	return ast.NewConditionalJump(cond, labelTok.Literal, span), nil
}

func (p *Parser) parseUnconditionalJump() (ast.Statement, error) {
	start := p.current()
	p.advance() // goto
	labelTok, err := p.expect(token.Identifier)
	if err != nil {
		return ast.Statement{}, err
	}
	span := ast.Span{Start: start.Start, End: labelTok.End}
	return ast.NewUnconditionalJump(labelTok.Literal, span), nil
}

func (p *Parser) parseVariableDeclarationOrLabel() (ast.Statement, error) {
	nameTok, _ := p.expect(token.Identifier)
	colonTok, err := p.expect(token.Colon)
	if err != nil {
		return ast.Statement{}, err
	}

	if p.current().Kind != token.Type {
		// Label definition: "name:".
		span := ast.Span{Start: nameTok.Start, End: colonTok.End}
		return ast.NewLabel(nameTok.Literal, span), nil
	}

	typeTok := p.advance()
	declaredType, err := ast.ParseVarType(typeTok.Literal)
	if err != nil {
		return ast.Statement{}, newError(WrongType, p.span(typeTok), err.Error())
	}

	if _, err := p.expect(token.Assign); err != nil {
		return ast.Statement{}, err
	}

	value, err := p.parseExprValue()
	if err != nil {
		return ast.Statement{}, err
	}

	valueType, ok := value.GetType(p.ctx)
	if !ok {
		return ast.Statement{}, unknownVariable(value.Span(), operandName(value))
	}
	if valueType != declaredType {
		return ast.Statement{}, wrongType(value.Span(), declaredType, valueType)
	}

	span := ast.Span{Start: nameTok.Start, End: value.Span().End}
	variable := ast.Variable{VarType: declaredType, Name: nameTok.Literal, Value: value, Span: span}
	p.ctx.AddVariable(variable)
	return ast.NewVariableDeclaration(variable), nil
}

func operandName(e ast.Expr) string {
	if e.Kind == ast.ExprOperand {
		return e.Operand.Name
	}
	return ""
}

func (p *Parser) parseFunctionDefinition() (ast.Statement, error) {
	start := p.current()
	p.advance() // func

	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return ast.Statement{}, err
	}
	name := nameTok.Literal

	if p.ctx.IsBuiltinName(name) {
		msg := "`" + name + "` is a built-in function and cannot be redefined"
		return ast.Statement{}, Error{Kind: FunctionIsBuiltin, Span: p.span(nameTok), Message: msg, Tips: selfTip(p.span(nameTok), msg)}
	}
	if p.ctx.HasUserFunction(name) {
		return ast.Statement{}, newError(DuplicateFunction, p.span(nameTok),
			"function `"+name+"` is already defined")
	}

	if _, err := p.expect(token.OpenParen); err != nil {
		return ast.Statement{}, err
	}

	var args []ast.Argument
	for p.current().Kind != token.CloseParen {
		argNameTok, err := p.expect(token.Identifier)
		if err != nil {
			return ast.Statement{}, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return ast.Statement{}, err
		}
		argTypeTok, err := p.expect(token.Type)
		if err != nil {
			return ast.Statement{}, err
		}
		argType, err := ast.ParseVarType(argTypeTok.Literal)
		if err != nil {
			return ast.Statement{}, newError(WrongType, p.span(argTypeTok), err.Error())
		}
		args = append(args, ast.Argument{Name: argNameTok.Literal, VarType: argType})
	}
	if _, err := p.expect(token.CloseParen); err != nil {
		return ast.Statement{}, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return ast.Statement{}, err
	}
	retTypeTok, err := p.expect(token.Type)
	if err != nil {
		return ast.Statement{}, err
	}
	returnType, err := ast.ParseVarType(retTypeTok.Literal)
	if err != nil {
		return ast.Statement{}, newError(WrongType, p.span(retTypeTok), err.Error())
	}
	if _, err := p.expect(token.Begin); err != nil {
		return ast.Statement{}, err
	}

	p.ctx.PushScope()
	for _, a := range args {
		p.ctx.AddVariable(ast.Variable{Name: a.Name, VarType: a.VarType})
	}

	var body []ast.Statement
	for p.current().Kind != token.End {
		if p.current().Kind == token.EOF {
			return ast.Statement{}, unrecognizedToken(p.span(p.current()), "EOF", []string{"end"})
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return ast.Statement{}, err
		}
		body = append(body, stmt)
	}
	endTok, err := p.expect(token.End)
	if err != nil {
		return ast.Statement{}, err
	}
	p.ctx.PopScope()

	fn := ast.Function{
		Name: name, Args: args, Body: body, ReturnType: returnType,
		Span: ast.Span{Start: start.Start, End: endTok.End},
	}
	p.ctx.AddFunction(fn)
	return ast.NewFunctionDefinition(fn), nil
}

// parseStore implements the "store from at" production (spec.md S4.2),
// resolved per the Store operand-order open question: `at` is always
// the Dereference destination (DESIGN.md).
func (p *Parser) parseStore() (ast.Statement, error) {
	start := p.current()
	p.advance() // store

	from, err := p.parseOperand()
	if err != nil {
		return ast.Statement{}, err
	}
	at, err := p.parseOperand()
	if err != nil {
		return ast.Statement{}, err
	}

	if at.Kind != ast.OperandDereference || from.Kind != ast.OperandIdentifier {
		return ast.Statement{}, newError(WrongType, ast.Span{Start: start.Start, End: at.Span.End},
			"store requires a pointer destination and an identifier source")
	}

	span := ast.Span{Start: start.Start, End: at.Span.End}
	return ast.NewStore(at, from, span), nil
}

func (p *Parser) parseCallStatement() (ast.Statement, error) {
	call, err := p.parseFunctionCall()
	if err != nil {
		return ast.Statement{}, err
	}

	fn, _ := p.ctx.GetFunction(call.Name)
	if fn.ReturnType != ast.Void {
		msg := "result of `" + call.Name + "` is discarded; assign it to a variable"
		return ast.Statement{}, Error{Kind: UnusedValue, Span: call.Span, Message: msg, Tips: selfTip(call.Span, msg)}
	}

	return ast.NewCall(call), nil
}

func (p *Parser) parseFunctionCall() (ast.FunctionCall, error) {
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return ast.FunctionCall{}, err
	}
	if _, err := p.expect(token.OpenParen); err != nil {
		return ast.FunctionCall{}, err
	}

	var args []ast.Operand
	for p.current().Kind != token.CloseParen {
		op, err := p.parseOperand()
		if err != nil {
			return ast.FunctionCall{}, err
		}
		args = append(args, op)
	}
	closeTok, err := p.expect(token.CloseParen)
	if err != nil {
		return ast.FunctionCall{}, err
	}

	span := ast.Span{Start: nameTok.Start, End: closeTok.End}

	fn, ok := p.ctx.GetFunction(nameTok.Literal)
	if !ok {
		return ast.FunctionCall{}, unknownFunction(span, nameTok.Literal)
	}
	if len(args) != len(fn.Args) {
		msg := sprintfArity(nameTok.Literal, len(fn.Args), len(args))
		return ast.FunctionCall{}, Error{Kind: WrongArgumentCount, Span: span, Message: msg, Tips: selfTip(span, msg)}
	}
	for i, arg := range args {
		argType, ok := arg.GetType(p.ctx)
		if !ok {
			return ast.FunctionCall{}, unknownVariable(arg.Span, arg.Name)
		}
		if argType != fn.Args[i].VarType {
			return ast.FunctionCall{}, wrongType(arg.Span, fn.Args[i].VarType, argType)
		}
	}

	return ast.FunctionCall{Name: nameTok.Literal, Args: args, Span: span}, nil
}

// parseExprValue parses the right-hand side of a declaration or a
// condition: a function call, a bare operand, or a binary operation
// (spec.md S3 "Expression").
func (p *Parser) parseExprValue() (ast.Expr, error) {
	if p.current().Kind == token.Identifier && p.peek().Kind == token.OpenParen {
		call, err := p.parseFunctionCall()
		if err != nil {
			return ast.Expr{}, err
		}
		return ast.NewFunctionCallExpr(call), nil
	}

	lhs, err := p.parseOperand()
	if err != nil {
		return ast.Expr{}, err
	}

	if !isBinaryOperatorToken(p.current().Kind) {
		return ast.NewOperandExpr(lhs), nil
	}

	opTok := p.advance()
	rhs, err := p.parseOperand()
	if err != nil {
		return ast.Expr{}, err
	}

	lhsType, ok := lhs.GetType(p.ctx)
	if !ok {
		return ast.Expr{}, unknownVariable(lhs.Span, lhs.Name)
	}
	rhsType, ok := rhs.GetType(p.ctx)
	if !ok {
		return ast.Expr{}, unknownVariable(rhs.Span, rhs.Name)
	}
	if lhsType != rhsType {
		return ast.Expr{}, wrongType(ast.Span{Start: lhs.Span.Start, End: rhs.Span.End}, lhsType, rhsType)
	}

	span := ast.Span{Start: lhs.Span.Start, End: rhs.Span.End}

	if op, ok := arithmeticOperatorFor(opTok.Kind); ok {
		return ast.NewBinaryOperationExpr(ast.BinaryOperation{
			Kind: ast.BinaryArithmetic, Span: span, LHS: lhs, RHS: rhs, Operator: op, OperationType: lhsType,
		}), nil
	}

	cond, _ := conditionFor(opTok.Kind)
	return ast.NewBinaryOperationExpr(ast.BinaryOperation{
		Kind: ast.BinaryConditional, Span: span, LHS: lhs, RHS: rhs, Condition: cond, OperationType: ast.Bool,
	}), nil
}

func (p *Parser) parseOperand() (ast.Operand, error) {
	tok := p.current()
	span := p.span(tok)

	switch tok.Kind {
	case token.Dereference:
		p.advance()
		if _, ok := p.ctx.GetVariable(tok.Literal); !ok {
			return ast.Operand{}, unknownVariable(span, tok.Literal)
		}
		return ast.Dereference(tok.Literal, span), nil
	case token.Identifier:
		p.advance()
		if _, ok := p.ctx.GetVariable(tok.Literal); !ok {
			return ast.Operand{}, unknownVariable(span, tok.Literal)
		}
		return ast.Identifier(tok.Literal, span), nil
	case token.Cast:
		return p.parseCastOperand()
	case token.LiteralString, token.LiteralTrue, token.LiteralFalse,
		token.LiteralI8, token.LiteralI16, token.LiteralI32, token.LiteralI64,
		token.LiteralU8, token.LiteralU16, token.LiteralU32, token.LiteralU64,
		token.LiteralF32, token.LiteralF64:
		p.advance()
		return literalOperand(tok, span)
	default:
		return ast.Operand{}, unrecognizedToken(span, tok.Kind.String(), []string{"IDENTIFIER", "DEREFERENCE", "literal"})
	}
}

// parseCastOperand handles "(type) literal", reinterpreting a numeric
// literal's value as the cast's declared type.
func (p *Parser) parseCastOperand() (ast.Operand, error) {
	castTok := p.advance()
	targetType, err := ast.ParseVarType(castTok.Literal)
	if err != nil {
		return ast.Operand{}, newError(WrongType, p.span(castTok), err.Error())
	}

	inner, err := p.parseOperand()
	if err != nil {
		return ast.Operand{}, err
	}

	span := ast.Span{Start: castTok.Start, End: inner.Span.End}
	return castOperand(inner, targetType, span)
}

func isBinaryOperatorToken(k token.Kind) bool {
	_, isArith := arithmeticOperatorFor(k)
	_, isCond := conditionFor(k)
	return isArith || isCond
}

func arithmeticOperatorFor(k token.Kind) (ast.Operator, bool) {
	switch k {
	case token.Add:
		return ast.Add, true
	case token.Sub:
		return ast.Sub, true
	case token.Mul:
		return ast.Mul, true
	case token.Div:
		return ast.Div, true
	default:
		return 0, false
	}
}

func conditionFor(k token.Kind) (ast.Condition, bool) {
	switch k {
	case token.LessThan:
		return ast.LessThan, true
	case token.GreaterThan:
		return ast.GreaterThan, true
	case token.LessThanOrEqual:
		return ast.LessThanOrEqual, true
	case token.GreaterThanOrEqual:
		return ast.GreaterThanOrEqual, true
	case token.Equal:
		return ast.Equal, true
	case token.NotEqual:
		return ast.NotEqual, true
	case token.And:
		return ast.And, true
	case token.Or:
		return ast.Or, true
	default:
		return 0, false
	}
}

func sprintfArity(name string, want, got int) string {
	return fmt.Sprintf("function `%s` expects %d argument(s), got %d", name, want, got)
}
