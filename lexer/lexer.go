// Package lexer turns compass source text into a stream of token package
// tokens, reporting every invalid byte span before parsing begins.
package lexer

import (
	"strings"
	"unicode"

	"github.com/celestialhub/compass-go/token"
)

// suffixes is the set of integer-literal type suffixes. finishIntegerLiteral
// tests them with strings.HasSuffix; no entry is a suffix of another, so
// their order doesn't matter for correctness.
var suffixes = []string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64"}

// Lexer tokenizes compass source code.
type Lexer struct {
	input  string
	pos    int // index of the next unread byte
	ch     byte
	errors []Error
}

// New creates a Lexer over input and primes the first character.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next byte into l.ch, or 0 at EOF.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

// peekChar returns the next byte without advancing.
func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// offset is the byte offset of the current character (already-consumed l.ch).
func (l *Lexer) offset() int {
	return l.pos - 1
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\f':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// Tokens lexes the entire input, returning the token stream. If any byte
// span is invalid, it reports every invalid span found and returns a
// non-nil error; the lexer pre-validates the full stream before a caller
// ever sees a token (spec.md S4.1, S7: "halts the process on any lex
// error").
func (l *Lexer) Tokens() ([]token.Token, error) {
	var toks []token.Token

	for {
		tok, err := l.next()
		if err != nil {
			l.errors = append(l.errors, err.(Error))
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if len(l.errors) > 0 {
		return nil, ErrorList(l.errors)
	}

	return toks, nil
}

// next scans a single token, or returns an Error describing an invalid
// span. On error the lexer has already advanced past the offending byte(s)
// so scanning can continue and collect further errors.
func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	start := l.offset()

	if l.ch > unicode.MaxASCII {
		l.readChar()
		return token.Token{}, Error{Kind: NonAsciiCharacter, Start: start, End: l.offset()}
	}

	switch {
	case l.ch == 0:
		return token.New(token.EOF, "", start, start), nil

	case l.ch == '"':
		return l.readString(start)

	case isIdentStart(l.ch):
		return l.readIdentifierOrKeyword(start), nil

	case l.ch == '*' && isIdentStart(l.peekChar()):
		l.readChar() // consume '*'
		nameStart := l.offset()
		for isIdentChar(l.ch) {
			l.readChar()
		}
		name := l.input[nameStart:l.offset()]
		return token.New(token.Dereference, name, start, l.offset()), nil

	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) ||
		((l.ch == '+' || l.ch == '-') && isDigit(l.peekChar())):
		return l.readNumber(start)

	case l.ch == '(' && l.peekCast():
		return l.readCast(start)
	}

	return l.readOperatorOrPunct(start)
}

func (l *Lexer) readIdentifierOrKeyword(start int) token.Token {
	for isIdentChar(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.offset()]

	if kind, ok := token.Keywords[text]; ok {
		return token.New(kind, text, start, l.offset())
	}
	if token.Types[text] {
		return token.New(token.Type, text, start, l.offset())
	}
	return token.New(token.Identifier, text, start, l.offset())
}

// peekCast reports whether the upcoming "(...)" is a type cast such as
// "(i32)" -- used to disambiguate from a bare parenthesis.
func (l *Lexer) peekCast() bool {
	rest := l.input[l.pos:]
	close := strings.IndexByte(rest, ')')
	if close < 0 {
		return false
	}
	return token.Types[rest[:close]]
}

func (l *Lexer) readCast(start int) (token.Token, error) {
	l.readChar() // consume '('
	nameStart := l.offset()
	for l.ch != ')' {
		l.readChar()
	}
	name := l.input[nameStart:l.offset()]
	l.readChar() // consume ')'
	return token.New(token.Cast, name, start, l.offset()), nil
}

func (l *Lexer) readString(start int) (token.Token, error) {
	l.readChar() // consume opening quote
	contentStart := l.offset()
	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{}, Error{Kind: InvalidToken, Start: start, End: l.offset(), Message: "unterminated string literal"}
	}
	content := l.input[contentStart:l.offset()]
	l.readChar() // consume closing quote
	return token.New(token.LiteralString, content, start, l.offset()), nil
}

// readNumber scans an integer, hex integer, or float literal with its
// optional suffix, per spec.md S4.1.
func (l *Lexer) readNumber(start int) (token.Token, error) {
	if l.ch == '+' || l.ch == '-' {
		l.readChar()
	}

	isHex := l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X')
	if isHex {
		l.readChar() // 0
		l.readChar() // x
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return l.finishIntegerLiteral(start)
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	// Valid float forms per spec.md S4.1: "0.0", ".0", "0.", "0f32",
	// "0.f32", ".0f32" -- a decimal point makes it a float unconditionally;
	// otherwise an "f32"/"f64" suffix is what makes it one (e.g. "3f32").
	isFloat := l.ch == '.'
	if isFloat {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	kind := token.LiteralF32
	if l.matchSuffix("f64") {
		isFloat = true
		kind = token.LiteralF64
	} else if l.matchSuffix("f32") {
		isFloat = true
		kind = token.LiteralF32
	}

	if isFloat {
		return token.New(kind, l.input[start:l.offset()], start, l.offset()), nil
	}

	return l.finishIntegerLiteral(start)
}

func (l *Lexer) matchSuffix(suffix string) bool {
	if strings.HasPrefix(l.input[l.offset():], suffix) {
		for range suffix {
			l.readChar()
		}
		return true
	}
	return false
}

func (l *Lexer) finishIntegerLiteral(start int) (token.Token, error) {
	for isIdentChar(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.offset()]

	matched := ""
	for _, suf := range suffixes {
		if strings.HasSuffix(text, suf) {
			matched = suf
			break
		}
	}

	kind := token.LiteralI32
	switch matched {
	case "i8":
		kind = token.LiteralI8
	case "i16":
		kind = token.LiteralI16
	case "i32":
		kind = token.LiteralI32
	case "i64":
		kind = token.LiteralI64
	case "u8":
		kind = token.LiteralU8
	case "u16":
		kind = token.LiteralU16
	case "u32":
		kind = token.LiteralU32
	case "u64":
		kind = token.LiteralU64
	}

	if _, overflows := checkIntegerOverflow(text, matched); overflows {
		return token.Token{}, Error{Kind: InvalidIntegerOverflow, Start: start, End: l.offset(), Message: "overflow error"}
	}

	return token.New(kind, text, start, l.offset()), nil
}

func (l *Lexer) readOperatorOrPunct(start int) (token.Token, error) {
	ch := l.ch
	l.readChar()

	two := func(expect byte, kind token.Kind, one token.Kind) (token.Token, error) {
		if l.ch == expect {
			l.readChar()
			return token.New(kind, string(ch)+string(expect), start, l.offset()), nil
		}
		return token.New(one, string(ch), start, l.offset()), nil
	}

	switch ch {
	case '+':
		return token.New(token.Add, "+", start, l.offset()), nil
	case '-':
		return token.New(token.Sub, "-", start, l.offset()), nil
	case '*':
		return token.New(token.Mul, "*", start, l.offset()), nil
	case '/':
		return token.New(token.Div, "/", start, l.offset()), nil
	case '=':
		return two('=', token.Equal, token.Assign)
	case '<':
		return two('=', token.LessThanOrEqual, token.LessThan)
	case '>':
		return two('=', token.GreaterThanOrEqual, token.GreaterThan)
	case '!':
		if l.ch == '=' {
			l.readChar()
			return token.New(token.NotEqual, "!=", start, l.offset()), nil
		}
	case '&':
		if l.ch == '&' {
			l.readChar()
			return token.New(token.And, "&&", start, l.offset()), nil
		}
	case '|':
		if l.ch == '|' {
			l.readChar()
			return token.New(token.Or, "||", start, l.offset()), nil
		}
	case '[':
		return token.New(token.OpenBracket, "[", start, l.offset()), nil
	case ']':
		return token.New(token.CloseBracket, "]", start, l.offset()), nil
	case '(':
		return token.New(token.OpenParen, "(", start, l.offset()), nil
	case ')':
		return token.New(token.CloseParen, ")", start, l.offset()), nil
	case ':':
		return token.New(token.Colon, ":", start, l.offset()), nil
	}

	return token.Token{}, Error{Kind: InvalidToken, Start: start, End: l.offset(), Message: "unrecognized character"}
}
