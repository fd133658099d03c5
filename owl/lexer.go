// Package owl reads Turtle-serialized OWL ontologies into the canonical
// schema. Parsing happens in two passes: the Turtle layer produces raw
// triples, then the mapping layer groups them by subject and translates
// the OWL axioms it understands, preserving the rest as annotations.
package owl

import (
	"strings"
	"unicode"

	"github.com/c360studio/panschema/format"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRIRef
	tokPrefixedName
	tokBlankNode
	tokString
	tokInteger
	tokDecimal
	tokBoolean
	tokA
	tokPrefixDirective
	tokBaseDirective
	tokDot
	tokSemicolon
	tokComma
	tokOpenBracket
	tokCloseBracket
	tokOpenParen
	tokCloseParen
	tokDatatypeMarker
	tokLangTag
)

type token struct {
	kind  tokenKind
	value string
	line  int
	col   int
}

// lexer walks the input rune by rune, tracking line and column for error
// reporting.
type lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input), line: 1, col: 1}
}

func (l *lexer) errf(line, col int, tokenText, msg string) *format.ParseError {
	return &format.ParseError{Line: line, Column: col, Token: tokenText, Msg: msg}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) advance() rune {
	r := l.input[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '#':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// next returns the next token or a ParseError pinpointing the bad input.
func (l *lexer) next() (token, error) {
	l.skipWhitespaceAndComments()
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, line: l.line, col: l.col}, nil
	}

	line, col := l.line, l.col
	r := l.peek()

	switch {
	case r == '<':
		return l.lexIRIRef(line, col)
	case r == '"' || r == '\'':
		return l.lexString(line, col)
	case r == '@':
		return l.lexAtKeyword(line, col)
	case r == '.':
		// A dot can start a decimal; standalone it terminates a
		// statement.
		if isDigit(l.peekAt(1)) {
			return l.lexNumber(line, col)
		}
		l.advance()
		return token{kind: tokDot, line: line, col: col}, nil
	case r == ';':
		l.advance()
		return token{kind: tokSemicolon, line: line, col: col}, nil
	case r == ',':
		l.advance()
		return token{kind: tokComma, line: line, col: col}, nil
	case r == '[':
		l.advance()
		return token{kind: tokOpenBracket, line: line, col: col}, nil
	case r == ']':
		l.advance()
		return token{kind: tokCloseBracket, line: line, col: col}, nil
	case r == '(':
		l.advance()
		return token{kind: tokOpenParen, line: line, col: col}, nil
	case r == ')':
		l.advance()
		return token{kind: tokCloseParen, line: line, col: col}, nil
	case r == '^':
		if l.peekAt(1) != '^' {
			return token{}, l.errf(line, col, "^", "expected ^^ datatype marker")
		}
		l.advance()
		l.advance()
		return token{kind: tokDatatypeMarker, line: line, col: col}, nil
	case r == '_' && l.peekAt(1) == ':':
		return l.lexBlankNode(line, col)
	case isDigit(r) || ((r == '+' || r == '-') && isDigit(l.peekAt(1))):
		return l.lexNumber(line, col)
	default:
		return l.lexName(line, col)
	}
}

func (l *lexer) lexIRIRef(line, col int) (token, error) {
	l.advance() // consume '<'
	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return token{}, l.errf(line, col, "<", "unterminated IRI reference")
		}
		r := l.advance()
		if r == '>' {
			return token{kind: tokIRIRef, value: sb.String(), line: line, col: col}, nil
		}
		if r == '\n' {
			return token{}, l.errf(line, col, sb.String(), "newline inside IRI reference")
		}
		sb.WriteRune(r)
	}
}

func (l *lexer) lexString(line, col int) (token, error) {
	quote := l.advance()
	long := false
	if l.peek() == quote && l.peekAt(1) == quote {
		l.advance()
		l.advance()
		long = true
	}

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return token{}, l.errf(line, col, sb.String(), "unterminated string literal")
		}
		r := l.advance()
		if r == '\\' {
			escaped, err := l.lexEscape(line, col)
			if err != nil {
				return token{}, err
			}
			sb.WriteRune(escaped)
			continue
		}
		if r == quote {
			if !long {
				return token{kind: tokString, value: sb.String(), line: line, col: col}, nil
			}
			if l.peek() == quote && l.peekAt(1) == quote {
				l.advance()
				l.advance()
				return token{kind: tokString, value: sb.String(), line: line, col: col}, nil
			}
			sb.WriteRune(r)
			continue
		}
		if r == '\n' && !long {
			return token{}, l.errf(line, col, sb.String(), "newline inside string literal")
		}
		sb.WriteRune(r)
	}
}

func (l *lexer) lexEscape(line, col int) (rune, error) {
	if l.pos >= len(l.input) {
		return 0, l.errf(line, col, "\\", "unterminated escape sequence")
	}
	r := l.advance()
	switch r {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case '"', '\'', '\\':
		return r, nil
	case 'u', 'U':
		width := 4
		if r == 'U' {
			width = 8
		}
		var code rune
		for i := 0; i < width; i++ {
			if l.pos >= len(l.input) {
				return 0, l.errf(line, col, "", "truncated unicode escape")
			}
			h := l.advance()
			d := hexValue(h)
			if d < 0 {
				return 0, l.errf(line, col, string(h), "invalid hex digit in unicode escape")
			}
			code = code*16 + rune(d)
		}
		return code, nil
	default:
		return 0, l.errf(line, col, string(r), "unknown escape sequence")
	}
}

func (l *lexer) lexAtKeyword(line, col int) (token, error) {
	l.advance() // consume '@'
	var sb strings.Builder
	for l.pos < len(l.input) {
		r := l.peek()
		if !unicode.IsLetter(r) && r != '-' {
			break
		}
		sb.WriteRune(l.advance())
	}
	word := sb.String()
	switch word {
	case "prefix":
		return token{kind: tokPrefixDirective, line: line, col: col}, nil
	case "base":
		return token{kind: tokBaseDirective, line: line, col: col}, nil
	case "":
		return token{}, l.errf(line, col, "@", "bare @ in input")
	default:
		// Anything else after @ is a language tag on the preceding
		// literal.
		return token{kind: tokLangTag, value: word, line: line, col: col}, nil
	}
}

func (l *lexer) lexBlankNode(line, col int) (token, error) {
	l.advance() // '_'
	l.advance() // ':'
	var sb strings.Builder
	for l.pos < len(l.input) && isNameChar(l.peek()) {
		if l.peek() == '.' && !isNameChar(l.peekAt(1)) {
			break
		}
		sb.WriteRune(l.advance())
	}
	if sb.Len() == 0 {
		return token{}, l.errf(line, col, "_:", "blank node label missing")
	}
	return token{kind: tokBlankNode, value: sb.String(), line: line, col: col}, nil
}

func (l *lexer) lexNumber(line, col int) (token, error) {
	var sb strings.Builder
	decimal := false
	if l.peek() == '+' || l.peek() == '-' {
		sb.WriteRune(l.advance())
	}
	for l.pos < len(l.input) {
		r := l.peek()
		if isDigit(r) {
			sb.WriteRune(l.advance())
			continue
		}
		if r == '.' && !decimal && isDigit(l.peekAt(1)) {
			decimal = true
			sb.WriteRune(l.advance())
			continue
		}
		break
	}
	kind := tokInteger
	if decimal {
		kind = tokDecimal
	}
	return token{kind: kind, value: sb.String(), line: line, col: col}, nil
}

// lexName consumes a prefixed name, the keyword a, or a boolean literal.
func (l *lexer) lexName(line, col int) (token, error) {
	var sb strings.Builder
	sawColon := false
	for l.pos < len(l.input) {
		r := l.peek()
		if r == ':' && !sawColon {
			sawColon = true
			sb.WriteRune(l.advance())
			continue
		}
		if !isNameChar(r) {
			break
		}
		// A trailing dot terminates the statement rather than joining
		// the name.
		if r == '.' && !isNameChar(l.peekAt(1)) {
			break
		}
		sb.WriteRune(l.advance())
	}
	word := sb.String()
	if word == "" {
		return token{}, l.errf(line, col, string(l.peek()), "unexpected character")
	}
	if !sawColon {
		switch word {
		case "a":
			return token{kind: tokA, line: line, col: col}, nil
		case "true", "false":
			return token{kind: tokBoolean, value: word, line: line, col: col}, nil
		case "PREFIX":
			return token{kind: tokPrefixDirective, line: line, col: col}, nil
		case "BASE":
			return token{kind: tokBaseDirective, line: line, col: col}, nil
		default:
			return token{}, l.errf(line, col, word, "expected a prefixed name")
		}
	}
	return token{kind: tokPrefixedName, value: word, line: line, col: col}, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' || r == '%'
}

func hexValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}
