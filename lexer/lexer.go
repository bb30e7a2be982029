// Package lexer implements a lexer for ClickHouse SQL.
package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sqlc-dev/chqualify/token"
)

// Lexer tokenizes ClickHouse SQL input.
type Lexer struct {
	reader *bufio.Reader
	ch     rune // current character
	pos    token.Position
	eof    bool
}

// Item represents a lexical token with its value and position.
type Item struct {
	Token  token.Token
	Value  string
	Pos    token.Position
	Quoted bool // true if this identifier was backtick or double-quoted
}

// New creates a new Lexer from an io.Reader.
func New(r io.Reader) *Lexer {
	l := &Lexer{
		reader: bufio.NewReader(r),
		pos:    token.Position{Offset: 0, Line: 1, Column: 0},
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.eof {
		l.ch = 0
		return
	}

	r, size, err := l.reader.ReadRune()
	if err != nil {
		l.ch = 0
		l.eof = true
		return
	}

	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.pos.Offset += size
	l.ch = r
}

func (l *Lexer) peekChar() rune {
	if l.eof {
		return 0
	}
	bytes, err := l.reader.Peek(utf8.UTFMax)
	if len(bytes) == 0 && err != nil {
		return 0
	}
	r, _ := utf8.DecodeRune(bytes)
	return r
}

func (l *Lexer) skipWhitespace() {
	// BOM (U+FEFF) counts as whitespace
	for unicode.IsSpace(l.ch) || l.ch == '\uFEFF' {
		l.readChar()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Item {
	l.skipWhitespace()

	pos := l.pos

	if l.eof || l.ch == 0 {
		return Item{Token: token.EOF, Pos: pos}
	}

	if l.ch == '-' && l.peekChar() == '-' {
		return l.readLineComment()
	}
	if l.ch == '#' {
		return l.readLineComment()
	}
	if l.ch == '/' && l.peekChar() == '*' {
		return l.readBlockComment()
	}

	switch l.ch {
	case '+':
		return l.single(token.PLUS, pos)
	case '-':
		return l.single(token.MINUS, pos)
	case '*':
		return l.single(token.ASTERISK, pos)
	case '/':
		return l.single(token.SLASH, pos)
	case '%':
		return l.single(token.PERCENT, pos)
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return Item{Token: token.EQ, Value: "==", Pos: pos}
		}
		return Item{Token: token.EQ, Value: "=", Pos: pos}
	case '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return Item{Token: token.NEQ, Value: "!=", Pos: pos}
		}
		return Item{Token: token.ILLEGAL, Value: "!", Pos: pos}
	case '<':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			return Item{Token: token.LTE, Value: "<=", Pos: pos}
		case '>':
			l.readChar()
			return Item{Token: token.NEQ, Value: "<>", Pos: pos}
		}
		return Item{Token: token.LT, Value: "<", Pos: pos}
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return Item{Token: token.GTE, Value: ">=", Pos: pos}
		}
		return Item{Token: token.GT, Value: ">", Pos: pos}
	case '|':
		l.readChar()
		if l.ch == '|' {
			l.readChar()
			return Item{Token: token.CONCAT, Value: "||", Pos: pos}
		}
		return Item{Token: token.ILLEGAL, Value: "|", Pos: pos}
	case '(':
		return l.single(token.LPAREN, pos)
	case ')':
		return l.single(token.RPAREN, pos)
	case '[':
		return l.single(token.LBRACKET, pos)
	case ']':
		return l.single(token.RBRACKET, pos)
	case ',':
		return l.single(token.COMMA, pos)
	case '.':
		if unicode.IsDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.single(token.DOT, pos)
	case ';':
		return l.single(token.SEMICOLON, pos)
	case '\'':
		return l.readString()
	case '"':
		return l.readQuotedIdentifier('"')
	case '`':
		return l.readQuotedIdentifier('`')
	default:
		if unicode.IsDigit(l.ch) {
			return l.readNumberOrIdent()
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier()
		}
		ch := l.ch
		l.readChar()
		return Item{Token: token.ILLEGAL, Value: string(ch), Pos: pos}
	}
}

func (l *Lexer) single(tok token.Token, pos token.Position) Item {
	ch := l.ch
	l.readChar()
	return Item{Token: tok, Value: string(ch), Pos: pos}
}

// readLineComment reads a -- or # comment up to the end of the line.
func (l *Lexer) readLineComment() Item {
	pos := l.pos
	var sb strings.Builder
	for l.ch != '\n' && !l.eof {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Item{Token: token.COMMENT, Value: sb.String(), Pos: pos}
}

// readBlockComment reads a /* */ comment. ClickHouse allows nesting.
func (l *Lexer) readBlockComment() Item {
	pos := l.pos
	var sb strings.Builder
	sb.WriteRune(l.ch)
	l.readChar()
	sb.WriteRune(l.ch)
	l.readChar()

	nesting := 1
	for !l.eof && nesting > 0 {
		switch {
		case l.ch == '*' && l.peekChar() == '/':
			nesting--
		case l.ch == '/' && l.peekChar() == '*':
			nesting++
		default:
			sb.WriteRune(l.ch)
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Item{Token: token.COMMENT, Value: sb.String(), Pos: pos}
}

func (l *Lexer) readString() Item {
	pos := l.pos
	var sb strings.Builder
	l.readChar() // skip opening quote

	for !l.eof {
		if l.ch == '\'' {
			// '' is an escaped quote
			if l.peekChar() == '\'' {
				sb.WriteRune('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return Item{Token: token.STRING, Value: sb.String(), Pos: pos}
		}
		if l.ch == '\\' {
			l.readChar()
			if l.eof {
				break
			}
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '0':
				sb.WriteRune('\x00')
			case '\'', '"', '\\':
				sb.WriteRune(l.ch)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Item{Token: token.ILLEGAL, Value: sb.String(), Pos: pos}
}

// readQuotedIdentifier reads a backtick or double-quoted identifier.
// A doubled closing character is an escaped literal one.
func (l *Lexer) readQuotedIdentifier(quote rune) Item {
	pos := l.pos
	var sb strings.Builder
	l.readChar() // skip opening quote

	for !l.eof {
		if l.ch == quote {
			if l.peekChar() == quote {
				sb.WriteRune(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return Item{Token: token.IDENT, Value: sb.String(), Pos: pos, Quoted: true}
		}
		if l.ch == '\\' {
			l.readChar()
			if l.eof {
				break
			}
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Item{Token: token.ILLEGAL, Value: sb.String(), Pos: pos}
}

func (l *Lexer) readNumber() Item {
	pos := l.pos
	var sb strings.Builder

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for isHexDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return Item{Token: token.NUMBER, Value: sb.String(), Pos: pos}
	}

	for unicode.IsDigit(l.ch) || l.ch == '_' {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) || l.ch == '.' && sb.Len() == 0 {
		sb.WriteRune(l.ch)
		l.readChar()
		for unicode.IsDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if unicode.IsDigit(next) || next == '+' || next == '-' {
			sb.WriteRune(l.ch)
			l.readChar()
			sb.WriteRune(l.ch)
			l.readChar()
			for unicode.IsDigit(l.ch) {
				sb.WriteRune(l.ch)
				l.readChar()
			}
		}
	}
	return Item{Token: token.NUMBER, Value: sb.String(), Pos: pos}
}

// readNumberOrIdent handles identifiers that start with digits, which
// ClickHouse allows (e.g. 02422_data).
func (l *Lexer) readNumberOrIdent() Item {
	item := l.readNumber()
	if !isIdentStart(l.ch) || strings.ContainsAny(item.Value, ".xX") {
		return item
	}
	var sb strings.Builder
	sb.WriteString(item.Value)
	for isIdentChar(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Item{Token: token.IDENT, Value: sb.String(), Pos: item.Pos}
}

func (l *Lexer) readIdentifier() Item {
	pos := l.pos
	var sb strings.Builder
	for isIdentChar(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	ident := sb.String()
	tok := token.Lookup(strings.ToUpper(ident))
	return Item{Token: tok, Value: ident, Pos: pos}
}

func isHexDigit(ch rune) bool {
	return unicode.IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentChar(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Tokenize returns all tokens from the reader, ending with EOF.
func Tokenize(r io.Reader) []Item {
	l := New(r)
	var items []Item
	for {
		item := l.NextToken()
		items = append(items, item)
		if item.Token == token.EOF {
			break
		}
	}
	return items
}
