// Package token defines constants representing the lexical tokens of ClickHouse SQL.
package token

// Token represents a lexical token.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	COMMENT

	// Literals
	IDENT  // identifiers
	NUMBER // integer or float literals
	STRING // string literals

	// Operators
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	EQ       // =
	NEQ      // != or <>
	LT       // <
	GT       // >
	LTE      // <=
	GTE      // >=
	CONCAT   // ||

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;

	// Keywords
	keyword_beg
	ADD
	AFTER
	ALL
	ALTER
	AND
	ANTI
	ANY
	AS
	ASC
	ASOF
	BY
	CHECK
	CLUSTER
	COLUMN
	CREATE
	CROSS
	DATABASE
	DEFAULT
	DESC
	DISTINCT
	DROP
	ENGINE
	EXISTS
	FALSE
	FINAL
	FORMAT
	FROM
	FULL
	GLOBAL
	GROUP
	HAVING
	IF
	IN
	INNER
	INSERT
	INTO
	JOIN
	LEFT
	LIKE
	LIMIT
	MATERIALIZED
	MODIFY
	NOT
	NULL
	OFFSET
	ON
	OPTIMIZE
	OR
	ORDER
	OUTER
	PARTITION
	POPULATE
	PREWHERE
	PRIMARY
	KEY
	RENAME
	REPLACE
	RIGHT
	SELECT
	SEMI
	SETTINGS
	SHOW
	TABLE
	TEMPORARY
	TO
	TRUE
	TRUNCATE
	UNION
	USE
	USING
	VALUES
	VIEW
	WHERE
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:     "+",
	MINUS:    "-",
	ASTERISK: "*",
	SLASH:    "/",
	PERCENT:  "%",
	EQ:       "=",
	NEQ:      "!=",
	LT:       "<",
	GT:       ">",
	LTE:      "<=",
	GTE:      ">=",
	CONCAT:   "||",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",

	ADD:          "ADD",
	AFTER:        "AFTER",
	ALL:          "ALL",
	ALTER:        "ALTER",
	AND:          "AND",
	ANTI:         "ANTI",
	ANY:          "ANY",
	AS:           "AS",
	ASC:          "ASC",
	ASOF:         "ASOF",
	BY:           "BY",
	CHECK:        "CHECK",
	CLUSTER:      "CLUSTER",
	COLUMN:       "COLUMN",
	CREATE:       "CREATE",
	CROSS:        "CROSS",
	DATABASE:     "DATABASE",
	DEFAULT:      "DEFAULT",
	DESC:         "DESC",
	DISTINCT:     "DISTINCT",
	DROP:         "DROP",
	ENGINE:       "ENGINE",
	EXISTS:       "EXISTS",
	FALSE:        "FALSE",
	FINAL:        "FINAL",
	FORMAT:       "FORMAT",
	FROM:         "FROM",
	FULL:         "FULL",
	GLOBAL:       "GLOBAL",
	GROUP:        "GROUP",
	HAVING:       "HAVING",
	IF:           "IF",
	IN:           "IN",
	INNER:        "INNER",
	INSERT:       "INSERT",
	INTO:         "INTO",
	JOIN:         "JOIN",
	LEFT:         "LEFT",
	LIKE:         "LIKE",
	LIMIT:        "LIMIT",
	MATERIALIZED: "MATERIALIZED",
	MODIFY:       "MODIFY",
	NOT:          "NOT",
	NULL:         "NULL",
	OFFSET:       "OFFSET",
	ON:           "ON",
	OPTIMIZE:     "OPTIMIZE",
	OR:           "OR",
	ORDER:        "ORDER",
	OUTER:        "OUTER",
	PARTITION:    "PARTITION",
	POPULATE:     "POPULATE",
	PREWHERE:     "PREWHERE",
	PRIMARY:      "PRIMARY",
	KEY:          "KEY",
	RENAME:       "RENAME",
	REPLACE:      "REPLACE",
	RIGHT:        "RIGHT",
	SELECT:       "SELECT",
	SEMI:         "SEMI",
	SETTINGS:     "SETTINGS",
	SHOW:         "SHOW",
	TABLE:        "TABLE",
	TEMPORARY:    "TEMPORARY",
	TO:           "TO",
	TRUE:         "TRUE",
	TRUNCATE:     "TRUNCATE",
	UNION:        "UNION",
	USE:          "USE",
	USING:        "USING",
	VALUES:       "VALUES",
	VIEW:         "VIEW",
	WHERE:        "WHERE",
}

func (tok Token) String() string {
	if tok >= 0 && int(tok) < len(tokens) {
		return tokens[tok]
	}
	return ""
}

// Keywords maps upper-cased keyword strings to their token types.
var Keywords map[string]Token

func init() {
	Keywords = make(map[string]Token, keyword_end-keyword_beg)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		Keywords[tokens[i]] = i
	}
}

// Lookup returns the token type for an upper-cased identifier string.
// If the string is a keyword, it returns the keyword token.
// Otherwise, it returns IDENT.
func Lookup(ident string) Token {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token is a keyword.
func (tok Token) IsKeyword() bool {
	return tok > keyword_beg && tok < keyword_end
}

// Position represents a source position.
type Position struct {
	Offset int // byte offset
	Line   int // line number (1-based)
	Column int // column number (1-based)
}

// IsValid reports whether the position was set by the lexer.
func (p Position) IsValid() bool { return p.Line > 0 }
