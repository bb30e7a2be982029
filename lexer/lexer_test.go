package lexer_test

import (
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/sqlc-dev/chqualify/lexer"
	"github.com/sqlc-dev/chqualify/token"
)

func tokens(sql string) []token.Token {
	var out []token.Token
	for _, item := range lexer.Tokenize(strings.NewReader(sql)) {
		out = append(out, item.Token)
	}
	return out
}

func TestTokenize(t *testing.T) {
	convey.Convey("tokenize a select", t, func() {
		got := tokens("SELECT a, b FROM db.t WHERE x >= 1.5")
		convey.So(got, convey.ShouldResemble, []token.Token{
			token.SELECT, token.IDENT, token.COMMA, token.IDENT,
			token.FROM, token.IDENT, token.DOT, token.IDENT,
			token.WHERE, token.IDENT, token.GTE, token.NUMBER,
			token.EOF,
		})
	})

	convey.Convey("keywords are case insensitive", t, func() {
		items := lexer.Tokenize(strings.NewReader("select Rename tO"))
		convey.So(items[0].Token, convey.ShouldEqual, token.SELECT)
		convey.So(items[1].Token, convey.ShouldEqual, token.RENAME)
		convey.So(items[2].Token, convey.ShouldEqual, token.TO)
		convey.So(items[1].Value, convey.ShouldEqual, "Rename")
	})

	convey.Convey("operators", t, func() {
		convey.So(tokens("= == != <> < <= > >= || + - * / %"), convey.ShouldResemble, []token.Token{
			token.EQ, token.EQ, token.NEQ, token.NEQ, token.LT, token.LTE,
			token.GT, token.GTE, token.CONCAT, token.PLUS, token.MINUS,
			token.ASTERISK, token.SLASH, token.PERCENT, token.EOF,
		})
		items := lexer.Tokenize(strings.NewReader("!"))
		convey.So(items[0].Token, convey.ShouldEqual, token.ILLEGAL)
	})
}

func TestComments(t *testing.T) {
	convey.Convey("comments are returned as tokens", t, func() {
		items := lexer.Tokenize(strings.NewReader("-- line\n# hash\n/* a /* nested */ b */ SELECT"))
		convey.So(len(items), convey.ShouldEqual, 5)
		convey.So(items[0].Token, convey.ShouldEqual, token.COMMENT)
		convey.So(items[1].Token, convey.ShouldEqual, token.COMMENT)
		convey.So(items[2].Token, convey.ShouldEqual, token.COMMENT)
		convey.So(items[3].Token, convey.ShouldEqual, token.SELECT)
	})

	convey.Convey("a single minus is an operator", t, func() {
		convey.So(tokens("1 - 2"), convey.ShouldResemble, []token.Token{
			token.NUMBER, token.MINUS, token.NUMBER, token.EOF,
		})
	})
}

func TestLiterals(t *testing.T) {
	convey.Convey("given string literals", t, func() {
		convey.Convey("doubled quotes and backslashes are unescaped", func() {
			items := lexer.Tokenize(strings.NewReader(`'it''s' 'a\'b\\c'`))
			convey.So(items[0].Token, convey.ShouldEqual, token.STRING)
			convey.So(items[0].Value, convey.ShouldEqual, "it's")
			convey.So(items[1].Value, convey.ShouldEqual, `a'b\c`)
		})

		convey.Convey("an unterminated string is illegal", func() {
			items := lexer.Tokenize(strings.NewReader("'abc"))
			convey.So(items[0].Token, convey.ShouldEqual, token.ILLEGAL)
		})
	})

	convey.Convey("given quoted identifiers", t, func() {
		items := lexer.Tokenize(strings.NewReader("`default`.\"my table\" `a``b`"))
		convey.So(items[0].Token, convey.ShouldEqual, token.IDENT)
		convey.So(items[0].Value, convey.ShouldEqual, "default")
		convey.So(items[0].Quoted, convey.ShouldBeTrue)
		convey.So(items[2].Value, convey.ShouldEqual, "my table")
		convey.So(items[2].Quoted, convey.ShouldBeTrue)
		convey.So(items[3].Value, convey.ShouldEqual, "a`b")
	})

	convey.Convey("given numbers", t, func() {
		items := lexer.Tokenize(strings.NewReader("42 0xFF 1e10 02422_data"))
		convey.So(items[0].Token, convey.ShouldEqual, token.NUMBER)
		convey.So(items[1].Value, convey.ShouldEqual, "0xFF")
		convey.So(items[2].Value, convey.ShouldEqual, "1e10")
		convey.So(items[3].Token, convey.ShouldEqual, token.IDENT)
		convey.So(items[3].Value, convey.ShouldEqual, "02422_data")
	})
}

func TestPositions(t *testing.T) {
	convey.Convey("positions are one based", t, func() {
		items := lexer.Tokenize(strings.NewReader("SELECT\n  x"))
		convey.So(items[0].Pos.Line, convey.ShouldEqual, 1)
		convey.So(items[0].Pos.Column, convey.ShouldEqual, 1)
		convey.So(items[1].Pos.Line, convey.ShouldEqual, 2)
		convey.So(items[1].Pos.Column, convey.ShouldEqual, 3)
		convey.So(items[1].Pos.IsValid(), convey.ShouldBeTrue)
	})

	convey.Convey("a leading byte order mark is skipped", t, func() {
		items := lexer.Tokenize(strings.NewReader("\uFEFFSELECT"))
		convey.So(items[0].Token, convey.ShouldEqual, token.SELECT)
	})
}
