package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWhitespace(t *testing.T) {
	require.Equal(t, "SELECT a FROM t", Whitespace("  SELECT\n\ta   FROM t \n"))
}

func TestEscapes(t *testing.T) {
	require.Equal(t, `SELECT 'it''s', 'a\b', 'x''y'`, Escapes(`SELECT 'it\'s', 'a\\b', 'x''y'`))
}

func TestStripComments(t *testing.T) {
	got := StripComments("SELECT 1 -- one\n# hash\n/* a /* b */ c */SELECT '--not a comment'")
	require.Equal(t, "SELECT 1 \n\n SELECT '--not a comment'", got)
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single",
			input:    "SELECT 1",
			expected: []string{"SELECT 1"},
		},
		{
			name:     "layout and comments",
			input:    "-- header\nDROP TABLE\n  d1.t;\n\n/* next */ RENAME TABLE a TO b;\n",
			expected: []string{"DROP TABLE d1.t", "RENAME TABLE a TO b"},
		},
		{
			name:     "semicolons in quotes",
			input:    "SELECT ';' AS `a;b`; SELECT \"c;d\"",
			expected: []string{"SELECT ';' AS `a;b`", `SELECT "c;d"`},
		},
		{
			name:     "escape styles agree",
			input:    `SELECT 'it\'s'; SELECT 'it''s'`,
			expected: []string{"SELECT 'it''s'", "SELECT 'it''s'"},
		},
		{
			name:  "empty",
			input: " ;; -- nothing\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Statements(tc.input))
		})
	}
}
