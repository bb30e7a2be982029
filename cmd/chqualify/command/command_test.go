package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/sqlc-dev/chqualify/ast"
	"github.com/sqlc-dev/chqualify/qualify"
)

func testOptions(input string) (options, *bytes.Buffer, *test.Hook) {
	logger, hook := test.NewNullLogger()
	out := &bytes.Buffer{}
	return options{
		in:  strings.NewReader(input),
		out: out,
		log: logger,
	}, out, hook
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	require := require.New(t)

	cfg, err := LoadConfig("")
	require.NoError(err)
	require.Equal(&Config{}, cfg)

	path := writeFile(t, "chqualify.toml", `
database = "analytics"
strict = true
log-level = "debug"
output = "json"
`)
	cfg, err = LoadConfig(path)
	require.NoError(err)
	require.Equal(&Config{
		Database: "analytics",
		Strict:   true,
		LogLevel: "debug",
		Output:   "json",
	}, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	require := require.New(t)

	_, err := LoadConfig("/nonexistent/chqualify.toml")
	require.True(ErrReadConfig.Is(err))

	_, err = LoadConfig(writeFile(t, "bad.toml", "database = "))
	require.True(ErrReadConfig.Is(err))

	_, err = LoadConfig(writeFile(t, "extra.toml", "database = \"d1\"\nport = 9000\n"))
	require.True(ErrUnknownConfigKey.Is(err))
}

func TestQualifyStdin(t *testing.T) {
	require := require.New(t)

	opts, out, _ := testOptions("SELECT * FROM t; DROP TABLE u; INSERT INTO v VALUES (1)")
	cmd := &Qualify{options: opts, Database: "d1"}

	require.NoError(cmd.Execute(nil))
	require.Equal("SELECT * FROM d1.t;\nDROP TABLE d1.u;\nINSERT INTO v VALUES (1);\n", out.String())
}

func TestQualifyFiles(t *testing.T) {
	require := require.New(t)

	first := writeFile(t, "a.sql", "CREATE TABLE a (x UInt8) ENGINE = Memory;")
	second := writeFile(t, "b.sql", "RENAME TABLE a TO b;")

	opts, out, hook := testOptions("")
	cmd := &Qualify{options: opts, Database: "d1"}
	cmd.Args.Files = []string{first, second}
	cmd.LogLevel = "debug"

	require.NoError(cmd.Execute(nil))
	require.Equal("CREATE TABLE d1.a (x UInt8) ENGINE = Memory;\nRENAME TABLE d1.a TO d1.b;\n", out.String())

	var files []string
	for _, entry := range hook.AllEntries() {
		if file, ok := entry.Data["file"]; ok {
			files = append(files, file.(string))
		}
	}
	require.Equal([]string{first, second}, files)
	require.Equal("qualified statements", hook.LastEntry().Message)
}

func TestQualifyConfigFile(t *testing.T) {
	require := require.New(t)

	path := writeFile(t, "chqualify.toml", "database = \"fromfile\"\nlog-level = \"warning\"\n")

	opts, out, hook := testOptions("SELECT 1 FROM t")
	cmd := &Qualify{options: opts}
	cmd.ConfigFile = path

	require.NoError(cmd.Execute(nil))
	require.Equal("SELECT 1 FROM fromfile.t;\n", out.String())
	require.Equal(logrus.WarnLevel, cmd.log.Level)
	require.Empty(hook.AllEntries())

	opts, out, _ = testOptions("SELECT 1 FROM t")
	cmd = &Qualify{options: opts, Database: "fromflag"}
	cmd.ConfigFile = path

	require.NoError(cmd.Execute(nil))
	require.Equal("SELECT 1 FROM fromflag.t;\n", out.String())
}

func TestQualifyStrict(t *testing.T) {
	require := require.New(t)

	opts, _, _ := testOptions("SELECT 1 FROM t")
	cmd := &Qualify{options: opts, Strict: true}
	require.True(qualify.ErrEmptyDatabase.Is(cmd.Execute(nil)))

	path := writeFile(t, "strict.toml", "strict = true\n")
	opts, _, _ = testOptions("SELECT 1 FROM t")
	cmd = &Qualify{options: opts}
	cmd.ConfigFile = path
	require.True(qualify.ErrEmptyDatabase.Is(cmd.Execute(nil)))
}

func TestQualifyErrors(t *testing.T) {
	require := require.New(t)

	opts, out, _ := testOptions("SELECT * FROM a.b.c")
	cmd := &Qualify{options: opts, Database: "d1"}
	require.True(qualify.ErrLogicalError.Is(cmd.Execute(nil)))
	require.Empty(out.String())

	opts, _, _ = testOptions("SELECT 1")
	cmd = &Qualify{options: opts, Output: "xml"}
	require.True(ErrOutput.Is(cmd.Execute(nil)))

	opts, _, _ = testOptions("SELECT 1")
	cmd = &Qualify{options: opts}
	cmd.LogLevel = "loud"
	require.True(ErrLogLevel.Is(cmd.Execute(nil)))

	opts, _, _ = testOptions("SELECT FROM WHERE")
	cmd = &Qualify{options: opts, Database: "d1"}
	require.Error(cmd.Execute(nil))
}

func TestQualifyJSON(t *testing.T) {
	require := require.New(t)

	opts, out, _ := testOptions("DROP TABLE t")
	cmd := &Qualify{options: opts, Database: "d1", Output: "json"}
	require.NoError(cmd.Execute(nil))

	var got []ast.Description
	require.NoError(json.Unmarshal(out.Bytes(), &got))
	require.Len(got, 1)
	require.Equal("DROP TABLE d1.t", got[0].Label)
}

func TestExplain(t *testing.T) {
	require := require.New(t)

	opts, out, _ := testOptions("SELECT * FROM t")
	cmd := &Explain{options: opts}
	require.NoError(cmd.Execute(nil))
	require.Equal("SelectUnion (children 1)\n"+
		" SelectQuery (children 2)\n"+
		"  Asterisk *\n"+
		"  TableList (children 1)\n"+
		"   TableListElement (children 1)\n"+
		"    TableExpression (children 1)\n"+
		"     Identifier t\n", out.String())

	opts, out, _ = testOptions("SELECT * FROM t")
	cmd = &Explain{options: opts, Qualify: true, Database: "d1"}
	require.NoError(cmd.Execute(nil))
	require.Contains(out.String(), "     Identifier d1.t (children 2)\n")
}

func TestExplainYAML(t *testing.T) {
	require := require.New(t)

	opts, out, _ := testOptions("RENAME TABLE a TO b")
	cmd := &Explain{options: opts, Output: "yaml"}
	require.NoError(cmd.Execute(nil))

	var got []ast.Description
	require.NoError(yaml.Unmarshal(out.Bytes(), &got))
	require.Len(got, 1)
	require.Equal("RenameStatement", got[0].Type)
	require.Equal("a TO b", got[0].Label)

	opts, _, _ = testOptions("SELECT 1")
	cmd = &Explain{options: opts, Output: "sql"}
	require.True(ErrOutput.Is(cmd.Execute(nil)))
}

func TestVersion(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := &Version{Name: "chqualify", Version: "v1.0.0", Build: "abc", out: out}
	require.NoError(t, cmd.Execute(nil))
	require.Equal(t, "chqualify (v1.0.0) - build abc\n", out.String())
}
