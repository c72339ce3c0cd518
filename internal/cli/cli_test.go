package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redox/internal/config"
	"redox/internal/session"
)

// setup writes a config that keeps the database and logs inside a temp dir
func setup(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "redox.yaml")
	cfg := "database: " + filepath.Join(dir, "snips.db") + "\nlog:\n  enabled: false\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	t.Cleanup(func() { config.SetGlobal(nil) })
	return cfgPath, dir
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAddAndSearch(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := run(t, cfgPath, "add", "-c", "nc -lvnp [LPORT]", "-d", "listener")
	require.NoError(t, err)
	assert.Equal(t, "Inserted command (1): nc -lvnp [LPORT] comment: listener\n", out)

	out, err = run(t, cfgPath, "search", "lvnp")
	require.NoError(t, err)
	assert.Equal(t, "(1) - nc -lvnp [LPORT]  # listener\n", out)

	out, err = run(t, cfgPath, "search", "--column", "comment", "listen")
	require.NoError(t, err)
	assert.Contains(t, out, "(1) - nc -lvnp [LPORT]")

	out, err = run(t, cfgPath, "search", "ssh")
	require.NoError(t, err)
	assert.Equal(t, "No results found for ssh\n", out)
}

func TestAddRequiresCommand(t *testing.T) {
	cfgPath, _ := setup(t)
	_, err := run(t, cfgPath, "add", "-d", "nothing")
	assert.Error(t, err)
}

func TestSearchUnknownColumn(t *testing.T) {
	cfgPath, _ := setup(t)
	_, err := run(t, cfgPath, "search", "--column", "cmd", "x")
	assert.Error(t, err)
}

func TestImportExport(t *testing.T) {
	cfgPath, dir := setup(t)

	in := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(in, []byte(`snippets:
  - command: nmap -sV [RHOST]
    comment: service scan
    references:
      - https://nmap.org/book/man.html
  - command: python3 -m http.server [LPORT]
`), 0o600))

	out, err := run(t, cfgPath, "import", in)
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 snippets\n", out)

	outFile := filepath.Join(dir, "out.yaml")
	_, err = run(t, cfgPath, "export", outFile)
	require.NoError(t, err)
	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "command: nmap -sV [RHOST]")
	assert.Contains(t, string(data), "https://nmap.org/book/man.html")

	out, err = run(t, cfgPath, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "python3 -m http.server [LPORT]")
}

func TestDatabaseFlagOverridesConfig(t *testing.T) {
	cfgPath, dir := setup(t)
	other := filepath.Join(dir, "other", "snips.db")

	_, err := run(t, cfgPath, "--db", other, "add", "-c", "id")
	require.NoError(t, err)
	assert.FileExists(t, other)
}

func TestVersion(t *testing.T) {
	cfgPath, _ := setup(t)
	out, err := run(t, cfgPath, "version")
	require.NoError(t, err)
	assert.Equal(t, "redox dev\n", out)
}

func TestNewContext(t *testing.T) {
	cfgPath, _ := setup(t)
	o := &rootOptions{ConfigPath: cfgPath}
	require.NoError(t, o.load())
	o.cfg.SearchModes = []string{"comment", "bogus"}
	o.cfg.Variables.Defaults = map[string]string{"lhost": "10.10.14.2"}
	o.cfg.Variables.BackslashEscape = true

	st, err := o.openStore()
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	c := newContext(o, st)
	assert.Equal(t, session.SearchByComment, c.Session.EnterSearch())
	v, ok := c.Vars.UserVariable("LHOST")
	assert.True(t, ok)
	assert.Equal(t, "10.10.14.2", v)
	assert.True(t, c.Vars.KeepEscaped)
}
