package store

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redox/internal/config"
	"redox/internal/session"
)

func openTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snips.db"), limit)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	for _, c := range [][2]string{
		{"nc -lvnp [LPORT]", "reverse shell listener"},
		{"nmap -sV -p- [IP]", "full version scan"},
		{"python3 -m http.server [LPORT]", "serve cwd"},
		{"grep -r 100% .", "literal percent"},
	} {
		_, err := s.Insert(ctx, c[0], c[1])
		require.NoError(t, err)
	}
}

func TestSearch(t *testing.T) {
	s := openTestStore(t, 25)
	seed(t, s)
	ctx := context.Background()

	tests := []struct {
		name string
		col  session.Column
		term string
		want []string
	}{
		{"command substring", session.ColumnCommand, "[LPORT]", []string{"nc -lvnp [LPORT]", "python3 -m http.server [LPORT]"}},
		{"comment substring", session.ColumnComment, "scan", []string{"nmap -sV -p- [IP]"}},
		{"case insensitive", session.ColumnComment, "REVERSE", []string{"nc -lvnp [LPORT]"}},
		{"percent is literal", session.ColumnCommand, "0%", []string{"grep -r 100% ."}},
		{"underscore is literal", session.ColumnCommand, "_", nil},
		{"no match", session.ColumnCommand, "ssh", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, err := s.Search(ctx, tt.col, tt.term)
			require.NoError(t, err)
			var got []string
			for _, c := range cmds {
				got = append(got, c.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchLimit(t *testing.T) {
	s := openTestStore(t, 2)
	seed(t, s)

	cmds, err := s.Search(context.Background(), session.ColumnCommand, "")
	require.NoError(t, err)
	assert.Len(t, cmds, 2)
}

func TestSearchDefaultLimitReturnsAllMatches(t *testing.T) {
	s := openTestStore(t, config.DefaultConfig().ResultLimit)
	ctx := context.Background()
	for i := 1; i <= 30; i++ {
		_, err := s.Insert(ctx, fmt.Sprintf("nmap -p %d target", i), "")
		require.NoError(t, err)
	}

	cmds, err := s.Search(ctx, session.ColumnCommand, "nmap")
	require.NoError(t, err)
	require.Len(t, cmds, 30)
	assert.Equal(t, "nmap -p 30 target", cmds[29].Text)
}

func TestInsert(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	a, err := s.Insert(ctx, "whoami", "")
	require.NoError(t, err)
	b, err := s.Insert(ctx, "id", "user info")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "id", got.Text)
	assert.Equal(t, "user info", got.Comment)

	_, err = s.Insert(ctx, "   ", "blank")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()
	cmd, err := s.Insert(ctx, "nc -lvnp [LPORT]", "listener")
	require.NoError(t, err)

	got, err := s.Update(ctx, cmd.ID, session.ColumnComment, "netcat listener")
	require.NoError(t, err)
	assert.Equal(t, "netcat listener", got.Comment)

	got, err = s.Update(ctx, cmd.ID, session.ColumnAuthor, "0xdf")
	require.NoError(t, err)
	assert.Equal(t, "0xdf", got.Author)

	got, err = s.Update(ctx, cmd.ID, session.ColumnCommand, "nc -lvp [LPORT]")
	require.NoError(t, err)
	assert.Equal(t, "nc -lvp [LPORT]", got.Text)

	_, err = s.Update(ctx, cmd.ID+100, session.ColumnComment, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, cmd.ID, session.ColumnCommand, "")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestReferences(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()
	a, err := s.Insert(ctx, "nc -lvnp [LPORT]", "")
	require.NoError(t, err)
	b, err := s.Insert(ctx, "ncat -lvnp [LPORT]", "")
	require.NoError(t, err)

	const ref = "https://book.hacktricks.xyz/shells"
	_, err = s.Update(ctx, a.ID, session.ColumnReferences, ref)
	require.NoError(t, err)
	got, err := s.Update(ctx, b.ID, session.ColumnReferences, ref)
	require.NoError(t, err)
	require.Len(t, got.References, 1)
	assert.Equal(t, ref, got.References[0].Value)

	// shared content row
	a2, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, a2.References, 1)
	assert.Equal(t, got.References[0].ID, a2.References[0].ID)

	// adding the same reference twice is a no-op
	again, err := s.Update(ctx, a.ID, session.ColumnReferences, ref)
	require.NoError(t, err)
	assert.Len(t, again.References, 1)

	cmds, err := s.Search(ctx, session.ColumnReferences, "hacktricks")
	require.NoError(t, err)
	assert.Len(t, cmds, 2)

	_, err = s.Update(ctx, 999, session.ColumnReferences, ref)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportExport(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	in := `snippets:
  - command: nc -lvnp [LPORT]
    comment: listener
    author: me
    references:
      - https://example.com/nc
  - command: id
`
	n, err := s.Import(ctx, strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "me", all[0].Author)
	require.Len(t, all[0].References, 1)

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf))

	other := openTestStore(t, 0)
	n, err = other.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	copied, err := other.All(ctx)
	require.NoError(t, err)
	require.Len(t, copied, 2)
	assert.Equal(t, all[0].Text, copied[0].Text)
	assert.Equal(t, all[0].References[0].Value, copied[0].References[0].Value)
}

func TestImportRejectsEmptyCommand(t *testing.T) {
	s := openTestStore(t, 0)
	_, err := s.Import(context.Background(), strings.NewReader("snippets:\n  - comment: nothing\n"))
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snips.db")
	s, err := Open(path, 0)
	require.NoError(t, err)
	defer s.Close()

	w, err := NewWatcher(path, 10*time.Millisecond)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	_, err = s.Insert(context.Background(), "uname -a", "")
	require.NoError(t, err)

	select {
	case ev := <-w.Events:
		assert.Equal(t, path, ev.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("no change event")
	}
}

func TestWatcherMatches(t *testing.T) {
	w := &Watcher{path: "/data/snips.db"}
	assert.True(t, w.matches("/data/snips.db"))
	assert.True(t, w.matches("/data/snips.db-wal"))
	assert.False(t, w.matches("/data/other.db"))
}
