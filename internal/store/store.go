// Package store keeps the snippet collection in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"redox/internal/session"
)

var (
	ErrNotFound      = errors.New("command not found")
	ErrInvalidColumn = errors.New("invalid column")
	ErrEmptyCommand  = errors.New("command text is empty")
)

const schema = `
CREATE TABLE IF NOT EXISTS TblCommand (
	CmdID  INTEGER PRIMARY KEY AUTOINCREMENT,
	Cmd    TEXT NOT NULL,
	cmnt   TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS TblRefContent (
	ID  INTEGER PRIMARY KEY AUTOINCREMENT,
	Ref TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS TblRefMap (
	RefID INTEGER NOT NULL REFERENCES TblRefContent(ID) ON DELETE CASCADE,
	CmdID INTEGER NOT NULL REFERENCES TblCommand(CmdID) ON DELETE CASCADE,
	PRIMARY KEY (RefID, CmdID)
);
`

// commandColumns whitelists the SQL column behind each session.Column
var commandColumns = map[session.Column]string{
	session.ColumnCommand: "Cmd",
	session.ColumnComment: "cmnt",
	session.ColumnAuthor:  "author",
}

// Store is the SQLite-backed snippet collection
type Store struct {
	db    *sql.DB
	path  string
	limit int
}

// Open opens (creating if needed) the database at path. limit caps the rows a
// search returns; 0 means no cap.
func Open(path string, limit int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, path: path, limit: limit}, nil
}

// Path returns the database file path
func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	return s.db.Close()
}

// Search returns the commands whose column contains term, oldest first
func (s *Store) Search(ctx context.Context, col session.Column, term string) ([]session.Command, error) {
	var where string
	if col == session.ColumnReferences {
		where = `CmdID IN (
			SELECT m.CmdID FROM TblRefMap m
			JOIN TblRefContent r ON r.ID = m.RefID
			WHERE r.Ref LIKE ? ESCAPE '\')`
	} else {
		name, ok := commandColumns[col]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, col)
		}
		where = name + ` LIKE ? ESCAPE '\'`
	}

	limit := s.limit
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT CmdID, Cmd, cmnt, author FROM TblCommand WHERE ` + where + ` ORDER BY CmdID LIMIT ?`
	cmds, err := s.queryCommands(ctx, query, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search commands: %w", err)
	}
	return cmds, nil
}

// All returns every stored command, oldest first
func (s *Store) All(ctx context.Context) ([]session.Command, error) {
	cmds, err := s.queryCommands(ctx, `SELECT CmdID, Cmd, cmnt, author FROM TblCommand ORDER BY CmdID`)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	return cmds, nil
}

// Get returns the command with the given id
func (s *Store) Get(ctx context.Context, id int64) (session.Command, error) {
	cmds, err := s.queryCommands(ctx, `SELECT CmdID, Cmd, cmnt, author FROM TblCommand WHERE CmdID = ?`, id)
	if err != nil {
		return session.Command{}, fmt.Errorf("get command %d: %w", id, err)
	}
	if len(cmds) == 0 {
		return session.Command{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return cmds[0], nil
}

// Insert stores a new command and returns it with its assigned id
func (s *Store) Insert(ctx context.Context, text, comment string) (session.Command, error) {
	if strings.TrimSpace(text) == "" {
		return session.Command{}, ErrEmptyCommand
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO TblCommand (Cmd, cmnt) VALUES (?, ?)`, text, comment)
	if err != nil {
		return session.Command{}, fmt.Errorf("insert command: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return session.Command{}, fmt.Errorf("insert command: %w", err)
	}
	return session.Command{ID: id, Text: text, Comment: comment}, nil
}

// Update sets one column of a command and returns the stored result.
// For ColumnReferences the value is added as a new reference.
func (s *Store) Update(ctx context.Context, id int64, col session.Column, value string) (session.Command, error) {
	if col == session.ColumnReferences {
		if err := s.addReference(ctx, id, value); err != nil {
			return session.Command{}, err
		}
		return s.Get(ctx, id)
	}

	name, ok := commandColumns[col]
	if !ok {
		return session.Command{}, fmt.Errorf("%w: %s", ErrInvalidColumn, col)
	}
	if col == session.ColumnCommand && strings.TrimSpace(value) == "" {
		return session.Command{}, ErrEmptyCommand
	}

	res, err := s.db.ExecContext(ctx, `UPDATE TblCommand SET `+name+` = ? WHERE CmdID = ?`, value, id)
	if err != nil {
		return session.Command{}, fmt.Errorf("update %s of %d: %w", col, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return session.Command{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s.Get(ctx, id)
}

func (s *Store) addReference(ctx context.Context, id int64, ref string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add reference: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM TblCommand WHERE CmdID = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("add reference: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO TblRefContent (Ref) VALUES (?)`, ref); err != nil {
		return fmt.Errorf("add reference: %w", err)
	}
	var refID int64
	if err := tx.QueryRowContext(ctx, `SELECT ID FROM TblRefContent WHERE Ref = ?`, ref).Scan(&refID); err != nil {
		return fmt.Errorf("add reference: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO TblRefMap (RefID, CmdID) VALUES (?, ?)`, refID, id); err != nil {
		return fmt.Errorf("add reference: %w", err)
	}
	return tx.Commit()
}

func (s *Store) loadReferences(ctx context.Context, cmds []session.Command) error {
	if len(cmds) == 0 {
		return nil
	}

	index := make(map[int64]int, len(cmds))
	args := make([]any, 0, len(cmds))
	for i, c := range cmds {
		index[c.ID] = i
		args = append(args, c.ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cmds)), ",")

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.CmdID, r.ID, r.Ref FROM TblRefMap m
		JOIN TblRefContent r ON r.ID = m.RefID
		WHERE m.CmdID IN (`+placeholders+`)
		ORDER BY r.ID`, args...)
	if err != nil {
		return fmt.Errorf("load references: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cmdID int64
		var ref session.Reference
		if err := rows.Scan(&cmdID, &ref.ID, &ref.Value); err != nil {
			return fmt.Errorf("load references: %w", err)
		}
		i := index[cmdID]
		cmds[i].References = append(cmds[i].References, ref)
	}
	return rows.Err()
}

// queryCommands runs a TblCommand query and attaches each row's references
func (s *Store) queryCommands(ctx context.Context, query string, args ...any) ([]session.Command, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var cmds []session.Command
	for rows.Next() {
		var c session.Command
		if err := rows.Scan(&c.ID, &c.Text, &c.Comment, &c.Author); err != nil {
			_ = rows.Close()
			return nil, err
		}
		cmds = append(cmds, c)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// release the single connection before the reference query
	_ = rows.Close()

	if err := s.loadReferences(ctx, cmds); err != nil {
		return nil, err
	}
	return cmds, nil
}

// escapeLike escapes the LIKE wildcards so term matches literally
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
