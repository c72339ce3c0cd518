package store

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"redox/internal/session"
)

// snippetFile is the YAML layout used by import and export
type snippetFile struct {
	Snippets []snippet `yaml:"snippets"`
}

type snippet struct {
	Command    string   `yaml:"command"`
	Comment    string   `yaml:"comment,omitempty"`
	Author     string   `yaml:"author,omitempty"`
	References []string `yaml:"references,omitempty"`
}

// Import reads a YAML snippet file and inserts every entry as a new command.
// It returns the number of commands inserted.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	var file snippetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("decode snippets: %w", err)
	}

	n := 0
	for i, sn := range file.Snippets {
		cmd, err := s.Insert(ctx, sn.Command, sn.Comment)
		if err != nil {
			return n, fmt.Errorf("snippet %d: %w", i+1, err)
		}
		if sn.Author != "" {
			if _, err := s.Update(ctx, cmd.ID, session.ColumnAuthor, sn.Author); err != nil {
				return n, fmt.Errorf("snippet %d: %w", i+1, err)
			}
		}
		for _, ref := range sn.References {
			if _, err := s.Update(ctx, cmd.ID, session.ColumnReferences, ref); err != nil {
				return n, fmt.Errorf("snippet %d: %w", i+1, err)
			}
		}
		n++
	}
	return n, nil
}

// Export writes every stored command as a YAML snippet file
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	cmds, err := s.All(ctx)
	if err != nil {
		return err
	}

	file := snippetFile{Snippets: make([]snippet, 0, len(cmds))}
	for _, c := range cmds {
		sn := snippet{Command: c.Text, Comment: c.Comment, Author: c.Author}
		for _, ref := range c.References {
			sn.References = append(sn.References, ref.Value)
		}
		file.Snippets = append(file.Snippets, sn)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode snippets: %w", err)
	}
	return enc.Close()
}
