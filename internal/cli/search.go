package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"redox/internal/session"
)

func addSearch(topLevel *cobra.Command, o *rootOptions) {
	var column string

	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "List the snippets matching a term",
		Example: `
redox search reverse shell
redox search --column comment listener
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a search term")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			col, ok := session.ParseColumn(column)
			if !ok {
				return fmt.Errorf("unknown column %q", column)
			}

			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			term := strings.Join(args, " ")
			cmds, err := st.Search(cmd.Context(), col, term)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cmds) == 0 {
				_, err = fmt.Fprintf(out, "No results found for %s\n", term)
				return err
			}
			for _, c := range cmds {
				line := fmt.Sprintf("(%d) - %s", c.ID, c.Text)
				if c.Comment != "" {
					line += "  # " + c.Comment
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "command", "Column to search: command, comment, author or references.")
	topLevel.AddCommand(cmd)
}
