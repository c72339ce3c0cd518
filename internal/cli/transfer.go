package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func addImport(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import snippets from a YAML file",
		Example: `
redox import snippets.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			n, err := st.Import(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d snippets\n", n)
			return err
		},
	}
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export all snippets as YAML, to FILE or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 {
				f, cerr := os.Create(args[0])
				if cerr != nil {
					return cerr
				}
				defer func() { err = errors.Join(err, f.Close()) }()
				w = f
			}
			return st.Export(cmd.Context(), w)
		},
	}
	topLevel.AddCommand(cmd)
}
