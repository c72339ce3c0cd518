package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// addOptions are the flags of the add command
type addOptions struct {
	Command string
	Comment string
}

func addAdd(topLevel *cobra.Command, o *rootOptions) {
	ao := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a command snippet",
		Example: `
redox add -c 'nc -lvnp [LPORT]' -d 'netcat listener'
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(ao.Command) == "" {
				return errors.New("requires a command, see -c")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			added, err := st.Insert(cmd.Context(), ao.Command, ao.Comment)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Inserted command (%d): %s comment: %s\n",
				added.ID, added.Text, added.Comment)
			return err
		},
	}

	cmd.Flags().StringVarP(&ao.Command, "command", "c", "", "The command text, may contain [KEY] placeholders.")
	cmd.Flags().StringVarP(&ao.Comment, "comment", "d", "", "A description of the command.")
	topLevel.AddCommand(cmd)
}
