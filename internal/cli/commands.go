// Package cli wires the redox command line: the interactive prompt and the
// non-interactive snippet subcommands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"redox/internal/config"
	"redox/internal/log"
	"redox/internal/store"
	"redox/internal/tui"
)

// Version is set at build time
var Version = "dev"

// rootOptions are the persistent flags
type rootOptions struct {
	ConfigPath string
	Database   string

	cfg *config.Config
}

func New() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "redox",
		Short: "Store, find and fill in command snippets from an interactive prompt.",
		Long: `redox keeps command snippets in a SQLite database. Snippets may contain
[KEY] placeholders that are filled in from user variables when a snippet is
copied to the clipboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), o)
		},
	}

	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "",
		"Path of the YAML config file (default: ./redox.yaml, ~/.config/redox/config.yaml).")
	cmd.PersistentFlags().StringVar(&o.Database, "db", "",
		"Path of the snippet database, overrides the config.")

	AddCommands(cmd, o)
	return cmd
}

func AddCommands(topLevel *cobra.Command, o *rootOptions) {
	addAdd(topLevel, o)
	addSearch(topLevel, o)
	addImport(topLevel, o)
	addExport(topLevel, o)
	addVersion(topLevel)
}

// load reads the config and starts logging
func (o *rootOptions) load() error {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.ConfigPath)
	} else {
		cfg, err = config.LoadFromDefaultPath()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}
	config.SetGlobal(cfg)
	tui.SetTheme(cfg.Theme)
	log.Initialize(cfg.Log)
	o.cfg = cfg
	return nil
}

// openStore opens the configured database. Failing to open it is fatal.
func (o *rootOptions) openStore() (*store.Store, error) {
	st, err := store.Open(o.cfg.Database, o.cfg.ResultLimit)
	if err != nil {
		log.ErrorLog.Printf("open database %s: %v", o.cfg.Database, err)
		return nil, fmt.Errorf("open database %s: %w", o.cfg.Database, err)
	}
	return st, nil
}
