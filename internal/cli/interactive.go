package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"redox/internal/app"
	"redox/internal/clipboard"
	"redox/internal/log"
	"redox/internal/session"
	"redox/internal/store"
	"redox/internal/tui"
	"redox/internal/variables"
)

const watchDelay = 300 * time.Millisecond

// runInteractive runs the prompt until the user quits
func runInteractive(ctx context.Context, o *rootOptions) error {
	st, err := o.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c := newContext(o, st)

	var opts tui.ModelOptions
	if o.cfg.Watch {
		w, err := store.NewWatcher(st.Path(), watchDelay)
		if err != nil {
			log.WarningLog.Printf("database watcher disabled: %v", err)
		} else {
			w.Start()
			defer func() { _ = w.Stop() }()
			opts.Watcher = w
		}
	}

	log.InfoLog.Printf("starting redox with %s", st.Path())
	p := tea.NewProgram(tui.NewModel(c, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// newContext builds the request context from the config
func newContext(o *rootOptions, st *store.Store) *app.Context {
	var modes []session.SearchMode
	for _, name := range o.cfg.SearchModes {
		if m, ok := session.ParseSearchMode(name); ok {
			modes = append(modes, m)
		} else {
			log.WarningLog.Printf("unknown search mode %q ignored", name)
		}
	}

	vars := variables.New(o.cfg.Variables.Defaults)
	vars.KeepEscaped = o.cfg.Variables.BackslashEscape

	var cb clipboard.Clipboard = clipboard.System{}
	if clipboard.Unsupported() {
		log.WarningLog.Printf("no system clipboard found, copies stay inside redox")
		cb = &clipboard.Memory{}
	}

	return &app.Context{
		Session:   session.New(st, modes),
		Vars:      vars,
		Store:     st,
		Clipboard: cb,
	}
}
