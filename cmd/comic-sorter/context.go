package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vrsandeep/comic-sorter/internal/config"
	"github.com/vrsandeep/comic-sorter/internal/core"
)

type globalFlags struct {
	config   string
	json     bool
	dryRun   bool
	noLookup bool
	logLevel string
}

type commandContext struct {
	flags *globalFlags
	app   *core.App
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureApp loads the configuration, applies command line overrides and
// builds the application once per process.
func (c *commandContext) ensureApp(cmd *cobra.Command) (*core.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := config.Load(strings.TrimSpace(c.flags.config))
	if err != nil {
		return nil, err
	}
	if c.flagChanged(cmd, "dry-run") {
		cfg.DryRun = c.flags.dryRun
	}
	if c.flags.noLookup {
		cfg.Lookup.Enabled = false
	}
	if c.flags.logLevel != "" {
		cfg.Log.Level = c.flags.logLevel
	}

	app, err := core.NewWithConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	c.app = app
	return app, nil
}

func (c *commandContext) flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func (c *commandContext) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}
