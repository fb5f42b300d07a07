package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/pkg/logger"
)

var errEphemeralStore = errors.New("storage.adapter memory does not persist between commands; use sqlite, mysql or redis")

// cli carries state shared by every subcommand.
type cli struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:               "benchboard",
		Short:             "Record and rank benchmark runs",
		Long:              "Benchboard stores benchmark runs and prints the fastest run per player and command.",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $BENCHBOARD_CONFIG)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(c.submitCmd())
	root.AddCommand(c.showCmd())
	root.AddCommand(c.clearCmd())
	root.AddCommand(c.loadgenCmd())
	return root
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and initializes logging on stderr. Logs stay
// at warn unless --verbose so command output is not interleaved. Storage
// defaults to sqlite because each command is its own process.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var (
		cfg *config.Config
		err error
	)
	persistent := config.WithDefaults(func(cfg *config.Config) {
		cfg.Storage.Adapter = config.AdapterSQLite
	})
	if c.configPath != "" {
		cfg, err = config.LoadFrom(ctx, c.configPath, persistent)
	} else {
		cfg, err = config.Load(ctx, persistent)
	}
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}

	c.cfg = cfg
	c.log = logger.Get()
	return nil
}

// withService runs fn against a started service over the configured store.
// The memory adapter is refused: runs would vanish when the command exits.
func (c *cli) withService(ctx context.Context, fn func(*app.Service) error) error {
	if c.cfg.Storage.Adapter == config.AdapterMemory {
		return errEphemeralStore
	}
	svc := app.New(app.FromConfig(c.cfg, c.log)...)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()
	return fn(svc)
}
