package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"orbit-expenses/internal/app"
	"orbit-expenses/internal/config"
	"orbit-expenses/pkg/logger"
)

// cli carries what every subcommand needs once flags have been parsed.
type cli struct {
	v   *viper.Viper
	cfg config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), log: logger.Nop()}

	root := &cobra.Command{
		Use:           "orbit",
		Short:         "Personal expense tracker",
		Long:          `orbit stores expenses by category and derives period dashboards from them, over HTTP or in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (json, text)")
	flags.String("db-driver", "", "database driver (postgres, sqlite)")
	flags.String("sqlite-path", "", "sqlite database file")
	flags.String("port", "", "HTTP port for serve")

	_ = c.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = c.v.BindPFlag("db_driver", flags.Lookup("db-driver"))
	_ = c.v.BindPFlag("db_sqlite_path", flags.Lookup("sqlite-path"))
	_ = c.v.BindPFlag("http_port", flags.Lookup("port"))

	root.AddCommand(c.serveCmd())
	root.AddCommand(c.summaryCmd())
	root.AddCommand(c.addCmd())
	root.AddCommand(c.importCmd())
	root.AddCommand(c.exportCmd())
	root.AddCommand(c.seedCmd())
	root.AddCommand(c.resetCmd())

	return root
}

func (c *cli) initConfig() error {
	cfg, err := config.Load(c.log, c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.NewFromValues(os.Stderr, cfg.Log.Level, cfg.Log.Format, cfg.Env)
	return nil
}

// openApp builds the application for a one-shot command. The caller closes it.
func (c *cli) openApp() (*app.App, error) {
	application, err := app.New(c.cfg, c.log)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	return application, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
