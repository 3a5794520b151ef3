package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := c.openApp()
			if err != nil {
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					c.log.Error("app: close failed", "err", err)
				}
			}()

			c.log.Info("app: starting", "env", c.cfg.Env)
			if err := application.Serve(cmd.Context()); err != nil {
				return err
			}
			c.log.Info("app: stopped")
			return nil
		},
	}
}
