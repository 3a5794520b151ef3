package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the default categories into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := c.openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			seeded, err := application.Expenses().SeedDefaults(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed defaults: %w", err)
			}

			out := cmd.OutOrStdout()
			if !seeded {
				fmt.Fprintln(out, subtleStyle.Render("Categories already exist, nothing to seed."))
				return nil
			}
			fmt.Fprintln(out, successStyle.Render("Default categories installed."))
			return nil
		},
	}
}

func (c *cli) resetCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every expense and category and restore the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("reset deletes all data; pass --yes to confirm")
			}

			application, err := c.openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Expenses().Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("All data deleted and default categories restored."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deleting all data")
	return cmd
}
