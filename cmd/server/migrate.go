package main

import (
	"fmt"

	"projecthub/internal/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(cmd.Help())
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrations.Up(cfg.MigrationURL())
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last N migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := cmd.Flags().GetInt("step")
		if err != nil {
			return fmt.Errorf("unable to read flag `step`: %w", err)
		}
		return migrations.Down(cfg.MigrationURL(), steps)
	},
}

var migrateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List embedded migration files",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := migrations.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().Int("step", 1, "Number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateListCmd)
}
