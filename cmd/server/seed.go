package main

import (
	"fmt"

	"projecthub/internal/server"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the permission catalog, default roles and the admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := server.OpenDB(cfg)
		if err != nil {
			return err
		}
		return server.NewSeeder(db, cfg).Run(cmd.Context())
	},
}

var resyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Copy a role's current permissions onto every user holding it",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := cmd.Flags().GetString("role")
		if err != nil {
			return fmt.Errorf("unable to read flag `role`: %w", err)
		}

		db, err := server.OpenDB(cfg)
		if err != nil {
			return err
		}
		_, err = server.NewSeeder(db, cfg).ResyncRole(cmd.Context(), role)
		return err
	},
}

func init() {
	resyncCmd.Flags().String("role", "", "Role name to re-sync")
	_ = resyncCmd.MarkFlagRequired("role")
}
