package main

import (
	"log"

	_ "projecthub/docs"
	"projecthub/internal/config"

	"github.com/spf13/cobra"
)

// @title           ProjectHub API
// @version         1.0
// @description     Projects and tasks behind role-based permissions.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "projecthub",
	Short: "Project and task management API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	},
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, resyncCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}
