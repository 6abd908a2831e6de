package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/joinboard/api/cmd/api/commands"
)

// @title Joinboard API
// @version 1.0
// @description Task and contact management backend for the Joinboard kanban client

// @contact.name Joinboard Support
// @contact.url https://github.com/joinboard/api

// @license.name MIT
// @license.url https://github.com/joinboard/api/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type "Token" followed by a space and the token issued at login.

func main() {
	rootCmd := &cobra.Command{
		Use:   "join-api",
		Short: "Joinboard API Server",
		Long:  `Joinboard is the backend for a kanban-style task board: user accounts with token authentication, tasks with subtasks and assignees, and a shared contact list.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
