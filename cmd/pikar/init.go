package main

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the pikar home directory and database",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Health(cmd.Context()); err != nil {
		return err
	}

	cmd.Printf("Initialized pikar home at %s\n", cfg.HomeDir)
	cmd.Printf("Database: %s\n", cfg.Database.Path)
	return nil
}
