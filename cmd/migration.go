package cmd

import (
	"fmt"
	"log"

	"divtracker/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

func getDSN(dbConfig config.Database) string {
	return fmt.Sprintf("sqlite://%s", dbConfig.Path)
}

func runMigrations(direction string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dsn := getDSN(cfg.DB)
	migrationsPath := "file://migrations"

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	var migrationErr error
	if direction == "up" {
		migrationErr = m.Up()
	} else if direction == "down" {
		migrationErr = m.Steps(-1)
	}

	if migrationErr != nil && migrationErr != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", migrationErr)
	}

	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("Migration source error on close: %v\n", srcErr)
	}
	if dbErr != nil {
		log.Printf("Migration database error on close: %v\n", dbErr)
	}
	return nil
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available local-store migrations",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations("up"); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Applied migrations successfully.")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last local-store migration",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations("down"); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Reverted last migration successfully.")
	},
}

var migrateCmd = &cobra.Command{
	Use: "migrate",
}

func init() {
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
}
