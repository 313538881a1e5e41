package cmd

import (
	"context"
	"fmt"
	"log"

	"divtracker/internal/dto"
	"divtracker/internal/repository"
	"divtracker/internal/service"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend and store the session locally",
	Run:   Login,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

func Login(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if err := runMigrations("up"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.client, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.client, appDep.notifier)

	auth, err := services.AuthService.Login(ctx, dto.LoginRequest{
		Email:    loginEmail,
		Password: loginPassword,
	})
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	fmt.Printf("Logged in as %s\n", auth.Email)
}
