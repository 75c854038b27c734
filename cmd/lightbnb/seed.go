package main

import (
	"fmt"
	"os"

	"github.com/deppfellow/lightbnb/internal/database"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	var usersPath, propertiesPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the legacy users.json and properties.json documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			usersJSON, err := os.ReadFile(usersPath)
			if err != nil {
				return fmt.Errorf("reading users document: %w", err)
			}
			propertiesJSON, err := os.ReadFile(propertiesPath)
			if err != nil {
				return fmt.Errorf("reading properties document: %w", err)
			}

			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			db, err := database.New(rt.cfg, &rt.log, rt.loggerService)
			if err != nil {
				return err
			}
			defer db.Close()

			repos, err := repository.NewRepositories(db.Pool)
			if err != nil {
				return err
			}

			seeder, err := seed.New(repos.Users, repos.Properties, &rt.log)
			if err != nil {
				return err
			}

			result, err := seeder.Run(cmd.Context(), usersJSON, propertiesJSON)
			if err != nil {
				return err
			}

			cmd.Printf("seeded %d users and %d properties\n", result.Users, result.Properties)
			return nil
		},
	}

	cmd.Flags().StringVar(&usersPath, "users", "users.json", "path to the users document")
	cmd.Flags().StringVar(&propertiesPath, "properties", "properties.json", "path to the properties document")
	return cmd
}
