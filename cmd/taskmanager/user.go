package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			user, err := a.users.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("User %d created\n", user.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			users, err := a.users.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, user := range users {
				fmt.Printf("[%d] %s\n", user.ID, user.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "level",
		Short: "Show your level and experience",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			level, err := a.levels.Get(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			fmt.Printf("Level %d (%d xp, next level at %d xp)\n",
				level.CurrentLevel(), level.Experience, level.NextLevelExperience())
			return nil
		},
	})

	return cmd
}
