package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			category, err := a.categories.Create(cmd.Context(), a.userID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Category %d created\n", category.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			categories, err := a.categories.List(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			for _, category := range categories {
				fmt.Printf("[%d] %s\n", category.ID, category.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.categories.Rename(cmd.Context(), a.userID, id, args[1]); err != nil {
				return err
			}
			fmt.Printf("Category %d renamed\n", id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.categories.Delete(cmd.Context(), a.userID, id); err != nil {
				return err
			}
			fmt.Printf("Category %d deleted\n", id)
			return nil
		},
	})

	return cmd
}
