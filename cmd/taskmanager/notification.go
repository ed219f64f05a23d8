package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

func notificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notify"},
		Short:   "Manage reminders",
	}

	cmd.AddCommand(notificationAddCmd())
	cmd.AddCommand(notificationListCmd())
	cmd.AddCommand(notificationEditCmd())
	cmd.AddCommand(notificationAckCmd())
	cmd.AddCommand(notificationRmCmd())

	return cmd
}

func notificationAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Attach a reminder to a task with a start time",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			taskID, _ := cmd.Flags().GetUint("task")
			title, _ := cmd.Flags().GetString("title")
			before, _ := cmd.Flags().GetDuration("before")
			if taskID == 0 {
				return fmt.Errorf("--task is required")
			}

			n := model.Notification{
				TaskID:            taskID,
				Title:             title,
				RelativeStartTime: int64(before / time.Second),
			}
			if err := a.notifications.Create(cmd.Context(), a.userID, &n); err != nil {
				return err
			}
			fmt.Printf("Notification %d created\n", n.ID)
			return nil
		},
	}

	cmd.Flags().Uint("task", 0, "Task id")
	cmd.Flags().String("title", "", "Reminder title")
	cmd.Flags().Duration("before", 0, "How long before the task's start time to remind, e.g. 15m")
	return cmd
}

func notificationListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			var notifications []model.Notification
			var err2 error
			if raw, _ := cmd.Flags().GetString("status"); raw != "" {
				status, err := model.ParseNotificationStatus(raw)
				if err != nil {
					return err
				}
				notifications, err2 = a.notifications.ByStatus(cmd.Context(), a.userID, status)
			} else {
				notifications, err2 = a.notifications.All(cmd.Context(), a.userID)
			}
			if err2 != nil {
				return err2
			}

			for _, n := range notifications {
				fmt.Printf("[%d] %s (task %d, %s before start, %s)\n",
					n.ID, n.Title, n.TaskID,
					time.Duration(n.RelativeStartTime)*time.Second, n.Status)
			}
			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status (created, pending, shown)")
	return cmd
}

func notificationEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a reminder",
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

			edit := service.NotificationEdit{}
			if cmd.Flags().Changed("title") {
				title, _ := cmd.Flags().GetString("title")
				edit.Title = &title
			}
			if cmd.Flags().Changed("before") {
				before, _ := cmd.Flags().GetDuration("before")
				seconds := int64(before / time.Second)
				edit.RelativeStartTime = &seconds
			}

			if _, err := a.notifications.Edit(cmd.Context(), a.userID, id, edit); err != nil {
				return err
			}
			fmt.Printf("Notification %d updated\n", id)
			return nil
		},
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().Duration("before", 0, "New relative start time")
	return cmd
}

func notificationAckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ack [id]",
		Short: "Acknowledge a pending reminder",
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
			if err := a.notifications.Acknowledge(cmd.Context(), a.userID, id); err != nil {
				return err
			}
			fmt.Printf("Notification %d acknowledged\n", id)
			return nil
		},
	}
}

func notificationRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a reminder",
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
			if err := a.notifications.Delete(cmd.Context(), a.userID, id); err != nil {
				return err
			}
			fmt.Printf("Notification %d deleted\n", id)
			return nil
		},
	}
}
