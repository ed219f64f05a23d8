package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskEditCmd())
	cmd.AddCommand(taskStatusCmd())
	cmd.AddCommand(taskTreeCmd())
	cmd.AddCommand(taskAssignCmd())
	cmd.AddCommand(taskShareCmd())
	cmd.AddCommand(taskUnshareCmd())
	cmd.AddCommand(taskRmCmd())

	return cmd
}

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Task title")
	cmd.Flags().String("note", "", "Task note")
	cmd.Flags().String("start", "", "Start time (YYYY-MM-DD HH:MM)")
	cmd.Flags().String("end", "", "End time (YYYY-MM-DD HH:MM)")
	cmd.Flags().Uint("category", 0, "Category id")
	cmd.Flags().String("priority", "", "Priority (min, low, medium, high, max)")
}

func taskFromFlags(cmd *cobra.Command, task *model.Task) error {
	if cmd.Flags().Changed("title") {
		task.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("note") {
		task.Note, _ = cmd.Flags().GetString("note")
	}
	start, err := parseTimeFlag(cmd, "start")
	if err != nil {
		return err
	}
	if start != nil {
		task.StartTime = start
	}
	end, err := parseTimeFlag(cmd, "end")
	if err != nil {
		return err
	}
	if end != nil {
		task.EndTime = end
	}
	if cmd.Flags().Changed("category") {
		categoryID, _ := cmd.Flags().GetUint("category")
		task.CategoryID = &categoryID
	}
	if raw, _ := cmd.Flags().GetString("priority"); raw != "" {
		priority, err := model.ParsePriority(raw)
		if err != nil {
			return err
		}
		task.Priority = priority
	}
	return nil
}

func taskAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			task := model.Task{Priority: model.PriorityMedium}
			if err := taskFromFlags(cmd, &task); err != nil {
				return err
			}
			if task.Title == "" {
				return fmt.Errorf("--title is required")
			}

			parent, _ := cmd.Flags().GetUint("parent")
			if parent != 0 {
				err = a.tasks.CreateInner(cmd.Context(), a.userID, parent, &task)
			} else {
				err = a.tasks.Create(cmd.Context(), a.userID, &task)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Task %d created\n", task.ID)
			return nil
		},
	}

	addTaskFlags(cmd)
	cmd.Flags().Uint("parent", 0, "Parent task id")
	return cmd
}

func taskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			ctx := cmd.Context()

			var tasks []model.Task
			switch {
			case mustBool(cmd, "assigned"):
				tasks, err = a.tasks.Assigned(ctx, a.userID)
			case mustBool(cmd, "shared-read"):
				tasks, err = a.tasks.CanReadSet(ctx, a.userID)
			case mustBool(cmd, "shared-write"):
				tasks, err = a.tasks.CanWriteSet(ctx, a.userID)
			default:
				filter := service.TaskFilter{}
				if raw, _ := cmd.Flags().GetString("status"); raw != "" {
					status, err := model.ParseStatus(raw)
					if err != nil {
						return err
					}
					filter.Status = &status
				}
				if raw, _ := cmd.Flags().GetString("priority"); raw != "" {
					priority, err := model.ParsePriority(raw)
					if err != nil {
						return err
					}
					filter.Priority = &priority
				}
				if cmd.Flags().Changed("category") {
					categoryID, _ := cmd.Flags().GetUint("category")
					filter.CategoryID = &categoryID
				}
				filter.TitleContains, _ = cmd.Flags().GetString("title-contains")
				tasks, err = a.tasks.Filter(ctx, a.userID, filter)
			}
			if err != nil {
				return err
			}

			for _, task := range tasks {
				printTask(task)
			}
			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().String("priority", "", "Filter by priority")
	cmd.Flags().Uint("category", 0, "Filter by category id")
	cmd.Flags().String("title-contains", "", "Filter by title substring")
	cmd.Flags().Bool("assigned", false, "Tasks assigned to you")
	cmd.Flags().Bool("shared-read", false, "Tasks shared with you for reading")
	cmd.Flags().Bool("shared-write", false, "Tasks shared with you for writing")
	return cmd
}

func taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one task",
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
			task, err := a.tasks.Get(cmd.Context(), a.userID, id)
			if err != nil {
				return err
			}
			printTask(*task)
			if task.Note != "" {
				fmt.Printf("  note: %s\n", task.Note)
			}
			parent, err := a.tasks.Parent(cmd.Context(), a.userID, id)
			if err == nil && parent != nil {
				fmt.Printf("  parent: [%d] %s\n", parent.ID, parent.Title)
			}
			return nil
		},
	}
}

func taskEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task",
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
			task, err := a.tasks.Get(cmd.Context(), a.userID, id)
			if err != nil {
				return err
			}
			if err := taskFromFlags(cmd, task); err != nil {
				return err
			}
			if cmd.Flags().Changed("parent") {
				parent, _ := cmd.Flags().GetUint("parent")
				if parent == 0 {
					task.ParentTaskID = nil
				} else {
					task.ParentTaskID = &parent
				}
			}
			if err := a.tasks.Update(cmd.Context(), a.userID, task); err != nil {
				return err
			}
			fmt.Printf("Task %d updated\n", task.ID)
			return nil
		},
	}

	addTaskFlags(cmd)
	cmd.Flags().Uint("parent", 0, "Parent task id (0 detaches)")
	return cmd
}

func taskStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id] [status]",
		Short: "Set a task's status (todo, in_progress, done, archived)",
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
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := a.tasks.SetStatus(cmd.Context(), a.userID, id, status); err != nil {
				return err
			}
			fmt.Printf("Task %d is now %s\n", id, status)
			return nil
		},
	}
}

func taskTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [id]",
		Short: "List inner tasks",
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
			recursive := mustBool(cmd, "recursive")
			tasks, err := a.tasks.InnerTasks(cmd.Context(), a.userID, id, recursive)
			if err != nil {
				return err
			}
			for _, task := range tasks {
				printTask(task)
			}
			return nil
		},
	}

	cmd.Flags().BoolP("recursive", "r", false, "Include all descendants (BFS order)")
	return cmd
}

func taskAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign [id] [user-id]",
		Short: "Assign a task to a user",
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
			assignee, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := a.tasks.AssignUser(cmd.Context(), a.userID, id, assignee); err != nil {
				return err
			}
			fmt.Printf("Task %d assigned to user %d\n", id, assignee)
			return nil
		},
	}
}

func taskShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share [id] [user-id]",
		Short: "Grant another user access to a task",
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
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			if mustBool(cmd, "write") {
				err = a.tasks.GrantWrite(cmd.Context(), a.userID, target, id)
			} else {
				err = a.tasks.GrantRead(cmd.Context(), a.userID, target, id)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Task %d shared with user %d\n", id, target)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, "Grant write access instead of read")
	return cmd
}

func taskUnshareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unshare [id] [user-id]",
		Short: "Revoke another user's access to a task",
		Args:  cobra.RangeArgs(1, 2),
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
			write := mustBool(cmd, "write")

			if mustBool(cmd, "all") {
				if write {
					err = a.tasks.RevokeAllWrite(cmd.Context(), a.userID, id)
				} else {
					err = a.tasks.RevokeAllRead(cmd.Context(), a.userID, id)
				}
				if err != nil {
					return err
				}
				fmt.Printf("All grants removed from task %d\n", id)
				return nil
			}

			if len(args) != 2 {
				return fmt.Errorf("user-id is required without --all")
			}
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			if write {
				err = a.tasks.RevokeWrite(cmd.Context(), a.userID, target, id)
			} else {
				err = a.tasks.RevokeRead(cmd.Context(), a.userID, target, id)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Task %d unshared from user %d\n", id, target)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, "Revoke write access instead of read")
	cmd.Flags().Bool("all", false, "Revoke from every user")
	return cmd
}

func taskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task and any plan templated on it",
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
			if err := a.tasks.Delete(cmd.Context(), a.userID, id); err != nil {
				return err
			}
			fmt.Printf("Task %d deleted\n", id)
			return nil
		},
	}
}

func printTask(task model.Task) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d] %s (%s, %s)", task.ID, task.Title, task.Status, task.Priority)
	if task.StartTime != nil {
		fmt.Fprintf(&sb, " start %s", task.StartTime.Format(timeLayout))
	}
	if task.EndTime != nil {
		fmt.Fprintf(&sb, " end %s", task.EndTime.Format(timeLayout))
	}
	if task.AssignedUserID != nil {
		fmt.Fprintf(&sb, " assignee %d", *task.AssignedUserID)
	}
	if task.PlanID != nil {
		fmt.Fprintf(&sb, " plan %d", *task.PlanID)
	}
	fmt.Println(sb.String())
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
