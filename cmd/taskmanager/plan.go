package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage recurring task plans",
	}

	cmd.AddCommand(planAddCmd())
	cmd.AddCommand(planListCmd())
	cmd.AddCommand(planEditCmd())
	cmd.AddCommand(planTasksCmd())
	cmd.AddCommand(planRmCmd())

	return cmd
}

func planAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a recurring series: a template task plus its plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			ctx := cmd.Context()

			interval, _ := cmd.Flags().GetDuration("every")

			template := model.Task{Priority: model.PriorityMedium, Status: model.StatusTemplate}
			if err := taskFromFlags(cmd, &template); err != nil {
				return err
			}
			if template.Title == "" {
				return fmt.Errorf("--title is required")
			}
			if err := a.tasks.Create(ctx, a.userID, &template); err != nil {
				return err
			}

			plan := model.TaskPlan{
				TaskID:   template.ID,
				Interval: int64(interval / time.Second),
			}
			startAt, err := parseTimeFlag(cmd, "start-repeat-at")
			if err != nil {
				return err
			}
			if startAt != nil {
				plan.LastCreatedAt = startAt.Add(-interval)
			}
			if err := a.plans.CreatePlan(ctx, a.userID, &plan); err != nil {
				// Don't leave the just-created template behind.
				if delErr := a.tasks.Delete(ctx, a.userID, template.ID); delErr != nil {
					return fmt.Errorf("%w (template task %d left behind: %v)", err, template.ID, delErr)
				}
				return err
			}
			fmt.Printf("Plan %d created (template task %d, every %s)\n", plan.ID, template.ID, interval)
			return nil
		},
	}

	addTaskFlags(cmd)
	cmd.Flags().Duration("every", 0, "Spawn interval, e.g. 24h (minimum 5m)")
	cmd.Flags().String("start-repeat-at", "", "First spawn time (YYYY-MM-DD HH:MM)")
	return cmd
}

func planListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			plans, err := a.plans.Plans(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			for _, plan := range plans {
				fmt.Printf("[%d] template task %d, every %s, next spawn %s\n",
					plan.ID, plan.TaskID, plan.IntervalDuration(),
					plan.LastCreatedAt.Add(plan.IntervalDuration()).Format(timeLayout))
			}
			return nil
		},
	}
}

func planEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change a plan's interval or re-anchor it",
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

			edit := service.PlanEdit{}
			if cmd.Flags().Changed("every") {
				interval, _ := cmd.Flags().GetDuration("every")
				seconds := int64(interval / time.Second)
				edit.Interval = &seconds
			}
			startAt, err := parseTimeFlag(cmd, "start-repeat-at")
			if err != nil {
				return err
			}
			edit.StartAt = startAt

			plan, err := a.plans.EditPlan(cmd.Context(), a.userID, id, edit)
			if err != nil {
				return err
			}
			fmt.Printf("Plan %d: every %s, next spawn %s\n",
				plan.ID, plan.IntervalDuration(),
				plan.LastCreatedAt.Add(plan.IntervalDuration()).Format(timeLayout))
			return nil
		},
	}

	cmd.Flags().Duration("every", 0, "New spawn interval")
	cmd.Flags().String("start-repeat-at", "", "Next spawn time (YYYY-MM-DD HH:MM)")
	return cmd
}

func planTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks [id]",
		Short: "List tasks spawned by a plan",
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
			tasks, err := a.tasks.ByPlan(cmd.Context(), a.userID, id)
			if err != nil {
				return err
			}
			for _, task := range tasks {
				printTask(task)
			}
			return nil
		},
	}
}

func planRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a plan (already spawned tasks stay)",
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
			if err := a.plans.DeletePlan(cmd.Context(), a.userID, id); err != nil {
				return err
			}
			fmt.Printf("Plan %d deleted\n", id)
			return nil
		},
	}
}
