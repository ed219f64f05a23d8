package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/service"
)

func agendaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agenda",
		Short: "Show open tasks and pending reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			out, err := a.agenda.Render(cmd.Context(), a.userID, time.Now())
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Run one pass of plan spawning and notification promotion",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			return runProcess(cmd.Context(), a)
		},
	}
}

func runProcess(ctx context.Context, a *app) error {
	now := time.Now()
	if err := a.plans.Process(ctx, now); err != nil {
		return fmt.Errorf("process plans: %w", err)
	}
	if err := a.notifications.Process(ctx, now); err != nil {
		return fmt.Errorf("process notifications: %w", err)
	}
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Keep processing plans and reminders on a timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scheduler := service.NewSchedulerService(time.Local)
			if _, err := scheduler.ScheduleInterval(a.cfg.ProcessInterval, func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := runProcess(jobCtx, a); err != nil {
					log.Printf("process: %v", err)
				}
			}); err != nil {
				return fmt.Errorf("schedule processing: %w", err)
			}

			if a.userID != 0 {
				if _, err := scheduler.ScheduleDaily(a.cfg.AgendaTime, func() {
					jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
					defer cancel()
					out, err := a.agenda.Render(jobCtx, a.userID, time.Now())
					if err != nil {
						log.Printf("agenda: %v", err)
						return
					}
					fmt.Println(out)
				}); err != nil {
					return fmt.Errorf("schedule agenda: %w", err)
				}
			}

			scheduler.Start()
			defer scheduler.Stop()

			log.Println("Task manager processing started.")
			<-ctx.Done()
			log.Println("Shutdown complete.")
			return nil
		},
	}
}
