package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"task-manager/internal/config"
	"task-manager/internal/repository"
	"task-manager/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskmanager",
		Short: "Hierarchical task manager with shared tasks, recurring plans and reminders",
	}

	rootCmd.PersistentFlags().Uint("user", 0, "Acting user id")
	rootCmd.PersistentFlags().String("config", "", "Path to yaml config")

	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(notificationCmd())
	rootCmd.AddCommand(categoryCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(agendaCmd())
	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wired services for one CLI invocation.
type app struct {
	cfg           config.Config
	db            *gorm.DB
	userID        uint
	users         *service.UserService
	categories    *service.CategoryService
	tasks         *service.TaskService
	plans         *service.PlanService
	notifications *service.NotificationService
	levels        *service.LevelService
	agenda        *service.AgendaService
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	userID, _ := cmd.Flags().GetUint("user")

	cfg := config.MustLoad(cfgPath)

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	grantRepo := repository.NewGrantRepository(db)
	planRepo := repository.NewPlanRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	levelRepo := repository.NewLevelRepository(db)

	guard := service.NewAccessGuard(taskRepo, grantRepo)
	levels := service.NewLevelService(levelRepo)

	return &app{
		cfg:           cfg,
		db:            db,
		userID:        userID,
		users:         service.NewUserService(userRepo, nil),
		categories:    service.NewCategoryService(categoryRepo, nil),
		tasks:         service.NewTaskService(taskRepo, planRepo, grantRepo, guard, levels, nil),
		plans:         service.NewPlanService(planRepo, taskRepo, nil),
		notifications: service.NewNotificationService(notificationRepo, taskRepo, guard, nil),
		levels:        levels,
		agenda:        service.NewAgendaService(taskRepo, categoryRepo, notificationRepo),
	}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

const timeLayout = "2006-01-02 15:04"

// parseTimeFlag returns nil when the flag was not given.
func parseTimeFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(timeLayout, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, expected %q", name, raw, timeLayout)
	}
	return &t, nil
}
