package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"task-manager/internal/model"
)

// AgendaService builds a plain-text snapshot of a user's day: open tasks
// ordered by deadline, then reminders awaiting acknowledgement.
type AgendaService struct {
	tasks         TaskStore
	categories    CategoryStore
	notifications NotificationStore
}

func NewAgendaService(tasks TaskStore, categories CategoryStore, notifications NotificationStore) *AgendaService {
	return &AgendaService{tasks: tasks, categories: categories, notifications: notifications}
}

// Render returns the agenda for userID at the given time.
func (s *AgendaService) Render(ctx context.Context, userID uint, now time.Time) (string, error) {
	tasks, err := s.tasks.ByOwner(ctx, userID)
	if err != nil {
		return "", err
	}

	categories, err := s.categories.ByOwner(ctx, userID)
	if err != nil {
		return "", err
	}
	catNames := make(map[uint]string)
	for _, cat := range categories {
		catNames[cat.ID] = cat.Name
	}

	var open []model.Task
	for _, task := range tasks {
		if task.Status == model.StatusTodo || task.Status == model.StatusInProgress {
			open = append(open, task)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		switch {
		case open[i].EndTime == nil && open[j].EndTime == nil:
			return open[i].CreatedAt.After(open[j].CreatedAt)
		case open[i].EndTime == nil:
			return false
		case open[j].EndTime == nil:
			return true
		default:
			return open[i].EndTime.Before(*open[j].EndTime)
		}
	})

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Agenda for %s\n\n", now.Format("2006-01-02")))

	builder.WriteString("Open tasks:\n")
	if len(open) == 0 {
		builder.WriteString("  (none)\n")
	} else {
		for _, task := range open {
			builder.WriteString(formatAgendaTask(task, catNames, now))
		}
	}

	pending, err := s.notifications.ByStatus(ctx, userID, model.NotificationPending)
	if err != nil {
		return "", err
	}
	builder.WriteString("\nReminders:\n")
	if len(pending) == 0 {
		builder.WriteString("  (none)\n")
	} else {
		for _, n := range pending {
			builder.WriteString(fmt.Sprintf("  [%d] %s\n", n.ID, strings.TrimSpace(n.Title)))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatAgendaTask(task model.Task, catNames map[uint]string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  [%d] %s", task.ID, strings.TrimSpace(task.Title)))
	if task.Priority != model.PriorityMedium {
		sb.WriteString(fmt.Sprintf(" !%s", task.Priority))
	}
	if task.CategoryID != nil {
		if name, ok := catNames[*task.CategoryID]; ok && strings.TrimSpace(name) != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", strings.TrimSpace(name)))
		}
	}

	if task.EndTime != nil {
		end := task.EndTime.In(now.Location())
		switch {
		case now.After(end):
			sb.WriteString(fmt.Sprintf(" - due %s, overdue", end.Format("2006-01-02 15:04")))
		case end.Sub(now) <= 48*time.Hour:
			sb.WriteString(fmt.Sprintf(" - due %s, soon", end.Format("2006-01-02 15:04")))
		default:
			sb.WriteString(fmt.Sprintf(" - due %s", end.Format("2006-01-02 15:04")))
		}
	}

	sb.WriteByte('\n')
	return sb.String()
}
