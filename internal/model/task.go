package model

import (
	"fmt"
	"time"
)

// Status is a task's lifecycle state, stored as a small integer.
type Status int

const (
	StatusTodo Status = iota
	StatusInProgress
	StatusDone
	StatusArchived
	// StatusTemplate marks a spawn source for a TaskPlan. Template tasks
	// never move through the regular status transitions.
	StatusTemplate
)

func (s Status) Valid() bool {
	return s >= StatusTodo && s <= StatusTemplate
}

func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusInProgress:
		return "in_progress"
	case StatusDone:
		return "done"
	case StatusArchived:
		return "archived"
	case StatusTemplate:
		return "template"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus maps a CLI status string to its enum value. Enum strings are
// validated once at the boundary, never re-parsed inside services.
func ParseStatus(raw string) (Status, error) {
	switch raw {
	case "todo":
		return StatusTodo, nil
	case "in_progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	case "archived":
		return StatusArchived, nil
	case "template":
		return StatusTemplate, nil
	default:
		return 0, fmt.Errorf("unknown status %q", raw)
	}
}

// Priority orders tasks from min to max.
type Priority int

const (
	PriorityMin Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityMax
)

func (p Priority) Valid() bool {
	return p >= PriorityMin && p <= PriorityMax
}

func (p Priority) String() string {
	switch p {
	case PriorityMin:
		return "min"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityMax:
		return "max"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ParsePriority maps a CLI priority string to its enum value.
func ParsePriority(raw string) (Priority, error) {
	switch raw {
	case "min":
		return PriorityMin, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "max":
		return PriorityMax, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", raw)
	}
}

// Task represents a single item in the planner. Tasks form a tree through
// ParentTaskID and may be shared with other users through grants.
type Task struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"index"`
	Title          string
	Note           string
	StartTime      *time.Time
	EndTime        *time.Time
	CategoryID     *uint    `gorm:"index"`
	AssignedUserID *uint    `gorm:"index"`
	ParentTaskID   *uint `gorm:"index"`
	PlanID         *uint `gorm:"index"`
	Priority       Priority
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a copy of the task that shares no pointers with the original.
func (t Task) Clone() Task {
	out := t
	out.StartTime = copyTime(t.StartTime)
	out.EndTime = copyTime(t.EndTime)
	out.CategoryID = copyUint(t.CategoryID)
	out.AssignedUserID = copyUint(t.AssignedUserID)
	out.ParentTaskID = copyUint(t.ParentTaskID)
	out.PlanID = copyUint(t.PlanID)
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyUint(u *uint) *uint {
	if u == nil {
		return nil
	}
	v := *u
	return &v
}
