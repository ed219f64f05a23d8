package service

import (
	"context"

	"task-manager/internal/model"
)

// TaskFilter narrows owner-scoped task listings. Nil fields match anything.
type TaskFilter struct {
	Status        *model.Status
	Priority      *model.Priority
	CategoryID    *uint
	TitleContains string
}

// TaskStore persists tasks. Implementations report a missing task as
// apperr.ErrTaskNotFound.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	ByOwner(ctx context.Context, userID uint) ([]model.Task, error)
	ByStatus(ctx context.Context, userID uint, status model.Status) ([]model.Task, error)
	Assigned(ctx context.Context, userID uint) ([]model.Task, error)
	Children(ctx context.Context, parentID uint) ([]model.Task, error)
	ByPlan(ctx context.Context, userID, planID uint) ([]model.Task, error)
	ReadableBy(ctx context.Context, userID uint) ([]model.Task, error)
	WritableBy(ctx context.Context, userID uint) ([]model.Task, error)
	Filter(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error)
}

// GrantStore persists the two independent grant relations. Granting an
// already granted pair is a no-op.
type GrantStore interface {
	GrantRead(ctx context.Context, taskID, userID uint) error
	GrantWrite(ctx context.Context, taskID, userID uint) error
	RevokeRead(ctx context.Context, taskID, userID uint) error
	RevokeWrite(ctx context.Context, taskID, userID uint) error
	RevokeAllRead(ctx context.Context, taskID uint) error
	RevokeAllWrite(ctx context.Context, taskID uint) error
	HasRead(ctx context.Context, taskID, userID uint) (bool, error)
	HasWrite(ctx context.Context, taskID, userID uint) (bool, error)
	Readers(ctx context.Context, taskID uint) ([]uint, error)
	Writers(ctx context.Context, taskID uint) ([]uint, error)
}

// PlanStore persists task plans. A missing plan is apperr.ErrPlanNotFound.
type PlanStore interface {
	Create(ctx context.Context, plan *model.TaskPlan) error
	Update(ctx context.Context, plan *model.TaskPlan) error
	Delete(ctx context.Context, id uint) error
	DeleteByTask(ctx context.Context, taskID uint) error
	GetByID(ctx context.Context, id uint) (*model.TaskPlan, error)
	ByOwner(ctx context.Context, userID uint) ([]model.TaskPlan, error)
	All(ctx context.Context) ([]model.TaskPlan, error)
}

// NotificationStore persists notifications. A missing notification is
// apperr.ErrNotificationNotFound.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	Update(ctx context.Context, n *model.Notification) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Notification, error)
	ByOwner(ctx context.Context, userID uint) ([]model.Notification, error)
	ByStatus(ctx context.Context, userID uint, status model.NotificationStatus) ([]model.Notification, error)
	AllByStatus(ctx context.Context, status model.NotificationStatus) ([]model.Notification, error)
}

// CategoryStore persists categories. A missing category is
// apperr.ErrCategoryNotFound.
type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Category, error)
	ByOwner(ctx context.Context, userID uint) ([]model.Category, error)
}

// UserStore persists users. A missing user is apperr.ErrUserNotFound.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// LevelStore persists experience counters, one row per user.
type LevelStore interface {
	GetOrCreateByUser(ctx context.Context, userID uint) (*model.Level, error)
	Update(ctx context.Context, level *model.Level) error
}
