package service

import (
	"context"

	"task-manager/internal/model"
)

// AccessGuard resolves whether a user may read or write a given task,
// combining ownership, assignment and the two grant relations. It performs
// pure lookups and never mutates anything.
type AccessGuard struct {
	tasks  TaskStore
	grants GrantStore
}

func NewAccessGuard(tasks TaskStore, grants GrantStore) *AccessGuard {
	return &AccessGuard{tasks: tasks, grants: grants}
}

// CanWrite reports whether userID may change the task. A missing task is
// reported as apperr.ErrTaskNotFound rather than false, so callers can tell
// "missing" from "forbidden".
func (g *AccessGuard) CanWrite(ctx context.Context, userID, taskID uint) (bool, error) {
	task, err := g.tasks.GetByID(ctx, taskID)
	if err != nil {
		return false, err
	}
	return g.canWriteTask(ctx, userID, task)
}

// CanRead reports whether userID may see the task. Write access implies read
// access; a read grant alone is also enough.
func (g *AccessGuard) CanRead(ctx context.Context, userID, taskID uint) (bool, error) {
	task, err := g.tasks.GetByID(ctx, taskID)
	if err != nil {
		return false, err
	}
	ok, err := g.canWriteTask(ctx, userID, task)
	if err != nil || ok {
		return ok, err
	}
	return g.grants.HasRead(ctx, taskID, userID)
}

func (g *AccessGuard) canWriteTask(ctx context.Context, userID uint, task *model.Task) (bool, error) {
	if task.UserID == userID {
		return true, nil
	}
	if task.AssignedUserID != nil && *task.AssignedUserID == userID {
		return true, nil
	}
	return g.grants.HasWrite(ctx, task.ID, userID)
}
