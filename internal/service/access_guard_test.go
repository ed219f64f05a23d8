package service

import (
	"context"
	"errors"
	"testing"

	"task-manager/internal/apperr"
	"task-manager/internal/model"
)

func TestGuardOwnerHasFullAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.mustCreateTask(t, 1, model.Task{Title: "mine"})

	canWrite, err := f.guard.CanWrite(ctx, 1, task.ID)
	if err != nil || !canWrite {
		t.Fatalf("CanWrite = %v, %v, want true, nil", canWrite, err)
	}
	canRead, err := f.guard.CanRead(ctx, 1, task.ID)
	if err != nil || !canRead {
		t.Fatalf("CanRead = %v, %v, want true, nil", canRead, err)
	}
}

func TestGuardStrangerHasNoAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.mustCreateTask(t, 1, model.Task{Title: "private"})

	canWrite, err := f.guard.CanWrite(ctx, 2, task.ID)
	if err != nil || canWrite {
		t.Fatalf("CanWrite = %v, %v, want false, nil", canWrite, err)
	}
	canRead, err := f.guard.CanRead(ctx, 2, task.ID)
	if err != nil || canRead {
		t.Fatalf("CanRead = %v, %v, want false, nil", canRead, err)
	}
}

func TestGuardAssigneeCanWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.mustCreateTask(t, 1, model.Task{Title: "shared work", AssignedUserID: uintPtr(2)})

	canWrite, err := f.guard.CanWrite(ctx, 2, task.ID)
	if err != nil || !canWrite {
		t.Fatalf("CanWrite = %v, %v, want true, nil", canWrite, err)
	}
}

func TestGuardWriteGrantImpliesRead(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.mustCreateTask(t, 1, model.Task{Title: "doc"})

	if err := f.grants.GrantWrite(ctx, task.ID, 2); err != nil {
		t.Fatalf("grant write: %v", err)
	}

	canRead, err := f.guard.CanRead(ctx, 2, task.ID)
	if err != nil || !canRead {
		t.Fatalf("CanRead = %v, %v, want true, nil", canRead, err)
	}
	// A write grant never materializes a read grant row.
	hasRead, err := f.grants.HasRead(ctx, task.ID, 2)
	if err != nil || hasRead {
		t.Fatalf("HasRead = %v, %v, want false, nil", hasRead, err)
	}
}

func TestGuardReadGrantDoesNotAllowWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.mustCreateTask(t, 1, model.Task{Title: "doc"})

	if err := f.grants.GrantRead(ctx, task.ID, 2); err != nil {
		t.Fatalf("grant read: %v", err)
	}

	canRead, err := f.guard.CanRead(ctx, 2, task.ID)
	if err != nil || !canRead {
		t.Fatalf("CanRead = %v, %v, want true, nil", canRead, err)
	}
	canWrite, err := f.guard.CanWrite(ctx, 2, task.ID)
	if err != nil || canWrite {
		t.Fatalf("CanWrite = %v, %v, want false, nil", canWrite, err)
	}
}

func TestGuardMissingTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.guard.CanWrite(ctx, 1, 999); !errors.Is(err, apperr.ErrTaskNotFound) {
		t.Fatalf("CanWrite err = %v, want ErrTaskNotFound", err)
	}
	if _, err := f.guard.CanRead(ctx, 1, 999); !errors.Is(err, apperr.ErrTaskNotFound) {
		t.Fatalf("CanRead err = %v, want ErrTaskNotFound", err)
	}
}

func TestGuardRevokedGrantLosesAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.mustCreateTask(t, 1, model.Task{Title: "doc"})

	if err := f.grants.GrantRead(ctx, task.ID, 2); err != nil {
		t.Fatalf("grant read: %v", err)
	}
	if err := f.grants.RevokeRead(ctx, task.ID, 2); err != nil {
		t.Fatalf("revoke read: %v", err)
	}

	canRead, err := f.guard.CanRead(ctx, 2, task.ID)
	if err != nil || canRead {
		t.Fatalf("CanRead = %v, %v, want false, nil", canRead, err)
	}
}
