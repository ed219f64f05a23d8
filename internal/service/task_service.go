package service

import (
	"context"
	"errors"
	"log"
	"time"

	"task-manager/internal/apperr"
	"task-manager/internal/model"
)

// TaskService owns task CRUD, the parent/child tree and grant
// administration. Every operation takes the acting user explicitly; there is
// no ambient session state. All mutations of existing tasks funnel through
// Update so the write guard and the updated_at refresh are never bypassed.
type TaskService struct {
	tasks  TaskStore
	plans  PlanStore
	grants GrantStore
	guard  *AccessGuard
	levels *LevelService
	now    func() time.Time
}

func NewTaskService(tasks TaskStore, plans PlanStore, grants GrantStore, guard *AccessGuard, levels *LevelService, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{tasks: tasks, plans: plans, grants: grants, guard: guard, levels: levels, now: now}
}

func validateTimeRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperr.ErrInvalidTimeRange
	}
	return nil
}

// Create stores a new task owned by userID and fills in its generated ID.
func (s *TaskService) Create(ctx context.Context, userID uint, task *model.Task) error {
	if err := validateTimeRange(task.StartTime, task.EndTime); err != nil {
		return err
	}
	task.UserID = userID
	now := s.now()
	task.CreatedAt = now
	task.UpdatedAt = now
	return s.tasks.Create(ctx, task)
}

// Update persists task changes on behalf of userID. Ownership and creation
// time never change here. A task moved IN_PROGRESS -> DONE awards experience
// to its owner; a failure there is logged and never rolls the update back.
func (s *TaskService) Update(ctx context.Context, userID uint, task *model.Task) error {
	ok, err := s.guard.CanWrite(ctx, userID, task.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNoRight
	}
	if err := validateTimeRange(task.StartTime, task.EndTime); err != nil {
		return err
	}
	prev, err := s.tasks.GetByID(ctx, task.ID)
	if err != nil {
		return err
	}
	if task.ParentTaskID != nil && (prev.ParentTaskID == nil || *prev.ParentTaskID != *task.ParentTaskID) {
		if err := s.ensureNoCycle(ctx, task.ID, *task.ParentTaskID); err != nil {
			return err
		}
	}
	task.UserID = prev.UserID
	task.CreatedAt = prev.CreatedAt
	task.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return err
	}
	if prev.Status == model.StatusInProgress && task.Status == model.StatusDone {
		if err := s.levels.IncreaseExperience(ctx, prev.UserID); err != nil {
			log.Printf("award experience for task %d: %v", task.ID, err)
		}
	}
	return nil
}

// Delete removes the task together with any plan that uses it as a
// template, so no plan is left pointing at a missing task.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	if err := s.requireWrite(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	return s.plans.DeleteByTask(ctx, taskID)
}

// Get returns the task if userID may read it.
func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	ok, err := s.guard.CanRead(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNoRight
	}
	return s.tasks.GetByID(ctx, taskID)
}

// CreateInner creates task as a child of parentID. The parent must exist and
// be writable by userID.
func (s *TaskService) CreateInner(ctx context.Context, userID, parentID uint, task *model.Task) error {
	if _, err := s.tasks.GetByID(ctx, parentID); err != nil {
		return err
	}
	if err := s.requireWrite(ctx, userID, parentID); err != nil {
		return err
	}
	task.ParentTaskID = &parentID
	return s.Create(ctx, userID, task)
}

// InnerTasks returns the children of taskID; with recursive set it returns
// all descendants in breadth-first order. The visited set bounds the walk in
// case the stored tree ever contains a cycle.
func (s *TaskService) InnerTasks(ctx context.Context, userID, taskID uint, recursive bool) ([]model.Task, error) {
	ok, err := s.guard.CanRead(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNoRight
	}
	if !recursive {
		return s.tasks.Children(ctx, taskID)
	}

	var out []model.Task
	visited := map[uint]bool{taskID: true}
	queue := []uint{taskID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		children, err := s.tasks.Children(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			out = append(out, child)
			queue = append(queue, child.ID)
		}
	}
	return out, nil
}

// Parent returns the task's parent, or nil for a root task.
func (s *TaskService) Parent(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.ParentTaskID == nil {
		return nil, nil
	}
	return s.Get(ctx, userID, *task.ParentTaskID)
}

// AssignUser hands the task to assigneeID. Assignment confers write access.
func (s *TaskService) AssignUser(ctx context.Context, userID, taskID, assigneeID uint) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	task.AssignedUserID = &assigneeID
	return s.Update(ctx, userID, task)
}

// SetStatus moves the task into status through the usual write guard.
// Template tasks are spawn sources only and keep their status.
func (s *TaskService) SetStatus(ctx context.Context, userID, taskID uint, status model.Status) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status == model.StatusTemplate || status == model.StatusTemplate {
		return apperr.ErrTemplateTask
	}
	task.Status = status
	return s.Update(ctx, userID, task)
}

// GrantRead lets targetID read the task. Granting twice is a no-op.
func (s *TaskService) GrantRead(ctx context.Context, actorID, targetID, taskID uint) error {
	if err := s.requireWrite(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.grants.GrantRead(ctx, taskID, targetID)
}

// GrantWrite lets targetID read and change the task. No ReadGrant row is
// created; effective read access follows from the write grant.
func (s *TaskService) GrantWrite(ctx context.Context, actorID, targetID, taskID uint) error {
	if err := s.requireWrite(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.grants.GrantWrite(ctx, taskID, targetID)
}

// RevokeRead removes targetID's read grant. A coexisting write grant stays.
func (s *TaskService) RevokeRead(ctx context.Context, actorID, targetID, taskID uint) error {
	if err := s.requireWrite(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.grants.RevokeRead(ctx, taskID, targetID)
}

// RevokeWrite removes targetID's write grant. A coexisting read grant stays.
func (s *TaskService) RevokeWrite(ctx context.Context, actorID, targetID, taskID uint) error {
	if err := s.requireWrite(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.grants.RevokeWrite(ctx, taskID, targetID)
}

// RevokeAllRead clears every read grant on the task.
func (s *TaskService) RevokeAllRead(ctx context.Context, actorID, taskID uint) error {
	if err := s.requireWrite(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.grants.RevokeAllRead(ctx, taskID)
}

// RevokeAllWrite clears every write grant on the task.
func (s *TaskService) RevokeAllWrite(ctx context.Context, actorID, taskID uint) error {
	if err := s.requireWrite(ctx, actorID, taskID); err != nil {
		return err
	}
	return s.grants.RevokeAllWrite(ctx, taskID)
}

// Readers lists user ids holding a read grant on the task.
func (s *TaskService) Readers(ctx context.Context, actorID, taskID uint) ([]uint, error) {
	if err := s.requireRead(ctx, actorID, taskID); err != nil {
		return nil, err
	}
	return s.grants.Readers(ctx, taskID)
}

// Writers lists user ids holding a write grant on the task.
func (s *TaskService) Writers(ctx context.Context, actorID, taskID uint) ([]uint, error) {
	if err := s.requireRead(ctx, actorID, taskID); err != nil {
		return nil, err
	}
	return s.grants.Writers(ctx, taskID)
}

// ByOwner returns all tasks owned by userID.
func (s *TaskService) ByOwner(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.tasks.ByOwner(ctx, userID)
}

// ByStatus returns userID's tasks with the given status.
func (s *TaskService) ByStatus(ctx context.Context, userID uint, status model.Status) ([]model.Task, error) {
	return s.tasks.ByStatus(ctx, userID, status)
}

// Assigned returns tasks assigned to userID.
func (s *TaskService) Assigned(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.tasks.Assigned(ctx, userID)
}

// CanReadSet returns tasks shared with userID through read grants.
func (s *TaskService) CanReadSet(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.tasks.ReadableBy(ctx, userID)
}

// CanWriteSet returns tasks shared with userID through write grants.
func (s *TaskService) CanWriteSet(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.tasks.WritableBy(ctx, userID)
}

// ByPlan returns userID's tasks spawned by the given plan.
func (s *TaskService) ByPlan(ctx context.Context, userID, planID uint) ([]model.Task, error) {
	return s.tasks.ByPlan(ctx, userID, planID)
}

// Filter returns userID's tasks matching the filter.
func (s *TaskService) Filter(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	return s.tasks.Filter(ctx, userID, filter)
}

func (s *TaskService) requireWrite(ctx context.Context, userID, taskID uint) error {
	ok, err := s.guard.CanWrite(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNoRight
	}
	return nil
}

func (s *TaskService) requireRead(ctx context.Context, userID, taskID uint) error {
	ok, err := s.guard.CanRead(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNoRight
	}
	return nil
}

// ensureNoCycle walks the ancestors of the proposed parent and rejects the
// link if taskID is already among them.
func (s *TaskService) ensureNoCycle(ctx context.Context, taskID, parentID uint) error {
	seen := make(map[uint]bool)
	current := parentID
	for {
		if current == taskID {
			return apperr.ErrParentCycle
		}
		if seen[current] {
			return nil
		}
		seen[current] = true
		parent, err := s.tasks.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperr.ErrTaskNotFound) {
				return nil
			}
			return err
		}
		if parent.ParentTaskID == nil {
			return nil
		}
		current = *parent.ParentTaskID
	}
}
