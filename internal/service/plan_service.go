package service

import (
	"context"
	"errors"
	"log"
	"time"

	"task-manager/internal/apperr"
	"task-manager/internal/model"
)

// PlanService turns task plans into concrete tasks on a fixed-interval grid.
// It is pull-based: nothing happens until a caller invokes Process.
type PlanService struct {
	plans PlanStore
	tasks TaskStore
	now   func() time.Time
}

func NewPlanService(plans PlanStore, tasks TaskStore, now func() time.Time) *PlanService {
	if now == nil {
		now = time.Now
	}
	return &PlanService{plans: plans, tasks: tasks, now: now}
}

// CreatePlan registers a recurring series backed by a template task owned by
// userID. A zero LastCreatedAt anchors the plan at the current time.
func (s *PlanService) CreatePlan(ctx context.Context, userID uint, plan *model.TaskPlan) error {
	if plan.IntervalDuration() < model.MinPlanInterval {
		return apperr.ErrInvalidInterval
	}
	tmpl, err := s.tasks.GetByID(ctx, plan.TaskID)
	if err != nil {
		return err
	}
	if tmpl.UserID != userID {
		return apperr.ErrNoRight
	}
	if tmpl.Status != model.StatusTemplate {
		return apperr.ErrNotTemplate
	}
	plan.UserID = userID
	now := s.now()
	if plan.LastCreatedAt.IsZero() {
		plan.LastCreatedAt = now
	}
	plan.CreatedAt = now
	plan.UpdatedAt = now
	return s.plans.Create(ctx, plan)
}

// PlanEdit carries optional changes to a plan.
type PlanEdit struct {
	Interval *int64
	// StartAt re-anchors the plan so the next spawn lands exactly on it.
	StartAt *time.Time
}

// EditPlan updates the interval and/or re-anchors the plan. An interval
// change applies to future spawns only.
func (s *PlanService) EditPlan(ctx context.Context, userID, planID uint, edit PlanEdit) (*model.TaskPlan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, apperr.ErrNoRight
	}
	if edit.Interval != nil {
		if time.Duration(*edit.Interval)*time.Second < model.MinPlanInterval {
			return nil, apperr.ErrInvalidInterval
		}
		plan.Interval = *edit.Interval
	}
	if edit.StartAt != nil {
		// One interval behind the requested start, so the next spawn due
		// time is the start itself.
		plan.LastCreatedAt = edit.StartAt.Add(-plan.IntervalDuration())
	}
	plan.UpdatedAt = s.now()
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes userID's plan. Tasks already spawned from it stay.
func (s *PlanService) DeletePlan(ctx context.Context, userID, planID uint) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.UserID != userID {
		return apperr.ErrNoRight
	}
	return s.plans.Delete(ctx, planID)
}

// Plan returns userID's plan by id.
func (s *PlanService) Plan(ctx context.Context, userID, planID uint) (*model.TaskPlan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, apperr.ErrNoRight
	}
	return plan, nil
}

// Plans returns all of userID's plans.
func (s *PlanService) Plans(ctx context.Context, userID uint) ([]model.TaskPlan, error) {
	return s.plans.ByOwner(ctx, userID)
}

// Process spawns one task for every whole interval that has elapsed on every
// plan. The anchor only ever advances by whole interval steps, so spawn
// times stay phase-locked no matter how irregularly Process is called, and
// calling it again with the same or an earlier now spawns nothing.
func (s *PlanService) Process(ctx context.Context, now time.Time) error {
	plans, err := s.plans.All(ctx)
	if err != nil {
		return err
	}
	for i := range plans {
		if err := s.processPlan(ctx, &plans[i], now); err != nil {
			return err
		}
	}
	return nil
}

func (s *PlanService) processPlan(ctx context.Context, plan *model.TaskPlan, now time.Time) error {
	step := plan.IntervalDuration()
	if step <= 0 {
		return nil
	}
	tmpl, err := s.tasks.GetByID(ctx, plan.TaskID)
	if err != nil {
		if errors.Is(err, apperr.ErrTaskNotFound) {
			// The template is gone. Leave the plan alone so the rest of
			// the pass still runs.
			log.Printf("plan %d: template task %d missing, skipped", plan.ID, plan.TaskID)
			return nil
		}
		return err
	}

	spawned := false
	for due := plan.LastCreatedAt.Add(step); !due.After(now); due = plan.LastCreatedAt.Add(step) {
		spawn := tmpl.Clone()
		spawn.ID = 0
		spawn.Status = model.StatusTodo
		planID := plan.ID
		spawn.PlanID = &planID
		spawn.CreatedAt = due
		spawn.UpdatedAt = due
		if err := s.tasks.Create(ctx, &spawn); err != nil {
			return err
		}
		plan.LastCreatedAt = due
		spawned = true
	}
	if !spawned {
		return nil
	}
	plan.UpdatedAt = s.now()
	return s.plans.Update(ctx, plan)
}
