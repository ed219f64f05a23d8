package service

import (
	"context"
	"errors"
	"time"

	"task-manager/internal/apperr"
	"task-manager/internal/model"
)

// NotificationService moves reminders through CREATED -> PENDING -> SHOWN.
// SHOWN is terminal; no transition ever reverses. Delivery is at-least-once:
// a notification stays PENDING until a client acknowledges it.
type NotificationService struct {
	notifications NotificationStore
	tasks         TaskStore
	guard         *AccessGuard
	now           func() time.Time
}

func NewNotificationService(notifications NotificationStore, tasks TaskStore, guard *AccessGuard, now func() time.Time) *NotificationService {
	if now == nil {
		now = time.Now
	}
	return &NotificationService{notifications: notifications, tasks: tasks, guard: guard, now: now}
}

// Create attaches a reminder to a task. The task must be readable by userID
// and already have a start time; the relative offset must not be negative.
func (s *NotificationService) Create(ctx context.Context, userID uint, n *model.Notification) error {
	if n.RelativeStartTime < 0 {
		return apperr.ErrInvalidRelativeStartTime
	}
	ok, err := s.guard.CanRead(ctx, userID, n.TaskID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNoRight
	}
	task, err := s.tasks.GetByID(ctx, n.TaskID)
	if err != nil {
		return err
	}
	if task.StartTime == nil {
		return apperr.ErrInvalidRelativeStartTime
	}
	n.UserID = userID
	n.Status = model.NotificationCreated
	now := s.now()
	n.CreatedAt = now
	n.UpdatedAt = now
	return s.notifications.Create(ctx, n)
}

// NotificationEdit carries optional changes to a notification.
type NotificationEdit struct {
	Title             *string
	RelativeStartTime *int64
}

// Edit updates title and/or relative offset. Status is not editable here;
// only Process and Acknowledge move it.
func (s *NotificationService) Edit(ctx context.Context, userID, id uint, edit NotificationEdit) (*model.Notification, error) {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if edit.Title != nil {
		n.Title = *edit.Title
	}
	if edit.RelativeStartTime != nil {
		if *edit.RelativeStartTime < 0 {
			return nil, apperr.ErrInvalidRelativeStartTime
		}
		n.RelativeStartTime = *edit.RelativeStartTime
	}
	n.UpdatedAt = s.now()
	if err := s.notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes userID's notification.
func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}

// Process promotes every CREATED notification whose trigger time
// (task start time minus relative offset) has passed. Notifications whose
// task is gone or has lost its start time are left untouched.
func (s *NotificationService) Process(ctx context.Context, now time.Time) error {
	created, err := s.notifications.AllByStatus(ctx, model.NotificationCreated)
	if err != nil {
		return err
	}
	for i := range created {
		n := &created[i]
		task, err := s.tasks.GetByID(ctx, n.TaskID)
		if err != nil {
			if errors.Is(err, apperr.ErrTaskNotFound) {
				continue
			}
			return err
		}
		if task.StartTime == nil {
			continue
		}
		trigger := task.StartTime.Add(-time.Duration(n.RelativeStartTime) * time.Second)
		if trigger.After(now) {
			continue
		}
		n.Status = model.NotificationPending
		n.UpdatedAt = s.now()
		if err := s.notifications.Update(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// Acknowledge marks a PENDING notification as shown. Acknowledging anything
// not currently PENDING fails, so an already shown reminder is never
// silently re-confirmed.
func (s *NotificationService) Acknowledge(ctx context.Context, userID, id uint) error {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if n.Status != model.NotificationPending {
		return apperr.ErrNotificationNotPending
	}
	n.Status = model.NotificationShown
	n.UpdatedAt = s.now()
	return s.notifications.Update(ctx, n)
}

// DuePending returns userID's notifications awaiting acknowledgement.
func (s *NotificationService) DuePending(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.notifications.ByStatus(ctx, userID, model.NotificationPending)
}

// ByStatus returns userID's notifications with the given status.
func (s *NotificationService) ByStatus(ctx context.Context, userID uint, status model.NotificationStatus) ([]model.Notification, error) {
	return s.notifications.ByStatus(ctx, userID, status)
}

// All returns every notification belonging to userID.
func (s *NotificationService) All(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.notifications.ByOwner(ctx, userID)
}

func (s *NotificationService) owned(ctx context.Context, userID, id uint) (*model.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, apperr.ErrNoRight
	}
	return n, nil
}
