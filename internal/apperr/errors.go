// Package apperr defines the domain error sentinels shared across services.
// Repositories translate storage-level "not found" results into these at the
// boundary so callers only ever compare with errors.Is.
package apperr

import "errors"

var (
	ErrNoRight                  = errors.New("user has no right for this action")
	ErrTaskNotFound             = errors.New("task does not exist")
	ErrPlanNotFound             = errors.New("task plan does not exist")
	ErrNotificationNotFound     = errors.New("notification does not exist")
	ErrCategoryNotFound         = errors.New("category does not exist")
	ErrUserNotFound             = errors.New("user does not exist")
	ErrInvalidTimeRange         = errors.New("start time greater than end time")
	ErrInvalidInterval          = errors.New("plan interval must be at least 300 seconds")
	ErrInvalidRelativeStartTime = errors.New("invalid relative start time")
	ErrNotificationNotPending   = errors.New("notification is not pending")
	ErrParentCycle              = errors.New("task cannot become its own ancestor")
	ErrTemplateTask             = errors.New("template tasks cannot change status")
	ErrNotTemplate              = errors.New("plan requires a template task")
)
