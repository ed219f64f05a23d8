package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-manager/internal/apperr"
	"task-manager/internal/model"
	"task-manager/internal/service"
)

// TaskRepository handles CRUD and projections for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, id).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) ByOwner(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ByStatus(ctx context.Context, userID uint, status model.Status) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND status = ?", userID, status).
		Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by status: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Assigned(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("assigned_user_id = ?", userID).
		Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Children(ctx context.Context, parentID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("parent_task_id = ?", parentID).
		Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list inner tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ByPlan(ctx context.Context, userID, planID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND plan_id = ?", userID, planID).
		Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list plan tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ReadableBy(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Joins("JOIN read_grants ON read_grants.task_id = tasks.id").
		Where("read_grants.user_id = ?", userID).
		Order("tasks.id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list readable tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) WritableBy(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Joins("JOIN write_grants ON write_grants.task_id = tasks.id").
		Where("write_grants.user_id = ?", userID).
		Order("tasks.id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list writable tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Filter(ctx context.Context, userID uint, filter service.TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.TitleContains != "" {
		q = q.Where("title LIKE ?", "%"+filter.TitleContains+"%")
	}

	var tasks []model.Task
	if err := q.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("filter tasks: %w", err)
	}
	return tasks, nil
}
