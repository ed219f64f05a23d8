package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-manager/internal/apperr"
	"task-manager/internal/model"
)

// PlanRepository handles CRUD for task plans.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *model.TaskPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *model.TaskPlan) error {
	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.TaskPlan{}, id).Error; err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

// DeleteByTask removes every plan whose template is the given task.
func (r *PlanRepository) DeleteByTask(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).
		Delete(&model.TaskPlan{}).Error; err != nil {
		return fmt.Errorf("delete plans by task: %w", err)
	}
	return nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id uint) (*model.TaskPlan, error) {
	var plan model.TaskPlan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return &plan, nil
}

func (r *PlanRepository) ByOwner(ctx context.Context, userID uint) ([]model.TaskPlan, error) {
	var plans []model.TaskPlan
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id ASC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

func (r *PlanRepository) All(ctx context.Context) ([]model.TaskPlan, error) {
	var plans []model.TaskPlan
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list all plans: %w", err)
	}
	return plans, nil
}
