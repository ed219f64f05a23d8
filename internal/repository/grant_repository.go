package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// GrantRepository manages the two independent grant tables.
type GrantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

func (r *GrantRepository) GrantRead(ctx context.Context, taskID, userID uint) error {
	var grant model.ReadGrant
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		FirstOrCreate(&grant, model.ReadGrant{TaskID: taskID, UserID: userID}).Error
	if err != nil {
		return fmt.Errorf("grant read: %w", err)
	}
	return nil
}

func (r *GrantRepository) GrantWrite(ctx context.Context, taskID, userID uint) error {
	var grant model.WriteGrant
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		FirstOrCreate(&grant, model.WriteGrant{TaskID: taskID, UserID: userID}).Error
	if err != nil {
		return fmt.Errorf("grant write: %w", err)
	}
	return nil
}

func (r *GrantRepository) RevokeRead(ctx context.Context, taskID, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&model.ReadGrant{}).Error; err != nil {
		return fmt.Errorf("revoke read: %w", err)
	}
	return nil
}

func (r *GrantRepository) RevokeWrite(ctx context.Context, taskID, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&model.WriteGrant{}).Error; err != nil {
		return fmt.Errorf("revoke write: %w", err)
	}
	return nil
}

func (r *GrantRepository) RevokeAllRead(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Delete(&model.ReadGrant{}).Error; err != nil {
		return fmt.Errorf("revoke all read: %w", err)
	}
	return nil
}

func (r *GrantRepository) RevokeAllWrite(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Delete(&model.WriteGrant{}).Error; err != nil {
		return fmt.Errorf("revoke all write: %w", err)
	}
	return nil
}

func (r *GrantRepository) HasRead(ctx context.Context, taskID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ReadGrant{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check read grant: %w", err)
	}
	return count > 0, nil
}

func (r *GrantRepository) HasWrite(ctx context.Context, taskID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.WriteGrant{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check write grant: %w", err)
	}
	return count > 0, nil
}

func (r *GrantRepository) Readers(ctx context.Context, taskID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.ReadGrant{}).
		Where("task_id = ?", taskID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list readers: %w", err)
	}
	return ids, nil
}

func (r *GrantRepository) Writers(ctx context.Context, taskID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.WriteGrant{}).
		Where("task_id = ?", taskID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list writers: %w", err)
	}
	return ids, nil
}
