package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// LevelRepository manages per-user experience counters.
type LevelRepository struct {
	db *gorm.DB
}

func NewLevelRepository(db *gorm.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

// GetOrCreateByUser returns the user's level row, creating it on first use.
func (r *LevelRepository) GetOrCreateByUser(ctx context.Context, userID uint) (*model.Level, error) {
	var level model.Level
	db := r.db.WithContext(ctx)
	err := db.Where("user_id = ?", userID).First(&level).Error
	switch {
	case err == nil:
		return &level, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		level = model.Level{UserID: userID, Experience: 1}
		if err := db.Create(&level).Error; err != nil {
			return nil, fmt.Errorf("create level: %w", err)
		}
		return &level, nil
	default:
		return nil, fmt.Errorf("find level: %w", err)
	}
}

func (r *LevelRepository) Update(ctx context.Context, level *model.Level) error {
	if err := r.db.WithContext(ctx).Save(level).Error; err != nil {
		return fmt.Errorf("update level: %w", err)
	}
	return nil
}
