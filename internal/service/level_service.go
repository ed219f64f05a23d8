package service

import (
	"context"

	"task-manager/internal/model"
)

// LevelService tracks per-user experience. The counter only ever grows.
type LevelService struct {
	levels LevelStore
}

func NewLevelService(levels LevelStore) *LevelService {
	return &LevelService{levels: levels}
}

// IncreaseExperience awards the completed-task score to the user's counter,
// creating the counter on first use.
func (s *LevelService) IncreaseExperience(ctx context.Context, userID uint) error {
	level, err := s.levels.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return err
	}
	level.Experience += model.TaskCompletedScore
	return s.levels.Update(ctx, level)
}

// Get returns the user's level record, creating it on first use.
func (s *LevelService) Get(ctx context.Context, userID uint) (*model.Level, error) {
	return s.levels.GetOrCreateByUser(ctx, userID)
}
