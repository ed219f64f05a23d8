package service

import (
	"context"
	"time"

	"task-manager/internal/apperr"
	"task-manager/internal/model"
)

// CategoryService provides owner-scoped category CRUD. Only the owning user
// may see or change a category.
type CategoryService struct {
	categories CategoryStore
	now        func() time.Time
}

func NewCategoryService(categories CategoryStore, now func() time.Time) *CategoryService {
	if now == nil {
		now = time.Now
	}
	return &CategoryService{categories: categories, now: now}
}

// Create stores a new category owned by userID.
func (s *CategoryService) Create(ctx context.Context, userID uint, name string) (*model.Category, error) {
	now := s.now()
	category := &model.Category{
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Rename changes the category name.
func (s *CategoryService) Rename(ctx context.Context, userID, id uint, name string) (*model.Category, error) {
	category, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.UpdatedAt = s.now()
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes userID's category. Tasks referencing it keep the dangling
// id; listings simply show no category name for them.
func (s *CategoryService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

// Get returns userID's category by id.
func (s *CategoryService) Get(ctx context.Context, userID, id uint) (*model.Category, error) {
	return s.owned(ctx, userID, id)
}

// List returns all of userID's categories.
func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.categories.ByOwner(ctx, userID)
}

func (s *CategoryService) owned(ctx context.Context, userID, id uint) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperr.ErrNoRight
	}
	return category, nil
}
