//go:generate mockery --name CategoryProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playboiyetti/MIRROR-MIND/internal/middleware"
	"github.com/playboiyetti/MIRROR-MIND/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryProgressRepository interface {
	FindByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, categoryID string) (*model.CategoryProgress, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.CategoryProgress, error) // 最終アクセス降順
	Create(ctx context.Context, tx *gorm.DB, progress *model.CategoryProgress) error                  // トランザクション対応
	IncrementCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categoryID string, accessedAt time.Time) error
}

type gormCategoryProgressRepository struct{}

func NewGormCategoryProgressRepository() CategoryProgressRepository {
	return &gormCategoryProgressRepository{}
}

func (r *gormCategoryProgressRepository) FindByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, categoryID string) (*model.CategoryProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.CategoryProgress
	result := db.WithContext(ctx).Where("user_id = ? AND category_id = ?", userID, categoryID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding category progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"category_id", categoryID,
		)
		return nil, fmt.Errorf("gormCategoryProgressRepository.FindByCategory: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormCategoryProgressRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.CategoryProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progresses []*model.CategoryProgress
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_accessed DESC").
		Find(&progresses)
	if result.Error != nil {
		logger.Error("Error finding category progress list in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormCategoryProgressRepository.FindByUser: %w", result.Error)
	}
	return progresses, nil
}

func (r *gormCategoryProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.CategoryProgress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating category progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"category_id", progress.CategoryID,
		)
		return fmt.Errorf("gormCategoryProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCategoryProgressRepository) IncrementCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categoryID string, accessedAt time.Time) error {
	logger := middleware.GetLogger(ctx)
	updates := map[string]interface{}{
		"questions_completed": gorm.Expr("questions_completed + 1"),
		"last_accessed":       accessedAt,
	}
	result := tx.WithContext(ctx).Model(&model.CategoryProgress{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error incrementing category progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"category_id", categoryID,
		)
		return fmt.Errorf("gormCategoryProgressRepository.IncrementCompleted: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
