//go:generate mockery --name AchievementRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/playboiyetti/MIRROR-MIND/internal/middleware"
	"github.com/playboiyetti/MIRROR-MIND/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementRepository interface {
	FindByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, achievementType model.AchievementType) (*model.Achievement, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Achievement, error) // 解除日時降順
	Create(ctx context.Context, tx *gorm.DB, achievement *model.Achievement) error               // トランザクション対応
}

type gormAchievementRepository struct{}

func NewGormAchievementRepository() AchievementRepository {
	return &gormAchievementRepository{}
}

func (r *gormAchievementRepository) FindByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, achievementType model.AchievementType) (*model.Achievement, error) {
	logger := middleware.GetLogger(ctx)
	var achievement model.Achievement
	result := db.WithContext(ctx).
		Where("user_id = ? AND achievement_type = ?", userID, achievementType).
		First(&achievement)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding achievement in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"achievement_type", string(achievementType),
		)
		return nil, fmt.Errorf("gormAchievementRepository.FindByType: %w", result.Error)
	}
	return &achievement, nil
}

func (r *gormAchievementRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Achievement, error) {
	logger := middleware.GetLogger(ctx)
	var achievements []*model.Achievement
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&achievements)
	if result.Error != nil {
		logger.Error("Error finding achievements in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormAchievementRepository.FindByUser: %w", result.Error)
	}
	return achievements, nil
}

func (r *gormAchievementRepository) Create(ctx context.Context, tx *gorm.DB, achievement *model.Achievement) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(achievement)
	if result.Error != nil {
		// (user_id, achievement_type) の複合ユニーク制約違反
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating achievement in DB",
			"error", result.Error,
			"user_id", achievement.UserID.String(),
			"achievement_type", string(achievement.AchievementType),
		)
		return fmt.Errorf("gormAchievementRepository.Create: %w", result.Error)
	}
	return nil
}
