//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
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

type ProfileRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProfile, error)
	Create(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) error // トランザクション対応
	UpdateStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, currentStreak, longestStreak int, lastActivityDate time.Time) error
	IncrementTotalReflections(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Find(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.UserProfile
	result := db.WithContext(ctx).Where("id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user profile in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProfileRepository.Find: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) Create(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(profile)
	if result.Error != nil {
		// 同時作成の競合は主キー制約違反としてGORMのエラーで返る
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating user profile in DB",
			"error", result.Error,
			"user_id", profile.ID.String(),
		)
		return fmt.Errorf("gormProfileRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) UpdateStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, currentStreak, longestStreak int, lastActivityDate time.Time) error {
	logger := middleware.GetLogger(ctx)
	updates := map[string]interface{}{
		"current_streak":     currentStreak,
		"longest_streak":     longestStreak,
		"last_activity_date": lastActivityDate,
	}
	result := tx.WithContext(ctx).Model(&model.UserProfile{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating streak in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormProfileRepository.UpdateStreak: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProfileRepository) IncrementTotalReflections(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	// DB側でのアトミックな加算。read-modify-write のレース対策。
	result := tx.WithContext(ctx).Model(&model.UserProfile{}).Where("id = ?", userID).
		Update("total_reflections", gorm.Expr("total_reflections + 1"))
	if result.Error != nil {
		logger.Error("Error incrementing total reflections in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormProfileRepository.IncrementTotalReflections: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
