//go:generate mockery --name ReflectionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"github.com/playboiyetti/MIRROR-MIND/internal/middleware"
	"github.com/playboiyetti/MIRROR-MIND/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReflectionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reflection *model.Reflection) error // トランザクション対応
	FindRecentByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.Reflection, error)
}

type gormReflectionRepository struct{}

func NewGormReflectionRepository() ReflectionRepository {
	return &gormReflectionRepository{}
}

func (r *gormReflectionRepository) Create(ctx context.Context, tx *gorm.DB, reflection *model.Reflection) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(reflection)
	if result.Error != nil {
		logger.Error("Error creating reflection in DB",
			"error", result.Error,
			"user_id", reflection.UserID.String(),
			"question_id", reflection.QuestionID,
		)
		return fmt.Errorf("gormReflectionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormReflectionRepository) FindRecentByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.Reflection, error) {
	logger := middleware.GetLogger(ctx)
	var reflections []*model.Reflection
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reflections)
	if result.Error != nil {
		logger.Error("Error finding recent reflections in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormReflectionRepository.FindRecentByUser: %w", result.Error)
	}
	return reflections, nil
}
