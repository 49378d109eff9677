//go:generate mockery --name ContentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"github.com/playboiyetti/MIRROR-MIND/internal/middleware"
	"github.com/playboiyetti/MIRROR-MIND/internal/model"

	"gorm.io/gorm"
)

// ContentRepository はカテゴリ・質問カードの読み取り専用アクセスです。
// コンテンツの投入は外部 (シードプロセス) の責務。
type ContentRepository interface {
	FindCategories(ctx context.Context, db *gorm.DB) ([]*model.Category, error)
	FindQuestionsByCategory(ctx context.Context, db *gorm.DB, categoryID string) ([]*model.Question, error)
}

type gormContentRepository struct{}

func NewGormContentRepository() ContentRepository {
	return &gormContentRepository{}
}

func (r *gormContentRepository) FindCategories(ctx context.Context, db *gorm.DB) ([]*model.Category, error) {
	logger := middleware.GetLogger(ctx)
	var categories []*model.Category
	result := db.WithContext(ctx).Order("id ASC").Find(&categories)
	if result.Error != nil {
		logger.Error("Error finding categories in DB", "error", result.Error)
		return nil, fmt.Errorf("gormContentRepository.FindCategories: %w", result.Error)
	}
	return categories, nil
}

func (r *gormContentRepository) FindQuestionsByCategory(ctx context.Context, db *gorm.DB, categoryID string) ([]*model.Question, error) {
	logger := middleware.GetLogger(ctx)
	var questions []*model.Question
	result := db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id ASC").Find(&questions)
	if result.Error != nil {
		logger.Error("Error finding questions in DB",
			"error", result.Error,
			"category_id", categoryID,
		)
		return nil, fmt.Errorf("gormContentRepository.FindQuestionsByCategory: %w", result.Error)
	}
	return questions, nil
}
