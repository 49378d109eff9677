//go:generate mockery --name ContentService --structname MockContentService --filename mock_content_service.go --output ./mocks --outpkg mocks
// internal/service/content_service.go
package service

import (
	"context"

	"github.com/playboiyetti/MIRROR-MIND/internal/middleware"
	"github.com/playboiyetti/MIRROR-MIND/internal/model"
	"github.com/playboiyetti/MIRROR-MIND/internal/repository"

	"gorm.io/gorm"
)

// ContentService はカテゴリ・質問カードの読み取りを提供します。
// 進捗エンジンからは外部コラボレータ扱い (読み取り専用)。
type ContentService interface {
	GetCategories(ctx context.Context) ([]*model.Category, error)
	GetQuestionsByCategory(ctx context.Context, categoryID string) ([]*model.Question, error)
}

type contentService struct {
	db          *gorm.DB
	contentRepo repository.ContentRepository
}

func NewContentService(db *gorm.DB, contentRepo repository.ContentRepository) ContentService {
	return &contentService{
		db:          db,
		contentRepo: contentRepo,
	}
}

func (s *contentService) GetCategories(ctx context.Context) ([]*model.Category, error) {
	logger := middleware.GetLogger(ctx)

	categories, err := s.contentRepo.FindCategories(ctx, s.db)
	if err != nil {
		logger.Error("Failed to fetch categories", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの取得に失敗しました。", "", err)
	}
	return categories, nil
}

func (s *contentService) GetQuestionsByCategory(ctx context.Context, categoryID string) ([]*model.Question, error) {
	logger := middleware.GetLogger(ctx).With("category_id", categoryID)

	questions, err := s.contentRepo.FindQuestionsByCategory(ctx, s.db, categoryID)
	if err != nil {
		logger.Error("Failed to fetch questions", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "質問カードの取得に失敗しました。", "", err)
	}
	return questions, nil
}

// --- フォールバック ---

// staticContentService は配信元に依存しない組み込みコンテンツです。
// フォールバックポリシーとして fallbackContentService から利用します。
type staticContentService struct{}

// NewStaticContentService は組み込みの静的コンテンツを返すサービスを生成します。
func NewStaticContentService() ContentService {
	return &staticContentService{}
}

func (s *staticContentService) GetCategories(ctx context.Context) ([]*model.Category, error) {
	return []*model.Category{
		{ID: "self_image_identity", Name: "Self-Image & Identity", ThemeColor: "#3AFFD8"},
		{ID: "personal_values", Name: "Personal Values", ThemeColor: "#9B5CFF"},
		{ID: "fears_vulnerability", Name: "Fears & Vulnerability", ThemeColor: "#FF3B5C"},
	}, nil
}

func (s *staticContentService) GetQuestionsByCategory(ctx context.Context, categoryID string) ([]*model.Question, error) {
	return []*model.Question{
		{
			ID:         "mock_1",
			CategoryID: categoryID,
			Front:      "What is the biggest mask you wear in public?",
			Back:       "Masking often protects a perceived vulnerability, yet it also prevents the true self from being fully seen or accepted.",
			Intensity:  1,
		},
	}, nil
}

// fallbackContentService は一次サービスが失敗したときだけ静的コンテンツに
// 切り替えるデコレータです。フォールバック先は呼び出し側が注入します。
type fallbackContentService struct {
	primary  ContentService
	fallback ContentService
}

func NewFallbackContentService(primary, fallback ContentService) ContentService {
	return &fallbackContentService{
		primary:  primary,
		fallback: fallback,
	}
}

func (s *fallbackContentService) GetCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.primary.GetCategories(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Content backend unavailable, serving static categories", "error", err)
		return s.fallback.GetCategories(ctx)
	}
	return categories, nil
}

func (s *fallbackContentService) GetQuestionsByCategory(ctx context.Context, categoryID string) ([]*model.Question, error) {
	questions, err := s.primary.GetQuestionsByCategory(ctx, categoryID)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Content backend unavailable, serving static questions", "error", err, "category_id", categoryID)
		return s.fallback.GetQuestionsByCategory(ctx, categoryID)
	}
	return questions, nil
}
