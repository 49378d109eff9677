// internal/service/content_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/playboiyetti/MIRROR-MIND/internal/model"
	repomocks "github.com/playboiyetti/MIRROR-MIND/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupContentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect database for testing")
	return db
}

func TestContentService_GetCategories(t *testing.T) {
	ctx := context.Background()
	db := setupContentTestDB(t)

	expected := []*model.Category{
		{ID: "self_image_identity", Name: "Self-Image & Identity", ThemeColor: "#3AFFD8"},
	}

	tests := []struct {
		name      string
		setupMock func(m *repomocks.ContentRepository)
		want      []*model.Category
		wantErr   bool
	}{
		{
			name: "正常系: リポジトリの結果をそのまま返す",
			setupMock: func(m *repomocks.ContentRepository) {
				m.On("FindCategories", ctx, mock.Anything).Return(expected, nil).Once()
			},
			want:    expected,
			wantErr: false,
		},
		{
			name: "異常系: リポジトリのエラーはAppErrorに包んで返す",
			setupMock: func(m *repomocks.ContentRepository) {
				m.On("FindCategories", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			want:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(repomocks.ContentRepository)
			tt.setupMock(mockRepo)
			svc := NewContentService(db, mockRepo)

			got, err := svc.GetCategories(ctx)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *model.AppError
				assert.ErrorAs(t, err, &appErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStaticContentService(t *testing.T) {
	ctx := context.Background()
	svc := NewStaticContentService()

	// 静的カテゴリは3件固定
	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "self_image_identity", categories[0].ID)
	assert.Equal(t, "#3AFFD8", categories[0].ThemeColor)
	assert.Equal(t, "personal_values", categories[1].ID)
	assert.Equal(t, "fears_vulnerability", categories[2].ID)

	// 質問はどのカテゴリでも1件返る
	questions, err := svc.GetQuestionsByCategory(ctx, "personal_values")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "mock_1", questions[0].ID)
	assert.Equal(t, "personal_values", questions[0].CategoryID)
}

func TestFallbackContentService(t *testing.T) {
	ctx := context.Background()
	db := setupContentTestDB(t)

	primaryCategories := []*model.Category{
		{ID: "from_db", Name: "From DB", ThemeColor: "#FFFFFF"},
	}

	t.Run("正常系: 一次サービスが成功すればそれを返す", func(t *testing.T) {
		mockRepo := new(repomocks.ContentRepository)
		mockRepo.On("FindCategories", ctx, mock.Anything).Return(primaryCategories, nil).Once()

		svc := NewFallbackContentService(NewContentService(db, mockRepo), NewStaticContentService())

		got, err := svc.GetCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, primaryCategories, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("正常系: 一次サービスが失敗したら静的コンテンツに切り替わる", func(t *testing.T) {
		mockRepo := new(repomocks.ContentRepository)
		mockRepo.On("FindCategories", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

		svc := NewFallbackContentService(NewContentService(db, mockRepo), NewStaticContentService())

		got, err := svc.GetCategories(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3) // 静的カテゴリ
		assert.Equal(t, "self_image_identity", got[0].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("正常系: 質問取得も同様にフォールバックする", func(t *testing.T) {
		mockRepo := new(repomocks.ContentRepository)
		mockRepo.On("FindQuestionsByCategory", ctx, mock.Anything, "fears_vulnerability").
			Return(nil, errors.New("db down")).Once()

		svc := NewFallbackContentService(NewContentService(db, mockRepo), NewStaticContentService())

		got, err := svc.GetQuestionsByCategory(ctx, "fears_vulnerability")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "fears_vulnerability", got[0].CategoryID)
		mockRepo.AssertExpectations(t)
	})
}
