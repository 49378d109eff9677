// internal/model/category_progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryProgress は (ユーザー, カテゴリ) ごとの完了カウンタを表します。
// カテゴリ内の初回リフレクションで作成され、以降は加算のみです。
type CategoryProgress struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index:idx_user_category,unique"` // 複合ユニークインデックスの一部
	CategoryID         string    `gorm:"not null;index:idx_user_category,unique"`           // 複合ユニークインデックスの一部
	CategoryName       string    `gorm:"not null"`
	QuestionsCompleted int       `gorm:"not null;default:0"`
	TotalQuestions     int       `gorm:"not null;default:30"`
	LastAccessed       time.Time `gorm:"not null;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (CategoryProgress) TableName() string {
	return "category_progress"
}

// CompletionPercentage は表示用の完了率 (0〜100) を導出します。
func (cp *CategoryProgress) CompletionPercentage() float64 {
	if cp.TotalQuestions <= 0 {
		return 0
	}
	return float64(cp.QuestionsCompleted) / float64(cp.TotalQuestions) * 100
}

// CategoryProgressResponse はクライアントに返すカテゴリ進捗の構造体
type CategoryProgressResponse struct {
	CategoryID           string    `json:"category_id"`
	CategoryName         string    `json:"category_name"`
	QuestionsCompleted   int       `json:"questions_completed"`
	TotalQuestions       int       `json:"total_questions"`
	CompletionPercentage float64   `json:"completion_percentage"`
	LastAccessed         time.Time `json:"last_accessed"`
}

func NewCategoryProgressResponse(cp *CategoryProgress) *CategoryProgressResponse {
	return &CategoryProgressResponse{
		CategoryID:           cp.CategoryID,
		CategoryName:         cp.CategoryName,
		QuestionsCompleted:   cp.QuestionsCompleted,
		TotalQuestions:       cp.TotalQuestions,
		CompletionPercentage: cp.CompletionPercentage(),
		LastAccessed:         cp.LastAccessed,
	}
}
