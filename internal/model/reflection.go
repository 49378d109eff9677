// internal/model/reflection.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Reflection は1件の回答(内省)を表します。追記専用で、通常フローでは更新・削除しません。
// QuestionText は提示時点のスナップショットで、コンテンツ側の変更に追従しません。
type Reflection struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QuestionID     string    `gorm:"not null" json:"question_id"`
	CategoryID     string    `gorm:"not null;index" json:"category_id"`
	QuestionText   string    `gorm:"not null" json:"question_text"`
	ReflectionText string    `gorm:"not null" json:"reflection_text"`
	IntensityLevel int       `gorm:"not null;default:1" json:"intensity_level"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Reflection) TableName() string {
	return "reflections"
}

// リフレクション保存リクエストDTO
type PostReflectionRequest struct {
	QuestionID     string `json:"question_id" validate:"required"`
	CategoryID     string `json:"category_id" validate:"required"`
	CategoryName   string `json:"category_name" validate:"required"`
	QuestionText   string `json:"question_text" validate:"required"`
	ReflectionText string `json:"reflection_text" validate:"required,min=1"`
	IntensityLevel int    `json:"intensity_level" validate:"omitempty,min=1,max=5"`
}

// SaveReflectionResponse は保存後に返す更新済みビュー。
// クライアントが個別に再取得しなくて済むよう、保存カスケードの結果をまとめて返します。
type SaveReflectionResponse struct {
	Reflection        *Reflection                 `json:"reflection"`
	Profile           *ProfileResponse            `json:"profile"`
	CategoryProgress  []*CategoryProgressResponse `json:"category_progress"`
	RecentReflections []*Reflection               `json:"recent_reflections"`
	Achievements      []*Achievement              `json:"achievements"`
	NewlyUnlocked     []*Achievement              `json:"newly_unlocked"`
}

// DashboardResponse は進捗画面の一括読み込み用ビュー
type DashboardResponse struct {
	Profile           *ProfileResponse            `json:"profile"`
	CategoryProgress  []*CategoryProgressResponse `json:"category_progress"`
	RecentReflections []*Reflection               `json:"recent_reflections"`
	Achievements      []*Achievement              `json:"achievements"`
}
