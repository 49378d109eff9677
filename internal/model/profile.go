// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile はユーザーごとの進捗サマリを表します。
// 初回アクセス時にカウンタ0で遅延作成されます (get-or-create)。
type UserProfile struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TotalReflections int        `gorm:"not null;default:0" json:"total_reflections"`
	CurrentStreak    int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak    int        `gorm:"not null;default:0" json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"` // 日付のみ (UTC 0時に正規化)
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// avatarStageThresholds はアバター段階(0〜4)に必要な累計リフレクション数
var avatarStageThresholds = [...]int{0, 20, 50, 100, 200}

// AvatarStage は累計リフレクション数から表示用のアバター段階を導出します。
// DBには保持しません (常に導出)。
func (p *UserProfile) AvatarStage() int {
	stage := 0
	for i, threshold := range avatarStageThresholds {
		if p.TotalReflections >= threshold {
			stage = i
		}
	}
	return stage
}

// ProfileResponse はクライアントに返すプロフィール情報の構造体
type ProfileResponse struct {
	ID               uuid.UUID  `json:"id"`
	TotalReflections int        `json:"total_reflections"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	AvatarStage      int        `json:"avatar_stage"`
	CreatedAt        time.Time  `json:"created_at"`
}

func NewProfileResponse(p *UserProfile) *ProfileResponse {
	return &ProfileResponse{
		ID:               p.ID,
		TotalReflections: p.TotalReflections,
		CurrentStreak:    p.CurrentStreak,
		LongestStreak:    p.LongestStreak,
		LastActivityDate: p.LastActivityDate,
		AvatarStage:      p.AvatarStage(),
		CreatedAt:        p.CreatedAt,
	}
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)
