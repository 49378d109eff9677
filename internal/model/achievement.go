// internal/model/achievement.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AchievementType は実績の種別。固定の6種のみ存在します。
type AchievementType string

const (
	AchievementFirstReflection AchievementType = "first_reflection"
	AchievementReflection10    AchievementType = "reflection_10"
	AchievementReflection50    AchievementType = "reflection_50"
	AchievementReflection100   AchievementType = "reflection_100"
	AchievementStreak7         AchievementType = "streak_7"
	AchievementStreak30        AchievementType = "streak_30"
)

// Achievement は解除済み実績を表します。(ユーザー, 種別) で一意です。
type Achievement struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_achievement,unique" json:"user_id"`
	AchievementType AchievementType `gorm:"not null;index:idx_user_achievement,unique" json:"achievement_type"`
	AchievementName string          `gorm:"not null" json:"achievement_name"`
	Description     string          `json:"description"`
	UnlockedAt      time.Time       `gorm:"not null;index" json:"unlocked_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
