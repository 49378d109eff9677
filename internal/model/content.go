// internal/model/content.go
package model

import "time"

// Category は質問カードのカテゴリ (コンテンツ側、読み取り専用)
type Category struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	ThemeColor  string    `gorm:"not null;default:'#9B5CFF'" json:"theme_color"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// Question は1枚の質問カード (コンテンツ側、読み取り専用)
type Question struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	CategoryID string    `gorm:"not null;index" json:"category_id"`
	Front      string    `gorm:"not null" json:"front"` // カードの表面 (問いかけ)
	Back       string    `gorm:"not null" json:"back"`  // カードの裏面 (解説)
	Intensity  int       `gorm:"not null;default:1" json:"intensity"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
