// internal/model/profile_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_AvatarStage(t *testing.T) {
	tests := []struct {
		name             string
		totalReflections int
		wantStage        int
	}{
		{"正常系: 0件は段階0", 0, 0},
		{"正常系: 19件はまだ段階0", 19, 0},
		{"正常系: 20件で段階1", 20, 1},
		{"正常系: 49件は段階1", 49, 1},
		{"正常系: 50件で段階2", 50, 2},
		{"正常系: 100件で段階3", 100, 3},
		{"正常系: 200件で段階4", 200, 4},
		{"正常系: 200件超でも段階4のまま", 999, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{TotalReflections: tt.totalReflections}
			assert.Equal(t, tt.wantStage, p.AvatarStage())
		})
	}
}

func TestCategoryProgress_CompletionPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{"正常系: 0/30は0%", 0, 30, 0},
		{"正常系: 15/30は50%", 15, 30, 50},
		{"正常系: 30/30は100%", 30, 30, 100},
		{"異常系: 分母0は0%を返す", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := &CategoryProgress{QuestionsCompleted: tt.completed, TotalQuestions: tt.total}
			assert.InDelta(t, tt.want, cp.CompletionPercentage(), 0.001)
		})
	}
}
