// internal/service/achievement_rules_test.go
package service

import (
	"testing"

	"github.com/playboiyetti/MIRROR-MIND/internal/model"

	"github.com/stretchr/testify/assert"
)

func ruleTypes(rules []AchievementRule) []model.AchievementType {
	var types []model.AchievementType
	for _, r := range rules {
		types = append(types, r.Type)
	}
	return types
}

func TestSatisfiedRules(t *testing.T) {
	tests := []struct {
		name      string
		profile   *model.UserProfile
		wantTypes []model.AchievementType
	}{
		{
			name:      "正常系: 新規プロフィールは何も満たさない",
			profile:   &model.UserProfile{TotalReflections: 0, CurrentStreak: 0},
			wantTypes: nil,
		},
		{
			name:      "正常系: 1件目でfirst_reflectionのみ",
			profile:   &model.UserProfile{TotalReflections: 1, CurrentStreak: 1},
			wantTypes: []model.AchievementType{model.AchievementFirstReflection},
		},
		{
			name:    "正常系: 10件でreflection_10も満たす",
			profile: &model.UserProfile{TotalReflections: 10, CurrentStreak: 1},
			wantTypes: []model.AchievementType{
				model.AchievementFirstReflection,
				model.AchievementReflection10,
			},
		},
		{
			name:    "正常系: 連続7日でstreak_7を満たす",
			profile: &model.UserProfile{TotalReflections: 7, CurrentStreak: 7},
			wantTypes: []model.AchievementType{
				model.AchievementFirstReflection,
				model.AchievementStreak7,
			},
		},
		{
			name:    "正常系: 閾値ちょうどを超えても満たしたまま (単調)",
			profile: &model.UserProfile{TotalReflections: 55, CurrentStreak: 31},
			wantTypes: []model.AchievementType{
				model.AchievementFirstReflection,
				model.AchievementReflection10,
				model.AchievementReflection50,
				model.AchievementStreak7,
				model.AchievementStreak30,
			},
		},
		{
			name:    "正常系: 全ルールを満たす",
			profile: &model.UserProfile{TotalReflections: 200, CurrentStreak: 30},
			wantTypes: []model.AchievementType{
				model.AchievementFirstReflection,
				model.AchievementReflection10,
				model.AchievementReflection50,
				model.AchievementReflection100,
				model.AchievementStreak7,
				model.AchievementStreak30,
			},
		},
		{
			name:      "異常系: 閾値未満 (9件) ではreflection_10は満たさない",
			profile:   &model.UserProfile{TotalReflections: 9, CurrentStreak: 0},
			wantTypes: []model.AchievementType{model.AchievementFirstReflection},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SatisfiedRules(tt.profile)
			assert.Equal(t, tt.wantTypes, ruleTypes(got))
		})
	}
}

func TestAchievementRules_Metadata(t *testing.T) {
	// ルールは6件固定で、表示名と説明を持つこと
	assert.Len(t, achievementRules, 6)
	for _, rule := range achievementRules {
		assert.NotEmpty(t, rule.Type)
		assert.NotEmpty(t, rule.Name)
		assert.NotEmpty(t, rule.Description)
		assert.NotNil(t, rule.Condition)
	}
}
