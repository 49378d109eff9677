// internal/service/achievement_rules.go
package service

import "github.com/playboiyetti/MIRROR-MIND/internal/model"

// AchievementRule は実績1件の定義です。
// ルールをデータとして持つことで、閾値の追加が定義の追記で済みます。
type AchievementRule struct {
	Type        model.AchievementType
	Name        string
	Description string
	Condition   func(p *model.UserProfile) bool
}

// achievementRules は固定の6ルール。保存のたびに全件を再評価します
// (解除は冪等なので再評価しても二重解除にはなりません)。
var achievementRules = []AchievementRule{
	{
		Type:        model.AchievementFirstReflection,
		Name:        "First Step",
		Description: "Completed your first reflection",
		Condition:   func(p *model.UserProfile) bool { return p.TotalReflections >= 1 },
	},
	{
		Type:        model.AchievementReflection10,
		Name:        "Building Awareness",
		Description: "Completed 10 reflections",
		Condition:   func(p *model.UserProfile) bool { return p.TotalReflections >= 10 },
	},
	{
		Type:        model.AchievementReflection50,
		Name:        "Deep Diver",
		Description: "Completed 50 reflections",
		Condition:   func(p *model.UserProfile) bool { return p.TotalReflections >= 50 },
	},
	{
		Type:        model.AchievementReflection100,
		Name:        "Self-Discovery Master",
		Description: "Completed 100 reflections",
		Condition:   func(p *model.UserProfile) bool { return p.TotalReflections >= 100 },
	},
	{
		Type:        model.AchievementStreak7,
		Name:        "Week Warrior",
		Description: "Maintained a 7-day streak",
		Condition:   func(p *model.UserProfile) bool { return p.CurrentStreak >= 7 },
	},
	{
		Type:        model.AchievementStreak30,
		Name:        "Monthly Mindfulness",
		Description: "Maintained a 30-day streak",
		Condition:   func(p *model.UserProfile) bool { return p.CurrentStreak >= 30 },
	},
}

// SatisfiedRules は現在のプロフィールで条件を満たすルールを定義順に返します。
func SatisfiedRules(profile *model.UserProfile) []AchievementRule {
	var satisfied []AchievementRule
	for _, rule := range achievementRules {
		if rule.Condition(profile) {
			satisfied = append(satisfied, rule)
		}
	}
	return satisfied
}
