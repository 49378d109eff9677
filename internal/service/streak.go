// internal/service/streak.go
package service

import "time"

// StreakState は連続記録の計算に必要なプロフィールの断面です。
type StreakState struct {
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate *time.Time
}

// utcDate は時刻をUTCの日付 (0時) に正規化します。
// 日数差の計算はすべてこの正規化後の値で行います (タイムゾーン差異・DSTの影響を受けない)。
func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AdvanceStreak は連続記録を1ステップ進める純粋関数です。
// 戻り値の bool は永続化が必要かどうか (同日2回目以降は false)。
//   - 初回アクティビティ: 1
//   - 前日から連続: +1
//   - 2日以上空き、または時計逆行: 1 にリセット
//
// LongestStreak は常に新しい CurrentStreak との最大値を取ります。
func AdvanceStreak(state StreakState, now time.Time) (StreakState, bool) {
	today := utcDate(now)

	newStreak := state.CurrentStreak
	if state.LastActivityDate == nil {
		newStreak = 1
	} else {
		lastDate := utcDate(*state.LastActivityDate)
		diffDays := int(today.Sub(lastDate).Hours() / 24)

		switch {
		case diffDays == 0:
			return state, false
		case diffDays == 1:
			newStreak = state.CurrentStreak + 1
		default:
			newStreak = 1
		}
	}

	longest := state.LongestStreak
	if newStreak > longest {
		longest = newStreak
	}

	return StreakState{
		CurrentStreak:    newStreak,
		LongestStreak:    longest,
		LastActivityDate: &today,
	}, true
}
