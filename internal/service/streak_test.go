// internal/service/streak_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// テスト用のヘルパー: 指定日のUTC 0時を返す
func utcDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestAdvanceStreak(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	today := utcDay(2025, 6, 15)
	yesterday := utcDay(2025, 6, 14)
	threeDaysAgo := utcDay(2025, 6, 12)
	tomorrow := utcDay(2025, 6, 16)

	tests := []struct {
		name        string
		state       StreakState
		now         time.Time
		wantState   StreakState
		wantChanged bool
	}{
		{
			name:  "正常系: 初回アクティビティは1から開始",
			state: StreakState{CurrentStreak: 0, LongestStreak: 0, LastActivityDate: nil},
			now:   now,
			wantState: StreakState{
				CurrentStreak:    1,
				LongestStreak:    1,
				LastActivityDate: timePtr(today),
			},
			wantChanged: true,
		},
		{
			name:        "正常系: 同日2回目は変更なし",
			state:       StreakState{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: timePtr(today)},
			now:         now,
			wantState:   StreakState{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: timePtr(today)},
			wantChanged: false,
		},
		{
			name:  "正常系: 前日から連続で+1",
			state: StreakState{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: timePtr(yesterday)},
			now:   now,
			wantState: StreakState{
				CurrentStreak:    4,
				LongestStreak:    5,
				LastActivityDate: timePtr(today),
			},
			wantChanged: true,
		},
		{
			name:  "正常系: 最長記録を更新する",
			state: StreakState{CurrentStreak: 5, LongestStreak: 5, LastActivityDate: timePtr(yesterday)},
			now:   now,
			wantState: StreakState{
				CurrentStreak:    6,
				LongestStreak:    6,
				LastActivityDate: timePtr(today),
			},
			wantChanged: true,
		},
		{
			name:  "正常系: 2日以上空いたら1にリセット (最長は保持)",
			state: StreakState{CurrentStreak: 7, LongestStreak: 10, LastActivityDate: timePtr(threeDaysAgo)},
			now:   now,
			wantState: StreakState{
				CurrentStreak:    1,
				LongestStreak:    10,
				LastActivityDate: timePtr(today),
			},
			wantChanged: true,
		},
		{
			name:  "異常系: 時計の逆行 (最終日が未来) は1にリセット",
			state: StreakState{CurrentStreak: 4, LongestStreak: 4, LastActivityDate: timePtr(tomorrow)},
			now:   now,
			wantState: StreakState{
				CurrentStreak:    1,
				LongestStreak:    4,
				LastActivityDate: timePtr(today),
			},
			wantChanged: true,
		},
		{
			name: "正常系: タイムゾーン付きの時刻でもUTCの日付で判定される",
			// JSTの朝8時 = UTCでは前日の23時。UTC基準で「前日」扱いになる
			state: StreakState{CurrentStreak: 2, LongestStreak: 2, LastActivityDate: timePtr(utcDay(2025, 6, 13))},
			now:   time.Date(2025, 6, 15, 8, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
			wantState: StreakState{
				CurrentStreak:    3,
				LongestStreak:    3,
				LastActivityDate: timePtr(utcDay(2025, 6, 14)),
			},
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotState, gotChanged := AdvanceStreak(tt.state, tt.now)

			assert.Equal(t, tt.wantChanged, gotChanged)
			assert.Equal(t, tt.wantState.CurrentStreak, gotState.CurrentStreak)
			assert.Equal(t, tt.wantState.LongestStreak, gotState.LongestStreak)
			if tt.wantState.LastActivityDate == nil {
				assert.Nil(t, gotState.LastActivityDate)
			} else {
				assert.NotNil(t, gotState.LastActivityDate)
				assert.True(t, tt.wantState.LastActivityDate.Equal(*gotState.LastActivityDate),
					"LastActivityDate: want %v, got %v", tt.wantState.LastActivityDate, gotState.LastActivityDate)
			}
		})
	}
}

func TestAdvanceStreak_MonthBoundary(t *testing.T) {
	// 月またぎでも日数差1として扱われること
	lastDay := utcDay(2025, 5, 31)
	state := StreakState{CurrentStreak: 9, LongestStreak: 9, LastActivityDate: timePtr(lastDay)}

	gotState, changed := AdvanceStreak(state, time.Date(2025, 6, 1, 0, 5, 0, 0, time.UTC))

	assert.True(t, changed)
	assert.Equal(t, 10, gotState.CurrentStreak)
	assert.Equal(t, 10, gotState.LongestStreak)
}
