package service

import (
	"testing"
	"time"

	"github.com/rankten/rankten-backend/internal/game"
	"github.com/rankten/rankten-backend/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	today := day(2026, 8, 31)
	yesterday := day(2026, 8, 30)
	lastWeek := day(2026, 8, 24)

	cases := []struct {
		name        string
		prev        model.Streak
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "first ever submission",
			prev:        model.Streak{UserID: 1},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "played yesterday extends the run",
			prev:        model.Streak{UserID: 1, CurrentStreak: 4, LongestStreak: 4, LastPlayDate: &yesterday},
			wantCurrent: 5,
			wantLongest: 5,
		},
		{
			name:        "gap resets to one",
			prev:        model.Streak{UserID: 1, CurrentStreak: 9, LongestStreak: 9, LastPlayDate: &lastWeek},
			wantCurrent: 1,
			wantLongest: 9,
		},
		{
			name:        "same day is a no-op",
			prev:        model.Streak{UserID: 1, CurrentStreak: 3, LongestStreak: 7, LastPlayDate: &today},
			wantCurrent: 3,
			wantLongest: 7,
		},
		{
			name:        "longest never shrinks on extend",
			prev:        model.Streak{UserID: 1, CurrentStreak: 2, LongestStreak: 10, LastPlayDate: &yesterday},
			wantCurrent: 3,
			wantLongest: 10,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextStreak(tc.prev, today)
			if got.CurrentStreak != tc.wantCurrent {
				t.Errorf("current = %d, want %d", got.CurrentStreak, tc.wantCurrent)
			}
			if got.LongestStreak != tc.wantLongest {
				t.Errorf("longest = %d, want %d", got.LongestStreak, tc.wantLongest)
			}
			if got.LastPlayDate == nil || !got.LastPlayDate.Equal(today) {
				t.Errorf("last play date = %v, want %v", got.LastPlayDate, today)
			}
		})
	}
}

func TestRecordFromSession(t *testing.T) {
	started := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sess := &model.QuizSession{
		UserID:       7,
		QuizDate:     day(2026, 8, 31),
		QuizIndex:    2,
		Score:        540,
		HintsUsed:    3,
		CorrectRanks: []int32{1, 2, 4, 7, 9, 10},
		StartedAt:    started,
	}

	rec := recordFromSession(sess, started.Add(200*time.Second))
	if rec.TotalScore != 540 || rec.CorrectGuesses != 6 || rec.HintsUsed != 3 {
		t.Errorf("record figures = %d/%d/%d, want 540/6/3",
			rec.TotalScore, rec.CorrectGuesses, rec.HintsUsed)
	}
	if rec.TimeUsedSeconds != 200 {
		t.Errorf("time used = %d, want 200", rec.TimeUsedSeconds)
	}
}

func TestRecordFromSessionClampsTime(t *testing.T) {
	started := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sess := &model.QuizSession{StartedAt: started}

	rec := recordFromSession(sess, started.Add(game.OverallBudget+time.Hour))
	if rec.TimeUsedSeconds != game.TotalSeconds {
		t.Errorf("time used = %d, want clamp to %d", rec.TimeUsedSeconds, game.TotalSeconds)
	}

	rec = recordFromSession(sess, started.Add(-time.Second))
	if rec.TimeUsedSeconds != 0 {
		t.Errorf("time used = %d, want clamp to 0", rec.TimeUsedSeconds)
	}
}
