package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/apierr"
	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/repos"
)

type StreakState struct {
	CurrentStreakDays int    `json:"current_streak_days"`
	LongestStreakDays int    `json:"longest_streak_days"`
	LastStreakDate    string `json:"last_streak_date,omitempty"`
	TodayCounted      bool   `json:"today_counted"`
}

type StreakService interface {
	// Streak derives the state from the distinct local calendar days on which
	// the user earned XP. tzOffsetMinutes is the client's UTC offset in
	// minutes east of UTC.
	Streak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, tzOffsetMinutes int) (StreakState, error)
}

type streakService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.XPTransactionRepo
	now  func() time.Time
}

func NewStreakService(db *gorm.DB, baseLog *logger.Logger, repo repos.XPTransactionRepo) StreakService {
	return &streakService{
		db:   db,
		log:  baseLog.With("service", "StreakService"),
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *streakService) Streak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, tzOffsetMinutes int) (StreakState, error) {
	if userID == uuid.Nil {
		return StreakState{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if tzOffsetMinutes < -14*60 || tzOffsetMinutes > 14*60 {
		return StreakState{}, apierr.New(http.StatusBadRequest, "tz_offset_out_of_range",
			fmt.Errorf("%w: tz offset %d out of range", ErrInvalidInput, tzOffsetMinutes))
	}
	times, err := s.repo.OccurredAtByUserID(ctx, tx, userID)
	if err != nil {
		return StreakState{}, err
	}
	return ComputeStreak(times, tzOffsetMinutes, s.now()), nil
}

// ComputeStreak walks backward from "today" in the caller's local time zone.
// A day counts once no matter how many transactions landed on it. If today
// has no XP yet, the walk starts at yesterday: an unspent today does not
// break an existing streak, it just is not counted.
func ComputeStreak(times []time.Time, tzOffsetMinutes int, asOf time.Time) StreakState {
	if len(times) == 0 {
		return StreakState{}
	}
	offset := time.Duration(tzOffsetMinutes) * time.Minute

	daySet := make(map[int]bool, len(times))
	for _, t := range times {
		daySet[localDay(t, offset)] = true
	}
	days := make([]int, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Ints(days)

	today := localDay(asOf, offset)
	state := StreakState{
		TodayCounted:   daySet[today],
		LastStreakDate: dayToDate(days[len(days)-1]),
	}

	start := today
	if !daySet[today] {
		start = today - 1
	}
	for d := start; daySet[d]; d-- {
		state.CurrentStreakDays++
	}

	run := 1
	longest := 1
	for i := 1; i < len(days); i++ {
		if days[i] == days[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	state.LongestStreakDays = longest
	return state
}

// localDay buckets an instant into a calendar day index for the given offset.
func localDay(t time.Time, offset time.Duration) int {
	local := t.Add(offset)
	return int(local.Unix() / 86400)
}

func dayToDate(day int) string {
	return time.Unix(int64(day)*86400, 0).UTC().Format("2006-01-02")
}
