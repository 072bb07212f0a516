// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/starboard/models"
)

// MinutesOfDay returns a timestamp's position within its UTC day as minutes
// since midnight, in [0, 1439]. Classification must be invariant to the
// viewer's timezone and to DST transitions, so the UTC components are the
// only thing ever extracted from a vote timestamp.
func MinutesOfDay(t time.Time) int {
	utc := t.UTC()
	return utc.Hour()*60 + utc.Minute()
}

// ParseClock parses an "HH:MM" or "HH:MM:SS" wall-clock string into minutes
// since midnight. Seconds are ignored.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM or HH:MM:SS", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour*60 + minute, nil
}

// ClockLabel renders a stored period time as "HH:MM", dropping seconds.
// Unparseable input is returned unchanged.
func ClockLabel(s string) string {
	m, err := ParseClock(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// PeriodForVote returns the first active meal period whose time-of-day
// interval contains the vote's UTC timestamp, or nil when none matches.
// Both endpoints are inclusive. A period whose start is later than its end
// wraps past midnight (22:00-02:00 covers 23:30 and 01:00 but not 12:00).
// Ties on touching boundaries go to the earlier-ordered period; periods
// with unparseable times are skipped rather than failing the batch.
func PeriodForVote(vote models.Vote, periods []models.MealPeriod) *models.MealPeriod {
	voteMinutes := MinutesOfDay(vote.CreatedAt)
	for i := range periods {
		p := &periods[i]
		if !p.IsActive {
			continue
		}
		start, err := ParseClock(p.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(p.EndTime)
		if err != nil {
			continue
		}
		if start <= end {
			if voteMinutes >= start && voteMinutes <= end {
				return p
			}
		} else if voteMinutes >= start || voteMinutes <= end {
			return p
		}
	}
	return nil
}

// CurrentPeriod returns the active meal period covering the given instant,
// or nil when no meal is in progress.
func CurrentPeriod(periods []models.MealPeriod, now time.Time) *models.MealPeriod {
	return PeriodForVote(models.Vote{CreatedAt: now}, periods)
}
