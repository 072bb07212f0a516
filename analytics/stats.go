// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"math"
	"time"

	"github.com/danielhkuo/starboard/models"
)

// Round2 rounds to 2 decimal places, half away from zero. All averages and
// differences leaving this package are rounded exactly once, here.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Summarize computes the vote count, mean rating and 1-5 histogram for a
// vote collection. Zero votes yields a zero average and an all-zero
// distribution, never NaN. Votes with out-of-domain values are skipped so
// the distribution always sums to TotalVotes.
func Summarize(votes []models.Vote) models.RatingSummary {
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	total := 0
	sum := 0
	for _, v := range votes {
		if v.Value < 1 || v.Value > 5 {
			continue
		}
		distribution[v.Value]++
		sum += v.Value
		total++
	}

	average := 0.0
	if total > 0 {
		average = Round2(float64(sum) / float64(total))
	}

	return models.RatingSummary{
		TotalVotes:    total,
		AverageRating: average,
		Distribution:  distribution,
	}
}

// TimeRange formats a period's bounds as "HH:MM - HH:MM" for display.
func TimeRange(p models.MealPeriod) string {
	return ClockLabel(p.StartTime) + " - " + ClockLabel(p.EndTime)
}

// CalculateMealStats partitions votes by classified meal period and
// summarizes each partition. The result has exactly one entry per input
// period, in input order, including periods with zero matched votes —
// a configured meal never disappears from the output. Unclassified votes
// are excluded here but still count in unfiltered totals (Summarize over
// the full vote list).
func CalculateMealStats(votes []models.Vote, periods []models.MealPeriod) []models.MealStats {
	byPeriod := make(map[string][]models.Vote)
	for _, v := range votes {
		if p := PeriodForVote(v, periods); p != nil {
			byPeriod[p.ID] = append(byPeriod[p.ID], v)
		}
	}

	stats := make([]models.MealStats, len(periods))
	for i, p := range periods {
		s := Summarize(byPeriod[p.ID])
		stats[i] = models.MealStats{
			ID:            p.ID,
			Name:          p.Name,
			TimeRange:     TimeRange(p),
			TotalVotes:    s.TotalVotes,
			AverageRating: s.AverageRating,
			Distribution:  s.Distribution,
		}
	}
	return stats
}

// DailyEvolution produces one point per UTC calendar day over the trailing
// window [now-days, now], ascending, always exactly days+1 entries
// regardless of data sparsity. Each point carries every meal's rounded
// average and raw vote count for that day. "now" is an explicit parameter
// so the series is deterministic and testable.
func DailyEvolution(votes []models.Vote, periods []models.MealPeriod, days int, now time.Time) []models.DailyEvolutionPoint {
	if days < 0 {
		days = 0
	}
	nowUTC := now.UTC()
	end := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -days)
	startKey := start.Format("2006-01-02")
	endKey := end.Format("2006-01-02")

	// dateKey -> periodID -> votes
	daily := make(map[string]map[string][]models.Vote)
	for _, v := range votes {
		key := v.CreatedAt.UTC().Format("2006-01-02")
		if key < startKey || key > endKey {
			continue
		}
		p := PeriodForVote(v, periods)
		if p == nil {
			continue
		}
		if daily[key] == nil {
			daily[key] = make(map[string][]models.Vote)
		}
		daily[key][p.ID] = append(daily[key][p.ID], v)
	}

	points := make([]models.DailyEvolutionPoint, 0, days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		point := models.DailyEvolutionPoint{Date: key}
		for _, p := range periods {
			s := Summarize(daily[key][p.ID])
			point.Meals = append(point.Meals, models.MealDayStat{
				Name:    p.Name,
				Average: s.AverageRating,
				Count:   s.TotalVotes,
			})
		}
		points = append(points, point)
	}
	return points
}
