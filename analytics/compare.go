// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"time"

	"github.com/danielhkuo/starboard/models"
)

// DateRange is an inclusive calendar-day range. A zero To means a
// single-day range covering From's day. A zero From is an empty range.
type DateRange struct {
	From time.Time
	To   time.Time
}

// bounds expands the range to [From 00:00:00, To 23:59:59.999999999] in
// the boundaries' own location. Date ranges come from a user-facing
// calendar pick, so unlike meal classification they deliberately use the
// given calendar days rather than UTC.
func (r DateRange) bounds() (time.Time, time.Time) {
	from := r.From
	to := r.To
	if to.IsZero() {
		to = from
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, to.Location())
	return start, end
}

// VotesInRange filters votes whose timestamps fall inside the range.
func VotesInRange(votes []models.Vote, r DateRange) []models.Vote {
	if r.From.IsZero() {
		return nil
	}
	start, end := r.bounds()
	var in []models.Vote
	for _, v := range votes {
		if !v.CreatedAt.Before(start) && !v.CreatedAt.After(end) {
			in = append(in, v)
		}
	}
	return in
}

// Trend classifies a rating difference as up, down or stable. The ±0.1
// dead-band absorbs rounding noise: a difference of exactly 0.1 is stable.
func Trend(difference float64) string {
	switch {
	case difference > 0.1:
		return models.TrendUp
	case difference < -0.1:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

// ComparePeriods computes each meal's average and vote count over two date
// ranges and derives the signed difference, percentage change and trend.
// The output has one entry per input period, in input order.
func ComparePeriods(votes []models.Vote, periods []models.MealPeriod, primary, comparison DateRange) []models.PeriodComparison {
	primaryVotes := VotesInRange(votes, primary)
	comparisonVotes := VotesInRange(votes, comparison)

	out := make([]models.PeriodComparison, len(periods))
	for i, meal := range periods {
		out[i] = compareMeal(meal, periods, primaryVotes, comparisonVotes)
	}
	return out
}

// CompareTodayVsAllTime compares now's calendar day against the span from
// the earliest to the latest recorded vote.
func CompareTodayVsAllTime(votes []models.Vote, periods []models.MealPeriod, now time.Time) []models.PeriodComparison {
	primary := DateRange{From: now, To: now}
	var comparison DateRange
	for _, v := range votes {
		if comparison.From.IsZero() || v.CreatedAt.Before(comparison.From) {
			comparison.From = v.CreatedAt
		}
		if comparison.To.IsZero() || v.CreatedAt.After(comparison.To) {
			comparison.To = v.CreatedAt
		}
	}
	return ComparePeriods(votes, periods, primary, comparison)
}

// compareMeal computes a single meal's comparison. A failure here must not
// abort the rest of the batch, so a panic degrades to a zero-filled entry.
func compareMeal(meal models.MealPeriod, periods []models.MealPeriod, primaryVotes, comparisonVotes []models.Vote) (c models.PeriodComparison) {
	defer func() {
		if recover() != nil {
			c = models.PeriodComparison{Meal: meal, Trend: models.TrendStable}
		}
	}()

	primaryAvg, primaryCount := mealAverage(meal, periods, primaryVotes)
	comparisonAvg, comparisonCount := mealAverage(meal, periods, comparisonVotes)

	// Trend and percentage change use the raw difference; rounding happens
	// only on the values handed back.
	difference := primaryAvg - comparisonAvg
	percentageChange := 0.0
	if comparisonAvg > 0 {
		percentageChange = round1(difference / comparisonAvg * 100)
	}

	return models.PeriodComparison{
		Meal:             meal,
		Primary:          models.PeriodAggregate{Average: Round2(primaryAvg), Count: primaryCount},
		Comparison:       models.PeriodAggregate{Average: Round2(comparisonAvg), Count: comparisonCount},
		Difference:       Round2(difference),
		PercentageChange: percentageChange,
		Trend:            Trend(difference),
	}
}

// mealAverage returns the unrounded mean and count of the votes classified
// into the given meal. Classification runs against the full period list so
// first-match tie-breaking behaves identically everywhere.
func mealAverage(meal models.MealPeriod, periods []models.MealPeriod, votes []models.Vote) (float64, int) {
	sum := 0
	count := 0
	for _, v := range votes {
		if v.Value < 1 || v.Value > 5 {
			continue
		}
		p := PeriodForVote(v, periods)
		if p == nil || p.ID != meal.ID {
			continue
		}
		sum += v.Value
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}
