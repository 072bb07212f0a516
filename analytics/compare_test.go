// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"testing"
	"time"

	"github.com/danielhkuo/starboard/models"
)

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	return d
}

func TestTrend(t *testing.T) {
	tests := []struct {
		difference float64
		want       string
	}{
		{0.5, models.TrendUp},
		{0.11, models.TrendUp},
		{0.1, models.TrendStable},
		{0, models.TrendStable},
		{-0.1, models.TrendStable},
		{-0.11, models.TrendDown},
		{-2, models.TrendDown},
	}
	for _, tt := range tests {
		if got := Trend(tt.difference); got != tt.want {
			t.Errorf("Trend(%v) = %q, want %q", tt.difference, got, tt.want)
		}
	}
}

func TestVotesInRange(t *testing.T) {
	votes := []models.Vote{
		ratedVoteAt(t, "2024-03-01T08:00:00Z", 3),
		ratedVoteAt(t, "2024-03-05T23:59:59Z", 4),
		ratedVoteAt(t, "2024-03-06T00:00:00Z", 5),
	}

	t.Run("inclusive day bounds", func(t *testing.T) {
		in := VotesInRange(votes, DateRange{From: day(t, "2024-03-01"), To: day(t, "2024-03-05")})
		if len(in) != 2 {
			t.Fatalf("Expected 2 votes in range, got %d", len(in))
		}
	})

	t.Run("zero To covers a single day", func(t *testing.T) {
		in := VotesInRange(votes, DateRange{From: day(t, "2024-03-05")})
		if len(in) != 1 || in[0].Value != 4 {
			t.Fatalf("Expected only the 2024-03-05 vote, got %d votes", len(in))
		}
	})

	t.Run("zero From is empty", func(t *testing.T) {
		if in := VotesInRange(votes, DateRange{}); in != nil {
			t.Fatalf("Expected nil, got %d votes", len(in))
		}
	})
}

func TestComparePeriods(t *testing.T) {
	breakfast := period("b", "Breakfast", "07:00", "10:30")
	dinner := period("d", "Dinner", "18:00", "21:30")
	periods := []models.MealPeriod{breakfast, dinner}

	votes := []models.Vote{
		// Comparison week: breakfast averages 3.0.
		ratedVoteAt(t, "2024-03-01T08:00:00Z", 2),
		ratedVoteAt(t, "2024-03-02T08:00:00Z", 4),
		// Primary day: breakfast averages 4.5.
		ratedVoteAt(t, "2024-03-08T08:00:00Z", 4),
		ratedVoteAt(t, "2024-03-08T09:00:00Z", 5),
		// Primary-day dinner with no comparison data.
		ratedVoteAt(t, "2024-03-08T19:00:00Z", 3),
	}

	primary := DateRange{From: day(t, "2024-03-08")}
	comparison := DateRange{From: day(t, "2024-03-01"), To: day(t, "2024-03-07")}

	out := ComparePeriods(votes, periods, primary, comparison)
	if len(out) != 2 {
		t.Fatalf("Expected 2 comparisons, got %d", len(out))
	}

	b := out[0]
	if b.Meal.Name != "Breakfast" {
		t.Fatalf("Comparisons out of input order: %s first", b.Meal.Name)
	}
	if b.Primary.Average != 4.5 || b.Primary.Count != 2 {
		t.Errorf("Breakfast primary = {%v, %d}, want {4.5, 2}", b.Primary.Average, b.Primary.Count)
	}
	if b.Comparison.Average != 3.0 || b.Comparison.Count != 2 {
		t.Errorf("Breakfast comparison = {%v, %d}, want {3.0, 2}", b.Comparison.Average, b.Comparison.Count)
	}
	if b.Difference != 1.5 {
		t.Errorf("Breakfast difference = %v, want 1.5", b.Difference)
	}
	if b.PercentageChange != 50.0 {
		t.Errorf("Breakfast percentageChange = %v, want 50", b.PercentageChange)
	}
	if b.Trend != models.TrendUp {
		t.Errorf("Breakfast trend = %q, want up", b.Trend)
	}

	d := out[1]
	if d.Primary.Average != 3.0 || d.Primary.Count != 1 {
		t.Errorf("Dinner primary = {%v, %d}, want {3.0, 1}", d.Primary.Average, d.Primary.Count)
	}
	if d.Comparison.Average != 0 || d.Comparison.Count != 0 {
		t.Errorf("Dinner comparison = {%v, %d}, want zeros", d.Comparison.Average, d.Comparison.Count)
	}
	// Zero comparison average guards the percentage, never divides.
	if d.PercentageChange != 0 {
		t.Errorf("Dinner percentageChange = %v, want 0", d.PercentageChange)
	}
	if d.Trend != models.TrendUp {
		t.Errorf("Dinner trend = %q, want up", d.Trend)
	}
}

func TestComparePeriodsNoData(t *testing.T) {
	periods := []models.MealPeriod{period("b", "Breakfast", "07:00", "10:30")}
	out := ComparePeriods(nil, periods, DateRange{From: day(t, "2024-03-08")}, DateRange{From: day(t, "2024-03-01")})
	if len(out) != 1 {
		t.Fatalf("Expected 1 comparison, got %d", len(out))
	}
	c := out[0]
	if c.Primary.Average != 0 || c.Comparison.Average != 0 || c.Difference != 0 || c.PercentageChange != 0 {
		t.Errorf("Expected zero-filled comparison, got %+v", c)
	}
	if c.Trend != models.TrendStable {
		t.Errorf("Trend = %q, want stable", c.Trend)
	}
}

func TestTrendDeadBandFromAverages(t *testing.T) {
	// 3.1 vs 3.0 is a raw difference just inside the dead-band edge; it must
	// stay within float tolerance of stable only when at or below 0.1.
	breakfast := period("b", "Breakfast", "07:00", "10:30")
	periods := []models.MealPeriod{breakfast}

	votes := []models.Vote{
		// Comparison day: average 3.0.
		ratedVoteAt(t, "2024-03-01T08:00:00Z", 3),
		// Primary day: average 3.5, difference 0.5.
		ratedVoteAt(t, "2024-03-08T08:00:00Z", 3),
		ratedVoteAt(t, "2024-03-08T09:00:00Z", 4),
	}

	out := ComparePeriods(votes, periods,
		DateRange{From: day(t, "2024-03-08")},
		DateRange{From: day(t, "2024-03-01")})
	if out[0].Trend != models.TrendUp {
		t.Errorf("Trend = %q, want up", out[0].Trend)
	}
	if out[0].Difference != 0.5 {
		t.Errorf("Difference = %v, want 0.5", out[0].Difference)
	}
}

func TestCompareTodayVsAllTime(t *testing.T) {
	breakfast := period("b", "Breakfast", "07:00", "10:30")
	periods := []models.MealPeriod{breakfast}

	votes := []models.Vote{
		ratedVoteAt(t, "2024-02-01T08:00:00Z", 2),
		ratedVoteAt(t, "2024-02-15T08:00:00Z", 3),
		ratedVoteAt(t, "2024-03-08T08:00:00Z", 5),
	}
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)

	out := CompareTodayVsAllTime(votes, periods, now)
	if len(out) != 1 {
		t.Fatalf("Expected 1 comparison, got %d", len(out))
	}
	c := out[0]
	if c.Primary.Average != 5.0 || c.Primary.Count != 1 {
		t.Errorf("Primary = {%v, %d}, want {5.0, 1}", c.Primary.Average, c.Primary.Count)
	}
	// The all-time span covers every vote, today's included.
	if c.Comparison.Count != 3 {
		t.Errorf("Comparison count = %d, want 3", c.Comparison.Count)
	}
	if c.Comparison.Average != 3.33 {
		t.Errorf("Comparison average = %v, want 3.33", c.Comparison.Average)
	}
	if c.Trend != models.TrendUp {
		t.Errorf("Trend = %q, want up", c.Trend)
	}
}

func TestCompareTodayVsAllTimeNoVotes(t *testing.T) {
	periods := []models.MealPeriod{period("b", "Breakfast", "07:00", "10:30")}
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)

	out := CompareTodayVsAllTime(nil, periods, now)
	if len(out) != 1 {
		t.Fatalf("Expected 1 comparison, got %d", len(out))
	}
	if out[0].Trend != models.TrendStable {
		t.Errorf("Trend = %q, want stable", out[0].Trend)
	}
}
