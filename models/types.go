// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Trend constants for period comparisons
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Request types

type CreateDeviceRequest struct {
	Name string `json:"name"`
}

type SubmitVoteRequest struct {
	DeviceID string `json:"device_id"`
	Value    int    `json:"value"`
}

type CreateMealPeriodRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
	Deleted int    `json:"deleted,omitempty"`
}

type DeviceSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	VoteCount     int       `json:"vote_count"`
	AverageRating float64   `json:"average_rating"`
}

// VoteHistoryEntry is a single vote in a device's history view, with a
// humanized timestamp and the meal period the vote was classified into.
type VoteHistoryEntry struct {
	ID        string    `json:"id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago"`
	MealName  string    `json:"meal_name,omitempty"`
}

type DeviceDetailResponse struct {
	Device Device             `json:"device"`
	Votes  []VoteHistoryEntry `json:"votes"`
}

type DeviceStatsResponse struct {
	DeviceID string        `json:"device_id"`
	Name     string        `json:"name"`
	Overall  RatingSummary `json:"overall"`
	Meals    []MealStats   `json:"meals"`
}

type GlobalStatsResponse struct {
	DeviceCount int           `json:"device_count"`
	Overall     RatingSummary `json:"overall"`
	Meals       []MealStats   `json:"meals"`
}

type CurrentMealResponse struct {
	Meal *MealPeriod `json:"meal"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Device struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Vote struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// MealPeriod is a named time-of-day interval. Start and end are wall-clock
// "HH:MM" or "HH:MM:SS" strings expressed in UTC with no date component.
// An interval whose start is later than its end wraps past midnight.
type MealPeriod struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Derived aggregate types (computed, never persisted)

// RatingSummary is the count, mean and 1-5 histogram of a vote collection.
// AverageRating is rounded to 2 decimals and is 0 when there are no votes.
type RatingSummary struct {
	TotalVotes    int         `json:"totalVotes"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"`
}

type MealStats struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	TimeRange     string      `json:"timeRange"`
	TotalVotes    int         `json:"totalVotes"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"`
}

// MealDayStat is one meal's rounded average and raw vote count for a single
// day. The count distinguishes "no reviews" from a low average so charts can
// suppress zero-average-from-no-data points.
type MealDayStat struct {
	Name    string
	Average float64
	Count   int
}

// DailyEvolutionPoint is one calendar day in an evolution series, holding
// per-meal stats in meal-period order.
type DailyEvolutionPoint struct {
	Date  string
	Meals []MealDayStat
}

// MarshalJSON flattens the point into the shape the evolution chart
// consumes directly: {"date": "...", "<meal>": avg, "<meal>_count": n}.
func (p DailyEvolutionPoint) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, 2*len(p.Meals)+1)
	flat["date"] = p.Date
	for _, m := range p.Meals {
		flat[m.Name] = m.Average
		flat[m.Name+"_count"] = m.Count
	}
	return json.Marshal(flat)
}

type PeriodAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type PeriodComparison struct {
	Meal             MealPeriod      `json:"meal"`
	Primary          PeriodAggregate `json:"primary"`
	Comparison       PeriodAggregate `json:"comparison"`
	Difference       float64         `json:"difference"`
	PercentageChange float64         `json:"percentageChange"`
	Trend            string          `json:"trend"`
}
