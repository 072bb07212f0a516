// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateDeviceRequest: name
  - SubmitVoteRequest: device_id, value (1-5)
  - CreateMealPeriodRequest: name, start_time, end_time

# Response Types

Types for JSON responses:

  - DeviceSummary: device with vote count and average
  - DeviceDetailResponse: device with humanized vote history
  - DeviceStatsResponse / GlobalStatsResponse: overall + per-meal stats
  - CurrentMealResponse: the meal period covering "now", if any
  - MessageResponse: delete confirmations
  - ErrorResponse: error, message

# Domain Types

  - Device: a physical or virtual voting terminal
  - Vote: a single 1-5 star rating with a UTC timestamp
  - MealPeriod: a named time-of-day interval (may wrap past midnight)

# Derived Types

Computed by the analytics package, never persisted:

  - RatingSummary: count, 2-decimal mean, 1-5 histogram
  - MealStats: RatingSummary scoped to one meal period
  - DailyEvolutionPoint: per-day per-meal averages and counts,
    flattened to {"date", "<meal>", "<meal>_count"} JSON
  - PeriodComparison: two date ranges compared per meal, with a
    signed difference, percentage change, and up/down/stable trend

# Constants

Trend values:

	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
*/
package models
