// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Starboard API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - DeviceHandler: Device lifecycle and vote history
  - VoteHandler: Vote submission and deletion
  - MealPeriodHandler: Meal period configuration
  - StatsHandler: Aggregated satisfaction statistics

Handlers are created via constructor functions that accept *sql.DB and Config:

	deviceHandler := handlers.NewDeviceHandler(db, cfg)

# Device Lifecycle

	POST   /devices            → Create (non-empty name required)
	GET    /devices            → List (with vote counts and averages)
	GET    /devices/{id}       → Get (device + humanized vote history)
	DELETE /devices/{id}       → Delete (cascades to votes)
	DELETE /devices/{id}/votes → ClearVotes (bulk, permanent)

# Voting

	POST   /votes      → Submit (device_id + value 1-5, UTC timestamped)
	DELETE /votes/{id} → Delete

Value range and device existence are validated here; the analytics core
assumes in-domain input.

# Meal Periods

	GET    /meal-periods         → List (active, ordered by start_time)
	POST   /meal-periods         → Create (HH:MM[:SS] times, validated)
	DELETE /meal-periods/{id}    → Delete
	GET    /meal-periods/current → Current (meal covering "now")

# Statistics

	GET /stats                    → GlobalStats (all devices)
	GET /devices/{id}/stats       → DeviceStats (overall + per-meal)
	GET /devices/{id}/evolution   → Evolution (?days=N, default 14)
	GET /devices/{id}/comparison  → Comparison (date ranges, default
	                                today vs all-time)

Stats handlers follow a fetch-then-compute shape: read a snapshot of votes
and meal periods, hand it to the analytics package, and translate the
result straight to JSON. The dashboard polls these endpoints on a timer;
identical snapshots always produce identical responses.
*/
package handlers
