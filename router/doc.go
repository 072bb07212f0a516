// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Starboard API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Device management:

	POST   /devices            - Create device
	GET    /devices            - List devices with vote summaries
	GET    /devices/{id}       - Device details and vote history
	DELETE /devices/{id}       - Delete device (cascades to votes)
	DELETE /devices/{id}/votes - Delete all of a device's votes

Voting:

	POST   /votes      - Submit a 1-5 star vote
	DELETE /votes/{id} - Delete a vote

Meal periods:

	GET    /meal-periods         - Active periods, ordered by start_time
	POST   /meal-periods         - Create period
	GET    /meal-periods/current - Period covering the current time
	DELETE /meal-periods/{id}    - Delete period

Statistics:

	GET /stats                   - Global overall + per-meal stats
	GET /devices/{id}/stats      - Per-device overall + per-meal stats
	GET /devices/{id}/evolution  - Daily evolution series (?days=N)
	GET /devices/{id}/comparison - Period comparison (?primary_from=...)

# Handler Initialization

The router creates handler instances with dependency injection:

	deviceHandler := handlers.NewDeviceHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	mealPeriodHandler := handlers.NewMealPeriodHandler(db, cfg)
	statsHandler := handlers.NewStatsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
