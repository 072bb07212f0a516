// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Connecting

Open selects the driver from configuration:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"sqlite" (modernc.org/sqlite, pure Go) is the default for development and
tests; "postgres" (lib/pq) for deployments. SQLite connections are limited
to a single writer and have foreign-key enforcement switched on so
cascading deletes behave the same on both backends.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - device: Voting terminals
  - vote: 1-5 star ratings, UTC timestamped
  - meal_period: Named UTC time-of-day intervals

# Relationships

	device 1──* vote

vote.device_id uses ON DELETE CASCADE: deleting a device permanently
removes its votes. Meal periods are never updated in place - changes are
delete and recreate.
*/
package db
