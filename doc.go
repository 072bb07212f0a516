// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Starboard API server.

Starboard is a satisfaction dashboard: voting terminals ("devices") collect
1-5 star votes, and administrators read the aggregates sliced by
time-of-day meal period (breakfast/lunch/dinner).

# Starting the Server

The server reads configuration from environment variables or CLI flags:

	DATABASE_URL=starboard.db go run main.go

Or with flags:

	go run main.go -p 3319 -d "postgres://..." -t postgres

# Configuration

Settings:

  - DATABASE_URL (-d): Postgres DSN or SQLite file path (required)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - PORT (-p): Server port (default: 3319)

A .env file in the working directory is loaded on startup.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - analytics: meal-period classification and aggregation (pure functions)
  - handlers: HTTP request handlers (devices, votes, meal periods, stats)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
