// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/starboard/cliparse"
	"github.com/danielhkuo/starboard/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own isolated database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection keeps the in-memory database alive and serialized
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
	}
}

// CreateTestDevice inserts a device and returns its ID
func CreateTestDevice(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	deviceID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO device (id, name, created_at)
		VALUES ($1, $2, $3)
	`, deviceID, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test device: %v", err)
	}

	return deviceID
}

// CreateTestVote inserts a vote with a chosen timestamp and returns its ID
func CreateTestVote(t *testing.T, conn *sql.DB, deviceID string, value int, at time.Time) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, device_id, value, created_at)
		VALUES ($1, $2, $3, $4)
	`, voteID, deviceID, value, at)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// CreateTestMealPeriod inserts a meal period and returns its ID
func CreateTestMealPeriod(t *testing.T, conn *sql.DB, name, startTime, endTime string, active bool) string {
	t.Helper()

	periodID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO meal_period (id, name, start_time, end_time, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, periodID, name, startTime, endTime, active, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test meal period: %v", err)
	}

	return periodID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
