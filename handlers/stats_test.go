// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/starboard/models"
	"github.com/danielhkuo/starboard/testutil"
)

func TestDeviceStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	deviceID := testutil.CreateTestDevice(t, db, "Kiosk")
	testutil.CreateTestMealPeriod(t, db, "Breakfast", "07:00:00", "10:30:00", true)
	testutil.CreateTestMealPeriod(t, db, "Dinner", "18:00:00", "21:30:00", true)

	testutil.CreateTestVote(t, db, deviceID, 4, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	testutil.CreateTestVote(t, db, deviceID, 2, time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))
	// Mid-afternoon vote counts in overall but belongs to no meal
	testutil.CreateTestVote(t, db, deviceID, 5, time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC))

	req := testutil.MakeRequest("GET", "/devices/"+deviceID+"/stats", nil)
	req.SetPathValue("id", deviceID)
	w := httptest.NewRecorder()

	handler.DeviceStats(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeviceStatsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.DeviceID != deviceID || resp.Name != "Kiosk" {
		t.Errorf("Unexpected identity: %s / %s", resp.DeviceID, resp.Name)
	}
	if resp.Overall.TotalVotes != 3 {
		t.Errorf("Overall totalVotes = %d, want 3", resp.Overall.TotalVotes)
	}
	if resp.Overall.AverageRating != 3.67 {
		t.Errorf("Overall averageRating = %v, want 3.67", resp.Overall.AverageRating)
	}
	if len(resp.Meals) != 2 {
		t.Fatalf("Expected 2 meal entries, got %d", len(resp.Meals))
	}
	breakfast, dinner := resp.Meals[0], resp.Meals[1]
	if breakfast.Name != "Breakfast" || breakfast.TotalVotes != 1 || breakfast.AverageRating != 4.0 {
		t.Errorf("Breakfast = %+v, want 1 vote averaging 4.0", breakfast)
	}
	if breakfast.TimeRange != "07:00 - 10:30" {
		t.Errorf("Breakfast timeRange = %q", breakfast.TimeRange)
	}
	if dinner.Name != "Dinner" || dinner.TotalVotes != 1 || dinner.AverageRating != 2.0 {
		t.Errorf("Dinner = %+v, want 1 vote averaging 2.0", dinner)
	}
}

func TestDeviceStatsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/devices/missing/stats", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.DeviceStats(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeviceStatsNoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	deviceID := testutil.CreateTestDevice(t, db, "Fresh")
	testutil.CreateTestMealPeriod(t, db, "Breakfast", "07:00:00", "10:30:00", true)

	req := testutil.MakeRequest("GET", "/devices/"+deviceID+"/stats", nil)
	req.SetPathValue("id", deviceID)
	w := httptest.NewRecorder()

	handler.DeviceStats(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeviceStatsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Overall.TotalVotes != 0 || resp.Overall.AverageRating != 0 {
		t.Errorf("Overall = %+v, want zero values", resp.Overall)
	}
	if len(resp.Meals) != 1 || resp.Meals[0].TotalVotes != 0 {
		t.Errorf("Expected zero-filled Breakfast entry, got %+v", resp.Meals)
	}
}

func TestGlobalStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	first := testutil.CreateTestDevice(t, db, "First")
	second := testutil.CreateTestDevice(t, db, "Second")
	testutil.CreateTestMealPeriod(t, db, "Breakfast", "07:00:00", "10:30:00", true)
	testutil.CreateTestVote(t, db, first, 4, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	testutil.CreateTestVote(t, db, second, 5, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	req := testutil.MakeRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()

	handler.GlobalStats(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GlobalStatsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.DeviceCount != 2 {
		t.Errorf("deviceCount = %d, want 2", resp.DeviceCount)
	}
	if resp.Overall.TotalVotes != 2 || resp.Overall.AverageRating != 4.5 {
		t.Errorf("Overall = %+v, want 2 votes averaging 4.5", resp.Overall)
	}
	if len(resp.Meals) != 1 || resp.Meals[0].TotalVotes != 2 {
		t.Errorf("Expected Breakfast aggregating both devices, got %+v", resp.Meals)
	}
}

func TestEvolution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	deviceID := testutil.CreateTestDevice(t, db, "Kiosk")
	testutil.CreateTestMealPeriod(t, db, "Breakfast", "07:00:00", "10:30:00", true)

	now := time.Now().UTC()
	testutil.CreateTestVote(t, db, deviceID, 4, time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, time.UTC))

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantPoints int
	}{
		{name: "default window", query: "", wantStatus: http.StatusOK, wantPoints: DefaultEvolutionDays + 1},
		{name: "explicit days", query: "?days=7", wantStatus: http.StatusOK, wantPoints: 8},
		{name: "single day", query: "?days=1", wantStatus: http.StatusOK, wantPoints: 2},
		{name: "days zero rejected", query: "?days=0", wantStatus: http.StatusBadRequest},
		{name: "days too large", query: "?days=366", wantStatus: http.StatusBadRequest},
		{name: "days not a number", query: "?days=soon", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", fmt.Sprintf("/devices/%s/evolution%s", deviceID, tt.query), nil)
			req.SetPathValue("id", deviceID)
			w := httptest.NewRecorder()

			handler.Evolution(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var points []map[string]any
			testutil.AssertJSON(t, w, &points)
			if len(points) != tt.wantPoints {
				t.Fatalf("Expected %d points, got %d", tt.wantPoints, len(points))
			}

			// Dates ascend; the flattened shape carries each meal twice
			last := points[len(points)-1]
			if last["date"] != now.Format("2006-01-02") {
				t.Errorf("Last point date = %v, want today", last["date"])
			}
			if last["Breakfast"] != 4.0 {
				t.Errorf("Today's Breakfast = %v, want 4", last["Breakfast"])
			}
			if last["Breakfast_count"] != 1.0 {
				t.Errorf("Today's Breakfast_count = %v, want 1", last["Breakfast_count"])
			}
			prev := ""
			for _, p := range points {
				d, _ := p["date"].(string)
				if d <= prev {
					t.Fatalf("Dates not strictly ascending around %q", d)
				}
				prev = d
			}
		})
	}
}

func TestEvolutionUnknownDevice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/devices/missing/evolution", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.Evolution(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestComparisonExplicitRanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	deviceID := testutil.CreateTestDevice(t, db, "Kiosk")
	testutil.CreateTestMealPeriod(t, db, "Breakfast", "07:00:00", "10:30:00", true)

	// Comparison week averages 3.0, primary day averages 5.0
	testutil.CreateTestVote(t, db, deviceID, 2, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	testutil.CreateTestVote(t, db, deviceID, 4, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC))
	testutil.CreateTestVote(t, db, deviceID, 5, time.Date(2024, 3, 8, 8, 0, 0, 0, time.UTC))

	path := fmt.Sprintf("/devices/%s/comparison?primary_from=2024-03-08&comparison_from=2024-03-01&comparison_to=2024-03-07", deviceID)
	req := testutil.MakeRequest("GET", path, nil)
	req.SetPathValue("id", deviceID)
	w := httptest.NewRecorder()

	handler.Comparison(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var comparisons []models.PeriodComparison
	testutil.AssertJSON(t, w, &comparisons)

	if len(comparisons) != 1 {
		t.Fatalf("Expected 1 comparison, got %d", len(comparisons))
	}
	c := comparisons[0]
	if c.Meal.Name != "Breakfast" {
		t.Errorf("Meal = %q, want Breakfast", c.Meal.Name)
	}
	if c.Primary.Average != 5.0 || c.Primary.Count != 1 {
		t.Errorf("Primary = %+v, want {5.0, 1}", c.Primary)
	}
	if c.Comparison.Average != 3.0 || c.Comparison.Count != 2 {
		t.Errorf("Comparison = %+v, want {3.0, 2}", c.Comparison)
	}
	if c.Difference != 2.0 || c.Trend != models.TrendUp {
		t.Errorf("Difference/trend = %v/%q, want 2.0/up", c.Difference, c.Trend)
	}
}

func TestComparisonDefaultsToTodayVsAllTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	deviceID := testutil.CreateTestDevice(t, db, "Kiosk")
	testutil.CreateTestMealPeriod(t, db, "Breakfast", "07:00:00", "10:30:00", true)

	now := time.Now().UTC()
	testutil.CreateTestVote(t, db, deviceID, 5, time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, time.UTC))
	testutil.CreateTestVote(t, db, deviceID, 3, time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))

	req := testutil.MakeRequest("GET", "/devices/"+deviceID+"/comparison", nil)
	req.SetPathValue("id", deviceID)
	w := httptest.NewRecorder()

	handler.Comparison(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var comparisons []models.PeriodComparison
	testutil.AssertJSON(t, w, &comparisons)

	if len(comparisons) != 1 {
		t.Fatalf("Expected 1 comparison, got %d", len(comparisons))
	}
	c := comparisons[0]
	if c.Primary.Count != 1 || c.Primary.Average != 5.0 {
		t.Errorf("Primary = %+v, want today's single 5", c.Primary)
	}
	if c.Comparison.Count != 2 || c.Comparison.Average != 4.0 {
		t.Errorf("Comparison = %+v, want all-time {4.0, 2}", c.Comparison)
	}
}

func TestComparisonBadDates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStatsHandler(db, testutil.GetTestConfig())

	deviceID := testutil.CreateTestDevice(t, db, "Kiosk")

	req := testutil.MakeRequest("GET", "/devices/"+deviceID+"/comparison?primary_from=yesterday", nil)
	req.SetPathValue("id", deviceID)
	w := httptest.NewRecorder()

	handler.Comparison(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
