// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package analytics is the meal-period classification and aggregation engine.

Everything here is pure, synchronous computation over in-memory vote and
meal-period snapshots: no I/O, no shared state, no hidden clock reads.
Handlers fetch data, call in, and translate the result straight to JSON.
Recomputation from the same inputs always yields the same outputs; where
"now" matters it is an explicit parameter.

# Classification

A vote belongs to the first active meal period (in the order given, which
the store returns sorted by start_time) whose time-of-day interval contains
the vote's UTC clock time:

	meal := analytics.PeriodForVote(vote, periods)

Intervals are inclusive on both ends and may wrap past midnight: a
22:00-02:00 period matches 23:30 and 01:00 but not 12:00. Comparison is
always on UTC hour and minute — never on locally formatted times, which
would make classification depend on the viewer's timezone and DST.

# Aggregation

	summary := analytics.Summarize(votes)
	stats := analytics.CalculateMealStats(votes, periods)
	series := analytics.DailyEvolution(votes, periods, 14, time.Now())
	deltas := analytics.ComparePeriods(votes, periods, primary, comparison)

Averages are rounded half away from zero to 2 decimals, exactly once.
Empty input never errors: zero votes means a 0 average and zero-filled
histograms, and per-meal outputs always contain one entry per configured
period. Malformed period times cause that period to be skipped, not the
batch to fail.
*/
package analytics
