// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"callguard/internal/models"
	"callguard/internal/scope"
)

// StatisticsStore aggregates blocking activity for the dashboard.
type StatisticsStore struct {
	db *sql.DB
}

// NewStatisticsStore returns a new StatisticsStore.
func NewStatisticsStore(db *sql.DB) *StatisticsStore {
	return &StatisticsStore{db: db}
}

// Aggregate computes the blocked-call counters (scoped to the caller's
// visibility), the global active spam-number count, and the top five
// categories by blocked-call count within the scope.
func (s *StatisticsStore) Aggregate(sc scope.Scope) (*models.Statistics, error) {
	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	// ISO week: Monday is day 0.
	weekStart := todayStart.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &models.Statistics{TopCategories: []models.CategoryCount{}}

	for _, window := range []struct {
		since *time.Time
		dest  *int
	}{
		{&todayStart, &stats.TotalBlockedToday},
		{&weekStart, &stats.TotalBlockedWeek},
		{&monthStart, &stats.TotalBlockedMonth},
		{nil, &stats.TotalBlockedAll},
	} {
		count, err := s.countCalls(sc, window.since)
		if err != nil {
			return nil, err
		}
		*window.dest = count
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM spam_numbers WHERE is_active = TRUE`).Scan(&stats.TotalSpamNumbers); err != nil {
		return nil, fmt.Errorf("count spam numbers: %w", err)
	}

	cond, args := sc.Predicate("user_id", 1)
	rows, err := s.db.Query(`
		SELECT category_name, COUNT(*) AS blocked
		FROM blocked_calls
		WHERE `+cond+`
		GROUP BY category_name
		ORDER BY blocked DESC
		LIMIT 5
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc models.CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan top category: %w", err)
		}
		stats.TopCategories = append(stats.TopCategories, cc)
	}
	return stats, rows.Err()
}

// countCalls counts blocked calls in the scope, optionally since a point
// in time.
func (s *StatisticsStore) countCalls(sc scope.Scope, since *time.Time) (int, error) {
	cond, args := sc.Predicate("user_id", 1)
	query := `SELECT COUNT(*) FROM blocked_calls WHERE ` + cond
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND blocked_at >= $%d", len(args))
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count blocked calls: %w", err)
	}
	return count, nil
}
