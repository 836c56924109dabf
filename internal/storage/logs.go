package db

import (
	"context"
	"fmt"
	"time"
)

// LogEntry is one row of the append-only activity log: who submitted which
// link and what media it resolved to.
type LogEntry struct {
	ID        int64
	UserID    int64
	Username  string
	FirstName string
	Link      string
	MediaPK   string
	CreatedAt time.Time
}

// SubmitterStat is an aggregate of submissions per user.
type SubmitterStat struct {
	UserID    int64
	Username  string
	FirstName string
	Count     int
}

// Stats holds the aggregate numbers behind the /stats command.
type Stats struct {
	TotalLinks    int
	UniqueUsers   int
	TopSubmitters []SubmitterStat
}

const topSubmittersLimit = 10

// AddLog appends one activity log row. Callers only log successfully
// resolved submissions.
func (db *DB) AddLog(ctx context.Context, entry *LogEntry) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO logs (user_id, username, first_name, link, media_pk)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.UserID, SanitizeUTF8(entry.Username), SanitizeUTF8(entry.FirstName), entry.Link, entry.MediaPK)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}

	return nil
}

// GetStats returns the total submission count, the number of distinct users
// and the top submitters.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)::int, COUNT(DISTINCT user_id)::int FROM logs
	`).Scan(&stats.TotalLinks, &stats.UniqueUsers); err != nil {
		return nil, fmt.Errorf("query log totals: %w", err)
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT user_id, username, first_name, COUNT(*)::int AS cnt
		FROM logs
		GROUP BY user_id, username, first_name
		ORDER BY cnt DESC
		LIMIT $1
	`, topSubmittersLimit)
	if err != nil {
		return nil, fmt.Errorf("query top submitters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s SubmitterStat
		if err := rows.Scan(&s.UserID, &s.Username, &s.FirstName, &s.Count); err != nil {
			return nil, fmt.Errorf("scan submitter row: %w", err)
		}

		stats.TopSubmitters = append(stats.TopSubmitters, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submitter rows: %w", err)
	}

	return stats, nil
}

// GetRecentLogs returns the newest log rows, newest first.
func (db *DB) GetRecentLogs(ctx context.Context, limit int) ([]LogEntry, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, username, first_name, link, media_pk, created_at
		FROM logs
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent logs: %w", err)
	}
	defer rows.Close()

	entries := make([]LogEntry, 0, limit)

	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.FirstName, &e.Link, &e.MediaPK, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log row: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log rows: %w", err)
	}

	return entries, nil
}

// GetRecentLinks returns the latest distinct submitted links, most recently
// submitted first.
func (db *DB) GetRecentLinks(ctx context.Context, limit int) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT link FROM logs
		GROUP BY link
		ORDER BY MAX(id) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent links: %w", err)
	}
	defer rows.Close()

	links := make([]string, 0, limit)

	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("scan link row: %w", err)
		}

		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate link rows: %w", err)
	}

	return links, nil
}

// CountLogs returns the total number of log rows.
func (db *DB) CountLogs(ctx context.Context) (int64, error) {
	var count int64
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}

	return count, nil
}
