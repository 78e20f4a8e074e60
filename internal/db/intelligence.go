package db

import (
	"database/sql"
	"fmt"
	"time"
)

// IntelRow is one tagged intelligence snapshot. Payload is the raw JSON
// blob written by the collection agents; the intel package folds it.
type IntelRow struct {
	ID        string
	Tag       string
	Payload   string
	UpdatedAt int64
}

// ListIntelligence returns all non-stale intelligence rows ordered by
// updated_at descending. The ordering is load-bearing: when two rows share
// a tag, the aggregator lets the most recently updated row win scalar
// fields, so callers must not re-sort.
func ListIntelligence(db *sql.DB) ([]IntelRow, error) {
	rows, err := db.Query(`
		SELECT id, tag, payload_json, updated_at
		FROM intelligence
		WHERE stale = 0
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query intelligence: %w", err)
	}
	defer rows.Close()

	var result []IntelRow
	for rows.Next() {
		var r IntelRow
		if err := rows.Scan(&r.ID, &r.Tag, &r.Payload, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan intelligence: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// UpsertIntelligence inserts or replaces an intelligence row by id and
// refreshes its updated_at. Replacing marks the row non-stale.
func UpsertIntelligence(db *sql.DB, id, tag, payload string) error {
	_, err := db.Exec(`
		INSERT INTO intelligence (id, tag, payload_json, stale, updated_at)
		VALUES (?, ?, ?, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			tag = excluded.tag,
			payload_json = excluded.payload_json,
			stale = 0,
			updated_at = excluded.updated_at
	`, id, tag, payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert intelligence: %w", err)
	}
	return nil
}

// MarkIntelligenceStale flags a row so the aggregator skips it.
func MarkIntelligenceStale(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE intelligence SET stale = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark intelligence stale: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
