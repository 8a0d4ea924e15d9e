package store

import (
	"context"
	"fmt"
)

type Scale struct {
	DeviceID string `json:"device_id"`
	Name     string `json:"name"`
}

// ListScales returns the scales of a user ordered by device id
func (db *DB) ListScales(ctx context.Context, userID string) ([]Scale, error) {
	rows, err := db.QueryContext(ctx, db.q(`SELECT device_id, name FROM scales WHERE user_id = ? ORDER BY device_id`), userID)
	if err != nil {
		return nil, fmt.Errorf("list scales: %w", err)
	}
	defer rows.Close()

	list := []Scale{}
	for rows.Next() {
		var s Scale
		if err := rows.Scan(&s.DeviceID, &s.Name); err != nil {
			return nil, fmt.Errorf("list scales: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpsertScale creates a scale or renames an existing one
func (db *DB) UpsertScale(ctx context.Context, userID string, s Scale) error {
	_, err := db.ExecContext(ctx, db.q(`INSERT INTO scales (user_id, device_id, name) VALUES (?, ?, ?)
		ON CONFLICT (user_id, device_id) DO UPDATE SET name = excluded.name`), userID, s.DeviceID, s.Name)
	if err != nil {
		return fmt.Errorf("upsert scale: %w", err)
	}
	return nil
}

// DeleteScale removes a scale from the catalog, it is not an error if it does not exist
func (db *DB) DeleteScale(ctx context.Context, userID, deviceID string) error {
	_, err := db.ExecContext(ctx, db.q(`DELETE FROM scales WHERE user_id = ? AND device_id = ?`), userID, deviceID)
	if err != nil {
		return fmt.Errorf("delete scale: %w", err)
	}
	return nil
}
