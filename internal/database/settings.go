package database

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SetSettings stores all values in one transaction.
func (d *Database) SetSettings(ctx context.Context, values map[string]string) (err error) {
	start := time.Now()
	defer func() { recordQuery("set_setting", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings transaction: %w", err)
	}

	for key, value := range values {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return errors.Join(fmt.Errorf("store setting %s: %w", key, err), fmt.Errorf("rollback also failed: %w", rbErr))
			}
			return fmt.Errorf("store setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// AllSettings returns every stored key/value pair.
func (d *Database) AllSettings(ctx context.Context) (settings map[string]string, err error) {
	start := time.Now()
	defer func() { recordQuery("list_settings", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings = make(map[string]string)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	err = rows.Err()
	return settings, err
}
