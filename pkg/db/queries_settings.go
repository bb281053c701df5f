package db

import (
	"context"
)

const createSetting = `
INSERT INTO settings (config)
VALUES (?)
RETURNING id, config, created_at, updated_at
`

func (q *Queries) CreateSetting(ctx context.Context, config string) (*Setting, error) {
	row := q.db.QueryRowContext(ctx, createSetting, config)
	var i Setting
	err := row.Scan(&i.ID, &i.Config, &i.CreatedAt, &i.UpdatedAt)
	return &i, err
}

const updateSetting = `
UPDATE settings
SET config = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, config, created_at, updated_at
`

type UpdateSettingParams struct {
	ID     int64
	Config string
}

func (q *Queries) UpdateSetting(ctx context.Context, arg *UpdateSettingParams) (*Setting, error) {
	row := q.db.QueryRowContext(ctx, updateSetting, arg.Config, arg.ID)
	var i Setting
	err := row.Scan(&i.ID, &i.Config, &i.CreatedAt, &i.UpdatedAt)
	return &i, err
}

const listSettings = `
SELECT id, config, created_at, updated_at FROM settings ORDER BY id
`

func (q *Queries) ListSettings(ctx context.Context) ([]*Setting, error) {
	rows, err := q.db.QueryContext(ctx, listSettings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Setting
	for rows.Next() {
		var i Setting
		if err := rows.Scan(&i.ID, &i.Config, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}
