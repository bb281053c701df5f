package db

import (
	"context"
	"database/sql"
	"time"
)

const createCheckHistory = `
INSERT INTO check_history (page_id, http_status, response_time_ms, error_message, status_label, origin, checked_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, page_id, http_status, response_time_ms, error_message, status_label, origin, checked_at
`

type CreateCheckHistoryParams struct {
	PageID         int64
	HttpStatus     sql.NullInt64
	ResponseTimeMs int64
	ErrorMessage   sql.NullString
	StatusLabel    string
	Origin         string
	CheckedAt      time.Time
}

func (q *Queries) CreateCheckHistory(ctx context.Context, arg *CreateCheckHistoryParams) (*CheckHistory, error) {
	row := q.db.QueryRowContext(ctx, createCheckHistory,
		arg.PageID,
		arg.HttpStatus,
		arg.ResponseTimeMs,
		arg.ErrorMessage,
		arg.StatusLabel,
		arg.Origin,
		arg.CheckedAt,
	)
	var i CheckHistory
	err := row.Scan(
		&i.ID,
		&i.PageID,
		&i.HttpStatus,
		&i.ResponseTimeMs,
		&i.ErrorMessage,
		&i.StatusLabel,
		&i.Origin,
		&i.CheckedAt,
	)
	return &i, err
}

const listCheckHistoryByPage = `
SELECT id, page_id, http_status, response_time_ms, error_message, status_label, origin, checked_at
FROM check_history
WHERE page_id = ?
ORDER BY checked_at DESC
LIMIT ? OFFSET ?
`

type ListCheckHistoryByPageParams struct {
	PageID int64
	Limit  int64
	Offset int64
}

func (q *Queries) ListCheckHistoryByPage(ctx context.Context, arg *ListCheckHistoryByPageParams) ([]*CheckHistory, error) {
	rows, err := q.db.QueryContext(ctx, listCheckHistoryByPage, arg.PageID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*CheckHistory
	for rows.Next() {
		var i CheckHistory
		if err := rows.Scan(
			&i.ID,
			&i.PageID,
			&i.HttpStatus,
			&i.ResponseTimeMs,
			&i.ErrorMessage,
			&i.StatusLabel,
			&i.Origin,
			&i.CheckedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

const countCheckHistoryByPage = `
SELECT COUNT(*) FROM check_history WHERE page_id = ?
`

func (q *Queries) CountCheckHistoryByPage(ctx context.Context, pageID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCheckHistoryByPage, pageID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
