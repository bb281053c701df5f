package db

import (
	"context"
	"database/sql"
	"time"
)

const createEvent = `
INSERT INTO events (page_id, event_type, message, metadata, origin, request_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateEventParams struct {
	PageID    int64
	EventType string
	Message   string
	Metadata  sql.NullString
	Origin    sql.NullString
	RequestID sql.NullString
	CreatedAt time.Time
}

func (q *Queries) CreateEvent(ctx context.Context, arg *CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.PageID,
		arg.EventType,
		arg.Message,
		arg.Metadata,
		arg.Origin,
		arg.RequestID,
		arg.CreatedAt,
	)
	return err
}

const listEventsByPage = `
SELECT id, page_id, event_type, message, metadata, origin, request_id, created_at
FROM events
WHERE page_id = ?
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`

type ListEventsByPageParams struct {
	PageID int64
	Limit  int64
	Offset int64
}

func (q *Queries) ListEventsByPage(ctx context.Context, arg *ListEventsByPageParams) ([]*Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsByPage, arg.PageID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Event
	for rows.Next() {
		var i Event
		if err := rows.Scan(
			&i.ID,
			&i.PageID,
			&i.EventType,
			&i.Message,
			&i.Metadata,
			&i.Origin,
			&i.RequestID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

const countEventsByPage = `
SELECT COUNT(*) FROM events WHERE page_id = ?
`

func (q *Queries) CountEventsByPage(ctx context.Context, pageID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEventsByPage, pageID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
