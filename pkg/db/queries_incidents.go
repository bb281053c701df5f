package db

import (
	"context"
)

const createIncident = `
INSERT INTO incidents (page_id, type, message, probable_cause, origin, consecutive_failures)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, page_id, type, message, probable_cause, origin, consecutive_failures, final_status, started_at, resolved_at
`

type CreateIncidentParams struct {
	PageID              int64
	Type                string
	Message             string
	ProbableCause       string
	Origin              string
	ConsecutiveFailures int64
}

func (q *Queries) CreateIncident(ctx context.Context, arg *CreateIncidentParams) (*Incident, error) {
	row := q.db.QueryRowContext(ctx, createIncident,
		arg.PageID,
		arg.Type,
		arg.Message,
		arg.ProbableCause,
		arg.Origin,
		arg.ConsecutiveFailures,
	)
	var i Incident
	err := row.Scan(
		&i.ID,
		&i.PageID,
		&i.Type,
		&i.Message,
		&i.ProbableCause,
		&i.Origin,
		&i.ConsecutiveFailures,
		&i.FinalStatus,
		&i.StartedAt,
		&i.ResolvedAt,
	)
	return &i, err
}

const resolveIncident = `
UPDATE incidents
SET resolved_at = CURRENT_TIMESTAMP, final_status = ?
WHERE id = ? AND resolved_at IS NULL
`

type ResolveIncidentParams struct {
	ID          int64
	FinalStatus string
}

func (q *Queries) ResolveIncident(ctx context.Context, arg *ResolveIncidentParams) error {
	_, err := q.db.ExecContext(ctx, resolveIncident, arg.FinalStatus, arg.ID)
	return err
}

const getIncident = `
SELECT id, page_id, type, message, probable_cause, origin, consecutive_failures, final_status, started_at, resolved_at
FROM incidents WHERE id = ?
`

func (q *Queries) GetIncident(ctx context.Context, id int64) (*Incident, error) {
	row := q.db.QueryRowContext(ctx, getIncident, id)
	var i Incident
	err := row.Scan(
		&i.ID,
		&i.PageID,
		&i.Type,
		&i.Message,
		&i.ProbableCause,
		&i.Origin,
		&i.ConsecutiveFailures,
		&i.FinalStatus,
		&i.StartedAt,
		&i.ResolvedAt,
	)
	return &i, err
}

const listOpenIncidents = `
SELECT id, page_id, type, message, probable_cause, origin, consecutive_failures, final_status, started_at, resolved_at
FROM incidents WHERE resolved_at IS NULL
ORDER BY started_at
`

func (q *Queries) ListOpenIncidents(ctx context.Context) ([]*Incident, error) {
	rows, err := q.db.QueryContext(ctx, listOpenIncidents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Incident
	for rows.Next() {
		var i Incident
		if err := rows.Scan(
			&i.ID,
			&i.PageID,
			&i.Type,
			&i.Message,
			&i.ProbableCause,
			&i.Origin,
			&i.ConsecutiveFailures,
			&i.FinalStatus,
			&i.StartedAt,
			&i.ResolvedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

const listIncidentsByPage = `
SELECT id, page_id, type, message, probable_cause, origin, consecutive_failures, final_status, started_at, resolved_at
FROM incidents
WHERE page_id = ?
ORDER BY started_at DESC
LIMIT ? OFFSET ?
`

type ListIncidentsByPageParams struct {
	PageID int64
	Limit  int64
	Offset int64
}

func (q *Queries) ListIncidentsByPage(ctx context.Context, arg *ListIncidentsByPageParams) ([]*Incident, error) {
	rows, err := q.db.QueryContext(ctx, listIncidentsByPage, arg.PageID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Incident
	for rows.Next() {
		var i Incident
		if err := rows.Scan(
			&i.ID,
			&i.PageID,
			&i.Type,
			&i.Message,
			&i.ProbableCause,
			&i.Origin,
			&i.ConsecutiveFailures,
			&i.FinalStatus,
			&i.StartedAt,
			&i.ResolvedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

const listRecentIncidents = `
SELECT id, page_id, type, message, probable_cause, origin, consecutive_failures, final_status, started_at, resolved_at
FROM incidents
ORDER BY started_at DESC
LIMIT ?
`

func (q *Queries) ListRecentIncidents(ctx context.Context, limit int64) ([]*Incident, error) {
	rows, err := q.db.QueryContext(ctx, listRecentIncidents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Incident
	for rows.Next() {
		var i Incident
		if err := rows.Scan(
			&i.ID,
			&i.PageID,
			&i.Type,
			&i.Message,
			&i.ProbableCause,
			&i.Origin,
			&i.ConsecutiveFailures,
			&i.FinalStatus,
			&i.StartedAt,
			&i.ResolvedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}
