package db

import (
	"context"
	"database/sql"
)

const createPage = `
INSERT INTO pages (slug, name, client, url, timeout_ms, soft404_patterns)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, slug, name, client, url, timeout_ms, soft404_patterns, status, error_type, error_message, consecutive_failures, last_checked_at, created_at, updated_at
`

type CreatePageParams struct {
	Slug            string
	Name            string
	Client          string
	Url             string
	TimeoutMs       sql.NullInt64
	Soft404Patterns sql.NullString
}

func (q *Queries) CreatePage(ctx context.Context, arg *CreatePageParams) (*Page, error) {
	row := q.db.QueryRowContext(ctx, createPage,
		arg.Slug,
		arg.Name,
		arg.Client,
		arg.Url,
		arg.TimeoutMs,
		arg.Soft404Patterns,
	)
	var i Page
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Name,
		&i.Client,
		&i.Url,
		&i.TimeoutMs,
		&i.Soft404Patterns,
		&i.Status,
		&i.ErrorType,
		&i.ErrorMessage,
		&i.ConsecutiveFailures,
		&i.LastCheckedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const getPage = `
SELECT id, slug, name, client, url, timeout_ms, soft404_patterns, status, error_type, error_message, consecutive_failures, last_checked_at, created_at, updated_at
FROM pages WHERE id = ?
`

func (q *Queries) GetPage(ctx context.Context, id int64) (*Page, error) {
	row := q.db.QueryRowContext(ctx, getPage, id)
	var i Page
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Name,
		&i.Client,
		&i.Url,
		&i.TimeoutMs,
		&i.Soft404Patterns,
		&i.Status,
		&i.ErrorType,
		&i.ErrorMessage,
		&i.ConsecutiveFailures,
		&i.LastCheckedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const getPageBySlug = `
SELECT id, slug, name, client, url, timeout_ms, soft404_patterns, status, error_type, error_message, consecutive_failures, last_checked_at, created_at, updated_at
FROM pages WHERE slug = ?
`

func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (*Page, error) {
	row := q.db.QueryRowContext(ctx, getPageBySlug, slug)
	var i Page
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Name,
		&i.Client,
		&i.Url,
		&i.TimeoutMs,
		&i.Soft404Patterns,
		&i.Status,
		&i.ErrorType,
		&i.ErrorMessage,
		&i.ConsecutiveFailures,
		&i.LastCheckedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const listPages = `
SELECT id, slug, name, client, url, timeout_ms, soft404_patterns, status, error_type, error_message, consecutive_failures, last_checked_at, created_at, updated_at
FROM pages
WHERE (?1 = '' OR client = ?1)
ORDER BY id
LIMIT ?2 OFFSET ?3
`

type ListPagesParams struct {
	Client string
	Limit  int64
	Offset int64
}

func (q *Queries) ListPages(ctx context.Context, arg *ListPagesParams) ([]*Page, error) {
	rows, err := q.db.QueryContext(ctx, listPages, arg.Client, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Page
	for rows.Next() {
		var i Page
		if err := rows.Scan(
			&i.ID,
			&i.Slug,
			&i.Name,
			&i.Client,
			&i.Url,
			&i.TimeoutMs,
			&i.Soft404Patterns,
			&i.Status,
			&i.ErrorType,
			&i.ErrorMessage,
			&i.ConsecutiveFailures,
			&i.LastCheckedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

const listAllPages = `
SELECT id, slug, name, client, url, timeout_ms, soft404_patterns, status, error_type, error_message, consecutive_failures, last_checked_at, created_at, updated_at
FROM pages ORDER BY id
`

func (q *Queries) ListAllPages(ctx context.Context) ([]*Page, error) {
	rows, err := q.db.QueryContext(ctx, listAllPages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Page
	for rows.Next() {
		var i Page
		if err := rows.Scan(
			&i.ID,
			&i.Slug,
			&i.Name,
			&i.Client,
			&i.Url,
			&i.TimeoutMs,
			&i.Soft404Patterns,
			&i.Status,
			&i.ErrorType,
			&i.ErrorMessage,
			&i.ConsecutiveFailures,
			&i.LastCheckedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

const countPages = `
SELECT COUNT(*) FROM pages WHERE (?1 = '' OR client = ?1)
`

func (q *Queries) CountPages(ctx context.Context, client string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPages, client)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updatePage = `
UPDATE pages
SET name = ?, client = ?, url = ?, timeout_ms = ?, soft404_patterns = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, slug, name, client, url, timeout_ms, soft404_patterns, status, error_type, error_message, consecutive_failures, last_checked_at, created_at, updated_at
`

type UpdatePageParams struct {
	ID              int64
	Name            string
	Client          string
	Url             string
	TimeoutMs       sql.NullInt64
	Soft404Patterns sql.NullString
}

func (q *Queries) UpdatePage(ctx context.Context, arg *UpdatePageParams) (*Page, error) {
	row := q.db.QueryRowContext(ctx, updatePage,
		arg.Name,
		arg.Client,
		arg.Url,
		arg.TimeoutMs,
		arg.Soft404Patterns,
		arg.ID,
	)
	var i Page
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Name,
		&i.Client,
		&i.Url,
		&i.TimeoutMs,
		&i.Soft404Patterns,
		&i.Status,
		&i.ErrorType,
		&i.ErrorMessage,
		&i.ConsecutiveFailures,
		&i.LastCheckedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const deletePage = `
DELETE FROM pages WHERE id = ?
`

func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePage, id)
	return err
}

const updatePageStatus = `
UPDATE pages
SET status = ?, error_type = ?, error_message = ?, consecutive_failures = ?, last_checked_at = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

type UpdatePageStatusParams struct {
	ID                  int64
	Status              string
	ErrorType           sql.NullString
	ErrorMessage        sql.NullString
	ConsecutiveFailures int64
	LastCheckedAt       sql.NullTime
}

func (q *Queries) UpdatePageStatus(ctx context.Context, arg *UpdatePageStatusParams) error {
	_, err := q.db.ExecContext(ctx, updatePageStatus,
		arg.Status,
		arg.ErrorType,
		arg.ErrorMessage,
		arg.ConsecutiveFailures,
		arg.LastCheckedAt,
		arg.ID,
	)
	return err
}

const getPageConsecutiveFailures = `
SELECT consecutive_failures FROM pages WHERE id = ?
`

func (q *Queries) GetPageConsecutiveFailures(ctx context.Context, id int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, getPageConsecutiveFailures, id)
	var count int64
	err := row.Scan(&count)
	return count, err
}
