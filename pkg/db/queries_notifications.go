package db

import (
	"context"
	"database/sql"
)

const createNotificationProvider = `
INSERT INTO notification_providers (type, name, config, is_default, notify_incident_opened, notify_incident_resolved)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, type, name, config, is_default, notify_incident_opened, notify_incident_resolved, last_test_at, last_test_status, last_test_message, created_at, updated_at
`

type CreateNotificationProviderParams struct {
	Type                   string
	Name                   string
	Config                 string
	IsDefault              bool
	NotifyIncidentOpened   bool
	NotifyIncidentResolved bool
}

func (q *Queries) CreateNotificationProvider(ctx context.Context, arg *CreateNotificationProviderParams) (*NotificationProvider, error) {
	row := q.db.QueryRowContext(ctx, createNotificationProvider,
		arg.Type,
		arg.Name,
		arg.Config,
		arg.IsDefault,
		arg.NotifyIncidentOpened,
		arg.NotifyIncidentResolved,
	)
	var i NotificationProvider
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Name,
		&i.Config,
		&i.IsDefault,
		&i.NotifyIncidentOpened,
		&i.NotifyIncidentResolved,
		&i.LastTestAt,
		&i.LastTestStatus,
		&i.LastTestMessage,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const updateNotificationProvider = `
UPDATE notification_providers
SET type = ?, name = ?, config = ?, is_default = ?, notify_incident_opened = ?, notify_incident_resolved = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, type, name, config, is_default, notify_incident_opened, notify_incident_resolved, last_test_at, last_test_status, last_test_message, created_at, updated_at
`

type UpdateNotificationProviderParams struct {
	ID                     int64
	Type                   string
	Name                   string
	Config                 string
	IsDefault              bool
	NotifyIncidentOpened   bool
	NotifyIncidentResolved bool
}

func (q *Queries) UpdateNotificationProvider(ctx context.Context, arg *UpdateNotificationProviderParams) (*NotificationProvider, error) {
	row := q.db.QueryRowContext(ctx, updateNotificationProvider,
		arg.Type,
		arg.Name,
		arg.Config,
		arg.IsDefault,
		arg.NotifyIncidentOpened,
		arg.NotifyIncidentResolved,
		arg.ID,
	)
	var i NotificationProvider
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Name,
		&i.Config,
		&i.IsDefault,
		&i.NotifyIncidentOpened,
		&i.NotifyIncidentResolved,
		&i.LastTestAt,
		&i.LastTestStatus,
		&i.LastTestMessage,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const getNotificationProvider = `
SELECT id, type, name, config, is_default, notify_incident_opened, notify_incident_resolved, last_test_at, last_test_status, last_test_message, created_at, updated_at
FROM notification_providers WHERE id = ?
`

func (q *Queries) GetNotificationProvider(ctx context.Context, id int64) (*NotificationProvider, error) {
	row := q.db.QueryRowContext(ctx, getNotificationProvider, id)
	var i NotificationProvider
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Name,
		&i.Config,
		&i.IsDefault,
		&i.NotifyIncidentOpened,
		&i.NotifyIncidentResolved,
		&i.LastTestAt,
		&i.LastTestStatus,
		&i.LastTestMessage,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const listNotificationProviders = `
SELECT id, type, name, config, is_default, notify_incident_opened, notify_incident_resolved, last_test_at, last_test_status, last_test_message, created_at, updated_at
FROM notification_providers ORDER BY id
`

func (q *Queries) ListNotificationProviders(ctx context.Context) ([]*NotificationProvider, error) {
	rows, err := q.db.QueryContext(ctx, listNotificationProviders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*NotificationProvider
	for rows.Next() {
		var i NotificationProvider
		if err := rows.Scan(
			&i.ID,
			&i.Type,
			&i.Name,
			&i.Config,
			&i.IsDefault,
			&i.NotifyIncidentOpened,
			&i.NotifyIncidentResolved,
			&i.LastTestAt,
			&i.LastTestStatus,
			&i.LastTestMessage,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

const deleteNotificationProvider = `
DELETE FROM notification_providers WHERE id = ?
`

func (q *Queries) DeleteNotificationProvider(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteNotificationProvider, id)
	return err
}

const unsetDefaultNotificationProvider = `
UPDATE notification_providers SET is_default = FALSE WHERE type = ?
`

func (q *Queries) UnsetDefaultNotificationProvider(ctx context.Context, providerType string) error {
	_, err := q.db.ExecContext(ctx, unsetDefaultNotificationProvider, providerType)
	return err
}

const getDefaultNotificationProvider = `
SELECT id, type, name, config, is_default, notify_incident_opened, notify_incident_resolved, last_test_at, last_test_status, last_test_message, created_at, updated_at
FROM notification_providers WHERE is_default = TRUE LIMIT 1
`

func (q *Queries) GetDefaultNotificationProvider(ctx context.Context) (*NotificationProvider, error) {
	row := q.db.QueryRowContext(ctx, getDefaultNotificationProvider)
	var i NotificationProvider
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Name,
		&i.Config,
		&i.IsDefault,
		&i.NotifyIncidentOpened,
		&i.NotifyIncidentResolved,
		&i.LastTestAt,
		&i.LastTestStatus,
		&i.LastTestMessage,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}

const updateProviderTestResults = `
UPDATE notification_providers
SET last_test_at = ?, last_test_status = ?, last_test_message = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, type, name, config, is_default, notify_incident_opened, notify_incident_resolved, last_test_at, last_test_status, last_test_message, created_at, updated_at
`

type UpdateProviderTestResultsParams struct {
	ID              int64
	LastTestAt      sql.NullTime
	LastTestStatus  sql.NullString
	LastTestMessage sql.NullString
}

func (q *Queries) UpdateProviderTestResults(ctx context.Context, arg *UpdateProviderTestResultsParams) (*NotificationProvider, error) {
	row := q.db.QueryRowContext(ctx, updateProviderTestResults,
		arg.LastTestAt,
		arg.LastTestStatus,
		arg.LastTestMessage,
		arg.ID,
	)
	var i NotificationProvider
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Name,
		&i.Config,
		&i.IsDefault,
		&i.NotifyIncidentOpened,
		&i.NotifyIncidentResolved,
		&i.LastTestAt,
		&i.LastTestStatus,
		&i.LastTestMessage,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return &i, err
}
