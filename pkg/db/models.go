package db

import (
	"database/sql"
	"time"
)

type Page struct {
	ID                  int64
	Slug                string
	Name                string
	Client              string
	Url                 string
	TimeoutMs           sql.NullInt64
	Soft404Patterns     sql.NullString
	Status              string
	ErrorType           sql.NullString
	ErrorMessage        sql.NullString
	ConsecutiveFailures int64
	LastCheckedAt       sql.NullTime
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type CheckHistory struct {
	ID             int64
	PageID         int64
	HttpStatus     sql.NullInt64
	ResponseTimeMs int64
	ErrorMessage   sql.NullString
	StatusLabel    string
	Origin         string
	CheckedAt      time.Time
}

type Incident struct {
	ID                  int64
	PageID              int64
	Type                string
	Message             string
	ProbableCause       string
	Origin              string
	ConsecutiveFailures int64
	FinalStatus         sql.NullString
	StartedAt           time.Time
	ResolvedAt          sql.NullTime
}

type Event struct {
	ID        int64
	PageID    int64
	EventType string
	Message   string
	Metadata  sql.NullString
	Origin    sql.NullString
	RequestID sql.NullString
	CreatedAt time.Time
}

type Setting struct {
	ID        int64
	Config    string
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

type NotificationProvider struct {
	ID                     int64
	Type                   string
	Name                   string
	Config                 string
	IsDefault              bool
	NotifyIncidentOpened   bool
	NotifyIncidentResolved bool
	LastTestAt             sql.NullTime
	LastTestStatus         sql.NullString
	LastTestMessage        sql.NullString
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
