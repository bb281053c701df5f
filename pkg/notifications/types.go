package notifications

import "time"

// ProviderType is the kind of notification channel
type ProviderType string

const (
	ProviderTypeSMTP ProviderType = "SMTP"
)

// SMTPConfig holds the SMTP connection settings for a provider
type SMTPConfig struct {
	Host       string   `json:"host" validate:"required"`
	Port       int      `json:"port" validate:"required,gt=0"`
	Username   string   `json:"username"`
	Password   string   `json:"password"`
	From       string   `json:"from" validate:"required,email"`
	TLS        bool     `json:"tls"`
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
}

// CreateProviderParams represents the parameters for creating a provider
type CreateProviderParams struct {
	Type                   ProviderType `json:"type" validate:"required,oneof=SMTP"`
	Name                   string       `json:"name" validate:"required"`
	Config                 SMTPConfig   `json:"config" validate:"required"`
	IsDefault              bool         `json:"is_default"`
	NotifyIncidentOpened   bool         `json:"notify_incident_opened"`
	NotifyIncidentResolved bool         `json:"notify_incident_resolved"`
}

// UpdateProviderParams represents the parameters for updating a provider
type UpdateProviderParams struct {
	ID                     int64        `json:"-"`
	Type                   ProviderType `json:"type" validate:"required,oneof=SMTP"`
	Name                   string       `json:"name" validate:"required"`
	Config                 SMTPConfig   `json:"config" validate:"required"`
	IsDefault              bool         `json:"is_default"`
	NotifyIncidentOpened   bool         `json:"notify_incident_opened"`
	NotifyIncidentResolved bool         `json:"notify_incident_resolved"`
}

// TestProviderParams represents the parameters for a provider test send
type TestProviderParams struct {
	TestEmail string `json:"test_email" validate:"required,email"`
}

// TestResult represents the outcome of a provider test send
type TestResult struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	TestedAt time.Time `json:"tested_at"`
}

// Provider represents a notification provider in the service layer. The
// SMTP password is never included in responses.
type Provider struct {
	ID                     int64        `json:"id"`
	Type                   ProviderType `json:"type"`
	Name                   string       `json:"name"`
	Config                 SMTPConfig   `json:"config"`
	IsDefault              bool         `json:"is_default"`
	NotifyIncidentOpened   bool         `json:"notify_incident_opened"`
	NotifyIncidentResolved bool         `json:"notify_incident_resolved"`
	LastTestAt             *time.Time   `json:"last_test_at,omitempty"`
	LastTestStatus         string       `json:"last_test_status,omitempty"`
	LastTestMessage        string       `json:"last_test_message,omitempty"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}
