package notifications

import (
	"context"
	"crypto/tls"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/mail.v2"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

// sendTimeout bounds every SMTP interaction, dial included.
const sendTimeout = 15 * time.Second

// Service manages notification providers and delivers incident e-mails
type Service struct {
	queries  *db.Queries
	logger   *logger.Logger
	validate *validator.Validate
}

var _ monitor.IncidentNotifier = (*Service)(nil)

func NewService(queries *db.Queries, logger *logger.Logger) *Service {
	return &Service{
		queries:  queries,
		logger:   logger,
		validate: validator.New(),
	}
}

// EmailContent represents the content of an email with both HTML and plain text versions
type EmailContent struct {
	Subject   string
	PlainText string
	HTML      string
}

func (s *Service) CreateProvider(ctx context.Context, params CreateProviderParams) (*Provider, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid provider: %w", err)
	}

	configJSON, err := json.Marshal(params.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if params.IsDefault {
		if err := s.queries.UnsetDefaultNotificationProvider(ctx, string(params.Type)); err != nil {
			return nil, fmt.Errorf("failed to unset default provider: %w", err)
		}
	}

	provider, err := s.queries.CreateNotificationProvider(ctx, &db.CreateNotificationProviderParams{
		Type:                   string(params.Type),
		Name:                   params.Name,
		Config:                 string(configJSON),
		IsDefault:              params.IsDefault,
		NotifyIncidentOpened:   params.NotifyIncidentOpened,
		NotifyIncidentResolved: params.NotifyIncidentResolved,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	return s.providerToDTO(provider)
}

func (s *Service) UpdateProvider(ctx context.Context, params UpdateProviderParams) (*Provider, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid provider: %w", err)
	}

	configJSON, err := json.Marshal(params.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if params.IsDefault {
		if err := s.queries.UnsetDefaultNotificationProvider(ctx, string(params.Type)); err != nil {
			return nil, fmt.Errorf("failed to unset default provider: %w", err)
		}
	}

	provider, err := s.queries.UpdateNotificationProvider(ctx, &db.UpdateNotificationProviderParams{
		ID:                     params.ID,
		Type:                   string(params.Type),
		Name:                   params.Name,
		Config:                 string(configJSON),
		IsDefault:              params.IsDefault,
		NotifyIncidentOpened:   params.NotifyIncidentOpened,
		NotifyIncidentResolved: params.NotifyIncidentResolved,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}

	return s.providerToDTO(provider)
}

func (s *Service) GetProvider(ctx context.Context, id int64) (*Provider, error) {
	provider, err := s.queries.GetNotificationProvider(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return s.providerToDTO(provider)
}

func (s *Service) ListProviders(ctx context.Context) ([]*Provider, error) {
	providers, err := s.queries.ListNotificationProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	result := make([]*Provider, len(providers))
	for i, provider := range providers {
		dto, err := s.providerToDTO(provider)
		if err != nil {
			return nil, err
		}
		result[i] = dto
	}
	return result, nil
}

func (s *Service) DeleteProvider(ctx context.Context, id int64) error {
	return s.queries.DeleteNotificationProvider(ctx, id)
}

// TestProvider sends a test e-mail through the provider and records the outcome
func (s *Service) TestProvider(ctx context.Context, id int64, params TestProviderParams) (*TestResult, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid test parameters: %w", err)
	}

	provider, err := s.queries.GetNotificationProvider(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	var config SMTPConfig
	if err := json.Unmarshal([]byte(provider.Config), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	s.logger.Info("Sending test email", "from", config.From, "to", params.TestEmail)

	err = s.sendEmail(config, []string{params.TestEmail}, testEmailContent())
	testStatus := "success"
	testMessage := "Email sent successfully"
	if err != nil {
		testStatus = "failure"
		testMessage = fmt.Sprintf("Failed to send email: %v", err)
	}

	_, err = s.queries.UpdateProviderTestResults(ctx, &db.UpdateProviderTestResultsParams{
		ID:              id,
		LastTestAt:      sql.NullTime{Time: time.Now(), Valid: true},
		LastTestStatus:  sql.NullString{String: testStatus, Valid: true},
		LastTestMessage: sql.NullString{String: testMessage, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update test results: %w", err)
	}

	return &TestResult{
		Status:   testStatus,
		Message:  testMessage,
		TestedAt: time.Now(),
	}, nil
}

// NotifyIncidentOpened implements monitor.IncidentNotifier. Delivery failures
// are logged and swallowed so the check path never sees them.
func (s *Service) NotifyIncidentOpened(ctx context.Context, data monitor.IncidentNotification) {
	s.deliver(ctx, data, true)
}

// NotifyIncidentResolved implements monitor.IncidentNotifier
func (s *Service) NotifyIncidentResolved(ctx context.Context, data monitor.IncidentNotification) {
	s.deliver(ctx, data, false)
}

func (s *Service) deliver(ctx context.Context, data monitor.IncidentNotification, opened bool) {
	provider, err := s.queries.GetDefaultNotificationProvider(ctx)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("Failed to load default notification provider", "error", err)
		}
		return
	}

	if opened && !provider.NotifyIncidentOpened {
		return
	}
	if !opened && !provider.NotifyIncidentResolved {
		return
	}

	var config SMTPConfig
	if err := json.Unmarshal([]byte(provider.Config), &config); err != nil {
		s.logger.Error("Failed to unmarshal provider config", "providerID", provider.ID, "error", err)
		return
	}

	var content EmailContent
	if opened {
		content, err = incidentOpenedContent(data)
	} else {
		content, err = incidentResolvedContent(data)
	}
	if err != nil {
		s.logger.Error("Failed to render incident email", "incidentID", data.IncidentID, "error", err)
		return
	}

	if err := s.sendEmail(config, config.Recipients, content); err != nil {
		s.logger.Error("Failed to send incident email", "incidentID", data.IncidentID, "page", data.PageName, "error", err)
		return
	}

	s.logger.Info("Sent incident notification", "incidentID", data.IncidentID, "page", data.PageName, "opened", opened)
}

func (s *Service) sendEmail(config SMTPConfig, to []string, content EmailContent) error {
	m := mail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", content.Subject)
	m.SetBody("text/plain", content.PlainText)
	m.AddAlternative("text/html", content.HTML)

	d := mail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	d.TLSConfig = &tls.Config{
		ServerName:         config.Host,
		InsecureSkipVerify: false,
	}
	d.Timeout = sendTimeout
	if config.TLS {
		d.SSL = true
	} else {
		d.SSL = false
		d.StartTLSPolicy = mail.OpportunisticStartTLS
	}

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-time.After(sendTimeout):
		return fmt.Errorf("timeout sending email after %s", sendTimeout)
	}
}

func (s *Service) providerToDTO(provider *db.NotificationProvider) (*Provider, error) {
	var config SMTPConfig
	if err := json.Unmarshal([]byte(provider.Config), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Password = ""

	dto := &Provider{
		ID:                     provider.ID,
		Type:                   ProviderType(provider.Type),
		Name:                   provider.Name,
		Config:                 config,
		IsDefault:              provider.IsDefault,
		NotifyIncidentOpened:   provider.NotifyIncidentOpened,
		NotifyIncidentResolved: provider.NotifyIncidentResolved,
		LastTestStatus:         provider.LastTestStatus.String,
		LastTestMessage:        provider.LastTestMessage.String,
		CreatedAt:              provider.CreatedAt,
		UpdatedAt:              provider.UpdatedAt,
	}
	if provider.LastTestAt.Valid {
		dto.LastTestAt = &provider.LastTestAt.Time
	}
	return dto, nil
}
