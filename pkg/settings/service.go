package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

// MonitoringConfig is the single-row policy configuration. Durations are
// stored as integer milliseconds/seconds so the JSON stays editable by hand.
type MonitoringConfig struct {
	SlowThresholdMs      int  `json:"slowThresholdMs"`
	FailureThreshold     int  `json:"failureThreshold"`
	AutoResolve          bool `json:"autoResolve"`
	HTTPTimeoutMs        int  `json:"httpTimeoutMs"`
	MaxRetries           int  `json:"maxRetries"`
	RetryDelayMs         int  `json:"retryDelayMs"`
	CheckIntervalSeconds int  `json:"checkIntervalSeconds"`
	BatchSize            int  `json:"batchSize"`
	BatchDelayMs         int  `json:"batchDelayMs"`
}

// Default settings configuration
var defaultConfig = MonitoringConfig{
	SlowThresholdMs:      3000,
	FailureThreshold:     2,
	AutoResolve:          true,
	HTTPTimeoutMs:        10000,
	MaxRetries:           2,
	RetryDelayMs:         5000,
	CheckIntervalSeconds: 300,
	BatchSize:            10,
	BatchDelayMs:         1000,
}

// Setting represents the settings row in the service layer
type Setting struct {
	ID        int64            `json:"id"`
	Config    MonitoringConfig `json:"config"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// UpdateSettingParams represents the parameters for updating the setting
type UpdateSettingParams struct {
	Config MonitoringConfig `json:"config"`
}

// SettingsService handles operations for the monitoring configuration
type SettingsService struct {
	queries *db.Queries
	logger  *logger.Logger
}

var _ monitor.PolicyProvider = (*SettingsService)(nil)

// NewSettingsService creates a new settings service
func NewSettingsService(queries *db.Queries, logger *logger.Logger) *SettingsService {
	return &SettingsService{
		queries: queries,
		logger:  logger,
	}
}

func validateConfig(config MonitoringConfig) error {
	if config.SlowThresholdMs <= 0 {
		return fmt.Errorf("slowThresholdMs must be positive")
	}
	if config.FailureThreshold < 1 {
		return fmt.Errorf("failureThreshold must be at least 1")
	}
	if config.HTTPTimeoutMs <= 0 {
		return fmt.Errorf("httpTimeoutMs must be positive")
	}
	if config.MaxRetries < 0 {
		return fmt.Errorf("maxRetries cannot be negative")
	}
	if config.RetryDelayMs < 0 {
		return fmt.Errorf("retryDelayMs cannot be negative")
	}
	if config.CheckIntervalSeconds < 10 {
		return fmt.Errorf("checkIntervalSeconds must be at least 10")
	}
	if config.BatchSize < 1 {
		return fmt.Errorf("batchSize must be at least 1")
	}
	if config.BatchDelayMs < 0 {
		return fmt.Errorf("batchDelayMs cannot be negative")
	}
	return nil
}

// GetSetting retrieves the setting row
func (s *SettingsService) GetSetting(ctx context.Context) (*Setting, error) {
	settings, err := s.queries.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	if len(settings) == 0 {
		return nil, fmt.Errorf("no settings found")
	}
	return toSetting(settings[0])
}

// UpdateSetting replaces the monitoring configuration, creating the row if
// it does not exist yet
func (s *SettingsService) UpdateSetting(ctx context.Context, params UpdateSettingParams) (*Setting, error) {
	if err := validateConfig(params.Config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	configJSON, err := json.Marshal(params.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	settings, err := s.queries.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	var dbSetting *db.Setting
	if len(settings) > 0 {
		dbSetting, err = s.queries.UpdateSetting(ctx, &db.UpdateSettingParams{
			ID:     settings[0].ID,
			Config: string(configJSON),
		})
	} else {
		dbSetting, err = s.queries.CreateSetting(ctx, string(configJSON))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}

	return toSetting(dbSetting)
}

// InitializeDefaultSettings creates the default settings row if none exists
func (s *SettingsService) InitializeDefaultSettings(ctx context.Context) (*Setting, error) {
	settings, err := s.queries.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	if len(settings) > 0 {
		return toSetting(settings[0])
	}

	configJSON, err := json.Marshal(defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config: %w", err)
	}

	dbSetting, err := s.queries.CreateSetting(ctx, string(configJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	s.logger.Info("Initialized default monitoring settings", "id", dbSetting.ID)
	return toSetting(dbSetting)
}

// Policy implements monitor.PolicyProvider. It reads the stored configuration
// fresh on every call; callers get the defaults while no row exists.
func (s *SettingsService) Policy(ctx context.Context) (monitor.MonitoringPolicy, error) {
	settings, err := s.queries.ListSettings(ctx)
	if err != nil {
		return monitor.MonitoringPolicy{}, fmt.Errorf("failed to list settings: %w", err)
	}
	if len(settings) == 0 {
		return monitor.DefaultPolicy(), nil
	}

	var config MonitoringConfig
	if err := json.Unmarshal([]byte(settings[0].Config), &config); err != nil {
		return monitor.MonitoringPolicy{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return monitor.MonitoringPolicy{
		SlowThreshold:    time.Duration(config.SlowThresholdMs) * time.Millisecond,
		FailureThreshold: config.FailureThreshold,
		AutoResolve:      config.AutoResolve,
		HTTPTimeout:      time.Duration(config.HTTPTimeoutMs) * time.Millisecond,
		MaxRetries:       config.MaxRetries,
		RetryDelay:       time.Duration(config.RetryDelayMs) * time.Millisecond,
	}, nil
}

// SchedulerConfig is the slice of the configuration the scheduler consumes.
type SchedulerConfig struct {
	CheckInterval time.Duration
	BatchSize     int
	BatchDelay    time.Duration
}

// Scheduler returns the scheduling parameters, falling back to defaults when
// no row exists
func (s *SettingsService) Scheduler(ctx context.Context) (SchedulerConfig, error) {
	config := defaultConfig
	settings, err := s.queries.ListSettings(ctx)
	if err != nil {
		return SchedulerConfig{}, fmt.Errorf("failed to list settings: %w", err)
	}
	if len(settings) > 0 {
		if err := json.Unmarshal([]byte(settings[0].Config), &config); err != nil {
			return SchedulerConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	return SchedulerConfig{
		CheckInterval: time.Duration(config.CheckIntervalSeconds) * time.Second,
		BatchSize:     config.BatchSize,
		BatchDelay:    time.Duration(config.BatchDelayMs) * time.Millisecond,
	}, nil
}

func toSetting(dbSetting *db.Setting) (*Setting, error) {
	var config MonitoringConfig
	if err := json.Unmarshal([]byte(dbSetting.Config), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &Setting{
		ID:        dbSetting.ID,
		Config:    config,
		CreatedAt: dbSetting.CreatedAt.Time,
		UpdatedAt: dbSetting.UpdatedAt.Time,
	}, nil
}
