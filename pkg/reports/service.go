package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

const maxReportIncidents = 100

// ChatClient is the slice of the OpenAI client the report service uses.
// *openai.Client satisfies it.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Report is an operator-facing summary of recent monitoring activity
type Report struct {
	GeneratedAt    time.Time `json:"generated_at"`
	Model          string    `json:"model,omitempty"`
	TotalPages     int64     `json:"total_pages"`
	OpenIncidents  int       `json:"open_incidents"`
	TotalIncidents int       `json:"total_incidents"`
	Summary        string    `json:"summary"`
}

// Service generates incident summaries. When no chat client is configured the
// service falls back to a locally rendered summary.
type Service struct {
	queries *db.Queries
	client  ChatClient
	model   string
	logger  *logger.Logger
}

func NewService(queries *db.Queries, apiKey, model string, log *logger.Logger) *Service {
	var client ChatClient
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &Service{
		queries: queries,
		client:  client,
		model:   model,
		logger:  log,
	}
}

// NewServiceWithClient wires an explicit chat client, mainly for tests
func NewServiceWithClient(queries *db.Queries, client ChatClient, model string, log *logger.Logger) *Service {
	return &Service{queries: queries, client: client, model: model, logger: log}
}

// GenerateIncidentReport summarizes the monitoring state and recent incidents
func (s *Service) GenerateIncidentReport(ctx context.Context) (*Report, error) {
	totalPages, err := s.queries.CountPages(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	open, err := s.queries.ListOpenIncidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open incidents: %w", err)
	}

	recent, err := s.queries.ListRecentIncidents(ctx, maxReportIncidents)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent incidents: %w", err)
	}

	report := &Report{
		GeneratedAt:    time.Now().UTC(),
		TotalPages:     totalPages,
		OpenIncidents:  len(open),
		TotalIncidents: len(recent),
	}

	digest, err := s.buildDigest(ctx, open, recent)
	if err != nil {
		return nil, err
	}

	if s.client == nil {
		report.Summary = localSummary(totalPages, open, recent, digest)
		return report, nil
	}

	summary, err := s.aiSummary(ctx, digest)
	if err != nil {
		// Degrade to the local summary rather than failing the report
		s.logger.Warn("AI summary failed, using local summary", "error", err)
		report.Summary = localSummary(totalPages, open, recent, digest)
		return report, nil
	}

	report.Model = s.model
	report.Summary = summary
	return report, nil
}

// digestLine is one incident flattened for summarization
type digestLine struct {
	page     string
	url      string
	errType  string
	cause    string
	open     bool
	duration time.Duration
}

func (s *Service) buildDigest(ctx context.Context, open, recent []*db.Incident) ([]digestLine, error) {
	pages := map[int64]*db.Page{}
	lines := make([]digestLine, 0, len(recent))

	for _, incident := range recent {
		page, ok := pages[incident.PageID]
		if !ok {
			var err error
			page, err = s.queries.GetPage(ctx, incident.PageID)
			if err != nil {
				// Page may have been deleted since; skip its incidents
				continue
			}
			pages[incident.PageID] = page
		}

		line := digestLine{
			page:    page.Name,
			url:     page.Url,
			errType: incident.Type,
			cause:   incident.ProbableCause,
			open:    !incident.ResolvedAt.Valid,
		}
		if incident.ResolvedAt.Valid {
			line.duration = incident.ResolvedAt.Time.Sub(incident.StartedAt)
		} else {
			line.duration = time.Since(incident.StartedAt)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *Service) aiSummary(ctx context.Context, digest []digestLine) (string, error) {
	var sb strings.Builder
	for _, line := range digest {
		state := "resolved"
		if line.open {
			state = "OPEN"
		}
		fmt.Fprintf(&sb, "- %s (%s): %s, cause: %s, %s, duration %s\n",
			line.page, line.url, line.errType, line.cause, state, line.duration.Round(time.Second))
	}
	if sb.Len() == 0 {
		sb.WriteString("(no incidents in the reporting window)\n")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are an assistant that writes short availability reports for a web page monitoring system. " +
					"Summarize the incident list you are given in at most three paragraphs. " +
					"Call out pages that failed repeatedly and likely root causes. Do not invent incidents.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: sb.String(),
			},
		},
		MaxTokens: 600,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// localSummary renders a deterministic report without any AI involvement
func localSummary(totalPages int64, open, recent []*db.Incident, digest []digestLine) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Monitoring %d pages. %d open incidents, %d incidents in the recent window.\n",
		totalPages, len(open), len(recent))

	if len(digest) == 0 {
		sb.WriteString("No incidents recorded.")
		return sb.String()
	}

	byType := map[string]int{}
	byPage := map[string]int{}
	for _, line := range digest {
		errType := line.errType
		if errType == "" {
			errType = string(monitor.ErrorTypeUnknown)
		}
		byType[errType]++
		byPage[line.page]++
	}

	sb.WriteString("Incidents by type: ")
	sb.WriteString(formatCounts(byType))
	sb.WriteString(".\n")

	repeated := make([]string, 0)
	for page, count := range byPage {
		if count > 1 {
			repeated = append(repeated, fmt.Sprintf("%s (%d)", page, count))
		}
	}
	if len(repeated) > 0 {
		sort.Strings(repeated)
		fmt.Fprintf(&sb, "Pages with repeated incidents: %s.\n", strings.Join(repeated, ", "))
	}

	for _, line := range digest {
		if line.open {
			fmt.Fprintf(&sb, "Still open: %s (%s), cause: %s.\n", line.page, line.errType, line.cause)
		}
	}
	return strings.TrimSpace(sb.String())
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s=%d", key, counts[key])
	}
	return strings.Join(parts, ", ")
}
