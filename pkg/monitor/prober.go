package monitor

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

const (
	defaultProbeTimeout = 10 * time.Second
	userAgent           = "MonitoraPrymo/1.0 (+https://prymo.com.br/monitora)"
)

// Prober issues a single bounded-time GET per attempt and classifies the
// response. Every network failure mode resolves to a filled ProbeOutcome;
// nothing escapes this boundary as an error.
type Prober struct {
	classifier *Classifier
	client     *http.Client
	logger     *logger.Logger
}

func NewProber(classifier *Classifier, log *logger.Logger) *Prober {
	return &Prober{
		classifier: classifier,
		// Per-request deadlines come from the context; the client itself
		// has no timeout so a page-level override can exceed any default.
		client: &http.Client{},
		logger: log,
	}
}

// Probe performs one GET against the page. The hard deadline is the page's
// timeout, falling back to the policy default. Redirects are followed and
// the final URL is captured for redirect-block detection.
func (p *Prober) Probe(ctx context.Context, page PageDescriptor, policy MonitoringPolicy) ProbeOutcome {
	timeout := page.Timeout
	if timeout == 0 {
		timeout = policy.HTTPTimeout
	}
	if timeout == 0 {
		timeout = defaultProbeTimeout
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, page.URL, nil)
	if err != nil {
		return ProbeOutcome{
			ResponseTime: time.Since(start),
			ErrorMessage: "invalid URL: " + err.Error(),
		}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*")

	resp, err := p.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return ProbeOutcome{
			ResponseTime: elapsed,
			ErrorMessage: categorizeTransportError(err, timeout),
		}
	}
	defer resp.Body.Close()

	body := p.readBody(resp)
	status := resp.StatusCode
	finalURL := page.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	outcome := ProbeOutcome{
		Success:      status >= 200 && status < 300,
		HTTPStatus:   &status,
		ResponseTime: elapsed,
		BodySnippet:  body,
		FinalURL:     finalURL,
	}

	// Block detection runs for every response; soft-404 only makes sense
	// on a 200, since a true error status is not a "soft" error.
	blocked, reason, blockType := p.classifier.DetectBlock(status, body, page.URL, finalURL)
	outcome.Blocked = blocked
	outcome.BlockReason = reason
	outcome.BlockType = blockType

	if status == http.StatusOK {
		outcome.Soft404 = p.classifier.IsSoft404(finalURL, body, page.Soft404Patterns)
	}

	return outcome
}

// readBody reads up to the inspection cap, transcoding ISO-8859-1 and
// Windows-1252 bodies (common on Brazilian sites) so phrase matching works.
func (p *Prober) readBody(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, bodyInspectionLimit))
	if err != nil {
		p.logger.Debug("Failed to read response body", "error", err)
		return ""
	}

	if enc := encodingFor(resp.Header.Get("Content-Type")); enc != nil {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err == nil {
			return string(decoded)
		}
	}
	return string(raw)
}

func encodingFor(contentType string) encoding.Encoding {
	if contentType == "" {
		return nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	switch strings.ToLower(params["charset"]) {
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1
	case "windows-1252", "cp1252":
		return charmap.Windows1252
	default:
		return nil
	}
}

func categorizeTransportError(err error, timeout time.Duration) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "context deadline exceeded") || strings.Contains(msg, "Client.Timeout"):
		return "request timed out after " + timeout.String()
	case strings.Contains(msg, "connection refused"):
		return "connection refused: " + msg
	case strings.Contains(msg, "no such host"):
		return "DNS lookup failed: " + msg
	default:
		return msg
	}
}
