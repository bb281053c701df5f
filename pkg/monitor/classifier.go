package monitor

import (
	"net/http"
	"net/url"
	"strings"
)

// bodyInspectionLimit caps how many characters of the body the classifier
// inspects. Signals past the cap are an accepted miss on pathological pages.
const bodyInspectionLimit = 50000

// Classifier runs the pure content heuristics: soft-404 detection and
// WAF/challenge/redirect-block detection. It performs no I/O.
type Classifier struct {
	patterns *PatternSet
}

func NewClassifier(patterns *PatternSet) *Classifier {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return &Classifier{patterns: patterns}
}

// IsSoft404 reports whether the page content looks like an error page served
// with a 200 status. A URL that cannot be parsed degrades to "not an error
// path" rather than failing.
func (c *Classifier) IsSoft404(pageURL, body string, customPatterns []string) bool {
	if c.isErrorPath(pageURL) {
		return true
	}

	lowered := strings.ToLower(truncate(body, bodyInspectionLimit))
	for _, phrase := range c.patterns.Soft404Phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	for _, phrase := range customPatterns {
		if phrase == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func (c *Classifier) isErrorPath(pageURL string) bool {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(strings.TrimSuffix(parsed.Path, "/"))
	if path == "" {
		return false
	}
	for _, errorPath := range c.patterns.ErrorPaths {
		if strings.HasSuffix(path, errorPath) {
			return true
		}
	}
	return false
}

// DetectBlock checks, in order, for an HTTP 403, challenge-platform body
// markers and block-indicative cross-host redirects. First match wins.
func (c *Classifier) DetectBlock(httpStatus int, body, requestedURL, finalURL string) (bool, string, ErrorType) {
	if httpStatus == http.StatusForbidden {
		return true, "HTTP 403 - possible WAF/firewall", ErrorTypeWAFBlock
	}

	lowered := strings.ToLower(truncate(body, bodyInspectionLimit))
	for _, marker := range c.patterns.ChallengeMarkers {
		if strings.Contains(lowered, marker) {
			return true, "bot challenge detected: " + marker, ErrorTypeWAFBlock
		}
	}

	if finalURL != "" && finalURL != requestedURL {
		requestedHost := hostOf(requestedURL)
		finalHost := hostOf(finalURL)
		if requestedHost != "" && finalHost != "" && requestedHost != finalHost {
			loweredFinal := strings.ToLower(finalURL)
			for _, hint := range c.patterns.BlockURLHints {
				if strings.Contains(loweredFinal, hint) {
					return true, "redirected to block page: " + finalHost, ErrorTypeRedirectLoop
				}
			}
		}
	}

	return false, "", ""
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
