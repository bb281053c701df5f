package monitor

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestResolveStatusPrecedence(t *testing.T) {
	slow := 2 * time.Second

	cases := []struct {
		name         string
		success      bool
		httpStatus   *int
		responseTime time.Duration
		soft404      bool
		blocked      bool
		want         PageStatus
	}{
		{"blocked wins over everything", true, intPtr(200), time.Second, true, true, StatusBlocked},
		{"blocked even on network failure", false, nil, time.Second, false, true, StatusBlocked},
		{"soft404 maps to offline", true, intPtr(200), time.Second, true, false, StatusOffline},
		{"no status means timeout", false, nil, 10 * time.Second, false, false, StatusTimeout},
		{"500 is offline", false, intPtr(500), time.Second, false, false, StatusOffline},
		{"404 is offline", false, intPtr(404), time.Second, false, false, StatusOffline},
		{"slow success", true, intPtr(200), 3 * time.Second, false, false, StatusSlow},
		{"fast success", true, intPtr(200), 500 * time.Millisecond, false, false, StatusOnline},
		{"success at threshold is online", true, intPtr(200), slow, false, false, StatusOnline},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveStatus(tc.success, tc.httpStatus, tc.responseTime, tc.soft404, tc.blocked, slow)
			if got != tc.want {
				t.Errorf("ResolveStatus = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestLegacyLabel(t *testing.T) {
	cases := []struct {
		status  PageStatus
		soft404 bool
		want    StatusLabel
	}{
		{StatusOnline, false, LabelOnline},
		{StatusSlow, false, LabelSlow},
		{StatusTimeout, false, LabelOffline},
		{StatusOffline, false, LabelOffline},
		{StatusBlocked, false, LabelOffline},
		{StatusOffline, true, LabelSoft404},
	}

	for _, tc := range cases {
		if got := LegacyLabel(tc.status, tc.soft404); got != tc.want {
			t.Errorf("LegacyLabel(%s, %v) = %s, want %s", tc.status, tc.soft404, got, tc.want)
		}
	}
}

func TestClassifyErrorType(t *testing.T) {
	cases := []struct {
		name    string
		outcome ProbeOutcome
		want    ErrorType
	}{
		{"block type first", ProbeOutcome{Blocked: true, BlockType: ErrorTypeRedirectLoop, Soft404: true}, ErrorTypeRedirectLoop},
		{"soft404 next", ProbeOutcome{Soft404: true, HTTPStatus: intPtr(200)}, ErrorTypeSoft404},
		{"timeout message", ProbeOutcome{ErrorMessage: "request timed out after 10s"}, ErrorTypeTimeout},
		{"deadline message", ProbeOutcome{ErrorMessage: "context deadline exceeded"}, ErrorTypeTimeout},
		{"refused", ProbeOutcome{ErrorMessage: "dial tcp: connection refused"}, ErrorTypeConnection},
		{"dns failure", ProbeOutcome{ErrorMessage: "DNS lookup failed: no such host"}, ErrorTypeConnection},
		{"unknown network error", ProbeOutcome{ErrorMessage: "tls: handshake failure"}, ErrorTypeUnknown},
		{"404 bucket", ProbeOutcome{HTTPStatus: intPtr(404)}, ErrorTypeHTTP404},
		{"410 in 4xx bucket", ProbeOutcome{HTTPStatus: intPtr(410)}, ErrorTypeHTTP404},
		{"503 bucket", ProbeOutcome{HTTPStatus: intPtr(503)}, ErrorTypeHTTP500},
		{"healthy is empty", ProbeOutcome{Success: true, HTTPStatus: intPtr(200)}, ErrorType("")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyErrorType(tc.outcome); got != tc.want {
				t.Errorf("ClassifyErrorType = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestProbableCause(t *testing.T) {
	cases := []struct {
		name   string
		result CheckResult
		want   string
	}{
		{"blocked uses reason", CheckResult{Blocked: true, BlockReason: "HTTP 403 - possible WAF/firewall"}, "HTTP 403 - possible WAF/firewall"},
		{"timeout", CheckResult{ErrorType: ErrorTypeTimeout, ResponseTime: 10 * time.Second}, "timeout after 10000ms, possible slowness or bot blocking"},
		{"connection", CheckResult{ErrorType: ErrorTypeConnection}, "server unreachable"},
		{"server error", CheckResult{ErrorType: ErrorTypeHTTP500, HTTPStatus: intPtr(500)}, "server-side error (status 500)"},
		{"not found", CheckResult{ErrorType: ErrorTypeHTTP404, HTTPStatus: intPtr(404)}, "page not found (status 404)"},
		{"soft404", CheckResult{ErrorType: ErrorTypeSoft404}, "soft-404 content detected"},
		{"slow", CheckResult{Status: StatusSlow}, "slow response, possible server overload"},
		{"fallback message", CheckResult{ErrorMessage: "tls handshake failure", ErrorType: ErrorTypeUnknown}, "tls handshake failure"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProbableCause(tc.result); got != tc.want {
				t.Errorf("ProbableCause = %q, want %q", got, tc.want)
			}
		})
	}
}
