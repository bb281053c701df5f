package monitor

import (
	"strings"
	"time"
)

// ResolveStatus maps a probe outcome to exactly one PageStatus. Precedence:
// blocked, then soft-404, then network-level timeout, then HTTP/unreachable
// failure, then slow, then online.
func ResolveStatus(success bool, httpStatus *int, responseTime time.Duration, soft404, blocked bool, slowThreshold time.Duration) PageStatus {
	switch {
	case blocked:
		return StatusBlocked
	case soft404:
		return StatusOffline
	case !success && httpStatus == nil:
		return StatusTimeout
	case !success || *httpStatus >= 400:
		return StatusOffline
	case responseTime > slowThreshold:
		return StatusSlow
	default:
		return StatusOnline
	}
}

// LegacyLabel collapses PageStatus into the 4-value label kept for older
// consumers. One canonical mapping, applied everywhere: soft-404 wins,
// TIMEOUT/OFFLINE/BLOQUEADO all read as "Offline".
func LegacyLabel(status PageStatus, soft404 bool) StatusLabel {
	if soft404 {
		return LabelSoft404
	}
	switch status {
	case StatusOnline:
		return LabelOnline
	case StatusSlow:
		return LabelSlow
	default:
		return LabelOffline
	}
}

// ClassifyErrorType derives the error classification for a probe outcome.
// Healthy outcomes yield the empty type.
func ClassifyErrorType(o ProbeOutcome) ErrorType {
	if o.Blocked {
		if o.BlockType != "" {
			return o.BlockType
		}
		return ErrorTypeWAFBlock
	}
	if o.Soft404 {
		return ErrorTypeSoft404
	}
	if o.HTTPStatus == nil {
		return classifyNetworkMessage(o.ErrorMessage)
	}
	status := *o.HTTPStatus
	switch {
	case status >= 500:
		return ErrorTypeHTTP500
	case status >= 400:
		return ErrorTypeHTTP404
	default:
		return ""
	}
}

func classifyNetworkMessage(msg string) ErrorType {
	lowered := strings.ToLower(msg)
	switch {
	case strings.Contains(lowered, "timed out"),
		strings.Contains(lowered, "timeout"),
		strings.Contains(lowered, "deadline exceeded"):
		return ErrorTypeTimeout
	case strings.Contains(lowered, "connection refused"),
		strings.Contains(lowered, "connection reset"),
		strings.Contains(lowered, "no such host"),
		strings.Contains(lowered, "dns"),
		strings.Contains(lowered, "unreachable"):
		return ErrorTypeConnection
	default:
		return ErrorTypeUnknown
	}
}
