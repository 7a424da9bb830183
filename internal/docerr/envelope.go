// Package docerr provides a structured error envelope (severity,
// correlation ID, optional cause), separate from internal/matcher's own
// dependency-free Error type, and the correlation-ID generator cmd/docmatch
// uses for its logger. The ingest, vault and docschema packages return
// plain wrapped errors, not Envelopes.
package docerr

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Severity classifies how urgently an error needs attention.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityLevel = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Envelope is a structured error shape. Kind names the failing stage;
// Message is human-readable; CorrelationID ties an envelope back to a
// single pipeline run. cmd/docmatch returns plain wrapped errors and does
// not build Envelopes.
type Envelope struct {
	Kind          string   `json:"kind"`
	Message       string   `json:"message"`
	Path          string   `json:"path,omitempty"`
	Timestamp     string   `json:"timestamp"`
	Severity      Severity `json:"severity,omitempty"`
	SeverityLevel int      `json:"severity_level,omitempty"`
	CorrelationID string   `json:"correlation_id,omitempty"`
	Cause         string   `json:"cause,omitempty"`
}

// New creates an Envelope stamped with the current time.
func New(kind, message string) *Envelope {
	return &Envelope{
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// WithSeverity sets severity and its numeric level; unrecognized values
// fall back to SeverityInfo.
func (e *Envelope) WithSeverity(s Severity) *Envelope {
	if _, ok := severityLevel[s]; !ok {
		s = SeverityInfo
	}
	e.Severity = s
	e.SeverityLevel = severityLevel[s]
	return e
}

// WithCorrelationID sets the correlation ID.
func (e *Envelope) WithCorrelationID(id string) *Envelope {
	e.CorrelationID = id
	return e
}

// WithPath records the file or resource the error concerns.
func (e *Envelope) WithPath(path string) *Envelope {
	e.Path = path
	return e
}

// WithCause records an underlying error's message.
func (e *Envelope) WithCause(cause error) *Envelope {
	if cause != nil {
		e.Cause = cause.Error()
	}
	return e
}

func (e *Envelope) Error() string {
	severity := e.Severity
	if severity == "" {
		severity = SeverityInfo
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, severity, e.Message)
}

// MarshalJSON ensures Envelope satisfies encoding/json's well-known hook
// even though it has no unexported fields requiring special handling.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	type alias Envelope
	return json.Marshal((*alias)(e))
}

// NewCorrelationID returns a fresh correlation ID for one pipeline run.
func NewCorrelationID() string {
	return uuid.New().String()
}
