// Package report persists the result envelopes of past tool
// invocations so they can be re-inspected by run ID.
package report

import (
	"encoding/json"
	"time"
)

// Record holds one stored invocation.
type Record struct {
	ID          string          `json:"id"`
	Tool        string          `json:"tool"`
	ProjectPath string          `json:"project_path"`
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	Recorded    time.Time       `json:"recorded"`
	Envelope    json.RawMessage `json:"envelope"` // the full result envelope as returned to the caller
}

// Store persists and retrieves invocation records.
type Store interface {
	Save(rec *Record) error
	Load(runID string) (*Record, error)
}
