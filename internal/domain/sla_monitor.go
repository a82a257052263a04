package domain

import "time"

// MonitorRun summarizes one pass of the SLA monitor.
type MonitorRun struct {
	StartedAt  time.Time     `json:"startedAt"`
	Duration   time.Duration `json:"-"`
	Scanned    int           `json:"scanned"`
	Warnings   int           `json:"warnings"`
	Breaches   int           `json:"breaches"`
	Skipped    bool          `json:"skipped"`
	Error      string        `json:"error,omitempty"`
	DurationMs int64         `json:"durationMs"`
}

// MonitorStats is the persisted run history exposed by the status endpoint.
type MonitorStats struct {
	Completed    int64      `json:"completed"`
	Failed       int64      `json:"failed"`
	Active       bool       `json:"active"`
	LastRunAt    *time.Time `json:"lastRunAt,omitempty"`
	LastError    string     `json:"lastError,omitempty"`
	LastWarnings int64      `json:"lastWarnings"`
	LastBreaches int64      `json:"lastBreaches"`
}
