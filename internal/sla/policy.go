// Package sla holds the priority-based service level thresholds and the breach
// predicate evaluated against a ticket's age.
package sla

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// DefaultWarnWindow is how long before a deadline a ticket counts as at risk.
const DefaultWarnWindow = 15 * time.Minute

// Thresholds are the maximum elapsed times for the two SLA milestones.
type Thresholds struct {
	Response time.Duration
	Resolve  time.Duration
}

// MarshalJSON renders the thresholds in milliseconds.
func (t Thresholds) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ResponseMs int64 `json:"responseThresholdMs"`
		ResolveMs  int64 `json:"resolveThresholdMs"`
	}{t.Response.Milliseconds(), t.Resolve.Milliseconds()})
}

var table = map[domain.TicketPriority]Thresholds{
	domain.TicketPriorityP1: {Response: 15 * time.Minute, Resolve: 4 * time.Hour},
	domain.TicketPriorityP2: {Response: time.Hour, Resolve: 8 * time.Hour},
	domain.TicketPriorityP3: {Response: 4 * time.Hour, Resolve: 3 * 24 * time.Hour},
	domain.TicketPriorityP4: {Response: 24 * time.Hour, Resolve: 7 * 24 * time.Hour},
}

// ThresholdsFor returns the thresholds for a priority.
func ThresholdsFor(priority domain.TicketPriority) (Thresholds, error) {
	th, ok := table[priority]
	if !ok {
		return Thresholds{}, fmt.Errorf("sla: unknown priority %q", priority)
	}
	return th, nil
}

// Policy evaluates tickets against the threshold table.
type Policy struct {
	WarnWindow time.Duration
}

// NewPolicy builds a policy; a non-positive window falls back to DefaultWarnWindow.
func NewPolicy(warnWindow time.Duration) Policy {
	if warnWindow <= 0 {
		warnWindow = DefaultWarnWindow
	}
	return Policy{WarnWindow: warnWindow}
}
