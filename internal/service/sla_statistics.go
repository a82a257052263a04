package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/sla"
)

// Ticket groups used by the statistics report.
const (
	GroupWorkDone = "workdone"
	GroupOnRepair = "onrepair"
	GroupOpening  = "opening"
)

// ComplianceStats counts one SLA clock across a group of tickets.
type ComplianceStats struct {
	OnTime         int    `json:"onTime"`
	Warning        int    `json:"warning"`
	Breached       int    `json:"breached"`
	ComplianceRate string `json:"complianceRate"`
}

// GroupStats summarizes the tickets in one status group.
type GroupStats struct {
	Total             int                           `json:"total"`
	WithSLA           int                           `json:"withSla"`
	ResponseSLA       ComplianceStats               `json:"responseSla"`
	ResolveSLA        ComplianceStats               `json:"resolveSla"`
	PriorityBreakdown map[domain.TicketPriority]int `json:"priorityBreakdown"`
}

// SLAStatistics is the report served by the statistics endpoint.
type SLAStatistics struct {
	Timestamp time.Time             `json:"timestamp"`
	Queue     domain.MonitorStats   `json:"queue"`
	Groups    map[string]GroupStats `json:"groups"`
	Summary   StatisticsSummary     `json:"summary"`
}

// StatisticsSummary holds the cross-group totals.
type StatisticsSummary struct {
	TotalTickets  int    `json:"totalTickets"`
	BreachedTotal int    `json:"breachedTotal"`
	Overall       string `json:"overallCompliance"`
}

type clockState int

const (
	clockOnTime clockState = iota
	clockWarning
	clockBreached
)

// Statistics groups every ticket into opening / onrepair / workdone and counts
// on-time, warning and breached clocks per group. A clock counts as breached or
// warned when the monitor recorded it or when it is breaching or at risk right now.
func (m *SLAMonitor) Statistics(ctx context.Context) (SLAStatistics, error) {
	now := m.now()
	report := SLAStatistics{Timestamp: now.UTC(), Groups: map[string]GroupStats{}}

	queue, err := m.Status(ctx)
	if err != nil {
		return report, err
	}
	report.Queue = queue

	tickets, err := m.tickets.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list tickets: %w", err)
	}
	allEvents, err := m.events.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list ticket events: %w", err)
	}
	byTicket := make(map[string][]domain.TicketEvent, len(tickets))
	for _, e := range allEvents {
		byTicket[e.TicketID] = append(byTicket[e.TicketID], e)
	}

	grouped := map[string][]domain.Ticket{GroupWorkDone: nil, GroupOnRepair: nil, GroupOpening: nil}
	for _, t := range tickets {
		grouped[statusGroup(t.Status)] = append(grouped[statusGroup(t.Status)], t)
	}

	withoutBreach := 0
	for name, group := range grouped {
		stats := GroupStats{Total: len(group), PriorityBreakdown: map[domain.TicketPriority]int{}}
		for _, p := range domain.TicketPriorities {
			stats.PriorityBreakdown[p] = 0
		}
		for i := range group {
			t := &group[i]
			stats.PriorityBreakdown[t.Priority]++
			timeline := byTicket[t.ID]
			status, err := m.policy.Evaluate(sla.SubjectFor(t, timeline), now)
			if err != nil {
				continue
			}
			stats.WithSLA++
			response := clockOf(timeline, responseMilestone, status.Response)
			resolve := clockOf(timeline, resolveMilestone, status.Resolve)
			stats.ResponseSLA.add(response)
			stats.ResolveSLA.add(resolve)
			if response != clockBreached && resolve != clockBreached {
				withoutBreach++
			} else {
				report.Summary.BreachedTotal++
			}
		}
		stats.ResponseSLA.ComplianceRate = complianceRate(stats.ResponseSLA.OnTime+stats.ResponseSLA.Warning, stats.WithSLA)
		stats.ResolveSLA.ComplianceRate = complianceRate(stats.ResolveSLA.OnTime+stats.ResolveSLA.Warning, stats.WithSLA)
		report.Groups[name] = stats
	}

	report.Summary.TotalTickets = len(tickets)
	report.Summary.Overall = complianceRate(withoutBreach, withoutBreach+report.Summary.BreachedTotal)
	return report, nil
}

func statusGroup(status domain.TicketStatus) string {
	switch {
	case status.Done():
		return GroupWorkDone
	case status == domain.TicketStatusInProgress:
		return GroupOnRepair
	default:
		return GroupOpening
	}
}

func clockOf(timeline []domain.TicketEvent, ms slaMilestone, state sla.Milestone) clockState {
	switch {
	case domain.HasEventType(timeline, ms.breach) || state.Breaching:
		return clockBreached
	case domain.HasEventType(timeline, ms.warning) || state.AtRisk:
		return clockWarning
	default:
		return clockOnTime
	}
}

func (c *ComplianceStats) add(state clockState) {
	switch state {
	case clockBreached:
		c.Breached++
	case clockWarning:
		c.Warning++
	default:
		c.OnTime++
	}
}

func complianceRate(compliant, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(compliant)/float64(total)*100)
}
