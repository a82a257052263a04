package sla

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// Subject is the minimal ticket state the predicate needs.
type Subject struct {
	Priority  domain.TicketPriority
	Status    domain.TicketStatus
	CreatedAt time.Time
	Responded bool
}

// SubjectFor builds a Subject from a ticket and its event timeline.
func SubjectFor(ticket *domain.Ticket, events []domain.TicketEvent) Subject {
	var requester string
	if ticket.RequesterID != nil {
		requester = *ticket.RequesterID
	}
	return Subject{
		Priority:  ticket.Priority,
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt,
		Responded: domain.HasResponse(events, requester),
	}
}

// Milestone reports one SLA clock.
type Milestone struct {
	DueAt     time.Time `json:"dueAt"`
	Met       bool      `json:"met"`
	AtRisk    bool      `json:"atRisk"`
	Breaching bool      `json:"breaching"`
}

// Status is the evaluated SLA state of a ticket at a point in time.
type Status struct {
	Priority    domain.TicketPriority `json:"priority"`
	Thresholds  Thresholds            `json:"thresholds"`
	Elapsed     time.Duration         `json:"-"`
	ElapsedMs   int64                 `json:"elapsedMs"`
	Response    Milestone             `json:"response"`
	Resolve     Milestone             `json:"resolve"`
	EvaluatedAt time.Time             `json:"evaluatedAt"`
}

// Breaching reports whether either milestone is breaching.
func (s Status) Breaching() bool {
	return s.Response.Breaching || s.Resolve.Breaching
}

// AtRisk reports whether either milestone is about to breach.
func (s Status) AtRisk() bool {
	return s.Response.AtRisk || s.Resolve.AtRisk
}

// Evaluate applies the threshold table to subject at now.
func (p Policy) Evaluate(subject Subject, now time.Time) (Status, error) {
	th, err := ThresholdsFor(subject.Priority)
	if err != nil {
		return Status{}, err
	}
	elapsed := now.Sub(subject.CreatedAt)
	return Status{
		Priority:    subject.Priority,
		Thresholds:  th,
		Elapsed:     elapsed,
		ElapsedMs:   elapsed.Milliseconds(),
		Response:    p.milestone(subject.CreatedAt, th.Response, elapsed, subject.Responded),
		Resolve:     p.milestone(subject.CreatedAt, th.Resolve, elapsed, subject.Status.Done()),
		EvaluatedAt: now,
	}, nil
}

func (p Policy) milestone(createdAt time.Time, threshold, elapsed time.Duration, met bool) Milestone {
	m := Milestone{DueAt: createdAt.Add(threshold), Met: met}
	if met {
		return m
	}
	m.Breaching = elapsed > threshold
	m.AtRisk = !m.Breaching && threshold-elapsed <= p.WarnWindow
	return m
}

// ResponseBreaching is the bare response predicate.
func ResponseBreaching(priority domain.TicketPriority, createdAt, now time.Time, responded bool) bool {
	th, err := ThresholdsFor(priority)
	if err != nil || responded {
		return false
	}
	return now.Sub(createdAt) > th.Response
}

// ResolveBreaching is the bare resolution predicate.
func ResolveBreaching(priority domain.TicketPriority, status domain.TicketStatus, createdAt, now time.Time) bool {
	th, err := ThresholdsFor(priority)
	if err != nil || status.Done() {
		return false
	}
	return now.Sub(createdAt) > th.Resolve
}
