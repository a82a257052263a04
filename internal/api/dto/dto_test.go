package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

func TestCreateTicketRequestParsesFields(t *testing.T) {
	loc := "  "
	req := CreateTicketRequest{
		Title:       " Leaking pipe ",
		Description: "Water under the sink",
		Status:      "In-Progress",
		Priority:    "p2",
		DueAt:       "2026-03-01T10:00:00Z",
		LocationID:  &loc,
	}

	ticket, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Leaking pipe", ticket.Title)
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)
	assert.Equal(t, domain.TicketPriorityP2, ticket.Priority)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), ticket.DueAt)
	assert.Nil(t, ticket.LocationID)
}

func TestCreateTicketRequestCollectsFieldErrors(t *testing.T) {
	_, err := CreateTicketRequest{Priority: "P9", DueAt: "tomorrow", Status: "paused"}.Validate()
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	for _, field := range []string{"title", "description", "priority", "dueAt", "status"} {
		assert.Contains(t, de.Details, field)
	}
}

func TestCreateTicketRequestAcceptsFormDates(t *testing.T) {
	for _, raw := range []string{"2026-03-01T10:00", "2026-03-01"} {
		ticket, err := CreateTicketRequest{Title: "t", Description: "d", Priority: "P1", DueAt: raw}.Validate()
		require.NoError(t, err, raw)
		assert.Equal(t, 2026, ticket.DueAt.Year())
	}
}

func TestUpdateTicketRequestOnlySetsGivenFields(t *testing.T) {
	status := "resolved"
	patch, err := UpdateTicketRequest{Status: &status}.Patch()
	require.NoError(t, err)

	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.TicketStatusResolved, *patch.Status)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Priority)
	assert.Nil(t, patch.DueAt)
}

func TestUpdateTicketRequestClearsReferences(t *testing.T) {
	var req UpdateTicketRequest
	require.NoError(t, json.Unmarshal([]byte(`{"technicianId": null, "locationId": "  ", "repairTypeId": " rt-1 "}`), &req))

	patch, err := req.Patch()
	require.NoError(t, err)
	assert.True(t, patch.ClearTechnician)
	assert.Nil(t, patch.TechnicianID)
	assert.True(t, patch.ClearLocation)
	assert.Nil(t, patch.LocationID)
	assert.False(t, patch.ClearRepairType)
	require.NotNil(t, patch.RepairTypeID)
	assert.Equal(t, "rt-1", *patch.RepairTypeID)
}

func TestUpdateTicketRequestAbsentReferencesUnchanged(t *testing.T) {
	var req UpdateTicketRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Door"}`), &req))

	patch, err := req.Patch()
	require.NoError(t, err)
	assert.False(t, patch.ClearTechnician)
	assert.False(t, patch.ClearLocation)
	assert.False(t, patch.ClearRepairType)
	assert.Nil(t, patch.TechnicianID)

	ticket := &domain.Ticket{TechnicianID: strPtr("u1"), LocationID: strPtr("l1")}
	patch.Apply(ticket)
	assert.Equal(t, "u1", *ticket.TechnicianID)
	assert.Equal(t, "l1", *ticket.LocationID)
}

func TestUpdateTicketRequestRejectsBadPriority(t *testing.T) {
	priority := "urgent"
	_, err := UpdateTicketRequest{Priority: &priority}.Patch()
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestSurveyRequestScoreBounds(t *testing.T) {
	zero, five := 0, 5
	_, err := SurveyRequest{TicketID: "x", Score: &zero}.Validate()
	assert.Error(t, err)

	survey, err := SurveyRequest{TicketID: "x", Score: &five}.Validate()
	require.NoError(t, err)
	assert.Equal(t, 5, survey.Score)

	_, err = SurveyRequest{Score: &zero}.Patch()
	assert.Error(t, err)
}

func TestAttachmentRequestNormalizesType(t *testing.T) {
	url, kind := "/uploads/a.png", "image"
	att, err := AttachmentRequest{URL: &url, Type: &kind}.Validate()
	require.NoError(t, err)
	assert.Equal(t, domain.AttachmentTypeImage, att.Type)

	bad := "audio"
	_, err = AttachmentRequest{Type: &bad}.Patch()
	assert.Error(t, err)
}

func TestLoginRequestRequiresFields(t *testing.T) {
	req := LoginRequest{Email: "  "}
	err := req.Validate()
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Contains(t, de.Details, "email")
	assert.Contains(t, de.Details, "password")
}

func strPtr(s string) *string { return &s }
