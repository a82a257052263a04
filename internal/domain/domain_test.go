package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

func validTicket() *Ticket {
	return &Ticket{
		Code:        "TCK-1",
		Title:       "Leaking tap",
		Description: "Bathroom tap on floor 2",
		Status:      TicketStatusOpen,
		Priority:    TicketPriorityP3,
		DueAt:       time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestTicketValidate(t *testing.T) {
	require.NoError(t, validTicket().Validate())

	ticket := validTicket()
	ticket.Title = "  "
	ticket.Priority = "P9"
	ticket.DueAt = time.Time{}
	err := ticket.Validate()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidation, domainErr.Code)
	assert.Contains(t, domainErr.Details, "title")
	assert.Contains(t, domainErr.Details, "priority")
	assert.Contains(t, domainErr.Details, "dueAt")
	assert.NotContains(t, domainErr.Details, "code")
}

func TestParseTicketStatus(t *testing.T) {
	assert.Equal(t, TicketStatusInProgress, ParseTicketStatus("In-Progress"))
	assert.Equal(t, TicketStatusResolved, ParseTicketStatus(" RESOLVED "))
	assert.False(t, ParseTicketStatus("pending").Valid())
	assert.True(t, TicketStatusClosed.Done())
	assert.False(t, TicketStatusInProgress.Done())
}

func TestTicketPatchOnlyTouchesProvidedFields(t *testing.T) {
	ticket := validTicket()
	before := *ticket
	resolved := TicketStatusResolved

	TicketPatch{Status: &resolved}.Apply(ticket)

	assert.Equal(t, TicketStatusResolved, ticket.Status)
	ticket.Status = before.Status
	assert.Equal(t, before, *ticket)
}

func TestTicketEventResponseClassification(t *testing.T) {
	human := TicketEvent{Type: EventTypeComment, CreatedBy: "user-1"}
	system := TicketEvent{Type: EventTypeStatusChange, CreatedBy: SystemActor}
	warning := TicketEvent{Type: EventTypeSLAResponseWarning, CreatedBy: SystemActor}

	assert.True(t, human.IsResponse())
	assert.False(t, system.IsResponse())
	assert.False(t, warning.IsResponse())
	assert.True(t, warning.Type.IsSLA())
	assert.True(t, HasResponse([]TicketEvent{warning, human}, ""))
	assert.False(t, HasResponse([]TicketEvent{warning, system}, ""))
	assert.False(t, HasResponse([]TicketEvent{human}, "user-1"), "requester's own comment")
	assert.True(t, HasResponse([]TicketEvent{human}, "tech-1"))
	assert.True(t, HasEventType([]TicketEvent{warning}, EventTypeSLAResponseWarning))
}

func TestSurveyValidateScoreBounds(t *testing.T) {
	survey := &Survey{TicketID: "t-1", Score: 6}
	assert.Error(t, survey.Validate())
	survey.Score = 5
	assert.NoError(t, survey.Validate())
}

func TestAttachmentValidate(t *testing.T) {
	attachment := &Attachment{URL: "/uploads/a.png", Type: ParseAttachmentType("image")}
	assert.NoError(t, attachment.Validate())
	attachment.Type = "PDF"
	assert.Error(t, attachment.Validate())
}

func TestUserValidate(t *testing.T) {
	user := &User{Email: "tech@example.com", Name: "Tech One", PasswordHash: "hash"}
	assert.NoError(t, user.Validate())
	user.Email = "not-an-email"
	assert.Error(t, user.Validate())
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abc123!x"))
	assert.Error(t, ValidatePassword("short1!"))
	assert.Error(t, ValidatePassword("nodigits!!"))
	assert.Error(t, ValidatePassword("nospecial123"))
	assert.Error(t, ValidatePassword("bad space1!"))
}
