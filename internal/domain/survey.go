package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// Survey score bounds.
const (
	SurveyScoreMin = 1
	SurveyScoreMax = 5
)

// Survey records the requester's satisfaction with a finished ticket.
type Survey struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Survey) Validate() error {
	details := map[string]any{}
	if strings.TrimSpace(s.TicketID) == "" {
		details["ticketId"] = "required"
	}
	if s.Score < SurveyScoreMin || s.Score > SurveyScoreMax {
		details["score"] = "must be between 1 and 5"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid survey", details)
	}
	return nil
}

// SurveyPatch carries the fields of a partial survey update.
type SurveyPatch struct {
	Score   *int
	Comment *string
}

func (p SurveyPatch) Apply(s *Survey) {
	if p.Score != nil {
		s.Score = *p.Score
	}
	if p.Comment != nil {
		s.Comment = *p.Comment
	}
}
