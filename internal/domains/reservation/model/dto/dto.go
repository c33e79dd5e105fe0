package dto

import (
	"time"

	"kampus/internal/domains/reservation/model"
	"kampus/shared/failure"
	"kampus/shared/timezone"

	"github.com/google/uuid"
)

// SubmitReservationRequest carries everything the requester chooses. Status, id and
// creation time are always assigned by the store.
type SubmitReservationRequest struct {
	FacilityID   string    `json:"facilityId"   validate:"required,notblank"`
	FacilityName string    `json:"facilityName" validate:"max=100"`
	UserID       string    `json:"userId"       validate:"required,notblank"`
	Date         time.Time `json:"date"         validate:"required"`
	StartTime    string    `json:"startTime"    validate:"required,clock"`
	EndTime      string    `json:"endTime"      validate:"required,clock"`
	Purpose      string    `json:"purpose"      validate:"required,notblank,max=500"`
}

// CheckTimeRange rejects ranges that end at or before their start. Both values must
// already be valid HH:MM clocks.
func (s *SubmitReservationRequest) CheckTimeRange() error {
	start, err := timezone.ParseClock(s.StartTime)
	if err != nil {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	end, err := timezone.ParseClock(s.EndTime)
	if err != nil {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	if !end.After(start) {
		return failure.BadRequestFromString("endTime must be after startTime") //nolint:wrapcheck
	}

	return nil
}

// ToModel keeps the requested date exactly as given; only id, status and creation time
// are assigned here.
func (s *SubmitReservationRequest) ToModel() model.Reservation {
	return model.Reservation{
		ID:           uuid.Must(uuid.NewV7()).String(),
		FacilityID:   s.FacilityID,
		FacilityName: s.FacilityName,
		UserID:       s.UserID,
		Date:         s.Date,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Purpose:      s.Purpose,
		Status:       model.StatusPending,
		CreatedAt:    timezone.Now(),
	}
}

type TransitionStatusRequest struct {
	Status    model.Status `json:"status"    validate:"required,oneof=approved rejected"`
	AdminNote string       `json:"adminNote" validate:"max=500"`
}
