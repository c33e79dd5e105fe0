package model

import "time"

const EntityName = "reservation"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

// IsDecision reports whether s is a status an administrator may move a reservation to.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) Valid() bool {
	return s == StatusPending || s.IsDecision()
}

// Reservation never changes after submission except for Status and AdminNote.
// FacilityName is captured when the request is made and is not refreshed when the
// facility is renamed or deleted.
type Reservation struct {
	ID           string    `json:"id"`
	FacilityID   string    `json:"facilityId"`
	FacilityName string    `json:"facilityName"`
	UserID       string    `json:"userId"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Purpose      string    `json:"purpose"`
	Status       Status    `json:"status"`
	AdminNote    string    `json:"adminNote,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
