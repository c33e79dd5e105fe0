package model

import (
	"slices"
	"time"
)

const EntityName = "facility"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusUnavailable Status = "unavailable"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusUnavailable:
		return true
	}

	return false
}

type Facility struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Location    string    `json:"location"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no memory with f.
func (f Facility) Clone() Facility {
	f.Features = slices.Clone(f.Features)

	return f
}

func CloneAll(facilities []Facility) []Facility {
	out := make([]Facility, len(facilities))
	for i, facility := range facilities {
		out[i] = facility.Clone()
	}

	return out
}
