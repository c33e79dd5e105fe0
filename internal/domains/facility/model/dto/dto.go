package dto

import (
	"slices"

	"kampus/internal/domains/facility/model"
	"kampus/shared/timezone"

	"github.com/google/uuid"
)

type CreateFacilityRequest struct {
	Name        string       `json:"name"        validate:"required,notblank,max=100"`
	Capacity    int          `json:"capacity"    validate:"gte=1"`
	Location    string       `json:"location"    validate:"max=200"`
	Status      model.Status `json:"status"      validate:"omitempty,oneof=available maintenance unavailable"`
	Description string       `json:"description" validate:"max=2000"`
	Image       string       `json:"image"       validate:"max=2048"`
	Features    []string     `json:"features"    validate:"dive,notblank"`
}

// ToModel assigns a fresh id and creation time. Status defaults to available.
func (c *CreateFacilityRequest) ToModel() model.Facility {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	features := slices.Clone(c.Features)
	if features == nil {
		features = []string{}
	}

	return model.Facility{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Name:        c.Name,
		Capacity:    c.Capacity,
		Location:    c.Location,
		Status:      status,
		Description: c.Description,
		Image:       c.Image,
		Features:    features,
		CreatedAt:   timezone.Now(),
	}
}

// UpdateFacilityRequest is a partial update. Nil fields are left as they are; a non-nil
// Features replaces the whole list.
type UpdateFacilityRequest struct {
	Name        *string       `json:"name"        validate:"omitempty,notblank,max=100"`
	Capacity    *int          `json:"capacity"    validate:"omitempty,gte=1"`
	Location    *string       `json:"location"    validate:"omitempty,max=200"`
	Status      *model.Status `json:"status"      validate:"omitempty,oneof=available maintenance unavailable"`
	Description *string       `json:"description" validate:"omitempty,max=2000"`
	Image       *string       `json:"image"       validate:"omitempty,max=2048"`
	Features    []string      `json:"features"    validate:"omitempty,dive,notblank"`
}

func (u *UpdateFacilityRequest) Apply(facility model.Facility) model.Facility {
	facility = facility.Clone()

	if u.Name != nil {
		facility.Name = *u.Name
	}

	if u.Capacity != nil {
		facility.Capacity = *u.Capacity
	}

	if u.Location != nil {
		facility.Location = *u.Location
	}

	if u.Status != nil {
		facility.Status = *u.Status
	}

	if u.Description != nil {
		facility.Description = *u.Description
	}

	if u.Image != nil {
		facility.Image = *u.Image
	}

	if u.Features != nil {
		facility.Features = slices.Clone(u.Features)
	}

	return facility
}
