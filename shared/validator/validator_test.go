package validator_test

import (
	"kampus/shared/failure"
	"kampus/shared/validator"
	"strings"
	"testing"
)

type slotRequest struct {
	Name      string   `json:"name"      validate:"required,notblank,max=20"`
	Capacity  int      `json:"capacity"  validate:"gte=1"`
	Kind      string   `json:"kind"      validate:"omitempty,oneof=available maintenance unavailable"`
	StartTime string   `json:"startTime" validate:"required,clock"`
	Tags      []string `json:"tags"      validate:"dive,required"`
}

func validSlot() slotRequest {
	return slotRequest{
		Name:      "Lab",
		Capacity:  10,
		Kind:      "available",
		StartTime: "09:00",
		Tags:      []string{"AC"},
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *slotRequest)
		expectError string
	}{
		{
			name:   "valid struct",
			mutate: func(_ *slotRequest) {},
		},
		{
			name:        "missing required field",
			mutate:      func(r *slotRequest) { r.Name = "" },
			expectError: "name is required",
		},
		{
			name:        "blank name",
			mutate:      func(r *slotRequest) { r.Name = "   " },
			expectError: "name must not be blank",
		},
		{
			name:        "capacity below minimum",
			mutate:      func(r *slotRequest) { r.Capacity = 0 },
			expectError: "capacity must be greater than or equal to 1",
		},
		{
			name:        "kind outside enum",
			mutate:      func(r *slotRequest) { r.Kind = "closed" },
			expectError: "kind must be one of available maintenance unavailable",
		},
		{
			name:        "clock without leading zero",
			mutate:      func(r *slotRequest) { r.StartTime = "9:00" },
			expectError: "startTime must be a time of day formatted as HH:MM",
		},
		{
			name:        "clock out of range",
			mutate:      func(r *slotRequest) { r.StartTime = "24:10" },
			expectError: "startTime must be a time of day formatted as HH:MM",
		},
		{
			name:        "empty tag",
			mutate:      func(r *slotRequest) { r.Tags = []string{"AC", ""} },
			expectError: "tags[1] is required",
		},
		{
			name:        "name too long",
			mutate:      func(r *slotRequest) { r.Name = strings.Repeat("a", 21) },
			expectError: "name must be at most 20 characters",
		},
		{
			name: "every failing field is reported",
			mutate: func(r *slotRequest) {
				r.Name = ""
				r.Capacity = 0
			},
			expectError: "name is required; capacity must be greater than or equal to 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSlot()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectError == "" {
				if err != nil {
					t.Errorf("expected no validation error, got: %v", err)
				}

				return
			}

			if err == nil {
				t.Fatalf("expected validation error %q, got nil", tt.expectError)
			}

			if !failure.IsBadRequest(err) {
				t.Errorf("expected bad request failure, got %T", err)
			}

			if err.Error() != tt.expectError {
				t.Errorf("expected %q, got %q", tt.expectError, err.Error())
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid email", field: "user@kampus.ac.id", tag: "email"},
		{name: "invalid email", field: "user-at-kampus", tag: "email", expectError: true},
		{name: "valid clock", field: "23:59", tag: "clock"},
		{name: "invalid clock", field: "noon", tag: "clock", expectError: true},
		{name: "valid oneof", field: "approved", tag: "oneof=approved rejected"},
		{name: "invalid oneof", field: "pending", tag: "oneof=approved rejected", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"name":"Lab","capacity":5,"startTime":"08:00","tags":[]}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"name":"Lab","capacity":0,"startTime":"08:00"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data slotRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
