package dto

import (
	"strings"

	"kampus/internal/domains/identity/model"
	"kampus/shared/timezone"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *RegisterRequest) ToModel(passwordHash string) model.Account {
	return model.Account{
		User: model.User{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Name:      strings.TrimSpace(r.Name),
			Email:     NormalizeEmail(r.Email),
			Role:      model.RoleUser,
			CreatedAt: timezone.Now(),
		},
		PasswordHash: passwordHash,
	}
}
