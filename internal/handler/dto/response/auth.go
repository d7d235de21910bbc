package response

import (
	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

func FromAuthorizedUserView(v *queries.AuthorizedUserView) UserResponse {
	return UserResponse{
		ID:             v.ID,
		Email:          v.Email,
		Role:           v.Role,
		OrganizationID: v.OrganizationID,
	}
}
