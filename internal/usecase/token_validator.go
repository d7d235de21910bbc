package usecase

import (
	"lab-scheduler/internal/domain/user"
	"lab-scheduler/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator is the identity collaborator boundary: a caller token in,
// (userID, role, organization) out. The facade trusts this for every actor
// check.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, *uuid.UUID, error)
}

type tokenValidatorImpl struct {
	jwt *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwt: jwtService}
}

func (v *tokenValidatorImpl) ValidateToken(token string) (uuid.UUID, user.Role, *uuid.UUID, error) {
	claims, err := v.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", nil, err
	}

	role := user.Role(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, "", nil, jwt.ErrInvalidToken
	}

	return claims.UserID, role, claims.OrganizationID, nil
}
