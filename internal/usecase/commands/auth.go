package commands

import (
	"context"

	"lab-scheduler/internal/infra"
	"lab-scheduler/internal/infra/readstore"
	"lab-scheduler/internal/pkg/errs"
	"lab-scheduler/internal/pkg/jwt"
	"lab-scheduler/internal/pkg/password"

	"lab-scheduler/internal/domain/user"
	"lab-scheduler/internal/usecase/queries"
)

type LoginResult struct {
	Token string
	User  queries.AuthorizedUserView
}

type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*readstore.Credentials, error)
}

type AuthCommands interface {
	Login(ctx context.Context, email, pass string) (*LoginResult, error)
}

type authCommandsImpl struct {
	users UserReader
	jwt   *jwt.Service
}

func NewAuthCommands(users UserReader, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		users: users,
		jwt:   jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	creds, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same answer as a wrong password; never reveal which.
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(creds.PasswordHash, pass); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwt.GenerateToken(creds.User.ID, user.Role(creds.User.Role), creds.User.OrganizationID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{
		Token: token,
		User:  creds.User,
	}, nil
}
