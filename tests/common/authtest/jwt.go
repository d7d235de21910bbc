//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"lab-scheduler/internal/domain/user"
	"lab-scheduler/internal/pkg/config"
	"lab-scheduler/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role, organizationID *uuid.UUID) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration)
	token, err := service.GenerateToken(userID, role, organizationID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(userID, role, nil)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
