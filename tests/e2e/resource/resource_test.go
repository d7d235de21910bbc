//go:build e2e

package resource_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"lab-scheduler/internal/domain/user"
	"lab-scheduler/internal/handler/dto/request"
	"lab-scheduler/internal/handler/dto/response"
	"lab-scheduler/tests/common/authtest"
	"lab-scheduler/tests/common/builder"
	"lab-scheduler/tests/common/dbtest"
	"lab-scheduler/tests/common/httptest"
	"lab-scheduler/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	resourcesURL      = "/api/resources"
	resourceURL       = "/api/resources/%s"
	resourceStatusURL = "/api/resources/%s/status"
)

type ResourceSuite struct {
	e2e.SharedSuite
}

func (s *ResourceSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestResourceSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ResourceSuite))
}

// =============================================================================
// TestCreateResource - Catalog registration API tests
// =============================================================================

func (s *ResourceSuite) TestCreateResource() {
	s.Run("Normal case: Admin registers a new resource", func() {
		t := s.T()

		adminID := dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))
		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", dbtest.DefaultPassword)

		reqBody := builder.NewResourceBuilder().
			WithName("PCR Thermocycler").
			WithManagerID(adminID).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, resourcesURL, reqBody, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ResourceResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "PCR Thermocycler", created.Name)
		require.Equal(t, "available", created.Status)
		require.Equal(t, int64(1), created.Version)
	})

	s.Run("Error case: Member cannot register a resource", func() {
		t := s.T()

		memberToken := authtest.CreateAndLogin(t, s.DB, s.Router, "member@example.com", string(user.RoleMember))

		reqBody := builder.NewResourceBuilder().WithManagerID(uuid.Nil).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, resourcesURL, reqBody, memberToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: Blank name is rejected", func() {
		t := s.T()

		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

		reqBody := builder.NewResourceBuilder().WithName("   ").WithManagerID(uuid.Nil).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, resourcesURL, reqBody, adminToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestUpdateResourceStatus - Optimistic concurrency tests
// =============================================================================

func (s *ResourceSuite) TestUpdateResourceStatus() {
	s.Run("Normal case: Status change bumps the version", func() {
		t := s.T()

		reviewerID := dbtest.CreateTestUser(t, s.DB, "reviewer@example.com", string(user.RoleReviewer))
		resourceID := dbtest.CreateTestResource(t, s.DB, "Ultracentrifuge", reviewerID)
		reviewerToken := authtest.LoginUser(t, s.Router, "reviewer@example.com", dbtest.DefaultPassword)

		reqBody := request.UpdateResourceStatusRequest{Status: "maintenance", ExpectedVersion: 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(resourceStatusURL, resourceID), reqBody, reviewerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.ResourceResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "maintenance", updated.Status)
		require.Equal(t, int64(2), updated.Version)
	})

	s.Run("Normal case: A stale version token recovers through one retry", func() {
		t := s.T()

		reviewerID := dbtest.CreateTestUser(t, s.DB, "reviewer@example.com", string(user.RoleReviewer))
		resourceID := dbtest.CreateTestResource(t, s.DB, "Ultracentrifuge", reviewerID)
		reviewerToken := authtest.LoginUser(t, s.Router, "reviewer@example.com", dbtest.DefaultPassword)

		first := request.UpdateResourceStatusRequest{Status: "maintenance", ExpectedVersion: 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(resourceStatusURL, resourceID), first, reviewerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Version is now 2, but the client still holds 1. The server re-reads
		// the current version once and applies the change anyway.
		stale := request.UpdateResourceStatusRequest{Status: "available", ExpectedVersion: 1}
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(resourceStatusURL, resourceID), stale, reviewerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.ResourceResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "available", updated.Status)
		require.Equal(t, int64(3), updated.Version)
	})

	s.Run("Error case: Resource with a booking in progress cannot enter maintenance", func() {
		t := s.T()

		reviewerID := dbtest.CreateTestUser(t, s.DB, "reviewer@example.com", string(user.RoleReviewer))
		memberID := dbtest.CreateTestUser(t, s.DB, "member@example.com", string(user.RoleMember))
		resourceID := dbtest.CreateTestResource(t, s.DB, "Ultracentrifuge", reviewerID)
		reviewerToken := authtest.LoginUser(t, s.Router, "reviewer@example.com", dbtest.DefaultPassword)

		dbtest.CreateTestBooking(t, s.DB, resourceID, memberID,
			time.Now().Add(-time.Hour), time.Now().Add(time.Hour), "approved")

		reqBody := request.UpdateResourceStatusRequest{Status: "maintenance", ExpectedVersion: 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(resourceStatusURL, resourceID), reqBody, reviewerToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: Member cannot change resource status", func() {
		t := s.T()

		reviewerID := dbtest.CreateTestUser(t, s.DB, "reviewer@example.com", string(user.RoleReviewer))
		resourceID := dbtest.CreateTestResource(t, s.DB, "Ultracentrifuge", reviewerID)
		memberToken := authtest.CreateAndLogin(t, s.DB, s.Router, "member@example.com", string(user.RoleMember))

		reqBody := request.UpdateResourceStatusRequest{Status: "maintenance", ExpectedVersion: 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(resourceStatusURL, resourceID), reqBody, memberToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestDeleteResource - Soft delete API tests
// =============================================================================

func (s *ResourceSuite) TestDeleteResource() {
	s.Run("Normal case: Admin soft deletes a resource", func() {
		t := s.T()

		adminID := dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))
		resourceID := dbtest.CreateTestResource(t, s.DB, "Retired Sequencer", adminID)
		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(resourceURL, resourceID), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(resourceURL, resourceID), nil, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

		// The row survives for audit purposes.
		var deleted bool
		err := s.DB.QueryRow(context.Background(), "SELECT deleted_at IS NOT NULL FROM resources WHERE id = $1", resourceID).Scan(&deleted)
		require.NoError(t, err)
		require.True(t, deleted)
	})

	s.Run("Error case: Reviewer cannot delete a resource", func() {
		t := s.T()

		adminID := dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))
		resourceID := dbtest.CreateTestResource(t, s.DB, "Retired Sequencer", adminID)
		reviewerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "reviewer@example.com", string(user.RoleReviewer))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(resourceURL, resourceID), nil, reviewerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestListResources - Catalog listing tests
// =============================================================================

func (s *ResourceSuite) TestListResources() {
	s.Run("Normal case: Deleted resources are excluded from the list", func() {
		t := s.T()

		adminID := dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))
		keptID := dbtest.CreateTestResource(t, s.DB, "Kept Microscope", adminID)
		droppedID := dbtest.CreateTestResource(t, s.DB, "Dropped Microscope", adminID)
		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(resourceURL, droppedID), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, resourcesURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list response.ResourceListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &list))
		require.Equal(t, int64(1), list.Total)
		require.Len(t, list.Items, 1)
		require.Equal(t, keptID, list.Items[0].ID)
	})

	s.Run("Normal case: Keyword search matches resource names", func() {
		t := s.T()

		adminID := dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))
		matchID := dbtest.CreateTestResource(t, s.DB, "Confocal Microscope", adminID)
		dbtest.CreateTestResource(t, s.DB, "PCR Thermocycler", adminID)
		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, resourcesURL+"?keyword=microscope", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list response.ResourceListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &list))
		require.Equal(t, int64(1), list.Total)
		require.Equal(t, matchID, list.Items[0].ID)
	})
}
