//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"lab-scheduler/internal/domain/user"
	"lab-scheduler/internal/handler/api"
	resdto "lab-scheduler/internal/handler/dto/response"
	"lab-scheduler/internal/usecase/commands"
	"lab-scheduler/internal/usecase/queries"
	"lab-scheduler/tests/common/builder"
	"lab-scheduler/tests/common/httptest"
	"lab-scheduler/tests/common/testutil"
	commandsmock "lab-scheduler/tests/mock/commands"
	queriesmock "lab-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSchedulerCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actorID      uuid.UUID
	actorRole    user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSchedulerCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.actorID = uuid.New()
	s.actorRole = user.RoleMember

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", s.actorRole)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.SubmitBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.POST("/bookings/:id/decision", authMiddleware, s.handler.DecideBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestSubmitBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestSubmitBooking() {
	url := "/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusCreated, rec.Code)

		var got resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &got)
		s.Equal(returnView.ID, got.ID)
		s.Equal("pending", got.Status)
	})

	s.Run("returns 401 without authorization header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("returns 400 for missing required fields", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing resource_id", mutate: testutil.Field("resource_id", nil)},
			{name: "missing start_time", mutate: testutil.Field("start_time", nil)},
			{name: "missing end_time", mutate: testutil.Field("end_time", nil)},
			{name: "missing purpose", mutate: testutil.Field("purpose", nil)},
		}
		for _, c := range cases {
			s.Run(c.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, c.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("returns 404 when resource does not exist", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("returns 409 when resource is under maintenance", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrResourceUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("returns 422 for domain validation failure", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	returnView := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns 200 with the booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+returnView.ID.String(), nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var got resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &got)
		s.Equal(returnView.ID, got.ID)
		s.Equal(returnView.ResourceName, got.ResourceName)
	})

	s.Run("returns 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 404 when booking does not exist", func() {
		missing := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), missing).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+missing.String(), nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestListBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("member listing is scoped to own bookings", func() {
		s.actorRole = user.RoleMember
		item := builder.NewBookingBuilder().BuildListItem()

		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.BookingFilter, limit, offset int32) (*queries.Page[*queries.BookingListItem], error) {
				s.Require().NotNil(filter.RequesterID)
				s.Equal(s.actorID, *filter.RequesterID)
				return &queries.Page[*queries.BookingListItem]{
					Items:  []*queries.BookingListItem{item},
					Total:  1,
					Limit:  queries.DefaultListLimit,
					Offset: 0,
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var got resdto.BookingListResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &got)
		s.Len(got.Items, 1)
		s.Equal(int64(1), got.Total)
	})

	s.Run("reviewer listing passes filters through", func() {
		s.actorRole = user.RoleReviewer
		resourceID := uuid.New()

		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.BookingFilter, limit, offset int32) (*queries.Page[*queries.BookingListItem], error) {
				s.Nil(filter.RequesterID)
				s.Require().NotNil(filter.ResourceID)
				s.Equal(resourceID, *filter.ResourceID)
				s.Require().NotNil(filter.Status)
				s.Equal("approved", *filter.Status)
				return &queries.Page[*queries.BookingListItem]{Limit: queries.DefaultListLimit}, nil
			}).Times(1)

		url := "/bookings?resource_id=" + resourceID.String() + "&status=APPROVED"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})
}

// ================================================================================
// TestDecideBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestDecideBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/decision"
	approve := map[string]any{"approve": true}

	s.Run("success: approval returns 200", func() {
		s.actorRole = user.RoleReviewer
		returnView := builder.NewBookingBuilder().BuildView()
		returnView.Status = "approved"

		s.mockCommands.EXPECT().Decide(gomock.Any(), gomock.Any(), bookingID, true, "").
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, approve, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var got resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &got)
		s.Equal("approved", got.Status)
	})

	s.Run("success: rejection passes trimmed reason", func() {
		s.actorRole = user.RoleReviewer
		returnView := builder.NewBookingBuilder().BuildView()
		returnView.Status = "rejected"

		s.mockCommands.EXPECT().Decide(gomock.Any(), gomock.Any(), bookingID, false, "slot conflicts with calibration").
			Return(returnView, nil).Times(1)

		body := map[string]any{"approve": false, "reason": "  slot conflicts with calibration  "}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("returns 400 when approve flag is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "x"}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 409 with colliding ids on scheduling conflict", func() {
		collidingID := uuid.New()
		s.mockCommands.EXPECT().Decide(gomock.Any(), gomock.Any(), bookingID, true, "").
			Return(nil, commands.NewConflictError([]uuid.UUID{collidingID})).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, approve, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)

		var got resdto.ConflictResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &got)
		s.Equal([]uuid.UUID{collidingID}, got.ConflictingBookings)
	})

	s.Run("returns 422 for non-pending booking", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), gomock.Any(), bookingID, true, "").
			Return(nil, commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, approve, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("returns 403 when actor cannot review", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), gomock.Any(), bookingID, true, "").
			Return(nil, commands.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, approve, "bearer-token")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: returns 200 with canceled booking", func() {
		returnView := builder.NewBookingBuilder().BuildView()
		returnView.Status = "canceled"

		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var got resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &got)
		s.Equal("canceled", got.Status)
	})

	s.Run("returns 422 when booking already started", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), bookingID).
			Return(nil, commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("returns 500 for unexpected errors", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), bookingID).
			Return(nil, errors.New("connection reset")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}
