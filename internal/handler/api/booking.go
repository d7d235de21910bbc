package api

import (
	"errors"
	"net/http"

	reqdto "lab-scheduler/internal/handler/dto/request"
	resdto "lab-scheduler/internal/handler/dto/response"
	"lab-scheduler/internal/handler/middleware"
	"lab-scheduler/internal/pkg/errs"
	"lab-scheduler/internal/usecase/commands"
	"lab-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	schedulerCommands commands.SchedulerCommands
	bookingQueries    queries.BookingQueries
}

func NewBookingHandler(schedulerCommands commands.SchedulerCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		schedulerCommands: schedulerCommands,
		bookingQueries:    bookingQueries,
	}
}

// @Summary Submit booking
// @Description Request a time slot on a resource; the booking starts pending
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.schedulerCommands.Submit(c.Request.Context(), actor, req.ToParams())
	if err != nil {
		h.writeSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings filtered by requester, resource, status or organization
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param requester_id query string false "Requester ID"
// @Param resource_id query string false "Resource ID"
// @Param status query string false "Booking status"
// @Param organization_id query string false "Organization ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	filter, err := q.ToFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	// Members only see their own bookings; reviewers and admins see everything.
	if !actor.Role.CanReview() {
		filter.RequesterID = &actor.ID
	}

	page, err := h.bookingQueries.List(c.Request.Context(), filter, q.Limit, q.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Decide on a booking
// @Description Approve or reject a pending booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.DecideBookingRequest true "Decision"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} resdto.ConflictResponse
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/decision [post]
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.DecideBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.schedulerCommands.Decide(c.Request.Context(), actor, id, *req.Approve, req.GetReason())
	if err != nil {
		h.writeSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a pending booking, or an approved one that has not started
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.schedulerCommands.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.writeSchedulerError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) writeSchedulerError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrSchedulingConflict):
		var conflict *commands.ConflictError
		resp := resdto.ConflictResponse{Error: "Time slot overlaps approved bookings"}
		if errors.As(err, &conflict) {
			resp.ConflictingBookings = conflict.BookingIDs
		}
		c.JSON(http.StatusConflict, resp)
	case errs.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errs.Is(err, commands.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errs.Is(err, commands.ErrResourceUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource is not accepting bookings",
		})
	case errs.Is(err, commands.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"detail": err.Error(),
		})
	case errs.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Booking status does not allow this operation",
		})
	case errs.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not permitted",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
