package api

import (
	"net/http"

	"lab-scheduler/internal/domain/resource"
	reqdto "lab-scheduler/internal/handler/dto/request"
	resdto "lab-scheduler/internal/handler/dto/response"
	"lab-scheduler/internal/handler/middleware"
	"lab-scheduler/internal/pkg/errs"
	"lab-scheduler/internal/usecase/commands"
	"lab-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resourceCommands commands.ResourceCommands
	resourceQueries  queries.ResourceQueries
}

func NewResourceHandler(resourceCommands commands.ResourceCommands, resourceQueries queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{
		resourceCommands: resourceCommands,
		resourceQueries:  resourceQueries,
	}
}

// @Summary List resources
// @Description List resources filtered by keyword, organization or status
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Keyword matched against name, description and location"
// @Param organization_id query string false "Organization ID"
// @Param status query string false "Resource status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} resdto.ResourceListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	var q reqdto.ListResourcesQuery
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

	page, err := h.resourceQueries.List(c.Request.Context(), filter, q.Limit, q.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourcePage(page))
}

// @Summary Get resource
// @Description Get resource by ID
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	view, err := h.resourceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary Create resource
// @Description Register a new bookable resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.resourceCommands.Create(c.Request.Context(), actor, req.ToParams())
	if err != nil {
		h.writeResourceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromResourceView(view))
}

// @Summary Update resource status
// @Description Change a resource status using its optimistic version token
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceStatusRequest true "Status change"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resources/{id}/status [patch]
func (h *ResourceHandler) UpdateResourceStatus(c *gin.Context) {
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
			"error": "Invalid resource ID format",
		})
		return
	}

	var req reqdto.UpdateResourceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.resourceCommands.UpdateStatus(c.Request.Context(), actor, id, resource.Status(req.Status), req.ExpectedVersion)
	if err != nil {
		h.writeResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary Delete resource
// @Description Soft delete a resource that has no booking in progress
// @Tags resources
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
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
			"error": "Invalid resource ID format",
		})
		return
	}

	if err := h.resourceCommands.Delete(c.Request.Context(), actor, id); err != nil {
		h.writeResourceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler) writeResourceError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errs.Is(err, commands.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource was modified concurrently, refresh and retry",
		})
	case errs.Is(err, commands.ErrResourceBusy):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource has a booking in progress",
		})
	case errs.Is(err, commands.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Validation failed",
			"detail": err.Error(),
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
