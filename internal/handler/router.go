package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lab-scheduler/internal/domain/user"
	"lab-scheduler/internal/handler/api"
	"lab-scheduler/internal/handler/middleware"
	"lab-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	resourceHandler *api.ResourceHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, authHandler, bookingHandler, resourceHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	resourceHandler *api.ResourceHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.SubmitBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/decision", Handler: bookingHandler.DecideBooking,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleReviewer)}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
			})
		}

		resources := apiGroup.Group("/resources")
		resources.Use(authMiddleware.RequireAuth())
		{
			addRoutes(resources, []route{
				{Method: http.MethodGet, Path: "", Handler: resourceHandler.ListResources},
				{Method: http.MethodGet, Path: "/:id", Handler: resourceHandler.GetResource},
				{Method: http.MethodPost, Path: "", Handler: resourceHandler.CreateResource,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: resourceHandler.UpdateResourceStatus,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleReviewer)}},
				{Method: http.MethodDelete, Path: "/:id", Handler: resourceHandler.DeleteResource,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
