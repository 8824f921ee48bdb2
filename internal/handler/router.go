package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"templatehub/internal/domain/operator"
	"templatehub/internal/handler/api"
	"templatehub/internal/handler/middleware"
	"templatehub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, fulfillmentHandler *api.FulfillmentHandler, customerHandler *api.CustomerHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, fulfillmentHandler, customerHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, fulfillmentHandler *api.FulfillmentHandler, customerHandler *api.CustomerHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		fulfillments := apiGroup.Group("/fulfillments")
		{
			// Webhook path authenticated by shared secret, not operator JWT
			addRoutes(fulfillments, []route{
				{Method: http.MethodPost, Path: "", Handler: fulfillmentHandler.Fulfill,
					Mw: []gin.HandlerFunc{middleware.RequireSharedSecret(cfg.Fulfillment.SharedSecret)}},
			})

			operatorRequired := fulfillments.Group("")
			operatorRequired.Use(authMiddleware.RequireAuth())
			operatorRequired.Use(authMiddleware.RequireRoleAtLeast(operator.RoleOperator))
			addRoutes(operatorRequired, []route{
				{Method: http.MethodPost, Path: "/github-username", Handler: fulfillmentHandler.OverrideGithubUsername},
			})
		}

		customers := apiGroup.Group("/customers")
		customers.Use(authMiddleware.RequireAuth())
		customers.Use(authMiddleware.RequireRoleAtLeast(operator.RoleOperator))
		{
			addRoutes(customers, []route{
				{Method: http.MethodGet, Path: "/:saleId", Handler: customerHandler.GetBySaleID},
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
