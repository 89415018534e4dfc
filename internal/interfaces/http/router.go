package http

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/momogate/internal/application/payment/usecases"
	"github.com/orris-inc/momogate/internal/interfaces/http/handlers"
	"github.com/orris-inc/momogate/internal/interfaces/http/middleware"
	"github.com/orris-inc/momogate/internal/interfaces/http/routes"
	"github.com/orris-inc/momogate/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine          *gin.Engine
	callbackHandler *handlers.CallbackHandler
	callbackPath    string
	logger          logger.Interface
}

// NewRouter creates the webhook receiver. callbackPath defaults to /callbacks.
func NewRouter(callbackUC *usecases.HandleCallbackUseCase, callbackPath string, log logger.Interface) *Router {
	if callbackPath == "" {
		callbackPath = "/callbacks"
	}
	return &Router{
		engine:          gin.New(),
		callbackHandler: handlers.NewCallbackHandler(callbackUC, log),
		callbackPath:    callbackPath,
		logger:          log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))

	r.engine.GET("/health", handlers.HealthCheck)

	routes.SetupCallbackRoutes(r.engine, &routes.CallbackRouteConfig{
		Path:            r.callbackPath,
		CallbackHandler: r.callbackHandler,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
