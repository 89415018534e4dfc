package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/momogate/internal/interfaces/http/handlers"
)

// CallbackRouteConfig holds dependencies for callback routes.
type CallbackRouteConfig struct {
	Path            string
	CallbackHandler *handlers.CallbackHandler
}

// SetupCallbackRoutes configures the provider webhook route.
func SetupCallbackRoutes(engine *gin.Engine, cfg *CallbackRouteConfig) {
	engine.POST(cfg.Path, cfg.CallbackHandler.HandleCallback)
}
