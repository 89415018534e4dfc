package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/momogate/internal/application/payment/usecases"
	"github.com/orris-inc/momogate/internal/shared/logger"
	"github.com/orris-inc/momogate/internal/shared/utils"
)

// CallbackHandler receives provider webhooks.
type CallbackHandler struct {
	handleCallbackUC *usecases.HandleCallbackUseCase
	logger           logger.Interface
}

func NewCallbackHandler(handleCallbackUC *usecases.HandleCallbackUseCase, logger logger.Interface) *CallbackHandler {
	return &CallbackHandler{
		handleCallbackUC: handleCallbackUC,
		logger:           logger,
	}
}

// HandleCallback answers 400 for a body without a status and 200 otherwise,
// including for statuses it does not act on, so the provider stops retrying.
func (h *CallbackHandler) HandleCallback(c *gin.Context) {
	var payload usecases.CallbackPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warnw("invalid callback received", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid callback: "+err.Error())
		return
	}

	result, err := h.handleCallbackUC.Execute(c.Request.Context(), &payload)
	if err != nil {
		h.logger.Warnw("failed to handle callback", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "callback processed", result)
}

func HealthCheck(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "ok", nil)
}
