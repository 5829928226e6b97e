package handlers

import (
	"net/http"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/rpc"
	"pkbmadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// RPCHandlers serves the single RPC endpoint and the public migration trigger.
type RPCHandlers struct {
	dispatcher *rpc.Dispatcher
	dashboard  services.DashboardService
}

func NewRPCHandlers(dispatcher *rpc.Dispatcher, dashboard services.DashboardService) *RPCHandlers {
	return &RPCHandlers{dispatcher: dispatcher, dashboard: dashboard}
}

// Call handles POST /api/rpc.
func (h *RPCHandlers) Call(c echo.Context) error {
	var req rpc.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.Envelope{Success: false, Error: "Invalid request format"})
	}

	ctx := c.Request().Context()
	sess, _ := common.GetSessionFromContext(ctx)
	status, body := h.dispatcher.Dispatch(ctx, sess, req)
	return c.JSON(status, body)
}

// Migrate handles GET /api/migrate.
func (h *RPCHandlers) Migrate(c echo.Context) error {
	result := h.dashboard.Migrate(c.Request().Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, result)
}
