package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-inventory/pkg/utils"
	appwebsocket "lab-inventory/pkg/websocket"
)

type HealthController struct {
	hub *appwebsocket.Hub
}

func NewHealthController(hub *appwebsocket.Hub) *HealthController {
	return &HealthController{hub: hub}
}

func (c *HealthController) Health(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, map[string]interface{}{"live_reports": c.hub.Count()}, "ok", http.StatusOK)
}
