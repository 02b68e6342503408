package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lab-inventory/internal/services"
	"lab-inventory/pkg/middleware"
	"lab-inventory/pkg/poller"
	"lab-inventory/pkg/utils"
	appwebsocket "lab-inventory/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// FragmentRenderer renders a partial template to a string.
type FragmentRenderer interface {
	RenderString(name string, data interface{}) (string, error)
}

type PollSettings struct {
	Interval   time.Duration
	MaxBackoff time.Duration
}

// WebSocketController keeps an open report view in sync: every socket gets
// its own poller, stopped when the socket closes.
type WebSocketController struct {
	base             context.Context
	hub              *appwebsocket.Hub
	inventoryService services.InventoryServiceInterface
	renderer         FragmentRenderer
	poll             PollSettings
	logger           *zap.Logger
}

func NewWebSocketController(
	base context.Context,
	hub *appwebsocket.Hub,
	inventoryService services.InventoryServiceInterface,
	renderer FragmentRenderer,
	poll PollSettings,
	logger *zap.Logger,
) *WebSocketController {
	return &WebSocketController{
		base:             base,
		hub:              hub,
		inventoryService: inventoryService,
		renderer:         renderer,
		poll:             poll,
		logger:           logger,
	}
}

func (c *WebSocketController) ServeReport(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	search := ctx.QueryParam("q")

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}

	// The request context ends with the handler; the client lives until
	// the socket closes or the server stops.
	client := appwebsocket.NewClient(c.base, c.hub, conn, sessionID)
	p := poller.New(c.poll.Interval, c.poll.MaxBackoff, c.pushSnapshot(client, search), c.logger)
	client.SetRefresher(p)
	c.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
	go p.Run(client.Context())

	c.logger.Debug("report view connected", zap.String("session_id", sessionID), zap.String("search", search))
	return nil
}

func (c *WebSocketController) pushSnapshot(client *appwebsocket.Client, search string) poller.FetchFunc {
	return func(ctx context.Context) error {
		snap := c.inventoryService.Snapshot(ctx, search)
		if snap.LoadError != "" {
			msg, err := appwebsocket.Encode(appwebsocket.TypeReportError, appwebsocket.ReportErrorPayload{
				Source:  snap.Source.Label,
				Message: snap.LoadError,
			})
			if err == nil {
				client.Deliver(msg)
			}
			return fmt.Errorf("report refresh: %s", snap.LoadError)
		}

		html, err := c.renderer.RenderString("report_live", snap)
		if err != nil {
			return fmt.Errorf("report refresh: render: %w", err)
		}
		msg, err := appwebsocket.Encode(appwebsocket.TypeReportSnapshot, appwebsocket.ReportPayload{
			Source:   snap.Source.Label,
			ReadOnly: snap.ReadOnly(),
			Fallback: snap.Source.Fallback,
			HTML:     html,
		})
		if err != nil {
			return err
		}
		client.Deliver(msg)
		return nil
	}
}
