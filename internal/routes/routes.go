package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lab-inventory/internal/controllers"
	"lab-inventory/internal/entities"
	"lab-inventory/internal/integrations"
	"lab-inventory/internal/listeners"
	"lab-inventory/internal/repositories"
	"lab-inventory/internal/services"
	"lab-inventory/internal/views"
	"lab-inventory/pkg/config"
	"lab-inventory/pkg/eventbus"
	"lab-inventory/pkg/middleware"
	"lab-inventory/pkg/render"
	appwebsocket "lab-inventory/pkg/websocket"
)

type Loggers struct {
	Main       *zap.Logger
	Laboratory *zap.Logger
	Report     *zap.Logger
}

// InitRouter wires every screen of the application onto e. ctx bounds the
// lifetime of the websocket hub and its pollers. e.Validator must be set.
func InitRouter(
	ctx context.Context,
	e *echo.Echo,
	api integrations.InventoryAPI,
	cache repositories.CacheRepositoryInterface,
	loggers *Loggers,
	cfg *config.Config,
) error {
	loggers.Main.Info("InitRouter: building routes")
	if e.Validator == nil {
		return errors.New("routes: echo validator is not configured")
	}

	engine, err := render.New()
	if err != nil {
		return err
	}
	e.Renderer = engine

	// --- shared components ---
	bus := eventbus.New(loggers.Main)
	hub := appwebsocket.NewHub(loggers.Report)
	go hub.Run(ctx)
	listeners.NewReportRefreshListener(hub, loggers.Report).Register(bus)

	// --- services ---
	states := services.NewViewStateService(cache, cfg.Session.TTL, loggers.Main)
	labService := services.NewLaboratoryService(api, states, e.Validator, bus, views.DetailDefaults{
		AddAcquisitionDate:    cfg.Detail.AddDefaultAcquisitionDate,
		UpdateAcquisitionDate: cfg.Detail.UpdateDefaultAcquisitionDate,
		UpdateArea:            cfg.Detail.UpdateDefaultArea,
		HistoryDate:           cfg.Detail.HistoryDatePlaceholder,
	}, loggers.Laboratory)
	inventoryService := services.NewInventoryService(api, states, e.Validator, bus, entities.SourceResolver{
		PrimaryMarker:  cfg.Report.PrimaryMarker,
		FallbackMarker: cfg.Report.FallbackMarker,
	}, cfg.Report.AutoCloseDelay, loggers.Report)

	// --- controllers ---
	labController := controllers.NewLaboratoryController(labService, loggers.Laboratory)
	reportController := controllers.NewReportController(inventoryService, cfg.Report.ExportSheetTitle, loggers.Report)
	wsController := controllers.NewWebSocketController(ctx, hub, inventoryService, engine, controllers.PollSettings{
		Interval:   cfg.Report.PollInterval,
		MaxBackoff: cfg.Report.PollMaxBackoff,
	}, loggers.Report)
	healthController := controllers.NewHealthController(hub)

	// --- routers ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", healthController.Health)

	pages := e.Group("", middleware.Session(cfg.Session.CookieName, cfg.Session.TTL))
	pages.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, "/laboratorios") })
	runLaboratoryRouter(pages, labController)
	runReportRouter(pages, reportController, wsController)

	loggers.Main.Info("InitRouter: routes ready")
	return nil
}
