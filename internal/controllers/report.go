package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
	"lab-inventory/internal/services"
	"lab-inventory/internal/views"
	apperrors "lab-inventory/pkg/errors"
	"lab-inventory/pkg/export"
	"lab-inventory/pkg/middleware"
	"lab-inventory/pkg/utils"
)

type ReportController struct {
	inventoryService services.InventoryServiceInterface
	sheetTitle       string
	logger           *zap.Logger
}

func NewReportController(inventoryService services.InventoryServiceInterface, sheetTitle string, logger *zap.Logger) *ReportController {
	return &ReportController{inventoryService: inventoryService, sheetTitle: sheetTitle, logger: logger}
}

// reportLocation keeps the active search across the redirect.
func reportLocation(ctx echo.Context) string {
	q := ctx.FormValue("q")
	if q == "" {
		return "/reportes"
	}
	return "/reportes?q=" + url.QueryEscape(q)
}

func (c *ReportController) stateError(ctx echo.Context, err error) error {
	return utils.ErrorResponse(ctx,
		apperrors.NewHttpError(http.StatusInternalServerError, "No se pudo guardar el estado de la vista", err,
			map[string]interface{}{"path": ctx.Path(), "item_id": ctx.Param("id")}),
		c.logger,
	)
}

func (c *ReportController) GetReport(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page, err := c.inventoryService.Page(ctx.Request().Context(), sessionID, ctx.QueryParam("q"))
	if err != nil {
		return c.stateError(ctx, err)
	}
	return ctx.Render(http.StatusOK, "report", page)
}

// ExportReport downloads the currently filtered rows as a spreadsheet.
func (c *ReportController) ExportReport(ctx echo.Context) error {
	snap := c.inventoryService.Snapshot(ctx.Request().Context(), ctx.QueryParam("q"))
	if snap.LoadError != "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadGateway, "No se pudo generar el reporte (causa: "+snap.LoadError+")", nil, nil),
			c.logger,
		)
	}

	fileName := fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, export.ContentTypeXLSX)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	if err := export.WriteInventory(ctx.Response().Writer, c.sheetTitle, snap.Source.Label, snap.Rows); err != nil {
		c.logger.Error("xlsx export failed", zap.Error(err))
		return err
	}
	return nil
}

func (c *ReportController) OpenAdd(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.OpenAdd(ctx.Request().Context(), sessionID); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, reportLocation(ctx))
}

func (c *ReportController) CloseModal(ctx echo.Context) error {
	kind, ok := views.ParseModal(ctx.Param("kind"), views.ModalAdd, views.ModalEdit)
	if !ok {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Ventana desconocida", apperrors.ErrBadRequest,
				map[string]interface{}{"kind": ctx.Param("kind")}),
			c.logger,
		)
	}

	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.CloseModal(ctx.Request().Context(), sessionID, kind); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, reportLocation(ctx))
}

func (c *ReportController) AddItem(ctx echo.Context) error {
	var form dto.GlobalItemForm
	if err := ctx.Bind(&form); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formulario inválido", err, nil),
			c.logger,
		)
	}

	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.AddItem(ctx.Request().Context(), sessionID, form); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, reportLocation(ctx))
}

func (c *ReportController) OpenEdit(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.OpenEdit(ctx.Request().Context(), sessionID, entities.ItemID(ctx.Param("id"))); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, reportLocation(ctx))
}

func (c *ReportController) UpdateItem(ctx echo.Context) error {
	var form dto.GlobalItemForm
	if err := ctx.Bind(&form); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formulario inválido", err, nil),
			c.logger,
		)
	}

	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.UpdateItem(ctx.Request().Context(), sessionID, entities.ItemID(ctx.Param("id")), form); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, reportLocation(ctx))
}

func (c *ReportController) RequestDelete(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.RequestDelete(ctx.Request().Context(), sessionID, entities.ItemID(ctx.Param("id"))); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, reportLocation(ctx))
}

func (c *ReportController) ConfirmDelete(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.ConfirmDelete(ctx.Request().Context(), sessionID, entities.ItemID(ctx.Param("id"))); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, reportLocation(ctx))
}

func (c *ReportController) CancelDelete(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventoryService.CancelDelete(ctx.Request().Context(), sessionID); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, reportLocation(ctx))
}
