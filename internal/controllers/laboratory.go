package controllers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
	"lab-inventory/internal/services"
	"lab-inventory/internal/views"
	apperrors "lab-inventory/pkg/errors"
	"lab-inventory/pkg/middleware"
	"lab-inventory/pkg/utils"
)

type LaboratoryController struct {
	labService services.LaboratoryServiceInterface
	logger     *zap.Logger
}

func NewLaboratoryController(labService services.LaboratoryServiceInterface, logger *zap.Logger) *LaboratoryController {
	return &LaboratoryController{labService: labService, logger: logger}
}

func labLocation(labID string) string {
	return "/laboratorios/" + url.PathEscape(labID)
}

func (c *LaboratoryController) stateError(ctx echo.Context, err error) error {
	return utils.ErrorResponse(ctx,
		apperrors.NewHttpError(http.StatusInternalServerError, "No se pudo guardar el estado de la vista", err,
			map[string]interface{}{"lab_id": ctx.Param("id"), "path": ctx.Path()}),
		c.logger,
	)
}

func (c *LaboratoryController) ListLaboratories(ctx echo.Context) error {
	labs, err := c.labService.ListLaboratories(ctx.Request().Context())
	page := views.LaboratoriesPage{Labs: labs}
	if err != nil {
		page.LoadError = apperrors.WithCause(views.MsgLabsLoadFailed, err)
	}
	return ctx.Render(http.StatusOK, "laboratories", page)
}

func (c *LaboratoryController) GetLaboratory(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page, err := c.labService.Page(ctx.Request().Context(), sessionID, ctx.Param("id"))
	if err != nil {
		return c.stateError(ctx, err)
	}
	return ctx.Render(http.StatusOK, "laboratory", page)
}

func (c *LaboratoryController) OpenModal(ctx echo.Context) error {
	kind, ok := views.ParseModal(ctx.Param("kind"), views.ModalAdd, views.ModalHistory, views.ModalMaintenance, views.ModalUpdate)
	if !ok {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Ventana desconocida", apperrors.ErrBadRequest,
				map[string]interface{}{"kind": ctx.Param("kind")}),
			c.logger,
		)
	}

	itemID := entities.ItemID(ctx.QueryParam("item"))
	if kind != views.ModalAdd && itemID == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Selecciona una máquina", apperrors.ErrItemNotSelected, nil),
			c.logger,
		)
	}

	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	labID := ctx.Param("id")
	if err := c.labService.OpenModal(ctx.Request().Context(), sessionID, labID, kind, itemID); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, labLocation(labID))
}

func (c *LaboratoryController) CloseModal(ctx echo.Context) error {
	kind, ok := views.ParseModal(ctx.Param("kind"), views.ModalAdd, views.ModalHistory, views.ModalMaintenance, views.ModalUpdate)
	if !ok {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Ventana desconocida", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}

	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	labID := ctx.Param("id")
	if err := c.labService.CloseModal(ctx.Request().Context(), sessionID, labID, kind); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, labLocation(labID))
}

func (c *LaboratoryController) AddItem(ctx echo.Context) error {
	var form dto.LabItemForm
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
	labID := ctx.Param("id")
	if err := c.labService.AddItem(ctx.Request().Context(), sessionID, labID, form); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, labLocation(labID))
}

func (c *LaboratoryController) UpdateItem(ctx echo.Context) error {
	var form dto.LabItemForm
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
	labID := ctx.Param("id")
	itemID := entities.ItemID(ctx.Param("itemId"))
	if err := c.labService.UpdateItem(ctx.Request().Context(), sessionID, labID, itemID, form); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, labLocation(labID))
}

func (c *LaboratoryController) RequestDelete(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	labID := ctx.Param("id")
	itemID := entities.ItemID(ctx.Param("itemId"))
	if err := c.labService.RequestDelete(ctx.Request().Context(), sessionID, labID, itemID); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, labLocation(labID))
}

func (c *LaboratoryController) ConfirmDelete(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	labID := ctx.Param("id")
	itemID := entities.ItemID(ctx.Param("itemId"))
	if err := c.labService.ConfirmDelete(ctx.Request().Context(), sessionID, labID, itemID); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, labLocation(labID))
}

func (c *LaboratoryController) CancelDelete(ctx echo.Context) error {
	sessionID, err := middleware.SessionID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	labID := ctx.Param("id")
	if err := c.labService.CancelDelete(ctx.Request().Context(), sessionID, labID); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, labLocation(labID))
}

func (c *LaboratoryController) RecordMaintenance(ctx echo.Context) error {
	var form dto.MaintenanceForm
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
	labID := ctx.Param("id")
	itemID := entities.ItemID(ctx.Param("itemId"))
	if err := c.labService.RecordMaintenance(ctx.Request().Context(), sessionID, labID, itemID, form); err != nil {
		return c.stateError(ctx, err)
	}
	return utils.SeeOther(ctx, labLocation(labID))
}
