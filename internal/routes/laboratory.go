package routes

import (
	"github.com/labstack/echo/v4"

	"lab-inventory/internal/controllers"
)

func runLaboratoryRouter(g *echo.Group, ctrl *controllers.LaboratoryController) {
	labs := g.Group("/laboratorios")

	labs.GET("", ctrl.ListLaboratories)
	labs.GET("/:id", ctrl.GetLaboratory)

	labs.POST("/:id/modal/:kind", ctrl.OpenModal)
	labs.POST("/:id/modal/:kind/close", ctrl.CloseModal)

	labs.POST("/:id/items", ctrl.AddItem)
	labs.POST("/:id/items/:itemId/update", ctrl.UpdateItem)
	labs.POST("/:id/items/:itemId/delete", ctrl.RequestDelete)
	labs.POST("/:id/items/:itemId/delete/confirm", ctrl.ConfirmDelete)
	labs.POST("/:id/delete/cancel", ctrl.CancelDelete)
	labs.POST("/:id/items/:itemId/maintenance", ctrl.RecordMaintenance)
}
