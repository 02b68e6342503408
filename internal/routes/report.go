package routes

import (
	"github.com/labstack/echo/v4"

	"lab-inventory/internal/controllers"
)

func runReportRouter(g *echo.Group, ctrl *controllers.ReportController, ws *controllers.WebSocketController) {
	reports := g.Group("/reportes")

	reports.GET("", ctrl.GetReport)
	reports.GET("/ws", ws.ServeReport)
	reports.GET("/export.xlsx", ctrl.ExportReport)

	reports.POST("/modal/add", ctrl.OpenAdd)
	reports.POST("/modal/:kind/close", ctrl.CloseModal)

	reports.POST("/items", ctrl.AddItem)
	reports.POST("/items/:id/edit", ctrl.OpenEdit)
	reports.POST("/items/:id/update", ctrl.UpdateItem)
	reports.POST("/items/:id/delete", ctrl.RequestDelete)
	reports.POST("/items/:id/delete/confirm", ctrl.ConfirmDelete)
	reports.POST("/delete/cancel", ctrl.CancelDelete)
}
