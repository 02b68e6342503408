package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"lab-inventory/internal/entities"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var inventoryHeaders = []interface{}{
	"ID", "Nombre", "Código", "Tipo", "Área", "Estado", "Fecha de adquisición", "Mantenimientos",
}

func itemRow(it entities.Item) []interface{} {
	return []interface{}{
		it.ID.String(), it.DisplayName(), it.Code, it.Type, it.Area, it.StatusLabel(),
		it.AcquisitionDate.String, len(it.MaintenanceHistory),
	}
}

// WriteInventory writes items as a one-sheet workbook. The source label goes
// two rows below the data.
func WriteInventory(w io.Writer, sheet, source string, items []entities.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: sheet name: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &inventoryHeaders); err != nil {
		return fmt.Errorf("export: headers: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "H1", style)
	}

	for i, it := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := itemRow(it)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	cell, _ := excelize.CoordinatesToCellName(1, len(items)+3)
	footer := []interface{}{"Fuente de datos", source}
	if err := f.SetSheetRow(sheet, cell, &footer); err != nil {
		return fmt.Errorf("export: footer: %w", err)
	}

	_ = f.SetColWidth(sheet, "B", "C", 22)
	_ = f.SetColWidth(sheet, "D", "F", 18)
	_ = f.SetColWidth(sheet, "G", "G", 20)

	return f.Write(w)
}
