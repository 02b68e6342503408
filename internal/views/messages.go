package views

import "fmt"

// User-facing texts of the detail view.
const (
	MsgLabLoadFailed       = "Error: No se pudo cargar el laboratorio."
	MsgLabsLoadFailed      = "Error: No se pudieron cargar los laboratorios."
	MsgLabEmpty            = "No hay máquinas registradas en este laboratorio."
	MsgHistoryEmpty        = "No hay mantenimientos registrados."
	MsgItemSaved           = "¡Máquina guardada correctamente!"
	MsgItemSaveFailed      = "Error al guardar: "
	MsgUnknownError        = "Error desconocido"
	MsgItemUpdated         = "Máquina actualizada correctamente"
	MsgItemUpdateFailed    = "Error al actualizar: Verifica los datos."
	MsgItemDeleted         = "Máquina eliminada correctamente"
	MsgItemDeleteFailed    = "Error al eliminar la máquina"
	MsgMaintenanceSaved    = "Mantenimiento registrado con éxito"
	MsgMaintenanceFailed   = "Error al registrar: Verifica que todos los campos estén llenos."
	MsgItemMissing         = "La máquina seleccionada ya no existe en este laboratorio."
	MsgConfirmationMissing = "La eliminación no fue confirmada."
)

// User-facing texts of the report view.
const (
	MsgReportEmpty          = "No hay datos registrados"
	MsgSavedPrimary         = "✅ Guardado correctamente en MySQL (BD Principal)"
	MsgSavedFallback        = "⚠️ BD SATURADA. Guardado temporalmente en Redis (Respaldo)"
	MsgCriticalError        = "Error crítico del sistema"
	MsgGlobalUpdated        = "Actualizado correctamente en MySQL"
	MsgGlobalUpdateFailed   = "Error al actualizar: Verifica la conexión a MySQL."
	MsgGlobalDeleteFailed   = "Error al eliminar: Posiblemente MySQL no responde."
	MsgGlobalDeleted        = "Equipo eliminado correctamente"
	MsgGlobalDeletePrompt   = "¿Seguro que deseas eliminar este equipo?"
	MsgReadOnly             = "Edición deshabilitada: la fuente de datos actual no es la BD principal."
	MsgEmergencyTitle       = "Modo de Emergencia Activado"
	MsgEmergencyDescription = "La base de datos principal no responde. Visualizando datos cacheados en Redis. (Edición Deshabilitada)"
)

// DeletePrompt names the item about to be removed from a laboratory.
func DeletePrompt(name string) string {
	return fmt.Sprintf("¿Estás seguro de ELIMINAR la máquina \"%s\"? Esta acción no se puede deshacer.", name)
}
