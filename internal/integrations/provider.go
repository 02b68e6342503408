package integrations

import (
	"context"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
)

// InventoryAPI is the external REST backend that owns laboratories and the
// global inventory.
type InventoryAPI interface {
	ListLaboratories(ctx context.Context) ([]entities.Laboratory, error)
	GetLaboratory(ctx context.Context, labID string) (*entities.Laboratory, error)
	AddLabItem(ctx context.Context, labID string, payload dto.LabItemPayload) (*dto.LabItemResponse, error)
	UpdateLabItem(ctx context.Context, labID string, itemID entities.ItemID, payload dto.LabItemPayload) error
	DeleteLabItem(ctx context.Context, labID string, itemID entities.ItemID) error
	AddMaintenance(ctx context.Context, labID string, itemID entities.ItemID, payload dto.MaintenancePayload) error

	ListGlobalItems(ctx context.Context) (*dto.GlobalItemsResponse, error)
	CreateGlobalItem(ctx context.Context, payload dto.GlobalItemPayload) (*dto.GlobalWriteResponse, error)
	UpdateGlobalItem(ctx context.Context, itemID entities.ItemID, payload dto.GlobalItemPayload) error
	DeleteGlobalItem(ctx context.Context, itemID entities.ItemID) error
}
