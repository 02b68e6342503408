package inventoryapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
	"lab-inventory/internal/integrations"
)

// Provider talks to the inventory REST API over JSON.
type Provider struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) integrations.InventoryAPI {
	return NewWithClient(baseURL, &http.Client{Timeout: timeout}, logger)
}

func NewWithClient(baseURL string, client *http.Client, logger *zap.Logger) *Provider {
	return &Provider{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("inventory_api"),
	}
}

func labPath(labID string, rest ...string) string {
	parts := append([]string{"/laboratories", url.PathEscape(labID)}, rest...)
	return strings.Join(parts, "/")
}

func itemSegment(id entities.ItemID) string {
	return url.PathEscape(id.String())
}

func (p *Provider) ListLaboratories(ctx context.Context) ([]entities.Laboratory, error) {
	var labs []entities.Laboratory
	if err := p.do(ctx, "ListLaboratories", http.MethodGet, "/laboratories/", nil, &labs); err != nil {
		return nil, err
	}
	return labs, nil
}

func (p *Provider) GetLaboratory(ctx context.Context, labID string) (*entities.Laboratory, error) {
	var lab entities.Laboratory
	if err := p.do(ctx, "GetLaboratory", http.MethodGet, labPath(labID), nil, &lab); err != nil {
		return nil, err
	}
	return &lab, nil
}

func (p *Provider) AddLabItem(ctx context.Context, labID string, payload dto.LabItemPayload) (*dto.LabItemResponse, error) {
	var res dto.LabItemResponse
	if err := p.do(ctx, "AddLabItem", http.MethodPut, labPath(labID, "add-item"), payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (p *Provider) UpdateLabItem(ctx context.Context, labID string, itemID entities.ItemID, payload dto.LabItemPayload) error {
	return p.do(ctx, "UpdateLabItem", http.MethodPut, labPath(labID, "items", itemSegment(itemID)), payload, nil)
}

func (p *Provider) DeleteLabItem(ctx context.Context, labID string, itemID entities.ItemID) error {
	return p.do(ctx, "DeleteLabItem", http.MethodDelete, labPath(labID, "items", itemSegment(itemID)), nil, nil)
}

func (p *Provider) AddMaintenance(ctx context.Context, labID string, itemID entities.ItemID, payload dto.MaintenancePayload) error {
	return p.do(ctx, "AddMaintenance", http.MethodPost, labPath(labID, "items", itemSegment(itemID), "maintenance"), payload, nil)
}

func (p *Provider) ListGlobalItems(ctx context.Context) (*dto.GlobalItemsResponse, error) {
	var res dto.GlobalItemsResponse
	if err := p.do(ctx, "ListGlobalItems", http.MethodGet, "/laboratories/items", nil, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		res.Data = []entities.Item{}
	}
	return &res, nil
}

func (p *Provider) CreateGlobalItem(ctx context.Context, payload dto.GlobalItemPayload) (*dto.GlobalWriteResponse, error) {
	var res dto.GlobalWriteResponse
	if err := p.do(ctx, "CreateGlobalItem", http.MethodPost, "/laboratories/items", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (p *Provider) UpdateGlobalItem(ctx context.Context, itemID entities.ItemID, payload dto.GlobalItemPayload) error {
	return p.do(ctx, "UpdateGlobalItem", http.MethodPut, "/laboratories/items/"+itemSegment(itemID), payload, nil)
}

func (p *Provider) DeleteGlobalItem(ctx context.Context, itemID entities.ItemID) error {
	return p.do(ctx, "DeleteGlobalItem", http.MethodDelete, "/laboratories/items/"+itemSegment(itemID), nil, nil)
}
