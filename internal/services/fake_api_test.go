package services

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
	"lab-inventory/internal/repositories"
	"lab-inventory/internal/views"
	"lab-inventory/pkg/customvalidator"
	apperrors "lab-inventory/pkg/errors"
	"lab-inventory/pkg/eventbus"
	"lab-inventory/pkg/utils"
)

// fakeAPI is an in-memory inventory backend. Setting an *Err field makes the
// matching call fail.
type fakeAPI struct {
	labs   map[string]*entities.Laboratory
	global []entities.Item
	source string

	nextID int

	addErr, updateErr, deleteErr, maintErr error
	listErr, createErr, globalUpdateErr    error
	globalDeleteErr                        error
	createSource                           string

	calls []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{labs: map[string]*entities.Laboratory{}, source: "MySQL", createSource: "MySQL", nextID: 100}
}

func (f *fakeAPI) record(op string) { f.calls = append(f.calls, op) }

func (f *fakeAPI) ListLaboratories(ctx context.Context) ([]entities.Laboratory, error) {
	f.record("ListLaboratories")
	out := make([]entities.Laboratory, 0, len(f.labs))
	for _, l := range f.labs {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeAPI) GetLaboratory(ctx context.Context, labID string) (*entities.Laboratory, error) {
	f.record("GetLaboratory")
	lab, ok := f.labs[labID]
	if !ok {
		return nil, &apperrors.RemoteError{Kind: apperrors.KindNotFound, Op: "GetLaboratory", Status: 404, Detail: "Laboratorio no encontrado"}
	}
	cp := *lab
	cp.Items = append([]entities.Item(nil), lab.Items...)
	return &cp, nil
}

func (f *fakeAPI) AddLabItem(ctx context.Context, labID string, p dto.LabItemPayload) (*dto.LabItemResponse, error) {
	f.record("AddLabItem")
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.nextID++
	item := entities.Item{ID: entities.ItemID(strconv.Itoa(f.nextID)), Name: p.Code, Code: p.Code, Type: p.Type, Status: p.Status, Area: p.Area}
	f.labs[labID].Items = append(f.labs[labID].Items, item)
	return &dto.LabItemResponse{Message: "ok", Item: &item}, nil
}

func (f *fakeAPI) UpdateLabItem(ctx context.Context, labID string, id entities.ItemID, p dto.LabItemPayload) error {
	f.record("UpdateLabItem")
	if f.updateErr != nil {
		return f.updateErr
	}
	lab := f.labs[labID]
	for i := range lab.Items {
		if lab.Items[i].ID == id {
			lab.Items[i].Name, lab.Items[i].Code, lab.Items[i].Area = p.Code, p.Code, p.Area
			lab.Items[i].Type, lab.Items[i].Status = p.Type, p.Status
		}
	}
	return nil
}

func (f *fakeAPI) DeleteLabItem(ctx context.Context, labID string, id entities.ItemID) error {
	f.record("DeleteLabItem")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	lab := f.labs[labID]
	kept := lab.Items[:0]
	for _, it := range lab.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	lab.Items = kept
	return nil
}

func (f *fakeAPI) AddMaintenance(ctx context.Context, labID string, id entities.ItemID, p dto.MaintenancePayload) error {
	f.record("AddMaintenance")
	if f.maintErr != nil {
		return f.maintErr
	}
	lab := f.labs[labID]
	for i := range lab.Items {
		if lab.Items[i].ID == id {
			lab.Items[i].MaintenanceHistory = append(lab.Items[i].MaintenanceHistory, entities.MaintenanceEntry{
				Type: p.Type, Technician: p.Technician, Description: p.Description,
			})
		}
	}
	return nil
}

func (f *fakeAPI) ListGlobalItems(ctx context.Context) (*dto.GlobalItemsResponse, error) {
	f.record("ListGlobalItems")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &dto.GlobalItemsResponse{Source: f.source, Data: append([]entities.Item{}, f.global...)}, nil
}

func (f *fakeAPI) CreateGlobalItem(ctx context.Context, p dto.GlobalItemPayload) (*dto.GlobalWriteResponse, error) {
	f.record("CreateGlobalItem")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	f.global = append(f.global, entities.Item{ID: entities.ItemID(strconv.Itoa(f.nextID)), Code: p.Code, Type: p.Type, Status: p.Status, Area: p.Area})
	return &dto.GlobalWriteResponse{Source: f.createSource, Status: "created"}, nil
}

func (f *fakeAPI) UpdateGlobalItem(ctx context.Context, id entities.ItemID, p dto.GlobalItemPayload) error {
	f.record("UpdateGlobalItem")
	if f.globalUpdateErr != nil {
		return f.globalUpdateErr
	}
	for i := range f.global {
		if f.global[i].ID == id {
			f.global[i].Code, f.global[i].Type, f.global[i].Status, f.global[i].Area = p.Code, p.Type, p.Status, p.Area
		}
	}
	return nil
}

func (f *fakeAPI) DeleteGlobalItem(ctx context.Context, id entities.ItemID) error {
	f.record("DeleteGlobalItem")
	if f.globalDeleteErr != nil {
		return f.globalDeleteErr
	}
	kept := f.global[:0]
	for _, it := range f.global {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	f.global = kept
	return nil
}

func (f *fakeAPI) count(op string) int {
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (b *recordingBus) Publish(_ context.Context, e eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func testValidator(t *testing.T) Validator {
	t.Helper()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	return utils.NewValidator(v)
}

func testStates() ViewStateServiceInterface {
	return NewViewStateService(repositories.NewMemoryCacheRepository(), 0, zap.NewNop())
}

var testDetailDefaults = views.DetailDefaults{
	AddAcquisitionDate:    "2026-01-01",
	UpdateAcquisitionDate: "2024-01-01",
	UpdateArea:            "General",
	HistoryDate:           "2026-02-15",
}
