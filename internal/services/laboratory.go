package services

import (
	"context"

	"go.uber.org/zap"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
	"lab-inventory/internal/events"
	"lab-inventory/internal/integrations"
	"lab-inventory/internal/views"
	apperrors "lab-inventory/pkg/errors"
	"lab-inventory/pkg/eventbus"
	"lab-inventory/pkg/utils"
)

// Validator is satisfied by utils.CustomValidator.
type Validator interface {
	Validate(i interface{}) error
}

// Publisher is satisfied by eventbus.Bus.
type Publisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// LaboratoryServiceInterface drives the laboratory list and detail screens.
// Upstream failures never surface as errors: they become flash messages on
// the next render. Returned errors are session store failures.
type LaboratoryServiceInterface interface {
	ListLaboratories(ctx context.Context) ([]entities.Laboratory, error)
	Page(ctx context.Context, sessionID, labID string) (*views.DetailPage, error)
	OpenModal(ctx context.Context, sessionID, labID string, kind views.ModalKind, itemID entities.ItemID) error
	CloseModal(ctx context.Context, sessionID, labID string, kind views.ModalKind) error
	AddItem(ctx context.Context, sessionID, labID string, form dto.LabItemForm) error
	UpdateItem(ctx context.Context, sessionID, labID string, itemID entities.ItemID, form dto.LabItemForm) error
	RequestDelete(ctx context.Context, sessionID, labID string, itemID entities.ItemID) error
	ConfirmDelete(ctx context.Context, sessionID, labID string, itemID entities.ItemID) error
	CancelDelete(ctx context.Context, sessionID, labID string) error
	RecordMaintenance(ctx context.Context, sessionID, labID string, itemID entities.ItemID, form dto.MaintenanceForm) error
}

type laboratoryService struct {
	api       integrations.InventoryAPI
	states    ViewStateServiceInterface
	validator Validator
	bus       Publisher
	defaults  views.DetailDefaults
	logger    *zap.Logger
}

func NewLaboratoryService(
	api integrations.InventoryAPI,
	states ViewStateServiceInterface,
	validator Validator,
	bus Publisher,
	defaults views.DetailDefaults,
	logger *zap.Logger,
) LaboratoryServiceInterface {
	return &laboratoryService{
		api:       api,
		states:    states,
		validator: validator,
		bus:       bus,
		defaults:  defaults,
		logger:    logger.Named("laboratory_service"),
	}
}

func detailView(labID string) string {
	return "lab:" + labID
}

func (s *laboratoryService) load(ctx context.Context, sessionID, labID string) (*views.DetailState, error) {
	state := views.NewDetailState()
	if _, err := s.states.Load(ctx, sessionID, detailView(labID), state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *laboratoryService) save(ctx context.Context, sessionID, labID string, state *views.DetailState) error {
	return s.states.Save(ctx, sessionID, detailView(labID), state)
}

// mutate runs fn against the stored state and writes it back.
func (s *laboratoryService) mutate(ctx context.Context, sessionID, labID string, fn func(*views.DetailState)) error {
	state, err := s.load(ctx, sessionID, labID)
	if err != nil {
		return err
	}
	fn(state)
	return s.save(ctx, sessionID, labID, state)
}

func (s *laboratoryService) changed(ctx context.Context, labID string, itemID entities.ItemID, action string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ItemsChangedEvent{
		Scope:  events.ScopeLaboratory,
		LabID:  labID,
		ItemID: itemID,
		Action: action,
	})
}

func (s *laboratoryService) ListLaboratories(ctx context.Context) ([]entities.Laboratory, error) {
	labs, err := s.api.ListLaboratories(ctx)
	if err != nil {
		s.logger.Error("list laboratories", zap.Error(err))
		return nil, err
	}
	return labs, nil
}

func (s *laboratoryService) Page(ctx context.Context, sessionID, labID string) (*views.DetailPage, error) {
	state, err := s.load(ctx, sessionID, labID)
	if err != nil {
		return nil, err
	}

	lab, fetchErr := s.api.GetLaboratory(ctx, labID)
	if fetchErr != nil {
		s.logger.Warn("laboratory load failed", zap.String("lab_id", labID), zap.Error(fetchErr))
		lab = nil
	}

	if lab != nil && state.Selected != "" {
		if _, ok := lab.FindItem(state.Selected); !ok {
			state.Close(views.ModalHistory)
			state.Close(views.ModalMaintenance)
			state.Close(views.ModalUpdate)
			state.Selected = ""
		}
	}

	flash := state.TakeFlash()
	page := views.NewDetailPage(labID, lab, *state, s.defaults)
	page.Flash = flash
	if fetchErr != nil {
		page.LoadError = apperrors.WithCause(views.MsgLabLoadFailed, fetchErr)
	}

	if err := s.save(ctx, sessionID, labID, state); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *laboratoryService) OpenModal(ctx context.Context, sessionID, labID string, kind views.ModalKind, itemID entities.ItemID) error {
	state, err := s.load(ctx, sessionID, labID)
	if err != nil {
		return err
	}

	switch kind {
	case views.ModalAdd:
		state.OpenModal(kind, nil)
	case views.ModalUpdate:
		// The dialog is pre-filled from a fresh copy of the item.
		lab, err := s.api.GetLaboratory(ctx, labID)
		if err != nil {
			state.Notify(views.FlashError, apperrors.WithCause(views.MsgLabLoadFailed, err))
			break
		}
		item, ok := lab.FindItem(itemID)
		if !ok {
			state.Notify(views.FlashError, views.MsgItemMissing)
			break
		}
		state.OpenModal(kind, &item)
	case views.ModalMaintenance:
		state.ResetMaintenanceForm()
		state.OpenModal(kind, &entities.Item{ID: itemID})
	default:
		state.OpenModal(kind, &entities.Item{ID: itemID})
	}

	return s.save(ctx, sessionID, labID, state)
}

func (s *laboratoryService) CloseModal(ctx context.Context, sessionID, labID string, kind views.ModalKind) error {
	return s.mutate(ctx, sessionID, labID, func(state *views.DetailState) {
		state.Close(kind)
	})
}

func (s *laboratoryService) AddItem(ctx context.Context, sessionID, labID string, form dto.LabItemForm) error {
	state, err := s.load(ctx, sessionID, labID)
	if err != nil {
		return err
	}
	state.Form = form

	if err := s.validator.Validate(&form); err != nil {
		state.Notify(views.FlashError, views.MsgItemSaveFailed+utils.ValidationMessage(err))
		return s.save(ctx, sessionID, labID, state)
	}

	resp, err := s.api.AddLabItem(ctx, labID, views.AddPayload(form, s.defaults))
	if err != nil {
		s.logger.Warn("add item failed", zap.String("lab_id", labID), zap.Error(err))
		if detail := apperrors.Detail(err); detail != "" {
			state.Notify(views.FlashError, views.MsgItemSaveFailed+detail)
		} else {
			state.Notify(views.FlashError, apperrors.WithCause(views.MsgItemSaveFailed+views.MsgUnknownError, err))
		}
		return s.save(ctx, sessionID, labID, state)
	}

	var newID entities.ItemID
	if resp != nil && resp.Item != nil {
		newID = resp.Item.ID
	}
	state.Close(views.ModalAdd)
	state.ResetItemForm()
	state.Notify(views.FlashSuccess, views.MsgItemSaved)
	s.changed(ctx, labID, newID, "created")
	return s.save(ctx, sessionID, labID, state)
}

func (s *laboratoryService) UpdateItem(ctx context.Context, sessionID, labID string, itemID entities.ItemID, form dto.LabItemForm) error {
	state, err := s.load(ctx, sessionID, labID)
	if err != nil {
		return err
	}
	state.Form = form
	state.Selected = itemID

	if err := s.validator.Validate(&form); err != nil {
		state.Notify(views.FlashError, views.MsgItemUpdateFailed+" "+utils.ValidationMessage(err))
		return s.save(ctx, sessionID, labID, state)
	}

	if err := s.api.UpdateLabItem(ctx, labID, itemID, views.UpdatePayload(form, s.defaults)); err != nil {
		s.logger.Warn("update item failed", zap.String("lab_id", labID), zap.String("item_id", itemID.String()), zap.Error(err))
		state.Notify(views.FlashError, apperrors.WithCause(views.MsgItemUpdateFailed, err))
		return s.save(ctx, sessionID, labID, state)
	}

	state.Close(views.ModalUpdate)
	state.Notify(views.FlashSuccess, views.MsgItemUpdated)
	s.changed(ctx, labID, itemID, "updated")
	return s.save(ctx, sessionID, labID, state)
}

func (s *laboratoryService) RequestDelete(ctx context.Context, sessionID, labID string, itemID entities.ItemID) error {
	state, err := s.load(ctx, sessionID, labID)
	if err != nil {
		return err
	}

	lab, err := s.api.GetLaboratory(ctx, labID)
	switch {
	case err != nil:
		state.Notify(views.FlashError, apperrors.WithCause(views.MsgItemDeleteFailed, err))
	default:
		item, ok := lab.FindItem(itemID)
		if !ok {
			state.Notify(views.FlashError, views.MsgItemMissing)
			break
		}
		state.AskConfirm(itemID, views.DeletePrompt(item.DisplayName()))
	}
	return s.save(ctx, sessionID, labID, state)
}

func (s *laboratoryService) ConfirmDelete(ctx context.Context, sessionID, labID string, itemID entities.ItemID) error {
	state, err := s.load(ctx, sessionID, labID)
	if err != nil {
		return err
	}
	if !state.Confirmed(itemID) {
		state.Notify(views.FlashWarning, views.MsgConfirmationMissing)
		return s.save(ctx, sessionID, labID, state)
	}
	state.ClearConfirm()

	if err := s.api.DeleteLabItem(ctx, labID, itemID); err != nil {
		s.logger.Warn("delete item failed", zap.String("lab_id", labID), zap.String("item_id", itemID.String()), zap.Error(err))
		state.Notify(views.FlashError, apperrors.WithCause(views.MsgItemDeleteFailed, err))
		return s.save(ctx, sessionID, labID, state)
	}

	if state.Selected == itemID {
		state.Close(views.ModalHistory)
		state.Close(views.ModalMaintenance)
		state.Close(views.ModalUpdate)
		state.Selected = ""
	}
	state.Notify(views.FlashSuccess, views.MsgItemDeleted)
	s.changed(ctx, labID, itemID, "deleted")
	return s.save(ctx, sessionID, labID, state)
}

func (s *laboratoryService) CancelDelete(ctx context.Context, sessionID, labID string) error {
	return s.mutate(ctx, sessionID, labID, func(state *views.DetailState) {
		state.ClearConfirm()
	})
}

func (s *laboratoryService) RecordMaintenance(ctx context.Context, sessionID, labID string, itemID entities.ItemID, form dto.MaintenanceForm) error {
	state, err := s.load(ctx, sessionID, labID)
	if err != nil {
		return err
	}
	state.Maintenance = form
	state.Selected = itemID

	if err := s.validator.Validate(&form); err != nil {
		state.Notify(views.FlashError, views.MsgMaintenanceFailed+" "+utils.ValidationMessage(err))
		return s.save(ctx, sessionID, labID, state)
	}

	if err := s.api.AddMaintenance(ctx, labID, itemID, views.MaintenancePayload(form)); err != nil {
		s.logger.Warn("record maintenance failed", zap.String("lab_id", labID), zap.String("item_id", itemID.String()), zap.Error(err))
		state.Notify(views.FlashError, apperrors.WithCause(views.MsgMaintenanceFailed, err))
		return s.save(ctx, sessionID, labID, state)
	}

	state.Close(views.ModalMaintenance)
	state.ResetMaintenanceForm()
	state.Notify(views.FlashSuccess, views.MsgMaintenanceSaved)
	s.changed(ctx, labID, itemID, "maintenance")
	return s.save(ctx, sessionID, labID, state)
}
