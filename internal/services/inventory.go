package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
	"lab-inventory/internal/events"
	"lab-inventory/internal/integrations"
	"lab-inventory/internal/views"
	apperrors "lab-inventory/pkg/errors"
	"lab-inventory/pkg/utils"
)

const reportView = "report"

// InventoryServiceInterface drives the global inventory report.
type InventoryServiceInterface interface {
	// Snapshot fetches the list once. A failed fetch is reported inside the
	// snapshot, never as an error.
	Snapshot(ctx context.Context, search string) views.ReportSnapshot
	Page(ctx context.Context, sessionID, search string) (*views.ReportPage, error)
	OpenAdd(ctx context.Context, sessionID string) error
	CloseModal(ctx context.Context, sessionID string, kind views.ModalKind) error
	AddItem(ctx context.Context, sessionID string, form dto.GlobalItemForm) error
	OpenEdit(ctx context.Context, sessionID string, itemID entities.ItemID) error
	UpdateItem(ctx context.Context, sessionID string, itemID entities.ItemID, form dto.GlobalItemForm) error
	RequestDelete(ctx context.Context, sessionID string, itemID entities.ItemID) error
	ConfirmDelete(ctx context.Context, sessionID string, itemID entities.ItemID) error
	CancelDelete(ctx context.Context, sessionID string) error
}

type inventoryService struct {
	api       integrations.InventoryAPI
	states    ViewStateServiceInterface
	validator Validator
	bus       Publisher
	resolver  entities.SourceResolver
	autoClose time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewInventoryService(
	api integrations.InventoryAPI,
	states ViewStateServiceInterface,
	validator Validator,
	bus Publisher,
	resolver entities.SourceResolver,
	autoClose time.Duration,
	logger *zap.Logger,
) InventoryServiceInterface {
	return &inventoryService{
		api:       api,
		states:    states,
		validator: validator,
		bus:       bus,
		resolver:  resolver,
		autoClose: autoClose,
		now:       time.Now,
		logger:    logger.Named("inventory_service"),
	}
}

func (s *inventoryService) load(ctx context.Context, sessionID string) (*views.ReportState, error) {
	state := views.NewReportState()
	if _, err := s.states.Load(ctx, sessionID, reportView, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *inventoryService) save(ctx context.Context, sessionID string, state *views.ReportState) error {
	return s.states.Save(ctx, sessionID, reportView, state)
}

func (s *inventoryService) changed(ctx context.Context, itemID entities.ItemID, action string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ItemsChangedEvent{Scope: events.ScopeGlobal, ItemID: itemID, Action: action})
}

func (s *inventoryService) Snapshot(ctx context.Context, search string) views.ReportSnapshot {
	resp, err := s.api.ListGlobalItems(ctx)
	if err != nil {
		s.logger.Warn("global list failed", zap.Error(err))
		return views.ReportSnapshot{
			Source:    entities.DataSource{Label: entities.SourceConnectionError},
			Search:    search,
			Rows:      []entities.Item{},
			LoadError: apperrors.Describe(err),
		}
	}
	return views.ReportSnapshot{
		Source:  s.resolver.Resolve(resp.Source),
		Message: resp.Message,
		Rows:    views.FilterItems(resp.Data, search),
		Total:   len(resp.Data),
		Search:  search,
	}
}

// currentSource re-reads the list to decide whether writes are allowed now.
func (s *inventoryService) currentSource(ctx context.Context) (entities.DataSource, []entities.Item, error) {
	resp, err := s.api.ListGlobalItems(ctx)
	if err != nil {
		return entities.DataSource{Label: entities.SourceConnectionError}, nil, err
	}
	return s.resolver.Resolve(resp.Source), resp.Data, nil
}

// refuseReadOnly tells the user a write was blocked because src is not the
// primary store.
func (s *inventoryService) refuseReadOnly(state *views.ReportState, op string, itemID entities.ItemID, src entities.DataSource) {
	err := fmt.Errorf("%s item %s: %w", op, itemID, apperrors.ErrReadOnlySource)
	s.logger.Warn("write refused", zap.String("source", src.Label), zap.Error(err))
	state.Notify(views.FlashWarning, views.MsgReadOnly)
}

func (s *inventoryService) Page(ctx context.Context, sessionID, search string) (*views.ReportPage, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	state.Tick(now)

	page := &views.ReportPage{
		ReportSnapshot: s.Snapshot(ctx, search),
		Flash:          state.TakeFlash(),
	}
	if remaining := state.AutoCloseIn(now); remaining > 0 {
		page.AutoCloseSec = int((remaining + time.Second - 1) / time.Second)
	}
	if state.IsOpen(views.ModalEdit) {
		page.EditingID = state.Selected
	}
	page.State = *state

	if err := s.save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *inventoryService) OpenAdd(ctx context.Context, sessionID string) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	state.Open(views.ModalAdd, "")
	state.SaveStatus = nil
	state.AutoCloseAt = time.Time{}
	return s.save(ctx, sessionID, state)
}

func (s *inventoryService) CloseModal(ctx context.Context, sessionID string, kind views.ModalKind) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	state.Close(kind)
	if kind == views.ModalAdd {
		state.SaveStatus = nil
		state.AutoCloseAt = time.Time{}
	}
	return s.save(ctx, sessionID, state)
}

func (s *inventoryService) AddItem(ctx context.Context, sessionID string, form dto.GlobalItemForm) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	state.Open(views.ModalAdd, "")
	state.Form = form

	if err := s.validator.Validate(&form); err != nil {
		state.AddFailed(views.MsgCriticalError + " (causa: " + utils.ValidationMessage(err) + ")")
		return s.save(ctx, sessionID, state)
	}

	resp, err := s.api.CreateGlobalItem(ctx, globalPayload(form))
	if err != nil {
		s.logger.Warn("create global item failed", zap.Error(err))
		state.AddFailed(apperrors.WithCause(views.MsgCriticalError, err))
		return s.save(ctx, sessionID, state)
	}

	src := s.resolver.Resolve(resp.Source)
	state.AddAccepted(src, s.now(), s.autoClose)
	s.logger.Info("global item created", zap.String("source", src.Label), zap.String("code", form.Code))
	s.changed(ctx, "", "created")
	return s.save(ctx, sessionID, state)
}

func (s *inventoryService) OpenEdit(ctx context.Context, sessionID string, itemID entities.ItemID) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	src, items, err := s.currentSource(ctx)
	switch {
	case err != nil:
		state.Notify(views.FlashError, apperrors.WithCause(views.MsgGlobalUpdateFailed, err))
	case src.ReadOnly():
		s.refuseReadOnly(state, "edit", itemID, src)
	default:
		item, ok := findItem(items, itemID)
		if !ok {
			state.Notify(views.FlashError, views.MsgItemMissing)
			break
		}
		state.OpenEdit(item)
	}
	return s.save(ctx, sessionID, state)
}

func (s *inventoryService) UpdateItem(ctx context.Context, sessionID string, itemID entities.ItemID, form dto.GlobalItemForm) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	state.Edit = form

	if err := s.validator.Validate(&form); err != nil {
		state.Notify(views.FlashError, views.MsgGlobalUpdateFailed+" "+utils.ValidationMessage(err))
		return s.save(ctx, sessionID, state)
	}

	if err := s.api.UpdateGlobalItem(ctx, itemID, globalPayload(form)); err != nil {
		s.logger.Warn("update global item failed", zap.String("item_id", itemID.String()), zap.Error(err))
		state.Notify(views.FlashError, apperrors.WithCause(views.MsgGlobalUpdateFailed, err))
		return s.save(ctx, sessionID, state)
	}

	state.Close(views.ModalEdit)
	state.Selected = ""
	state.Notify(views.FlashSuccess, views.MsgGlobalUpdated)
	s.changed(ctx, itemID, "updated")
	return s.save(ctx, sessionID, state)
}

func (s *inventoryService) RequestDelete(ctx context.Context, sessionID string, itemID entities.ItemID) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	src, _, err := s.currentSource(ctx)
	switch {
	case err != nil:
		state.Notify(views.FlashError, apperrors.WithCause(views.MsgGlobalDeleteFailed, err))
	case src.ReadOnly():
		s.refuseReadOnly(state, "delete", itemID, src)
	default:
		state.AskConfirm(itemID, views.MsgGlobalDeletePrompt)
	}
	return s.save(ctx, sessionID, state)
}

func (s *inventoryService) ConfirmDelete(ctx context.Context, sessionID string, itemID entities.ItemID) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !state.Confirmed(itemID) {
		state.Notify(views.FlashWarning, views.MsgConfirmationMissing)
		return s.save(ctx, sessionID, state)
	}
	state.ClearConfirm()

	src, _, err := s.currentSource(ctx)
	if err == nil && src.ReadOnly() {
		s.refuseReadOnly(state, "confirm delete", itemID, src)
		return s.save(ctx, sessionID, state)
	}

	if err := s.api.DeleteGlobalItem(ctx, itemID); err != nil {
		s.logger.Warn("delete global item failed", zap.String("item_id", itemID.String()), zap.Error(err))
		state.Notify(views.FlashError, apperrors.WithCause(views.MsgGlobalDeleteFailed, err))
		return s.save(ctx, sessionID, state)
	}

	state.Notify(views.FlashSuccess, views.MsgGlobalDeleted)
	s.changed(ctx, itemID, "deleted")
	return s.save(ctx, sessionID, state)
}

func (s *inventoryService) CancelDelete(ctx context.Context, sessionID string) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	state.ClearConfirm()
	return s.save(ctx, sessionID, state)
}

func globalPayload(form dto.GlobalItemForm) dto.GlobalItemPayload {
	return dto.GlobalItemPayload{
		Code:   form.Code,
		Type:   form.Type,
		Status: form.Status,
		Area:   form.Area,
	}
}

func findItem(items []entities.Item, id entities.ItemID) (entities.Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return entities.Item{}, false
}
