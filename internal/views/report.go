package views

import (
	"strings"
	"time"

	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
)

// ReportState is the session state of the global inventory screen.
type ReportState struct {
	CRUD[dto.GlobalItemForm]
	Edit        dto.GlobalItemForm `json:"edit"`
	SaveStatus  *Flash             `json:"save_status,omitempty"`
	AutoCloseAt time.Time          `json:"auto_close_at,omitzero"`
}

func DefaultGlobalItemForm() dto.GlobalItemForm {
	return dto.GlobalItemForm{Type: "PC", Status: entities.StatusOperational, Area: "Sala 1"}
}

func NewReportState() *ReportState {
	s := &ReportState{}
	s.Form = DefaultGlobalItemForm()
	return s
}

// OpenEdit pre-fills the edit dialog from a row.
func (s *ReportState) OpenEdit(item entities.Item) {
	s.Open(ModalEdit, item.ID)
	s.Edit = dto.GlobalItemForm{
		Code:   item.DisplayName(),
		Type:   item.Type,
		Status: item.Status,
		Area:   item.Area,
	}
}

// AddAccepted records which store took the write and schedules the add
// dialog to close after delay.
func (s *ReportState) AddAccepted(src entities.DataSource, now time.Time, delay time.Duration) {
	s.SaveStatus = SaveMessage(src)
	s.AutoCloseAt = now.Add(delay)
}

func (s *ReportState) AddFailed(text string) {
	s.SaveStatus = &Flash{Kind: FlashError, Text: text}
	s.AutoCloseAt = time.Time{}
}

// Tick closes the add dialog and clears its form once the auto-close
// deadline has passed. It reports whether the state changed.
func (s *ReportState) Tick(now time.Time) bool {
	if s.AutoCloseAt.IsZero() || now.Before(s.AutoCloseAt) {
		return false
	}
	s.Close(ModalAdd)
	s.SaveStatus = nil
	s.AutoCloseAt = time.Time{}
	s.Form = DefaultGlobalItemForm()
	return true
}

// AutoCloseIn is the remaining time before Tick closes the add dialog.
func (s ReportState) AutoCloseIn(now time.Time) time.Duration {
	if s.AutoCloseAt.IsZero() {
		return 0
	}
	if d := s.AutoCloseAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// SaveMessage chooses the confirmation for a write accepted by src.
func SaveMessage(src entities.DataSource) *Flash {
	if src.Primary {
		return &Flash{Kind: FlashSuccess, Text: MsgSavedPrimary}
	}
	return &Flash{Kind: FlashWarning, Text: MsgSavedFallback}
}

// FilterItems keeps the items whose display name contains search, ignoring
// case. The input slice is never modified.
func FilterItems(items []entities.Item, search string) []entities.Item {
	needle := strings.ToLower(search)
	out := make([]entities.Item, 0, len(items))
	for _, it := range items {
		if needle == "" || strings.Contains(strings.ToLower(it.DisplayName()), needle) {
			out = append(out, it)
		}
	}
	return out
}

// ReportSnapshot is one fetch of the global inventory, already filtered.
type ReportSnapshot struct {
	Source    entities.DataSource
	Message   string
	Rows      []entities.Item
	Total     int
	Search    string
	LoadError string
}

func (s ReportSnapshot) ReadOnly() bool {
	return s.Source.ReadOnly()
}

func (s ReportSnapshot) Empty() bool {
	return len(s.Rows) == 0
}

// ReportPage is everything the report template renders.
type ReportPage struct {
	ReportSnapshot
	State        ReportState
	Flash        *Flash
	AutoCloseSec int
	EditingID    entities.ItemID
}

func (p *ReportPage) ModalOpen(kind string) bool {
	return p.State.IsOpen(ModalKind(kind))
}
