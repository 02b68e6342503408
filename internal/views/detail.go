package views

import (
	"lab-inventory/internal/dto"
	"lab-inventory/internal/entities"
)

// DetailDefaults are the placeholders applied to blank detail form fields.
type DetailDefaults struct {
	AddAcquisitionDate    string
	UpdateAcquisitionDate string
	UpdateArea            string
	HistoryDate           string
}

// DetailState is the session state of one laboratory detail screen.
type DetailState struct {
	CRUD[dto.LabItemForm]
	Maintenance dto.MaintenanceForm `json:"maintenance"`
}

func DefaultLabItemForm() dto.LabItemForm {
	return dto.LabItemForm{Type: entities.TypeComputer, Status: entities.StatusOperational}
}

func DefaultMaintenanceForm() dto.MaintenanceForm {
	return dto.MaintenanceForm{Type: entities.MaintenancePreventive}
}

func NewDetailState() *DetailState {
	s := &DetailState{}
	s.Form = DefaultLabItemForm()
	s.Maintenance = DefaultMaintenanceForm()
	return s
}

// OpenModal shows kind for item. The update dialog is pre-filled from the
// item, mapping its display name onto the editable code.
func (s *DetailState) OpenModal(kind ModalKind, item *entities.Item) {
	var id entities.ItemID
	if item != nil {
		id = item.ID
	}
	s.Open(kind, id)
	if kind == ModalUpdate && item != nil {
		s.Form = dto.LabItemForm{
			Code:   item.DisplayName(),
			Type:   item.Type,
			Status: item.Status,
			Area:   item.Area,
			Date:   item.AcquisitionDate.String,
		}
	}
	if kind == ModalAdd {
		s.Selected = ""
	}
}

func (s *DetailState) ResetItemForm() {
	s.Form = DefaultLabItemForm()
}

func (s *DetailState) ResetMaintenanceForm() {
	s.Maintenance = DefaultMaintenanceForm()
}

// AddPayload builds the add-item body; a blank date gets the add placeholder.
func AddPayload(form dto.LabItemForm, d DetailDefaults) dto.LabItemPayload {
	date := form.Date
	if date == "" {
		date = d.AddAcquisitionDate
	}
	return dto.LabItemPayload{
		Code:            form.Code,
		Type:            form.Type,
		Status:          form.Status,
		Area:            form.Area,
		AcquisitionDate: date,
	}
}

// UpdatePayload builds the full replacement body; blank area and date get
// the update placeholders.
func UpdatePayload(form dto.LabItemForm, d DetailDefaults) dto.LabItemPayload {
	area, date := form.Area, form.Date
	if area == "" {
		area = d.UpdateArea
	}
	if date == "" {
		date = d.UpdateAcquisitionDate
	}
	return dto.LabItemPayload{
		Code:            form.Code,
		Type:            form.Type,
		Status:          form.Status,
		Area:            area,
		AcquisitionDate: date,
	}
}

func MaintenancePayload(form dto.MaintenanceForm) dto.MaintenancePayload {
	return dto.MaintenancePayload{
		Technician:  form.Technician,
		Type:        form.Type,
		Description: form.Description,
		Date:        form.Date,
	}
}

// HistoryRow is one line of the four-column maintenance history.
type HistoryRow struct {
	Date        string
	Type        string
	Technician  string
	Description string
}

func HistoryRows(item *entities.Item, datePlaceholder string) []HistoryRow {
	if item == nil {
		return nil
	}
	rows := make([]HistoryRow, 0, len(item.MaintenanceHistory))
	for _, entry := range item.MaintenanceHistory {
		date := entry.Date.String
		if !entry.Date.Valid || date == "" {
			date = datePlaceholder
		}
		rows = append(rows, HistoryRow{
			Date:        date,
			Type:        entry.Type,
			Technician:  entry.Technician,
			Description: entry.Description,
		})
	}
	return rows
}

// DetailPage is everything the laboratory template renders.
type DetailPage struct {
	LabID     string
	Lab       *entities.Laboratory
	LoadError string
	State     DetailState
	Selected  *entities.Item
	History   []HistoryRow
	Flash     *Flash

	TypeOptions        []string
	StatusOptions      []string
	MaintenanceOptions []string
}

func NewDetailPage(labID string, lab *entities.Laboratory, state DetailState, defaults DetailDefaults) *DetailPage {
	page := &DetailPage{
		LabID:              labID,
		Lab:                lab,
		State:              state,
		TypeOptions:        entities.ItemTypes,
		StatusOptions:      entities.ItemStatuses,
		MaintenanceOptions: entities.MaintenanceTypes,
	}
	if state.Selected != "" {
		if it, ok := lab.FindItem(state.Selected); ok {
			page.Selected = &it
			page.History = HistoryRows(&it, defaults.HistoryDate)
		}
	}
	return page
}

func (p *DetailPage) ItemCount() int {
	if p.Lab == nil {
		return 0
	}
	return len(p.Lab.Items)
}

func (p *DetailPage) Empty() bool {
	return p.ItemCount() == 0
}

func (p *DetailPage) ModalOpen(kind string) bool {
	return p.State.IsOpen(ModalKind(kind))
}
