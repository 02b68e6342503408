package dto

// LabItemForm is bound from the add and update dialogs of the detail view.
type LabItemForm struct {
	Code   string `form:"code" json:"code"`
	Type   string `form:"type" json:"type" validate:"machine_type"`
	Status string `form:"status" json:"status" validate:"machine_status"`
	Area   string `form:"area" json:"area"`
	Date   string `form:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type MaintenanceForm struct {
	Technician  string `form:"technician" json:"technician"`
	Type        string `form:"type" json:"type" validate:"maintenance_type"`
	Date        string `form:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string `form:"description" json:"description"`
}

// GlobalItemForm is bound from the report dialogs; type and status are free text.
type GlobalItemForm struct {
	Code   string `form:"code" json:"code" validate:"required"`
	Type   string `form:"type" json:"type"`
	Status string `form:"status" json:"status"`
	Area   string `form:"area" json:"area"`
}
