package dto

import "lab-inventory/internal/entities"

// LabItemPayload is the body of add-item and item replacement requests.
type LabItemPayload struct {
	Code            string `json:"code"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	Area            string `json:"area"`
	AcquisitionDate string `json:"acquisition_date"`
}

type MaintenancePayload struct {
	Technician  string `json:"technician"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
}

// LabItemResponse is returned by PUT /laboratories/{id}/add-item.
type LabItemResponse struct {
	Message string         `json:"message"`
	Item    *entities.Item `json:"item,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
