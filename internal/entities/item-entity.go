package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
)

// Option sets offered by the laboratory detail selectors.
const (
	TypeComputer = "Computadora"
	TypePrinter  = "Impresora"

	StatusOperational  = "Operativa"
	StatusOutOfService = "Fuera de Servicio"

	MaintenancePreventive = "Preventivo"
	MaintenanceCorrective = "Correctivo"
)

var (
	ItemTypes        = []string{TypeComputer, TypePrinter}
	ItemStatuses     = []string{StatusOperational, StatusOutOfService}
	MaintenanceTypes = []string{MaintenancePreventive, MaintenanceCorrective}
)

// ItemID is a server-assigned identifier. Laboratory documents use string
// ids while the global inventory uses integers; both decode here.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

func (id ItemID) String() string { return string(id) }

type MaintenanceEntry struct {
	ID          string      `json:"id,omitempty"`
	Date        null.String `json:"date"`
	Type        string      `json:"type"`
	Technician  string      `json:"technician"`
	Description string      `json:"description"`
}

type Item struct {
	ID                 ItemID             `json:"id"`
	Name               string             `json:"name,omitempty"`
	Code               string             `json:"code,omitempty"`
	Type               string             `json:"type"`
	Status             string             `json:"status"`
	Area               string             `json:"area"`
	AcquisitionDate    null.String        `json:"acquisition_date"`
	MaintenanceHistory []MaintenanceEntry `json:"maintenance_history"`
}

// DisplayName is the name when the record has one, else its code.
func (i Item) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Code
}

// Operational reports whether the item is in service.
func (i Item) Operational() bool {
	return i.Status == StatusOperational
}

// StatusLabel is the upper-cased status shown on the status chip.
func (i Item) StatusLabel() string {
	if i.Status == "" {
		return "DESCONOCIDO"
	}
	return strings.ToUpper(i.Status)
}
