package dto

import (
	"encoding/json"

	"lab-inventory/internal/entities"
)

// GlobalItemPayload is the body of global inventory writes.
type GlobalItemPayload struct {
	Code   string `json:"code"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Area   string `json:"area"`
}

// GlobalItemsResponse is GET /laboratories/items.
type GlobalItemsResponse struct {
	Source  string          `json:"source"`
	Message string          `json:"message,omitempty"`
	Data    []entities.Item `json:"data"`
}

// GlobalWriteResponse is returned by POST and PUT on /laboratories/items.
type GlobalWriteResponse struct {
	Source  string          `json:"source"`
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ErrorBody is the optional error payload of the inventory API. Detail is a
// string or a list of {msg} objects.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}
