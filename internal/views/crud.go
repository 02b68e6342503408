// Package views holds the per-session state of the detail and report
// screens and the pure rules that drive it. Nothing here performs I/O.
package views

import "lab-inventory/internal/entities"

type ModalKind string

const (
	ModalAdd         ModalKind = "add"
	ModalHistory     ModalKind = "history"
	ModalMaintenance ModalKind = "maintenance"
	ModalUpdate      ModalKind = "update"
	ModalEdit        ModalKind = "edit"
)

// ParseModal accepts only the kinds listed in allowed.
func ParseModal(raw string, allowed ...ModalKind) (ModalKind, bool) {
	for _, k := range allowed {
		if string(k) == raw {
			return k, true
		}
	}
	return "", false
}

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message shown on the next render.
type Flash struct {
	Kind FlashKind `json:"kind"`
	Text string    `json:"text"`
}

// Confirmation is a destructive action waiting for an explicit yes.
type Confirmation struct {
	ItemID entities.ItemID `json:"item_id"`
	Prompt string          `json:"prompt"`
}

// CRUD is the list + modal + form state shared by both screens. F is the
// form bound by the screen's add dialog.
type CRUD[F any] struct {
	Modals   map[ModalKind]bool `json:"modals,omitempty"`
	Selected entities.ItemID    `json:"selected,omitempty"`
	Form     F                  `json:"form"`
	Flash    *Flash             `json:"flash,omitempty"`
	Confirm  *Confirmation      `json:"confirm,omitempty"`
}

func (c *CRUD[F]) Open(kind ModalKind, selected entities.ItemID) {
	if c.Modals == nil {
		c.Modals = make(map[ModalKind]bool)
	}
	c.Modals[kind] = true
	if selected != "" {
		c.Selected = selected
	}
}

func (c *CRUD[F]) Close(kind ModalKind) {
	delete(c.Modals, kind)
}

func (c CRUD[F]) IsOpen(kind ModalKind) bool {
	return c.Modals[kind]
}

func (c *CRUD[F]) Notify(kind FlashKind, text string) {
	c.Flash = &Flash{Kind: kind, Text: text}
}

// TakeFlash returns the pending flash and clears it.
func (c *CRUD[F]) TakeFlash() *Flash {
	f := c.Flash
	c.Flash = nil
	return f
}

func (c *CRUD[F]) AskConfirm(id entities.ItemID, prompt string) {
	c.Confirm = &Confirmation{ItemID: id, Prompt: prompt}
}

// Confirmed reports whether id is the item awaiting confirmation.
func (c CRUD[F]) Confirmed(id entities.ItemID) bool {
	return c.Confirm != nil && c.Confirm.ItemID == id
}

func (c *CRUD[F]) ClearConfirm() {
	c.Confirm = nil
}
