package events

import "lab-inventory/internal/entities"

const ItemsChangedEventName = "inventory.items.changed"

type ChangeScope string

const (
	ScopeLaboratory ChangeScope = "laboratory"
	ScopeGlobal     ChangeScope = "global"
)

// ItemsChangedEvent is published after a write accepted by the inventory API.
type ItemsChangedEvent struct {
	Scope  ChangeScope
	LabID  string
	ItemID entities.ItemID
	Action string
}

func (e ItemsChangedEvent) Name() string {
	return ItemsChangedEventName
}
