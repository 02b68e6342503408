package entities

type Laboratory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Items    []Item `json:"items"`
}

// FindItem returns the item with the given id.
func (l *Laboratory) FindItem(id ItemID) (Item, bool) {
	if l == nil {
		return Item{}, false
	}
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
