package views

import "lab-inventory/internal/entities"

// LaboratoriesPage is the data of the laboratory list.
type LaboratoriesPage struct {
	Labs      []entities.Laboratory
	LoadError string
}
