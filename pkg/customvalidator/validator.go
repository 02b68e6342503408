package customvalidator

import (
	"github.com/go-playground/validator/v10"

	"lab-inventory/internal/entities"
)

// RegisterCustomValidations registers the option-set rules used by the
// laboratory detail forms.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("machine_type", oneOf(entities.ItemTypes)); err != nil {
		return err
	}
	if err := v.RegisterValidation("machine_status", oneOf(entities.ItemStatuses)); err != nil {
		return err
	}
	if err := v.RegisterValidation("maintenance_type", oneOf(entities.MaintenanceTypes)); err != nil {
		return err
	}
	return nil
}

func oneOf(options []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, o := range options {
			if value == o {
				return true
			}
		}
		return false
	}
}
