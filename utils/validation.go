package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if a number is positive
func ValidatePositive(value float64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateItemData validates basic item data
func ValidateItemData(name string, price float64) error {
	if err := ValidateRequired(name, "item name"); err != nil {
		return err
	}
	if err := ValidatePositive(price, "item price"); err != nil {
		return err
	}
	return nil
}
