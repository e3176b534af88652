// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"finledger/internal/models"
)

// maxNameLength mirrors the registry column width.
const maxNameLength = 128

// Register registers all custom validators with the Gin binding engine.
//
// decimal.Decimal fields are presented to the validator as float64, so
// numeric tags such as gte=0 work on amounts.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("registry_name", validateRegistryName)
		_ = v.RegisterValidation("month_label", validateMonthLabel)
	}
}

func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()
		return f
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		f, _ := d.Decimal.Float64()
		return f
	}
	return nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	_, ok := models.ParseTransactionType(fl.Field().String())
	return ok
}

// validateRegistryName accepts card, goal and category names: non-blank after
// trimming and no longer than the column.
func validateRegistryName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	return name != "" && len(name) <= maxNameLength
}

func validateMonthLabel(fl validator.FieldLevel) bool {
	_, err := models.ParseMonthLabel(fl.Field().String())
	return err == nil
}
