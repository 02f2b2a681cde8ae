package middleware

import (
	"reflect"
	"strings"

	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// SetupValidator configures the validator with custom tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// Storefront slug: lowercase letters, digits, hyphens
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return identity.ValidateSlug(fl.Field().String()) == nil
	})

	// Consignor split percentage: (0, 100]
	_ = v.RegisterValidation("split_pct", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.IsPositive() && d.LessThanOrEqual(decimal.NewFromInt(100))
	})
}
