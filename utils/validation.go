package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"taskhive/models"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the domain tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("service_category", func(fl validator.FieldLevel) bool {
			return models.IsServiceCategory(fl.Field().String())
		})
		_ = v.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
			return models.IsBookingStatus(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidateStruct runs the tag rules and converts failures into a ValidationError
// carrying a per-field message map.
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrServer(err)
	}

	fields := make(map[string]string, len(verrs))
	var first string
	for _, fe := range verrs {
		msg := fieldMessage(fe)
		fields[fe.Field()] = msg
		if first == "" {
			first = msg
		}
	}
	return ErrValidation(first).WithDetail("fields", fields)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be at least " + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "nefield":
		return field + " must differ from " + fe.Param()
	case "service_category":
		return field + " must be one of: " + strings.Join(models.ServiceCategories, ", ")
	case "booking_status":
		return field + " must be one of: " + strings.Join(models.BookingStatuses, ", ")
	default:
		return field + " is invalid"
	}
}
