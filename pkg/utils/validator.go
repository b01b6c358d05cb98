package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("project_role", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(fl.Field().String()) {
			case "admin", "member":
				return true
			}
			return false
		})
		_ = validate.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(fl.Field().String()) {
			case "", "low", "medium", "high":
				return true
			}
			return false
		})
	})
	return validate
}

// ValidateStruct ตรวจ struct ตาม tag `validate`
func ValidateStruct(s any) error {
	return getValidator().Struct(s)
}

// GetValidationErrors แปลง error ของ validator เป็น map field -> ข้อความ
func GetValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		out[fe.Field()] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "project_role":
		return "must be Admin or Member"
	case "priority":
		return "must be Low, Medium or High"
	default:
		return "is invalid"
	}
}

// ValidateVar ตรวจค่าเดี่ยว เช่น query parameter
func ValidateVar(v any, tag string) error {
	return getValidator().Var(v, tag)
}
