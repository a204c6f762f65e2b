package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Get returns the shared validator, using json tag names in messages.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates s and turns validation errors into one readable error.
func Struct(s interface{}) error {
	if err := Get().Struct(s); err != nil {
		return errors.New(GetErrorMsg(err))
	}
	return nil
}

// GetErrorMsg translates validation errors into user-friendly messages
func GetErrorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var errMsgs []string
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			switch tag {
			case "required":
				errMsgs = append(errMsgs, fmt.Sprintf("%s is required", field))
			case "min", "gte":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be at least %s", field, param))
			case "max", "lte":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be at most %s", field, param))
			case "gt":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be greater than %s", field, param))
			case "gtfield":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be after %s", field, param))
			case "len":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be %s characters long", field, param))
			case "oneof":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must be one of [%s]", field, param))
			default:
				errMsgs = append(errMsgs, fmt.Sprintf("%s failed validation (%s)", field, tag))
			}
		}
		return strings.Join(errMsgs, "; ")
	}
	return "invalid request parameters"
}
