package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes gin binding errors report JSON field names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
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
	}
}

// BindingErrors converts a gin binding failure into field messages. ok is
// false when err is not a validation failure, e.g. malformed JSON.
func BindingErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = bindingMessage(e)
	}
	return out, true
}

func bindingMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "The " + e.Field() + " field is required."
	case "max":
		if e.Kind() == reflect.String {
			return "The " + e.Field() + " field must not be greater than " + e.Param() + " characters."
		}
		return "The " + e.Field() + " field must not be greater than " + e.Param() + "."
	case "min":
		return "The " + e.Field() + " field must be at least " + e.Param() + "."
	default:
		return "The " + e.Field() + " field is invalid."
	}
}
