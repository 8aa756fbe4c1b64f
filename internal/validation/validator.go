package validation

import (
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their JSON name.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// MissingFields lists the JSON names of fields that failed the required rule.
// It returns nil when err is not a validation error.
func MissingFields(err error) []string {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return nil
	}
	var out []string
	for _, fe := range ve {
		if fe.Tag() == "required" {
			out = append(out, fe.Field())
		}
	}
	return out
}
