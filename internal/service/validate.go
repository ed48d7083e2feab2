package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures under the wire field name (form tag), not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkFields runs struct validation and folds every failure into a field
// error map. Rules are independent; a request may fail several at once and
// all of them are reported.
func checkFields(in any) map[string]string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError only happens on a non-struct input.
		fields["input"] = "invalid input"
		return fields
	}
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "the " + fe.Field() + " field is required"
	case "uuid":
		return "the " + fe.Field() + " field must be a valid id"
	default:
		return "the " + fe.Field() + " field is invalid"
	}
}
