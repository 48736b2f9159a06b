package stage

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report options under their configuration names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the `validate` tags of an options struct. The first failing
// field is returned as an *InvalidOptionError.
func Validate(opts any) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	out := &InvalidOptionError{
		Option: fe.Field(),
		Value:  fe.Value(),
		Rule:   fe.Tag(),
	}
	if fe.Param() != "" {
		out.Rule = fe.Tag() + "=" + fe.Param()
	}
	if fe.Tag() == "oneof" {
		out.Allowed = strings.Fields(fe.Param())
	}
	return out
}
