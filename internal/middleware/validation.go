package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var typeKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// validTypeKey enforces the notification type key format: lowercase
// snake_case, starting with a letter. Keys are referenced verbatim by
// dispatch callers, so the format is locked down at the edge.
func validTypeKey(fl validator.FieldLevel) bool {
	return typeKeyPattern.MatchString(fl.Field().String())
}

// RegisterValidators installs custom binding validators and reports
// field names by their json tag. Called once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("type_key", validTypeKey); err != nil {
		return err
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	return nil
}
