package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// Messages maps "field.tag" (for example "email.required") to a user-facing message.
type Messages map[string]string

// Struct runs the `validate` tags of dst and appends one error per failing field to errs.
// Fields that already carry an error are left alone.
func Struct(dst any, messages Messages, errs *Errors) error {
	err := instance().Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if errs.Has(field) {
			continue
		}
		message, ok := messages[field+"."+fe.Tag()]
		if !ok {
			message = field + " is invalid"
		}
		errs.Add(field, message)
	}
	return nil
}
