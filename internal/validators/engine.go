package validators

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

// engine returns the shared validator instance. Field names in reported
// errors are the JSON names of the struct fields.
func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// structError converts validator.ValidationErrors into an [ErrInvalidDeal]
// wrapping a readable list of violations.
func structError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidDeal, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidDeal, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
	return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
}
