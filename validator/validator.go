package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"

	"stayhub/errors"
)

var (
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]{6}$`)
)

var validate = newValidate()

// newValidate reads the same `binding` tags gin uses, so services can
// re-check DTOs that did not come through a handler.
func newValidate() *playground.Validate {
	v := playground.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// RegisterGinTagNames makes gin's binding errors report json field names.
func RegisterGinTagNames() {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// Struct validates s and returns a ValidationError joining every failure.
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return FromBindError(err)
	}
	return nil
}

// FromBindError converts a binding or validation failure into a ValidationError.
func FromBindError(err error) error {
	var fieldErrs playground.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return errors.Validation(strings.Join(msgs, ", "))
	}
	return errors.NewAppError(errors.ErrCodeValidation, "Invalid request body: "+err.Error(), err)
}

func fieldMessage(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidatePhone kiểm tra số điện thoại 10 chữ số
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.Validation("Phone number must be 10 digits")
	}
	return nil
}

func ValidatePincode(pin string) error {
	if !pinRegex.MatchString(pin) {
		return errors.Validation("Pincode must be 6 digits")
	}
	return nil
}
