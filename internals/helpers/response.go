package helper

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"medaid_backend/internals/helpers/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator reports fields by their json name so clients can match request keys.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return snakeCase(fld.Name)
		}
		return name
	})
	return v
}

// ValidateStruct runs the validator tags of s and converts field failures into a
// validation error carrying one message per field.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperr.Validation("invalid input")
	}

	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		fields[name] = append(fields[name], fieldMessage(name, fe))
	}
	return apperr.ValidationFields("validation failed", fields)
}

func snakeCase(ns string) string {
	var b strings.Builder
	for i, r := range ns {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return "invalid email format"
	case "min":
		return name + " must be at least " + fe.Param() + " characters"
	case "max":
		return name + " must be at most " + fe.Param() + " characters"
	case "gt":
		return name + " must be greater than " + fe.Param()
	case "oneof":
		return name + " must be one of " + fe.Param()
	case "uuid":
		return name + " must be a valid UUID"
	default:
		return "invalid format"
	}
}

// FromError renders err through the standard error envelope. Taxonomy errors keep
// their status and message; anything else is logged with request context and
// answered with a generic 500.
func FromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal("internal server error", err)
	}

	if ae.Kind == apperr.KindInternal {
		log.Printf("[ERROR] id=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), err)
		return JsonError(c, fiber.StatusInternalServerError, ae.Message)
	}
	if ae.Kind == apperr.KindValidation && len(ae.Fields) > 0 {
		return JsonValidationError(c, ae.Message, ae.Fields)
	}
	return JsonError(c, ae.HTTPStatus(), ae.Message)
}
