package serializer

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f)
	})
	v.RegisterCustomTypeFunc(optionalValue,
		Optional[string]{}, Optional[int]{}, Optional[int64]{},
		Optional[float64]{}, Optional[bool]{},
	)
	return v
}

func optionalValue(v reflect.Value) any {
	if o, ok := v.Interface().(interface{ anyValue() any }); ok {
		return o.anyValue()
	}
	return nil
}

// validateStruct runs `validate` struct tags and converts failures.
func validateStruct(v any) *ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FromValidator(verrs)
	}
	return NewValidationError(FieldBody, CodeInvalid, err.Error())
}

// FromValidator converts go-playground validator errors (from this package or
// from gin binding) into a ValidationError keyed by JSON field names.
func FromValidator(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{}
	for _, fe := range errs {
		out.Add(fe.Field(), fe.Tag(), validatorMessage(fe))
	}
	return out
}

func validatorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min", "max", "len", "gt", "gte", "lt", "lte":
		return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
