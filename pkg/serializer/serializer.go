// Package serializer turns raw JSON payloads into typed shapes.
//
// Decoding is strict about types and about fields tagged `serializer:"required"`:
// such a field must be present and non-null. Other fields may be absent; use
// Optional to tell absence from an explicit null. Unknown keys are ignored.
// After decoding, `validate` struct tags are checked and, when the shape
// implements Validate() error, that hook runs last.
package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Validator is implemented by shapes with rules beyond types and presence.
type Validator interface {
	Validate() error
}

// Decode builds a T from a JSON object.
func Decode[T any](data []byte) (T, error) {
	var out T

	t := reflect.TypeOf(out)
	if t == nil || t.Kind() != reflect.Struct {
		return out, fmt.Errorf("serializer: %T is not a struct shape", out)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return out, NewValidationError(FieldBody, CodeInvalid, "payload must be a JSON object")
	}

	verr := &ValidationError{}
	if err := json.Unmarshal(data, &out); err != nil {
		addDecodeError(verr, err)
	}

	for _, f := range describe(t).fields {
		if !f.required {
			continue
		}
		v, ok := raw[f.name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			if !verr.HasField(f.name, CodeType) {
				verr.Add(f.name, CodeRequired, "field required")
			}
		}
	}
	if !verr.Empty() {
		return out, verr
	}

	if tagErr := validateStruct(out); tagErr != nil {
		return out, tagErr
	}

	if err := runHook(&out); err != nil {
		return out, err
	}
	return out, nil
}

// DecodeMap builds a T from a field-name to raw-value mapping.
func DecodeMap[T any](m map[string]any) (T, error) {
	var out T
	if m == nil {
		m = map[string]any{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return out, NewValidationError(FieldBody, CodeInvalid, err.Error())
	}
	return Decode[T](data)
}

// Encode serializes a shape to JSON.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// ToMap serializes a shape into a generic map. Numbers stay json.Number.
func ToMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func addDecodeError(verr *ValidationError, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = FieldBody
		}
		verr.Add(field, CodeType, fmt.Sprintf("expected %s, got %s", typeName(typeErr.Type), typeErr.Value))
		return
	}
	verr.Add(FieldBody, CodeInvalid, err.Error())
}

// typeName reports Optional[T] as T.
func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName("value"); ok {
			return f.Type.String()
		}
	}
	return t.String()
}

func runHook[T any](out *T) error {
	h, ok := any(out).(Validator)
	if !ok {
		h, ok = any(*out).(Validator)
	}
	if !ok {
		return nil
	}
	err := h.Validate()
	if err == nil {
		return nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return NewValidationError(FieldBody, CodeInvalid, err.Error())
}
