package serializer

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type presence uint8

const (
	absent presence = iota
	null
	set
)

// Optional is a payload field that may be absent, explicitly null, or hold a value.
// The zero value is absent.
type Optional[T any] struct {
	value T
	state presence
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, state: set}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{state: null}
}

// FromPtr maps nil to absent and anything else to Some(*p).
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Optional[T]{}
	}
	return Some(*p)
}

// IsSet reports whether the Optional holds a value.
func (o Optional[T]) IsSet() bool { return o.state == set }

// IsNull reports whether the Optional was explicitly null.
func (o Optional[T]) IsNull() bool { return o.state == null }

// IsPresent reports whether the field appeared in the payload at all, null included.
func (o Optional[T]) IsPresent() bool { return o.state != absent }

// IsZero reports whether the field is absent. Used by `omitzero`.
func (o Optional[T]) IsZero() bool { return o.state == absent }

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.state == set
}

// ValueOr returns the value, or def when nothing is set.
func (o Optional[T]) ValueOr(def T) T {
	if o.state == set {
		return o.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil.
func (o Optional[T]) Ptr() *T {
	if o.state != set {
		return nil
	}
	v := o.value
	return &v
}

func (o Optional[T]) String() string {
	switch o.state {
	case set:
		return fmt.Sprint(o.value)
	case null:
		return "null"
	default:
		return "<absent>"
	}
}

// MarshalJSON writes the value, or null when absent or null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.state != set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON is only called when the key is present, so absent stays absent.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value, o.state = zero, null
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value, o.state = v, set
	return nil
}

// Value implements driver.Valuer; anything but a set value is stored as NULL.
func (o Optional[T]) Value() (driver.Value, error) {
	return sql.Null[T]{V: o.value, Valid: o.state == set}.Value()
}

// Scan implements sql.Scanner; a NULL column scans as absent.
func (o *Optional[T]) Scan(src any) error {
	var n sql.Null[T]
	if err := n.Scan(src); err != nil {
		return err
	}
	if !n.Valid {
		*o = Optional[T]{}
		return nil
	}
	*o = Some(n.V)
	return nil
}

// anyValue feeds the validator: nil for absent/null, the raw value otherwise.
func (o Optional[T]) anyValue() any {
	if o.state != set {
		return nil
	}
	return o.value
}
