// Package optional implements optional values.
package optional

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
)

// Value is an optional value. The zero value of this structure
// is equivalent to the one you get when calling [None].
type Value[T any] struct {
	// indirect is the indirect pointer to the value.
	indirect *T
}

// None constructs an empty [Value].
func None[T any]() Value[T] {
	return Value[T]{nil}
}

// Some constructs a [Value] wrapping the given value. As a special
// case, if T is a pointer type and value is a nil pointer, this
// constructor is equivalent to calling [None].
func Some[T any](value T) Value[T] {
	v := Value[T]{}
	maybeSetFromValue(&v, value)
	return v
}

// maybeSetFromValue sets the underlying value unless the given
// value is a nil pointer, in which case v becomes empty.
func maybeSetFromValue[T any](v *Value[T], value T) {
	rva := reflect.ValueOf(value)
	if rva.Kind() == reflect.Pointer && rva.IsNil() {
		v.indirect = nil
		return
	}
	v.indirect = &value
}

// IsNone returns whether this [Value] is empty.
func (v Value[T]) IsNone() bool {
	return v.indirect == nil
}

// Unwrap returns the underlying value. It panics with an error
// saying "is none" if the [Value] is empty.
func (v Value[T]) Unwrap() T {
	if v.IsNone() {
		panic(errors.New("is none"))
	}
	return *v.indirect
}

// UnwrapOr returns the underlying value or the given fallback
// when this [Value] is empty.
func (v Value[T]) UnwrapOr(fallback T) T {
	if v.IsNone() {
		return fallback
	}
	return v.Unwrap()
}

// jsonNull is the JSON representation of a null value.
var jsonNull = []byte(`null`)

// UnmarshalJSON implements json.Unmarshaler. A JSON null unmarshals
// to an empty [Value] rather than being an error.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		v.indirect = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		v.indirect = nil
		return err
	}
	maybeSetFromValue(v, value)
	return nil
}

// MarshalJSON implements json.Marshaler. An empty [Value] marshals
// to the JSON null value.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.IsNone() {
		return jsonNull, nil
	}
	return json.Marshal(*v.indirect)
}
