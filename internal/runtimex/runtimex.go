// Package runtimex contains runtime extensions. This package is inspired to
// https://pkg.go.dev/github.com/m-lab/go/rtx, except that it's simpler.
package runtimex

import (
	"errors"
	"fmt"
)

// PanicOnError calls panic() if err is not nil. The type passed
// to panic is an error wrapping err with the given message.
func PanicOnError(err error, message string) {
	if err != nil {
		panic(fmt.Errorf("%s: %w", message, err))
	}
}

// Assert calls panic with the given message if assertion is false.
func Assert(assertion bool, message string) {
	PanicIfFalse(assertion, message)
}

// PanicIfFalse calls panic with the given message if assertion is false.
func PanicIfFalse(assertion bool, message string) {
	if !assertion {
		panic(errors.New(message))
	}
}

// PanicIfTrue calls panic with the given message if assertion is true.
func PanicIfTrue(assertion bool, message string) {
	PanicIfFalse(!assertion, message)
}

// Try0 calls PanicOnError if err is not nil.
func Try0(err error) {
	PanicOnError(err, "Try0")
}

// Try1 is like Try0 but returns t1 on success.
func Try1[T1 any](t1 T1, err error) T1 {
	Try0(err)
	return t1
}
