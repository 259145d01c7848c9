// Package errors defines the unified error type used across keysort.
// Every package-specific error family (schema build failures, encode
// failures, config problems) is expressed as a Category/Code pair
// wrapped in a KeysortError, so callers can use errors.As with the
// standard library while still getting a stable, loggable error shape.
package errors

import (
	"errors"
	"fmt"
)

// Category groups related error codes, e.g. all schema-build failures.
type Category string

const (
	CategorySchema Category = "schema"
	CategoryEncode Category = "encode"
	CategoryConfig Category = "config"
)

// Code identifies a specific failure within a Category.
type Code string

const (
	CodeUnknownKeyColumn  Code = "unknown_key_column"
	CodeDuplicateColumn   Code = "duplicate_column"
	CodeUnknownTypeString Code = "unknown_type_string"

	CodeTypeMismatch Code = "type_mismatch"
	CodeUnsupported  Code = "unsupported"

	CodeConfigLoadFailed   Code = "config_load_failed"
	CodeConfigInvalidValue Code = "config_invalid_value"
)

// KeysortError is the concrete error type returned by keysort's public
// APIs. It carries enough structure for a caller to branch on
// Category/Code without parsing the message.
type KeysortError struct {
	Category Category
	Code     Code
	Message  string
	Cause    error
}

func (e *KeysortError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s/%s: %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s/%s: %s", e.Category, e.Code, e.Message)
}

func (e *KeysortError) Unwrap() error {
	return e.Cause
}

// New builds a KeysortError. cause may be nil.
func New(category Category, code Code, message string, cause error) *KeysortError {
	return &KeysortError{Category: category, Code: code, Message: message, Cause: cause}
}

// Is reports whether err is a *KeysortError with the given code.
func Is(err error, code Code) bool {
	var ke *KeysortError
	if errors.As(err, &ke) {
		return ke.Code == code
	}
	return false
}

// IsAny reports whether err matches any of the given codes.
func IsAny(err error, codes ...Code) bool {
	for _, c := range codes {
		if Is(err, c) {
			return true
		}
	}
	return false
}
