// Package validate holds the pure field-shape checks applied before any write.
package validate

import "fmt"

const (
	PhoneNumberMinLen = 10
	PhoneNumberMaxLen = 15
	PinCodeLen        = 6
)

// FieldError reports a malformed field together with the rejected value.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Field, e.Value, e.Reason)
}

// PhoneNumber checks for a digits-only string of 10 to 15 characters.
func PhoneNumber(value string) error {
	if !digitsOnly(value) {
		return &FieldError{Field: "phone_number", Value: value, Reason: "must contain only numbers"}
	}
	if len(value) < PhoneNumberMinLen || len(value) > PhoneNumberMaxLen {
		return &FieldError{Field: "phone_number", Value: value, Reason: fmt.Sprintf("must be %d to %d digits", PhoneNumberMinLen, PhoneNumberMaxLen)}
	}
	return nil
}

// PinCode checks for a digits-only string of exactly 6 characters.
func PinCode(value string) error {
	if !digitsOnly(value) {
		return &FieldError{Field: "pin_code", Value: value, Reason: "must contain only numbers"}
	}
	if len(value) != PinCodeLen {
		return &FieldError{Field: "pin_code", Value: value, Reason: fmt.Sprintf("must be exactly %d digits", PinCodeLen)}
	}
	return nil
}

func digitsOnly(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
