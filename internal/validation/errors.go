package validation

import (
	"errors"
	"strings"
)

type FieldError struct {
	Field   string
	Message string
}

// Errors collects every field problem found in one input. The zero value is ready to use.
type Errors struct {
	items []FieldError
}

func (e *Errors) Add(field, message string) {
	e.items = append(e.items, FieldError{Field: field, Message: message})
}

// Has reports whether field already has an error, so later checks on it can be skipped.
func (e *Errors) Has(field string) bool {
	for _, item := range e.items {
		if item.Field == field {
			return true
		}
	}
	return false
}

func (e *Errors) Empty() bool {
	return e == nil || len(e.items) == 0
}

func (e *Errors) Fields() []FieldError {
	if e == nil {
		return nil
	}
	out := make([]FieldError, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Errors) Message(field string) string {
	for _, item := range e.items {
		if item.Field == field {
			return item.Message
		}
	}
	return ""
}

// Err returns e as an error, or nil when nothing was collected.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	messages := make([]string, 0, len(e.items))
	for _, item := range e.items {
		messages = append(messages, item.Message)
	}
	return strings.Join(messages, "; ")
}

func As(err error) (*Errors, bool) {
	var verrs *Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// Single builds an Errors holding one field error.
func Single(field, message string) *Errors {
	errs := &Errors{}
	errs.Add(field, message)
	return errs
}
