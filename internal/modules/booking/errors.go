package booking

import (
	"errors"
	"strings"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrStore         = errors.New("booking store failure")
)

// MissingFieldsError names the required fields that were absent or empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Is(target error) bool { return target == ErrMissingFields }
