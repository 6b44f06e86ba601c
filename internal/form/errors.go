package form

import (
	"errors"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrSubmitting = errors.New("submission in progress")
	ErrSubmit     = errors.New("submission failed")
)

// GenericSubmitMessage is shown when the collaborator gives no reason.
const GenericSubmitMessage = "There was an error submitting your request. Please try again."

// SubmittedMessage is shown after a successful submission.
const SubmittedMessage = "Booking request submitted successfully! We will contact you soon."

// ValidationError lists the fields that blocked a step.
type ValidationError struct {
	Step   Step
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		names = append(names, string(fe.Field))
	}
	return "validation error: " + strings.Join(names, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// SubmissionError is a failed hand-off to the submission collaborator.
// Message is safe to show to the customer.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return "submission failed: " + e.Err.Error()
	}
	return "submission failed: " + e.Message
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Is(target error) bool { return target == ErrSubmit }
