package form

import (
	"homebooking/internal/pkg/validator"
)

// FieldError is a failed field together with the message shown next to it.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

var messages = map[Field]string{
	FullName:               "Full name must be at least 2 characters.",
	PhoneNumber:            "Please enter a valid phone number.",
	EmailAddress:           "Please enter a valid email address.",
	PropertyType:           "Please select a property type.",
	ServiceAddress:         "Please provide a complete address including barangay, city, and landmarks.",
	ServiceType:            "Please select a service type.",
	SpecificService:        "Please select a specific service.",
	UrgencyLevel:           "Please select an urgency level.",
	ProblemDescription:     "Please provide a detailed problem description.",
	PreferredDate:          "Please select a preferred date.",
	PreferredTime:          "Please select a preferred time.",
	PreferredContactMethod: "Please select a preferred contact method.",
	BestTimeToCall:         "Please select the best time to call.",
}

const phoneFormatMessage = "Please enter a valid phone number format."

// Message returns the user-facing message for a rule failure on f.
func Message(f Field, tag string) string {
	if f == PhoneNumber && tag == "phone" {
		return phoneFormatMessage
	}
	if m, ok := messages[f]; ok {
		return m
	}
	return "Invalid value."
}

// Validator checks a draft, either one step's fields or all of them.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStep checks only the fields belonging to step. Fields on other
// steps are never evaluated.
func (v *Validator) ValidateStep(d Draft, step Step) []FieldError {
	specs := Fields(step)
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.GoName)
	}
	return toFieldErrors(validator.Partial(d, names...))
}

// ValidateAll checks the complete draft.
func (v *Validator) ValidateAll(d Draft) []FieldError {
	return toFieldErrors(validator.Struct(d))
}

func toFieldErrors(issues []validator.Issue) []FieldError {
	if len(issues) == 0 {
		return nil
	}
	out := make([]FieldError, 0, len(issues))
	for _, is := range issues {
		f := Field(is.Field)
		out = append(out, FieldError{Field: f, Message: Message(f, is.Tag)})
	}
	return out
}
