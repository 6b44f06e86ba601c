package form

import (
	"time"
)

// DateLayout is how calendar dates are typed and displayed.
const DateLayout = "2006-01-02"

// Draft is the in-progress booking. Dates are calendar days held at
// midnight in the form's location; the zero time means unset.
//
// The validate tags are the one rule set used both for step gating and for
// the final check before submission.
type Draft struct {
	FullName       string `json:"fullName" validate:"utf16min=2"`
	PhoneNumber    string `json:"phoneNumber" validate:"utf16min=10,phone"`
	EmailAddress   string `json:"emailAddress" validate:"email"`
	PropertyType   string `json:"propertyType" validate:"required"`
	ServiceAddress string `json:"serviceAddress" validate:"utf16min=10"`

	ServiceType        string `json:"serviceType" validate:"required"`
	SpecificService    string `json:"specificService" validate:"required"`
	UrgencyLevel       string `json:"urgencyLevel" validate:"required"`
	BudgetRange        string `json:"budgetRange"`
	ProblemDescription string `json:"problemDescription" validate:"utf16min=10"`

	PreferredDate   time.Time `json:"preferredDate" validate:"required"`
	PreferredTime   string    `json:"preferredTime" validate:"required"`
	AlternativeDate time.Time `json:"alternativeDate"`
	AlternativeTime string    `json:"alternativeTime"`

	AccessInstructions     string `json:"accessInstructions"`
	SpecialRequests        string `json:"specialRequests"`
	PreferredContactMethod string `json:"preferredContactMethod" validate:"required"`
	BestTimeToCall         string `json:"bestTimeToCall" validate:"required"`
}

// Value returns the display value of f. Dates use DateLayout; unset dates
// and unknown fields are empty.
func (d Draft) Value(f Field) string {
	switch f {
	case PreferredDate:
		return formatDate(d.PreferredDate)
	case AlternativeDate:
		return formatDate(d.AlternativeDate)
	}
	if p := d.text(f); p != nil {
		return *p
	}
	return ""
}

// IsEmpty reports whether no field has been filled in.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// text returns a pointer to the string field f, or nil for dates and
// unknown names.
func (d *Draft) text(f Field) *string {
	switch f {
	case FullName:
		return &d.FullName
	case PhoneNumber:
		return &d.PhoneNumber
	case EmailAddress:
		return &d.EmailAddress
	case PropertyType:
		return &d.PropertyType
	case ServiceAddress:
		return &d.ServiceAddress
	case ServiceType:
		return &d.ServiceType
	case SpecificService:
		return &d.SpecificService
	case UrgencyLevel:
		return &d.UrgencyLevel
	case BudgetRange:
		return &d.BudgetRange
	case ProblemDescription:
		return &d.ProblemDescription
	case PreferredTime:
		return &d.PreferredTime
	case AlternativeTime:
		return &d.AlternativeTime
	case AccessInstructions:
		return &d.AccessInstructions
	case SpecialRequests:
		return &d.SpecialRequests
	case PreferredContactMethod:
		return &d.PreferredContactMethod
	case BestTimeToCall:
		return &d.BestTimeToCall
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// dateOf truncates t to midnight of its calendar day in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
