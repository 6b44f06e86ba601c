package form

import (
	"context"
	"fmt"
	"time"
)

// TimestampLayout matches the ISO-8601 form produced by browsers
// (millisecond precision, UTC, Z suffix).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload is the serialized draft handed to the submission collaborator.
// Dates are ISO-8601 timestamps, or null when unset.
type Payload struct {
	FullName       string `json:"fullName"`
	PhoneNumber    string `json:"phoneNumber"`
	EmailAddress   string `json:"emailAddress"`
	PropertyType   string `json:"propertyType"`
	ServiceAddress string `json:"serviceAddress"`

	ServiceType        string `json:"serviceType"`
	SpecificService    string `json:"specificService"`
	UrgencyLevel       string `json:"urgencyLevel"`
	BudgetRange        string `json:"budgetRange"`
	ProblemDescription string `json:"problemDescription"`

	PreferredDate   *string `json:"preferredDate"`
	PreferredTime   string  `json:"preferredTime"`
	AlternativeDate *string `json:"alternativeDate"`
	AlternativeTime string  `json:"alternativeTime"`

	AccessInstructions     string `json:"accessInstructions"`
	SpecialRequests        string `json:"specialRequests"`
	PreferredContactMethod string `json:"preferredContactMethod"`
	BestTimeToCall         string `json:"bestTimeToCall"`
}

// Result is the collaborator's answer.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Submitter receives a completed booking.
type Submitter interface {
	Submit(ctx context.Context, p Payload) (*Result, error)
}

// NewPayload serializes d.
func NewPayload(d Draft) Payload {
	return Payload{
		FullName:               d.FullName,
		PhoneNumber:            d.PhoneNumber,
		EmailAddress:           d.EmailAddress,
		PropertyType:           d.PropertyType,
		ServiceAddress:         d.ServiceAddress,
		ServiceType:            d.ServiceType,
		SpecificService:        d.SpecificService,
		UrgencyLevel:           d.UrgencyLevel,
		BudgetRange:            d.BudgetRange,
		ProblemDescription:     d.ProblemDescription,
		PreferredDate:          timestamp(d.PreferredDate),
		PreferredTime:          d.PreferredTime,
		AlternativeDate:        timestamp(d.AlternativeDate),
		AlternativeTime:        d.AlternativeTime,
		AccessInstructions:     d.AccessInstructions,
		SpecialRequests:        d.SpecialRequests,
		PreferredContactMethod: d.PreferredContactMethod,
		BestTimeToCall:         d.BestTimeToCall,
	}
}

// Draft rebuilds a draft from p, placing dates on their calendar day in loc.
func (p Payload) Draft(loc *time.Location) (Draft, error) {
	preferred, err := parseTimestamp(p.PreferredDate, loc)
	if err != nil {
		return Draft{}, fmt.Errorf("preferredDate: %w", err)
	}
	alternative, err := parseTimestamp(p.AlternativeDate, loc)
	if err != nil {
		return Draft{}, fmt.Errorf("alternativeDate: %w", err)
	}

	return Draft{
		FullName:               p.FullName,
		PhoneNumber:            p.PhoneNumber,
		EmailAddress:           p.EmailAddress,
		PropertyType:           p.PropertyType,
		ServiceAddress:         p.ServiceAddress,
		ServiceType:            p.ServiceType,
		SpecificService:        p.SpecificService,
		UrgencyLevel:           p.UrgencyLevel,
		BudgetRange:            p.BudgetRange,
		ProblemDescription:     p.ProblemDescription,
		PreferredDate:          preferred,
		PreferredTime:          p.PreferredTime,
		AlternativeDate:        alternative,
		AlternativeTime:        p.AlternativeTime,
		AccessInstructions:     p.AccessInstructions,
		SpecialRequests:        p.SpecialRequests,
		PreferredContactMethod: p.PreferredContactMethod,
		BestTimeToCall:         p.BestTimeToCall,
	}, nil
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(TimestampLayout)
	return &s
}

func parseTimestamp(s *string, loc *time.Location) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return time.Time{}, err
	}
	return dateOf(t, loc), nil
}
