package domain

import "time"

// SheetHeaders is the fixed header row of the booking sheet.
var SheetHeaders = []string{
	"Timestamp",
	"Full Name",
	"Phone Number",
	"Email Address",
	"Property Type",
	"Service Address",
	"Service Type",
	"Specific Service",
	"Urgency Level",
	"Budget Range",
	"Problem Description",
	"Preferred Date",
	"Preferred Time",
	"Alternative Date",
	"Alternative Time",
	"Access Instructions",
	"Special Requests",
	"Preferred Contact Method",
	"Best Time to Call",
}

// ColumnCount is the width of every booking row.
const ColumnCount = 19

// BookingRecord is one persisted booking, already formatted for the sheet:
// dates are locale date strings and absent fields are empty.
type BookingRecord struct {
	Timestamp              string `json:"timestamp"`
	FullName               string `json:"fullName"`
	PhoneNumber            string `json:"phoneNumber"`
	EmailAddress           string `json:"emailAddress"`
	PropertyType           string `json:"propertyType"`
	ServiceAddress         string `json:"serviceAddress"`
	ServiceType            string `json:"serviceType"`
	SpecificService        string `json:"specificService"`
	UrgencyLevel           string `json:"urgencyLevel"`
	BudgetRange            string `json:"budgetRange"`
	ProblemDescription     string `json:"problemDescription"`
	PreferredDate          string `json:"preferredDate"`
	PreferredTime          string `json:"preferredTime"`
	AlternativeDate        string `json:"alternativeDate"`
	AlternativeTime        string `json:"alternativeTime"`
	AccessInstructions     string `json:"accessInstructions"`
	SpecialRequests        string `json:"specialRequests"`
	PreferredContactMethod string `json:"preferredContactMethod"`
	BestTimeToCall         string `json:"bestTimeToCall"`

	ReceivedAt time.Time `json:"-"`
}

// Row returns the record in sheet column order.
func (r BookingRecord) Row() []string {
	return []string{
		r.Timestamp,
		r.FullName,
		r.PhoneNumber,
		r.EmailAddress,
		r.PropertyType,
		r.ServiceAddress,
		r.ServiceType,
		r.SpecificService,
		r.UrgencyLevel,
		r.BudgetRange,
		r.ProblemDescription,
		r.PreferredDate,
		r.PreferredTime,
		r.AlternativeDate,
		r.AlternativeTime,
		r.AccessInstructions,
		r.SpecialRequests,
		r.PreferredContactMethod,
		r.BestTimeToCall,
	}
}
