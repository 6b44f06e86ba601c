package booking

// CreateBookingRequest is the booking form as posted by a client. Dates are
// ISO-8601 strings or null.
type CreateBookingRequest struct {
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

// MissingFields lists, in a fixed order, which of the minimum fields are
// empty.
func (r CreateBookingRequest) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", r.FullName},
		{"phoneNumber", r.PhoneNumber},
		{"emailAddress", r.EmailAddress},
		{"serviceType", r.ServiceType},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// CreateBookingResult is what the store reported for one append.
type CreateBookingResult struct {
	Success     bool  `json:"success"`
	UpdatedRows int64 `json:"updatedRows"`
}
