package form

import "homebooking/internal/catalog"

// Field names a booking form field. The value is the field's JSON name.
type Field string

const (
	FullName       Field = "fullName"
	PhoneNumber    Field = "phoneNumber"
	EmailAddress   Field = "emailAddress"
	PropertyType   Field = "propertyType"
	ServiceAddress Field = "serviceAddress"

	ServiceType        Field = "serviceType"
	SpecificService    Field = "specificService"
	UrgencyLevel       Field = "urgencyLevel"
	BudgetRange        Field = "budgetRange"
	ProblemDescription Field = "problemDescription"

	PreferredDate   Field = "preferredDate"
	PreferredTime   Field = "preferredTime"
	AlternativeDate Field = "alternativeDate"
	AlternativeTime Field = "alternativeTime"

	AccessInstructions     Field = "accessInstructions"
	SpecialRequests        Field = "specialRequests"
	PreferredContactMethod Field = "preferredContactMethod"
	BestTimeToCall         Field = "bestTimeToCall"
)

// Step is a 1-based page of the wizard.
type Step int

const (
	StepClient Step = iota + 1
	StepService
	StepSchedule
	StepAdditional
)

const (
	FirstStep = StepClient
	LastStep  = StepAdditional
)

var stepTitles = map[Step]string{
	StepClient:     "Client Information",
	StepService:    "Service Details",
	StepSchedule:   "Preferred Schedule",
	StepAdditional: "Additional Information",
}

func (s Step) Title() string { return stepTitles[s] }

func (s Step) Valid() bool { return s >= FirstStep && s <= LastStep }

// Kind says how a field is entered.
type Kind int

const (
	KindText Kind = iota
	KindLongText
	KindOption
	KindDate
)

// Spec describes one field: where it lives, how it is entered and whether
// a step can be blocked by it.
type Spec struct {
	Field    Field
	GoName   string
	Label    string
	Step     Step
	Kind     Kind
	Required bool
}

// specs is the single field table, in display order. Every field belongs to
// exactly one step.
var specs = []Spec{
	{FullName, "FullName", "Full Name", StepClient, KindText, true},
	{PhoneNumber, "PhoneNumber", "Phone Number", StepClient, KindText, true},
	{EmailAddress, "EmailAddress", "Email Address", StepClient, KindText, true},
	{PropertyType, "PropertyType", "Property Type", StepClient, KindOption, true},
	{ServiceAddress, "ServiceAddress", "Service Address", StepClient, KindLongText, true},

	{ServiceType, "ServiceType", "Service Type", StepService, KindOption, true},
	{SpecificService, "SpecificService", "Specific Service", StepService, KindOption, true},
	{UrgencyLevel, "UrgencyLevel", "Urgency Level", StepService, KindOption, true},
	{BudgetRange, "BudgetRange", "Budget Range", StepService, KindOption, false},
	{ProblemDescription, "ProblemDescription", "Problem Description", StepService, KindLongText, true},

	{PreferredDate, "PreferredDate", "Preferred Date", StepSchedule, KindDate, true},
	{PreferredTime, "PreferredTime", "Preferred Time", StepSchedule, KindOption, true},
	{AlternativeDate, "AlternativeDate", "Alternative Date", StepSchedule, KindDate, false},
	{AlternativeTime, "AlternativeTime", "Alternative Time", StepSchedule, KindOption, false},

	{AccessInstructions, "AccessInstructions", "Access Instructions", StepAdditional, KindLongText, false},
	{SpecialRequests, "SpecialRequests", "Special Requests", StepAdditional, KindLongText, false},
	{PreferredContactMethod, "PreferredContactMethod", "Preferred Contact Method", StepAdditional, KindOption, true},
	{BestTimeToCall, "BestTimeToCall", "Best Time to Call", StepAdditional, KindOption, true},
}

var specByField = func() map[Field]Spec {
	m := make(map[Field]Spec, len(specs))
	for _, s := range specs {
		m[s.Field] = s
	}
	return m
}()

// Lookup returns the field table entry for f.
func Lookup(f Field) (Spec, bool) {
	s, ok := specByField[f]
	return s, ok
}

// Fields returns the fields shown on step, in display order.
func Fields(step Step) []Spec {
	var out []Spec
	for _, s := range specs {
		if s.Step == step {
			out = append(out, s)
		}
	}
	return out
}

// AllFields returns every field in display order.
func AllFields() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Options returns the selectable values for an option field. The specific
// service choices depend on the draft's service type.
func Options(f Field, d Draft) []catalog.Option {
	switch f {
	case PropertyType:
		return catalog.PropertyTypes
	case ServiceType:
		return catalog.ServiceTypes
	case SpecificService:
		return catalog.SpecificServices(d.ServiceType)
	case UrgencyLevel:
		return catalog.UrgencyLevels
	case BudgetRange:
		return catalog.BudgetRanges
	case PreferredTime, AlternativeTime:
		return catalog.TimeBands
	case PreferredContactMethod:
		return catalog.ContactMethods
	case BestTimeToCall:
		return catalog.CallTimes
	}
	return nil
}
