// Package catalog holds the fixed option tables offered by the booking form.
//
// Validation and every UI read their choices from here so the two never
// drift apart.
package catalog

import (
	"regexp"
	"strings"
)

// Option is a selectable value together with the label shown to the customer.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

var PropertyTypes = []Option{
	{Value: "house", Label: "House"},
	{Value: "condominium", Label: "Condominium"},
	{Value: "apartment", Label: "Apartment"},
	{Value: "office", Label: "Office"},
	{Value: "commercial-space", Label: "Commercial Space"},
}

var ServiceTypes = []Option{
	{Value: "plumbing", Label: "Plumbing"},
	{Value: "electrical", Label: "Electrical"},
	{Value: "air-conditioning", Label: "Air Conditioning"},
	{Value: "appliance-repair", Label: "Appliance Repair"},
	{Value: "carpentry", Label: "Carpentry"},
	{Value: "cleaning-services", Label: "Cleaning Services"},
}

// serviceCatalog maps a service type to its specific services, in display order.
var serviceCatalog = map[string][]string{
	"plumbing": {
		"Leak Repair",
		"Pipe Installation",
		"Drain Cleaning",
		"Toilet Repair",
		"Faucet Installation",
	},
	"electrical": {
		"Wiring Installation",
		"Outlet Repair",
		"Light Fixture",
		"Circuit Breaker",
		"Electrical Panel",
	},
	"air-conditioning": {
		"AC Cleaning",
		"AC Repair",
		"Installation",
		"Maintenance",
		"Freon Recharge",
	},
	"appliance-repair": {
		"Washing Machine",
		"Refrigerator",
		"Microwave",
		"Electric Fan",
		"Water Heater",
	},
	"carpentry": {
		"Furniture Repair",
		"Cabinet Installation",
		"Door Repair",
		"Window Installation",
		"Custom Build",
	},
	"cleaning-services": {
		"Deep Cleaning",
		"Regular Cleaning",
		"Post-Construction",
		"Move-in/Move-out",
		"Carpet Cleaning",
	},
}

var UrgencyLevels = []Option{
	{Value: "emergency", Label: "Emergency (Within 2 hours)"},
	{Value: "urgent", Label: "Urgent (Same day)"},
	{Value: "normal", Label: "Normal (1-3 days)"},
	{Value: "flexible", Label: "Flexible (Within a week)"},
}

var BudgetRanges = []Option{
	{Value: "under-1000", Label: "Under ₱1,000"},
	{Value: "1000-3000", Label: "₱1,000 - ₱3,000"},
	{Value: "3000-5000", Label: "₱3,000 - ₱5,000"},
	{Value: "5000-10000", Label: "₱5,000 - ₱10,000"},
	{Value: "over-10000", Label: "Over ₱10,000"},
	{Value: "get-quote", Label: "Get a quote first"},
}

// TimeBands are shared by the preferred and alternative time selections.
var TimeBands = []Option{
	{Value: "8am-10am", Label: "8:00 AM - 10:00 AM"},
	{Value: "10am-12pm", Label: "10:00 AM - 12:00 PM"},
	{Value: "1pm-3pm", Label: "1:00 PM - 3:00 PM"},
	{Value: "3pm-5pm", Label: "3:00 PM - 5:00 PM"},
	{Value: "5pm-7pm", Label: "5:00 PM - 7:00 PM"},
	{Value: "flexible", Label: "Flexible"},
}

var ContactMethods = []Option{
	{Value: "phone-call", Label: "Phone Call"},
	{Value: "sms-text", Label: "SMS/Text"},
	{Value: "email", Label: "Email"},
	{Value: "whatsapp", Label: "WhatsApp"},
}

var CallTimes = []Option{
	{Value: "morning", Label: "Morning (8AM - 12PM)"},
	{Value: "afternoon", Label: "Afternoon (12PM - 5PM)"},
	{Value: "evening", Label: "Evening (5PM - 8PM)"},
	{Value: "anytime", Label: "Anytime"},
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug turns a display label into its option value: lower case, whitespace
// runs collapsed to a single hyphen.
func Slug(label string) string {
	return whitespace.ReplaceAllString(strings.ToLower(label), "-")
}

// SpecificServices returns the services offered under serviceType. Unknown
// or empty types yield nil.
func SpecificServices(serviceType string) []Option {
	names, ok := serviceCatalog[serviceType]
	if !ok {
		return nil
	}
	out := make([]Option, 0, len(names))
	for _, name := range names {
		out = append(out, Option{Value: Slug(name), Label: name})
	}
	return out
}

// Contains reports whether value is one of options.
func Contains(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Label returns the label for value, or value itself when it is not listed.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Catalog is the complete set of tables, used for exporting.
type Catalog struct {
	PropertyTypes  []Option            `json:"propertyTypes" yaml:"propertyTypes"`
	ServiceTypes   []Option            `json:"serviceTypes" yaml:"serviceTypes"`
	Services       map[string][]Option `json:"services" yaml:"services"`
	UrgencyLevels  []Option            `json:"urgencyLevels" yaml:"urgencyLevels"`
	BudgetRanges   []Option            `json:"budgetRanges" yaml:"budgetRanges"`
	TimeBands      []Option            `json:"timeBands" yaml:"timeBands"`
	ContactMethods []Option            `json:"contactMethods" yaml:"contactMethods"`
	CallTimes      []Option            `json:"callTimes" yaml:"callTimes"`
}

func All() Catalog {
	services := make(map[string][]Option, len(ServiceTypes))
	for _, st := range ServiceTypes {
		services[st.Value] = SpecificServices(st.Value)
	}
	return Catalog{
		PropertyTypes:  PropertyTypes,
		ServiceTypes:   ServiceTypes,
		Services:       services,
		UrgencyLevels:  UrgencyLevels,
		BudgetRanges:   BudgetRanges,
		TimeBands:      TimeBands,
		ContactMethods: ContactMethods,
		CallTimes:      CallTimes,
	}
}
