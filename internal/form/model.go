package form

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// dateFloor is the earliest selectable date.
var dateFloor = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Model owns a booking draft and the wizard position. It moves forward only
// when the current step validates, and hands the draft to its Submitter from
// the last step.
//
// While a submission is in flight every mutation and navigation call is
// refused, so a draft is never submitted twice.
type Model struct {
	mu sync.Mutex

	draft      Draft
	step       Step
	dirty      map[Field]bool
	errors     []FieldError
	submitting bool
	submitErr  *SubmissionError
	submitted  int

	validator *Validator
	submitter Submitter
	now       func() time.Time
	loc       *time.Location
	log       *zap.Logger
}

type ModelOption func(*Model)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithLocation sets the location calendar dates are held in.
func WithLocation(loc *time.Location) ModelOption {
	return func(m *Model) { m.loc = loc }
}

func WithLogger(log *zap.Logger) ModelOption {
	return func(m *Model) { m.log = log }
}

func NewModel(submitter Submitter, opts ...ModelOption) *Model {
	m := &Model{
		step:      FirstStep,
		dirty:     make(map[Field]bool),
		validator: NewValidator(),
		submitter: submitter,
		now:       time.Now,
		loc:       time.Local,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetField stores value for f and clears the error shown for it. Service
// type and dates go through their dedicated setters so the dependent-field
// rules always apply; dates are parsed with DateLayout and an empty value
// clears them. Unknown fields are ignored.
func (m *Model) SetField(f Field, value string) {
	switch f {
	case ServiceType:
		m.SetServiceType(value)
		return
	case PreferredDate, AlternativeDate:
		m.setDateString(f, value)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return
	}
	p := m.draft.text(f)
	if p == nil {
		return
	}
	*p = value
	m.touch(f)
}

// SetServiceType selects a service type and always clears the specific
// service, whose choices depend on it.
func (m *Model) SetServiceType(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return
	}
	m.draft.ServiceType = value
	m.draft.SpecificService = ""
	m.touch(ServiceType)
	m.touch(SpecificService)
}

// SetPreferredDate sets the preferred day. Days before today or before
// 1900-01-01 are refused and false is returned. An alternative date that is
// no longer strictly later is cleared.
func (m *Model) SetPreferredDate(d time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return false
	}

	day := dateOf(d, m.loc)
	if m.disabledDay(day) {
		return false
	}
	m.draft.PreferredDate = day
	m.touch(PreferredDate)

	if alt := m.draft.AlternativeDate; !alt.IsZero() && !alt.After(day) {
		m.draft.AlternativeDate = time.Time{}
		m.touch(AlternativeDate)
	}
	return true
}

// SetAlternativeDate sets the fallback day. It follows the same calendar
// limits as the preferred date and must fall strictly after it.
func (m *Model) SetAlternativeDate(d time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return false
	}

	day := dateOf(d, m.loc)
	if m.disabledDay(day) {
		return false
	}
	if pref := m.draft.PreferredDate; !pref.IsZero() && !day.After(pref) {
		return false
	}
	m.draft.AlternativeDate = day
	m.touch(AlternativeDate)
	return true
}

func (m *Model) setDateString(f Field, value string) {
	if value == "" {
		m.clearDate(f)
		return
	}
	d, err := time.ParseInLocation(DateLayout, value, m.location())
	if err != nil {
		return
	}
	if f == PreferredDate {
		m.SetPreferredDate(d)
	} else {
		m.SetAlternativeDate(d)
	}
}

func (m *Model) clearDate(f Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return
	}
	if f == PreferredDate {
		m.draft.PreferredDate = time.Time{}
	} else {
		m.draft.AlternativeDate = time.Time{}
	}
	m.touch(f)
}

func (m *Model) location() *time.Location {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loc
}

// disabledDay mirrors the date picker: nothing before today, nothing before
// the floor.
func (m *Model) disabledDay(day time.Time) bool {
	today := dateOf(m.now(), m.loc)
	return day.Before(today) || day.Before(dateFloor)
}

// Next validates the current step and moves forward. From the last step the
// whole draft is validated again and then submitted; the call blocks until
// the submitter answers.
//
// A *ValidationError is returned when fields block the move; the step does
// not change and the errors are kept for display.
func (m *Model) Next(ctx context.Context) error {
	m.mu.Lock()
	if m.submitting {
		m.mu.Unlock()
		return ErrSubmitting
	}

	if errs := m.validator.ValidateStep(m.draft, m.step); len(errs) > 0 {
		m.errors = errs
		step := m.step
		m.mu.Unlock()
		m.log.Debug("step blocked", zap.Int("step", int(step)), zap.Int("errors", len(errs)))
		return &ValidationError{Step: step, Errors: errs}
	}
	m.errors = nil

	if m.step < LastStep {
		m.step++
		m.mu.Unlock()
		return nil
	}

	// An earlier step may have been cleared after it was passed.
	if errs := m.validator.ValidateAll(m.draft); len(errs) > 0 {
		m.errors = errs
		m.mu.Unlock()
		m.log.Debug("draft incomplete at submit", zap.Int("errors", len(errs)))
		return &ValidationError{Step: LastStep, Errors: errs}
	}

	m.submitting = true
	m.submitErr = nil
	payload := NewPayload(m.draft)
	m.mu.Unlock()

	return m.submit(ctx, payload)
}

// submit hands payload to the collaborator exactly once. Success resets the
// form; failure keeps everything so the customer can resubmit.
func (m *Model) submit(ctx context.Context, payload Payload) error {
	res, err := m.submitter.Submit(ctx, payload)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitting = false

	switch {
	case err != nil:
		m.submitErr = &SubmissionError{Message: GenericSubmitMessage, Err: err}
	case res == nil || !res.Success:
		msg := GenericSubmitMessage
		if res != nil && res.Message != "" {
			msg = res.Message
		}
		m.submitErr = &SubmissionError{Message: msg}
	default:
		m.resetLocked()
		m.submitted++
		m.log.Info("booking submitted", zap.String("service_type", payload.ServiceType))
		return nil
	}

	m.log.Warn("booking submission failed", zap.Error(m.submitErr))
	return m.submitErr
}

// Previous moves back one step without validating. It does nothing on the
// first step or while submitting.
func (m *Model) Previous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting || m.step <= FirstStep {
		return
	}
	m.step--
	m.errors = nil
}

// Reset empties the draft and returns to the first step.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return
	}
	m.resetLocked()
	m.submitErr = nil
}

func (m *Model) resetLocked() {
	m.draft = Draft{}
	m.step = FirstStep
	m.dirty = make(map[Field]bool)
	m.errors = nil
}

// touch marks f dirty and drops its displayed error. Callers hold mu.
func (m *Model) touch(f Field) {
	m.dirty[f] = true
	if len(m.errors) == 0 {
		return
	}
	kept := m.errors[:0]
	for _, fe := range m.errors {
		if fe.Field != f {
			kept = append(kept, fe)
		}
	}
	m.errors = kept
}

func (m *Model) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Draft returns a copy of the current draft.
func (m *Model) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

func (m *Model) Value(f Field) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.Value(f)
}

func (m *Model) Dirty(f Field) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty[f]
}

// Errors returns the field errors from the last blocked Next.
func (m *Model) Errors() []FieldError {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]FieldError, len(m.errors))
	copy(out, m.errors)
	return out
}

// ErrorFor returns the displayed message for f, if any.
func (m *Model) ErrorFor(f Field) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, fe := range m.errors {
		if fe.Field == f {
			return fe.Message
		}
	}
	return ""
}

func (m *Model) Submitting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitting
}

// SubmitError returns the last failed submission, or nil.
func (m *Model) SubmitError() *SubmissionError {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitErr
}

// Submitted counts successful submissions since the model was created.
func (m *Model) Submitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitted
}

// SpecificServiceOptions lists the services for the selected service type.
func (m *Model) SpecificServiceOptions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	opts := Options(SpecificService, m.draft)
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}
