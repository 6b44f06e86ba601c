package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, p Payload) (*Result, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

// fixedNow is 1 March 2025, mid-morning in Manila.
func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 10, 30, 0, 0, manila)
}

func newTestModel(s Submitter) *Model {
	return NewModel(s, WithClock(fixedNow), WithLocation(manila))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, manila)
}

func fillStep1(m *Model) {
	m.SetField(FullName, "Juan Dela Cruz")
	m.SetField(PhoneNumber, "+639123456789")
	m.SetField(EmailAddress, "juan@example.com")
	m.SetField(PropertyType, "house")
	m.SetField(ServiceAddress, "123 Main St, Brgy. Uno, Quezon City")
}

func fillStep2(m *Model) {
	m.SetServiceType("plumbing")
	m.SetField(SpecificService, "leak-repair")
	m.SetField(UrgencyLevel, "urgent")
	m.SetField(ProblemDescription, "Kitchen sink has been leaking for two days.")
}

func fillStep3(m *Model) {
	m.SetPreferredDate(day(2025, 3, 10))
	m.SetField(PreferredTime, "8am-10am")
	m.SetAlternativeDate(day(2025, 3, 11))
	m.SetField(AlternativeTime, "1pm-3pm")
}

func fillStep4(m *Model) {
	m.SetField(PreferredContactMethod, "whatsapp")
	m.SetField(BestTimeToCall, "afternoon")
}

func advanceTo(t *testing.T, m *Model, step Step) {
	t.Helper()
	fills := []func(*Model){fillStep1, fillStep2, fillStep3}
	for i := 0; Step(i+1) < step; i++ {
		fills[i](m)
		require.NoError(t, m.Next(context.Background()))
	}
	require.Equal(t, step, m.Step())
}

func TestModel_StartsEmptyOnFirstStep(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	assert.Equal(t, StepClient, m.Step())
	assert.True(t, m.Draft().IsEmpty())
	assert.False(t, m.Submitting())
}

func TestModel_SetFieldNeverMovesStep(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	for _, s := range AllFields() {
		m.SetField(s.Field, "x")
		assert.Equal(t, StepClient, m.Step())
	}
	m.SetField(Field("nonsense"), "x")
	assert.Equal(t, StepClient, m.Step())
	assert.True(t, m.Dirty(FullName))
}

func TestModel_NextBlockedByShortName(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	fillStep1(m)
	m.SetField(FullName, "J")

	err := m.Next(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, StepClient, verr.Step)
	assert.Equal(t, StepClient, m.Step())
	assert.Equal(t, "Full name must be at least 2 characters.", m.ErrorFor(FullName))
}

func TestModel_NextFromValidStep1(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	fillStep1(m)

	require.NoError(t, m.Next(context.Background()))
	assert.Equal(t, StepService, m.Step())
	assert.Empty(t, m.Errors())
}

func TestModel_EditingFieldClearsItsError(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	require.Error(t, m.Next(context.Background()))
	require.NotEmpty(t, m.ErrorFor(FullName))
	require.NotEmpty(t, m.ErrorFor(EmailAddress))

	m.SetField(FullName, "Ana")
	assert.Empty(t, m.ErrorFor(FullName))
	assert.NotEmpty(t, m.ErrorFor(EmailAddress))
}

func TestModel_PreviousOnFirstStepIsNoop(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	m.Previous()
	m.Previous()
	assert.Equal(t, StepClient, m.Step())
}

func TestModel_PreviousNeedsNoValidation(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	advanceTo(t, m, StepSchedule)

	m.SetField(FullName, "")
	m.Previous()
	assert.Equal(t, StepService, m.Step())
	m.Previous()
	assert.Equal(t, StepClient, m.Step())
}

func TestModel_LaterStepsDoNotCheckEarlierFields(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	advanceTo(t, m, StepService)

	m.SetField(EmailAddress, "not-an-email")
	fillStep2(m)
	require.NoError(t, m.Next(context.Background()))
	assert.Equal(t, StepSchedule, m.Step())
}

func TestModel_ServiceTypeChangeClearsSpecificService(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	advanceTo(t, m, StepService)
	fillStep2(m)
	require.Equal(t, "leak-repair", m.Draft().SpecificService)

	m.SetServiceType("electrical")
	assert.Equal(t, "", m.Draft().SpecificService)
	assert.Contains(t, m.SpecificServiceOptions(), "outlet-repair")
	assert.NotContains(t, m.SpecificServiceOptions(), "leak-repair")

	err := m.Next(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Please select a specific service.", m.ErrorFor(SpecificService))
	assert.Equal(t, StepService, m.Step())
}

func TestModel_ServiceTypeViaSetFieldAlsoClears(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	m.SetServiceType("plumbing")
	m.SetField(SpecificService, "drain-cleaning")

	m.SetField(ServiceType, "plumbing")
	assert.Equal(t, "", m.Draft().SpecificService)
}

func TestModel_PreferredDateClearsEarlierAlternative(t *testing.T) {
	cases := []struct {
		name      string
		preferred time.Time
		cleared   bool
	}{
		{"moved after alternative", day(2025, 3, 20), true},
		{"moved onto alternative", day(2025, 3, 15), true},
		{"still before alternative", day(2025, 3, 14), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(new(MockSubmitter))
			require.True(t, m.SetPreferredDate(day(2025, 3, 10)))
			require.True(t, m.SetAlternativeDate(day(2025, 3, 15)))

			require.True(t, m.SetPreferredDate(tc.preferred))
			if tc.cleared {
				assert.True(t, m.Draft().AlternativeDate.IsZero())
			} else {
				assert.Equal(t, day(2025, 3, 15), m.Draft().AlternativeDate)
			}
		})
	}
}

func TestModel_PastDatesRefused(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	assert.False(t, m.SetPreferredDate(day(2025, 2, 28)))
	assert.False(t, m.SetPreferredDate(time.Date(1899, 12, 31, 0, 0, 0, 0, manila)))
	assert.True(t, m.Draft().PreferredDate.IsZero())

	assert.True(t, m.SetPreferredDate(day(2025, 3, 1)), "today is selectable")
	assert.Equal(t, "2025-03-01", m.Value(PreferredDate))
}

func TestModel_AlternativeDateMustFollowPreferred(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	require.True(t, m.SetPreferredDate(day(2025, 3, 10)))

	assert.False(t, m.SetAlternativeDate(day(2025, 3, 10)))
	assert.False(t, m.SetAlternativeDate(day(2025, 3, 9)))
	assert.True(t, m.SetAlternativeDate(day(2025, 3, 11)))
}

func TestModel_DateStrings(t *testing.T) {
	m := newTestModel(new(MockSubmitter))
	m.SetField(PreferredDate, "2025-03-10")
	assert.Equal(t, day(2025, 3, 10), m.Draft().PreferredDate)

	m.SetField(PreferredDate, "10/03/2025")
	assert.Equal(t, day(2025, 3, 10), m.Draft().PreferredDate, "unparseable input is ignored")

	m.SetField(PreferredDate, "")
	assert.True(t, m.Draft().PreferredDate.IsZero())
}

func TestModel_SubmitSuccessResets(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Submit", mock.Anything, mock.Anything).Return(&Result{Success: true}, nil).Once()

	m := newTestModel(sub)
	advanceTo(t, m, StepAdditional)
	fillStep4(m)

	require.NoError(t, m.Next(context.Background()))

	sub.AssertNumberOfCalls(t, "Submit", 1)
	p := sub.Calls[0].Arguments.Get(1).(Payload)
	assert.Equal(t, "Juan Dela Cruz", p.FullName)
	assert.Equal(t, "leak-repair", p.SpecificService)
	assert.Equal(t, "whatsapp", p.PreferredContactMethod)
	require.NotNil(t, p.PreferredDate)
	assert.Equal(t, "2025-03-09T16:00:00.000Z", *p.PreferredDate)
	require.NotNil(t, p.AlternativeDate)
	assert.Equal(t, "2025-03-10T16:00:00.000Z", *p.AlternativeDate)

	assert.True(t, m.Draft().IsEmpty())
	assert.Equal(t, StepClient, m.Step())
	assert.Nil(t, m.SubmitError())
	assert.Equal(t, 1, m.Submitted())
}

func TestModel_SubmitFailureKeepsDraft(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Submit", mock.Anything, mock.Anything).
		Return(&Result{Success: false, Message: "Missing required fields: serviceType"}, nil).Once()

	m := newTestModel(sub)
	advanceTo(t, m, StepAdditional)
	fillStep4(m)
	before := m.Draft()

	err := m.Next(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmit))
	assert.Equal(t, "Missing required fields: serviceType", m.SubmitError().Message)
	assert.Equal(t, before, m.Draft())
	assert.Equal(t, StepAdditional, m.Step())
	assert.False(t, m.Submitting())
}

func TestModel_SubmitErrorUsesGenericMessage(t *testing.T) {
	boom := errors.New("connection refused")
	sub := new(MockSubmitter)
	sub.On("Submit", mock.Anything, mock.Anything).Return(nil, boom).Once()

	m := newTestModel(sub)
	advanceTo(t, m, StepAdditional)
	fillStep4(m)

	err := m.Next(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, GenericSubmitMessage, m.SubmitError().Message)
	assert.Equal(t, "Juan Dela Cruz", m.Draft().FullName)
}

func TestModel_FinalCheckCatchesClearedEarlierField(t *testing.T) {
	sub := new(MockSubmitter)
	m := newTestModel(sub)
	advanceTo(t, m, StepAdditional)
	fillStep4(m)

	m.SetField(PhoneNumber, "")

	err := m.Next(context.Background())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, PhoneNumber, verr.Errors[0].Field)

	assert.Equal(t, StepAdditional, m.Step())
	assert.Equal(t, "whatsapp", m.Draft().PreferredContactMethod)
	sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

// blockingSubmitter holds the submission open until release is closed.
type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (b *blockingSubmitter) Submit(ctx context.Context, p Payload) (*Result, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	close(b.started)
	<-b.release
	return &Result{Success: true}, nil
}

func TestModel_LockedWhileSubmitting(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	m := newTestModel(sub)
	advanceTo(t, m, StepAdditional)
	fillStep4(m)

	done := make(chan error, 1)
	go func() { done <- m.Next(context.Background()) }()
	<-sub.started

	assert.True(t, m.Submitting())
	assert.ErrorIs(t, m.Next(context.Background()), ErrSubmitting)
	m.SetField(FullName, "Someone Else")
	m.Previous()
	assert.False(t, m.SetPreferredDate(day(2025, 4, 1)))
	assert.Equal(t, "Juan Dela Cruz", m.Draft().FullName)
	assert.Equal(t, StepAdditional, m.Step())

	close(sub.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, StepClient, m.Step())
}
