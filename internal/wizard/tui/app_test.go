package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebooking/internal/form"
)

var manila = time.FixedZone("PHT", 8*3600)

type stubSubmitter struct {
	mu    sync.Mutex
	got   []form.Payload
	reply *form.Result
	err   error
}

func (s *stubSubmitter) Submit(_ context.Context, p form.Payload) (*form.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, p)
	return s.reply, s.err
}

func newWizard(s form.Submitter) (Model, *form.Model) {
	f := form.NewModel(s,
		form.WithClock(func() time.Time { return time.Date(2025, 3, 1, 10, 30, 0, 0, manila) }),
		form.WithLocation(manila),
	)
	return New(context.Background(), f), f
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m Model, kt tea.KeyType) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: kt})
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// fillToLastStep drives the wizard through steps 1 to 3 with the keyboard.
func fillToLastStep(t *testing.T, m Model) Model {
	t.Helper()

	m = typeText(t, m, "Juan Dela Cruz")
	m = press(t, m, tea.KeyTab)
	m = typeText(t, m, "+639123456789")
	m = press(t, m, tea.KeyTab)
	m = typeText(t, m, "juan@example.com")
	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyRight)
	m = press(t, m, tea.KeyTab)
	m = typeText(t, m, "123 Main St, Brgy. Uno, Quezon City")
	m = press(t, m, tea.KeyCtrlN)
	require.Equal(t, form.StepService, m.form.Step())

	m = press(t, m, tea.KeyRight)
	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyRight)
	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyRight)
	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyTab)
	m = typeText(t, m, "Kitchen sink has been leaking for two days.")
	m = press(t, m, tea.KeyCtrlN)
	require.Equal(t, form.StepSchedule, m.form.Step())

	m = typeText(t, m, "2025-03-10")
	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyRight)
	m = press(t, m, tea.KeyCtrlN)
	require.Equal(t, form.StepAdditional, m.form.Step())

	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyRight)
	m = press(t, m, tea.KeyTab)
	m = press(t, m, tea.KeyRight)
	return m
}

func TestWizard_BlocksEmptyStep(t *testing.T) {
	m, f := newWizard(&stubSubmitter{})

	m = press(t, m, tea.KeyCtrlN)

	assert.Equal(t, form.StepClient, f.Step())
	assert.NotEmpty(t, f.ErrorFor(form.FullName))
	assert.Equal(t, 0, m.focus)
	assert.Contains(t, m.View(), "Full name must be at least 2 characters.")
}

func TestWizard_TypingClearsFieldError(t *testing.T) {
	m, f := newWizard(&stubSubmitter{})
	m = press(t, m, tea.KeyCtrlN)
	require.NotEmpty(t, f.ErrorFor(form.FullName))

	m = typeText(t, m, "J")
	assert.Empty(t, f.ErrorFor(form.FullName))
	assert.NotEmpty(t, f.ErrorFor(form.PhoneNumber))
	assert.Equal(t, "J", f.Value(form.FullName))
}

func TestWizard_SubmitsCompletedBooking(t *testing.T) {
	sub := &stubSubmitter{reply: &form.Result{Success: true}}
	m, f := newWizard(sub)

	m = fillToLastStep(t, m)
	draft := f.Draft()
	assert.Equal(t, "house", draft.PropertyType)
	assert.Equal(t, "plumbing", draft.ServiceType)
	assert.Equal(t, "leak-repair", draft.SpecificService)
	assert.Equal(t, "2025-03-10", f.Value(form.PreferredDate))
	assert.Equal(t, "phone-call", draft.PreferredContactMethod)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.NotNil(t, cmd)
	assert.True(t, m.pending)
	assert.Contains(t, m.View(), "Submitting...")

	// keys are ignored while the booking is in flight
	m = press(t, m, tea.KeyCtrlP)
	assert.Equal(t, form.StepAdditional, f.Step())

	m, _ = send(t, m, cmd())

	assert.False(t, m.pending)
	assert.Equal(t, form.SubmittedMessage, m.notice)
	assert.Equal(t, form.StepClient, f.Step())
	assert.True(t, f.Draft().IsEmpty())
	require.Len(t, sub.got, 1)
	assert.Equal(t, "Juan Dela Cruz", sub.got[0].FullName)
	require.NotNil(t, sub.got[0].PreferredDate)
	assert.Equal(t, "2025-03-09T16:00:00.000Z", *sub.got[0].PreferredDate)
}

func TestWizard_ShowsSubmissionFailure(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("connection refused")}
	m, f := newWizard(sub)

	m = fillToLastStep(t, m)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	m, _ = send(t, m, cmd())

	assert.Equal(t, form.GenericSubmitMessage, m.failure)
	assert.Equal(t, form.StepAdditional, f.Step())
	assert.Equal(t, "Juan Dela Cruz", f.Draft().FullName)
	assert.Contains(t, m.View(), form.GenericSubmitMessage)
}

func TestWizard_ServiceTypeChangeClearsSpecificService(t *testing.T) {
	m, f := newWizard(&stubSubmitter{})
	m = fillToLastStep(t, m)

	m = press(t, m, tea.KeyCtrlP)
	m = press(t, m, tea.KeyCtrlP)
	require.Equal(t, form.StepService, f.Step())
	require.Equal(t, "leak-repair", f.Draft().SpecificService)

	m = press(t, m, tea.KeyRight)
	assert.Equal(t, "electrical", f.Draft().ServiceType)
	assert.Empty(t, f.Draft().SpecificService)
	assert.Contains(t, m.View(), "Service Details")
}

func TestWizard_RejectedDateIsNotStored(t *testing.T) {
	m, f := newWizard(&stubSubmitter{})
	m = fillToLastStep(t, m)
	m = press(t, m, tea.KeyCtrlP)
	require.Equal(t, form.StepSchedule, f.Step())

	// clear the stored date and type one in the past
	for i := 0; i < len("2025-03-10"); i++ {
		m = press(t, m, tea.KeyBackspace)
	}
	assert.Empty(t, f.Value(form.PreferredDate))

	m = typeText(t, m, "2024-12-25")
	assert.Empty(t, f.Value(form.PreferredDate))
	assert.Contains(t, m.View(), "enter a day from today onwards")
}

func TestWizard_Quit(t *testing.T) {
	m, _ := newWizard(&stubSubmitter{})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}
