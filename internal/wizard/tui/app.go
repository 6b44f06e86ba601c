package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"homebooking/internal/catalog"
	"homebooking/internal/form"
)

// submitDoneMsg carries the outcome of the final Next.
type submitDoneMsg struct {
	err error
}

type keyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	NextOption key.Binding
	PrevOption key.Binding
	Clear      key.Binding
	NextStep   key.Binding
	PrevStep   key.Binding
	Reset      key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.NextOption, k.NextStep, k.PrevStep, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.NextOption, k.PrevOption, k.Clear},
		{k.NextStep, k.PrevStep, k.Reset, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		NextOption: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "choose"),
		),
		PrevOption: key.NewBinding(
			key.WithKeys("left"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("del", "clear choice"),
		),
		NextStep: key.NewBinding(
			key.WithKeys("ctrl+n", "pgdown"),
			key.WithHelp("ctrl+n", "next / submit"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("ctrl+p", "pgup"),
			key.WithHelp("ctrl+p", "back"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "start over"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// Model is the booking wizard screen. The form state lives in form.Model;
// this type only tracks focus and what to show.
type Model struct {
	form *form.Model
	ctx  context.Context

	keys  keyMap
	help  help.Model
	input textinput.Model

	focus   int
	pending bool
	notice  string
	failure string

	Width    int
	quitting bool
}

// New returns a wizard driving f. ctx bounds the final submission.
func New(ctx context.Context, f *form.Model) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 500

	m := Model{
		form:  f,
		ctx:   ctx,
		keys:  newKeyMap(),
		help:  help.New(),
		input: in,
	}
	m.loadFocus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case submitDoneMsg:
		return m.finishSubmit(msg.err), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	// nothing else while the booking is in flight
	if m.pending {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextStep):
		return m.nextStep()

	case key.Matches(msg, m.keys.PrevStep):
		m.clearNotices()
		m.form.Previous()
		m.focus = 0
		m.loadFocus()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.clearNotices()
		m.form.Reset()
		m.focus = 0
		m.loadFocus()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.moveFocus(-1)
		return m, nil
	}

	spec := m.focused()
	if spec.Kind == form.KindOption {
		switch {
		case key.Matches(msg, m.keys.NextOption):
			m.cycleOption(1)
		case key.Matches(msg, m.keys.PrevOption):
			m.cycleOption(-1)
		case key.Matches(msg, m.keys.Clear):
			m.form.SetField(spec.Field, "")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.form.SetField(spec.Field, m.input.Value())
	return m, cmd
}

// nextStep advances synchronously between steps. The final step submits in
// a command so the UI keeps drawing while the request runs.
func (m Model) nextStep() (tea.Model, tea.Cmd) {
	m.clearNotices()

	if m.form.Step() < form.LastStep {
		if err := m.form.Next(m.ctx); err != nil {
			m.focusFirstError()
			return m, nil
		}
		m.focus = 0
		m.loadFocus()
		return m, nil
	}

	m.pending = true
	f, ctx := m.form, m.ctx
	return m, func() tea.Msg {
		return submitDoneMsg{err: f.Next(ctx)}
	}
}

func (m Model) finishSubmit(err error) Model {
	m.pending = false

	var verr *form.ValidationError
	var serr *form.SubmissionError
	switch {
	case err == nil:
		m.notice = form.SubmittedMessage
		m.focus = 0
	case errors.As(err, &verr):
		m.focusFirstError()
	case errors.As(err, &serr):
		m.failure = serr.Message
	default:
		m.failure = err.Error()
	}

	m.loadFocus()
	return m
}

func (m *Model) clearNotices() {
	m.notice = ""
	m.failure = ""
}

func (m Model) fields() []form.Spec {
	return form.Fields(m.form.Step())
}

func (m Model) focused() form.Spec {
	fields := m.fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return fields[0]
	}
	return fields[m.focus]
}

func (m *Model) moveFocus(delta int) {
	n := len(m.fields())
	m.focus = (m.focus + delta + n) % n
	m.loadFocus()
}

// focusFirstError moves to the first field on this step with an error.
func (m *Model) focusFirstError() {
	for i, spec := range m.fields() {
		if m.form.ErrorFor(spec.Field) != "" {
			m.focus = i
			break
		}
	}
	m.loadFocus()
}

// loadFocus points the text input at the focused field.
func (m *Model) loadFocus() {
	fields := m.fields()
	if m.focus >= len(fields) {
		m.focus = 0
	}
	spec := fields[m.focus]

	m.input.SetValue(m.form.Value(spec.Field))
	m.input.CursorEnd()
	m.input.Placeholder = placeholder(spec)
	if spec.Kind == form.KindOption {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
}

func (m *Model) cycleOption(delta int) {
	spec := m.focused()
	opts := form.Options(spec.Field, m.form.Draft())
	if len(opts) == 0 {
		return
	}

	cur := m.form.Value(spec.Field)
	idx := -1
	for i, o := range opts {
		if o.Value == cur {
			idx = i
			break
		}
	}

	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(opts) - 1
	default:
		idx = (idx + delta + len(opts)) % len(opts)
	}
	m.form.SetField(spec.Field, opts[idx].Value)
}

func placeholder(spec form.Spec) string {
	switch spec.Kind {
	case form.KindDate:
		return "YYYY-MM-DD"
	case form.KindOption:
		return "choose with ←/→"
	}
	return strings.ToLower(spec.Label)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	step := m.form.Step()
	var b strings.Builder

	b.WriteString(TitleStyle.Render(AppName))
	b.WriteString("\n")
	b.WriteString(RenderProgress(int(step), int(form.LastStep)))
	b.WriteString("  ")
	b.WriteString(StepStyle.Render(fmt.Sprintf("Step %d of %d · %s", step, form.LastStep, step.Title())))
	b.WriteString("\n\n")

	draft := m.form.Draft()
	for i, spec := range m.fields() {
		b.WriteString(m.renderField(i == m.focus, spec, draft))
	}

	if stray := m.otherStepErrors(); stray != "" {
		b.WriteString("\n")
		b.WriteString(ErrorBoxStyle.Render(stray))
		b.WriteString("\n")
	}

	switch {
	case m.pending:
		b.WriteString("\n")
		b.WriteString(StepStyle.Render("Submitting..."))
		b.WriteString("\n")
	case m.failure != "":
		b.WriteString("\n")
		b.WriteString(ErrorBoxStyle.Render(m.failure))
		b.WriteString("\n")
	case m.notice != "":
		b.WriteString("\n")
		b.WriteString(SuccessBoxStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return ContainerStyle.Render(b.String())
}

func (m Model) renderField(focused bool, spec form.Spec, draft form.Draft) string {
	var b strings.Builder

	label := spec.Label
	if spec.Required {
		label += " *"
	}
	if focused {
		b.WriteString(FocusedLabelStyle.Render("› " + label))
	} else {
		b.WriteString(LabelStyle.Render("  " + label))
	}
	b.WriteString("\n")

	value := m.form.Value(spec.Field)
	switch {
	case spec.Kind == form.KindOption:
		opts := form.Options(spec.Field, draft)
		if value == "" {
			b.WriteString(PlaceholderStyle.Render(optionHint(spec, opts)))
		} else {
			b.WriteString(ValueStyle.Render("‹ " + catalog.Label(opts, value) + " ›"))
		}
	case focused:
		b.WriteString("    " + m.input.View())
		if spec.Kind == form.KindDate && m.input.Value() != "" && m.input.Value() != value {
			b.WriteString("\n")
			b.WriteString(PlaceholderStyle.Render("enter a day from today onwards as " + placeholder(spec)))
		}
	case value == "":
		b.WriteString(PlaceholderStyle.Render(placeholder(spec)))
	default:
		b.WriteString(ValueStyle.Render(value))
	}
	b.WriteString("\n")

	if msg := m.form.ErrorFor(spec.Field); msg != "" {
		b.WriteString(FieldErrorStyle.Render(msg))
		b.WriteString("\n")
	}
	return b.String()
}

func optionHint(spec form.Spec, opts []catalog.Option) string {
	if spec.Field == form.SpecificService && len(opts) == 0 {
		return "pick a service type first"
	}
	return placeholder(spec)
}

// otherStepErrors summarises errors for fields not on the current step,
// which the final check can report after an earlier step was emptied.
func (m Model) otherStepErrors() string {
	step := m.form.Step()
	var lines []string
	for _, fe := range m.form.Errors() {
		spec, ok := form.Lookup(fe.Field)
		if !ok || spec.Step == step {
			continue
		}
		lines = append(lines, fmt.Sprintf("Step %d, %s: %s", spec.Step, spec.Label, fe.Message))
	}
	return strings.Join(lines, "\n")
}
