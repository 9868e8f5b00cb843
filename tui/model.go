// Package tui is a terminal front-end for the registration form. It drives
// the same form.Controller as the web page.
package tui

import (
	"context"
	"strings"
	"time"

	"taxform/form"
	"taxform/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/logger"
)

type focus int

const (
	focusUsername focus = iota
	focusCountry
	focusTaxID
	focusSubmit
	focusCount
)

// submitDoneMsg carries the outcome of an asynchronous submission.
type submitDoneMsg struct {
	result models.SubmissionResult
}

// Model is the bubbletea model for the form.
type Model struct {
	ctrl      *form.Controller
	submitter models.Submitter
	timeout   time.Duration

	inputs [focusSubmit]textinput.Model
	focus  focus
}

// New creates the form with the username field focused.
func New(submitter models.Submitter, timeout time.Duration) Model {
	m := Model{
		ctrl:      form.NewController(models.Countries()),
		submitter: submitter,
		timeout:   timeout,
	}

	v := m.ctrl.View()
	for i, f := range []form.FieldView{v.Username, v.Country, v.TaxID} {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 64
		ti.Width = 32
		m.inputs[i] = ti
	}
	m.inputs[focusUsername].Focus()
	return m
}

// Controller exposes the form state.
func (m Model) Controller() *form.Controller {
	return m.ctrl
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		m.ctrl.FinishSubmit(msg.result)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			return m.cycleFocus(msg.String() == "shift+tab"), nil
		case "ctrl+s":
			return m, m.submit()
		}

		switch m.focus {
		case focusSubmit:
			if msg.Type == tea.KeyEnter {
				return m, m.submit()
			}
			return m, nil
		case focusCountry:
			if next, handled := m.countryKey(msg); handled {
				return next, nil
			}
		default:
			if msg.Type == tea.KeyEnter {
				return m.cycleFocus(false), nil
			}
		}
	}

	return m.updateInput(msg)
}

// countryKey routes navigation keys to the picker.
func (m Model) countryKey(msg tea.KeyMsg) (Model, bool) {
	var k form.Key
	switch msg.Type {
	case tea.KeyDown:
		k = form.KeyDown
	case tea.KeyUp:
		k = form.KeyUp
	case tea.KeyEnter:
		k = form.KeyEnter
	case tea.KeyEsc:
		k = form.KeyEscape
	default:
		return m, false
	}

	if !m.ctrl.CountryKey(k) && k == form.KeyEnter {
		// Nothing to pick; enter moves on like in the other fields
		return m.cycleFocus(false), true
	}
	m.syncCountry()
	return m, true
}

// syncCountry pushes the picker's value into the text input.
func (m *Model) syncCountry() {
	ti := &m.inputs[focusCountry]
	if v := m.ctrl.Country().Value; ti.Value() != v {
		ti.SetValue(v)
		ti.CursorEnd()
	}
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= focusSubmit {
		return m, nil
	}

	ti := &m.inputs[m.focus]
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)

	if after := ti.Value(); after != before {
		switch m.focus {
		case focusUsername:
			m.ctrl.SetUsername(after)
		case focusCountry:
			m.ctrl.TypeCountry(after)
		case focusTaxID:
			m.ctrl.SetTaxID(after)
		}
	}
	return m, cmd
}

func (m Model) cycleFocus(back bool) Model {
	if m.focus == focusCountry {
		m.ctrl.CloseSuggestions()
	}

	step := focus(1)
	if back {
		step = focusCount - 1
	}
	m.focus = (m.focus + step) % focusCount

	for i := range m.inputs {
		if focus(i) == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// submit starts a submission and returns the command performing the round
// trip, or nil when validation failed or one is already pending. The
// inputs stay editable while the command runs.
func (m Model) submit() tea.Cmd {
	payload, ok := m.ctrl.BeginSubmit()
	if !ok {
		return nil
	}

	submitter, timeout := m.submitter, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := submitter.Submit(ctx, payload)
		if err != nil {
			logger.LogErr(err, "submission got no response")
			result = models.NewOfflineResult()
		}
		return submitDoneMsg{result: result}
	}
}

func (m Model) View() string {
	v := m.ctrl.View()
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Tax Registration"))
	sb.WriteString("\n")

	sb.WriteString(m.fieldView(v.Username, focusUsername))
	sb.WriteString(m.fieldView(v.Country, focusCountry))
	if v.Open {
		for i, s := range v.Suggestions {
			if i == v.Active {
				sb.WriteString(activeSuggestionStyle.Render("> " + s))
			} else {
				sb.WriteString(suggestionStyle.Render(s))
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString(m.fieldView(v.TaxID, focusTaxID))

	button := buttonStyle
	if m.focus == focusSubmit {
		button = focusedButtonStyle
	}
	label := "Submit"
	if v.Pending() {
		label = "Submitting..."
	}
	sb.WriteString(button.Render(label))
	sb.WriteString("\n")

	if line := messageLine(v); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("tab/shift+tab move • ↑/↓/enter pick country • ctrl+s submit • ctrl+c quit"))
	return sb.String()
}

func (m Model) fieldView(f form.FieldView, at focus) string {
	mark := " "
	switch f.ValidityClass() {
	case "is-valid":
		mark = validMark
	case "is-invalid":
		mark = invalidMark
	}

	ti := m.inputs[at]
	ti.Placeholder = f.Placeholder

	line := labelStyle.Render(f.Label) + ti.View() + " " + mark + "\n"
	switch {
	case f.ValidityClass() == "is-invalid":
		line += errorText.Render(f.Error) + "\n"
	case f.Hint != "":
		line += hintStyle.Render(f.Hint) + "\n"
	}
	return line
}

func messageLine(v form.View) string {
	switch {
	case v.Pending():
		return pendingStyle.Render("Submitting...")
	case v.Result == nil:
		return ""
	case v.Result.IsSuccess():
		return successStyle.Render(v.Result.Message)
	default:
		return failureStyle.Render(v.Result.Message)
	}
}

// Run starts the terminal program and blocks until it exits.
func Run(submitter models.Submitter, timeout time.Duration) error {
	_, err := tea.NewProgram(New(submitter, timeout), tea.WithAltScreen()).Run()
	return err
}
