package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-entryform/pkg/controller"
	"github.com/goliatone/go-entryform/pkg/form"
)

// stateMsg carries a controller snapshot into the program.
type stateMsg struct {
	state form.State
}

type model struct {
	ctrl   *controller.Controller
	input  textinput.Model
	table  table.Model
	state  form.State
	styles Styles
	done   bool
}

func newModel(ctrl *controller.Controller, styles Styles) model {
	input := textinput.New()
	input.Placeholder = "Name"
	input.CharLimit = 80
	input.Width = 32
	input.Focus()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Country", Width: 20},
		}),
		table.WithHeight(8),
	)

	m := model{
		ctrl:   ctrl,
		input:  input,
		table:  t,
		styles: styles,
	}
	m.apply(ctrl.State())
	m.input.SetValue(m.state.Name)
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.apply(msg.state)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "tab", "right":
			m.ctrl.OnCountryChange(m.shiftCountry(1))
			m.apply(m.ctrl.State())
			return m, nil
		case "shift+tab", "left":
			m.ctrl.OnCountryChange(m.shiftCountry(-1))
			m.apply(m.ctrl.State())
			return m, nil
		case "enter", "ctrl+s":
			m.ctrl.OnAdd()
			m.resync()
			return m, nil
		case "esc":
			m.ctrl.OnClear()
			m.resync()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.ctrl.OnNameChange(value)
		m.apply(m.ctrl.State())
	}
	return m, cmd
}

// apply adopts s unless a newer snapshot was already seen. Listener
// notifications race each other, so versions decide.
func (m *model) apply(s form.State) {
	if s.Version < m.state.Version {
		return
	}
	m.state = s
	rows := make([]table.Row, 0, len(s.Table))
	for _, entry := range s.Table {
		rows = append(rows, table.Row{entry.Name, entry.Country})
	}
	m.table.SetRows(rows)
}

// resync copies the controller's fields back into the input after Add or
// Clear changed them.
func (m *model) resync() {
	m.apply(m.ctrl.State())
	if m.input.Value() != m.state.Name {
		m.input.SetValue(m.state.Name)
		m.input.CursorEnd()
	}
}

func (m model) shiftCountry(step int) string {
	options := m.state.Options
	if len(options) == 0 {
		return m.state.Country
	}
	idx := 0
	for i, option := range options {
		if option == m.state.Country {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}

func (m model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Entry form"))
	b.WriteString("\n")

	b.WriteString(m.styles.Label.Render("Name"))
	b.WriteString(m.input.View())
	if m.state.Validating {
		b.WriteString(" ")
		b.WriteString(m.styles.Status.Render("checking..."))
	}
	b.WriteString("\n")

	b.WriteString(m.styles.Label.Render("Country"))
	if m.state.Country == "" {
		b.WriteString(m.styles.Status.Render("(none)"))
	} else {
		b.WriteString(m.styles.Country.Render("< " + m.state.Country + " >"))
	}
	b.WriteString("\n")

	if m.state.Error != "" {
		b.WriteString(m.styles.Error.Render(m.state.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	add := "enter add"
	if !m.state.CanAdd() {
		add = m.styles.Disabled.Render(add)
	}
	b.WriteString(m.styles.Help.Render("tab/←/→ country • " + add + " • esc clear • ctrl+c quit"))
	return b.String()
}
