package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	heliobridge "github.com/heliosim/helio-bridge"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type field struct {
	name    string
	initial string
	hint    string
}

var fields = []field{
	{"latitude", "38.5", "degrees, positive north"},
	{"longitude", "-121.7", "degrees, positive east"},
	{"utc offset", "-8", "hours, positive east"},
	{"day", "21", "1-31"},
	{"month", "6", "1-12"},
	{"year", "2023", ""},
	{"hour", "12", "0-23"},
	{"turbidity", "2", "clear sky ~2"},
}

type modelState int

const (
	stateInputArgs modelState = iota
	stateShowReport
)

type interactiveModel struct {
	err      error
	bridge   *heliobridge.Bridge
	env      *heliobridge.Env
	report   string
	inputs   []textinput.Model
	focusIdx int
	state    modelState
}

func newInteractiveModel() *interactiveModel {
	b := heliobridge.New()
	m := &interactiveModel{
		bridge: b,
		env:    b.Env(),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-11s: ", f.name)
		ti.SetValue(f.initial)
		ti.Placeholder = f.hint
		ti.Width = 24
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	return m
}

type reportMsg struct {
	err    error
	report string
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.bridge.Close()
			return m, tea.Quit

		case "q":
			if m.state == stateShowReport {
				m.bridge.Close()
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateInputArgs:
				return m, m.compute
			case stateShowReport:
				m.state = stateInputArgs
				m.report = ""
				m.err = nil
			}

		case "tab", "down":
			if m.state == stateInputArgs {
				m.cycleFocus(1)
			}

		case "shift+tab", "up":
			if m.state == stateInputArgs {
				m.cycleFocus(-1)
			}

		case "esc":
			if m.state == stateShowReport {
				m.state = stateInputArgs
				m.report = ""
				m.err = nil
			}
		}

	case reportMsg:
		m.report = msg.report
		m.err = msg.err
		m.state = stateShowReport
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) cycleFocus(delta int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = (m.focusIdx + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focusIdx].Focus()
}

func (m *interactiveModel) compute() tea.Msg {
	floats := make([]float64, len(m.inputs))
	for i, input := range m.inputs {
		v, err := strconv.ParseFloat(strings.TrimSpace(input.Value()), 64)
		if err != nil {
			return reportMsg{err: fmt.Errorf("%s: %w", fields[i].name, err)}
		}
		floats[i] = v
	}

	report, err := solarReport(m.env,
		floats[0], floats[1], floats[2],
		int(floats[3]), int(floats[4]), int(floats[5]), int(floats[6]),
		floats[7])
	return reportMsg{report: report, err: err}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sun View"))
	b.WriteString("\n\n")

	switch m.state {
	case stateInputArgs:
		for i, input := range m.inputs {
			b.WriteString(input.View())
			if fields[i].hint != "" {
				b.WriteString("  ")
				b.WriteString(labelStyle.Render(fields[i].hint))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter compute • ctrl+c quit"))

	case stateShowReport:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.report))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
