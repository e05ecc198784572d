// Package wizard implements the interactive review step of `testctl init`.
package wizard

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"testctl/internal/application"
)

type (
	wizardState int

	initWizardModel struct {
		state     wizardState
		cfg       application.Config
		types     []wizardType
		cursor    int
		confirmed bool
		aborted   bool
	}

	wizardType struct {
		name    string
		enabled bool
	}
)

const (
	stateIntro wizardState = iota
	stateEdit
	stateConfirm
)

func Run(cfg application.Config, stdout io.Writer, stdin io.Reader) (application.Config, bool, error) {
	return runInitWizard(cfg, stdout, stdin)
}

func runInitWizard(cfg application.Config, stdout io.Writer, stdin io.Reader) (application.Config, bool, error) {
	model := newInitWizardModel(cfg)
	program := tea.NewProgram(model, tea.WithInput(stdin), tea.WithOutput(stdout))
	res, err := program.Run()
	if err != nil {
		return cfg, false, err
	}
	finalModel, ok := res.(*initWizardModel)
	if !ok {
		return cfg, false, fmt.Errorf("unexpected wizard state")
	}
	if finalModel.aborted || !finalModel.confirmed {
		return cfg, false, nil
	}
	return finalModel.toConfig(), true, nil
}

func newInitWizardModel(cfg application.Config) *initWizardModel {
	types := make([]wizardType, len(cfg.TestTypes))
	for i, name := range cfg.TestTypes {
		types[i] = wizardType{name: name, enabled: true}
	}
	if len(types) == 0 {
		types = []wizardType{
			{name: "unit", enabled: true},
			{name: "integration", enabled: true},
		}
	}
	return &initWizardModel{
		state:  stateIntro,
		cfg:    cfg,
		types:  types,
		cursor: 0,
	}
}

func (m *initWizardModel) Init() tea.Cmd {
	return nil
}

func (m *initWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			switch m.state {
			case stateIntro:
				m.state = stateEdit
			case stateEdit:
				m.state = stateConfirm
			case stateConfirm:
				m.confirmed = true
				return m, tea.Quit
			}
		case "esc":
			if m.state == stateConfirm {
				m.state = stateEdit
			}
		case "up":
			if m.state == stateEdit {
				m.moveCursor(-1)
			}
		case "down":
			if m.state == stateEdit {
				m.moveCursor(1)
			}
		case " ", "x":
			if m.state == stateEdit {
				m.toggleSelection()
			}
		}
	}
	return m, nil
}

func (m *initWizardModel) View() string {
	switch m.state {
	case stateIntro:
		return m.viewIntro()
	case stateEdit:
		return m.viewEdit()
	case stateConfirm:
		return m.viewConfirm()
	default:
		return ""
	}
}

func (m *initWizardModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.types)-1 {
		m.cursor = len(m.types) - 1
	}
}

func (m *initWizardModel) toggleSelection() {
	if m.cursor < 0 || m.cursor >= len(m.types) {
		return
	}
	m.types[m.cursor].enabled = !m.types[m.cursor].enabled
}

func (m *initWizardModel) viewIntro() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\ntestctl init wizard\n\n")
	fmt.Fprintf(&b, "testctl detected %d test types under %s/. The wizard helps you review them before writing the config.\n\n", len(m.types), m.cfg.TestsDir)
	fmt.Fprintf(&b, "Press Enter to continue, or Ctrl+C to cancel.\n")
	return b.String()
}

func (m *initWizardModel) viewEdit() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nReview test types\n\n")
	fmt.Fprintf(&b, "Use ↑/↓ to move, space to toggle inclusion.\n\n")
	fmt.Fprintf(&b, "Tests directory:   %s\n", m.cfg.TestsDir)
	fmt.Fprintf(&b, "Sources directory: %s\n", m.cfg.SourcesDir)
	fmt.Fprintf(&b, "Reports directory: %s\n\n", m.cfg.ReportsDir)
	fmt.Fprintf(&b, "Test types:\n")
	for idx, t := range m.types {
		prefix := "  "
		if m.cursor == idx {
			prefix = "> "
		}
		mark := "[ ]"
		if t.enabled {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, mark, t.name)
	}
	fmt.Fprintf(&b, "\nEnter to continue, q to cancel.\n")
	return b.String()
}

func (m *initWizardModel) viewConfirm() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nReady to write configuration\n\n")
	fmt.Fprintf(&b, "Test types:\n")
	for _, t := range m.types {
		if !t.enabled {
			continue
		}
		fmt.Fprintf(&b, "  - %s\n", t.name)
	}
	fmt.Fprintf(&b, "\nTests: %s  Sources: %s  Reports: %s\n", m.cfg.TestsDir, m.cfg.SourcesDir, m.cfg.ReportsDir)
	fmt.Fprintf(&b, "\nPress Enter to save, Esc to go back, q to cancel.\n")
	return b.String()
}

func (m *initWizardModel) toConfig() application.Config {
	cfg := m.cfg
	cfg.TestTypes = make([]string, 0, len(m.types))
	for _, t := range m.types {
		if t.enabled {
			cfg.TestTypes = append(cfg.TestTypes, t.name)
		}
	}
	return cfg
}
