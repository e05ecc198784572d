package wizard

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"testctl/internal/application"
)

func minimalConfig() application.Config {
	return application.Config{
		Version:    1,
		TestTypes:  []string{"unit", "integration"},
		TestsDir:   "tests",
		SourcesDir: "src",
		ReportsDir: "reports",
	}
}

func TestInitWizardModelToggles(t *testing.T) {
	model := newInitWizardModel(minimalConfig())

	model.toggleSelection()
	if model.types[0].enabled {
		t.Fatalf("expected first type disabled")
	}
	model.toggleSelection()
	if !model.types[0].enabled {
		t.Fatalf("expected first type re-enabled")
	}
}

func TestInitWizardModelConfigOutput(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	model.cursor = 1
	model.toggleSelection() // drop integration

	cfg := model.toConfig()
	if len(cfg.TestTypes) != 1 || cfg.TestTypes[0] != "unit" {
		t.Fatalf("expected only unit, got %v", cfg.TestTypes)
	}
	if cfg.TestsDir != "tests" || cfg.ReportsDir != "reports" {
		t.Fatalf("expected directories preserved, got %+v", cfg)
	}
}

func TestInitWizardDefaultsTypes(t *testing.T) {
	cfg := minimalConfig()
	cfg.TestTypes = nil
	model := newInitWizardModel(cfg)
	if len(model.types) != 2 {
		t.Fatalf("expected default types, got %v", model.types)
	}
}

func TestInitWizardMoveCursor(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	model.moveCursor(1)
	if model.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", model.cursor)
	}
	model.moveCursor(-5)
	if model.cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", model.cursor)
	}
	model.moveCursor(len(model.types) + 5)
	if model.cursor != len(model.types)-1 {
		t.Fatalf("expected cursor at max %d, got %d", len(model.types)-1, model.cursor)
	}
}

func TestInitWizardUpdateTransitions(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.state != stateEdit {
		t.Fatalf("expected edit state, got %d", model.state)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model.Update(tea.KeyMsg{Type: tea.KeySpace})
	if model.types[1].enabled {
		t.Fatalf("expected space to toggle selection")
	}
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.state != stateConfirm {
		t.Fatalf("expected confirm state, got %d", model.state)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.state != stateEdit {
		t.Fatalf("expected edit state on esc, got %d", model.state)
	}
}

func TestInitWizardAbort(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !model.aborted {
		t.Fatalf("expected abort on ctrl+c")
	}
}

func TestInitWizardViewConfirmListsTypes(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	model.state = stateConfirm
	view := model.View()
	if !strings.Contains(view, "- unit") || !strings.Contains(view, "- integration") {
		t.Fatalf("expected enabled types in view: %s", view)
	}
}

func TestRunInitWizardCompletes(t *testing.T) {
	var out bytes.Buffer
	stdin := strings.NewReader("\r\r\r")
	cfg, confirmed, err := runInitWizard(minimalConfig(), &out, stdin)
	if err != nil {
		t.Fatalf("wizard error: %v", err)
	}
	if !confirmed {
		t.Fatalf("expected wizard to confirm")
	}
	if len(cfg.TestTypes) != 2 {
		t.Fatalf("expected types preserved, got %v", cfg.TestTypes)
	}
}
