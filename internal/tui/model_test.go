package tui

import (
	"strings"
	"testing"

	"github.com/Zacy-Sokach/PolyChat/internal/params"
	"github.com/Zacy-Sokach/PolyChat/internal/session"
)

// nopCompleter 命令测试不触发网络调用
type nopCompleter struct{}

func (nopCompleter) Complete(string, params.GenerationParams) (string, error) {
	return "", nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	controller := session.NewController(nopCompleter{}, params.Default())
	return InitialModel(controller, "glm-4.5")
}

func TestShowParamsIncludesModelLabel(t *testing.T) {
	m := newTestModel(t)

	cmd := m.handleCommand(&Command{Type: CommandTypeShowParams})
	msg, ok := cmd().(CommandResultMsg)
	if !ok {
		t.Fatalf("Expected CommandResultMsg, got %T", cmd())
	}

	if !strings.Contains(msg.Content, "model: glm-4.5") {
		t.Errorf("/params output %q should carry the model label", msg.Content)
	}
	if !strings.Contains(msg.Content, "temperature") {
		t.Errorf("/params output %q should carry the sampling params", msg.Content)
	}
}

func TestWelcomeViewIncludesModelLabel(t *testing.T) {
	m := newTestModel(t)

	if !strings.Contains(m.formatMessages(), "glm-4.5") {
		t.Error("Empty transcript should show the model label in the welcome text")
	}
}

func TestClearCommandEmptiesTranscript(t *testing.T) {
	m := newTestModel(t)
	m.controller.SetDraft("你好")
	m.controller.Resolve(m.controller.Submit()())

	cmd := m.handleCommand(&Command{Type: CommandTypeClear})
	if _, ok := cmd().(CommandResultMsg); !ok {
		t.Fatal("Clear command should produce a CommandResultMsg")
	}
	if len(m.controller.Messages()) != 0 {
		t.Errorf("Clear command should empty the history, got %d messages", len(m.controller.Messages()))
	}
}
