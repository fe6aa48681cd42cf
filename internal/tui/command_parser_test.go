package tui

import "testing"

func TestParseValuedCommands(t *testing.T) {
	parser := NewCommandParser()

	cases := []struct {
		input     string
		wantType  CommandType
		wantValue string
	}{
		{"/temp 0.7", CommandTypeTemperature, "0.7"},
		{"/temperature 1.5", CommandTypeTemperature, "1.5"},
		{"温度 0.3", CommandTypeTemperature, "0.3"},
		{"/topp 0.9", CommandTypeTopP, "0.9"},
		{"/top_p 0", CommandTypeTopP, "0"},
		{"/topp off", CommandTypeTopP, "off"},
		{"/topk 5", CommandTypeTopK, "5"},
		{"/top_k 5.5", CommandTypeTopK, "5.5"},
		{"/topk off", CommandTypeTopK, "off"},
		{"/effort high", CommandTypeEffort, "high"},
		{"推理力度 minimal", CommandTypeEffort, "minimal"},
	}

	for _, c := range cases {
		cmd := parser.Parse(c.input)
		if cmd == nil {
			t.Errorf("Parse(%q) = nil, want type %v", c.input, c.wantType)
			continue
		}
		if cmd.Type != c.wantType {
			t.Errorf("Parse(%q).Type = %v, want %v", c.input, cmd.Type, c.wantType)
		}
		if cmd.Value != c.wantValue {
			t.Errorf("Parse(%q).Value = %q, want %q", c.input, cmd.Value, c.wantValue)
		}
	}
}

func TestParseBareCommands(t *testing.T) {
	parser := NewCommandParser()

	cases := []struct {
		input    string
		wantType CommandType
	}{
		{"/params", CommandTypeShowParams},
		{"参数", CommandTypeShowParams},
		{"/clear", CommandTypeClear},
		{"清空", CommandTypeClear},
		{"清空对话", CommandTypeClear},
		{"/check-update", CommandTypeCheckUpdate},
		{"check update", CommandTypeCheckUpdate},
		{"/update", CommandTypeUpdate},
		{"/help", CommandTypeHelp},
	}

	for _, c := range cases {
		cmd := parser.Parse(c.input)
		if cmd == nil {
			t.Errorf("Parse(%q) = nil, want type %v", c.input, c.wantType)
			continue
		}
		if cmd.Type != c.wantType {
			t.Errorf("Parse(%q).Type = %v, want %v", c.input, cmd.Type, c.wantType)
		}
	}
}

func TestParseNonCommands(t *testing.T) {
	parser := NewCommandParser()

	// 普通聊天输入不应被识别为命令
	for _, input := range []string{
		"",
		"   ",
		"你好，帮我写个函数",
		"what is /temp used for?",
		"/temp",          // 缺少值
		"/unknown thing", // 未注册的命令
		"update my code please",
	} {
		if cmd := parser.Parse(input); cmd != nil {
			t.Errorf("Parse(%q) = %+v, want nil", input, cmd)
		}
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	parser := NewCommandParser()

	cmd := parser.Parse("  /clear  ")
	if cmd == nil || cmd.Type != CommandTypeClear {
		t.Errorf("Parse should trim surrounding whitespace, got %+v", cmd)
	}
}

func TestIsCommand(t *testing.T) {
	parser := NewCommandParser()

	if !parser.IsCommand("/params") {
		t.Error("IsCommand(/params) should be true")
	}
	if parser.IsCommand("随便聊聊") {
		t.Error("IsCommand on plain chat input should be false")
	}
}
