package types

import (
	"testing"

	"gopkg.in/yaml.v3"
)

// TestParseCommand 测试指令解析（大小写、空白、roll over 写法）
func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
		ok    bool
	}{
		{"sit", CommandSit, true},
		{"  JUMP ", CommandJump, true},
		{"Spin", CommandSpin, true},
		{"roll over", CommandRollover, true},
		{"rollover", CommandRollover, true},
		{"idle", CommandIdle, true},
		{"fetch", CommandIdle, false},
		{"", CommandIdle, false},
	}

	for _, tt := range tests {
		got, ok := ParseCommand(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCommand(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

// TestCommand_String 测试指令名与解析互逆
func TestCommand_String(t *testing.T) {
	for _, c := range AllCommands() {
		parsed, ok := ParseCommand(c.String())
		if !ok || parsed != c {
			t.Errorf("ParseCommand(%q) = %v, want %v", c.String(), parsed, c)
		}
	}

	if Command(-1).String() != "unknown" || CommandCount.String() != "unknown" {
		t.Error("Out-of-range commands should stringify as unknown")
	}
}

// TestCommand_YAML 测试指令可以直接出现在 YAML 中
func TestCommand_YAML(t *testing.T) {
	var doc struct {
		Cmd Command `yaml:"cmd"`
	}
	if err := yaml.Unmarshal([]byte("cmd: roll over\n"), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc.Cmd != CommandRollover {
		t.Errorf("Expected rollover, got %v", doc.Cmd)
	}

	if err := yaml.Unmarshal([]byte("cmd: fly\n"), &doc); err == nil {
		t.Error("Expected error for unknown command name")
	}
}
