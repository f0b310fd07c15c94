package main

import (
	"reflect"
	"testing"

	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/types"
)

// TestRun_Jump 跳跃指令在 2 秒后完成，之后的采样都是 idle
func TestRun_Jump(t *testing.T) {
	trace, err := run(config.DefaultDirectorConfig(), types.CommandJump)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !trace.Completed {
		t.Error("jump should complete within the trace")
	}
	if len(trace.Samples) != 30 {
		t.Errorf("got %d samples, want 30 (3s at 60fps, every 6 frames)", len(trace.Samples))
	}

	last := trace.Samples[len(trace.Samples)-1]
	if last.Command != "idle" {
		t.Errorf("last sample command = %s, want idle", last.Command)
	}
	if last.Camera.Y() < config.DefaultDirectorConfig().Camera.MinHeight {
		t.Error("camera below minimum height")
	}
}

// TestRun_Deterministic 相同参数输出相同
func TestRun_Deterministic(t *testing.T) {
	a, err := run(config.DefaultDirectorConfig(), types.CommandSit)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := run(config.DefaultDirectorConfig(), types.CommandSit)
	if !reflect.DeepEqual(a, b) {
		t.Error("trace should be deterministic for the same seed")
	}
}
