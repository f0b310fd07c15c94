package systems

import (
	"testing"

	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/types"
)

// TestRenderSystem_BuildScene 测试从组件收集绘制数据
func TestRenderSystem_BuildScene(t *testing.T) {
	cfg := config.DefaultDirectorConfig()
	f := newCameraFixture(t, cfg)
	lighting := NewLightingSystem(f.em, f.pet, cfg.Lighting)
	rs := NewRenderSystem(f.em, f.pet, f.camera.CameraEntity())

	f.dispatch.Issue(types.CommandSit)
	f.step(60)
	lighting.Update(testFrame)

	scene, ok := rs.BuildScene(config.GameWindowWidth, config.GameWindowHeight)
	if !ok {
		t.Fatal("BuildScene() should succeed when all components exist")
	}

	if len(scene.Lights) != len(cfg.Lighting.Lights) {
		t.Errorf("got %d lights, want %d", len(scene.Lights), len(cfg.Lighting.Lights))
	}
	ambient := 0
	for _, l := range scene.Lights {
		if l.Ambient {
			ambient++
		}
	}
	if ambient != 1 {
		t.Errorf("got %d ambient lights, want 1", ambient)
	}

	pos, _ := ecs.GetComponent[*components.TrackedPositionComponent](f.em, f.pet)
	if scene.PetPosition != pos.Position {
		t.Errorf("PetPosition = %v, want %v", scene.PetPosition, pos.Position)
	}

	// 火箭飞行前半段有尾焰
	hasFlame := false
	for _, b := range scene.Boxes {
		if b.Name == "flame" {
			hasFlame = true
		}
	}
	if !hasFlame {
		t.Error("rocket should show the flame box one second in")
	}
}

// TestRenderSystem_MissingComponents 组件缺失时跳过
func TestRenderSystem_MissingComponents(t *testing.T) {
	cfg := config.DefaultDirectorConfig()
	f := newCameraFixture(t, cfg)

	rs := NewRenderSystem(f.em, f.pet, ecs.EntityID(9999))
	if _, ok := rs.BuildScene(800, 600); ok {
		t.Error("missing camera should skip the frame")
	}

	rs = NewRenderSystem(f.em, f.pet, f.camera.CameraEntity())
	ecs.RemoveComponent[*components.PoseComponent](f.em, f.pet)
	if _, ok := rs.BuildScene(800, 600); ok {
		t.Error("missing pose should skip the frame")
	}
}
