package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/entities"
	"github.com/gonewx/goodboy/pkg/types"
)

var allProfiles = []types.AnimationProfile{
	types.ProfileIdle, types.ProfileRocket, types.ProfileJump, types.ProfileSpin, types.ProfileRun,
	types.ProfilePlay, types.ProfileSpeak, types.ProfileStay, types.ProfileRollover,
}

// TestComputePose_Deterministic 测试相同 t 得到相同姿态（黄金输出测试的前提）
func TestComputePose_Deterministic(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Animation

	for _, p := range allProfiles {
		for _, at := range []float64{0, 0.1, 0.37, 1, 1.5, 2.9} {
			a := ComputePose(p, at, 3, tuning)
			b := ComputePose(p, at, 3, tuning)
			if a != b {
				t.Errorf("%v at t=%v not deterministic: %+v vs %+v", p, at, a, b)
			}
		}
	}
}

// TestComputePose_Jump 测试跳跃高度 = |sin(t·k)|·amplitude
func TestComputePose_Jump(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Animation
	k := math.Pi * tuning.JumpHopsPerSecond

	for _, at := range []float64{0, 0.25, 0.5, 0.75, 1.2, 1.99} {
		pose := ComputePose(types.ProfileJump, at, 2, tuning)
		want := math.Abs(math.Sin(at*k)) * tuning.JumpHeight
		if math.Abs(pose.Offset.Y()-want) > 1e-9 {
			t.Errorf("jump height at %v = %v, want %v", at, pose.Offset.Y(), want)
		}
		if pose.Offset.Y() < 0 {
			t.Errorf("jump height negative at %v", at)
		}
	}

	// 顶点
	peak := ComputePose(types.ProfileJump, 0.5/tuning.JumpHopsPerSecond, 2, tuning)
	if math.Abs(peak.Offset.Y()-tuning.JumpHeight) > 1e-9 {
		t.Errorf("peak height = %v, want %v", peak.Offset.Y(), tuning.JumpHeight)
	}
}

// TestComputePose_Spin 测试转圈角度 = t·角速度
func TestComputePose_Spin(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Animation
	pose := ComputePose(types.ProfileSpin, 0.75, 2, tuning)
	if want := 0.75 * tuning.SpinSpeed; math.Abs(pose.Rotation.Y()-want) > 1e-9 {
		t.Errorf("spin yaw = %v, want %v", pose.Rotation.Y(), want)
	}
}

// TestComputePose_ReturnsHome 测试绕圈跑和打滚在指令结束时回到原点
func TestComputePose_ReturnsHome(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Animation

	for _, p := range []types.AnimationProfile{types.ProfileRun, types.ProfileRollover} {
		end := ComputePose(p, 4, 4, tuning)
		horizontal := mgl64.Vec2{end.Offset.X(), end.Offset.Z()}
		if horizontal.Len() > 1e-6 {
			t.Errorf("%v ends away from home: %v", p, end.Offset)
		}

		mid := ComputePose(p, 2, 4, tuning)
		midHorizontal := mgl64.Vec2{mid.Offset.X(), mid.Offset.Z()}
		if midHorizontal.Len() < 0.5 {
			t.Errorf("%v should travel away from home mid-way: %v", p, mid.Offset)
		}
	}
}

// TestComputePose_Rocket 测试火箭：先下蹲，再升空，结束时落地
func TestComputePose_Rocket(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Animation
	d := config.LookupCommand(types.CommandSit).DurationSeconds()

	crouch := ComputePose(types.ProfileRocket, tuning.RocketCrouch*0.9, d, tuning)
	if crouch.Offset.Y() != 0 || crouch.Scale.Y() >= 1 {
		t.Errorf("expected crouch before launch, got offset=%v scale=%v", crouch.Offset, crouch.Scale)
	}
	if crouch.Flame {
		t.Error("no flame while crouching")
	}

	mid := tuning.RocketCrouch + (d-tuning.RocketCrouch)/2
	apex := ComputePose(types.ProfileRocket, mid, d, tuning)
	if math.Abs(apex.Offset.Y()-tuning.RocketHeight) > 1e-6 {
		t.Errorf("apex height = %v, want %v", apex.Offset.Y(), tuning.RocketHeight)
	}

	launch := ComputePose(types.ProfileRocket, tuning.RocketCrouch+0.2, d, tuning)
	if !launch.Flame {
		t.Error("flame expected during ascent")
	}

	landed := ComputePose(types.ProfileRocket, d, d, tuning)
	if math.Abs(landed.Offset.Y()) > 1e-6 {
		t.Errorf("rocket should land at the end, height = %v", landed.Offset.Y())
	}
}

// TestComputePose_UnknownProfileIsIdle 测试未知档案按 idle 处理
func TestComputePose_UnknownProfileIsIdle(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Animation
	got := ComputePose(types.AnimationProfile(99), 1.3, 0, tuning)
	want := ComputePose(types.ProfileIdle, 1.3, 0, tuning)
	if got != want {
		t.Errorf("unknown profile pose = %+v, want idle %+v", got, want)
	}
}

// TestAnimationSystem_AdvancesTime 测试系统推进计时并写入姿态
func TestAnimationSystem_AdvancesTime(t *testing.T) {
	em := ecs.NewEntityManager()
	pet, _ := entities.NewPetEntity(em, mgl64.Vec3{})
	tuning := config.DefaultDirectorConfig().Animation
	as := NewAnimationSystem(em, pet, tuning)

	state, _ := ecs.GetComponent[*components.AnimationStateComponent](em, pet)
	state.ActiveCommand = types.CommandJump

	for i := 0; i < 30; i++ {
		as.Update(testFrame)
	}

	if math.Abs(state.ElapsedSinceStart-0.5) > 1e-9 || math.Abs(state.ElapsedTotal-0.5) > 1e-9 {
		t.Errorf("elapsed = (%v, %v), want (0.5, 0.5)", state.ElapsedSinceStart, state.ElapsedTotal)
	}

	pose, _ := ecs.GetComponent[*components.PoseComponent](em, pet)
	want := ComputePose(types.ProfileJump, state.ElapsedSinceStart, 2, tuning)
	if *pose != want {
		t.Errorf("pose = %+v, want %+v", *pose, want)
	}
}

// TestAnimationSystem_PublishThrottle 测试位置发布节流
func TestAnimationSystem_PublishThrottle(t *testing.T) {
	em := ecs.NewEntityManager()
	pet, _ := entities.NewPetEntity(em, mgl64.Vec3{})
	tuning := config.DefaultDirectorConfig().Animation
	// 奔跑每帧约移动 0.065，阈值取 0.2 使节流可观测
	tuning.PublishThreshold = 0.2
	as := NewAnimationSystem(em, pet, tuning)
	tracked, _ := ecs.GetComponent[*components.TrackedPositionComponent](em, pet)

	// idle 不移动：不应重复发布
	before := tracked.PublishCount
	for i := 0; i < 120; i++ {
		as.Update(testFrame)
	}
	if tracked.PublishCount != before {
		t.Errorf("idle pet published %d times", tracked.PublishCount-before)
	}

	// 奔跑：发布次数远少于帧数，且发布值与真实位置的偏差不超过阈值
	state, _ := ecs.GetComponent[*components.AnimationStateComponent](em, pet)
	state.ActiveCommand = types.CommandRun
	state.ElapsedSinceStart = 0

	frames := 240
	before = tracked.PublishCount
	for i := 0; i < frames; i++ {
		as.Update(testFrame)
		if d := tracked.Position.Sub(tracked.Published).Len(); d > tuning.PublishThreshold {
			t.Fatalf("published position lags by %v (> threshold)", d)
		}
	}
	published := tracked.PublishCount - before
	if published == 0 || published >= frames {
		t.Errorf("expected throttled publishing, got %d publishes in %d frames", published, frames)
	}
}

// TestAnimationSystem_MissingPet 测试宠物实体缺失时跳过
func TestAnimationSystem_MissingPet(t *testing.T) {
	em := ecs.NewEntityManager()
	as := NewAnimationSystem(em, ecs.EntityID(7), config.DefaultDirectorConfig().Animation)
	as.Update(testFrame)
}
