package systems

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/entities"
	"github.com/gonewx/goodboy/pkg/types"
)

type cameraFixture struct {
	em       *ecs.EntityManager
	pet      ecs.EntityID
	timers   *TimerSystem
	dispatch *CommandDispatchSystem
	anim     *AnimationSystem
	camera   *CameraSystem
	tuning   *config.DirectorConfig
}

func newCameraFixture(t *testing.T, cfg *config.DirectorConfig) *cameraFixture {
	t.Helper()
	em := ecs.NewEntityManager()
	pet, err := entities.NewPetEntity(em, cfg.Animation.HomePosition)
	if err != nil {
		t.Fatal(err)
	}
	timers := NewTimerSystem(em)
	return &cameraFixture{
		em:       em,
		pet:      pet,
		timers:   timers,
		dispatch: NewCommandDispatchSystem(em, timers, pet),
		anim:     NewAnimationSystem(em, pet, cfg.Animation),
		camera:   NewCameraSystem(em, pet, cfg.Camera, rand.New(rand.NewPCG(7, 11))),
		tuning:   cfg,
	}
}

func (f *cameraFixture) step(frames int) {
	for i := 0; i < frames; i++ {
		f.timers.Update(testFrame)
		f.anim.Update(testFrame)
		f.camera.Update(testFrame)
		f.em.RemoveMarkedEntities()
	}
}

func (f *cameraFixture) cam(t *testing.T) *components.CameraComponent {
	t.Helper()
	cam, ok := ecs.GetComponent[*components.CameraComponent](f.em, f.camera.CameraEntity())
	if !ok {
		t.Fatal("CameraComponent missing")
	}
	return cam
}

// TestCameraSystem_NewCameraSystem 测试镜头实体在 idle 机位创建
func TestCameraSystem_NewCameraSystem(t *testing.T) {
	cfg := config.DefaultDirectorConfig()
	f := newCameraFixture(t, cfg)

	if f.camera.CameraEntity() == ecs.InvalidEntity {
		t.Fatal("camera entity not created")
	}
	cam := f.cam(t)
	if cam.Position != cfg.Camera.IdlePosition {
		t.Errorf("initial position = %v, want %v", cam.Position, cfg.Camera.IdlePosition)
	}
	if cam.FieldOfView != config.LookupCommand(types.CommandIdle).FieldOfView {
		t.Errorf("initial fov = %v", cam.FieldOfView)
	}
	if cam.ShakeIntensity != 0 {
		t.Errorf("initial shake = %v, want 0", cam.ShakeIntensity)
	}
}

// TestCameraTarget_Deterministic 测试机位函数对相同输入给出相同输出
func TestCameraTarget_Deterministic(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Camera
	pet := mgl64.Vec3{0.3, 1.1, -0.4}

	for _, p := range allProfiles {
		for _, at := range []float64{0, 0.5, 1.25, 3} {
			p1, l1 := CameraTarget(p, at, 10+at, pet, tuning)
			p2, l2 := CameraTarget(p, at, 10+at, pet, tuning)
			if p1 != p2 || l1 != l2 {
				t.Errorf("%v at t=%v not deterministic", p, at)
			}
		}
	}
}

// TestCameraTarget_TracksPet 测试跟拍机位随宠物移动
func TestCameraTarget_TracksPet(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Camera
	a, _ := CameraTarget(types.ProfileRun, 1, 1, mgl64.Vec3{0, 0, 0}, tuning)
	b, lookAt := CameraTarget(types.ProfileRun, 1, 1, mgl64.Vec3{2, 0, -1}, tuning)

	if !b.Sub(a).ApproxEqual(mgl64.Vec3{2, 0, -1}) {
		t.Errorf("tracking shot did not follow the pet: a=%v b=%v", a, b)
	}
	if lookAt != (mgl64.Vec3{2, 0, -1}) {
		t.Errorf("tracking shot should look at the pet, got %v", lookAt)
	}
}

// TestCameraTarget_IdleOrbit 测试 idle 机位缓慢环绕，距离注视点的水平距离基本不变
func TestCameraTarget_IdleOrbit(t *testing.T) {
	tuning := config.DefaultDirectorConfig().Camera
	tuning.IdleOscillation = 0

	p0, _ := CameraTarget(types.ProfileIdle, 0, 0, mgl64.Vec3{}, tuning)
	p1, _ := CameraTarget(types.ProfileIdle, 0, 20, mgl64.Vec3{}, tuning)

	if p0.ApproxEqual(p1) {
		t.Error("idle camera should orbit over time")
	}
	r0 := math.Hypot(p0.X(), p0.Z())
	r1 := math.Hypot(p1.X(), p1.Z())
	if math.Abs(r0-r1) > 1e-9 {
		t.Errorf("orbit radius changed: %v -> %v", r0, r1)
	}
	if p0.Y() != p1.Y() {
		t.Errorf("orbit height changed: %v -> %v", p0.Y(), p1.Y())
	}
}

// TestCameraSystem_ReturnsToIdle 测试指令结束后平滑回到 idle 机位
func TestCameraSystem_ReturnsToIdle(t *testing.T) {
	cfg := config.DefaultDirectorConfig()
	cfg.Camera.IdleOscillation = 0
	cfg.Camera.IdleOrbitSpeed = 0
	f := newCameraFixture(t, cfg)

	f.dispatch.Issue(types.CommandRollover)
	f.step(int(config.LookupCommand(types.CommandRollover).DurationSeconds() * 60))

	cam := f.cam(t)
	if cam.SmoothedPosition.Sub(cfg.Camera.IdlePosition).Len() < 1 {
		t.Fatalf("camera did not move for rollover: %v", cam.SmoothedPosition)
	}

	// 回到 idle 后第一帧不应跳变
	before := cam.SmoothedPosition
	f.step(1)
	if cam.SmoothedPosition.Sub(before).Len() > 0.5 {
		t.Errorf("camera jumped on return to idle: %v -> %v", before, cam.SmoothedPosition)
	}

	f.step(20 * 60)
	if !cam.SmoothedPosition.ApproxEqualThreshold(cfg.Camera.IdlePosition, 1e-3) {
		t.Errorf("camera did not settle at idle position: %v", cam.SmoothedPosition)
	}
	if math.Abs(cam.FieldOfView-config.LookupCommand(types.CommandIdle).FieldOfView) > 1e-3 {
		t.Errorf("fov did not return to idle: %v", cam.FieldOfView)
	}
}

// TestCameraSystem_FieldOfView 测试视野向指令目标趋近
func TestCameraSystem_FieldOfView(t *testing.T) {
	cfg := config.DefaultDirectorConfig()
	f := newCameraFixture(t, cfg)

	f.dispatch.Issue(types.CommandSit)
	start := f.cam(t).FieldOfView
	target := config.LookupCommand(types.CommandSit).FieldOfView

	f.step(30)
	mid := f.cam(t).FieldOfView
	if !(mid > start && mid < target) {
		t.Errorf("fov should move toward %v: start=%v mid=%v", target, start, mid)
	}
}

// TestCameraSystem_ShakeDecaysLinearly 测试抖动按线性速率衰减到 0
func TestCameraSystem_ShakeDecaysLinearly(t *testing.T) {
	cfg := config.DefaultDirectorConfig()
	f := newCameraFixture(t, cfg)

	f.dispatch.Issue(types.CommandSit)
	f.step(1)

	amp := config.LookupCommand(types.CommandSit).ShakeAmplitude
	want := amp - cfg.Camera.ShakeDecay*testFrame
	if got := f.cam(t).ShakeIntensity; math.Abs(got-want) > 1e-9 {
		t.Fatalf("shake after 1 frame = %v, want %v", got, want)
	}

	f.step(30)
	want = amp - cfg.Camera.ShakeDecay*31*testFrame
	if got := f.cam(t).ShakeIntensity; math.Abs(got-want) > 1e-9 {
		t.Errorf("shake after 31 frames = %v, want %v", got, want)
	}

	f.step(120)
	if got := f.cam(t).ShakeIntensity; got != 0 {
		t.Errorf("shake should reach 0, got %v", got)
	}
}

// TestCameraSystem_MinHeight 测试无论抖动多大镜头高度都不低于最低值
func TestCameraSystem_MinHeight(t *testing.T) {
	cfg := config.DefaultDirectorConfig()
	cfg.Camera.MinHeight = 0.5
	f := newCameraFixture(t, cfg)

	for _, cmd := range types.AllCommands() {
		if cmd == types.CommandIdle {
			continue
		}
		f.dispatch.Issue(cmd)
		for i := 0; i < 300; i++ {
			// 人为注入巨大的抖动
			f.cam(t).ShakeIntensity = 50
			f.step(1)
			if y := f.cam(t).Position.Y(); y < cfg.Camera.MinHeight {
				t.Fatalf("%v: camera height %v below minimum %v", cmd, y, cfg.Camera.MinHeight)
			}
		}
		f.step(600)
	}
}

// TestCameraSystem_MissingComponents 测试缺失镜头或宠物时跳过
func TestCameraSystem_MissingComponents(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultDirectorConfig()
	cs := NewCameraSystem(em, ecs.EntityID(1234), cfg.Camera, nil)

	cs.Update(testFrame)

	cam, _ := ecs.GetComponent[*components.CameraComponent](em, cs.CameraEntity())
	if cam.Position != cfg.Camera.IdlePosition {
		t.Error("camera should not move without a pet")
	}

	em.DestroyEntity(cs.CameraEntity())
	em.RemoveMarkedEntities()
	cs.Update(testFrame)
}
