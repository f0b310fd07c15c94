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

// TestLightingFor_Deterministic 测试灯光函数确定且输出合法
func TestLightingFor_Deterministic(t *testing.T) {
	cfg := config.DefaultDirectorConfig()

	for _, p := range allProfiles {
		for _, at := range []float64{0, 0.3, 1, 2.7} {
			a := LightingFor(p, at, cfg.Lighting.Lights, cfg.Lighting)
			b := LightingFor(p, at, cfg.Lighting.Lights, cfg.Lighting)
			if len(a) != len(cfg.Lighting.Lights) {
				t.Fatalf("%v: expected %d lights, got %d", p, len(cfg.Lighting.Lights), len(a))
			}
			for i := range a {
				if a[i] != b[i] {
					t.Errorf("%v light %s not deterministic at t=%v", p, a[i].Name, at)
				}
				if !a[i].Color.IsValid() {
					t.Errorf("%v light %s has out-of-range color %v", p, a[i].Name, a[i].Color)
				}
				if a[i].Intensity < 0 {
					t.Errorf("%v light %s has negative intensity", p, a[i].Name)
				}
			}
		}
	}
}

// TestLightingFor_SpinHueCycles 测试转圈时轮廓光色相循环
func TestLightingFor_SpinHueCycles(t *testing.T) {
	cfg := config.DefaultDirectorConfig()

	rimAt := func(at float64) LightState {
		for _, s := range LightingFor(types.ProfileSpin, at, cfg.Lighting.Lights, cfg.Lighting) {
			if s.Name == "rim" {
				return s
			}
		}
		t.Fatal("rim light missing")
		return LightState{}
	}

	h0, _, _ := rimAt(0).Color.Hsv()
	h1, _, _ := rimAt(1).Color.Hsv()
	want := 360 * cfg.Lighting.HueCycleSpeed
	if math.Abs((h1-h0)-want) > 1 {
		t.Errorf("rim hue moved %v degrees in 1s, want %v", h1-h0, want)
	}

	// 一个完整周期后回到同一色相
	period := 1 / cfg.Lighting.HueCycleSpeed
	if rimAt(0).Color.DistanceRgb(rimAt(period).Color) > 1e-6 {
		t.Error("hue cycle should repeat after one period")
	}
}

// TestLightingSystem_Update 测试系统把灯光参数写入光源实体
func TestLightingSystem_Update(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultDirectorConfig()
	pet, _ := entities.NewPetEntity(em, mgl64.Vec3{})
	ls := NewLightingSystem(em, pet, cfg.Lighting)

	state, _ := ecs.GetComponent[*components.AnimationStateComponent](em, pet)
	state.ActiveCommand = types.CommandSit
	state.ElapsedSinceStart = 1.0

	ls.Update(testFrame)

	id, ok := ls.LightEntity("key")
	if !ok {
		t.Fatal("key light entity missing")
	}
	key, _ := ecs.GetComponent[*components.LightComponent](em, id)

	want := LightingFor(types.ProfileRocket, 1.0, cfg.Lighting.Lights, cfg.Lighting)[0]
	if key.Color != want.Color || key.Intensity != want.Intensity || key.Angle != want.Angle {
		t.Errorf("key light = %+v, want %+v", key, want)
	}
	if key.BaseIntensity != cfg.Lighting.Lights[0].Intensity {
		t.Error("base intensity must keep the configured value")
	}
}

// TestLightingSystem_MissingPet 测试宠物缺失时保持基础值
func TestLightingSystem_MissingPet(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultDirectorConfig()
	ls := NewLightingSystem(em, ecs.EntityID(999), cfg.Lighting)

	ls.Update(testFrame)

	id, _ := ls.LightEntity("fill")
	fill, _ := ecs.GetComponent[*components.LightComponent](em, id)
	if fill.Intensity != fill.BaseIntensity {
		t.Errorf("fill intensity changed without a pet: %v", fill.Intensity)
	}
}

// TestLightingFor_RoleNotName 测试调制按角色生效，与光源名称无关
func TestLightingFor_RoleNotName(t *testing.T) {
	cfg := config.DefaultDirectorConfig()
	renamed := append([]config.LightConfig(nil), cfg.Lighting.Lights...)
	for i := range renamed {
		renamed[i].Name = "light-" + renamed[i].Role.String()
	}

	want := LightingFor(types.ProfileRocket, 1.3, cfg.Lighting.Lights, cfg.Lighting)
	got := LightingFor(types.ProfileRocket, 1.3, renamed, cfg.Lighting)
	for i := range want {
		if got[i].Color != want[i].Color || got[i].Intensity != want[i].Intensity || got[i].Angle != want[i].Angle {
			t.Errorf("%s lost its modulation after rename: got %+v, want %+v", renamed[i].Name, got[i], want[i])
		}
		if got[i].Role != renamed[i].Role {
			t.Errorf("role not carried: %v", got[i].Role)
		}
	}

	// 主光在火箭档案下一定被调亮
	for _, s := range got {
		if s.Role == types.LightRoleKey && s.Intensity <= cfg.Lighting.Lights[0].Intensity {
			t.Errorf("key light not modulated: %v", s.Intensity)
		}
	}
}
