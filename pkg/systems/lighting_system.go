package systems

import (
	"math"

	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/types"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// 火箭尾焰和坐姿的暖色
var (
	rocketOrange = colorful.Color{R: 1.0, G: 0.48, B: 0.1}
	calmWarm     = colorful.Color{R: 1.0, G: 0.85, B: 0.63}
)

// LightState 单个光源在某一时刻的输出
type LightState struct {
	Name      string
	Role      types.LightRole
	Color     colorful.Color
	Intensity float64
	Angle     float64
}

// LightingSystem 灯光调制
//
// 纯装饰：每条指令对每个光源定义颜色/强度/角度关于时间的闭式函数，
// 没有状态机，也没有失败路径。
type LightingSystem struct {
	entityManager *ecs.EntityManager
	petEntity     ecs.EntityID
	lights        []config.LightConfig
	tuning        config.LightingTuning
	lightEntities map[string]ecs.EntityID
}

// NewLightingSystem 创建灯光系统，并为每个配置的光源创建实体
func NewLightingSystem(em *ecs.EntityManager, petEntity ecs.EntityID, tuning config.LightingTuning) *LightingSystem {
	ls := &LightingSystem{
		entityManager: em,
		petEntity:     petEntity,
		lights:        tuning.Lights,
		tuning:        tuning,
		lightEntities: make(map[string]ecs.EntityID, len(tuning.Lights)),
	}

	for _, l := range tuning.Lights {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.LightComponent{
			Name:          l.Name,
			Role:          l.Role,
			Color:         l.Color.Color,
			Intensity:     l.Intensity,
			Angle:         l.Angle,
			BaseColor:     l.Color.Color,
			BaseIntensity: l.Intensity,
			BaseAngle:     l.Angle,
		})
		ls.lightEntities[l.Name] = id
	}

	return ls
}

// LightEntity 按名称返回光源实体
func (ls *LightingSystem) LightEntity(name string) (ecs.EntityID, bool) {
	id, ok := ls.lightEntities[name]
	return id, ok
}

// Update 写入本帧的灯光参数，宠物缺失时跳过
func (ls *LightingSystem) Update(deltaTime float64) {
	state, ok := ecs.GetComponent[*components.AnimationStateComponent](ls.entityManager, ls.petEntity)
	if !ok {
		return
	}

	profile := config.LookupCommand(state.ActiveCommand)
	t := state.ElapsedSinceStart
	if state.ActiveCommand == types.CommandIdle {
		t = state.ElapsedTotal
	}

	for _, st := range LightingFor(profile.Animation, t, ls.lights, ls.tuning) {
		id, ok := ls.lightEntities[st.Name]
		if !ok {
			continue
		}
		light, ok := ecs.GetComponent[*components.LightComponent](ls.entityManager, id)
		if !ok {
			continue
		}
		light.Color = st.Color
		light.Intensity = st.Intensity
		light.Angle = st.Angle
	}
}

// LightingFor 计算所有光源在时间 t 的状态（纯函数）
func LightingFor(profile types.AnimationProfile, t float64, lights []config.LightConfig, tuning config.LightingTuning) []LightState {
	out := make([]LightState, 0, len(lights))
	for _, l := range lights {
		out = append(out, modulateLight(profile, t, l, tuning))
	}
	return out
}

// hueAt 色相循环，offset 为相位偏移（度）
func hueAt(t, speed, offset float64) float64 {
	return math.Mod(360*speed*t+offset, 360)
}

func modulateLight(profile types.AnimationProfile, t float64, l config.LightConfig, tuning config.LightingTuning) LightState {
	s := LightState{
		Name:      l.Name,
		Role:      l.Role,
		Color:     l.Color.Color,
		Intensity: l.Intensity,
		Angle:     l.Angle,
	}

	switch profile {
	case types.ProfileRocket:
		flicker := 1.4 + 0.3*math.Sin(tuning.FlickerSpeed*t)
		switch l.Role {
		case types.LightRoleKey:
			s.Color = l.Color.BlendRgb(rocketOrange, 0.7)
			s.Intensity = l.Intensity * flicker
			s.Angle = l.Angle + 30*math.Sin(t)
		case types.LightRoleRim:
			s.Color = rocketOrange
			s.Intensity = l.Intensity * 1.5
		}

	case types.ProfileJump:
		s.Intensity = l.Intensity * (1 + 0.15*math.Sin(2*math.Pi*t))

	case types.ProfileSpin:
		switch l.Role {
		case types.LightRoleRim:
			s.Color = colorful.Hsv(hueAt(t, tuning.HueCycleSpeed, 0), 0.6, 1)
		case types.LightRoleKey:
			s.Angle = math.Mod(l.Angle+90*t, 360)
		}

	case types.ProfileRun:
		switch l.Role {
		case types.LightRoleKey:
			s.Angle = l.Angle + 20*math.Sin(t)
		case types.LightRoleFill:
			s.Intensity = l.Intensity * 1.3
		}

	case types.ProfilePlay:
		pulse := 1 + 0.2*math.Sin(6*t)
		switch l.Role {
		case types.LightRoleRim:
			s.Color = colorful.Hsv(hueAt(t, tuning.HueCycleSpeed, 0), 0.7, 1)
			s.Intensity = l.Intensity * pulse
		case types.LightRoleFill:
			s.Color = colorful.Hsv(hueAt(t, tuning.HueCycleSpeed, 120), 0.4, 1)
			s.Intensity = l.Intensity * pulse
		}

	case types.ProfileSpeak:
		if l.Role == types.LightRoleKey {
			s.Intensity = l.Intensity * (1 + 0.3*math.Abs(math.Sin(10*t)))
		}

	case types.ProfileStay:
		s.Color = l.Color.BlendRgb(calmWarm, 0.3)
		s.Intensity = l.Intensity * 0.9

	case types.ProfileRollover:
		if l.Role == types.LightRoleKey {
			s.Angle = math.Mod(l.Angle+144*t, 360)
		}

	default:
		s.Intensity = l.Intensity * (1 + 0.05*math.Sin(0.5*t))
	}

	s.Color = s.Color.Clamped()
	return s
}
