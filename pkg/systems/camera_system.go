package systems

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/types"
	"github.com/gonewx/goodboy/pkg/utils"
)

// CameraSystem 管理镜头机位、平滑过渡和抖动
//
// 每条指令对应一个机位函数（跟拍、环绕、火箭跟随、特写……），
// 镜头以指数衰减的方式趋近机位；空闲时回到 idle 机位并缓慢环绕。
// 抖动叠加在平滑后的位置上，最终高度不低于 MinHeight。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	petEntity     ecs.EntityID
	cameraEntity  ecs.EntityID
	tuning        config.CameraTuning
	rng           *rand.Rand
}

// NewCameraSystem 创建镜头系统，并创建位于 idle 机位的镜头实体
//
// 参数:
//   - em: 实体管理器
//   - petEntity: 宠物实体（只读其指令状态和发布的位置）
//   - tuning: 镜头参数
//   - rng: 抖动随机源，为 nil 时使用固定种子
func NewCameraSystem(em *ecs.EntityManager, petEntity ecs.EntityID, tuning config.CameraTuning, rng *rand.Rand) *CameraSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	cs := &CameraSystem{
		entityManager: em,
		petEntity:     petEntity,
		tuning:        tuning,
		rng:           rng,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Position:         tuning.IdlePosition,
		SmoothedPosition: tuning.IdlePosition,
		LookAt:           tuning.IdleLookAt,
		FieldOfView:      config.LookupCommand(types.CommandIdle).FieldOfView,
	})

	return cs
}

// CameraEntity 返回镜头实体ID
func (cs *CameraSystem) CameraEntity() ecs.EntityID {
	return cs.cameraEntity
}

// Update 更新镜头，镜头或宠物组件缺失时跳过本帧
func (cs *CameraSystem) Update(dt float64) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	state, ok := ecs.GetComponent[*components.AnimationStateComponent](cs.entityManager, cs.petEntity)
	if !ok {
		return
	}
	tracked, ok := ecs.GetComponent[*components.TrackedPositionComponent](cs.entityManager, cs.petEntity)
	if !ok {
		return
	}

	profile := config.LookupCommand(state.ActiveCommand)

	// 指令切换时触发抖动（不削弱尚未衰减完的更强抖动）
	if state.Serial != cam.LastSerial {
		cam.LastSerial = state.Serial
		cam.ShakeIntensity = math.Max(cam.ShakeIntensity, profile.ShakeAmplitude)
	}

	target, lookAt := CameraTarget(profile.Animation, state.ElapsedSinceStart, state.ElapsedTotal, tracked.Published, cs.tuning)

	rate := cs.tuning.FollowRate
	if state.ActiveCommand == types.CommandIdle {
		rate = cs.tuning.ReturnRate
	}

	cam.SmoothedPosition = utils.DampVec3(cam.SmoothedPosition, target, rate, dt)
	cam.SmoothedPosition[1] = math.Max(cam.SmoothedPosition[1], cs.tuning.MinHeight)
	cam.LookAt = utils.DampVec3(cam.LookAt, lookAt, rate, dt)
	cam.FieldOfView = utils.Damp(cam.FieldOfView, profile.FieldOfView, cs.tuning.FOVRate, dt)

	cam.ShakeIntensity = math.Max(0, cam.ShakeIntensity-cs.tuning.ShakeDecay*dt)

	cam.Position = cam.SmoothedPosition.Add(cs.jitter(cam.ShakeIntensity))
	cam.Position[1] = math.Max(cam.Position[1], cs.tuning.MinHeight)
}

// jitter 返回每个分量在 [-amplitude, amplitude] 内的随机偏移
func (cs *CameraSystem) jitter(amplitude float64) mgl64.Vec3 {
	if amplitude <= 0 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{
		(cs.rng.Float64()*2 - 1) * amplitude,
		(cs.rng.Float64()*2 - 1) * amplitude,
		(cs.rng.Float64()*2 - 1) * amplitude,
	}
}

// CameraTarget 计算机位
//
// 参数:
//   - profile: 当前动画档案
//   - t: 指令开始后经过的时间（秒）
//   - total: 会话总时间（秒），idle 的环绕和摆动使用它，保证回到 idle 后画面连续
//   - pet: 宠物最近一次发布的位置
//   - tuning: 镜头参数
//
// 返回:
//   - 镜头目标位置与注视点（纯函数，不含抖动和高度限制）
func CameraTarget(profile types.AnimationProfile, t, total float64, pet mgl64.Vec3, tuning config.CameraTuning) (mgl64.Vec3, mgl64.Vec3) {
	switch profile {
	case types.ProfileJump:
		// 低机位特写
		return mgl64.Vec3{pet.X() + 0.5, 0.8, pet.Z() + 4}, pet.Add(mgl64.Vec3{0, 0.5, 0})

	case types.ProfileSpin:
		// 绕宠物环绕
		angle := t * tuning.OrbitSpeed
		r := tuning.OrbitRadius
		return pet.Add(mgl64.Vec3{r * math.Sin(angle), 2, r * math.Cos(angle)}), pet.Add(mgl64.Vec3{0, 0.4, 0})

	case types.ProfileRun:
		// 跟拍
		return pet.Add(mgl64.Vec3{0, 2.5, 6}), pet

	case types.ProfileRocket:
		// 火箭跟随：拉远并跟随高度
		return mgl64.Vec3{pet.X(), pet.Y()*0.7 + 1.5, pet.Z() + 8}, pet.Add(mgl64.Vec3{0, 0.5, 0})

	case types.ProfilePlay:
		// 侧面跟拍
		return pet.Add(mgl64.Vec3{3, 1.5, 4}), pet.Add(mgl64.Vec3{0, 0.4, 0})

	case types.ProfileSpeak:
		// 头部特写（角色面朝 +X）
		return pet.Add(mgl64.Vec3{0.6, 1.0, 2.2}), pet.Add(mgl64.Vec3{0.6, 0.7, 0})

	case types.ProfileStay:
		return pet.Add(mgl64.Vec3{0, 3, 6}), pet.Add(mgl64.Vec3{0, 0.4, 0})

	case types.ProfileRollover:
		// 俯拍
		return pet.Add(mgl64.Vec3{0, 6, 1.5}), pet

	default:
		return idleTarget(total, tuning)
	}
}

// idleTarget idle 机位：缓慢环绕 + 轻微摆动
func idleTarget(total float64, tuning config.CameraTuning) (mgl64.Vec3, mgl64.Vec3) {
	orbit := mgl64.Rotate3DY(total * tuning.IdleOrbitSpeed)
	pos := orbit.Mul3x1(tuning.IdlePosition)

	s := tuning.IdleOscillationSpeed
	a := tuning.IdleOscillation
	pos = pos.Add(mgl64.Vec3{
		math.Sin(s*total) * a,
		math.Sin(0.7*s*total) * a * 0.4,
		0,
	})

	return pos, tuning.IdleLookAt
}
