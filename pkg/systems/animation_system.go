package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/types"
	"github.com/gonewx/goodboy/pkg/utils"
)

// AnimationSystem 角色动画
//
// 每帧推进指令计时，按当前指令的动画档案计算姿态，并在位移超过阈值时
// 把宠物的世界坐标发布到 TrackedPositionComponent.Published。
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	petEntity     ecs.EntityID
	tuning        config.AnimationTuning
}

// NewAnimationSystem 创建角色动画系统
func NewAnimationSystem(em *ecs.EntityManager, petEntity ecs.EntityID, tuning config.AnimationTuning) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
		petEntity:     petEntity,
		tuning:        tuning,
	}
}

// Update 更新宠物姿态，宠物实体或其组件缺失时跳过本帧
func (s *AnimationSystem) Update(deltaTime float64) {
	state, ok := ecs.GetComponent[*components.AnimationStateComponent](s.entityManager, s.petEntity)
	if !ok {
		return
	}
	pose, ok := ecs.GetComponent[*components.PoseComponent](s.entityManager, s.petEntity)
	if !ok {
		return
	}
	tracked, ok := ecs.GetComponent[*components.TrackedPositionComponent](s.entityManager, s.petEntity)
	if !ok {
		return
	}

	state.ElapsedSinceStart += deltaTime
	state.ElapsedTotal += deltaTime

	profile := config.LookupCommand(state.ActiveCommand)
	*pose = ComputePose(profile.Animation, state.ElapsedSinceStart, profile.DurationSeconds(), s.tuning)

	tracked.Position = s.tuning.HomePosition.Add(pose.Offset)
	if tracked.PublishCount == 0 || tracked.Position.Sub(tracked.Published).Len() > s.tuning.PublishThreshold {
		tracked.Published = tracked.Position
		tracked.PublishCount++
	}
}

// ComputePose 计算指定动画档案在指令开始 t 秒后的姿态
//
// 纯函数：相同的 (profile, t, duration, tuning) 永远得到相同的姿态。
// duration 为指令持续时间（秒），用于需要在指令结束时回到原位的动作。
func ComputePose(profile types.AnimationProfile, t, duration float64, tuning config.AnimationTuning) components.PoseComponent {
	pose := components.NeutralPose()

	switch profile {
	case types.ProfileJump:
		k := math.Pi * tuning.JumpHopsPerSecond
		hop := math.Abs(math.Sin(t * k))
		pose.Offset[1] = hop * tuning.JumpHeight
		pose.LegTuck = hop
		pose.Rotation[2] = -0.2 * math.Cos(t*k)
		pose.EarFlap = 0.5 * hop
		pose.TailWag = 0.5 * math.Sin(t*tuning.TailWagSpeed*1.5)

	case types.ProfileSpin:
		pose.Rotation[1] = t * tuning.SpinSpeed
		pose.Offset[1] = 0.15 * math.Abs(math.Sin(2*math.Pi*t))
		pose.TailWag = 0.6 * math.Sin(20*t)
		pose.EarFlap = 0.3

	case types.ProfileRun:
		// 绕圈跑一周，指令结束时回到原点
		angle := 2 * math.Pi * progress(t, duration)
		r := tuning.RunRadius
		stride := t * tuning.RunStrideSpeed
		pose.Offset = mgl64.Vec3{
			r * math.Sin(angle),
			0.12 * math.Abs(math.Sin(stride)),
			r * (math.Cos(angle) - 1),
		}
		pose.Rotation[1] = angle
		pose.LegSwing = 0.8 * math.Sin(stride)
		pose.EarFlap = 0.4 * math.Abs(math.Sin(stride))
		pose.TailWag = 0.3 * math.Sin(stride*0.5)

	case types.ProfileRocket:
		crouch := tuning.RocketCrouch
		if t < crouch {
			// 蓄力下蹲
			squash := utils.EaseOutQuad(utils.Clamp01(t / crouch))
			pose.Scale[1] = 1 - 0.25*squash
			pose.EarFlap = -0.3 * squash
			break
		}
		f := progress(t-crouch, duration-crouch)
		arc := math.Sin(math.Pi * f)
		pose.Offset[1] = tuning.RocketHeight * arc
		pose.Rotation[2] = math.Pi / 2 * arc
		pose.LegTuck = 1
		pose.Flame = f < 0.5
		pose.EarFlap = 0.8
		pose.TailWag = 0.2 * math.Sin(30*t)

	case types.ProfilePlay:
		pose.Offset[0] = tuning.PlaySwing * math.Sin(3*t)
		pose.Offset[1] = 0.3 * math.Abs(math.Sin(6*t))
		pose.Rotation[2] = -0.3 * math.Max(0, math.Sin(1.5*t))
		pose.TailWag = 0.6 * math.Sin(18*t)
		pose.EarFlap = 0.3 * math.Sin(6*t)
		pose.LegSwing = 0.4 * math.Sin(6*t)

	case types.ProfileSpeak:
		bark := math.Abs(math.Sin(10 * t))
		pose.HeadTilt = 0.15 * math.Sin(10*t)
		pose.JawOpen = bark
		pose.Offset[1] = 0.05 * bark
		pose.TailWag = 0.4 * math.Sin(12*t)
		pose.EarFlap = 0.2 * bark

	case types.ProfileStay:
		sit := utils.EaseOutCubic(utils.Clamp01(t / 0.4))
		pose.Rotation[2] = 0.45 * sit
		pose.Offset[1] = -0.15 * sit
		pose.TailWag = 0.2 * math.Sin(3*t)
		pose.HeadTilt = 0.1 * math.Sin(0.8*t)

	case types.ProfileRollover:
		f := progress(t, duration)
		pose.Rotation[0] = 2 * math.Pi * utils.EaseInOutCubic(f)
		pose.Offset[2] = tuning.RolloverTravel * math.Sin(math.Pi*f)
		pose.Offset[1] = 0.25 * math.Sin(math.Pi*f)
		pose.LegTuck = math.Sin(math.Pi * f)
		pose.TailWag = 0.3 * math.Sin(10*t)

	default:
		// idle：呼吸、慢摇尾巴
		breath := 1 + 0.02*math.Sin(tuning.BreathSpeed*t)
		pose.Scale = mgl64.Vec3{1, breath, 1}
		pose.TailWag = 0.35 * math.Sin(tuning.TailWagSpeed*t)
		pose.EarFlap = 0.1 * math.Sin(0.7*t)
		pose.HeadTilt = 0.1 * math.Sin(0.4*t)
	}

	return pose
}

// progress 返回 t/duration，限制在 [0, 1]；duration <= 0 时视为已完成
func progress(t, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return utils.Clamp01(t / duration)
}
