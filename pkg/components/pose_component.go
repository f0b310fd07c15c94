package components

import "github.com/go-gl/mathgl/mgl64"

// PoseComponent 角色当前帧的姿态（每帧由 AnimationSystem 重新计算，不持久化）
type PoseComponent struct {
	// Offset 相对于 HomePosition 的位移
	Offset mgl64.Vec3

	// Rotation 绕 X/Y/Z 轴的旋转（弧度）
	// 角色面朝 +X，因此 X 分量是翻滚（打滚），Y 是偏航（转向），Z 是俯仰（抬头/伏身）
	Rotation mgl64.Vec3

	// Scale 整体缩放（呼吸、下蹲）
	Scale mgl64.Vec3

	// 肢体偏移，单位为弧度
	TailWag  float64
	EarFlap  float64
	LegSwing float64
	HeadTilt float64

	// JawOpen 张嘴程度 0~1
	JawOpen float64

	// LegTuck 收腿程度 0~1（跳跃、打滚时收起四肢）
	LegTuck float64

	// Flame 是否显示火箭尾焰
	Flame bool
}

// NeutralPose 返回静止姿态
func NeutralPose() PoseComponent {
	return PoseComponent{Scale: mgl64.Vec3{1, 1, 1}}
}
