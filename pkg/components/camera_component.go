package components

import "github.com/go-gl/mathgl/mgl64"

// CameraComponent 镜头状态，仅由 CameraSystem 写入
type CameraComponent struct {
	// Position 最终输出位置（含抖动，已做高度限制）
	Position mgl64.Vec3

	// SmoothedPosition 平滑后的位置（不含抖动），作为下一帧插值的起点
	SmoothedPosition mgl64.Vec3

	// LookAt 注视点
	LookAt mgl64.Vec3

	// FieldOfView 垂直视野（度）
	FieldOfView float64

	// ShakeIntensity 当前抖动幅度，线性衰减到 0
	ShakeIntensity float64

	// LastSerial 上次处理的指令切换序号
	LastSerial uint64
}
