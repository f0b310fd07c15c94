package components

import "github.com/go-gl/mathgl/mgl64"

// TrackedPositionComponent 宠物的世界坐标及其对外发布值
//
// AnimationSystem 每帧更新 Position，但只有当位移超过阈值时才更新 Published，
// 避免镜头系统被每帧的微小抖动淹没。CameraSystem 只读取 Published。
type TrackedPositionComponent struct {
	Position  mgl64.Vec3
	Published mgl64.Vec3

	// PublishCount 发布次数（调试用）
	PublishCount int
}
