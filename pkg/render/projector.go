// Package render 把宠物场景投影到 2D 屏幕
//
// 场景只由少量立方体组成，因此不需要完整的 3D 管线：
// 每个立方体的可见面经透视投影后按深度从远到近排序（画家算法），
// 再用 ebiten.DrawTriangles 逐面填充。
package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/config"
)

// WorldUp 世界坐标的上方向
var WorldUp = mgl64.Vec3{0, 1, 0}

// Projector 透视投影器（由摄像机状态和屏幕尺寸构造，不可变）
type Projector struct {
	eye      mgl64.Vec3
	viewProj mgl64.Mat4
	width    float64
	height   float64
}

// NewProjector 创建投影器
//
// 参数:
//   - eye: 摄像机位置
//   - lookAt: 注视点
//   - fovDegrees: 垂直视角（度）
//   - width, height: 屏幕尺寸（像素）
func NewProjector(eye, lookAt mgl64.Vec3, fovDegrees float64, width, height int) Projector {
	// 视线与上方向平行时 LookAt 退化，稍微错开注视点
	if eye.Sub(lookAt).Cross(WorldUp).Len() < 1e-9 {
		lookAt = lookAt.Add(mgl64.Vec3{0, 0, -1e-3})
	}

	aspect := float64(width) / float64(height)
	view := mgl64.LookAtV(eye, lookAt, WorldUp)
	proj := mgl64.Perspective(mgl64.DegToRad(fovDegrees), aspect, config.NearPlane, config.FarPlane)

	return Projector{
		eye:      eye,
		viewProj: proj.Mul4(view),
		width:    float64(width),
		height:   float64(height),
	}
}

// Eye 返回摄像机位置
func (p Projector) Eye() mgl64.Vec3 {
	return p.eye
}

// Project 把世界坐标投影到屏幕坐标
//
// 返回:
//   - x, y: 屏幕坐标（像素，原点在左上角）
//   - depth: 到摄像机的视空间距离，越大越远
//   - ok: 点在近裁剪面之后时为 false
func (p Projector) Project(world mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := p.viewProj.Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= config.NearPlane {
		return 0, 0, 0, false
	}

	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	x = (ndcX + 1) / 2 * p.width
	y = (1 - ndcY) / 2 * p.height
	return x, y, w, true
}
