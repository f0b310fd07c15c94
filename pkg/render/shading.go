package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// lightElevation 方向光的仰角（弧度）
const lightElevation = math.Pi / 4

// Light 渲染用的光源
type Light struct {
	Color     colorful.Color
	Intensity float64
	// Angle 水平方位角（度），0 度指向 +X
	Angle float64
	// Ambient 环境光不区分方向
	Ambient bool
}

// Direction 从表面指向光源的单位向量
func (l Light) Direction() mgl64.Vec3 {
	az := mgl64.DegToRad(l.Angle)
	return mgl64.Vec3{
		math.Cos(az) * math.Cos(lightElevation),
		math.Sin(lightElevation),
		math.Sin(az) * math.Cos(lightElevation),
	}
}

// Shade Lambert 漫反射：环境光 + 各方向光 max(0, n·l)
func Shade(base colorful.Color, normal mgl64.Vec3, lights []Light) colorful.Color {
	var r, g, b float64
	for _, l := range lights {
		k := l.Intensity
		if !l.Ambient {
			k *= math.Max(0, normal.Dot(l.Direction()))
		}
		r += l.Color.R * k
		g += l.Color.G * k
		b += l.Color.B * k
	}

	return colorful.Color{R: base.R * r, G: base.G * g, B: base.B * b}.Clamped()
}

// SkyColor 背景色随环境光变化
func SkyColor(lights []Light) colorful.Color {
	base := colorful.Color{R: 0.16, G: 0.2, B: 0.28}
	for _, l := range lights {
		if l.Ambient {
			return base.BlendRgb(l.Color, 0.35).Clamped()
		}
	}
	return base
}
