package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/lucasb-eyer/go-colorful"
)

// 小狗配色
var (
	furColor   = colorful.Color{R: 0.72, G: 0.48, B: 0.27}
	earColor   = colorful.Color{R: 0.45, G: 0.28, B: 0.16}
	snoutColor = colorful.Color{R: 0.93, G: 0.84, B: 0.70}
	noseColor  = colorful.Color{R: 0.08, G: 0.06, B: 0.06}
	flameColor = colorful.Color{R: 1.0, G: 0.55, B: 0.1}
)

// Box 一个经过变换的立方体
// 局部坐标是以原点为中心、边长为 1 的单位立方体，Transform 把它放到世界坐标
type Box struct {
	Name      string
	Transform mgl64.Mat4
	Color     colorful.Color
	// Emissive 自发光（不受光照影响，如尾焰）
	Emissive bool
}

// Face 立方体的一个面（世界坐标）
type Face struct {
	Corners  [4]mgl64.Vec3
	Normal   mgl64.Vec3
	Center   mgl64.Vec3
	Color    colorful.Color
	Emissive bool
}

// unitFaces 单位立方体六个面：法线和四个角（逆时针）
var unitFaces = [6]struct {
	normal  mgl64.Vec3
	corners [4]mgl64.Vec3
}{
	{mgl64.Vec3{1, 0, 0}, [4]mgl64.Vec3{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}},
	{mgl64.Vec3{-1, 0, 0}, [4]mgl64.Vec3{{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}}},
	{mgl64.Vec3{0, 1, 0}, [4]mgl64.Vec3{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}}},
	{mgl64.Vec3{0, -1, 0}, [4]mgl64.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	{mgl64.Vec3{0, 0, 1}, [4]mgl64.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{mgl64.Vec3{0, 0, -1}, [4]mgl64.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
}

// Faces 返回立方体六个面的世界坐标
func (b Box) Faces() [6]Face {
	var faces [6]Face
	for i, uf := range unitFaces {
		f := Face{Color: b.Color, Emissive: b.Emissive}
		var sum mgl64.Vec3
		for j, c := range uf.corners {
			f.Corners[j] = mgl64.TransformCoordinate(c, b.Transform)
			sum = sum.Add(f.Corners[j])
		}
		f.Center = sum.Mul(0.25)

		// 非均匀缩放下法线需要由变换后的边重新计算
		e1 := f.Corners[1].Sub(f.Corners[0])
		e2 := f.Corners[3].Sub(f.Corners[0])
		n := e1.Cross(e2)
		if n.Len() < 1e-12 {
			n = mgl64.TransformNormal(uf.normal, b.Transform)
		}
		if n.Len() > 0 {
			n = n.Normalize()
		}
		f.Normal = n
		faces[i] = f
	}
	return faces
}

// part 相对于父变换的一个部件：先在 pivot 处旋转，再平移到 center
func part(parent mgl64.Mat4, pivot mgl64.Vec3, rot mgl64.Mat4, center, size mgl64.Vec3) mgl64.Mat4 {
	local := mgl64.Translate3D(pivot.X(), pivot.Y(), pivot.Z()).
		Mul4(rot).
		Mul4(mgl64.Translate3D(center.X()-pivot.X(), center.Y()-pivot.Y(), center.Z()-pivot.Z())).
		Mul4(mgl64.Scale3D(size.X(), size.Y(), size.Z()))
	return parent.Mul4(local)
}

// RootTransform 宠物的根变换：平移到世界位置，然后偏航、俯仰、翻滚、缩放
// 旋转围绕身体中心，缩放以脚底为基准
func RootTransform(pose components.PoseComponent, position mgl64.Vec3) mgl64.Mat4 {
	const bodyCenterY = 0.55

	scale := pose.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}

	return mgl64.Translate3D(position.X(), position.Y()+bodyCenterY, position.Z()).
		Mul4(mgl64.HomogRotate3DY(pose.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(pose.Rotation.Z())).
		Mul4(mgl64.HomogRotate3DX(pose.Rotation.X())).
		Mul4(mgl64.Translate3D(0, -bodyCenterY, 0)).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// BuildDogModel 根据姿态构建小狗的立方体模型（面朝 +X，脚底在 position）
func BuildDogModel(pose components.PoseComponent, position mgl64.Vec3) []Box {
	root := RootTransform(pose, position)
	ident := mgl64.Ident4()

	boxes := make([]Box, 0, 14)
	add := func(name string, m mgl64.Mat4, c colorful.Color) {
		boxes = append(boxes, Box{Name: name, Transform: m, Color: c})
	}

	// 收腿：腿变短，身体不动
	tuck := math.Max(0, math.Min(1, pose.LegTuck))
	legLen := 0.4 * (1 - 0.6*tuck)

	add("body", part(root, mgl64.Vec3{}, ident, mgl64.Vec3{0, 0.6, 0}, mgl64.Vec3{1.0, 0.42, 0.46}), furColor)

	// 头部绕脖子倾斜
	neck := mgl64.Vec3{0.45, 0.8, 0}
	headRot := mgl64.HomogRotate3DX(pose.HeadTilt)
	head := root.Mul4(mgl64.Translate3D(neck.X(), neck.Y(), neck.Z())).Mul4(headRot)
	add("head", part(head, mgl64.Vec3{}, ident, mgl64.Vec3{0.18, 0.12, 0}, mgl64.Vec3{0.4, 0.38, 0.38}), furColor)
	add("snout", part(head, mgl64.Vec3{}, ident, mgl64.Vec3{0.45, 0.06, 0}, mgl64.Vec3{0.2, 0.16, 0.22}), snoutColor)
	add("nose", part(head, mgl64.Vec3{}, ident, mgl64.Vec3{0.56, 0.12, 0}, mgl64.Vec3{0.05, 0.06, 0.08}), noseColor)

	jaw := math.Max(0, math.Min(1, pose.JawOpen))
	jawPivot := mgl64.Vec3{0.36, -0.02, 0}
	add("jaw", part(head, jawPivot, mgl64.HomogRotate3DZ(-0.6*jaw), mgl64.Vec3{0.46, -0.04, 0}, mgl64.Vec3{0.18, 0.05, 0.2}), snoutColor)

	for _, side := range []float64{-1, 1} {
		earPivot := mgl64.Vec3{0.12, 0.3, 0.14 * side}
		add("ear", part(head, earPivot, mgl64.HomogRotate3DX(side*pose.EarFlap), mgl64.Vec3{0.12, 0.22, 0.16 * side}, mgl64.Vec3{0.1, 0.2, 0.05}), earColor)
	}

	// 四条腿：对角腿同相摆动
	legs := []struct {
		x, z, phase float64
	}{
		{0.35, 0.15, 1}, {0.35, -0.15, -1}, {-0.35, 0.15, -1}, {-0.35, -0.15, 1},
	}
	for _, l := range legs {
		hip := mgl64.Vec3{l.x, 0.42, l.z}
		center := mgl64.Vec3{l.x, 0.42 - legLen/2, l.z}
		add("leg", part(root, hip, mgl64.HomogRotate3DZ(l.phase*pose.LegSwing), center, mgl64.Vec3{0.12, legLen, 0.12}), furColor)
	}

	tailBase := mgl64.Vec3{-0.5, 0.72, 0}
	tailRot := mgl64.HomogRotate3DY(pose.TailWag).Mul4(mgl64.HomogRotate3DZ(-0.5))
	add("tail", part(root, tailBase, tailRot, mgl64.Vec3{-0.66, 0.72, 0}, mgl64.Vec3{0.32, 0.07, 0.07}), earColor)

	if pose.Flame {
		flame := part(root, mgl64.Vec3{}, ident, mgl64.Vec3{-0.1, 0.05, 0}, mgl64.Vec3{0.3, 0.5, 0.3})
		boxes = append(boxes, Box{Name: "flame", Transform: flame, Color: flameColor, Emissive: true})
	}

	return boxes
}
