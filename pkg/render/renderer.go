package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

// shadowSegments 阴影椭圆的分段数
const shadowSegments = 20

// Scene 一帧要绘制的内容
type Scene struct {
	Projector Projector
	Boxes     []Box
	Lights    []Light
	// PetPosition 宠物脚底的世界坐标（阴影投在它正下方的地面上）
	PetPosition mgl64.Vec3
}

// ProjectedFace 投影后的可见面
type ProjectedFace struct {
	Points [4]mgl64.Vec2
	Depth  float64
	Color  colorful.Color
}

// Renderer 场景渲染器
// 复用顶点/索引缓冲，避免每帧分配
type Renderer struct {
	whiteImage *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16
	faces      []ProjectedFace
}

// NewRenderer 创建渲染器
func NewRenderer() *Renderer {
	return &Renderer{}
}

// white 返回 1x1 的白色子图（延迟创建）
func (r *Renderer) white() *ebiten.Image {
	if r.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.whiteImage
}

// Draw 绘制整个场景：背景、地面网格、阴影、小狗
func (r *Renderer) Draw(screen *ebiten.Image, scene Scene) {
	screen.Fill(SkyColor(scene.Lights))

	r.drawGround(screen, scene.Projector)
	r.drawShadow(screen, scene.Projector, scene.PetPosition)

	r.faces = VisibleFaces(r.faces[:0], scene.Projector, scene.Boxes, scene.Lights)

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, f := range r.faces {
		r.appendQuad(f.Points, f.Color, 1)
	}
	r.flush(screen)
}

// VisibleFaces 背面剔除、投影、着色，并按深度从远到近排序
func VisibleFaces(dst []ProjectedFace, p Projector, boxes []Box, lights []Light) []ProjectedFace {
	eye := p.Eye()
	for _, b := range boxes {
		for _, f := range b.Faces() {
			if f.Normal.Dot(eye.Sub(f.Center)) <= 0 {
				continue
			}

			pf := ProjectedFace{}
			visible := true
			for i, c := range f.Corners {
				x, y, depth, ok := p.Project(c)
				if !ok {
					visible = false
					break
				}
				pf.Points[i] = mgl64.Vec2{x, y}
				pf.Depth = math.Max(pf.Depth, depth)
			}
			if !visible {
				continue
			}

			if f.Emissive {
				pf.Color = f.Color
			} else {
				pf.Color = Shade(f.Color, f.Normal, lights)
			}
			dst = append(dst, pf)
		}
	}

	sort.SliceStable(dst, func(i, j int) bool { return dst[i].Depth > dst[j].Depth })
	return dst
}

// drawGround 绘制地面网格线
func (r *Renderer) drawGround(screen *ebiten.Image, p Projector) {
	minX, minZ, maxX, maxZ := config.GetGroundBounds()
	lineColor := color.RGBA{R: 90, G: 120, B: 90, A: 160}

	line := func(a, b mgl64.Vec3) {
		x0, y0, _, ok0 := p.Project(a)
		x1, y1, _, ok1 := p.Project(b)
		if !ok0 || !ok1 {
			return
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, lineColor, true)
	}

	for v := minX; v <= maxX+1e-9; v += config.GroundCellSize {
		line(mgl64.Vec3{v, 0, minZ}, mgl64.Vec3{v, 0, maxZ})
	}
	for v := minZ; v <= maxZ+1e-9; v += config.GroundCellSize {
		line(mgl64.Vec3{minX, 0, v}, mgl64.Vec3{maxX, 0, v})
	}
}

// ShadowRadius 阴影半径随离地高度缩小
func ShadowRadius(height float64) float64 {
	f := math.Max(0, math.Min(1, height/config.ShadowFadeHeight))
	return config.ShadowRadius * (1 - 0.7*f)
}

// drawShadow 在宠物正下方的地面上绘制半透明椭圆
func (r *Renderer) drawShadow(screen *ebiten.Image, p Projector, pos mgl64.Vec3) {
	radius := ShadowRadius(pos.Y())
	alpha := float32(0.45 * radius / config.ShadowRadius)

	cx, cy, _, ok := p.Project(mgl64.Vec3{pos.X(), 0, pos.Z()})
	if !ok {
		return
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	r.vertices = append(r.vertices, ebiten.Vertex{DstX: float32(cx), DstY: float32(cy), SrcX: 1, SrcY: 1, ColorA: alpha})
	for i := 0; i < shadowSegments; i++ {
		a := 2 * math.Pi * float64(i) / shadowSegments
		x, y, _, ok := p.Project(mgl64.Vec3{pos.X() + radius*1.4*math.Cos(a), 0, pos.Z() + radius*math.Sin(a)})
		if !ok {
			return
		}
		r.vertices = append(r.vertices, ebiten.Vertex{DstX: float32(x), DstY: float32(y), SrcX: 1, SrcY: 1, ColorA: alpha})
	}
	for i := 0; i < shadowSegments; i++ {
		next := (i+1)%shadowSegments + 1
		r.indices = append(r.indices, 0, uint16(i+1), uint16(next))
	}
	r.flush(screen)
}

// appendQuad 追加一个填充四边形（两个三角形）
func (r *Renderer) appendQuad(pts [4]mgl64.Vec2, c colorful.Color, alpha float32) {
	base := uint16(len(r.vertices))
	for _, pt := range pts {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   float32(pt.X()),
			DstY:   float32(pt.Y()),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(c.R),
			ColorG: float32(c.G),
			ColorB: float32(c.B),
			ColorA: alpha,
		})
	}
	r.indices = append(r.indices,
		base+0, base+1, base+2, // 第一个三角形
		base+0, base+2, base+3, // 第二个三角形
	)
}

// flush 提交缓冲中的三角形
func (r *Renderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(r.vertices, r.indices, r.white(), op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}
