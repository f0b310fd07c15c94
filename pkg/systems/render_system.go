package systems

import (
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/render"
	"github.com/gonewx/goodboy/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderSystem 从 ECS 组件收集一帧的绘制数据并交给 render.Renderer
//
// 只读：宠物姿态、宠物位置、镜头、灯光。任何一个组件缺失时跳过本帧。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	petEntity     ecs.EntityID
	cameraEntity  ecs.EntityID
	renderer      *render.Renderer
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, petEntity, cameraEntity ecs.EntityID) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		petEntity:     petEntity,
		cameraEntity:  cameraEntity,
		renderer:      render.NewRenderer(),
	}
}

// BuildScene 收集绘制数据
//
// 返回:
//   - render.Scene: 本帧场景
//   - bool: 组件齐全时为 true
func (s *RenderSystem) BuildScene(width, height int) (render.Scene, bool) {
	pose, ok := ecs.GetComponent[*components.PoseComponent](s.entityManager, s.petEntity)
	if !ok {
		return render.Scene{}, false
	}
	pos, ok := ecs.GetComponent[*components.TrackedPositionComponent](s.entityManager, s.petEntity)
	if !ok {
		return render.Scene{}, false
	}
	cam, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraEntity)
	if !ok {
		return render.Scene{}, false
	}

	var lights []render.Light
	for _, id := range ecs.GetEntitiesWith1[*components.LightComponent](s.entityManager) {
		l, _ := ecs.GetComponent[*components.LightComponent](s.entityManager, id)
		lights = append(lights, render.Light{
			Color:     l.Color,
			Intensity: l.Intensity,
			Angle:     l.Angle,
			Ambient:   l.Role == types.LightRoleAmbient,
		})
	}

	return render.Scene{
		Projector:   render.NewProjector(cam.Position, cam.LookAt, cam.FieldOfView, width, height),
		Boxes:       render.BuildDogModel(*pose, pos.Position),
		Lights:      lights,
		PetPosition: pos.Position,
	}, true
}

// Draw 绘制场景
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	scene, ok := s.BuildScene(b.Dx(), b.Dy())
	if !ok {
		return
	}
	s.renderer.Draw(screen, scene)
}
