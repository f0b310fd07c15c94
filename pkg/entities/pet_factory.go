package entities

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/types"
)

// NewPetEntity 创建宠物实体
//
// 参数:
//   - em: 实体管理器
//   - home: 宠物站立的原点（世界坐标）
//
// 返回:
//   - ecs.EntityID: 宠物实体ID
//   - error: em 为 nil 时返回错误
//
// 宠物初始处于 idle，位置立即发布一次，镜头从第一帧起就有可用的目标。
func NewPetEntity(em *ecs.EntityManager, home mgl64.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.AnimationStateComponent{
		ActiveCommand: types.CommandIdle,
	})

	pose := components.NeutralPose()
	ecs.AddComponent(em, id, &pose)

	ecs.AddComponent(em, id, &components.TrackedPositionComponent{
		Position:     home,
		Published:    home,
		PublishCount: 1,
	})

	ecs.AddComponent(em, id, &components.SpeechBubbleComponent{})

	log.Printf("[PetFactory] 创建宠物实体 %d, 原点 (%.2f, %.2f, %.2f)", id, home.X(), home.Y(), home.Z())
	return id, nil
}
