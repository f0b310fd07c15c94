package systems

import (
	"log"

	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/ecs"
)

// TimerSystem 帧驱动的可取消定时任务
//
// 每个任务是一个带 TimerComponent 的实体。任务的回调在 Update 中、
// 也就是在帧回调内执行，因此不存在跨 goroutine 的并发访问。
// 取消任务会立即移除组件，同一帧内也不会再触发。
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建定时任务系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{
		entityManager: em,
	}
}

// Schedule 安排一个在 seconds 秒后执行的任务
//
// 参数:
//   - name: 任务名称（用于日志）
//   - seconds: 延迟时间（秒），<= 0 时在下一次 Update 触发
//   - fn: 到期回调
//
// 返回:
//   - ecs.EntityID: 任务句柄，可用于 Cancel / Remaining
func (s *TimerSystem) Schedule(name string, seconds float64, fn func()) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Name:       name,
		TargetTime: seconds,
		OnFire:     fn,
	})
	return id
}

// Cancel 取消任务，任务不存在或已触发时什么也不做
func (s *TimerSystem) Cancel(id ecs.EntityID) {
	if id == ecs.InvalidEntity {
		return
	}
	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
	if !ok {
		return
	}
	log.Printf("[TimerSystem] 取消任务: %s (剩余 %.2fs)", timer.Name, timer.Remaining())
	ecs.RemoveComponent[*components.TimerComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)
}

// CancelAll 取消所有未触发的任务（场景销毁时调用）
func (s *TimerSystem) CancelAll() {
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		s.Cancel(id)
	}
}

// Remaining 返回任务剩余时间
func (s *TimerSystem) Remaining(id ecs.EntityID) (float64, bool) {
	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
	if !ok {
		return 0, false
	}
	return timer.Remaining(), true
}

// Pending 返回未触发的任务数量
func (s *TimerSystem) Pending() int {
	return len(ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager))
}

// Update 推进所有任务，到期的任务按创建顺序触发
func (s *TimerSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager)

	for _, id := range entities {
		// 前面的回调可能已经取消了这个任务
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok {
			continue
		}

		timer.CurrentTime += deltaTime
		if timer.CurrentTime < timer.TargetTime {
			continue
		}

		timer.IsReady = true
		ecs.RemoveComponent[*components.TimerComponent](s.entityManager, id)
		s.entityManager.DestroyEntity(id)

		if timer.OnFire != nil {
			timer.OnFire()
		}
	}
}
