package systems

import (
	"log"

	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/types"
)

// CommandListener 指令开始/结束的回调
type CommandListener func(cmd types.Command)

// CommandDispatchSystem 指令调度
//
// 规则：
//   - 只有宠物处于 idle 时才接受新指令，忙碌时下发的指令被静默忽略
//   - 指令被接受后安排一个到期任务，到期时回到 idle 并通知 OnComplete 监听者
//   - Close 之后挂起的到期任务被取消，不会再有完成通知
type CommandDispatchSystem struct {
	entityManager *ecs.EntityManager
	timers        *TimerSystem
	petEntity     ecs.EntityID

	pendingRevert ecs.EntityID
	onStart       []CommandListener
	onComplete    []CommandListener
	closed        bool
}

// NewCommandDispatchSystem 创建指令调度系统
func NewCommandDispatchSystem(em *ecs.EntityManager, timers *TimerSystem, petEntity ecs.EntityID) *CommandDispatchSystem {
	return &CommandDispatchSystem{
		entityManager: em,
		timers:        timers,
		petEntity:     petEntity,
	}
}

// OnStart 注册指令开始监听者
func (s *CommandDispatchSystem) OnStart(fn CommandListener) {
	s.onStart = append(s.onStart, fn)
}

// OnComplete 注册指令完成监听者，每条被接受的指令恰好通知一次
func (s *CommandDispatchSystem) OnComplete(fn CommandListener) {
	s.onComplete = append(s.onComplete, fn)
}

// Issue 下发指令
//
// 返回:
//   - bool: 指令是否被接受。idle、非法指令、忙碌中、宠物实体缺失、已关闭都返回 false
func (s *CommandDispatchSystem) Issue(cmd types.Command) bool {
	if s.closed {
		return false
	}
	if !cmd.Valid() || cmd == types.CommandIdle {
		return false
	}

	state, ok := ecs.GetComponent[*components.AnimationStateComponent](s.entityManager, s.petEntity)
	if !ok {
		log.Printf("[CommandDispatch] 宠物实体未就绪，忽略指令 %s", cmd)
		return false
	}

	if state.ActiveCommand != types.CommandIdle {
		log.Printf("[CommandDispatch] 正在执行 %s，忽略指令 %s", state.ActiveCommand, cmd)
		return false
	}

	profile := config.LookupCommand(cmd)
	setActiveCommand(state, cmd)
	s.pendingRevert = s.timers.Schedule("command_revert:"+cmd.String(), profile.DurationSeconds(), func() {
		s.complete(cmd)
	})

	log.Printf("[CommandDispatch] 开始指令 %s (持续 %v)", cmd, profile.Duration)
	for _, fn := range s.onStart {
		fn(cmd)
	}
	return true
}

// IssueText 按名称下发指令，无法识别的名称按 idle 处理（即不做任何事）
func (s *CommandDispatchSystem) IssueText(name string) bool {
	cmd, ok := types.ParseCommand(name)
	if !ok {
		log.Printf("[CommandDispatch] 未知指令 %q，按 idle 处理", name)
	}
	return s.Issue(cmd)
}

// Active 返回当前指令，宠物实体缺失时返回 idle
func (s *CommandDispatchSystem) Active() types.Command {
	state, ok := ecs.GetComponent[*components.AnimationStateComponent](s.entityManager, s.petEntity)
	if !ok {
		return types.CommandIdle
	}
	return state.ActiveCommand
}

// Busy 是否有非 idle 指令正在执行
func (s *CommandDispatchSystem) Busy() bool {
	return s.Active() != types.CommandIdle
}

// Remaining 当前指令剩余时间（秒），空闲时返回 0
func (s *CommandDispatchSystem) Remaining() float64 {
	r, _ := s.timers.Remaining(s.pendingRevert)
	return r
}

// Close 取消挂起的到期任务，之后不再接受指令也不再发出完成通知
func (s *CommandDispatchSystem) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.timers.Cancel(s.pendingRevert)
	s.pendingRevert = ecs.InvalidEntity
}

// complete 指令到期：回到 idle 并通知监听者
func (s *CommandDispatchSystem) complete(cmd types.Command) {
	s.pendingRevert = ecs.InvalidEntity

	if state, ok := ecs.GetComponent[*components.AnimationStateComponent](s.entityManager, s.petEntity); ok {
		setActiveCommand(state, types.CommandIdle)
	}

	log.Printf("[CommandDispatch] 指令 %s 完成，回到 idle", cmd)
	for _, fn := range s.onComplete {
		fn(cmd)
	}
}

// setActiveCommand 切换指令并重置指令计时（硬切，不做过渡）
func setActiveCommand(state *components.AnimationStateComponent, cmd types.Command) {
	state.ActiveCommand = cmd
	state.ElapsedSinceStart = 0
	state.Serial++
}
