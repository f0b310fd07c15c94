package scenes

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/game"
	"github.com/gonewx/goodboy/pkg/render"
	"github.com/gonewx/goodboy/pkg/systems"
	"github.com/gonewx/goodboy/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// busyMessage 宠物忙碌时拒绝新指令的台词
const busyMessage = "*too busy with %s* One trick at a time!"

// PetScene 宠物游乐场场景
//
// 每帧顺序：输入 -> 定时任务 -> 动画 -> 镜头 -> 灯光 -> 反馈文字 -> 清理实体。
// 定时任务先于动画执行，指令到期回到 idle 的那一帧动画就已经是 idle 姿态。
type PetScene struct {
	entityManager *ecs.EntityManager
	director      *config.DirectorConfig

	petEntity   ecs.EntityID
	inputEntity ecs.EntityID

	// Systems
	timerSystem        *systems.TimerSystem
	dispatchSystem     *systems.CommandDispatchSystem
	animationSystem    *systems.AnimationSystem
	cameraSystem       *systems.CameraSystem
	lightingSystem     *systems.LightingSystem
	speechBubbleSystem *systems.SpeechBubbleSystem
	textInputSystem    *systems.TextInputSystem
	renderSystem       *systems.RenderSystem

	interpreter  *game.CommandInterpreter
	audioManager *game.AudioManager
	hud          *render.HUD

	// followUpTimer 特殊短语之后"乖乖坐好"的延时任务
	followUpTimer ecs.EntityID
	// history 已开始执行的指令，最多保留 config.MaxCommandHistory 条
	history []types.Command
	// interactions 点击宠物的次数
	interactions int

	closed bool
}

// Update 更新场景（包括键盘输入）
func (s *PetScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	s.handleShortcuts()
	s.handleClicks()
	s.textInputSystem.Update(deltaTime)
	s.Step(deltaTime)
}

// Step 推进一帧模拟（不读取键盘，测试直接调用）
func (s *PetScene) Step(deltaTime float64) {
	if s.closed {
		return
	}
	s.timerSystem.Update(deltaTime)
	s.animationSystem.Update(deltaTime)
	s.cameraSystem.Update(deltaTime)
	s.lightingSystem.Update(deltaTime)
	s.speechBubbleSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Submit 处理一条自由文本输入
//
// 输入先经过指令解释器（决定下发哪条指令以及反馈文字），
// 再交给调度系统。宠物忙碌时普通指令被忽略，只显示一句忙碌台词，
// 情绪和精力不变；特殊短语在忙碌时仍然开启乖乖模式。
func (s *PetScene) Submit(input string) game.Response {
	if s.closed {
		return game.Response{Command: types.CommandIdle}
	}

	if s.dispatchSystem.Busy() && !s.interpreter.IsSpecialPhrase(input) {
		log.Printf("[PetScene] %q 被忽略 (当前 %s)", input, s.dispatchSystem.Active())
		return game.Response{
			Command: types.CommandIdle,
			Message: s.sayBusy(),
			Mood:    s.interpreter.Mood(),
			Energy:  s.interpreter.Energy(),
		}
	}

	resp := s.interpreter.Interpret(input)
	if resp.Message != "" {
		s.speechBubbleSystem.Say(resp.Message, config.MessageDisplaySeconds, resp.Compliant)
	}
	if resp.Command != types.CommandIdle && !s.dispatchSystem.Issue(resp.Command) {
		log.Printf("[PetScene] %q -> %s 被忽略 (当前 %s)", input, resp.Command, s.dispatchSystem.Active())
	}
	if resp.FollowUp != types.CommandIdle {
		s.scheduleFollowUp(resp.FollowUp, resp.FollowUpDelay)
	}
	return resp
}

// IssueCommand 直接下发指令（快捷键），不经过响应表
func (s *PetScene) IssueCommand(cmd types.Command) bool {
	if s.closed {
		return false
	}
	if !s.dispatchSystem.Issue(cmd) {
		if s.dispatchSystem.Busy() {
			s.sayBusy()
		}
		return false
	}
	s.speechBubbleSystem.Say(cmd.String()+"!", config.MessageDisplaySeconds, true)
	return true
}

// ClickAt 处理一次屏幕点击，点中宠物时互动次数加一
//
// 参数 x, y 为逻辑屏幕坐标（像素）。
func (s *PetScene) ClickAt(x, y int) bool {
	if s.closed {
		return false
	}
	scene, ok := s.renderSystem.BuildScene(config.GameWindowWidth, config.GameWindowHeight)
	if !ok {
		return false
	}
	px, py, _, ok := scene.Projector.Project(scene.PetPosition.Add(mgl64.Vec3{0, config.PetHitHeight, 0}))
	if !ok {
		return false
	}
	dx, dy := float64(x)-px, float64(y)-py
	if dx*dx+dy*dy > config.PetHitRadius*config.PetHitRadius {
		return false
	}

	s.interactions++
	log.Printf("[PetScene] 摸了摸宠物 (%d 次)", s.interactions)
	return true
}

// Interactions 点击宠物的次数
func (s *PetScene) Interactions() int {
	return s.interactions
}

// History 返回已开始执行的指令（旧的在前）
func (s *PetScene) History() []types.Command {
	return append([]types.Command(nil), s.history...)
}

// sayBusy 显示忙碌台词并返回它
func (s *PetScene) sayBusy() string {
	msg := fmt.Sprintf(busyMessage, s.dispatchSystem.Active())
	s.speechBubbleSystem.Say(msg, config.MessageDisplaySeconds, false)
	return msg
}

// scheduleFollowUp 延时下发后续指令，重复调用时只保留最新的一个
func (s *PetScene) scheduleFollowUp(cmd types.Command, delay float64) {
	s.timerSystem.Cancel(s.followUpTimer)
	s.followUpTimer = s.timerSystem.Schedule("follow_up_"+cmd.String(), delay, func() {
		s.followUpTimer = ecs.InvalidEntity
		if !s.dispatchSystem.Issue(cmd) {
			log.Printf("[PetScene] 后续指令 %s 被忽略 (当前 %s)", cmd, s.dispatchSystem.Active())
		}
	})
}

// recordCommand 记录开始执行的指令
func (s *PetScene) recordCommand(cmd types.Command) {
	s.history = append(s.history, cmd)
	if n := len(s.history); n > config.MaxCommandHistory {
		s.history = s.history[n-config.MaxCommandHistory:]
	}
}

// onObedienceEnd 乖乖模式到期：显示结束台词，转个圈
func (s *PetScene) onObedienceEnd(reaction game.Response) {
	s.speechBubbleSystem.Say(reaction.Message, config.MessageDisplaySeconds, false)
	if !s.dispatchSystem.Issue(reaction.Command) {
		log.Printf("[PetScene] 乖乖模式结束时正在执行 %s，跳过转圈", s.dispatchSystem.Active())
	}
}

// ActiveCommand 返回当前指令
func (s *PetScene) ActiveCommand() types.Command {
	return s.dispatchSystem.Active()
}

// Obedient 是否处于乖乖模式
func (s *PetScene) Obedient() bool {
	return s.interpreter.Obedient()
}

// PendingTasks 返回挂起的定时任务数量
func (s *PetScene) PendingTasks() int {
	return s.timerSystem.Pending()
}

// Draw 绘制场景和 HUD
func (s *PetScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	s.hud.Draw(screen, s.HUDState())
}

// Close 销毁场景：取消所有挂起的定时任务，之后不会再有回调触发
func (s *PetScene) Close() {
	if s.closed {
		return
	}
	s.closed = true

	s.dispatchSystem.Close()
	s.interpreter.Close()
	s.timerSystem.CancelAll()
	s.entityManager.RemoveMarkedEntities()

	log.Printf("[PetScene] 场景已关闭")
}
