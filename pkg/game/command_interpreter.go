package game

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/types"
)

// Scheduler 可取消的定时任务调度器（由 systems.TimerSystem 实现）
type Scheduler interface {
	Schedule(name string, seconds float64, fn func()) ecs.EntityID
	Cancel(id ecs.EntityID)
	Remaining(id ecs.EntityID) (float64, bool)
}

// Response 一次自由文本输入的解释结果
type Response struct {
	Command types.Command // 要下发的指令，idle 表示不下发
	Message string        // 显示给玩家的反馈
	// Compliant 是否来自乖乖模式的响应表
	Compliant bool
	// Matched 命中的关键词，兜底时为空
	Matched string
	// ObedienceToggled 输入是否是开启乖乖模式的特殊短语
	ObedienceToggled bool

	// FollowUp 在 FollowUpDelay 秒后接着下发的指令，idle 表示没有
	FollowUp      types.Command
	FollowUpDelay float64

	// 解释之后的情绪和精力
	Mood   Mood
	Energy int
}

// ObedienceEndListener 乖乖模式到期时的回调，参数是宠物的反应
type ObedienceEndListener func(Response)

// CommandInterpreter 把玩家输入的自由文本翻译成指令
//
// 平时使用调皮的默认响应表；说出特殊短语后进入乖乖模式，
// 在 window 秒内改用顺从的响应表，到期自动恢复。
// 乖乖模式期间再次说出短语会重新开始计时。
type CommandInterpreter struct {
	responses *config.ResponseConfig
	scheduler Scheduler
	window    float64
	rng       *rand.Rand

	obedient    bool
	revertTimer ecs.EntityID
	mood        Mood
	energy      int

	onObedienceEnd []ObedienceEndListener
}

// NewCommandInterpreter 创建指令解释器
//
// 参数:
//   - responses: 响应表配置
//   - scheduler: 用于乖乖模式到期的调度器
//   - windowSeconds: 乖乖模式持续时间（秒）
//   - rng: 挑选台词的随机源，为 nil 时总是使用第一条
func NewCommandInterpreter(responses *config.ResponseConfig, scheduler Scheduler, windowSeconds float64, rng *rand.Rand) (*CommandInterpreter, error) {
	if responses == nil {
		return nil, fmt.Errorf("response config cannot be nil")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("scheduler cannot be nil")
	}
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("obedience window must be positive, got %v", windowSeconds)
	}

	return &CommandInterpreter{
		responses: responses,
		scheduler: scheduler,
		window:    windowSeconds,
		rng:       rng,
		mood:      MoodMischievous,
		energy:    MaxEnergy,
	}, nil
}

// NormalizeInput 小写化、合并连续空白、去掉首尾空白和句末标点
func NormalizeInput(text string) string {
	s := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	return strings.TrimRight(s, ".!?")
}

// OnObedienceEnd 注册乖乖模式到期监听者
func (ci *CommandInterpreter) OnObedienceEnd(fn ObedienceEndListener) {
	ci.onObedienceEnd = append(ci.onObedienceEnd, fn)
}

// Interpret 解释一条输入
//
// 空输入返回 idle；特殊短语开启（或续期）乖乖模式，宠物先跳一下，
// GoodDogSettleDelay 秒后乖乖坐好；否则在当前响应表中按顺序做子串匹配，
// 第一条命中的规则生效，都不命中使用兜底规则。
//
// 情绪：调皮表命中 -> defiant 并消耗精力；调皮表兜底 -> playful；
// 乖乖模式下命中 -> obedient，兜底时情绪不变。
func (ci *CommandInterpreter) Interpret(text string) Response {
	input := NormalizeInput(text)
	if input == "" {
		return ci.respond(Response{Command: types.CommandIdle})
	}

	if ci.isSpecialPhrase(input) {
		ci.enableObedience()
		return ci.respond(Response{
			Command:          types.CommandJump,
			Message:          ci.responses.ObedienceMessages.Enter,
			Compliant:        true,
			ObedienceToggled: true,
			FollowUp:         types.CommandStay,
			FollowUpDelay:    GoodDogSettleDelay,
		})
	}

	table := &ci.responses.Default
	if ci.obedient {
		table = &ci.responses.Obedient
	}

	for _, rule := range table.Rules {
		if !strings.Contains(input, rule.Match) {
			continue
		}
		if ci.obedient {
			ci.mood = MoodObedient
		} else {
			ci.mood = MoodDefiant
			ci.energy = max(0, ci.energy-DisobeyEnergyCost)
		}
		log.Printf("[CommandInterpreter] %q 命中 %q -> %s (obedient=%v, energy=%d)", input, rule.Match, rule.Command, ci.obedient, ci.energy)
		return ci.respond(Response{
			Command:   rule.Command,
			Message:   ci.pick(rule.Messages),
			Compliant: ci.obedient,
			Matched:   rule.Match,
		})
	}

	if !ci.obedient {
		ci.mood = MoodPlayful
	}
	log.Printf("[CommandInterpreter] %q 未命中任何关键词，使用兜底 %s", input, table.Fallback.Command)
	return ci.respond(Response{
		Command:   table.Fallback.Command,
		Message:   ci.pick(table.Fallback.Messages),
		Compliant: ci.obedient,
	})
}

// Obedient 当前是否处于乖乖模式
func (ci *CommandInterpreter) Obedient() bool {
	return ci.obedient
}

// ObedientRemaining 乖乖模式剩余时间（秒），未开启时返回 0
func (ci *CommandInterpreter) ObedientRemaining() float64 {
	if !ci.obedient {
		return 0
	}
	r, _ := ci.scheduler.Remaining(ci.revertTimer)
	return r
}

// Mood 当前情绪
func (ci *CommandInterpreter) Mood() Mood {
	return ci.mood
}

// Energy 当前精力 0~MaxEnergy
func (ci *CommandInterpreter) Energy() int {
	return ci.energy
}

// Close 取消乖乖模式的到期任务，不会触发到期监听者
func (ci *CommandInterpreter) Close() {
	ci.scheduler.Cancel(ci.revertTimer)
	ci.revertTimer = ecs.InvalidEntity
	ci.obedient = false
}

// respond 填入当前情绪和精力
func (ci *CommandInterpreter) respond(r Response) Response {
	r.Mood = ci.mood
	r.Energy = ci.energy
	return r
}

// pick 随机挑选一条台词
func (ci *CommandInterpreter) pick(messages []string) string {
	switch {
	case len(messages) == 0:
		return ""
	case ci.rng == nil || len(messages) == 1:
		return messages[0]
	}
	return messages[ci.rng.IntN(len(messages))]
}

// IsSpecialPhrase 输入是否是开启乖乖模式的特殊短语（不改变任何状态）
func (ci *CommandInterpreter) IsSpecialPhrase(text string) bool {
	return ci.isSpecialPhrase(NormalizeInput(text))
}

// isSpecialPhrase 整句匹配特殊短语（标点按原样比较，已去掉句末标点）
func (ci *CommandInterpreter) isSpecialPhrase(input string) bool {
	for _, phrase := range ci.responses.SpecialPhrases {
		if input == NormalizeInput(phrase) {
			return true
		}
	}
	return false
}

// enableObedience 开启乖乖模式，已开启时重新计时
func (ci *CommandInterpreter) enableObedience() {
	if ci.obedient {
		ci.scheduler.Cancel(ci.revertTimer)
		log.Printf("[CommandInterpreter] 乖乖模式续期 %.0fs", ci.window)
	} else {
		log.Printf("[CommandInterpreter] 进入乖乖模式 %.0fs", ci.window)
	}

	ci.obedient = true
	ci.mood = MoodObedient
	ci.revertTimer = ci.scheduler.Schedule("obedience_revert", ci.window, ci.endObedience)
}

// endObedience 乖乖模式到期：恢复调皮，转个圈甩掉"好狗狗"的样子
func (ci *CommandInterpreter) endObedience() {
	ci.obedient = false
	ci.revertTimer = ecs.InvalidEntity
	ci.mood = MoodMischievous
	log.Printf("[CommandInterpreter] 乖乖模式结束")

	reaction := ci.respond(Response{
		Command: types.CommandSpin,
		Message: ci.responses.ObedienceMessages.Exit,
	})
	for _, fn := range ci.onObedienceEnd {
		fn(reaction)
	}
}
