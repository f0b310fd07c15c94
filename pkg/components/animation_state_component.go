package components

import "github.com/gonewx/goodboy/pkg/types"

// AnimationStateComponent 宠物当前执行的指令及其计时
//
// 由 CommandDispatchSystem 写入 ActiveCommand（并重置 ElapsedSinceStart），
// 由 AnimationSystem 每帧推进计时。CameraSystem 和 LightingSystem 只读。
type AnimationStateComponent struct {
	// ActiveCommand 当前指令，空闲时为 types.CommandIdle
	ActiveCommand types.Command

	// ElapsedSinceStart 当前指令开始后经过的时间（秒）
	ElapsedSinceStart float64

	// ElapsedTotal 会话开始后经过的总时间（秒），从不重置
	ElapsedTotal float64

	// Serial 指令切换序号，每次切换（包括回到 idle）加一
	// 消费方据此检测切换，即使前后指令相同也能区分
	Serial uint64
}
