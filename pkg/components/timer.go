package components

// TimerComponent 通用计时器组件
// 用于需要时间延迟的行为（如指令到期回到 idle、乖乖模式倒计时）
//
// 由 TimerSystem 在每帧推进；到期后调用 OnFire 并销毁所在实体。
// 取消计时器即销毁实体，OnFire 不会再被调用。
type TimerComponent struct {
	Name        string  // 计时器名称，如 "command_revert"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
	OnFire      func()  // 到期回调
}

// Remaining 剩余时间（秒），不小于 0
func (t *TimerComponent) Remaining() float64 {
	if r := t.TargetTime - t.CurrentTime; r > 0 {
		return r
	}
	return 0
}
