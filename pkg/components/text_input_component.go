package components

// TextInputComponent 指令输入框组件
// 玩家在这里输入自由文本指令，回车提交
type TextInputComponent struct {
	// 输入框文本
	Text string // 当前输入的文本

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（秒）
	CursorPosition   int     // 光标位置（字符索引）

	// 输入限制
	MaxLength   int    // 最大字符数（0 = 无限制）
	Placeholder string // 占位符文本（输入框为空时显示）

	// 焦点状态
	IsFocused bool // 是否获得焦点（接收键盘输入）

	// OnSubmit 回车提交时的回调，提交后输入框清空
	OnSubmit func(text string)

	// History 已提交的文本（最新在最后），上下方向键可回填
	History      []string
	HistoryIndex int
}
