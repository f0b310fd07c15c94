package components

// SpeechBubbleComponent 宠物头顶显示的反馈文字
type SpeechBubbleComponent struct {
	Text      string
	Remaining float64 // 剩余显示时间（秒）
	Compliant bool    // 是否为乖乖模式下的响应（影响显示颜色）
}
