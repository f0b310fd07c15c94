package systems

import (
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/ecs"
)

// SpeechBubbleSystem 管理宠物的反馈文字及其显示时长
type SpeechBubbleSystem struct {
	entityManager *ecs.EntityManager
	petEntity     ecs.EntityID
}

// NewSpeechBubbleSystem 创建反馈文字系统
func NewSpeechBubbleSystem(em *ecs.EntityManager, petEntity ecs.EntityID) *SpeechBubbleSystem {
	return &SpeechBubbleSystem{
		entityManager: em,
		petEntity:     petEntity,
	}
}

// Say 显示一条反馈，覆盖当前文字
func (s *SpeechBubbleSystem) Say(text string, seconds float64, compliant bool) {
	bubble, ok := ecs.GetComponent[*components.SpeechBubbleComponent](s.entityManager, s.petEntity)
	if !ok {
		return
	}
	bubble.Text = text
	bubble.Remaining = seconds
	bubble.Compliant = compliant
}

// Current 返回当前显示的文字（没有时为空串）及其是否为乖乖模式响应
func (s *SpeechBubbleSystem) Current() (text string, compliant bool) {
	bubble, ok := ecs.GetComponent[*components.SpeechBubbleComponent](s.entityManager, s.petEntity)
	if !ok || bubble.Text == "" {
		return "", false
	}
	return bubble.Text, bubble.Compliant
}

// Update 倒计时，到期清空文字
func (s *SpeechBubbleSystem) Update(deltaTime float64) {
	bubble, ok := ecs.GetComponent[*components.SpeechBubbleComponent](s.entityManager, s.petEntity)
	if !ok || bubble.Text == "" {
		return
	}

	bubble.Remaining -= deltaTime
	if bubble.Remaining <= 0 {
		bubble.Text = ""
		bubble.Remaining = 0
		bubble.Compliant = false
	}
}
