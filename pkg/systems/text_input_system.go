package systems

import (
	"log"
	"strings"

	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxHistory 输入历史保留条数
const maxHistory = 20

// TextInputSystem 文本输入系统
// 处理指令输入框的键盘输入、光标闪烁和提交
type TextInputSystem struct {
	entityManager *ecs.EntityManager
}

// NewTextInputSystem 创建文本输入系统
func NewTextInputSystem(em *ecs.EntityManager) *TextInputSystem {
	return &TextInputSystem{
		entityManager: em,
	}
}

// Update 更新文本输入系统
func (s *TextInputSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager)

	for _, entityID := range entities {
		input, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, entityID)
		if !ok {
			continue
		}

		// 只处理获得焦点的输入框
		if !input.IsFocused {
			input.CursorVisible = false
			continue
		}

		s.updateCursorBlink(input, deltaTime)
		s.handleKeyboardInput(input)
	}
}

// updateCursorBlink 更新光标闪烁状态
func (s *TextInputSystem) updateCursorBlink(input *components.TextInputComponent, deltaTime float64) {
	const blinkInterval = 0.5 // 光标闪烁间隔（秒）

	input.CursorBlinkTimer += deltaTime
	if input.CursorBlinkTimer >= blinkInterval {
		input.CursorBlinkTimer = 0
		input.CursorVisible = !input.CursorVisible
	}
}

// repeatPressed 第1帧立即响应，按住 30 帧后每 3 帧响应一次
func repeatPressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

// handleKeyboardInput 处理键盘输入
func (s *TextInputSystem) handleKeyboardInput(input *components.TextInputComponent) {
	edited := false

	if runes := ebiten.AppendInputChars(nil); len(runes) > 0 {
		InsertText(input, string(runes))
		edited = true
	}

	if repeatPressed(ebiten.KeyBackspace) {
		DeleteCharBefore(input)
		edited = true
	}
	if repeatPressed(ebiten.KeyDelete) {
		DeleteCharAfter(input)
		edited = true
	}
	if repeatPressed(ebiten.KeyArrowLeft) {
		if input.CursorPosition > 0 {
			input.CursorPosition--
		}
		edited = true
	}
	if repeatPressed(ebiten.KeyArrowRight) {
		if input.CursorPosition < len([]rune(input.Text)) {
			input.CursorPosition++
		}
		edited = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		input.CursorPosition = 0
		edited = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		input.CursorPosition = len([]rune(input.Text))
		edited = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		RecallHistory(input, -1)
		edited = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		RecallHistory(input, 1)
		edited = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		input.Text = ""
		input.CursorPosition = 0
		edited = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		Submit(input)
		edited = true
	}

	// 输入时光标应该可见
	if edited {
		input.CursorBlinkTimer = 0
		input.CursorVisible = true
	}
}

// InsertText 在光标位置插入文本
// 只保留字母、数字、空格和常见标点（指令短语中会出现逗号）
func InsertText(input *components.TextInputComponent, text string) {
	var b strings.Builder
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			strings.ContainsRune(" ,.!?'-", r) {
			b.WriteRune(r)
		}
	}
	filtered := b.String()
	if filtered == "" {
		return
	}

	runes := []rune(input.Text)
	newRunes := []rune(filtered)
	if input.MaxLength > 0 && len(runes)+len(newRunes) > input.MaxLength {
		log.Printf("[TextInputSystem] 达到最大长度限制 (%d 字符)", input.MaxLength)
		return
	}

	if input.CursorPosition > len(runes) {
		input.CursorPosition = len(runes)
	}

	result := make([]rune, 0, len(runes)+len(newRunes))
	result = append(result, runes[:input.CursorPosition]...)
	result = append(result, newRunes...)
	result = append(result, runes[input.CursorPosition:]...)

	input.Text = string(result)
	input.CursorPosition += len(newRunes)
}

// DeleteCharBefore 删除光标前的字符（退格）
func DeleteCharBefore(input *components.TextInputComponent) {
	if input.CursorPosition == 0 {
		return
	}

	runes := []rune(input.Text)
	input.Text = string(append(runes[:input.CursorPosition-1:input.CursorPosition-1], runes[input.CursorPosition:]...))
	input.CursorPosition--
}

// DeleteCharAfter 删除光标后的字符（Delete键）
func DeleteCharAfter(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	if input.CursorPosition >= len(runes) {
		return
	}

	input.Text = string(append(runes[:input.CursorPosition:input.CursorPosition], runes[input.CursorPosition+1:]...))
}

// Submit 提交当前文本：调用 OnSubmit，记录历史并清空输入框
// 空白文本不提交
func Submit(input *components.TextInputComponent) {
	text := strings.TrimSpace(input.Text)
	input.Text = ""
	input.CursorPosition = 0
	if text == "" {
		return
	}

	input.History = append(input.History, text)
	if len(input.History) > maxHistory {
		input.History = input.History[len(input.History)-maxHistory:]
	}
	input.HistoryIndex = len(input.History)

	if input.OnSubmit != nil {
		input.OnSubmit(text)
	}
}

// RecallHistory 按方向（-1 更早，+1 更新）回填历史输入
func RecallHistory(input *components.TextInputComponent, direction int) {
	if len(input.History) == 0 {
		return
	}

	idx := input.HistoryIndex + direction
	if idx < 0 {
		idx = 0
	}
	if idx >= len(input.History) {
		input.HistoryIndex = len(input.History)
		input.Text = ""
		input.CursorPosition = 0
		return
	}

	input.HistoryIndex = idx
	input.Text = input.History[idx]
	input.CursorPosition = len([]rune(input.Text))
}
