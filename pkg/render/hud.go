package render

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// HUDState HUD 需要显示的内容
type HUDState struct {
	Input         string
	Placeholder   string
	CursorVisible bool
	CursorIndex   int

	// Message 最近一次指令的反馈
	Message   string
	Compliant bool

	ActiveCommand string
	// Progress 当前指令进度 0~1
	Progress float64

	Obedient          bool
	ObedientRemaining float64

	Mood   string
	Energy int
	// Interactions 点击宠物的次数
	Interactions int
	// History 最近的指令（旧的在前）
	History []string
}

// HUD 屏幕叠加层：输入框、反馈文字、指令进度、乖乖模式倒计时
type HUD struct {
	face       *text.GoTextFace
	loadFailed bool
}

// NewHUD 创建 HUD（字体在第一次绘制时加载）
func NewHUD() *HUD {
	return &HUD{}
}

// font 延迟加载内置字体，失败时返回 nil 并回退到调试文字
func (h *HUD) font() *text.GoTextFace {
	if h.face != nil || h.loadFailed {
		return h.face
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[HUD] Warning: failed to load font: %v", err)
		h.loadFailed = true
		return nil
	}

	h.face = &text.GoTextFace{
		Source:    source,
		Size:      config.HUDFontSize,
		Direction: text.DirectionLeftToRight,
	}
	return h.face
}

// StatusLine 指令状态行
func StatusLine(s HUDState) string {
	if s.ActiveCommand == "" || s.ActiveCommand == "idle" {
		return "idle"
	}
	return fmt.Sprintf("%s  %3.0f%%", s.ActiveCommand, s.Progress*100)
}

// ObedienceLine 乖乖模式状态行，未开启时为空
func ObedienceLine(s HUDState) string {
	if !s.Obedient {
		return ""
	}
	return fmt.Sprintf("good dog mode: %.0fs", s.ObedientRemaining)
}

// MoodLine 情绪、精力和互动次数
func MoodLine(s HUDState) string {
	return fmt.Sprintf("mood: %s  energy: %d  pets: %d", s.Mood, s.Energy, s.Interactions)
}

// HistoryLine 最近的指令，没有时为空
func HistoryLine(s HUDState) string {
	if len(s.History) == 0 {
		return ""
	}
	return "history: " + strings.Join(s.History, " > ")
}

// Draw 绘制 HUD
func (h *HUD) Draw(screen *ebiten.Image, s HUDState) {
	w := float64(screen.Bounds().Dx())
	hgt := float64(screen.Bounds().Dy())
	m := config.HUDMargin

	// 指令状态 + 进度条
	h.drawText(screen, StatusLine(s), m, m, color.White)
	barY := m + config.HUDLineHeight
	vector.DrawFilledRect(screen, float32(m), float32(barY), config.ProgressBarWidth, config.ProgressBarHeight, color.RGBA{R: 255, G: 255, B: 255, A: 50}, false)
	if s.Progress > 0 {
		vector.DrawFilledRect(screen, float32(m), float32(barY), float32(config.ProgressBarWidth*s.Progress), config.ProgressBarHeight, color.RGBA{R: 255, G: 210, B: 120, A: 220}, false)
	}

	if line := HistoryLine(s); line != "" {
		h.drawText(screen, line, m, barY+config.ProgressBarHeight+8, color.RGBA{R: 200, G: 200, B: 220, A: 255})
	}

	moodLine := MoodLine(s)
	h.drawText(screen, moodLine, w-m-h.measure(moodLine), m, color.RGBA{R: 255, G: 220, B: 150, A: 255})
	if line := ObedienceLine(s); line != "" {
		h.drawText(screen, line, w-m-h.measure(line), m+config.HUDLineHeight, color.RGBA{R: 150, G: 255, B: 170, A: 255})
	}

	// 反馈文字
	if s.Message != "" {
		msgColor := color.RGBA{R: 255, G: 230, B: 200, A: 255}
		if s.Compliant {
			msgColor = color.RGBA{R: 170, G: 255, B: 190, A: 255}
		}
		lines := utils.WrapText(s.Message, h.measure, w-2*m)
		y := hgt - m - config.InputBoxHeight - 8 - float64(len(lines))*config.HUDLineHeight
		for i, line := range lines {
			h.drawText(screen, line, m, y+float64(i)*config.HUDLineHeight, msgColor)
		}
	}

	// 输入框
	boxY := hgt - m - config.InputBoxHeight
	vector.DrawFilledRect(screen, float32(m), float32(boxY), float32(w-2*m), config.InputBoxHeight, color.RGBA{A: 140}, false)
	vector.StrokeRect(screen, float32(m), float32(boxY), float32(w-2*m), config.InputBoxHeight, 1, color.RGBA{R: 255, G: 255, B: 255, A: 120}, false)

	shown := s.Input
	textColor := color.Color(color.White)
	if shown == "" {
		shown = s.Placeholder
		textColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}
	textX := m + 10
	textY := boxY + (config.InputBoxHeight-config.HUDFontSize)/2 - 2
	h.drawText(screen, shown, textX, textY, textColor)

	if s.CursorVisible {
		cursorX := textX + h.measure(prefix(s.Input, s.CursorIndex))
		vector.StrokeLine(screen, float32(cursorX), float32(boxY+8), float32(cursorX), float32(boxY+config.InputBoxHeight-8), 1.5, color.White, false)
	}
}

// prefix 返回前 n 个字符
func prefix(s string, n int) string {
	r := []rune(s)
	if n < 0 {
		n = 0
	}
	if n > len(r) {
		n = len(r)
	}
	return string(r[:n])
}

func (h *HUD) measure(s string) float64 {
	face := h.font()
	if face == nil {
		return float64(len([]rune(s)) * 6)
	}
	width, _ := text.Measure(s, face, 0)
	return width
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	face := h.font()
	if face == nil {
		ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
