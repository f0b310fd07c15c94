package scenes

import (
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/render"
	"github.com/gonewx/goodboy/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// shortcutKeys F1~F8 依次对应除 idle 外的全部指令
var shortcutKeys = []ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4,
	ebiten.KeyF5, ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8,
}

// ShortcutCommand 返回第 i 个快捷键对应的指令
func ShortcutCommand(i int) (types.Command, bool) {
	cmd := types.Command(i + 1)
	if i < 0 || !cmd.Valid() || cmd == types.CommandIdle {
		return types.CommandIdle, false
	}
	return cmd, true
}

// handleShortcuts 处理功能键快捷指令
func (s *PetScene) handleShortcuts() {
	for i, key := range shortcutKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if cmd, ok := ShortcutCommand(i); ok {
			s.IssueCommand(cmd)
		}
	}
}

// handleClicks 鼠标左键点击宠物
func (s *PetScene) handleClicks() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.ClickAt(ebiten.CursorPosition())
	}
}

// HUDState 汇总 HUD 需要显示的内容
func (s *PetScene) HUDState() render.HUDState {
	state := render.HUDState{}

	if input, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, s.inputEntity); ok {
		state.Input = input.Text
		state.Placeholder = input.Placeholder
		state.CursorVisible = input.CursorVisible
		state.CursorIndex = input.CursorPosition
	}

	state.Message, state.Compliant = s.speechBubbleSystem.Current()

	active := s.dispatchSystem.Active()
	state.ActiveCommand = active.String()
	if duration := config.LookupCommand(active).DurationSeconds(); duration > 0 {
		state.Progress = 1 - s.dispatchSystem.Remaining()/duration
	}

	state.Obedient = s.interpreter.Obedient()
	state.ObedientRemaining = s.interpreter.ObedientRemaining()
	state.Mood = s.interpreter.Mood().String()
	state.Energy = s.interpreter.Energy()
	state.Interactions = s.interactions

	recent := s.history[max(0, len(s.history)-config.HUDHistoryLength):]
	for _, cmd := range recent {
		state.History = append(state.History, cmd.String())
	}
	return state
}
