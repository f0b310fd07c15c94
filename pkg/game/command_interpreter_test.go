package game

import (
	"math/rand/v2"
	"os"
	"slices"
	"testing"

	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/systems"
	"github.com/gonewx/goodboy/pkg/types"
)

const testFrame = 1.0 / 60.0

// loadResponses 读取 data/responses.yaml
func loadResponses(t *testing.T) *config.ResponseConfig {
	t.Helper()

	data, err := os.ReadFile("../../data/responses.yaml")
	if err != nil {
		t.Fatalf("failed to read responses.yaml: %v", err)
	}
	responses, err := config.ParseResponseConfig(data)
	if err != nil {
		t.Fatalf("ParseResponseConfig() error = %v", err)
	}
	return responses
}

// newTestInterpreter 使用 data/responses.yaml 和真实的 TimerSystem 创建解释器
func newTestInterpreter(t *testing.T) (*CommandInterpreter, *systems.TimerSystem) {
	t.Helper()

	timers := systems.NewTimerSystem(ecs.NewEntityManager())
	ci, err := NewCommandInterpreter(loadResponses(t), timers, 30, rand.New(rand.NewPCG(3, 5)))
	if err != nil {
		t.Fatalf("NewCommandInterpreter() error = %v", err)
	}
	return ci, timers
}

// advance 按固定帧推进定时器
func advance(timers *systems.TimerSystem, seconds float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += testFrame {
		timers.Update(testFrame)
	}
}

// TestNormalizeInput 测试输入规范化
func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SIT", "sit"},
		{"  Okay,  be a GOOD dog now!  ", "okay, be a good dog now"},
		{"roll\tover...", "roll over"},
		{"", ""},
		{"  ?! ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeInput(tt.in); got != tt.want {
			t.Errorf("NormalizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestInterpret_FreeTextSit "please sit down now" 命中 sit 并下发 sit
func TestInterpret_FreeTextSit(t *testing.T) {
	ci, _ := newTestInterpreter(t)

	resp := ci.Interpret("please sit down now")
	if resp.Command != types.CommandSit {
		t.Errorf("Command = %s, want sit", resp.Command)
	}
	if resp.Matched != "sit" {
		t.Errorf("Matched = %q, want sit", resp.Matched)
	}
	if resp.Compliant {
		t.Error("default table response must not be compliant")
	}
	if resp.Message == "" {
		t.Error("Message should not be empty")
	}
}

// TestInterpret_CaseInsensitiveAndOrder 大小写不敏感，"roll over" 优先于 "run"
func TestInterpret_CaseInsensitiveAndOrder(t *testing.T) {
	ci, _ := newTestInterpreter(t)

	tests := []struct {
		in      string
		matched string
	}{
		{"ROLL OVER, buddy", "roll over"},
		{"Jump!", "jump"},
		{"who's a GOOD DOG", "good dog"},
		{"go fetch the ball", "fetch"},
		{"Speak up", "speak"},
	}

	for _, tt := range tests {
		resp := ci.Interpret(tt.in)
		if resp.Matched != tt.matched {
			t.Errorf("Interpret(%q).Matched = %q, want %q", tt.in, resp.Matched, tt.matched)
		}
		if !resp.Command.Valid() || resp.Command == types.CommandIdle {
			t.Errorf("Interpret(%q).Command = %s, want a non-idle command", tt.in, resp.Command)
		}
	}
}

// TestInterpret_Fallback 未命中时使用兜底规则
func TestInterpret_Fallback(t *testing.T) {
	ci, _ := newTestInterpreter(t)

	resp := ci.Interpret("what is the meaning of life")
	if resp.Matched != "" {
		t.Errorf("Matched = %q, want empty", resp.Matched)
	}
	if resp.Command == types.CommandIdle {
		t.Error("fallback must not be idle")
	}

	if empty := ci.Interpret("   "); empty.Command != types.CommandIdle || empty.Message != "" {
		t.Errorf("empty input = %+v, want idle with no message", empty)
	}
}

// TestInterpret_ObedientMode 特殊短语开启 30 秒乖乖模式，到期自动恢复
func TestInterpret_ObedientMode(t *testing.T) {
	ci, timers := newTestInterpreter(t)

	mischievous := ci.Interpret("sit")

	resp := ci.Interpret("Okay, be a good dog now")
	if !resp.ObedienceToggled || resp.Command != types.CommandJump {
		t.Fatalf("special phrase response = %+v, want a jump", resp)
	}
	if resp.FollowUp != types.CommandStay || resp.FollowUpDelay != GoodDogSettleDelay {
		t.Errorf("special phrase follow-up = %s after %v, want stay after %v", resp.FollowUp, resp.FollowUpDelay, GoodDogSettleDelay)
	}
	if !ci.Obedient() {
		t.Fatal("obedient mode should be on")
	}
	if r := ci.ObedientRemaining(); r != 30 {
		t.Errorf("ObedientRemaining() = %v, want 30", r)
	}

	advance(timers, 10)
	compliant := ci.Interpret("sit")
	if !compliant.Compliant {
		t.Error("response during obedient window should be compliant")
	}
	if compliant.Command == mischievous.Command {
		t.Errorf("compliant sit = %s, should differ from mischievous %s", compliant.Command, mischievous.Command)
	}
	if compliant.Command != types.CommandStay {
		t.Errorf("compliant sit = %s, want stay", compliant.Command)
	}

	advance(timers, 21)
	if ci.Obedient() {
		t.Fatal("obedient mode should revert after 30 seconds")
	}
	if ci.ObedientRemaining() != 0 {
		t.Error("ObedientRemaining() should be 0 after revert")
	}
	if after := ci.Interpret("sit"); after.Command != mischievous.Command || after.Compliant {
		t.Errorf("after revert sit = %+v, want mischievous %s", after, mischievous.Command)
	}
}

// TestInterpret_ObedientRenew 窗口内再次说出短语会重新计时
func TestInterpret_ObedientRenew(t *testing.T) {
	ci, timers := newTestInterpreter(t)

	ci.Interpret("okay be a good dog now")
	advance(timers, 20)
	ci.Interpret("okay be a good dog now")
	advance(timers, 20)

	if !ci.Obedient() {
		t.Fatal("renewed obedient mode should still be on after 40s total")
	}
	if timers.Pending() != 1 {
		t.Errorf("Pending() = %d, want exactly one revert timer", timers.Pending())
	}

	advance(timers, 11)
	if ci.Obedient() {
		t.Error("renewed obedient mode should revert 30s after the last phrase")
	}
}

// TestInterpret_PhraseNotSubstring 特殊短语需要整句匹配
func TestInterpret_PhraseNotSubstring(t *testing.T) {
	ci, _ := newTestInterpreter(t)

	resp := ci.Interpret("i said okay, be a good dog now please")
	if resp.ObedienceToggled || ci.Obedient() {
		t.Error("phrase embedded in a longer sentence must not toggle obedience")
	}
	if resp.Matched != "good dog" {
		t.Errorf("Matched = %q, want good dog", resp.Matched)
	}
}

// TestCommandInterpreter_Close 关闭后到期任务不会再触发
func TestCommandInterpreter_Close(t *testing.T) {
	ci, timers := newTestInterpreter(t)

	ci.Interpret("okay be a good dog now")
	ci.Close()

	if ci.Obedient() {
		t.Error("Close() should end obedient mode")
	}
	if timers.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0 after Close", timers.Pending())
	}
	advance(timers, 31)
}

// TestNewCommandInterpreter_Errors 参数校验
func TestNewCommandInterpreter_Errors(t *testing.T) {
	timers := systems.NewTimerSystem(ecs.NewEntityManager())
	if _, err := NewCommandInterpreter(nil, timers, 30, nil); err == nil {
		t.Error("expected error for nil responses")
	}
	if _, err := NewCommandInterpreter(&config.ResponseConfig{}, nil, 30, nil); err == nil {
		t.Error("expected error for nil scheduler")
	}
	if _, err := NewCommandInterpreter(&config.ResponseConfig{}, timers, 0, nil); err == nil {
		t.Error("expected error for zero window")
	}
}

// TestInterpret_RandomMessages 调皮台词从候选中随机挑选
func TestInterpret_RandomMessages(t *testing.T) {
	ci, _ := newTestInterpreter(t)
	responses := loadResponses(t)

	pool := func(table config.ResponseTable, match string) []string {
		for _, r := range table.Rules {
			if r.Match == match {
				return r.Messages
			}
		}
		return table.Fallback.Messages
	}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		resp := ci.Interpret("speak")
		if !slices.Contains(pool(responses.Default, "speak"), resp.Message) {
			t.Fatalf("message %q not in the speak pool", resp.Message)
		}
		seen[resp.Message] = true
	}
	if len(seen) < 2 {
		t.Errorf("50 answers used only %d distinct messages", len(seen))
	}

	for i := 0; i < 20; i++ {
		resp := ci.Interpret("do a barrel roll")
		if !slices.Contains(responses.Default.Fallback.Messages, resp.Message) {
			t.Fatalf("fallback message %q not in the generic pool", resp.Message)
		}
	}
}

// TestInterpret_NilRandUsesFirstMessage 没有随机源时固定使用第一条台词
func TestInterpret_NilRandUsesFirstMessage(t *testing.T) {
	responses := loadResponses(t)
	ci, err := NewCommandInterpreter(responses, systems.NewTimerSystem(ecs.NewEntityManager()), 30, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if got := ci.Interpret("xyzzy").Message; got != responses.Default.Fallback.Messages[0] {
			t.Errorf("message = %q, want the first fallback", got)
		}
	}
}

// TestInterpret_MoodAndEnergy 拒绝指令消耗精力，情绪随输入变化
func TestInterpret_MoodAndEnergy(t *testing.T) {
	ci, timers := newTestInterpreter(t)

	if ci.Mood() != MoodMischievous || ci.Energy() != MaxEnergy {
		t.Fatalf("initial mood/energy = %s/%d", ci.Mood(), ci.Energy())
	}

	resp := ci.Interpret("sit")
	if resp.Mood != MoodDefiant || resp.Energy != MaxEnergy-DisobeyEnergyCost {
		t.Errorf("after disobeying: %s/%d, want defiant/%d", resp.Mood, resp.Energy, MaxEnergy-DisobeyEnergyCost)
	}

	resp = ci.Interpret("what's up")
	if resp.Mood != MoodPlayful {
		t.Errorf("unknown input mood = %s, want playful", resp.Mood)
	}
	if resp.Energy != MaxEnergy-DisobeyEnergyCost {
		t.Errorf("unknown input should not cost energy, got %d", resp.Energy)
	}

	// 精力不会低于 0
	for i := 0; i < 20; i++ {
		ci.Interpret("stay")
	}
	if ci.Energy() != 0 {
		t.Errorf("energy = %d, want 0", ci.Energy())
	}

	resp = ci.Interpret("okay be a good dog now")
	if resp.Mood != MoodObedient {
		t.Errorf("special phrase mood = %s, want obedient", resp.Mood)
	}
	if resp = ci.Interpret("hmm"); resp.Mood != MoodObedient {
		t.Errorf("obedient fallback should keep mood, got %s", resp.Mood)
	}
	if resp = ci.Interpret("sit"); resp.Energy != 0 || resp.Mood != MoodObedient {
		t.Errorf("obedient sit = %s/%d, want obedient/0", resp.Mood, resp.Energy)
	}

	advance(timers, 31)
	if ci.Mood() != MoodMischievous {
		t.Errorf("mood after obedience ends = %s, want mischievous", ci.Mood())
	}
}

// TestInterpret_ObedienceEndReaction 乖乖模式到期时宠物转圈并说出结束台词
func TestInterpret_ObedienceEndReaction(t *testing.T) {
	ci, timers := newTestInterpreter(t)
	responses := loadResponses(t)

	var reactions []Response
	ci.OnObedienceEnd(func(r Response) { reactions = append(reactions, r) })

	ci.Interpret("okay be a good dog now")
	advance(timers, 29)
	if len(reactions) != 0 {
		t.Fatal("reaction fired before the window ended")
	}

	advance(timers, 2)
	if len(reactions) != 1 {
		t.Fatalf("reaction fired %d times, want 1", len(reactions))
	}
	r := reactions[0]
	if r.Command != types.CommandSpin || r.Message != responses.ObedienceMessages.Exit {
		t.Errorf("reaction = %+v, want spin with the exit message", r)
	}
	if r.Compliant || r.Mood != MoodMischievous {
		t.Errorf("reaction should be mischievous, got %+v", r)
	}

	// Close 取消的窗口不触发反应
	ci.Interpret("okay be a good dog now")
	ci.Close()
	advance(timers, 31)
	if len(reactions) != 1 {
		t.Errorf("Close() must not fire the end reaction, got %d", len(reactions))
	}
}
