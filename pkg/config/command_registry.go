package config

import (
	"time"

	"github.com/gonewx/goodboy/pkg/types"
)

// CommandProfile 单条指令的静态档案
type CommandProfile struct {
	Command   types.Command
	Duration  time.Duration          // 指令持续时间，到期后自动回到 idle
	Animation types.AnimationProfile // 角色动画/镜头机位/灯光使用的档案

	// ShakeAmplitude 指令开始时施加的镜头抖动幅度（世界单位），0 表示不抖
	ShakeAmplitude float64

	// FieldOfView 指令期间镜头的目标视野（度）
	FieldOfView float64
}

// DurationSeconds 返回以秒为单位的持续时间（系统内部统一使用秒）
func (p CommandProfile) DurationSeconds() float64 {
	return p.Duration.Seconds()
}

// commandRegistry 指令注册表
// 数组长度为 types.CommandCount，新增指令时漏登记会导致编译失败
var commandRegistry = [types.CommandCount]CommandProfile{
	types.CommandIdle: {
		Command:     types.CommandIdle,
		Duration:    0,
		Animation:   types.ProfileIdle,
		FieldOfView: 45,
	},
	types.CommandSit: {
		Command:        types.CommandSit,
		Duration:       4000 * time.Millisecond,
		Animation:      types.ProfileRocket,
		ShakeAmplitude: 0.3,
		FieldOfView:    60, // 火箭升空时拉远
	},
	types.CommandJump: {
		Command:        types.CommandJump,
		Duration:       2000 * time.Millisecond,
		Animation:      types.ProfileJump,
		ShakeAmplitude: 0.15,
		FieldOfView:    40, // 起跳时推近
	},
	types.CommandSpin: {
		Command:        types.CommandSpin,
		Duration:       2500 * time.Millisecond,
		Animation:      types.ProfileSpin,
		ShakeAmplitude: 0.1,
		FieldOfView:    45,
	},
	types.CommandRun: {
		Command:        types.CommandRun,
		Duration:       3000 * time.Millisecond,
		Animation:      types.ProfileRun,
		ShakeAmplitude: 0.08,
		FieldOfView:    45,
	},
	types.CommandPlay: {
		Command:        types.CommandPlay,
		Duration:       4000 * time.Millisecond,
		Animation:      types.ProfilePlay,
		ShakeAmplitude: 0.12,
		FieldOfView:    45,
	},
	types.CommandSpeak: {
		Command:        types.CommandSpeak,
		Duration:       2000 * time.Millisecond,
		Animation:      types.ProfileSpeak,
		ShakeAmplitude: 0.05,
		FieldOfView:    45,
	},
	types.CommandStay: {
		Command:     types.CommandStay,
		Duration:    3000 * time.Millisecond,
		Animation:   types.ProfileStay,
		FieldOfView: 45,
	},
	types.CommandRollover: {
		Command:     types.CommandRollover,
		Duration:    3000 * time.Millisecond,
		Animation:   types.ProfileRollover,
		FieldOfView: 45,
	},
}

// LookupCommand 获取指令档案
// 参数:
//   - cmd: 指令
//
// 返回:
//   - 对应的档案；越界值返回 idle 档案
func LookupCommand(cmd types.Command) CommandProfile {
	if !cmd.Valid() {
		return commandRegistry[types.CommandIdle]
	}
	return commandRegistry[cmd]
}

// LookupCommandName 按名称获取指令档案，无法识别的名称回退到 idle
func LookupCommandName(name string) CommandProfile {
	cmd, _ := types.ParseCommand(name)
	return LookupCommand(cmd)
}
