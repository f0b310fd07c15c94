// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// Command 定义宠物可以执行的指令
//
// 指令集合是封闭的，新增指令需要同时在 config.commandRegistry 中登记，
// 注册表的数组长度由 CommandCount 决定，漏登记会在编译期报错。
type Command int

const (
	// CommandIdle 空闲（所有指令结束后回到的静止状态）
	CommandIdle Command = iota
	// CommandSit 坐下（默认表现为"火箭升空"）
	CommandSit
	// CommandJump 跳跃
	CommandJump
	// CommandSpin 转圈
	CommandSpin
	// CommandRun 绕圈奔跑
	CommandRun
	// CommandPlay 玩耍
	CommandPlay
	// CommandSpeak 叫
	CommandSpeak
	// CommandStay 乖乖坐好
	CommandStay
	// CommandRollover 打滚
	CommandRollover

	// CommandCount 指令总数（非法值）
	CommandCount
)

var commandNames = [CommandCount]string{
	CommandIdle:     "idle",
	CommandSit:      "sit",
	CommandJump:     "jump",
	CommandSpin:     "spin",
	CommandRun:      "run",
	CommandPlay:     "play",
	CommandSpeak:    "speak",
	CommandStay:     "stay",
	CommandRollover: "rollover",
}

// String 返回指令的字符串表示
func (c Command) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return commandNames[c]
}

// Valid 检查指令值是否在封闭集合内
func (c Command) Valid() bool {
	return c >= CommandIdle && c < CommandCount
}

// AllCommands 返回全部指令（含 idle），按定义顺序
func AllCommands() []Command {
	cmds := make([]Command, 0, CommandCount)
	for c := CommandIdle; c < CommandCount; c++ {
		cmds = append(cmds, c)
	}
	return cmds
}

// ParseCommand 将字符串解析为指令（大小写不敏感）
//
// "roll over" 与 "rollover" 等价。无法识别的字符串返回 (CommandIdle, false)，
// 调用方应按 idle 处理而不是报错。
func ParseCommand(s string) (Command, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.Join(strings.Fields(name), "")
	for c := CommandIdle; c < CommandCount; c++ {
		if commandNames[c] == name {
			return c, true
		}
	}
	return CommandIdle, false
}

// UnmarshalText 支持在 YAML 配置中直接书写指令名
func (c *Command) UnmarshalText(text []byte) error {
	cmd, ok := ParseCommand(string(text))
	if !ok {
		return &UnknownCommandError{Name: string(text)}
	}
	*c = cmd
	return nil
}

// MarshalText 以指令名序列化
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnknownCommandError 表示配置中出现了未知指令名
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command: " + e.Name
}
