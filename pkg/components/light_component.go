package components

import (
	"github.com/gonewx/goodboy/pkg/types"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// LightComponent 单个光源的当前状态，仅由 LightingSystem 写入
type LightComponent struct {
	Name string
	Role types.LightRole

	Color     colorful.Color
	Intensity float64
	Angle     float64 // 水平方位角（度）

	// 配置中的基础值，各指令在此基础上调制
	BaseColor     colorful.Color
	BaseIntensity float64
	BaseAngle     float64
}
