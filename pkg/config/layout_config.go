package config

// 布局配置常量
// 本文件定义了窗口尺寸、地面网格和 HUD 元素位置

// 窗口配置
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 960

	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 640

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Good Boy"
)

// 地面网格配置（世界坐标，单位为米，地面为 y = 0 平面）
const (
	// GroundHalfExtent 网格从原点向四周延伸的距离
	GroundHalfExtent = 6.0

	// GroundCellSize 网格单元边长
	GroundCellSize = 1.0

	// ShadowRadius 宠物站在地面上时阴影的半径
	ShadowRadius = 0.55

	// ShadowFadeHeight 宠物离地超过此高度后阴影缩小到最小
	ShadowFadeHeight = 6.0
)

// 投影配置
const (
	// NearPlane 近裁剪面
	NearPlane = 0.1

	// FarPlane 远裁剪面
	FarPlane = 100.0
)

// HUD 配置（屏幕坐标）
const (
	// HUDMargin 边距
	HUDMargin = 16.0

	// HUDFontSize 字号
	HUDFontSize = 18.0

	// HUDLineHeight 行高
	HUDLineHeight = 26.0

	// InputBoxHeight 输入框高度
	InputBoxHeight = 36.0

	// InputMaxLength 输入框最大字符数
	InputMaxLength = 64

	// ProgressBarWidth 指令进度条宽度
	ProgressBarWidth = 220.0

	// ProgressBarHeight 指令进度条高度
	ProgressBarHeight = 8.0

	// MessageDisplaySeconds 反馈文字显示时长（秒）
	MessageDisplaySeconds = 4.0

	// HUDHistoryLength HUD 上显示的最近指令条数
	HUDHistoryLength = 5

	// MaxCommandHistory 场景保留的指令历史上限
	MaxCommandHistory = 50

	// PetHitHeight 点击判定中心距宠物脚下的高度（世界单位）
	PetHitHeight = 0.6

	// PetHitRadius 点击判定半径（像素）
	PetHitRadius = 70.0
)

// GetGroundBounds 返回地面网格的世界坐标边界
// 返回值：minX, minZ, maxX, maxZ
func GetGroundBounds() (float64, float64, float64, float64) {
	return -GroundHalfExtent, -GroundHalfExtent, GroundHalfExtent, GroundHalfExtent
}
