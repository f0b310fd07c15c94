package types

// AnimationProfile 动画档案，决定角色动画、镜头机位和灯光的表现
//
// 指令与档案不是一一对应的：sit 指令使用 ProfileRocket（火箭升空），
// 真正"坐好"的姿势属于 stay 指令的 ProfileStay。
type AnimationProfile int

const (
	// ProfileIdle 呼吸、摇尾巴
	ProfileIdle AnimationProfile = iota
	// ProfileRocket 下蹲蓄力后升空再落地
	ProfileRocket
	// ProfileJump 连续原地跳
	ProfileJump
	// ProfileSpin 原地转圈
	ProfileSpin
	// ProfileRun 绕圈跑一周回到原位
	ProfileRun
	// ProfilePlay 左右蹦跳、伏身邀玩
	ProfilePlay
	// ProfileSpeak 点头张嘴
	ProfileSpeak
	// ProfileStay 坐姿
	ProfileStay
	// ProfileRollover 侧滚一周
	ProfileRollover
)

// String 返回动画档案的字符串表示
func (p AnimationProfile) String() string {
	switch p {
	case ProfileIdle:
		return "idle"
	case ProfileRocket:
		return "rocket"
	case ProfileJump:
		return "jump"
	case ProfileSpin:
		return "spin"
	case ProfileRun:
		return "run"
	case ProfilePlay:
		return "play"
	case ProfileSpeak:
		return "speak"
	case ProfileStay:
		return "stay"
	case ProfileRollover:
		return "rollover"
	default:
		return "unknown"
	}
}
