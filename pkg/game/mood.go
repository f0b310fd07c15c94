package game

// Mood 宠物当前的情绪，随玩家输入变化
type Mood int

const (
	// MoodMischievous 调皮（初始状态，乖乖模式结束后回到这里）
	MoodMischievous Mood = iota
	// MoodDefiant 刚刚拒绝了一条指令
	MoodDefiant
	// MoodPlayful 听不懂指令，自顾自地玩
	MoodPlayful
	// MoodObedient 乖乖模式
	MoodObedient
)

var moodNames = [...]string{
	MoodMischievous: "mischievous",
	MoodDefiant:     "defiant",
	MoodPlayful:     "playful",
	MoodObedient:    "obedient",
}

// String 返回情绪名称
func (m Mood) String() string {
	if m < 0 || int(m) >= len(moodNames) {
		return "unknown"
	}
	return moodNames[m]
}

const (
	// MaxEnergy 初始精力
	MaxEnergy = 100
	// DisobeyEnergyCost 每次调皮地拒绝指令消耗的精力
	DisobeyEnergyCost = 10
	// GoodDogSettleDelay 说出特殊短语后先跳一下，再过这么久乖乖坐好（秒）
	GoodDogSettleDelay = 2.0
)
