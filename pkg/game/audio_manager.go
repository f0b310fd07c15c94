package game

import (
	"encoding/binary"
	"log"
	"math"
	"math/rand/v2"

	"github.com/gonewx/goodboy/pkg/types"
	"github.com/gonewx/goodboy/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundID 音效标识
type SoundID string

const (
	// SoundBark 狗叫（speak）
	SoundBark SoundID = "bark"
	// SoundWhoosh 火箭升空的呼啸声（sit）
	SoundWhoosh SoundID = "whoosh"
)

// DefaultSampleRate 音频采样率
const DefaultSampleRate = 48000

// AudioManager 音频管理器
// 职责：
//   - 在启动时程序化合成全部音效（16 位小端、双声道 PCM），不依赖音频资源文件
//   - 指令开始时播放对应的音效
//   - 音频上下文为 nil（静音模式 / 测试）时所有播放调用都安全返回 false
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundID][]byte        // 合成好的 PCM 数据
	players map[SoundID]*audio.Player // 播放器缓存
	volume  float64
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil（静音）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context) *AudioManager {
	sampleRate := DefaultSampleRate
	if ctx != nil {
		sampleRate = ctx.SampleRate()
	}

	am := &AudioManager{
		context: ctx,
		sounds: map[SoundID][]byte{
			SoundBark:   SynthesizeBark(sampleRate),
			SoundWhoosh: SynthesizeWhoosh(sampleRate),
		},
		players: make(map[SoundID]*audio.Player),
		volume:  0.8,
	}

	log.Printf("[AudioManager] 合成音效 %d 个 (采样率 %d)", len(am.sounds), sampleRate)
	return am
}

// SoundForCommand 返回指令对应的音效
func SoundForCommand(cmd types.Command) (SoundID, bool) {
	switch cmd {
	case types.CommandSpeak:
		return SoundBark, true
	case types.CommandSit:
		return SoundWhoosh, true
	default:
		return "", false
	}
}

// OnCommandStart 指令开始时播放对应音效（注册为调度系统的 OnStart 监听者）
func (am *AudioManager) OnCommandStart(cmd types.Command) {
	if id, ok := SoundForCommand(cmd); ok {
		am.PlaySound(id)
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am.context == nil {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// SetVolume 设置音效音量 (0.0 ~ 1.0)
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = utils.Clamp01(volume)
	for _, p := range am.players {
		p.SetVolume(am.volume)
	}
}

// Volume 返回当前音量
func (am *AudioManager) Volume() float64 {
	return am.volume
}

// SoundData 返回合成好的 PCM 数据
func (am *AudioManager) SoundData(id SoundID) ([]byte, bool) {
	data, ok := am.sounds[id]
	return data, ok
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(id SoundID) *audio.Player {
	if player, ok := am.players[id]; ok {
		return player
	}

	data, ok := am.sounds[id]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound %s", id)
		return nil
	}

	player := am.context.NewPlayerFromBytes(data)
	am.players[id] = player
	return player
}

// SynthesizeBark 合成一声狗叫：两段快速下滑的带谐波音调，叠加少量噪声
func SynthesizeBark(sampleRate int) []byte {
	rng := rand.New(rand.NewPCG(7, 11))
	const (
		woofLength = 0.14
		gap        = 0.06
	)

	woof := int(woofLength * float64(sampleRate))
	pause := int(gap * float64(sampleRate))
	total := 2*woof + pause
	samples := make([]float64, total)

	for w := 0; w < 2; w++ {
		start := w * (woof + pause)
		phase := 0.0
		for i := 0; i < woof; i++ {
			p := float64(i) / float64(woof)
			freq := 520 - 260*p
			phase += 2 * math.Pi * freq / float64(sampleRate)

			// 快速起音，指数衰减
			env := math.Min(1, p*25) * math.Exp(-4*p)
			tone := math.Sin(phase) + 0.5*math.Sin(2*phase) + 0.25*math.Sin(3*phase)
			noise := rng.Float64()*2 - 1
			samples[start+i] = env * (0.45*tone + 0.2*noise)
		}
	}

	return encodePCM(samples)
}

// SynthesizeWhoosh 合成呼啸声：低通滤波的噪声，音量先升后降
func SynthesizeWhoosh(sampleRate int) []byte {
	rng := rand.New(rand.NewPCG(3, 5))
	const length = 0.9

	n := int(length * float64(sampleRate))
	samples := make([]float64, n)
	lowpass := 0.0

	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		// 截止频率随时间升高，听起来像在加速
		alpha := 0.02 + 0.25*p
		lowpass += alpha * ((rng.Float64()*2 - 1) - lowpass)
		env := math.Sin(math.Pi * p)
		samples[i] = 0.9 * env * lowpass * 3
	}

	return encodePCM(samples)
}

// encodePCM 把 [-1, 1] 的单声道采样编码为 16 位小端双声道 PCM
func encodePCM(samples []float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := int16(utils.Clamp(s, -1, 1) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[4*i:], uint16(v))
		binary.LittleEndian.PutUint16(out[4*i+2:], uint16(v))
	}
	return out
}
