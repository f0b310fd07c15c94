package config

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/types"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DirectorConfig 角色动画、镜头和灯光的调参配置
//
// 配置文件位置: data/director.yaml（编译期嵌入），
// 可通过 -config 参数指定覆盖文件，覆盖文件中未出现的字段保持原值。
type DirectorConfig struct {
	Animation AnimationTuning `yaml:"animation"`
	Camera    CameraTuning    `yaml:"camera"`
	Lighting  LightingTuning  `yaml:"lighting"`
	Obedience ObedienceTuning `yaml:"obedience"`
}

// AnimationTuning 角色动画参数
type AnimationTuning struct {
	HomePosition      mgl64.Vec3 `yaml:"homePosition"`
	PublishThreshold  float64    `yaml:"publishThreshold"`
	BreathSpeed       float64    `yaml:"breathSpeed"`
	TailWagSpeed      float64    `yaml:"tailWagSpeed"`
	JumpHeight        float64    `yaml:"jumpHeight"`
	JumpHopsPerSecond float64    `yaml:"jumpHopsPerSecond"`
	SpinSpeed         float64    `yaml:"spinSpeed"`
	RunRadius         float64    `yaml:"runRadius"`
	RunStrideSpeed    float64    `yaml:"runStrideSpeed"`
	RocketHeight      float64    `yaml:"rocketHeight"`
	RocketCrouch      float64    `yaml:"rocketCrouch"`
	PlaySwing         float64    `yaml:"playSwing"`
	RolloverTravel    float64    `yaml:"rolloverTravel"`
}

// CameraTuning 镜头参数
type CameraTuning struct {
	IdlePosition         mgl64.Vec3 `yaml:"idlePosition"`
	IdleLookAt           mgl64.Vec3 `yaml:"idleLookAt"`
	IdleOscillation      float64    `yaml:"idleOscillation"`
	IdleOscillationSpeed float64    `yaml:"idleOscillationSpeed"`
	IdleOrbitSpeed       float64    `yaml:"idleOrbitSpeed"`
	FollowRate           float64    `yaml:"followRate"`
	ReturnRate           float64    `yaml:"returnRate"`
	FOVRate              float64    `yaml:"fovRate"`
	ShakeDecay           float64    `yaml:"shakeDecay"`
	MinHeight            float64    `yaml:"minHeight"`
	OrbitRadius          float64    `yaml:"orbitRadius"`
	OrbitSpeed           float64    `yaml:"orbitSpeed"`
}

// LightingTuning 灯光参数
type LightingTuning struct {
	HueCycleSpeed float64       `yaml:"hueCycleSpeed"`
	FlickerSpeed  float64       `yaml:"flickerSpeed"`
	Lights        []LightConfig `yaml:"lights"`
}

// LightConfig 单个光源的基础参数
type LightConfig struct {
	Name      string          `yaml:"name"`
	Role      types.LightRole `yaml:"role"` // 调制方式按角色而不是名称区分
	Color     HexColor        `yaml:"color"`
	Intensity float64         `yaml:"intensity"`
	Angle     float64         `yaml:"angle"` // 水平方位角（度）
}

// ObedienceTuning 乖乖模式参数
type ObedienceTuning struct {
	WindowSeconds float64 `yaml:"windowSeconds"`
}

// HexColor 以 "#rrggbb" 形式书写的颜色
type HexColor struct {
	colorful.Color
}

// UnmarshalText 解析 "#rrggbb"
func (c *HexColor) UnmarshalText(text []byte) error {
	col, err := colorful.Hex(string(text))
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", string(text), err)
	}
	c.Color = col
	return nil
}

// MarshalText 输出 "#rrggbb"
func (c HexColor) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// DefaultDirectorConfig 返回与 data/director.yaml 一致的默认配置
// 用于嵌入资源不可用时（如单元测试）
func DefaultDirectorConfig() *DirectorConfig {
	mustHex := func(s string) HexColor {
		c, _ := colorful.Hex(s)
		return HexColor{c}
	}
	return &DirectorConfig{
		Animation: AnimationTuning{
			HomePosition:      mgl64.Vec3{0, 0, 0},
			PublishThreshold:  0.1,
			BreathSpeed:       2.0,
			TailWagSpeed:      8.0,
			JumpHeight:        1.2,
			JumpHopsPerSecond: 1.0,
			SpinSpeed:         6.283185307,
			RunRadius:         2.5,
			RunStrideSpeed:    14.0,
			RocketHeight:      6.0,
			RocketCrouch:      0.5,
			PlaySwing:         0.8,
			RolloverTravel:    1.2,
		},
		Camera: CameraTuning{
			IdlePosition:         mgl64.Vec3{0, 2.5, 7},
			IdleLookAt:           mgl64.Vec3{0, 0.6, 0},
			IdleOscillation:      0.25,
			IdleOscillationSpeed: 0.6,
			IdleOrbitSpeed:       0.05,
			FollowRate:           4.0,
			ReturnRate:           1.5,
			FOVRate:              3.0,
			ShakeDecay:           0.5,
			MinHeight:            0.5,
			OrbitRadius:          5.0,
			OrbitSpeed:           1.5,
		},
		Lighting: LightingTuning{
			HueCycleSpeed: 0.25,
			FlickerSpeed:  30.0,
			Lights: []LightConfig{
				{Name: "key", Role: types.LightRoleKey, Color: mustHex("#ffe2b8"), Intensity: 1.0, Angle: 45},
				{Name: "fill", Role: types.LightRoleFill, Color: mustHex("#9fb8ff"), Intensity: 0.45, Angle: -60},
				{Name: "rim", Role: types.LightRoleRim, Color: mustHex("#ffffff"), Intensity: 0.6, Angle: 160},
				{Name: "ambient", Role: types.LightRoleAmbient, Color: mustHex("#404858"), Intensity: 0.35, Angle: 0},
			},
		},
		Obedience: ObedienceTuning{
			WindowSeconds: 30,
		},
	}
}

// ParseDirectorConfig 从 YAML 数据解析调参配置
//
// 参数:
//   - data: YAML 内容
//
// 返回:
//   - *DirectorConfig: 解析并验证通过的配置
//   - error: 解析或验证失败时返回错误
func ParseDirectorConfig(data []byte) (*DirectorConfig, error) {
	var cfg DirectorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse director config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid director config: %w", err)
	}

	return &cfg, nil
}

// LoadDirectorConfigFS 从文件系统（通常是嵌入的 data/）加载调参配置
func LoadDirectorConfigFS(fsys fs.FS, path string) (*DirectorConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read director config: %w", err)
	}
	return ParseDirectorConfig(data)
}

// LoadDirectorConfig 从磁盘路径加载调参配置
func LoadDirectorConfig(path string) (*DirectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read director config: %w", err)
	}
	return ParseDirectorConfig(data)
}

// ApplyOverride 用磁盘上的 YAML 文件覆盖当前配置
//
// 覆盖文件只需写出需要修改的字段。覆盖后重新验证，
// 验证失败时返回错误且不修改原配置。
func (c *DirectorConfig) ApplyOverride(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read override file: %w", err)
	}

	merged := c.clone()
	if err := yaml.Unmarshal(data, merged); err != nil {
		return fmt.Errorf("failed to parse override file: %w", err)
	}
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("invalid override file: %w", err)
	}

	*c = *merged
	return nil
}

func (c *DirectorConfig) clone() *DirectorConfig {
	cp := *c
	cp.Lighting.Lights = append([]LightConfig(nil), c.Lighting.Lights...)
	return &cp
}

// Validate 验证配置有效性
//
// 检查：
//   - 各趋近速率、衰减速率必须为正
//   - 镜头最低高度不能为负，且 idle 机位不能低于最低高度
//   - 至少配置一个光源，光源名称唯一，每个光源声明角色
//   - 乖乖模式时长必须为正
func (c *DirectorConfig) Validate() error {
	a := c.Animation
	if a.PublishThreshold < 0 {
		return fmt.Errorf("animation.publishThreshold must be >= 0, got %.3f", a.PublishThreshold)
	}
	if a.JumpHopsPerSecond <= 0 {
		return fmt.Errorf("animation.jumpHopsPerSecond must be > 0, got %.3f", a.JumpHopsPerSecond)
	}
	if a.RocketCrouch < 0 {
		return fmt.Errorf("animation.rocketCrouch must be >= 0, got %.3f", a.RocketCrouch)
	}

	cam := c.Camera
	if cam.FollowRate <= 0 || cam.ReturnRate <= 0 || cam.FOVRate <= 0 {
		return fmt.Errorf("camera rates must be > 0 (follow=%.2f return=%.2f fov=%.2f)",
			cam.FollowRate, cam.ReturnRate, cam.FOVRate)
	}
	if cam.ShakeDecay <= 0 {
		return fmt.Errorf("camera.shakeDecay must be > 0, got %.3f", cam.ShakeDecay)
	}
	if cam.MinHeight < 0 {
		return fmt.Errorf("camera.minHeight must be >= 0, got %.3f", cam.MinHeight)
	}
	if cam.IdlePosition.Y() < cam.MinHeight {
		return fmt.Errorf("camera.idlePosition.y (%.2f) below minHeight (%.2f)",
			cam.IdlePosition.Y(), cam.MinHeight)
	}

	if len(c.Lighting.Lights) == 0 {
		return fmt.Errorf("lighting.lights must not be empty")
	}
	seen := make(map[string]bool, len(c.Lighting.Lights))
	for _, l := range c.Lighting.Lights {
		if l.Name == "" {
			return fmt.Errorf("lighting.lights: light without name")
		}
		if seen[l.Name] {
			return fmt.Errorf("lighting.lights: duplicate light %q", l.Name)
		}
		seen[l.Name] = true
		if !l.Role.Valid() {
			return fmt.Errorf("light %q must declare a role (key, fill, rim or ambient)", l.Name)
		}
		if l.Intensity < 0 {
			return fmt.Errorf("light %q intensity must be >= 0, got %.2f", l.Name, l.Intensity)
		}
	}

	if c.Obedience.WindowSeconds <= 0 {
		return fmt.Errorf("obedience.windowSeconds must be > 0, got %.1f", c.Obedience.WindowSeconds)
	}

	return nil
}
