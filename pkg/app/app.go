// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载嵌入的配置、创建音频上下文和场景。
// main.go 负责解析命令行参数并调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand/v2"

	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/embedded"
	"github.com/gonewx/goodboy/pkg/game"
	"github.com/gonewx/goodboy/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 嵌入的配置文件路径
const (
	DirectorConfigPath = "data/director.yaml"
	ResponseConfigPath = "data/responses.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 覆盖 director.yaml 的外部配置文件，为空则只用内置配置
	ConfigPath string
	// Seed 镜头抖动随机种子，0 表示随机
	Seed uint64
	// Mute 不创建音频上下文
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	director, responses, err := LoadConfigs(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 初始化音频上下文
	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(game.DefaultSampleRate)
	}
	audioManager := game.NewAudioManager(audioContext)
	log.Printf("[App] AudioManager initialized (mute=%v)", cfg.Mute)

	petScene, err := scenes.NewPetScene(director, responses, audioManager, newRand(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(petScene)

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadConfigs 加载内置配置，并按需合并外部覆盖文件
func LoadConfigs(overridePath string) (*config.DirectorConfig, *config.ResponseConfig, error) {
	fsys, err := embedded.FS()
	if err != nil {
		return nil, nil, err
	}

	director, err := config.LoadDirectorConfigFS(fsys, DirectorConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("动画配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载内置配置: %s", DirectorConfigPath)

	if overridePath != "" {
		if err := director.ApplyOverride(overridePath); err != nil {
			return nil, nil, fmt.Errorf("覆盖配置加载失败: %w", err)
		}
		log.Printf("[Config] 应用覆盖配置: %s", overridePath)
	}

	responses, err := config.LoadResponseConfigFS(fsys, ResponseConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("响应表加载失败: %w", err)
	}
	log.Printf("[Config] 加载响应表: 默认 %d 条, 乖乖模式 %d 条", len(responses.Default.Rules), len(responses.Obedient.Rules))

	return director, responses, nil
}

// newRand 按种子创建随机源，种子为 0 时随机
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 关闭当前场景，取消所有挂起的定时任务
func (a *App) Close() {
	a.sceneManager.Close()
}

// Closed 当前场景是否已关闭
func (a *App) Closed() bool {
	return a.sceneManager.GetCurrentScene() == nil
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
