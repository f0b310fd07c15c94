// trace_command 无窗口运行一条指令，逐帧输出宠物位置、镜头和灯光，
// 用于生成/比对 golden 输出。
//
// 用法:
//
//	go run ./cmd/trace_command -command jump -every 10
//	go run ./cmd/trace_command -command "roll over" -config my_director.yaml -seed 7
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/entities"
	"github.com/gonewx/goodboy/pkg/systems"
	"github.com/gonewx/goodboy/pkg/types"
	"gopkg.in/yaml.v3"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	commandName = flag.String("command", "jump", "要追踪的指令")
	configPath  = flag.String("config", "", "覆盖默认参数的 director.yaml")
	fps         = flag.Int("fps", 60, "模拟帧率")
	every       = flag.Int("every", 6, "每隔多少帧采样一次")
	tail        = flag.Float64("tail", 1.0, "指令结束后继续追踪的秒数")
	seed        = flag.Uint64("seed", 1, "镜头抖动随机种子")
)

// Sample 一个采样点
type Sample struct {
	Frame       int          `yaml:"frame"`
	Time        float64      `yaml:"t"`
	Command     string       `yaml:"command"`
	Position    mgl64.Vec3   `yaml:"position"`
	Camera      mgl64.Vec3   `yaml:"camera"`
	LookAt      mgl64.Vec3   `yaml:"lookAt"`
	FieldOfView float64      `yaml:"fov"`
	Shake       float64      `yaml:"shake"`
	Lights      []LightTrace `yaml:"lights"`
}

// LightTrace 单个光源的采样
type LightTrace struct {
	Name      string  `yaml:"name"`
	Color     string  `yaml:"color"`
	Intensity float64 `yaml:"intensity"`
}

// Trace 完整输出
type Trace struct {
	Command   string   `yaml:"command"`
	Duration  float64  `yaml:"duration"`
	Completed bool     `yaml:"completed"`
	Samples   []Sample `yaml:"samples"`
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cmd, ok := types.ParseCommand(*commandName)
	if !ok || cmd == types.CommandIdle {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", *commandName)
		os.Exit(2)
	}
	if *fps <= 0 || *every <= 0 {
		fmt.Fprintln(os.Stderr, "-fps and -every must be positive")
		os.Exit(2)
	}

	director := config.DefaultDirectorConfig()
	if *configPath != "" {
		if err := director.ApplyOverride(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	trace, err := run(director, cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(trace); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run 无窗口地执行一条指令并采样
func run(director *config.DirectorConfig, cmd types.Command) (*Trace, error) {
	em := ecs.NewEntityManager()
	pet, err := entities.NewPetEntity(em, director.Animation.HomePosition)
	if err != nil {
		return nil, err
	}

	timers := systems.NewTimerSystem(em)
	dispatch := systems.NewCommandDispatchSystem(em, timers, pet)
	anim := systems.NewAnimationSystem(em, pet, director.Animation)
	camera := systems.NewCameraSystem(em, pet, director.Camera, rand.New(rand.NewPCG(*seed, *seed)))
	lighting := systems.NewLightingSystem(em, pet, director.Lighting)

	profile := config.LookupCommand(cmd)
	trace := &Trace{Command: cmd.String(), Duration: profile.DurationSeconds()}
	dispatch.OnComplete(func(types.Command) { trace.Completed = true })

	if !dispatch.Issue(cmd) {
		return nil, fmt.Errorf("command %s was not accepted", cmd)
	}

	dt := 1.0 / float64(*fps)
	frames := int((profile.DurationSeconds() + *tail) * float64(*fps))
	for frame := 1; frame <= frames; frame++ {
		timers.Update(dt)
		anim.Update(dt)
		camera.Update(dt)
		lighting.Update(dt)
		em.RemoveMarkedEntities()

		if frame%*every != 0 {
			continue
		}
		trace.Samples = append(trace.Samples, sample(em, pet, camera.CameraEntity(), dispatch.Active(), frame, dt))
	}

	return trace, nil
}

func sample(em *ecs.EntityManager, pet, cameraEntity ecs.EntityID, active types.Command, frame int, dt float64) Sample {
	s := Sample{Frame: frame, Time: float64(frame) * dt, Command: active.String()}

	if pos, ok := ecs.GetComponent[*components.TrackedPositionComponent](em, pet); ok {
		s.Position = pos.Position
	}
	if cam, ok := ecs.GetComponent[*components.CameraComponent](em, cameraEntity); ok {
		s.Camera = cam.Position
		s.LookAt = cam.LookAt
		s.FieldOfView = cam.FieldOfView
		s.Shake = cam.ShakeIntensity
	}
	for _, id := range ecs.GetEntitiesWith1[*components.LightComponent](em) {
		l, _ := ecs.GetComponent[*components.LightComponent](em, id)
		s.Lights = append(s.Lights, LightTrace{Name: l.Name, Color: l.Color.Hex(), Intensity: l.Intensity})
	}
	return s
}
