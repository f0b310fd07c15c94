package scenes

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/gonewx/goodboy/pkg/components"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/ecs"
	"github.com/gonewx/goodboy/pkg/entities"
	"github.com/gonewx/goodboy/pkg/game"
	"github.com/gonewx/goodboy/pkg/render"
	"github.com/gonewx/goodboy/pkg/systems"
)

// inputPlaceholder 输入框为空时的提示
const inputPlaceholder = "tell the dog what to do... (sit, jump, roll over, good dog)"

// NewPetScene 创建宠物场景
//
// 参数:
//   - director: 动画/镜头/灯光参数
//   - responses: 自由文本响应表
//   - audioManager: 音频管理器，可为 nil（静音）
//   - rng: 镜头抖动和台词挑选的随机源，可为 nil
//
// 返回:
//   - *PetScene: 场景实例
//   - error: 参数无效时返回错误
func NewPetScene(director *config.DirectorConfig, responses *config.ResponseConfig, audioManager *game.AudioManager, rng *rand.Rand) (*PetScene, error) {
	if director == nil {
		return nil, fmt.Errorf("director config cannot be nil")
	}

	em := ecs.NewEntityManager()
	petEntity, err := entities.NewPetEntity(em, director.Animation.HomePosition)
	if err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	timerSystem := systems.NewTimerSystem(em)
	interpreter, err := game.NewCommandInterpreter(responses, timerSystem, director.Obedience.WindowSeconds, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create command interpreter: %w", err)
	}

	s := &PetScene{
		entityManager:      em,
		director:           director,
		petEntity:          petEntity,
		timerSystem:        timerSystem,
		dispatchSystem:     systems.NewCommandDispatchSystem(em, timerSystem, petEntity),
		animationSystem:    systems.NewAnimationSystem(em, petEntity, director.Animation),
		cameraSystem:       systems.NewCameraSystem(em, petEntity, director.Camera, rng),
		lightingSystem:     systems.NewLightingSystem(em, petEntity, director.Lighting),
		speechBubbleSystem: systems.NewSpeechBubbleSystem(em, petEntity),
		textInputSystem:    systems.NewTextInputSystem(em),
		interpreter:        interpreter,
		audioManager:       audioManager,
		hud:                render.NewHUD(),
		followUpTimer:      ecs.InvalidEntity,
	}
	s.renderSystem = systems.NewRenderSystem(em, petEntity, s.cameraSystem.CameraEntity())

	s.initInput()
	s.initListeners()

	log.Printf("[PetScene] 场景初始化完成: 宠物实体 %d, 实体总数 %d", petEntity, em.EntityCount())
	return s, nil
}

// initInput 创建获得焦点的指令输入框
func (s *PetScene) initInput() {
	s.inputEntity = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.inputEntity, &components.TextInputComponent{
		MaxLength:   config.InputMaxLength,
		Placeholder: inputPlaceholder,
		IsFocused:   true,
		OnSubmit: func(text string) {
			s.Submit(text)
		},
	})
}

// initListeners 注册指令开始监听者（历史、音效）和乖乖模式到期的反应
func (s *PetScene) initListeners() {
	s.dispatchSystem.OnStart(s.recordCommand)
	if s.audioManager != nil {
		s.dispatchSystem.OnStart(s.audioManager.OnCommandStart)
	}
	s.interpreter.OnObedienceEnd(s.onObedienceEnd)
}
