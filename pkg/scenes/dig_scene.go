package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/entities"
	"github.com/gonewx/drillship/pkg/game"
	"github.com/gonewx/drillship/pkg/systems"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// DigSceneName 挖掘场景在 SceneManager 中的名称
const DigSceneName = "dig"

// DigScene 挖掘现场：钻探船、镜头、支路与地层
//
// 系统在构造时按依赖顺序注入，不做全局查找：
// 支路 -> 插值引擎 -> 模式状态机 -> 速度状态机 -> 镜头 -> 输入 -> 地层。
type DigScene struct {
	entityManager *ecs.EntityManager
	ship          ecs.EntityID
	camera        ecs.EntityID
	config        *config.ShipConfig

	branchSystem     *systems.BranchSystem
	animatorSystem   *systems.ShipAnimatorSystem
	modeSystem       *systems.ModeTransitionSystem
	locomotionSystem *systems.LocomotionSystem
	cameraSystem     *systems.CameraFramingSystem
	orientation      *systems.SmoothedOrientation
	inputSystem      *systems.InputSystem
	tileSystem       *systems.TileSpawnerSystem
	renderSystem     *systems.RigRenderSystem

	stepper *game.FixedStepper
	hud     *hud

	frame   int
	elapsed float64
}

// NewDigScene 创建挖掘场景
// controls 为输入来源，可为 nil（无输入，船体保持静止）
func NewDigScene(bundle *config.Bundle, controls systems.ControlSource) (*DigScene, error) {
	if bundle == nil || bundle.Rig == nil || bundle.Ship == nil {
		return nil, fmt.Errorf("配置不完整")
	}
	cfg := bundle.Ship
	em := ecs.NewEntityManager()

	ship, err := entities.NewShipEntity(em, bundle.Rig, bundle.Animations)
	if err != nil {
		return nil, fmt.Errorf("创建钻探船失败: %w", err)
	}
	camera := entities.NewCameraEntity(em, cfg.Camera)

	correction, err := cfg.Animator.ShaftCorrection.Build()
	if err != nil {
		return nil, fmt.Errorf("校正曲线无效: %w", err)
	}

	s := &DigScene{
		entityManager: em,
		ship:          ship,
		camera:        camera,
		config:        cfg,
		stepper:       game.NewFixedStepper(cfg.FixedStep, cfg.MaxFixedSteps),
		hud:           newHUD(),
	}

	s.branchSystem = systems.NewBranchSystem(em, ship, cfg.Branch)
	s.animatorSystem = systems.NewShipAnimatorSystem(em, ship, cfg.Animator)
	s.modeSystem = systems.NewModeTransitionSystem(em, ship, s.animatorSystem, s.branchSystem, correction)
	s.branchSystem.SetModeReader(s.modeSystem)
	s.locomotionSystem = systems.NewLocomotionSystem(em, ship, cfg.Locomotion, s.modeSystem, s.branchSystem)
	s.orientation = systems.NewSmoothedOrientation(cfg.Orientation)

	s.cameraSystem, err = systems.NewCameraFramingSystem(em, camera, ship, s.modeSystem, s.orientation, cfg.Camera, cfg.Debug)
	if err != nil {
		return nil, err
	}
	s.inputSystem = systems.NewInputSystem(controls, s.locomotionSystem, s.modeSystem, s.orientation)
	s.tileSystem = systems.NewTileSpawnerSystem(em, cfg.Tiles)
	s.renderSystem = systems.NewRigRenderSystem(em, ship, camera)

	// 实时姿态与各动画的初始时钟对齐
	if rig, ok := ecs.GetComponent[*components.RigComponent](em, ship); ok {
		for _, anim := range rig.Animations {
			s.animatorSystem.ComputeAnimation(anim)
		}
	}
	if cam, ok := ecs.GetComponent[*components.CameraComponent](em, camera); ok {
		cam.ObservedMode = s.modeSystem.Mode()
	}
	s.tileSystem.Update(0)

	s.modeSystem.Subscribe(func(from, to types.Mode) {
		log.Printf("[DigScene] 帧 %d: 模式 %s -> %s", s.frame, from, to)
	})

	log.Printf("[DigScene] 场景初始化完成 (fixed_step=%.3f, debug=%v)", cfg.FixedStep, cfg.Debug)
	return s, nil
}

// Update 推进一帧
//
// 顺序：朝向与输入意图 -> 固定步（加速/制动、挂起切换、转速）-> 动画时钟与偏移校正
// -> 镜头 -> 支路、移动、地层。镜头总是读取本帧已更新的权威状态。
func (s *DigScene) Update(deltaTime float64) {
	s.frame++
	s.elapsed += deltaTime

	s.orientation.Update(deltaTime)
	s.inputSystem.Update(deltaTime)

	s.stepper.Advance(deltaTime, func(step float64) {
		s.locomotionSystem.FixedUpdate(step)
		s.animatorSystem.FixedUpdate()
	})

	s.animatorSystem.Update(deltaTime)
	s.modeSystem.Update()

	s.cameraSystem.Update(deltaTime)

	s.branchSystem.Update()
	s.locomotionSystem.Move(deltaTime)
	s.tileSystem.Update(s.depth())
	s.renderSystem.Update(deltaTime)
}

func (s *DigScene) depth() float64 {
	if loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.ship); ok {
		return loco.Depth
	}
	return 0
}

// Draw 绘制场景与状态栏
func (s *DigScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	s.hud.Draw(screen, s.Snapshot(), s.LastError(), s.Debug())
}

// Close 实现 game.Closer
func (s *DigScene) Close() {
	snap := s.Snapshot()
	log.Printf("[DigScene] 关闭: %d 帧, %.1f 秒, 深度 %.2f, %d 条支路", snap.Frame, snap.Time, snap.Depth, snap.Branches)
}

// SetAcceleration 输入加速度计读数（移动端）
func (s *DigScene) SetAcceleration(x, y, z float64) {
	s.orientation.SetAcceleration(x, y, z)
}

// ModeSystem 模式状态机（工具与测试使用）
func (s *DigScene) ModeSystem() *systems.ModeTransitionSystem {
	return s.modeSystem
}

// LocomotionSystem 速度状态机（工具与测试使用）
func (s *DigScene) LocomotionSystem() *systems.LocomotionSystem {
	return s.locomotionSystem
}

// Camera 镜头组件
func (s *DigScene) Camera() *components.CameraComponent {
	return s.cameraSystem.Camera()
}

// Live 当前姿态
func (s *DigScene) Live() *components.Configuration {
	return s.animatorSystem.Live()
}

// Branches 已开辟的支路
func (s *DigScene) Branches() []*components.BranchComponent {
	return s.branchSystem.Branches()
}

// Tiles 当前地层
func (s *DigScene) Tiles() []*components.TileComponent {
	return s.tileSystem.Tiles()
}

// LastError 最近一次被拒绝的操作
func (s *DigScene) LastError() error {
	return s.inputSystem.LastError()
}

// Debug 是否处于调试模式
func (s *DigScene) Debug() bool {
	return s.config.Debug
}

// Snapshot 一帧的只读状态
type Snapshot struct {
	Frame      int
	FixedSteps int
	Time       float64
	Mode       types.Mode
	Heading    types.Mode
	Progress   float64

	Velocity      utils.Vec2
	Status        types.LocomotionStatus
	Depth         float64
	LateralOffset float64
	Pending       bool

	CameraRotation float64
	CameraSize     float64

	Branches int
	Tiles    int

	Live        [types.ElementCount]utils.Transform
	RotorSpeeds [types.ElementCount]float64
}

// Snapshot 采集当前状态
func (s *DigScene) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:      s.frame,
		FixedSteps: s.stepper.Total(),
		Time:       s.elapsed,
		Mode:       s.modeSystem.Mode(),
		Heading:    s.modeSystem.Heading(),
		Progress:   s.modeSystem.Progress(),
		Velocity:   s.locomotionSystem.Velocity(),
		Status:     s.locomotionSystem.Status(),
		Pending:    s.locomotionSystem.PendingSwitch(),
		Branches:   len(s.branchSystem.Branches()),
		Tiles:      len(s.tileSystem.Tiles()),
	}
	if loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.ship); ok {
		snap.Depth = loco.Depth
		snap.LateralOffset = loco.LateralOffset
	}
	if cam := s.cameraSystem.Camera(); cam != nil {
		snap.CameraRotation = cam.Rotation
		snap.CameraSize = cam.Size
	}
	if live := s.animatorSystem.Live(); live != nil {
		for _, e := range types.Schema() {
			snap.Live[e], _ = live.Get(e)
			snap.RotorSpeeds[e] = s.animatorSystem.RotorSpeed(e)
		}
	}
	return snap
}
