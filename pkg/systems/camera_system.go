package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/drillship/internal/curve"
	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

// CameraFramingSystem 镜头取景
//
// 模式状态机的只读观察者：垂直模式下记录最近的横屏方向，
// 切换中按权威进度驱动镜头旋转与缩放，各自使用独立的曲线。
type CameraFramingSystem struct {
	entityManager *ecs.EntityManager
	camera        ecs.EntityID
	ship          ecs.EntityID
	modes         ModeReader
	orientation   OrientationSource
	config        config.CameraConfig
	rotationCurve *curve.Curve
	zoomCurve     *curve.Curve

	// debug 为 true 时状态不一致直接 panic
	debug bool
}

// NewCameraFramingSystem 创建镜头取景系统
func NewCameraFramingSystem(em *ecs.EntityManager, camera, ship ecs.EntityID, modes ModeReader, orientation OrientationSource, cfg config.CameraConfig, debug bool) (*CameraFramingSystem, error) {
	rotation, err := cfg.RotationCurve.Build()
	if err != nil {
		return nil, fmt.Errorf("镜头旋转曲线无效: %w", err)
	}
	zoom, err := cfg.ZoomCurve.Build()
	if err != nil {
		return nil, fmt.Errorf("镜头缩放曲线无效: %w", err)
	}

	return &CameraFramingSystem{
		entityManager: em,
		camera:        camera,
		ship:          ship,
		modes:         modes,
		orientation:   orientation,
		config:        cfg,
		rotationCurve: rotation,
		zoomCurve:     zoom,
		debug:         debug,
	}, nil
}

// legalTransition 观察到的模式变化必须是状态机的一条边
func legalTransition(from, to types.Mode) bool {
	if from == to {
		return true
	}
	return from == types.ModeTransitioning || to == types.ModeTransitioning
}

// Update 更新镜头；必须在权威状态机本帧更新之后调用
func (s *CameraFramingSystem) Update(dt float64) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.camera)
	if !ok {
		return
	}

	mode := s.modes.Mode()
	if !legalTransition(cam.ObservedMode, mode) {
		err := fmt.Errorf("%w: camera observed %s, authority reports %s", types.ErrStateInvariant, cam.ObservedMode, mode)
		if s.debug {
			panic(err)
		}
		log.Printf("[CameraFraming] %v，按权威状态修正", err)
	}
	cam.ObservedMode = mode

	var vel utils.Vec2
	var lateral float64
	if loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.ship); ok {
		vel = loco.Velocity
		lateral = loco.LateralOffset
	}

	switch mode {
	case types.ModeVertical:
		if s.orientation != nil {
			o := s.orientation.Orientation()
			if o.X() < -s.config.OrientationThreshold {
				cam.HorizLeft = true
			} else if o.X() > s.config.OrientationThreshold {
				cam.HorizLeft = false
			}
		}
		cam.Rotation = 0
		cam.Size = s.config.VertSize
		cam.IdleOffset = utils.Lerp(cam.IdleOffset, vel.Y()*s.config.IdleOffsetFactor, s.config.IdleOffsetSmoothing)

	case types.ModeTransitioning:
		p := s.modes.Progress()
		cam.Rotation = utils.LerpUnclamped(0, s.horizontalRotation(cam), s.rotationCurve.Evaluate(p))
		cam.Size = utils.LerpUnclamped(s.config.VertSize, s.config.HorizSize, s.zoomCurve.Evaluate(p))
		cam.IdleOffset = utils.Lerp(cam.IdleOffset, 0, s.config.IdleOffsetSmoothing)

	case types.ModeHorizontal:
		cam.Rotation = s.horizontalRotation(cam)
		cam.Size = s.config.HorizSize
		cam.IdleOffset = 0
	}

	cam.X = lateral
	cam.Y = cam.IdleOffset
}

// horizontalRotation 水平模式的镜头角度，与最近的横屏方向一致
func (s *CameraFramingSystem) horizontalRotation(cam *components.CameraComponent) float64 {
	if cam.HorizLeft {
		return 90
	}
	return -90
}

// Camera 返回镜头组件（只读使用）
func (s *CameraFramingSystem) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.camera)
	return cam
}
