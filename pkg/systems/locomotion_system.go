package systems

import (
	"log"
	"math"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

// LocomotionSystem 速度状态机：空挡、加速、最大速度、制动
//
// 垂直模式驱动速度的 Y 分量（向下为负），水平模式驱动 X 分量；
// 非活动轴不受输入驱动，但仍然参与制动衰减。
// 输入只记录油门意图，加速与制动都在固定步内施加，与帧率无关。
// 模式切换请求在速度归零前被挂起，每个固定步重新检查。
type LocomotionSystem struct {
	entityManager *ecs.EntityManager
	ship          ecs.EntityID
	config        config.LocomotionConfig
	modes         ModeSwitcher
	branch        BranchVisualizer

	// throttle 活动轴上的加速方向，0 表示松开
	throttle float64
}

// NewLocomotionSystem 创建速度状态机
func NewLocomotionSystem(em *ecs.EntityManager, ship ecs.EntityID, cfg config.LocomotionConfig, modes ModeSwitcher, branch BranchVisualizer) *LocomotionSystem {
	return &LocomotionSystem{
		entityManager: em,
		ship:          ship,
		config:        cfg,
		modes:         modes,
		branch:        branch,
	}
}

func (s *LocomotionSystem) state() *components.LocomotionComponent {
	loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.ship)
	if !ok {
		return nil
	}
	return loco
}

// Velocity 当前速度
func (s *LocomotionSystem) Velocity() utils.Vec2 {
	if loco := s.state(); loco != nil {
		return loco.Velocity
	}
	return utils.Vec2{}
}

// Status 当前运动状态
func (s *LocomotionSystem) Status() types.LocomotionStatus {
	if loco := s.state(); loco != nil {
		return loco.Status
	}
	return types.LocomotionNeutral
}

// PendingSwitch 是否有等待速度归零的模式切换
func (s *LocomotionSystem) PendingSwitch() bool {
	loco := s.state()
	return loco != nil && loco.PendingSwitch
}

// SetThrottle 记录油门意图，在之后的每个固定步生效
// direction 为 0 时松开油门，船体自动制动
func (s *LocomotionSystem) SetThrottle(direction float64) {
	s.throttle = direction
}

// Accelerate 沿当前模式的活动轴施加带符号的加速度
// 切换中忽略；触及最大速度时状态为 at-speed，否则为 accelerating；取消挂起的切换
func (s *LocomotionSystem) Accelerate(direction, dt float64) {
	loco := s.state()
	if loco == nil {
		return
	}

	var clamped bool
	switch s.modes.Mode() {
	case types.ModeVertical:
		loco.Velocity[1], clamped = accelerateAxis(loco.Velocity.Y(), direction*s.config.AccelVertical*dt, s.config.MaxSpeedVertical)
	case types.ModeHorizontal:
		loco.Velocity[0], clamped = accelerateAxis(loco.Velocity.X(), direction*s.config.AccelHorizontal*dt, s.config.MaxSpeedHorizontal)
	default:
		return
	}

	loco.Status = types.LocomotionAccelerating
	if clamped {
		loco.Status = types.LocomotionAtSpeed
	}
	loco.PendingSwitch = false
}

func accelerateAxis(v, dv, max float64) (float64, bool) {
	v += dv
	if v > max {
		return max, true
	}
	if v < -max {
		return -max, true
	}
	return v, false
}

// ReleaseAccel 只把 accelerating 降为 neutral，其它状态不受影响
func (s *LocomotionSystem) ReleaseAccel() {
	if loco := s.state(); loco != nil && loco.Status == types.LocomotionAccelerating {
		loco.Status = types.LocomotionNeutral
	}
}

// Brake 制动
// 速度恰好为零时状态置为 neutral；否则置为 braking，两个轴按各自系数指数衰减，
// 低于阈值的轴直接归零
func (s *LocomotionSystem) Brake() {
	loco := s.state()
	if loco == nil {
		return
	}
	if utils.IsZero(loco.Velocity) {
		loco.Status = types.LocomotionNeutral
		return
	}

	loco.Status = types.LocomotionBraking
	loco.Velocity[1] = utils.Lerp(loco.Velocity.Y(), 0, s.config.BrakeIntensityVert)
	loco.Velocity[0] = utils.Lerp(loco.Velocity.X(), 0, s.config.BrakeIntensityHoriz)

	if math.Abs(loco.Velocity.Y()) < s.config.BrakeSnapThresh {
		loco.Velocity[1] = 0
	}
	if math.Abs(loco.Velocity.X()) < s.config.BrakeSnapThresh {
		loco.Velocity[0] = 0
	}
}

// RequestModeSwitch 请求切换模式
//
// 已处于目标模式（或切换中已朝向目标）时不做任何事并清除挂起标志。
// 回到竖井前检查横向偏移；速度不为零时挂起请求并强制制动，
// 由 FixedUpdate 在速度恰好归零时执行一次。
func (s *LocomotionSystem) RequestModeSwitch(toVertical bool) error {
	loco := s.state()
	if loco == nil {
		return nil
	}

	target := types.ModeHorizontal
	if toVertical {
		target = types.ModeVertical
	}
	if s.modes.Mode() == target || (s.modes.Mode() == types.ModeTransitioning && s.modes.Heading() == target) {
		loco.PendingSwitch = false
		return nil
	}

	if toVertical && s.misaligned(loco) {
		return ErrShipMisaligned
	}

	if !utils.IsZero(loco.Velocity) {
		loco.PendingSwitch = true
		loco.PendingVertical = toVertical
		loco.Status = types.LocomotionBraking
		log.Printf("[Locomotion] 速度 (%.2f, %.2f) 不为零，挂起切换到 %s", loco.Velocity.X(), loco.Velocity.Y(), target)
		return nil
	}

	return s.fire(loco, target)
}

func (s *LocomotionSystem) misaligned(loco *components.LocomotionComponent) bool {
	return math.Abs(loco.LateralOffset) > s.config.AlignmentTolerance
}

// fire 执行切换；挂起期间船体可能继续横向滑动，所以对齐在这里再检查一次
func (s *LocomotionSystem) fire(loco *components.LocomotionComponent, target types.Mode) error {
	if target == types.ModeVertical && s.misaligned(loco) {
		return ErrShipMisaligned
	}
	if target == types.ModeHorizontal && s.branch != nil && !s.branch.IsBranchLocationValid() {
		return ErrInvalidBranchLocation
	}
	s.modes.ToggleModeTo(target)
	return nil
}

// FixedUpdate 固定步长：施加油门意图并检查挂起的模式切换
//
// 有油门时加速（同时取消挂起的切换）；否则每步制动一次。
// 挂起的切换在速度恰好为零的那一步执行并清除挂起标志。
func (s *LocomotionSystem) FixedUpdate(dt float64) {
	loco := s.state()
	if loco == nil {
		return
	}

	if s.throttle != 0 {
		s.Accelerate(s.throttle, dt)
		return
	}

	if loco.PendingSwitch && utils.IsZero(loco.Velocity) {
		s.firePending(loco)
		return
	}

	s.ReleaseAccel()
	s.Brake()
}

func (s *LocomotionSystem) firePending(loco *components.LocomotionComponent) {
	loco.PendingSwitch = false
	loco.Status = types.LocomotionNeutral
	target := types.ModeHorizontal
	if loco.PendingVertical {
		target = types.ModeVertical
	}
	if err := s.fire(loco, target); err != nil {
		log.Printf("[Locomotion] 挂起的切换到 %s 被拒绝: %v", target, err)
	}
}

// Move 可变步长：垂直下行时滚动挖掘空间，水平模式下横向移动船体
func (s *LocomotionSystem) Move(dt float64) {
	loco := s.state()
	if loco == nil {
		return
	}
	switch s.modes.Mode() {
	case types.ModeVertical:
		if loco.Velocity.Y() < 0 {
			loco.Depth -= loco.Velocity.Y() * dt
		}
	case types.ModeHorizontal:
		if loco.Velocity.X() != 0 {
			loco.LateralOffset += loco.Velocity.X() * dt
		}
	}
}
