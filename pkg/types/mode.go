package types

// Mode 钻探船的挖掘模式
type Mode int

const (
	// ModeVertical 垂直挖掘（主竖井）
	ModeVertical Mode = iota
	// ModeHorizontal 水平挖掘（支路）
	ModeHorizontal
	// ModeTransitioning 模式切换中
	ModeTransitioning
)

// String 返回模式的字符串表示
func (m Mode) String() string {
	switch m {
	case ModeVertical:
		return "vertical"
	case ModeHorizontal:
		return "horizontal"
	case ModeTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// LocomotionStatus 速度积分状态
type LocomotionStatus int

const (
	// LocomotionNeutral 空挡（无输入、无制动）
	LocomotionNeutral LocomotionStatus = iota
	// LocomotionAccelerating 加速中
	LocomotionAccelerating
	// LocomotionAtSpeed 已达最大速度
	LocomotionAtSpeed
	// LocomotionBraking 制动中
	LocomotionBraking
)

// String 返回运动状态的字符串表示
func (s LocomotionStatus) String() string {
	switch s {
	case LocomotionNeutral:
		return "neutral"
	case LocomotionAccelerating:
		return "accelerating"
	case LocomotionAtSpeed:
		return "at-speed"
	case LocomotionBraking:
		return "braking"
	default:
		return "unknown"
	}
}
