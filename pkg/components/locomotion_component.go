package components

import (
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

// LocomotionComponent 速度积分状态（唯一权威实例）
type LocomotionComponent struct {
	// Velocity 二维速度：垂直模式驱动 Y（向下为负），水平模式驱动 X
	Velocity utils.Vec2

	// Status 运动状态
	Status types.LocomotionStatus

	// LateralOffset 船体相对竖井中心的横向偏移
	LateralOffset float64

	// Depth 已挖掘深度（挖掘空间的滚动量，向下为正）
	Depth float64

	// PendingSwitch 等待速度归零后执行的模式切换
	PendingSwitch bool

	// PendingVertical 待执行的切换目标是否为垂直模式
	PendingVertical bool
}
