package systems

import (
	"errors"

	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

// 模式切换请求被拒绝的原因
var (
	// ErrShipMisaligned 船体偏离竖井中心过远，不能回到垂直模式
	ErrShipMisaligned = errors.New("ship is misaligned with the shaft")

	// ErrInvalidBranchLocation 当前深度不能开辟新支路
	ErrInvalidBranchLocation = errors.New("invalid branch location")
)

// ModeReader 模式状态机的只读视图
type ModeReader interface {
	// Mode 当前模式
	Mode() types.Mode
	// Progress 权威切换动画的进度 [0, 1]（0 = 垂直，1 = 水平）
	Progress() float64
	// Heading 切换中的目标模式；非切换状态时等于 Mode()
	Heading() types.Mode
}

// ModeSwitcher 可以发起模式切换的视图
type ModeSwitcher interface {
	ModeReader
	ToggleModeTo(target types.Mode)
}

// BranchVisualizer 支路隧道可视化协作者
type BranchVisualizer interface {
	BeginBranch()
	ExtendBranch(progress, leftExtent, rightExtent float64)
	EndBranch()
	IsBranchLocationValid() bool
}

// OrientationSource 平滑后的设备朝向
type OrientationSource interface {
	Orientation() utils.Vec3
}
