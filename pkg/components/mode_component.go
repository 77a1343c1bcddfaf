package components

import "github.com/gonewx/drillship/pkg/types"

// ModeComponent 模式切换状态机的权威状态
type ModeComponent struct {
	// Mode 当前模式
	Mode types.Mode

	// Heading 切换中的目标模式；非切换状态时等于 Mode
	Heading types.Mode

	// Correction 回到竖井时的横向偏移校正
	Correction ShaftCorrection
}

// ShaftCorrection 离开水平模式时记录的横向偏移
// 切换过程中偏移按校正曲线逐渐归零
type ShaftCorrection struct {
	Active bool

	// Offset 记录时的横向偏移
	Offset float64

	// Progress 记录时切换动画的进度
	Progress float64
}
