package components

import "github.com/gonewx/drillship/pkg/types"

// CameraComponent 镜头取景状态
// 镜头是模式状态机的只读观察者，ObservedMode 只用于一致性检查
type CameraComponent struct {
	// ObservedMode 上一帧观察到的模式
	ObservedMode types.Mode

	// Rotation 镜头旋转角（度），水平模式为 ±90
	Rotation float64

	// Size 正交尺寸（视野半高，世界单位）
	Size float64

	// IdleOffset 垂直模式下镜头相对船体的纵向领先量
	IdleOffset float64

	// HorizLeft 最近一次横屏方向是否为左
	HorizLeft bool

	// X, Y 镜头中心（世界坐标）
	X, Y float64
}
