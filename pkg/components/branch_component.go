package components

import "github.com/google/uuid"

// BranchComponent 水平支路隧道
type BranchComponent struct {
	// ID 支路标识
	ID uuid.UUID

	// Depth 支路所在深度
	Depth float64

	// Left, Right 隧道两端相对竖井中心的横向坐标（Left ≤ 0 ≤ Right）
	Left, Right float64

	// Progress 开辟动画进度 [0, 1]
	Progress float64

	// Finished 船体已离开该支路
	Finished bool
}

// Width 隧道总宽度
func (b *BranchComponent) Width() float64 {
	return b.Right - b.Left
}
