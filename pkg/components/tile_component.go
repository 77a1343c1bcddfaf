package components

// TileComponent 程序生成的地层
type TileComponent struct {
	// Index 地层序号，从 0 开始
	Index int

	// Top, Bottom 地层上下边界的深度
	Top, Bottom float64
}
