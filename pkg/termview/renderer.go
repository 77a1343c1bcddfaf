// Package termview 在终端中绘制挖掘现场
//
// 终端字符单元约为 1:2 的竖长矩形，因此纵向按两倍像素映射，
// 每个单元取中心点反算到世界坐标后分类着色。
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/systems"
	"github.com/gonewx/drillship/pkg/types"
)

// Canvas 终端画布；tcell.Screen 满足该接口
type Canvas interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Frame 一帧的绘制输入
type Frame struct {
	Camera   *components.CameraComponent
	Live     *components.Configuration
	Depth    float64
	Lateral  float64
	Tiles    []*components.TileComponent
	Branches []*components.BranchComponent

	// Status 状态栏文本，绘制在顶部
	Status []string
	// StatusError 最后一行状态为错误信息
	StatusError bool
}

var (
	styleSky    = tcell.StyleDefault
	styleShaft  = tcell.StyleDefault.Background(tcell.NewRGBColor(40, 28, 20))
	styleBranch = tcell.StyleDefault.Background(tcell.NewRGBColor(52, 36, 26))
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	styleTiles  = [2]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.NewRGBColor(130, 100, 70)).Background(tcell.NewRGBColor(92, 64, 45)),
		tcell.StyleDefault.Foreground(tcell.NewRGBColor(140, 110, 80)).Background(tcell.NewRGBColor(104, 74, 52)),
	}
	tileGlyphs = [2]rune{'░', '▒'}
)

var elementGlyphs = [types.ElementCount]rune{
	types.ElementDrill:   'V',
	types.ElementWinch:   'W',
	types.ElementScrewFL: '@',
	types.ElementScrewFR: '@',
	types.ElementScrewBL: '@',
	types.ElementScrewBR: '@',
	types.ElementCore:    '#',
}

var elementStyles = [types.ElementCount]tcell.Style{
	types.ElementDrill:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(200, 200, 210)),
	types.ElementWinch:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(230, 160, 40)),
	types.ElementScrewFL: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(90, 140, 200)),
	types.ElementScrewFR: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(90, 140, 200)),
	types.ElementScrewBL: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(90, 140, 200)),
	types.ElementScrewBR: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(90, 140, 200)),
	types.ElementCore:    tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(240, 200, 60)),
}

// Draw 绘制一帧
func Draw(c Canvas, f Frame) {
	w, h := c.Size()
	top := len(f.Status)
	if top > h {
		top = h
	}

	for row, line := range f.Status[:top] {
		style := styleStatus
		if f.StatusError && row == len(f.Status)-1 {
			style = styleError
		}
		drawText(c, row, w, line, style)
	}

	rows := h - top
	if rows <= 0 || w <= 0 {
		return
	}
	view := systems.NewView(f.Camera, float64(w), float64(rows)*2)
	for row := 0; row < rows; row++ {
		for col := 0; col < w; col++ {
			x, y := view.ToWorld(float64(col)+0.5, (float64(row)+0.5)*2)
			r, style := f.cell(x, y)
			c.SetContent(col, top+row, r, nil, style)
		}
	}
}

// cell 世界坐标处的字符与样式
func (f Frame) cell(x, y float64) (rune, tcell.Style) {
	if e, ok := systems.ElementAt(f.Live, f.Lateral, x, y); ok {
		return elementGlyphs[e], elementStyles[e]
	}

	// 世界原点位于当前挖掘深度，y 向上
	depth := f.Depth - y
	for _, b := range f.Branches {
		if b.Width() > 0 && math.Abs(depth-b.Depth) <= systems.ShaftWidth/2 && x >= b.Left && x <= b.Right {
			return ' ', styleBranch
		}
	}
	if math.Abs(x) <= systems.ShaftWidth/2 && y >= systems.ShaftBottom && y <= f.Depth {
		return ' ', styleShaft
	}
	if depth < 0 {
		return ' ', styleSky
	}
	for _, t := range f.Tiles {
		if depth >= t.Top && depth < t.Bottom {
			return tileGlyphs[t.Index%2], styleTiles[t.Index%2]
		}
	}
	return ' ', styleSky
}

func drawText(c Canvas, row, width int, line string, style tcell.Style) {
	col := 0
	for _, r := range line {
		if col >= width {
			break
		}
		c.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		c.SetContent(col, row, ' ', nil, style)
	}
}
