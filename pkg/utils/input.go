package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerZone 触摸/点击所在的控制区域
type PointerZone int

const (
	// ZoneToggle 屏幕上方三分之一：切换模式
	ZoneToggle PointerZone = iota
	// ZoneLeft 下方左半屏：向左（竖直模式下为下行）
	ZoneLeft
	// ZoneRight 下方右半屏：向右（竖直模式下为下行）
	ZoneRight
)

func (z PointerZone) String() string {
	switch z {
	case ZoneToggle:
		return "toggle"
	case ZoneLeft:
		return "left"
	case ZoneRight:
		return "right"
	default:
		return "unknown"
	}
}

// ZoneAt 返回逻辑屏幕坐标所属的控制区域
func ZoneAt(x, y, screenW, screenH int) PointerZone {
	switch {
	case y < screenH/3:
		return ZoneToggle
	case x < screenW/2:
		return ZoneLeft
	default:
		return ZoneRight
	}
}

// Pointer 一个触点或鼠标左键的位置
type Pointer struct {
	X, Y int
}

// JustPressedPointers 本帧刚按下的触点（含鼠标左键）
func JustPressedPointers() []Pointer {
	var out []Pointer
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		out = append(out, Pointer{x, y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		out = append(out, Pointer{x, y})
	}
	return out
}

// HeldPointers 当前按住的触点（含鼠标左键）
func HeldPointers() []Pointer {
	var out []Pointer
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		out = append(out, Pointer{x, y})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		out = append(out, Pointer{x, y})
	}
	return out
}
