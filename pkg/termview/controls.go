package termview

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/drillship/pkg/systems"
)

// DefaultHold 终端没有按键抬起事件，按键在最后一次按下（含自动重复）后保持的时长
const DefaultHold = 300 * time.Millisecond

// KeyControls 终端按键输入
//
// 方向键与空格按住期间依赖终端的自动重复刷新；
// Tab/Enter 只在下一次 Poll 触发一次；Q/W/E 锁定模拟朝向（左/竖/右）。
type KeyControls struct {
	Hold time.Duration
	now  func() time.Time

	down, left, right, brake time.Time
	toggle                   bool
	tilt                     int
}

// NewKeyControls 创建终端输入；now 为 nil 时使用 time.Now
func NewKeyControls(now func() time.Time) *KeyControls {
	if now == nil {
		now = time.Now
	}
	return &KeyControls{Hold: DefaultHold, now: now}
}

// HandleKey 处理一次按键，返回 false 表示按键未被识别
func (k *KeyControls) HandleKey(key tcell.Key, r rune) bool {
	t := k.now()
	switch key {
	case tcell.KeyDown:
		k.down = t
	case tcell.KeyLeft:
		k.left = t
	case tcell.KeyRight:
		k.right = t
	case tcell.KeyTab, tcell.KeyEnter:
		k.toggle = true
	case tcell.KeyRune:
		switch r {
		case 's':
			k.down = t
		case 'a':
			k.left = t
		case 'd':
			k.right = t
		case ' ':
			k.brake = t
		case 'q':
			k.tilt = -1
		case 'w':
			k.tilt = 0
		case 'e':
			k.tilt = 1
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// Poll 实现 systems.ControlSource
func (k *KeyControls) Poll() systems.Controls {
	t := k.now()
	held := func(at time.Time) bool {
		return !at.IsZero() && t.Sub(at) <= k.Hold
	}
	c := systems.Controls{
		Down:       held(k.down),
		Left:       held(k.left),
		Right:      held(k.right),
		Brake:      held(k.brake),
		ToggleMode: k.toggle,
		Tilt:       k.tilt,
		HasTilt:    true,
	}
	k.toggle = false
	return c
}
