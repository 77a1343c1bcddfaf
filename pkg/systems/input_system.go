package systems

import (
	"log"

	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Controls 一帧的输入意图
type Controls struct {
	Down, Left, Right bool // 加速方向
	Brake             bool // 主动制动
	ToggleMode        bool // 请求切换模式（按下瞬间）

	// Tilt 桌面模拟横屏：-1 左，+1 右，0 竖屏
	Tilt int
	// HasTilt 本帧是否提供了模拟朝向（移动端由加速度计提供）
	HasTilt bool
}

// ControlSource 输入来源：键盘/触摸、终端、脚本
type ControlSource interface {
	Poll() Controls
}

// InputSystem 把一帧输入转换为速度状态机的油门意图
// 没有加速输入或按下制动时松开油门，由固定步自动制动
type InputSystem struct {
	source      ControlSource
	locomotion  *LocomotionSystem
	modes       ModeReader
	orientation *SmoothedOrientation

	lastErr error
}

// NewInputSystem 创建输入系统
func NewInputSystem(source ControlSource, loco *LocomotionSystem, modes ModeReader, orientation *SmoothedOrientation) *InputSystem {
	return &InputSystem{
		source:      source,
		locomotion:  loco,
		modes:       modes,
		orientation: orientation,
	}
}

// Update 读取一帧输入
func (s *InputSystem) Update(dt float64) {
	if s.source == nil {
		return
	}
	c := s.source.Poll()

	if c.HasTilt && s.orientation != nil {
		s.orientation.SetRaw(utils.Vec3{float64(c.Tilt), -1, 0})
	}

	if c.ToggleMode {
		toVertical := s.modes.Heading() != types.ModeVertical
		s.lastErr = s.locomotion.RequestModeSwitch(toVertical)
		if s.lastErr != nil {
			log.Printf("[Input] 模式切换被拒绝: %v", s.lastErr)
		}
	}

	direction, ok := s.direction(c)
	if c.Brake || !ok {
		direction = 0
	}
	s.locomotion.SetThrottle(direction)
}

// direction 当前模式下活动轴上的加速方向
func (s *InputSystem) direction(c Controls) (float64, bool) {
	switch s.modes.Mode() {
	case types.ModeVertical:
		if c.Down {
			return -1, true
		}
	case types.ModeHorizontal:
		if c.Left && !c.Right {
			return -1, true
		}
		if c.Right && !c.Left {
			return 1, true
		}
	}
	return 0, false
}

// LastError 最近一次模式切换请求的结果
func (s *InputSystem) LastError() error {
	return s.lastErr
}

// KeyboardControls 键盘与触摸输入（ebiten）
type KeyboardControls struct {
	// Tilt 是否用 Q/E 模拟横屏朝向（桌面端）
	Tilt bool
}

// Poll 读取 ebiten 输入状态
func (k *KeyboardControls) Poll() Controls {
	c := Controls{
		Down:       ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Left:       ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:      ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Brake:      ebiten.IsKeyPressed(ebiten.KeySpace),
		ToggleMode: inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
	}

	if k.Tilt {
		c.HasTilt = true
		switch {
		case ebiten.IsKeyPressed(ebiten.KeyQ):
			c.Tilt = -1
		case ebiten.IsKeyPressed(ebiten.KeyE):
			c.Tilt = 1
		}
	}

	// 触摸/鼠标：上方三分之一点击切换模式，下方按住加速（左右半屏决定水平方向）
	for _, p := range utils.JustPressedPointers() {
		if utils.ZoneAt(p.X, p.Y, config.WindowWidth, config.WindowHeight) == utils.ZoneToggle {
			c.ToggleMode = true
		}
	}
	for _, p := range utils.HeldPointers() {
		switch utils.ZoneAt(p.X, p.Y, config.WindowWidth, config.WindowHeight) {
		case utils.ZoneLeft:
			c.Down, c.Left = true, true
		case utils.ZoneRight:
			c.Down, c.Right = true, true
		}
	}
	return c
}
