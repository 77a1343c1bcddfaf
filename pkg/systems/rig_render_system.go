package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// elementSizes 每个元素在单位缩放下的绘制尺寸（世界单位）
var elementSizes = [types.ElementCount][2]float64{
	types.ElementDrill:   {0.5, 0.9},
	types.ElementWinch:   {0.6, 0.3},
	types.ElementScrewFL: {0.35, 0.6},
	types.ElementScrewFR: {0.35, 0.6},
	types.ElementScrewBL: {0.35, 0.6},
	types.ElementScrewBR: {0.35, 0.6},
	types.ElementCore:    {0.9, 0.9},
}

var elementColors = [types.ElementCount]color.RGBA{
	types.ElementDrill:   {R: 200, G: 200, B: 210, A: 255},
	types.ElementWinch:   {R: 230, G: 160, B: 40, A: 255},
	types.ElementScrewFL: {R: 90, G: 140, B: 200, A: 255},
	types.ElementScrewFR: {R: 90, G: 140, B: 200, A: 255},
	types.ElementScrewBL: {R: 90, G: 140, B: 200, A: 255},
	types.ElementScrewBR: {R: 90, G: 140, B: 200, A: 255},
	types.ElementCore:    {R: 240, G: 200, B: 60, A: 255},
}

var (
	tileColors   = [2]color.RGBA{{R: 92, G: 64, B: 45, A: 255}, {R: 104, G: 74, B: 52, A: 255}}
	shaftColor   = color.RGBA{R: 40, G: 28, B: 20, A: 255}
	branchColor  = color.RGBA{R: 52, G: 36, B: 26, A: 255}
	rotorColor   = color.RGBA{R: 20, G: 20, B: 30, A: 255}
	rotorBladeHW = 0.3
)

// ShaftWidth 竖井与支路隧道宽度（世界单位）
const ShaftWidth = 1.6

// ShaftBottom 竖井底部相对船体的位置
const ShaftBottom = -0.8

// drawOrder 核心最后绘制，覆盖在其它元素之上
var drawOrder = []types.Element{
	types.ElementDrill, types.ElementWinch,
	types.ElementScrewFL, types.ElementScrewFR, types.ElementScrewBL, types.ElementScrewBR,
	types.ElementCore,
}

// View 世界坐标到屏幕坐标的变换
// 世界坐标以竖井中心、当前挖掘深度为原点，y 轴向上
type View struct {
	CenterX, CenterY float64 // 镜头中心（世界坐标）
	Rotation         float64 // 镜头旋转（度）
	PixelsPerUnit    float64
	ScreenW, ScreenH float64
}

// NewView 由镜头组件构建视图；镜头 Size 为视野半高
func NewView(cam *components.CameraComponent, screenW, screenH float64) View {
	ppu := config.PixelsPerUnit
	if cam != nil && cam.Size > 0 {
		ppu = screenH / 2 / cam.Size
	}
	v := View{PixelsPerUnit: ppu, ScreenW: screenW, ScreenH: screenH}
	if cam != nil {
		v.CenterX, v.CenterY, v.Rotation = cam.X, cam.Y, cam.Rotation
	}
	return v
}

// ToScreen 世界坐标转换为屏幕坐标
func (v View) ToScreen(x, y float64) (float64, float64) {
	dx, dy := x-v.CenterX, y-v.CenterY
	rad := v.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	rx := dx*cos - dy*sin
	ry := dx*sin + dy*cos
	return v.ScreenW/2 + rx*v.PixelsPerUnit, v.ScreenH/2 - ry*v.PixelsPerUnit
}

// ToWorld 屏幕坐标转换为世界坐标（ToScreen 的逆变换）
func (v View) ToWorld(sx, sy float64) (float64, float64) {
	rx := (sx - v.ScreenW/2) / v.PixelsPerUnit
	ry := (v.ScreenH/2 - sy) / v.PixelsPerUnit
	rad := v.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return v.CenterX + rx*cos + ry*sin, v.CenterY - rx*sin + ry*cos
}

// ElementAt 返回覆盖世界坐标 (x, y) 的最上层元素
func ElementAt(live *components.Configuration, lateral, x, y float64) (types.Element, bool) {
	if live == nil {
		return 0, false
	}
	for i := len(drawOrder) - 1; i >= 0; i-- {
		e := drawOrder[i]
		pose, ok := live.Get(e)
		if !ok {
			continue
		}
		// 转入元素局部坐标
		dx, dy := x-(lateral+pose.Position.X()), y-pose.Position.Y()
		rad := -utils.AngleZ(pose.Rotation) * math.Pi / 180
		sin, cos := math.Sincos(rad)
		lx := dx*cos - dy*sin
		ly := dx*sin + dy*cos
		hw := elementSizes[e][0] * math.Abs(pose.Scale.X()) / 2
		hh := elementSizes[e][1] * math.Abs(pose.Scale.Y()) / 2
		if math.Abs(lx) <= hw && math.Abs(ly) <= hh {
			return e, true
		}
	}
	return 0, false
}

// RigRenderSystem 绘制地层、竖井、支路与钻探船骨架
type RigRenderSystem struct {
	entityManager *ecs.EntityManager
	ship          ecs.EntityID
	camera        ecs.EntityID

	pixel  *ebiten.Image
	phases [types.ElementCount]float64
}

// NewRigRenderSystem 创建渲染系统
func NewRigRenderSystem(em *ecs.EntityManager, ship, camera ecs.EntityID) *RigRenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RigRenderSystem{
		entityManager: em,
		ship:          ship,
		camera:        camera,
		pixel:         pixel,
	}
}

// Update 按转速推进旋转子元素的相位
func (s *RigRenderSystem) Update(dt float64) {
	rig, ok := ecs.GetComponent[*components.RigComponent](s.entityManager, s.ship)
	if !ok {
		return
	}
	for i, speed := range rig.RotorSpeeds {
		s.phases[i] = math.Mod(s.phases[i]+speed*dt, 2*math.Pi)
	}
}

// Draw 绘制一帧
func (s *RigRenderSystem) Draw(screen *ebiten.Image) {
	cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.camera)
	b := screen.Bounds()
	view := NewView(cam, float64(b.Dx()), float64(b.Dy()))

	var depth, lateral float64
	if loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.ship); ok {
		depth, lateral = loco.Depth, loco.LateralOffset
	}

	s.drawTiles(screen, view, depth)
	s.drawBranches(screen, view, depth)
	s.drawRig(screen, view, lateral)
}

func (s *RigRenderSystem) drawTiles(screen *ebiten.Image, view View, depth float64) {
	halfW := view.ScreenW / view.PixelsPerUnit * 2
	for _, id := range ecs.GetEntitiesWith1[*components.TileComponent](s.entityManager) {
		tile, _ := ecs.GetComponent[*components.TileComponent](s.entityManager, id)
		s.fillRect(screen, view, -halfW, depth-tile.Bottom, halfW, depth-tile.Top, tileColors[tile.Index%2])
	}
	// 竖井：地表到船体下方一点
	s.fillRect(screen, view, -ShaftWidth/2, ShaftBottom, ShaftWidth/2, depth, shaftColor)
}

func (s *RigRenderSystem) drawBranches(screen *ebiten.Image, view View, depth float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.BranchComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.BranchComponent](s.entityManager, id)
		if b.Width() <= 0 {
			continue
		}
		y := depth - b.Depth
		s.fillRect(screen, view, b.Left, y-ShaftWidth/2, b.Right, y+ShaftWidth/2, branchColor)
	}
}

func (s *RigRenderSystem) drawRig(screen *ebiten.Image, view View, lateral float64) {
	rig, ok := ecs.GetComponent[*components.RigComponent](s.entityManager, s.ship)
	if !ok || rig.Live == nil {
		return
	}

	for _, e := range drawOrder {
		pose, ok := rig.Live.Get(e)
		if !ok {
			continue
		}
		w := elementSizes[e][0] * pose.Scale.X()
		h := elementSizes[e][1] * pose.Scale.Y()
		x, y := lateral+pose.Position.X(), pose.Position.Y()
		angle := utils.AngleZ(pose.Rotation) + view.Rotation
		s.drawBox(screen, view, x, y, w, h, angle, elementColors[e])

		if e == types.ElementDrill || isScrew(e) {
			s.drawRotor(screen, view, x, y, s.phases[e])
		}
	}
}

func isScrew(e types.Element) bool {
	for _, screw := range types.Screws {
		if e == screw {
			return true
		}
	}
	return false
}

// drawBox 以中心、尺寸和角度绘制一个实心矩形
func (s *RigRenderSystem) drawBox(screen *ebiten.Image, view View, x, y, w, h, angle float64, clr color.RGBA) {
	sx, sy := view.ToScreen(x, y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w*view.PixelsPerUnit, h*view.PixelsPerUnit)
	op.GeoM.Translate(-w*view.PixelsPerUnit/2, -h*view.PixelsPerUnit/2)
	op.GeoM.Rotate(-angle * math.Pi / 180)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(s.pixel, op)
}

// drawRotor 绘制一条随相位旋转的叶片
func (s *RigRenderSystem) drawRotor(screen *ebiten.Image, view View, x, y, phase float64) {
	dx := math.Cos(phase) * rotorBladeHW
	x0, y0 := view.ToScreen(x-dx, y)
	x1, y1 := view.ToScreen(x+dx, y)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, rotorColor, true)
}

// fillRect 绘制世界坐标下的轴对齐矩形（镜头旋转时变为旋转矩形）
func (s *RigRenderSystem) fillRect(screen *ebiten.Image, view View, x0, y0, x1, y1 float64, clr color.RGBA) {
	s.drawBox(screen, view, (x0+x1)/2, (y0+y1)/2, x1-x0, y1-y0, view.Rotation, clr)
}
