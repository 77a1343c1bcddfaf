package systems

import (
	"math"
	"testing"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

func TestView_ToScreen(t *testing.T) {
	tests := []struct {
		name   string
		cam    components.CameraComponent
		x, y   float64
		sx, sy float64
	}{
		{"中心", components.CameraComponent{Size: 5}, 0, 0, 240, 400},
		{"上方一个单位", components.CameraComponent{Size: 5}, 0, 1, 240, 320},
		{"镜头偏移", components.CameraComponent{Size: 5, X: 1}, 1, 0, 240, 400},
		{"旋转 90 度", components.CameraComponent{Size: 5, Rotation: 90}, 1, 0, 240, 320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(&tt.cam, 480, 800)
			sx, sy := view.ToScreen(tt.x, tt.y)
			if math.Abs(sx-tt.sx) > 1e-9 || math.Abs(sy-tt.sy) > 1e-9 {
				t.Errorf("ToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestNewView_DefaultScale(t *testing.T) {
	view := NewView(nil, 480, 800)
	if view.PixelsPerUnit <= 0 {
		t.Errorf("PixelsPerUnit = %v", view.PixelsPerUnit)
	}
}

func TestView_ToWorldInverse(t *testing.T) {
	cams := []components.CameraComponent{
		{Size: 5},
		{Size: 3, X: 0.5, Y: -2},
		{Size: 4, Rotation: 90},
		{Size: 4, Rotation: 37},
	}
	points := [][2]float64{{0, 0}, {1.5, -2}, {-3, 0.25}}

	for _, cam := range cams {
		view := NewView(&cam, 480, 800)
		for _, p := range points {
			sx, sy := view.ToScreen(p[0], p[1])
			x, y := view.ToWorld(sx, sy)
			if math.Abs(x-p[0]) > 1e-9 || math.Abs(y-p[1]) > 1e-9 {
				t.Errorf("旋转 %v: ToWorld(ToScreen(%v)) = (%v, %v)", cam.Rotation, p, x, y)
			}
		}
	}
}

func TestElementAt(t *testing.T) {
	live := components.NewConfiguration("live")
	core := utils.IdentityTransform()
	live.Set(types.ElementCore, core)

	drill := utils.IdentityTransform()
	drill.Position = utils.Vec3{0, -1, 0}
	drill.Rotation = utils.QuatFromEuler(0, 0, 90)
	live.Set(types.ElementDrill, drill)

	tests := []struct {
		name    string
		lateral float64
		x, y    float64
		want    types.Element
		hit     bool
	}{
		{"核心中心", 0, 0, 0, types.ElementCore, true},
		{"横向偏移后的核心", 2, 2.2, 0.1, types.ElementCore, true},
		{"偏移前的位置落空", 2, 0, 0, 0, false},
		// 钻头旋转 90 度后宽 0.9 高 0.5
		{"旋转后的钻头", 0, 0.4, -1, types.ElementDrill, true},
		{"钻头旋转前的范围", 0, 0, -1.4, 0, false},
		{"空白处", 0, 3, 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ElementAt(live, tt.lateral, tt.x, tt.y)
			if ok != tt.hit || (ok && got != tt.want) {
				t.Errorf("ElementAt(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, got, ok, tt.want, tt.hit)
			}
		})
	}

	if _, ok := ElementAt(nil, 0, 0, 0); ok {
		t.Error("nil 配置不应命中")
	}
}
