package scenes

import (
	"fmt"
	"math"
	"testing"

	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/systems"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

const frameDT = 1.0 / 60.0

func newTestScene(t *testing.T, script string) (*DigScene, *systems.ScriptedControls) {
	t.Helper()
	bundle, err := config.LoadBundle("../../data")
	if err != nil {
		t.Fatalf("加载数据目录失败: %v", err)
	}
	controls, err := systems.ParseScript(script)
	if err != nil {
		t.Fatalf("解析脚本失败: %v", err)
	}
	scene, err := NewDigScene(bundle, controls)
	if err != nil {
		t.Fatalf("NewDigScene 返回错误: %v", err)
	}
	return scene, controls
}

func run(scene *DigScene, frames int) {
	for i := 0; i < frames; i++ {
		scene.Update(frameDT)
	}
}

func TestNewDigScene_InitialState(t *testing.T) {
	scene, _ := newTestScene(t, "")
	snap := scene.Snapshot()

	if snap.Mode != types.ModeVertical || snap.Progress != 0 {
		t.Errorf("mode/progress = %s/%v", snap.Mode, snap.Progress)
	}
	if snap.Tiles == 0 {
		t.Error("初始化时应生成地层")
	}
	if snap.CameraSize != 0 && snap.CameraSize != scene.config.Camera.VertSize {
		t.Errorf("CameraSize = %v", snap.CameraSize)
	}
}

func TestNewDigScene_NilBundle(t *testing.T) {
	if _, err := NewDigScene(nil, nil); err == nil {
		t.Error("期望返回错误")
	}
}

func TestDigScene_ToggleToHorizontal(t *testing.T) {
	scene, _ := newTestScene(t, "toggle")
	run(scene, 120)

	snap := scene.Snapshot()
	if snap.Mode != types.ModeHorizontal || snap.Progress != 1 {
		t.Fatalf("mode/progress = %s/%v, want horizontal/1", snap.Mode, snap.Progress)
	}
	if snap.Branches != 1 {
		t.Errorf("支路数 = %d, want 1", snap.Branches)
	}
	if snap.CameraSize != scene.config.Camera.HorizSize {
		t.Errorf("CameraSize = %v, want %v", snap.CameraSize, scene.config.Camera.HorizSize)
	}
	if snap.CameraRotation != 90 && snap.CameraRotation != -90 {
		t.Errorf("CameraRotation = %v, want ±90", snap.CameraRotation)
	}
}

// TestDigScene_ReverseRestoresPose 中途反向回到竖井，姿态逐位还原
func TestDigScene_ReverseRestoresPose(t *testing.T) {
	scene, _ := newTestScene(t, "toggle,idle*20,toggle")
	before := scene.Snapshot().Live

	run(scene, 22)
	if got := scene.Snapshot(); got.Mode != types.ModeTransitioning || got.Heading != types.ModeVertical {
		t.Fatalf("mode/heading = %s/%s", got.Mode, got.Heading)
	}
	run(scene, 120)

	snap := scene.Snapshot()
	if snap.Mode != types.ModeVertical {
		t.Fatalf("mode = %s, want vertical", snap.Mode)
	}
	if snap.Live != before {
		t.Error("回到垂直模式后姿态未逐位还原")
	}
}

// TestDigScene_DeferredSwitch 运动中请求切换：先制动，速度归零后再切换
func TestDigScene_DeferredSwitch(t *testing.T) {
	scene, controls := newTestScene(t, "down*60,toggle")
	run(scene, controls.Len())

	snap := scene.Snapshot()
	if snap.Depth <= 0 {
		t.Errorf("下行后深度 = %v", snap.Depth)
	}
	if !snap.Pending || snap.Mode != types.ModeVertical {
		t.Fatalf("pending/mode = %v/%s, want true/vertical", snap.Pending, snap.Mode)
	}

	for i := 0; i < 600 && scene.Snapshot().Mode == types.ModeVertical; i++ {
		scene.Update(frameDT)
	}
	snap = scene.Snapshot()
	if snap.Mode != types.ModeTransitioning {
		t.Fatalf("mode = %s, want transitioning", snap.Mode)
	}
	if !utils.IsZero(snap.Velocity) {
		t.Errorf("切换时速度 = %+v, want 0", snap.Velocity)
	}

	run(scene, 120)
	if got := scene.Snapshot().Mode; got != types.ModeHorizontal {
		t.Errorf("mode = %s, want horizontal", got)
	}
}

func TestDigScene_DescendScrollsTiles(t *testing.T) {
	scene, _ := newTestScene(t, "down*600")
	run(scene, 600)

	snap := scene.Snapshot()
	if snap.Velocity.Y() != -scene.config.Locomotion.MaxSpeedVertical {
		t.Errorf("速度 = %v, want 最大速度", snap.Velocity.Y())
	}
	if snap.Status != types.LocomotionAtSpeed {
		t.Errorf("状态 = %s, want at-speed", snap.Status)
	}
	if snap.RotorSpeeds[types.ElementDrill] <= 0 {
		t.Error("下行时钻头应转动")
	}
	// 上方地层被回收，数量保持有界
	maxTiles := int((2*scene.config.Tiles.LookAhead)/scene.config.Tiles.TileHeight) + 3
	if snap.Tiles > maxTiles {
		t.Errorf("地层数 = %d, want ≤ %d", snap.Tiles, maxTiles)
	}
}

// TestDigScene_FrameRateIndependentBraking 下行 3 秒再松开 0.3 秒，不同帧率得到同样的速度
func TestDigScene_FrameRateIndependentBraking(t *testing.T) {
	tests := []struct {
		name string
		fps  int
	}{
		{"30 帧", 30},
		{"60 帧", 60},
		{"120 帧", 120},
	}

	var ref *Snapshot
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, controls := newTestScene(t, fmt.Sprintf("down*%d,idle*%d", 3*tt.fps, 3*tt.fps/10))
			dt := 1 / float64(tt.fps)
			for i := 0; i < controls.Len(); i++ {
				scene.Update(dt)
			}

			snap := scene.Snapshot()
			if snap.FixedSteps != 165 {
				t.Errorf("固定步数 = %d, want 165", snap.FixedSteps)
			}
			if snap.Status != types.LocomotionBraking {
				t.Errorf("状态 = %s, want braking", snap.Status)
			}
			maxSpeed := scene.config.Locomotion.MaxSpeedVertical
			if v := snap.Velocity.Y(); v >= 0 || v <= -maxSpeed {
				t.Errorf("制动中速度 = %v, 应在 (-%v, 0) 之间", v, maxSpeed)
			}

			if ref == nil {
				ref = &snap
				return
			}
			if math.Abs(snap.Velocity.Y()-ref.Velocity.Y()) > 1e-9 || snap.Velocity.X() != ref.Velocity.X() {
				t.Errorf("速度 = %+v, 30 帧时为 %+v", snap.Velocity, ref.Velocity)
			}
		})
	}
}
