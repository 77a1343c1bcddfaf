package systems

import (
	"testing"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/entities"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

// shipFixture 按正式场景的依赖顺序组装的钻探船
type shipFixture struct {
	em       *ecs.EntityManager
	ship     ecs.EntityID
	cfg      *config.ShipConfig
	branch   *BranchSystem
	animator *ShipAnimatorSystem
	modes    *ModeTransitionSystem
	loco     *LocomotionSystem
}

func newShipFixture(t *testing.T) *shipFixture {
	t.Helper()
	rig, err := config.LoadRigConfig("../../data/rig.yaml")
	if err != nil {
		t.Fatalf("加载骨架配置失败: %v", err)
	}
	defs, err := config.LoadAnimationDefs("../../data/animations")
	if err != nil {
		t.Fatalf("加载动画定义失败: %v", err)
	}

	em := ecs.NewEntityManager()
	ship, err := entities.NewShipEntity(em, rig, defs)
	if err != nil {
		t.Fatalf("创建钻探船失败: %v", err)
	}

	cfg := config.DefaultShipConfig()
	correction, err := cfg.Animator.ShaftCorrection.Build()
	if err != nil {
		t.Fatalf("校正曲线无效: %v", err)
	}

	f := &shipFixture{em: em, ship: ship, cfg: cfg}
	f.branch = NewBranchSystem(em, ship, cfg.Branch)
	f.animator = NewShipAnimatorSystem(em, ship, cfg.Animator)
	f.modes = NewModeTransitionSystem(em, ship, f.animator, f.branch, correction)
	f.branch.SetModeReader(f.modes)
	f.loco = NewLocomotionSystem(em, ship, cfg.Locomotion, f.modes, f.branch)
	return f
}

func (f *shipFixture) rig() *components.RigComponent {
	rc, _ := ecs.GetComponent[*components.RigComponent](f.em, f.ship)
	return rc
}

func (f *shipFixture) locomotion() *components.LocomotionComponent {
	loco, _ := ecs.GetComponent[*components.LocomotionComponent](f.em, f.ship)
	return loco
}

func (f *shipFixture) transition() *components.ConfigAnimation {
	return f.rig().Animation(config.ModeTransitionAnimation)
}

// step 一帧可变步长更新（插值引擎 -> 偏移校正 -> 支路）
func (f *shipFixture) step(dt float64) {
	f.animator.Update(dt)
	f.modes.Update()
	f.branch.Update()
}

// runUntil 逐帧推进直到条件成立，超过 maxFrames 时测试失败
func (f *shipFixture) runUntil(t *testing.T, dt float64, maxFrames int, done func() bool) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if done() {
			return
		}
		f.step(dt)
	}
	if !done() {
		t.Fatalf("%d 帧后条件仍未满足 (mode=%s progress=%.3f)", maxFrames, f.modes.Mode(), f.modes.Progress())
	}
}

// snapshot 复制实时姿态
func snapshot(c *components.Configuration) [types.ElementCount]utils.Transform {
	var out [types.ElementCount]utils.Transform
	for _, e := range types.Schema() {
		out[e], _ = c.Get(e)
	}
	return out
}

// fakeModes 可控的模式状态机视图
type fakeModes struct {
	mode     types.Mode
	heading  types.Mode
	progress float64
	toggles  []types.Mode
}

func (m *fakeModes) Mode() types.Mode    { return m.mode }
func (m *fakeModes) Heading() types.Mode { return m.heading }
func (m *fakeModes) Progress() float64   { return m.progress }

func (m *fakeModes) ToggleModeTo(target types.Mode) {
	if m.mode == target {
		return
	}
	m.toggles = append(m.toggles, target)
	m.mode = types.ModeTransitioning
	m.heading = target
}

// fakeBranch 记录调用的支路协作者
type fakeBranch struct {
	begun, ended int
	valid        bool
}

func (b *fakeBranch) BeginBranch()                 { b.begun++ }
func (b *fakeBranch) ExtendBranch(_, _, _ float64) {}
func (b *fakeBranch) EndBranch()                   { b.ended++ }
func (b *fakeBranch) IsBranchLocationValid() bool  { return b.valid }

func ecsMode(f *shipFixture) (*components.ModeComponent, bool) {
	return ecs.GetComponent[*components.ModeComponent](f.em, f.ship)
}
