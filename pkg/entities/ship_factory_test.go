package entities

import (
	"errors"
	"testing"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/types"
)

func loadShipData(t *testing.T) (*config.RigConfig, []*config.AnimationDef) {
	t.Helper()
	rig, err := config.LoadRigConfig("../../data/rig.yaml")
	if err != nil {
		t.Fatalf("加载骨架配置失败: %v", err)
	}
	defs, err := config.LoadAnimationDefs("../../data/animations")
	if err != nil {
		t.Fatalf("加载动画定义失败: %v", err)
	}
	return rig, defs
}

func TestNewShipEntity(t *testing.T) {
	rig, defs := loadShipData(t)
	em := ecs.NewEntityManager()

	id, err := NewShipEntity(em, rig, defs)
	if err != nil {
		t.Fatalf("NewShipEntity 返回错误: %v", err)
	}
	if id == ecs.InvalidEntity {
		t.Fatal("返回了无效实体 ID")
	}

	rc, ok := ecs.GetComponent[*components.RigComponent](em, id)
	if !ok {
		t.Fatal("缺少 RigComponent")
	}
	if !rc.Live.Complete() {
		t.Errorf("实时配置缺少元素: %v", rc.Live.Missing())
	}
	if rc.Live == rc.Base {
		t.Error("实时配置不能与基础配置共享")
	}
	for _, name := range []string{config.ModeTransitionAnimation, config.BrakingAnimation} {
		if rc.Animation(name) == nil {
			t.Errorf("缺少动画 %s", name)
		}
	}

	mode, ok := ecs.GetComponent[*components.ModeComponent](em, id)
	if !ok {
		t.Fatal("缺少 ModeComponent")
	}
	if mode.Mode != types.ModeVertical || mode.Heading != types.ModeVertical {
		t.Errorf("初始模式 = %s/%s, want vertical", mode.Mode, mode.Heading)
	}
	if !ecs.HasComponent[*components.LocomotionComponent](em, id) {
		t.Error("缺少 LocomotionComponent")
	}
}

func TestNewShipEntity_Errors(t *testing.T) {
	rig, defs := loadShipData(t)

	tests := []struct {
		name string
		em   *ecs.EntityManager
		rig  *config.RigConfig
	}{
		{"实体管理器为空", nil, rig},
		{"骨架配置为空", ecs.NewEntityManager(), nil},
		{"基础容器不存在", ecs.NewEntityManager(), &config.RigConfig{Base: "missing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewShipEntity(tt.em, tt.rig, defs); err == nil {
				t.Error("期望返回错误")
			}
		})
	}
}

func TestNewShipEntity_SkipsUnresolvableAnimation(t *testing.T) {
	rig, defs := loadShipData(t)
	broken := &config.AnimationDef{
		Name:    "ConfigAnim_Broken",
		Origin:  "config_vertical",
		Targets: []config.AnimationTargetDef{{Config: "config_missing"}},
		Time:    1,
	}

	em := ecs.NewEntityManager()
	id, err := NewShipEntity(em, rig, append(defs, broken))
	if err != nil {
		t.Fatalf("NewShipEntity 返回错误: %v", err)
	}
	rc, _ := ecs.GetComponent[*components.RigComponent](em, id)
	if rc.Animation("ConfigAnim_Broken") != nil {
		t.Error("无法解析的动画应被跳过")
	}
	if len(rc.Animations) != len(defs) {
		t.Errorf("动画数 = %d, want %d", len(rc.Animations), len(defs))
	}
}

func TestBuildConfigAnimation(t *testing.T) {
	rig, defs := loadShipData(t)
	ref, err := components.Resolve(rig, rig.GapFillReference)
	if err != nil {
		t.Fatalf("解析参考配置失败: %v", err)
	}

	var def *config.AnimationDef
	for _, d := range defs {
		if d.Name == config.ModeTransitionAnimation {
			def = d
		}
	}
	if def == nil {
		t.Fatal("缺少模式切换动画定义")
	}

	anim, err := BuildConfigAnimation(def, rig, ref)
	if err != nil {
		t.Fatalf("BuildConfigAnimation 返回错误: %v", err)
	}

	if len(anim.Targets) != len(def.Targets) {
		t.Fatalf("目标数 = %d, want %d", len(anim.Targets), len(def.Targets))
	}
	// 中间姿态没有绞盘，应从参考配置补全
	winch, ok := anim.Targets[0].Config.Get(types.ElementWinch)
	want, _ := ref.Get(types.ElementWinch)
	if !ok || winch != want {
		t.Errorf("绞盘未从参考配置补全: got %+v, want %+v", winch, want)
	}
	if anim.Playing {
		t.Error("新建动画不应处于播放状态")
	}
	if anim.CurrentTime != def.StartingTime {
		t.Errorf("CurrentTime = %v, want %v", anim.CurrentTime, def.StartingTime)
	}
	if len(anim.Curves) != len(def.Curves) {
		t.Fatalf("曲线数 = %d, want %d", len(anim.Curves), len(def.Curves))
	}

	screws := anim.Curves[1]
	if screws.IncludeScl || !screws.IncludePos || !screws.IncludeRot {
		t.Errorf("screws 通道开关 = %v/%v/%v", screws.IncludePos, screws.IncludeRot, screws.IncludeScl)
	}
	if got, want := components.ElementSet(screws.GetMask()), components.NewElementSet(types.Screws[:]...); got != want {
		t.Errorf("screws 遮罩 = %07b, want %07b", got, want)
	}
}

func TestBuildConfigAnimation_MissingContainer(t *testing.T) {
	rig, _ := loadShipData(t)
	def := &config.AnimationDef{
		Name:    "ConfigAnim_Broken",
		Origin:  "config_nowhere",
		Targets: []config.AnimationTargetDef{{Config: "config_vertical"}},
		Time:    1,
	}
	_, err := BuildConfigAnimation(def, rig, nil)
	if !errors.Is(err, types.ErrResolution) {
		t.Errorf("err = %v, want ErrResolution", err)
	}
}

func TestNewCameraEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultShipConfig().Camera

	id := NewCameraEntity(em, cfg)
	cam, ok := ecs.GetComponent[*components.CameraComponent](em, id)
	if !ok {
		t.Fatal("缺少 CameraComponent")
	}
	if cam.Size != cfg.VertSize || cam.ObservedMode != types.ModeVertical {
		t.Errorf("初始镜头 = %+v", cam)
	}
}
