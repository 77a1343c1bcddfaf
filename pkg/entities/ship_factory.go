package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/types"
)

// NewShipEntity 创建钻探船实体
//
// 参数:
//   - em: 实体管理器
//   - rig: 骨架配置（姿态容器）
//   - defs: 姿态动画定义
//
// 返回:
//   - ecs.EntityID: 船体实体ID
//   - error: 基础配置无法解析时返回错误
//
// 注意：单个动画解析失败只记录日志并跳过，调用方通过名称查找时得到 nil
func NewShipEntity(em *ecs.EntityManager, rig *config.RigConfig, defs []*config.AnimationDef) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if rig == nil {
		return ecs.InvalidEntity, fmt.Errorf("rig config cannot be nil")
	}

	base, err := components.Resolve(rig, rig.Base)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("解析基础配置失败: %w", err)
	}

	ref := base
	if rig.GapFillReference != "" && rig.GapFillReference != rig.Base {
		ref, err = components.Resolve(rig, rig.GapFillReference)
		if err != nil {
			return ecs.InvalidEntity, fmt.Errorf("解析补全参考配置失败: %w", err)
		}
	}
	base.FillGaps(ref)
	if !base.Complete() {
		log.Printf("[ShipFactory] 基础配置 %s 缺少元素 %v，这些元素不会被动画驱动", base.Name, base.Missing())
	}

	rc := &components.RigComponent{
		Base: base,
		Live: base.Clone("live"),
	}
	for _, def := range defs {
		anim, err := BuildConfigAnimation(def, rig, ref)
		if err != nil {
			log.Printf("[ShipFactory] 跳过动画 %s: %v", def.Name, err)
			continue
		}
		rc.Animations = append(rc.Animations, anim)
	}

	mode := types.ModeVertical
	if anim := rc.Animation(config.ModeTransitionAnimation); anim != nil && anim.InterpolantTime() >= 1 {
		mode = types.ModeHorizontal
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, rc)
	ecs.AddComponent(em, id, &components.LocomotionComponent{})
	ecs.AddComponent(em, id, &components.ModeComponent{Mode: mode, Heading: mode})

	log.Printf("[ShipFactory] 创建钻探船: %d 个动画，初始模式 %s", len(rc.Animations), mode)
	return id, nil
}

// BuildConfigAnimation 由定义解析姿态动画
// 起点与目标配置归动画所有，缺失元素从 ref 补全
func BuildConfigAnimation(def *config.AnimationDef, source *config.RigConfig, ref *components.Configuration) (*components.ConfigAnimation, error) {
	if err := def.ValidateAgainst(source); err != nil {
		return nil, err
	}

	resolve := func(name string) (*components.Configuration, error) {
		c, err := components.Resolve(source, name)
		if err != nil {
			return nil, err
		}
		c.FillGaps(ref)
		return c, nil
	}

	origin, err := resolve(def.Origin)
	if err != nil {
		return nil, err
	}

	anim := &components.ConfigAnimation{
		Name:          def.Name,
		Origin:        origin,
		Duration:      def.Time,
		StartingTime:  def.StartingTime,
		PlayBackwards: def.PlayBackwards,
	}
	for _, t := range def.Targets {
		target, err := resolve(t.Config)
		if err != nil {
			return nil, err
		}
		anim.Targets = append(anim.Targets, components.AnimationTarget{
			Config:         target,
			ActivationTime: t.ActivationTime,
		})
	}

	for i, cd := range def.Curves {
		c, err := cd.Build()
		if err != nil {
			return nil, fmt.Errorf("曲线 #%d: %w", i, err)
		}
		mask, err := cd.Mask()
		if err != nil {
			return nil, fmt.Errorf("曲线 #%d: %w", i, err)
		}
		pos, rot, scl := cd.Channels()
		name := cd.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", def.Name, i)
		}
		anim.Curves = append(anim.Curves, &components.MaskedCurve{
			Name:        name,
			Curve:       c,
			ElementMask: mask,
			IncludePos:  pos,
			IncludeRot:  rot,
			IncludeScl:  scl,
		})
	}

	anim.Reset()
	return anim, nil
}

// NewCameraEntity 创建镜头实体
func NewCameraEntity(em *ecs.EntityManager, cfg config.CameraConfig) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CameraComponent{
		ObservedMode: types.ModeVertical,
		Size:         cfg.VertSize,
	})
	return id
}
