package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

// 螺旋桨分组
var (
	allScrews   = components.NewElementSet(types.Screws[:]...)
	rearScrews  = components.NewElementSet(types.ElementScrewBL, types.ElementScrewBR)
	frontScrews = components.NewElementSet(types.ElementScrewFL, types.ElementScrewFR)

	// 水平模式下螺旋桨交替转向
	screwsPositive = components.NewElementSet(types.ElementScrewFR, types.ElementScrewBL)
	screwsNegative = components.NewElementSet(types.ElementScrewFL, types.ElementScrewBR)
)

// ShipAnimatorSystem 插值引擎
//
// 可变步长：推进所有正在播放的姿态动画，并把活动曲线的混合结果写入实时配置。
// 固定步长：根据速度计算螺旋桨与钻头的转速，并控制制动器动画。
type ShipAnimatorSystem struct {
	entityManager *ecs.EntityManager
	ship          ecs.EntityID
	config        config.AnimatorConfig

	// reported 已记录过的曲线错误，避免每帧刷屏
	reported map[*components.MaskedCurve]bool
}

// NewShipAnimatorSystem 创建插值引擎
// ship 实体必须带有 RigComponent、LocomotionComponent 和 ModeComponent
func NewShipAnimatorSystem(em *ecs.EntityManager, ship ecs.EntityID, cfg config.AnimatorConfig) *ShipAnimatorSystem {
	return &ShipAnimatorSystem{
		entityManager: em,
		ship:          ship,
		config:        cfg,
		reported:      make(map[*components.MaskedCurve]bool),
	}
}

func (s *ShipAnimatorSystem) rig() *components.RigComponent {
	rig, ok := ecs.GetComponent[*components.RigComponent](s.entityManager, s.ship)
	if !ok {
		return nil
	}
	return rig
}

// Update 可变步长：推进时钟并应用动画
// 时钟在本步触及边界时，最后一帧仍会被应用
func (s *ShipAnimatorSystem) Update(dt float64) {
	rig := s.rig()
	if rig == nil {
		return
	}
	for _, anim := range rig.Animations {
		if !anim.Playing {
			continue
		}
		anim.TimeStep(dt)
		s.ComputeAnimation(anim)
	}
}

// ComputeAnimation 求值活动曲线并写入实时配置
// 多条曲线写入同一元素的同一通道时，迭代顺序中靠后的曲线生效
func (s *ShipAnimatorSystem) ComputeAnimation(anim *components.ConfigAnimation) {
	t := anim.RealInterpolantTime()
	origin := anim.CurrentOrigin()
	target := anim.CurrentTarget()

	for _, c := range anim.GetActiveCurves() {
		if err := c.Curve.Validate(); err != nil {
			if !s.reported[c] {
				log.Printf("[ShipAnimator] 动画 %s 曲线 %s 无效，跳过: %v", anim.Name, c.Name, err)
				s.reported[c] = true
			}
			continue
		}

		sel := c.Selector()
		if err := s.LerpConfig(origin, target, c.Interpolants(t), sel.Elements); err != nil {
			log.Printf("[ShipAnimator] 动画 %s 曲线 %s: %v", anim.Name, c.Name, err)
		}
	}
}

// LerpConfig 在 origin 与 target 之间对所选元素做不限制插值，写入实时配置
// 被遮罩的通道和未选中的元素保持不变；t 为 0 或 1 时结果与端点逐位相同
func (s *ShipAnimatorSystem) LerpConfig(origin, target *components.Configuration, in components.Interpolants, elements components.ElementSet) error {
	rig := s.rig()
	if rig == nil || rig.Live == nil {
		return fmt.Errorf("实时配置不存在: %w", types.ErrConfiguration)
	}
	if origin == nil || target == nil {
		return fmt.Errorf("插值端点为空: %w", types.ErrConfiguration)
	}

	live := rig.Live
	selected := elements.Elements()
	for _, e := range selected {
		if origin.Slots[e] == nil || target.Slots[e] == nil || live.Slots[e] == nil {
			return fmt.Errorf("元素 %s 在 %s/%s 中未解析: %w", e, origin.Name, target.Name, types.ErrResolution)
		}
	}

	for _, e := range selected {
		o, g := origin.Slots[e], target.Slots[e]
		pose := live.Slots[e]
		if p := in[types.ChannelPosition]; p.Active {
			pose.Position = utils.Vec3LerpUnclamped(o.Position, g.Position, p.T)
		}
		if r := in[types.ChannelRotation]; r.Active {
			pose.Rotation = utils.QuatLerpUnclamped(o.Rotation, g.Rotation, r.T)
		}
		if sc := in[types.ChannelScale]; sc.Active {
			pose.Scale = utils.Vec3LerpUnclamped(o.Scale, g.Scale, sc.T)
		}
	}
	return nil
}

// SetConfig 把所选元素直接设置为目标姿态
func (s *ShipAnimatorSystem) SetConfig(target *components.Configuration, sel components.Selector) error {
	in := components.UniformInterpolants(1, sel.Channels)
	return s.LerpConfig(target, target, in, sel.Elements)
}

// FixedUpdate 固定步长：螺旋桨/钻头转速与制动器
func (s *ShipAnimatorSystem) FixedUpdate() {
	loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.ship)
	if !ok {
		return
	}
	mode, ok := ecs.GetComponent[*components.ModeComponent](s.entityManager, s.ship)
	if !ok {
		return
	}
	rig := s.rig()
	if rig == nil {
		return
	}
	vel := loco.Velocity

	switch mode.Mode {
	case types.ModeVertical:
		s.SetScrewSpeed(-vel.Y()*s.config.ScrewSpeedMultiplier, s.config.ScrewAccelFactor, allScrews)
		s.SetDrillSpeed(-vel.Y()*s.config.DrillSpeedMultiplier, s.config.ScrewAccelFactor)

		brakes := rig.Animation(config.BrakingAnimation)
		if loco.Status == types.LocomotionBraking {
			s.SetScrewSpeed(0, 1, rearScrews)
			if vel.Y() > -s.config.BrakeScrewLockThresh {
				// 即将停下：锁定前排螺旋桨并收起制动器
				s.SetScrewSpeed(0, 1, frontScrews)
				if brakes != nil && brakes.InterpolantTime() != 0 {
					s.SetBrakes(false)
				}
			} else if brakes != nil && brakes.InterpolantTime() == 0 {
				s.SetBrakes(true)
			}
		} else if brakes != nil && brakes.InterpolantTime() != 0 {
			s.SetBrakes(false)
		}

	case types.ModeHorizontal:
		s.SetScrewSpeed(vel.X()*s.config.ScrewSpeedMultiplier, 1, screwsPositive)
		s.SetScrewSpeed(-vel.X()*s.config.ScrewSpeedMultiplier, 1, screwsNegative)

	case types.ModeTransitioning:
		s.SetScrewSpeed(0, 1, allScrews)
		s.SetDrillSpeed(0, 1)
	}
}

// SetScrewSpeed 让所选螺旋桨的转速向目标逼近；approach 为 1 时直接设置
func (s *ShipAnimatorSystem) SetScrewSpeed(target, approach float64, screws components.ElementSet) {
	rig := s.rig()
	if rig == nil {
		return
	}
	for _, e := range types.Screws {
		if screws.Has(e) {
			rig.RotorSpeeds[e] = utils.Lerp(rig.RotorSpeeds[e], target, approach)
		}
	}
}

// SetDrillSpeed 让钻头转速向目标逼近
func (s *ShipAnimatorSystem) SetDrillSpeed(target, approach float64) {
	rig := s.rig()
	if rig == nil {
		return
	}
	rig.RotorSpeeds[types.ElementDrill] = utils.Lerp(rig.RotorSpeeds[types.ElementDrill], target, approach)
}

// SetBrakes 正向播放制动器动画（展开）或反向播放（收起）
func (s *ShipAnimatorSystem) SetBrakes(on bool) {
	anim := s.AnimationByName(config.BrakingAnimation)
	if anim == nil {
		return
	}
	if on {
		anim.Play(1)
	} else {
		anim.Play(-1)
	}
}

// AnimationByName 按名称查找动画；不存在时记录 ResolutionError 并返回 nil
func (s *ShipAnimatorSystem) AnimationByName(name string) *components.ConfigAnimation {
	rig := s.rig()
	if rig != nil {
		if anim := rig.Animation(name); anim != nil {
			return anim
		}
	}
	log.Printf("[ShipAnimator] %v", &components.ResolutionError{Kind: "animation", Name: name})
	return nil
}

// RotorSpeed 元素当前的转速
func (s *ShipAnimatorSystem) RotorSpeed(e types.Element) float64 {
	rig := s.rig()
	if rig == nil || !e.Valid() {
		return 0
	}
	return rig.RotorSpeeds[e]
}

// Live 实时配置（只读访问）
func (s *ShipAnimatorSystem) Live() *components.Configuration {
	rig := s.rig()
	if rig == nil {
		return nil
	}
	return rig.Live
}
