package systems

import (
	"log"

	"github.com/gonewx/drillship/internal/curve"
	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

// ModeChangeFunc 模式变化回调
type ModeChangeFunc func(from, to types.Mode)

// ModeTransitionSystem 模式切换状态机（唯一权威）
//
// 状态：垂直 -> 切换中 -> 水平，以及反向。切换中再次切换只会反转
// 权威动画的速度倍率，时钟从当前值继续。动画时钟触及 0 时落在垂直模式，
// 触及终点时落在水平模式。镜头、支路等只通过 ModeReader 观察本状态机。
type ModeTransitionSystem struct {
	entityManager *ecs.EntityManager
	ship          ecs.EntityID
	animator      *ShipAnimatorSystem
	branch        BranchVisualizer
	correction    *curve.Curve

	// animationName 权威动画名称，每次使用时按名称查找
	animationName string

	subscribers []ModeChangeFunc
}

// NewModeTransitionSystem 创建模式切换状态机
// correction 为回到竖井时横向偏移的校正曲线，可为 nil（线性）
func NewModeTransitionSystem(em *ecs.EntityManager, ship ecs.EntityID, animator *ShipAnimatorSystem, branch BranchVisualizer, correction *curve.Curve) *ModeTransitionSystem {
	if correction == nil {
		correction = curve.Linear(0, 0, 1, 1)
	}
	s := &ModeTransitionSystem{
		entityManager: em,
		ship:          ship,
		animator:      animator,
		branch:        branch,
		correction:    correction,
		animationName: config.ModeTransitionAnimation,
	}

	if anim := animator.AnimationByName(s.animationName); anim != nil {
		anim.OnEnd(s.onAnimationEnd)
	}
	return s
}

func (s *ModeTransitionSystem) state() *components.ModeComponent {
	mode, ok := ecs.GetComponent[*components.ModeComponent](s.entityManager, s.ship)
	if !ok {
		return nil
	}
	return mode
}

func (s *ModeTransitionSystem) locomotion() *components.LocomotionComponent {
	loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.ship)
	if !ok {
		return nil
	}
	return loco
}

// Mode 当前模式
func (s *ModeTransitionSystem) Mode() types.Mode {
	if st := s.state(); st != nil {
		return st.Mode
	}
	return types.ModeVertical
}

// Heading 切换中的目标模式
func (s *ModeTransitionSystem) Heading() types.Mode {
	if st := s.state(); st != nil {
		return st.Heading
	}
	return types.ModeVertical
}

// Progress 权威动画的进度
func (s *ModeTransitionSystem) Progress() float64 {
	anim := s.animator.AnimationByName(s.animationName)
	if anim == nil {
		return 0
	}
	return anim.Progress()
}

// Subscribe 注册模式变化回调
func (s *ModeTransitionSystem) Subscribe(fn ModeChangeFunc) {
	s.subscribers = append(s.subscribers, fn)
}

// ToggleMode 无条件切换
//
//	垂直   -> 正向播放，开辟新支路
//	水平   -> 反向播放，结束当前支路
//	切换中 -> 反转方向；转为正向时开辟支路，转为反向时结束支路
//
// 之后状态一律为切换中
func (s *ModeTransitionSystem) ToggleMode() {
	st := s.state()
	anim := s.animator.AnimationByName(s.animationName)
	if st == nil || anim == nil {
		return
	}

	switch st.Mode {
	case types.ModeVertical:
		anim.Play(1)
		s.enterHorizontal(st)
	case types.ModeHorizontal:
		anim.Play(-1)
		s.leaveHorizontal(st, anim)
	case types.ModeTransitioning:
		anim.Play(-anim.SpeedMultiplier)
		if anim.SpeedMultiplier > 0 {
			s.enterHorizontal(st)
		} else {
			s.leaveHorizontal(st, anim)
		}
	}

	s.setMode(st, types.ModeTransitioning)
}

// ToggleModeTo 已处于目标模式时不做任何事，否则调用 ToggleMode
func (s *ModeTransitionSystem) ToggleModeTo(target types.Mode) {
	if s.Mode() == target {
		return
	}
	s.ToggleMode()
}

func (s *ModeTransitionSystem) enterHorizontal(st *components.ModeComponent) {
	st.Heading = types.ModeHorizontal
	st.Correction = components.ShaftCorrection{}
	if s.branch != nil {
		s.branch.BeginBranch()
	}
}

func (s *ModeTransitionSystem) leaveHorizontal(st *components.ModeComponent, anim *components.ConfigAnimation) {
	st.Heading = types.ModeVertical
	if loco := s.locomotion(); loco != nil && loco.LateralOffset != 0 {
		st.Correction = components.ShaftCorrection{
			Active:   true,
			Offset:   loco.LateralOffset,
			Progress: anim.Progress(),
		}
	}
	if s.branch != nil {
		s.branch.EndBranch()
	}
}

// Update 切换中把横向偏移按校正曲线拉回竖井中心
// 必须在插值引擎推进时钟之后调用
func (s *ModeTransitionSystem) Update() {
	st := s.state()
	if st == nil || st.Mode != types.ModeTransitioning || !st.Correction.Active {
		return
	}
	loco := s.locomotion()
	if loco == nil {
		return
	}

	c := st.Correction
	factor := 0.0
	if c.Progress > 0 {
		factor = s.correction.Evaluate(s.Progress() / c.Progress)
	}
	loco.LateralOffset = utils.LerpUnclamped(0, c.Offset, factor)
}

// onAnimationEnd 权威动画时钟触及边界
func (s *ModeTransitionSystem) onAnimationEnd(anim *components.ConfigAnimation, bound float64) {
	st := s.state()
	if st == nil {
		return
	}

	final := types.ModeHorizontal
	if bound <= 0 {
		final = types.ModeVertical
	}

	st.Heading = final
	st.Correction = components.ShaftCorrection{}
	if final == types.ModeVertical {
		if loco := s.locomotion(); loco != nil {
			loco.LateralOffset = 0
		}
	}

	log.Printf("[ModeTransition] 动画 %s 结束于 %.2f，模式 -> %s", anim.Name, bound, final)
	s.setMode(st, final)
}

func (s *ModeTransitionSystem) setMode(st *components.ModeComponent, mode types.Mode) {
	from := st.Mode
	st.Mode = mode
	if from == mode {
		return
	}
	for _, fn := range s.subscribers {
		fn(from, mode)
	}
}
