package systems

import (
	"log"
	"math"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/google/uuid"
)

// BranchSystem 支路隧道可视化
//
// 切换中两端按权威进度对称延伸；水平模式下两端只会跟随船体位置向外扩展。
// 同一深度上再次进入水平模式会继续使用已有的支路。
type BranchSystem struct {
	entityManager *ecs.EntityManager
	ship          ecs.EntityID
	modes         ModeReader
	config        config.BranchConfig

	current ecs.EntityID
}

// NewBranchSystem 创建支路系统
// modes 可以在创建后通过 SetModeReader 注入（状态机依赖本系统）
func NewBranchSystem(em *ecs.EntityManager, ship ecs.EntityID, cfg config.BranchConfig) *BranchSystem {
	return &BranchSystem{
		entityManager: em,
		ship:          ship,
		config:        cfg,
		current:       ecs.InvalidEntity,
	}
}

// SetModeReader 注入模式状态机的只读视图
func (s *BranchSystem) SetModeReader(modes ModeReader) {
	s.modes = modes
}

func (s *BranchSystem) shipState() (depth, lateral float64) {
	if loco, ok := ecs.GetComponent[*components.LocomotionComponent](s.entityManager, s.ship); ok {
		return loco.Depth, loco.LateralOffset
	}
	return 0, 0
}

// BeginBranch 在当前深度开辟支路；该深度已有支路时继续使用它
func (s *BranchSystem) BeginBranch() {
	depth, _ := s.shipState()

	for _, id := range ecs.GetEntitiesWith1[*components.BranchComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.BranchComponent](s.entityManager, id)
		if b.Depth == depth {
			b.Finished = false
			s.current = id
			log.Printf("[Branch] 继续支路 %s (深度 %.2f)", b.ID, depth)
			return
		}
	}

	id := s.entityManager.CreateEntity()
	b := &components.BranchComponent{ID: uuid.New(), Depth: depth}
	ecs.AddComponent(s.entityManager, id, b)
	s.current = id
	log.Printf("[Branch] 开辟支路 %s (深度 %.2f)", b.ID, depth)
}

// ExtendBranch 扩展当前支路；两端只会向外延伸
func (s *BranchSystem) ExtendBranch(progress, leftExtent, rightExtent float64) {
	b := s.Current()
	if b == nil {
		return
	}
	b.Left = math.Min(b.Left, leftExtent)
	b.Right = math.Max(b.Right, rightExtent)
	b.Progress = progress
}

// EndBranch 结束当前支路
func (s *BranchSystem) EndBranch() {
	if b := s.Current(); b != nil {
		b.Finished = true
		log.Printf("[Branch] 结束支路 %s (宽度 %.2f)", b.ID, b.Width())
	}
	s.current = ecs.InvalidEntity
}

// IsBranchLocationValid 当前深度附近（min_branch_spacing 内）没有其它支路
// 同一深度的支路可以继续使用，不算冲突
func (s *BranchSystem) IsBranchLocationValid() bool {
	depth, _ := s.shipState()
	for _, id := range ecs.GetEntitiesWith1[*components.BranchComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.BranchComponent](s.entityManager, id)
		if b.Depth == depth {
			continue
		}
		if math.Abs(b.Depth-depth) < s.config.MinBranchSpacing {
			return false
		}
	}
	return true
}

// Current 当前支路，没有时返回 nil
func (s *BranchSystem) Current() *components.BranchComponent {
	if s.current == ecs.InvalidEntity {
		return nil
	}
	b, ok := ecs.GetComponent[*components.BranchComponent](s.entityManager, s.current)
	if !ok {
		return nil
	}
	return b
}

// Branches 所有支路（按创建顺序）
func (s *BranchSystem) Branches() []*components.BranchComponent {
	ids := ecs.GetEntitiesWith1[*components.BranchComponent](s.entityManager)
	out := make([]*components.BranchComponent, 0, len(ids))
	for _, id := range ids {
		b, _ := ecs.GetComponent[*components.BranchComponent](s.entityManager, id)
		out = append(out, b)
	}
	return out
}

// Update 根据权威进度与船体位置扩展当前支路
func (s *BranchSystem) Update() {
	if s.modes == nil || s.Current() == nil {
		return
	}

	switch s.modes.Mode() {
	case types.ModeTransitioning:
		p := s.modes.Progress()
		extent := s.config.MaxDigExtent * p
		s.ExtendBranch(p, -extent, extent)
	case types.ModeHorizontal:
		_, lateral := s.shipState()
		s.ExtendBranch(1, lateral-s.config.TunnelEndOffset, lateral+s.config.TunnelEndOffset)
	}
}
