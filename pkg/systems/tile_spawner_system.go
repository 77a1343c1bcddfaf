package systems

import (
	"log"

	"github.com/gonewx/drillship/pkg/components"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
)

// TileSpawnerSystem 程序生成地层
// 只读取滚动深度，与状态机之间没有其它约定
type TileSpawnerSystem struct {
	entityManager *ecs.EntityManager
	config        config.TileConfig

	next   int
	bottom float64
}

// NewTileSpawnerSystem 创建地层生成系统
func NewTileSpawnerSystem(em *ecs.EntityManager, cfg config.TileConfig) *TileSpawnerSystem {
	return &TileSpawnerSystem{entityManager: em, config: cfg}
}

// NeedsNewTile 滚动深度加上预生成距离越过了最后一个地层的底部
func (s *TileSpawnerSystem) NeedsNewTile(scroll float64) bool {
	return scroll+s.config.LookAhead >= s.bottom
}

// Update 补齐前方地层，回收已经远离视野的地层
func (s *TileSpawnerSystem) Update(scroll float64) {
	for s.NeedsNewTile(scroll) {
		id := s.entityManager.CreateEntity()
		tile := &components.TileComponent{
			Index:  s.next,
			Top:    s.bottom,
			Bottom: s.bottom + s.config.TileHeight,
		}
		ecs.AddComponent(s.entityManager, id, tile)
		s.next++
		s.bottom = tile.Bottom
	}

	removed := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TileComponent](s.entityManager) {
		tile, _ := ecs.GetComponent[*components.TileComponent](s.entityManager, id)
		if tile.Bottom < scroll-s.config.LookAhead {
			s.entityManager.DestroyEntity(id)
			removed++
		}
	}
	if removed > 0 {
		s.entityManager.RemoveMarkedEntities()
		log.Printf("[TileSpawner] 回收 %d 个地层", removed)
	}
}

// Tiles 当前存在的地层
func (s *TileSpawnerSystem) Tiles() []*components.TileComponent {
	ids := ecs.GetEntitiesWith1[*components.TileComponent](s.entityManager)
	out := make([]*components.TileComponent, 0, len(ids))
	for _, id := range ids {
		tile, _ := ecs.GetComponent[*components.TileComponent](s.entityManager, id)
		out = append(out, tile)
	}
	return out
}
