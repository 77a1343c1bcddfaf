package systems

import (
	"testing"

	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/ecs"
)

func TestTileSpawner_Update(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTileSpawnerSystem(em, config.TileConfig{TileHeight: 2, LookAhead: 5})

	sys.Update(0)
	tiles := sys.Tiles()
	// 底部需要越过 0 + 5：0-2, 2-4, 4-6
	if len(tiles) != 3 {
		t.Fatalf("地层数 = %d, want 3", len(tiles))
	}
	for i, tile := range tiles {
		if tile.Index != i || tile.Top != float64(2*i) || tile.Bottom != float64(2*i+2) {
			t.Errorf("地层 #%d = %+v", i, tile)
		}
	}
	if sys.NeedsNewTile(0) {
		t.Error("已补齐时不需要新地层")
	}

	// 向下滚动后回收上方远离视野的地层
	sys.Update(10)
	tiles = sys.Tiles()
	if len(tiles) == 0 || tiles[0].Bottom < 10-5 {
		t.Errorf("地层未回收: %+v", tiles[0])
	}
	last := tiles[len(tiles)-1]
	if last.Bottom < 15 {
		t.Errorf("最后一个地层底部 = %v, want ≥ 15", last.Bottom)
	}
	for i := 1; i < len(tiles); i++ {
		if tiles[i].Index != tiles[i-1].Index+1 || tiles[i].Top != tiles[i-1].Bottom {
			t.Errorf("地层不连续: %+v -> %+v", tiles[i-1], tiles[i])
		}
	}
}
