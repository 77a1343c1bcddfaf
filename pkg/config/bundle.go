package config

import (
	"fmt"
	"log"
	"path"

	"golang.org/x/sync/errgroup"
)

// 数据目录中的固定文件名
const (
	RigFile       = "rig.yaml"
	ShipFile      = "ship.yaml"
	AnimationsDir = "animations"
)

// Bundle 一次运行所需的全部配置
type Bundle struct {
	Rig        *RigConfig
	Animations []*AnimationDef
	Ship       *ShipConfig
}

// LoadBundle 并发加载数据目录下的骨架、动画与调参配置，
// 并检查动画引用的容器都存在
func LoadBundle(dir string) (*Bundle, error) {
	var b Bundle
	var g errgroup.Group

	g.Go(func() error {
		rig, err := LoadRigConfig(path.Join(dir, RigFile))
		b.Rig = rig
		return err
	})
	g.Go(func() error {
		defs, err := LoadAnimationDefs(path.Join(dir, AnimationsDir))
		b.Animations = defs
		return err
	})
	g.Go(func() error {
		ship, err := LoadShipConfig(path.Join(dir, ShipFile))
		b.Ship = ship
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, def := range b.Animations {
		if err := def.ValidateAgainst(b.Rig); err != nil {
			return nil, fmt.Errorf("数据目录 %s: %w", dir, err)
		}
	}

	log.Printf("[Config] 数据目录 %s: %d 个容器, %d 个动画", dir, len(b.Rig.Containers), len(b.Animations))
	return &b, nil
}
