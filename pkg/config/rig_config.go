package config

import (
	"fmt"
	"log"
	"sort"

	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
	"gopkg.in/yaml.v3"
)

// RigConfig 钻探船骨架配置（data/rig.yaml）
// 定义元素 schema 以及所有具名姿态容器
type RigConfig struct {
	// Schema 元素顺序，必须与 types.Schema() 完全一致
	Schema []string `yaml:"schema"`

	// Base 实时姿态的初始容器（通常为垂直模式姿态）
	Base string `yaml:"base"`

	// GapFillReference 补全缺失元素时使用的参考容器（可选）
	GapFillReference string `yaml:"gap_fill_reference,omitempty"`

	// Containers 姿态容器：容器名 -> 元素名 -> 姿态
	Containers map[string]map[string]PoseConfig `yaml:"containers"`
}

// PoseConfig 单个元素的姿态
type PoseConfig struct {
	// Position 位置 [x, y] 或 [x, y, z]
	Position []float64 `yaml:"position"`

	// Rotation 欧拉角（度）[x, y, z]，省略时无旋转
	Rotation []float64 `yaml:"rotation,omitempty"`

	// Scale 缩放 [x, y, z]，省略时为 1
	Scale []float64 `yaml:"scale,omitempty"`
}

// Transform 把姿态配置转换为 utils.Transform
func (p PoseConfig) Transform() (utils.Transform, error) {
	tr := utils.IdentityTransform()

	x, y, z, err := vec3(p.Position, "position")
	if err != nil {
		return tr, err
	}
	tr.Position = utils.Vec3{x, y, z}

	if len(p.Rotation) > 0 {
		rx, ry, rz, err := vec3(p.Rotation, "rotation")
		if err != nil {
			return tr, err
		}
		tr.Rotation = utils.QuatFromEuler(rx, ry, rz)
	}

	if len(p.Scale) > 0 {
		sx, sy, sz, err := vec3(p.Scale, "scale")
		if err != nil {
			return tr, err
		}
		if len(p.Scale) == 2 {
			sz = 1
		}
		tr.Scale = utils.Vec3{sx, sy, sz}
	}

	return tr, nil
}

// LoadRigConfig 加载骨架配置
//
// 参数：
//   - path: 配置文件路径（如 "data/rig.yaml"）
//
// 返回：
//   - *RigConfig: 校验通过的配置
//   - error: 读取、解析或校验错误
func LoadRigConfig(path string) (*RigConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseRigConfig(data)
	if err != nil {
		return nil, fmt.Errorf("骨架配置 %s 无效: %w", path, err)
	}

	log.Printf("[RigConfig] 加载骨架配置: %s (%d 个容器)", path, len(cfg.Containers))
	return cfg, nil
}

// ParseRigConfig 解析并校验骨架配置
func ParseRigConfig(data []byte) (*RigConfig, error) {
	var cfg RigConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("无法解析 YAML: %w", err)
	}
	if err := validateRigConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateRigConfig 校验 schema、容器引用和所有姿态数据
func validateRigConfig(cfg *RigConfig) error {
	schema := types.Schema()
	if len(cfg.Schema) != len(schema) {
		return fmt.Errorf("schema 长度为 %d，期望 %d: %w", len(cfg.Schema), len(schema), types.ErrConfiguration)
	}
	for i, name := range cfg.Schema {
		if name != schema[i].String() {
			return fmt.Errorf("schema[%d] = %q，期望 %q: %w", i, name, schema[i], types.ErrConfiguration)
		}
	}

	if len(cfg.Containers) == 0 {
		return fmt.Errorf("没有定义任何容器: %w", types.ErrConfiguration)
	}
	if cfg.Base == "" {
		return fmt.Errorf("缺少 'base' 字段: %w", types.ErrConfiguration)
	}
	if _, ok := cfg.Containers[cfg.Base]; !ok {
		return fmt.Errorf("base 容器 %q 不存在: %w", cfg.Base, types.ErrConfiguration)
	}
	if cfg.GapFillReference != "" {
		if _, ok := cfg.Containers[cfg.GapFillReference]; !ok {
			return fmt.Errorf("gap_fill_reference 容器 %q 不存在: %w", cfg.GapFillReference, types.ErrConfiguration)
		}
	}

	for container, poses := range cfg.Containers {
		for name, pose := range poses {
			if _, ok := types.ParseElement(name); !ok {
				return fmt.Errorf("容器 %s 含有未知元素 %q: %w", container, name, types.ErrConfiguration)
			}
			if _, err := pose.Transform(); err != nil {
				return fmt.Errorf("容器 %s 元素 %s: %v: %w", container, name, err, types.ErrConfiguration)
			}
		}
	}
	return nil
}

// HasContainer 容器是否存在
func (c *RigConfig) HasContainer(name string) bool {
	_, ok := c.Containers[name]
	return ok
}

// Pose 查询容器中某个元素的姿态
// 第二个返回值表示该元素是否在容器中定义
func (c *RigConfig) Pose(container string, e types.Element) (utils.Transform, bool) {
	poses, ok := c.Containers[container]
	if !ok {
		return utils.Transform{}, false
	}
	pose, ok := poses[e.String()]
	if !ok {
		return utils.Transform{}, false
	}
	tr, err := pose.Transform()
	if err != nil {
		// 已在加载时校验，只有手工构造的配置会走到这里
		log.Printf("[RigConfig] 容器 %s 元素 %s 姿态无效: %v", container, e, err)
		return utils.Transform{}, false
	}
	return tr, true
}

// ContainerNames 返回排序后的容器名列表
func (c *RigConfig) ContainerNames() []string {
	names := make([]string, 0, len(c.Containers))
	for name := range c.Containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
