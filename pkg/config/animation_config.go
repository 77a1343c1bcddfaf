package config

import (
	"fmt"
	"log"

	"github.com/gonewx/drillship/internal/curve"
	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// defaultPresetSamples 预设缓动曲线的默认采样段数
const defaultPresetSamples = 16

// AnimationDef 姿态动画定义（data/animations/*.yaml）
type AnimationDef struct {
	// Name 动画名称（代码中引用，如 "ConfigAnim_ModeTransition"）
	Name string `yaml:"name"`

	// Origin 起点姿态容器名
	Origin string `yaml:"origin"`

	// Targets 目标姿态列表，按激活时间非递减排列
	Targets []AnimationTargetDef `yaml:"targets"`

	// Time 动画总时长（秒）
	Time float64 `yaml:"time"`

	// StartingTime 初始时钟值（秒），默认 0
	StartingTime float64 `yaml:"starting_time,omitempty"`

	// PlayBackwards 初始方向为反向（速度倍率 -1）
	PlayBackwards bool `yaml:"play_backwards,omitempty"`

	// Curves 遮罩曲线列表
	Curves []CurveDef `yaml:"curves"`
}

// AnimationTargetDef 目标姿态及其激活时间
type AnimationTargetDef struct {
	// Config 目标姿态容器名
	Config string `yaml:"config"`

	// ActivationTime 激活时间，归一化到 [0, 1]
	ActivationTime float64 `yaml:"activation_time"`
}

// CurveDef 遮罩曲线定义
// Keys 与 Preset 二选一
type CurveDef struct {
	// Name 曲线名称（仅用于日志）
	Name string `yaml:"name,omitempty"`

	// Keys 显式关键帧
	Keys []curve.Keyframe `yaml:"keys,omitempty"`

	// Preset 缓动预设名（如 "easeInOutCubic"），在 [0, 1] 上采样
	Preset string `yaml:"preset,omitempty"`

	// Samples 预设采样段数，默认 16
	Samples int `yaml:"samples,omitempty"`

	// ElementMask 按 schema 顺序的元素开关列表；为空表示所有元素
	ElementMask []bool `yaml:"element_mask,omitempty"`

	// Elements 按名称选择元素（与 ElementMask 二选一）
	Elements []string `yaml:"elements,omitempty"`

	// IncludePos/IncludeRot/IncludeScl 通道开关，默认 true
	IncludePos *bool `yaml:"include_pos,omitempty"`
	IncludeRot *bool `yaml:"include_rot,omitempty"`
	IncludeScl *bool `yaml:"include_scl,omitempty"`
}

// Build 生成曲线
// 显式关键帧优先于预设（调参文件覆盖默认预设时只需写 keys）
func (d CurveDef) Build() (*curve.Curve, error) {
	if len(d.Keys) == 0 && d.Preset != "" {
		fn, ok := utils.EasingByName(d.Preset)
		if !ok {
			return nil, fmt.Errorf("未知的缓动预设 %q: %w", d.Preset, types.ErrConfiguration)
		}
		samples := d.Samples
		if samples <= 0 {
			samples = defaultPresetSamples
		}
		return curve.FromEasing(fn, samples), nil
	}

	c := curve.New(d.Keys...)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Mask 返回长度为 types.ElementCount 的元素开关列表
func (d CurveDef) Mask() ([]bool, error) {
	mask := make([]bool, types.ElementCount)

	switch {
	case len(d.Elements) > 0:
		for _, name := range d.Elements {
			e, ok := types.ParseElement(name)
			if !ok {
				return nil, fmt.Errorf("未知元素 %q: %w", name, types.ErrConfiguration)
			}
			mask[e] = true
		}
	case len(d.ElementMask) > 0:
		if len(d.ElementMask) > types.ElementCount {
			return nil, fmt.Errorf("element_mask 长度 %d 超过 schema 长度 %d: %w",
				len(d.ElementMask), types.ElementCount, types.ErrConfiguration)
		}
		copy(mask, d.ElementMask)
	default:
		for i := range mask {
			mask[i] = true
		}
	}
	return mask, nil
}

// Channels 返回三个通道开关（位置、旋转、缩放）
func (d CurveDef) Channels() (pos, rot, scl bool) {
	return boolOr(d.IncludePos, true), boolOr(d.IncludeRot, true), boolOr(d.IncludeScl, true)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// LoadAnimationDef 加载单个动画定义文件
func LoadAnimationDef(path string) (*AnimationDef, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	def, err := ParseAnimationDef(data)
	if err != nil {
		return nil, fmt.Errorf("动画定义 %s 无效: %w", path, err)
	}
	return def, nil
}

// ParseAnimationDef 解析并校验动画定义
func ParseAnimationDef(data []byte) (*AnimationDef, error) {
	var def AnimationDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("无法解析 YAML: %w", err)
	}
	if err := validateAnimationDef(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadAnimationDefs 并发加载目录下所有动画定义
// 结果按文件名排序；动画名重复时返回错误
func LoadAnimationDefs(dir string) ([]*AnimationDef, error) {
	files, err := globConfigFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("扫描目录 %s 失败: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("目录 %s 中没有动画定义", dir)
	}

	defs := make([]*AnimationDef, len(files))
	var g errgroup.Group
	for i, file := range files {
		g.Go(func() error {
			def, err := LoadAnimationDef(file)
			if err != nil {
				return err
			}
			defs[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(defs))
	for i, def := range defs {
		if prev, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("重复的动画名 %s（%s 与 %s）", def.Name, prev, files[i])
		}
		seen[def.Name] = files[i]
	}

	log.Printf("[AnimationConfig] 从 %s 加载 %d 个动画定义", dir, len(defs))
	return defs, nil
}

// ValidateAgainst 检查动画引用的容器是否都存在于骨架配置中
func (d *AnimationDef) ValidateAgainst(rig *RigConfig) error {
	if !rig.HasContainer(d.Origin) {
		return fmt.Errorf("动画 %s 的起点容器 %q 不存在: %w", d.Name, d.Origin, types.ErrResolution)
	}
	for _, t := range d.Targets {
		if !rig.HasContainer(t.Config) {
			return fmt.Errorf("动画 %s 的目标容器 %q 不存在: %w", d.Name, t.Config, types.ErrResolution)
		}
	}
	return nil
}

// validateAnimationDef 校验动画定义的结构
func validateAnimationDef(def *AnimationDef) error {
	if def.Name == "" {
		return fmt.Errorf("缺少 'name' 字段: %w", types.ErrConfiguration)
	}
	if def.Origin == "" {
		return fmt.Errorf("动画 %s 缺少 'origin' 字段: %w", def.Name, types.ErrConfiguration)
	}
	if len(def.Targets) == 0 {
		return fmt.Errorf("动画 %s 至少需要一个目标: %w", def.Name, types.ErrConfiguration)
	}
	if def.Time <= 0 {
		return fmt.Errorf("动画 %s 的时长必须大于 0: %w", def.Name, types.ErrConfiguration)
	}
	if def.StartingTime < 0 || def.StartingTime > def.Time {
		return fmt.Errorf("动画 %s 的 starting_time %.3f 超出 [0, %.3f]: %w",
			def.Name, def.StartingTime, def.Time, types.ErrConfiguration)
	}

	prev := 0.0
	for i, t := range def.Targets {
		if t.Config == "" {
			return fmt.Errorf("动画 %s 的目标 #%d 缺少 'config' 字段: %w", def.Name, i, types.ErrConfiguration)
		}
		if t.ActivationTime < 0 || t.ActivationTime > 1 {
			return fmt.Errorf("动画 %s 的目标 %s 激活时间 %.3f 超出 [0, 1]: %w",
				def.Name, t.Config, t.ActivationTime, types.ErrConfiguration)
		}
		if t.ActivationTime < prev {
			return fmt.Errorf("动画 %s 的激活时间必须非递减: %w", def.Name, types.ErrConfiguration)
		}
		prev = t.ActivationTime
	}

	if len(def.Curves) == 0 {
		return fmt.Errorf("动画 %s 没有曲线: %w", def.Name, types.ErrConfiguration)
	}
	for i, c := range def.Curves {
		if c.Preset != "" && len(c.Keys) > 0 {
			return fmt.Errorf("动画 %s 曲线 #%d 不能同时指定 keys 和 preset: %w", def.Name, i, types.ErrConfiguration)
		}
		if len(c.Elements) > 0 && len(c.ElementMask) > 0 {
			return fmt.Errorf("动画 %s 曲线 #%d 不能同时指定 elements 和 element_mask: %w", def.Name, i, types.ErrConfiguration)
		}
		if _, err := c.Build(); err != nil {
			return fmt.Errorf("动画 %s 曲线 #%d: %w", def.Name, i, err)
		}
		if _, err := c.Mask(); err != nil {
			return fmt.Errorf("动画 %s 曲线 #%d: %w", def.Name, i, err)
		}
	}
	return nil
}
