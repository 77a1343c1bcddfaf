package config

import (
	"fmt"
	"log"

	"github.com/gonewx/drillship/pkg/types"
	"gopkg.in/yaml.v3"
)

// 窗口与绘制常量
const (
	// WindowWidth 逻辑屏幕宽度（竖屏）
	WindowWidth = 480
	// WindowHeight 逻辑屏幕高度
	WindowHeight = 800
	// PixelsPerUnit 世界单位到像素的缩放
	PixelsPerUnit = 64.0
)

// 动画名常量
const (
	// ModeTransitionAnimation 模式切换动画（权威时钟）
	ModeTransitionAnimation = "ConfigAnim_ModeTransition"
	// BrakingAnimation 制动器展开/收起动画
	BrakingAnimation = "ConfigAnim_Braking"
)

// ShipConfig 钻探船调参配置（data/ship.yaml）
// 文件中省略的字段保留 DefaultShipConfig 的值
type ShipConfig struct {
	Locomotion  LocomotionConfig  `yaml:"locomotion"`
	Animator    AnimatorConfig    `yaml:"animator"`
	Camera      CameraConfig      `yaml:"camera"`
	Branch      BranchConfig      `yaml:"branch"`
	Orientation OrientationConfig `yaml:"orientation"`
	Tiles       TileConfig        `yaml:"tiles"`

	// FixedStep 固定步长（秒）
	FixedStep float64 `yaml:"fixed_step"`

	// MaxFixedSteps 每帧最多执行的固定步数，防止卡顿后的螺旋追帧
	MaxFixedSteps int `yaml:"max_fixed_steps"`

	// Debug 调试模式：状态不一致时 panic，并绘制调试信息
	Debug bool `yaml:"debug"`
}

// LocomotionConfig 速度积分参数
type LocomotionConfig struct {
	MaxSpeedVertical    float64 `yaml:"max_speed_vertical"`    // 垂直最大速度（单位/秒）
	MaxSpeedHorizontal  float64 `yaml:"max_speed_horizontal"`  // 水平最大速度（单位/秒）
	AccelVertical       float64 `yaml:"accel_vertical"`        // 垂直加速度（单位/秒²）
	AccelHorizontal     float64 `yaml:"accel_horizontal"`      // 水平加速度（单位/秒²）
	BrakeIntensityVert  float64 `yaml:"brake_intensity_vert"`  // 垂直制动衰减系数 (0, 1]
	BrakeIntensityHoriz float64 `yaml:"brake_intensity_horiz"` // 水平制动衰减系数 (0, 1]
	BrakeSnapThresh     float64 `yaml:"brake_snap_thresh"`     // 低于该速度时直接归零
	AlignmentTolerance  float64 `yaml:"alignment_tolerance"`   // 回到竖井时允许的最大横向偏移
}

// AnimatorConfig 插值引擎参数
type AnimatorConfig struct {
	ScrewSpeedMultiplier float64 `yaml:"screw_speed_multiplier"`  // 速度到螺旋桨转速的倍率
	DrillSpeedMultiplier float64 `yaml:"drill_speed_multiplier"`  // 速度到钻头转速的倍率
	ScrewAccelFactor     float64 `yaml:"screw_accel_factor"`      // 转速逼近系数，1 表示直接设置
	BrakeScrewLockThresh float64 `yaml:"brake_screw_lock_thresh"` // 制动时低于该速度锁定所有螺旋桨

	// ShaftCorrection 回到竖井时横向偏移校正曲线
	ShaftCorrection CurveDef `yaml:"shaft_correction"`
}

// CameraConfig 镜头取景参数
type CameraConfig struct {
	VertSize             float64  `yaml:"vert_size"`             // 垂直模式正交尺寸（半高，世界单位）
	HorizSize            float64  `yaml:"horiz_size"`            // 水平模式正交尺寸
	OrientationThreshold float64  `yaml:"orientation_threshold"` // 判断横屏方向的朝向阈值
	IdleOffsetFactor     float64  `yaml:"idle_offset_factor"`    // 垂直模式下镜头领先量 = 速度 × 系数
	IdleOffsetSmoothing  float64  `yaml:"idle_offset_smoothing"` // 领先量逼近系数
	RotationCurve        CurveDef `yaml:"rotation_curve"`        // 旋转曲线
	ZoomCurve            CurveDef `yaml:"zoom_curve"`            // 缩放曲线
}

// BranchConfig 支路隧道参数
type BranchConfig struct {
	MaxDigExtent     float64 `yaml:"max_dig_extent"`     // 切换过程中隧道两端的最大延伸
	TunnelEndOffset  float64 `yaml:"tunnel_end_offset"`  // 水平模式下隧道端点相对船体的偏移
	MinBranchSpacing float64 `yaml:"min_branch_spacing"` // 相邻支路的最小深度间隔
}

// OrientationConfig 设备朝向平滑参数
type OrientationConfig struct {
	SampleInterval float64 `yaml:"sample_interval"` // 采样间隔（秒）
	GroupSize      int     `yaml:"group_size"`      // 滚动平均样本数
}

// TileConfig 地层生成参数
type TileConfig struct {
	TileHeight float64 `yaml:"tile_height"` // 单个地层高度（世界单位）
	LookAhead  float64 `yaml:"look_ahead"`  // 提前生成的距离
}

// DefaultShipConfig 返回默认调参
func DefaultShipConfig() *ShipConfig {
	return &ShipConfig{
		Locomotion: LocomotionConfig{
			MaxSpeedVertical:    4,
			MaxSpeedHorizontal:  3,
			AccelVertical:       2,
			AccelHorizontal:     2,
			BrakeIntensityVert:  0.1,
			BrakeIntensityHoriz: 0.15,
			BrakeSnapThresh:     0.05,
			AlignmentTolerance:  0.25,
		},
		Animator: AnimatorConfig{
			ScrewSpeedMultiplier: 2,
			DrillSpeedMultiplier: 3,
			ScrewAccelFactor:     0.2,
			BrakeScrewLockThresh: 0.5,
			ShaftCorrection:      CurveDef{Name: "shaft_correction", Preset: "easeInOutQuad"},
		},
		Camera: CameraConfig{
			VertSize:             6.25,
			HorizSize:            3.75,
			OrientationThreshold: 0.3,
			IdleOffsetFactor:     0.4,
			IdleOffsetSmoothing:  0.1,
			RotationCurve:        CurveDef{Name: "camera_rotation", Preset: "easeInOutCubic"},
			ZoomCurve:            CurveDef{Name: "camera_zoom", Preset: "easeInOutQuad"},
		},
		Branch: BranchConfig{
			MaxDigExtent:     2.5,
			TunnelEndOffset:  1.2,
			MinBranchSpacing: 3,
		},
		Orientation: OrientationConfig{
			SampleInterval: 0.05,
			GroupSize:      8,
		},
		Tiles: TileConfig{
			TileHeight: 1.28,
			LookAhead:  12.8,
		},
		FixedStep:     0.02,
		MaxFixedSteps: 5,
	}
}

// LoadShipConfig 加载调参配置，未出现的字段使用默认值
func LoadShipConfig(path string) (*ShipConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseShipConfig(data)
	if err != nil {
		return nil, fmt.Errorf("调参配置 %s 无效: %w", path, err)
	}

	log.Printf("[ShipConfig] 加载调参配置: %s (fixed_step=%.3f, debug=%v)", path, cfg.FixedStep, cfg.Debug)
	return cfg, nil
}

// ParseShipConfig 在默认值之上解析调参配置并校验
func ParseShipConfig(data []byte) (*ShipConfig, error) {
	cfg := DefaultShipConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("无法解析 YAML: %w", err)
	}
	if err := validateShipConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateShipConfig 校验调参范围
func validateShipConfig(cfg *ShipConfig) error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"fixed_step 必须大于 0", cfg.FixedStep > 0},
		{"max_fixed_steps 必须大于 0", cfg.MaxFixedSteps > 0},
		{"locomotion.max_speed_* 必须大于 0", cfg.Locomotion.MaxSpeedVertical > 0 && cfg.Locomotion.MaxSpeedHorizontal > 0},
		{"locomotion.accel_* 必须大于 0", cfg.Locomotion.AccelVertical > 0 && cfg.Locomotion.AccelHorizontal > 0},
		{"locomotion.brake_intensity_* 必须在 (0, 1] 之间", inUnit(cfg.Locomotion.BrakeIntensityVert) && inUnit(cfg.Locomotion.BrakeIntensityHoriz)},
		{"locomotion.brake_snap_thresh 必须大于 0", cfg.Locomotion.BrakeSnapThresh > 0},
		{"locomotion.alignment_tolerance 不能为负", cfg.Locomotion.AlignmentTolerance >= 0},
		{"animator.screw_accel_factor 必须在 (0, 1] 之间", inUnit(cfg.Animator.ScrewAccelFactor)},
		{"camera.vert_size/horiz_size 必须大于 0", cfg.Camera.VertSize > 0 && cfg.Camera.HorizSize > 0},
		{"camera.idle_offset_smoothing 必须在 (0, 1] 之间", inUnit(cfg.Camera.IdleOffsetSmoothing)},
		{"branch.min_branch_spacing 不能为负", cfg.Branch.MinBranchSpacing >= 0},
		{"orientation.sample_interval 必须大于 0", cfg.Orientation.SampleInterval > 0},
		{"orientation.group_size 必须大于 0", cfg.Orientation.GroupSize > 0},
		{"tiles.tile_height 必须大于 0", cfg.Tiles.TileHeight > 0},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%s: %w", c.name, types.ErrConfiguration)
		}
	}

	for _, c := range []CurveDef{cfg.Animator.ShaftCorrection, cfg.Camera.RotationCurve, cfg.Camera.ZoomCurve} {
		if _, err := c.Build(); err != nil {
			return fmt.Errorf("曲线 %s: %w", c.Name, err)
		}
	}
	return nil
}

func inUnit(v float64) bool {
	return v > 0 && v <= 1
}
