package config

import (
	"errors"
	"testing"

	"github.com/gonewx/drillship/pkg/types"
)

// TestDefaultShipConfig 默认配置必须能通过校验
func TestDefaultShipConfig(t *testing.T) {
	cfg := DefaultShipConfig()
	if err := validateShipConfig(cfg); err != nil {
		t.Fatalf("默认配置校验失败: %v", err)
	}
	if cfg.FixedStep != 0.02 {
		t.Errorf("FixedStep = %v, want 0.02", cfg.FixedStep)
	}
}

// TestLoadShipConfig 测试加载调参文件
func TestLoadShipConfig(t *testing.T) {
	cfg, err := LoadShipConfig("testdata/ship.yaml")
	if err != nil {
		t.Fatalf("加载调参配置失败: %v", err)
	}
	if cfg.Locomotion.MaxSpeedVertical != 4 {
		t.Errorf("MaxSpeedVertical = %v, want 4", cfg.Locomotion.MaxSpeedVertical)
	}
	if cfg.Branch.TunnelEndOffset != 1.2 {
		t.Errorf("TunnelEndOffset = %v, want 1.2", cfg.Branch.TunnelEndOffset)
	}
	// 文件只覆盖了 rotation_curve 的预设，名称保留默认值
	if cfg.Camera.RotationCurve.Name != "camera_rotation" {
		t.Errorf("RotationCurve.Name = %q, want camera_rotation", cfg.Camera.RotationCurve.Name)
	}
}

// TestParseShipConfig_PartialOverride 省略字段保留默认值
func TestParseShipConfig_PartialOverride(t *testing.T) {
	cfg, err := ParseShipConfig([]byte("debug: true\nlocomotion:\n  accel_vertical: 5\n"))
	if err != nil {
		t.Fatalf("ParseShipConfig() error = %v", err)
	}
	def := DefaultShipConfig()

	if !cfg.Debug {
		t.Error("Debug 应为 true")
	}
	if cfg.Locomotion.AccelVertical != 5 {
		t.Errorf("AccelVertical = %v, want 5", cfg.Locomotion.AccelVertical)
	}
	if cfg.Locomotion.MaxSpeedVertical != def.Locomotion.MaxSpeedVertical {
		t.Errorf("MaxSpeedVertical = %v, want 默认值 %v", cfg.Locomotion.MaxSpeedVertical, def.Locomotion.MaxSpeedVertical)
	}
	if cfg.FixedStep != def.FixedStep {
		t.Errorf("FixedStep = %v, want 默认值 %v", cfg.FixedStep, def.FixedStep)
	}
}

// TestParseShipConfig_Invalid 测试调参范围校验
func TestParseShipConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"固定步长为 0", "fixed_step: 0\n"},
		{"制动系数越界", "locomotion:\n  brake_intensity_vert: 1.5\n"},
		{"逼近系数为 0", "animator:\n  screw_accel_factor: 0\n"},
		{"平滑样本数为 0", "orientation:\n  group_size: 0\n"},
		{"曲线关键帧不足", "camera:\n  zoom_curve:\n    keys: [{time: 0, value: 0}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShipConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("期望返回错误，但得到 nil")
			}
			if !errors.Is(err, types.ErrConfiguration) {
				t.Errorf("错误应包装 ErrConfiguration: %v", err)
			}
		})
	}
}
