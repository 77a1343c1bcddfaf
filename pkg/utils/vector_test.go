package utils

import (
	"math"
	"testing"
)

// TestQuatLerpUnclampedEndpoints 端点必须逐位还原
func TestQuatLerpUnclampedEndpoints(t *testing.T) {
	a := QuatFromEuler(0, 0, 30)
	b := QuatFromEuler(0, 0, 120)

	if got := QuatLerpUnclamped(a, b, 0); got != a {
		t.Errorf("t=0 应返回 a，得到 %+v", got)
	}
	if got := QuatLerpUnclamped(a, b, 1); got != b {
		t.Errorf("t=1 应返回 b，得到 %+v", got)
	}
}

// TestQuatLerpUnclampedMidpoint 中点角度与长度
func TestQuatLerpUnclampedMidpoint(t *testing.T) {
	a := QuatFromEuler(0, 0, 0)
	b := QuatFromEuler(0, 0, 90)

	mid := QuatLerpUnclamped(a, b, 0.5)
	if math.Abs(math.Sqrt(mid.Dot(mid))-1) > 1e-9 {
		t.Errorf("插值结果未归一化: %+v", mid)
	}
	if math.Abs(AngleZ(mid)-45) > 1e-6 {
		t.Errorf("中点角度 = %v, 期望 45", AngleZ(mid))
	}
}

// TestQuatFromEulerZ 绕 Z 轴的欧拉角往返
func TestQuatFromEulerZ(t *testing.T) {
	for _, deg := range []float64{-90, -45, 0, 10, 90, 170} {
		q := QuatFromEuler(0, 0, deg)
		if math.Abs(AngleZ(q)-deg) > 1e-6 {
			t.Errorf("AngleZ(QuatFromEuler(0,0,%v)) = %v", deg, AngleZ(q))
		}
	}
}

// TestVec3LerpUnclamped 逐分量插值
func TestVec3LerpUnclamped(t *testing.T) {
	a := Vec3{0, 2, -4}
	b := Vec3{10, 4, 4}

	got := Vec3LerpUnclamped(a, b, 0.5)
	want := Vec3{5, 3, 0}
	if got != want {
		t.Errorf("Vec3LerpUnclamped = %+v, 期望 %+v", got, want)
	}
	if got := Vec3LerpUnclamped(a, b, 0); got != a {
		t.Errorf("t=0 应返回 a，得到 %+v", got)
	}
}

// TestIsZero 速度判零
func TestIsZero(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want bool
	}{
		{"零向量", Vec2{}, true},
		{"仅 X 非零", Vec2{0.01, 0}, false},
		{"仅 Y 非零", Vec2{0, -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsZero(tt.v); got != tt.want {
				t.Errorf("IsZero(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

// TestIdentityTransform 单位姿态
func TestIdentityTransform(t *testing.T) {
	tr := IdentityTransform()
	if tr.Position != (Vec3{}) {
		t.Errorf("位置应为原点，得到 %v", tr.Position)
	}
	if tr.Scale != (Vec3{1, 1, 1}) {
		t.Errorf("缩放应为 1，得到 %v", tr.Scale)
	}
	if tr.Rotation.W != 1 || tr.Rotation.V != (Vec3{}) {
		t.Errorf("旋转应为单位四元数，得到 %v", tr.Rotation)
	}
	if got := AngleZ(tr.Rotation); got != 0 {
		t.Errorf("单位旋转角度 = %v, want 0", got)
	}
}
