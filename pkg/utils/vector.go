package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// vector.go 把骨架姿态建立在 mgl64 之上，
// 这里只补充插值引擎需要的端点还原与角度换算。

// Vec2 二维向量（速度、屏幕坐标）
type Vec2 = mgl64.Vec2

// Vec3 三维向量（位置、缩放、设备朝向）
type Vec3 = mgl64.Vec3

// Quat 单位四元数（旋转）
type Quat = mgl64.Quat

var (
	axisX = Vec3{1, 0, 0}
	axisY = Vec3{0, 1, 0}
	axisZ = Vec3{0, 0, 1}
)

// IsZero 两个分量都严格等于 0
func IsZero(v Vec2) bool {
	return v == Vec2{}
}

// Vec3LerpUnclamped 逐分量不限制插值；t 为 0 或 1 时原样返回端点
func Vec3LerpUnclamped(a, b Vec3, t float64) Vec3 {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return a.Add(b.Sub(a).Mul(t))
}

// QuatFromEuler 由欧拉角（度）构建四元数，依次绕 Z、X、Y 轴旋转
func QuatFromEuler(x, y, z float64) Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), axisX)
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), axisY)
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), axisZ)
	return qy.Mul(qx).Mul(qz)
}

// AngleZ 绕 Z 轴的旋转角（度），用于二维绘制
func AngleZ(q Quat) float64 {
	x, y, z := q.V.X(), q.V.Y(), q.V.Z()
	siny := 2 * (q.W*z + x*y)
	cosy := 1 - 2*(y*y+z*z)
	return mgl64.RadToDeg(math.Atan2(siny, cosy))
}

// QuatLerpUnclamped 不限制 t 的归一化线性插值（nlerp），走最短路径
// t 恰好为 0 或 1 时原样返回端点，保证姿态可以逐位还原
func QuatLerpUnclamped(a, b Quat, t float64) Quat {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatNlerp(a, b, t)
}

// Transform 单个元素的姿态
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// IdentityTransform 原点、无旋转、单位缩放
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    Vec3{1, 1, 1},
	}
}
