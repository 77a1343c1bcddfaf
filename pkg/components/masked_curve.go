package components

import (
	"github.com/gonewx/drillship/internal/curve"
	"github.com/gonewx/drillship/pkg/types"
)

// ElementSet 元素选择位集：第 i 位表示元素 i 参与
type ElementSet uint32

// AllElements 选择 schema 中的全部元素
const AllElements = ElementSet(1<<types.ElementCount - 1)

// NewElementSet 由元素列表构建位集
func NewElementSet(elements ...types.Element) ElementSet {
	var s ElementSet
	for _, e := range elements {
		if e.Valid() {
			s |= 1 << uint(e)
		}
	}
	return s
}

// ElementSetFromBools 按最低位对应元素 0 的顺序折叠布尔列表
// 从最后一个元素向前折叠，与 MaskedCurve.GetMask 一致
func ElementSetFromBools(included []bool) ElementSet {
	var s ElementSet
	for i := len(included) - 1; i >= 0; i-- {
		s <<= 1
		if included[i] {
			s |= 1
		}
	}
	return s
}

// Has 元素是否被选中
func (s ElementSet) Has(e types.Element) bool {
	return e.Valid() && s&(1<<uint(e)) != 0
}

// Bools 展开为长度为 n 的布尔列表（GetMask 的逆运算）
func (s ElementSet) Bools(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = s&(1<<uint(i)) != 0
	}
	return out
}

// Elements 返回被选中的元素（按 schema 顺序）
func (s ElementSet) Elements() []types.Element {
	var out []types.Element
	for _, e := range types.Schema() {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// ChannelSet 通道选择位集（位置、旋转、缩放）
type ChannelSet uint8

// AllChannels 选择全部三个通道
const AllChannels = ChannelSet(1<<types.ChannelCount - 1)

// NewChannelSet 由三个通道开关构建位集
func NewChannelSet(pos, rot, scl bool) ChannelSet {
	var s ChannelSet
	if pos {
		s |= 1 << uint(types.ChannelPosition)
	}
	if rot {
		s |= 1 << uint(types.ChannelRotation)
	}
	if scl {
		s |= 1 << uint(types.ChannelScale)
	}
	return s
}

// Has 通道是否被选中
func (s ChannelSet) Has(c types.Channel) bool {
	return s&(1<<uint(c)) != 0
}

// Selector 元素 + 通道的结构化选择
type Selector struct {
	Elements ElementSet
	Channels ChannelSet
}

// SelectAll 选择全部元素和全部通道
func SelectAll() Selector {
	return Selector{Elements: AllElements, Channels: AllChannels}
}

// Interpolant 单个通道的插值参数
// Active 为 false 表示该通道被遮罩，实时姿态中对应通道保持不变
type Interpolant struct {
	T      float64
	Active bool
}

// Interpolants 三个通道的插值参数，按 types.Channel 索引
type Interpolants [types.ChannelCount]Interpolant

// UniformInterpolants 所选通道使用同一个参数，其余通道被遮罩
func UniformInterpolants(t float64, channels ChannelSet) Interpolants {
	var out Interpolants
	for c := types.Channel(0); int(c) < types.ChannelCount; c++ {
		if channels.Has(c) {
			out[c] = Interpolant{T: t, Active: true}
		}
	}
	return out
}

// MaskedCurve 标量曲线 + 元素遮罩 + 通道开关
type MaskedCurve struct {
	// Name 曲线名称（日志用）
	Name string

	// Curve 在 RealInterpolantTime 上求值的曲线
	Curve *curve.Curve

	// ElementMask 按 schema 顺序的元素开关，true 表示参与
	ElementMask []bool

	IncludePos bool
	IncludeRot bool
	IncludeScl bool
}

// GetMask 把元素开关列表折叠为整数，元素 0 占最低位
func (m *MaskedCurve) GetMask() uint32 {
	return uint32(ElementSetFromBools(m.ElementMask))
}

// Selector 返回结构化的元素 + 通道选择
func (m *MaskedCurve) Selector() Selector {
	return Selector{
		Elements: ElementSet(m.GetMask()),
		Channels: NewChannelSet(m.IncludePos, m.IncludeRot, m.IncludeScl),
	}
}

// Interpolants 在 t 处求曲线值，并按通道开关生成插值参数
func (m *MaskedCurve) Interpolants(t float64) Interpolants {
	return UniformInterpolants(m.Curve.Evaluate(t), m.Selector().Channels)
}

// InDomain 曲线的关键帧区间是否包含 t
func (m *MaskedCurve) InDomain(t float64) bool {
	return m.Curve.Contains(t)
}
