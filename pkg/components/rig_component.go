package components

import "github.com/gonewx/drillship/pkg/types"

// RigComponent 钻探船骨架
// Live 是唯一会被插值引擎写入的配置，代表当前屏幕上的姿态
type RigComponent struct {
	// Base 基础配置（只读，补全参考）
	Base *Configuration

	// Live 实时配置
	Live *Configuration

	// Animations 所有姿态动画，按加载顺序迭代
	Animations []*ConfigAnimation

	// RotorSpeeds 旋转子元素（螺旋桨、钻头）的动画速度
	RotorSpeeds [types.ElementCount]float64
}

// Animation 按名称查找动画
func (r *RigComponent) Animation(name string) *ConfigAnimation {
	for _, a := range r.Animations {
		if a.Name == name {
			return a
		}
	}
	return nil
}
