package components

import (
	"github.com/gonewx/drillship/pkg/utils"
)

// AnimationTarget 目标姿态及其激活时间（归一化到 [0, 1]）
type AnimationTarget struct {
	Config         *Configuration
	ActivationTime float64
}

// AnimationEndFunc 动画时钟触及边界时的回调
// bound 为触及的边界：0 表示回到起点，Duration 表示到达终点
type AnimationEndFunc func(anim *ConfigAnimation, bound float64)

type endListener struct {
	id int
	fn AnimationEndFunc
}

// ConfigAnimation 可播放、可反向拖动的姿态动画
// 在起点配置与一个或多个按激活时间排序的目标配置之间混合
type ConfigAnimation struct {
	// Name 动画名称
	Name string

	// Origin 第一段的起点配置
	Origin *Configuration

	// Targets 目标列表，激活时间非递减
	Targets []AnimationTarget

	// Duration 总时长（秒）
	Duration float64

	// CurrentTime 当前时钟（秒），限制在 [0, Duration]
	CurrentTime float64

	// SpeedMultiplier 带符号的速度倍率
	SpeedMultiplier float64

	// Playing 是否正在播放；时钟触及边界时自动清除
	Playing bool

	// Curves 遮罩曲线，只属于本动画
	Curves []*MaskedCurve

	// StartingTime 初始时钟值（Reset 时恢复）
	StartingTime float64

	// PlayBackwards 初始方向为反向
	PlayBackwards bool

	listeners []endListener
	nextID    int
}

// Reset 恢复到定义中的初始状态（时钟、方向），并停止播放
func (a *ConfigAnimation) Reset() {
	a.CurrentTime = utils.Clamp(a.StartingTime, 0, a.Duration)
	a.SpeedMultiplier = 1
	if a.PlayBackwards {
		a.SpeedMultiplier = -1
	}
	a.Playing = false
}

// Play 以给定方向（+1 正向，-1 反向）开始播放，不重置时钟
func (a *ConfigAnimation) Play(direction float64) {
	a.SpeedMultiplier = direction
	a.Playing = true
}

// OnEnd 注册完成事件监听器，返回的 id 可用于 RemoveListener
func (a *ConfigAnimation) OnEnd(fn AnimationEndFunc) int {
	a.nextID++
	a.listeners = append(a.listeners, endListener{id: a.nextID, fn: fn})
	return a.nextID
}

// RemoveListener 移除监听器
func (a *ConfigAnimation) RemoveListener(id int) {
	for i, l := range a.listeners {
		if l.id == id {
			a.listeners = append(a.listeners[:i], a.listeners[i+1:]...)
			return
		}
	}
}

// TimeStep 推进时钟
// 未播放时不做任何事；钳制改变了时钟值时停止播放并触发完成事件
func (a *ConfigAnimation) TimeStep(dt float64) {
	if !a.Playing {
		return
	}

	raw := a.CurrentTime + dt*a.SpeedMultiplier
	clamped := utils.Clamp(raw, 0, a.Duration)
	a.CurrentTime = clamped
	if clamped == raw {
		return
	}

	a.Playing = false
	for _, l := range a.listeners {
		l.fn(a, clamped)
	}
}

// InterpolantTime 时钟归一化到 [0, 1]
func (a *ConfigAnimation) InterpolantTime() float64 {
	if a.Duration <= 0 {
		return 0
	}
	return a.CurrentTime / a.Duration
}

// Progress 与 InterpolantTime 相同，供只读观察者使用
func (a *ConfigAnimation) Progress() float64 {
	return a.InterpolantTime()
}

// currentIndex 激活时间不晚于当前时间的最后一个目标；都晚于当前时间时为 0
func (a *ConfigAnimation) currentIndex() int {
	t := a.InterpolantTime()
	for i := len(a.Targets) - 1; i >= 0; i-- {
		if a.Targets[i].ActivationTime <= t {
			return i
		}
	}
	return 0
}

// CurrentTarget 当前段的目标配置
func (a *ConfigAnimation) CurrentTarget() *Configuration {
	if len(a.Targets) == 0 {
		return nil
	}
	return a.Targets[a.currentIndex()].Config
}

// CurrentOrigin 当前段的起点配置：前一个目标，第一段为 Origin
func (a *ConfigAnimation) CurrentOrigin() *Configuration {
	if len(a.Targets) == 0 {
		return a.Origin
	}
	idx := a.currentIndex()
	if idx == 0 {
		return a.Origin
	}
	return a.Targets[idx-1].Config
}

// RealInterpolantTime 把 InterpolantTime 重映射到当前段内的 [0, 1]
// 单目标动画直接返回 InterpolantTime
func (a *ConfigAnimation) RealInterpolantTime() float64 {
	t := a.InterpolantTime()
	if len(a.Targets) <= 1 {
		return t
	}

	idx := a.currentIndex()
	start := a.Targets[idx].ActivationTime
	if t < a.Targets[0].ActivationTime {
		start = 0
	}
	end := 1.0
	if idx+1 < len(a.Targets) {
		end = a.Targets[idx+1].ActivationTime
	}
	if end <= start {
		return 1
	}
	return utils.InverseLerp(start, end, t)
}

// GetActiveCurves 关键帧区间包含当前段内时间的曲线
// 区间之外的曲线本帧完全跳过，不做钳制也不外推
func (a *ConfigAnimation) GetActiveCurves() []*MaskedCurve {
	t := a.RealInterpolantTime()
	active := make([]*MaskedCurve, 0, len(a.Curves))
	for _, c := range a.Curves {
		if c.InDomain(t) {
			active = append(active, c)
		}
	}
	return active
}
