package game

// stepEpsilon 累加误差容限：1/30 之类的帧间隔累加后可能比整数个步长少一点点
const stepEpsilon = 1e-9

// FixedStepper 把可变帧间隔拆分为固定步长
//
// 每帧先累加 dt，再以固定步长消耗累加器；单帧内执行的步数有上限，
// 超出部分被丢弃，避免卡顿后追帧时越追越慢。
type FixedStepper struct {
	// Step 固定步长（秒）
	Step float64
	// MaxSteps 单帧最多执行的步数，0 表示不限制
	MaxSteps int

	accumulator float64
	total       int
}

// NewFixedStepper 创建固定步长调度器
func NewFixedStepper(step float64, maxSteps int) *FixedStepper {
	return &FixedStepper{Step: step, MaxSteps: maxSteps}
}

// Advance 累加 dt 并执行到期的固定步，返回本帧执行的步数
func (f *FixedStepper) Advance(dt float64, fixed func(step float64)) int {
	if f.Step <= 0 {
		return 0
	}
	f.accumulator += dt

	n := 0
	for f.accumulator >= f.Step-stepEpsilon {
		if f.MaxSteps > 0 && n >= f.MaxSteps {
			f.accumulator = 0
			break
		}
		fixed(f.Step)
		f.accumulator -= f.Step
		n++
	}
	f.total += n
	return n
}

// Total 累计执行的固定步数
func (f *FixedStepper) Total() int {
	return f.total
}
