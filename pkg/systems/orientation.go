package systems

import (
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/utils"
)

// SmoothedOrientation 设备朝向的滚动平均
// 按固定间隔对最新的原始读数采样，保留最近 group_size 个样本
type SmoothedOrientation struct {
	config  config.OrientationConfig
	latest  utils.Vec3
	hasRaw  bool
	samples []utils.Vec3
	timer   float64
}

// NewSmoothedOrientation 创建朝向平滑器
func NewSmoothedOrientation(cfg config.OrientationConfig) *SmoothedOrientation {
	return &SmoothedOrientation{config: cfg}
}

// SetRaw 设置最新的屏幕朝向读数
func (o *SmoothedOrientation) SetRaw(v utils.Vec3) {
	o.latest = v
	o.hasRaw = true
}

// SetAcceleration 设置加速度计读数
// 加速度计指向手机底部，绕 X 轴旋转 90° 后得到屏幕朝向
func (o *SmoothedOrientation) SetAcceleration(x, y, z float64) {
	o.SetRaw(utils.Vec3{x, -z, y})
}

// Update 按采样间隔把最新读数推入样本
func (o *SmoothedOrientation) Update(dt float64) {
	if !o.hasRaw {
		return
	}
	o.timer += dt
	for o.timer >= o.config.SampleInterval {
		o.timer -= o.config.SampleInterval
		o.Push(o.latest)
	}
}

// Push 直接推入一个样本
func (o *SmoothedOrientation) Push(v utils.Vec3) {
	o.samples = append(o.samples, v)
	if n := o.config.GroupSize; n > 0 && len(o.samples) > n {
		o.samples = o.samples[len(o.samples)-n:]
	}
}

// Orientation 样本平均值；没有样本时为零向量
func (o *SmoothedOrientation) Orientation() utils.Vec3 {
	if len(o.samples) == 0 {
		return utils.Vec3{}
	}
	var sum utils.Vec3
	for _, s := range o.samples {
		sum = sum.Add(s)
	}
	return sum.Mul(1 / float64(len(o.samples)))
}
