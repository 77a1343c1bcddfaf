package types

import "errors"

// 错误分类
// 所有可恢复错误都只记录日志并跳过当前帧，不会中断帧循环
var (
	// ErrResolution 按名称查找配置容器、配置或动画失败
	ErrResolution = errors.New("resolution error")

	// ErrConfiguration 插值参数或曲线数据不合法（如曲线少于 2 个关键帧）
	ErrConfiguration = errors.New("configuration error")

	// ErrStateInvariant 模式状态的观察者与权威状态不一致
	ErrStateInvariant = errors.New("state invariant violation")
)
