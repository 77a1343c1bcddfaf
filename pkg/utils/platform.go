//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false；设置 DRILLSHIP_MOBILE_EMULATE=1 可在桌面模拟移动端（加速度计朝向、不启用 Q/E 倾斜键）
func IsMobile() bool {
	return os.Getenv("DRILLSHIP_MOBILE_EMULATE") == "1"
}
