//go:build mobile

package utils

// IsMobile 移动端编译时返回 true，朝向由加速度计提供
func IsMobile() bool {
	return true
}
