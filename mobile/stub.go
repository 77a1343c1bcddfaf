//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 此文件在普通构建时编译，提供空的导出函数。
// 实际的移动端代码在 mobile.go 和 embed.go 中，
// 仅在使用 -tags mobile 时编译。
package mobile

// SetOrientation 非移动端无加速度计，忽略
func SetOrientation(x, y, z float64) {}

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
