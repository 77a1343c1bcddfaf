// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// Element 钻探船骨架中的元素角色
// 顺序固定，所有 Configuration 中索引 i 总是指向同一个语义元素
type Element int

const (
	// ElementDrill 钻头
	ElementDrill Element = iota
	// ElementWinch 绞盘
	ElementWinch
	// ElementScrewFL 左前螺旋推进器
	ElementScrewFL
	// ElementScrewFR 右前螺旋推进器
	ElementScrewFR
	// ElementScrewBL 左后螺旋推进器
	ElementScrewBL
	// ElementScrewBR 右后螺旋推进器
	ElementScrewBR
	// ElementCore 船体核心
	ElementCore

	// ElementCount 骨架元素总数
	ElementCount = int(iota)
)

// elementNames 元素在配置文件中的名称（与原始容器中的子节点名一致）
var elementNames = [ElementCount]string{
	"drill",
	"winch",
	"screw_FL",
	"screw_FR",
	"screw_BL",
	"screw_BR",
	"core",
}

// Schema 返回固定的元素顺序
func Schema() []Element {
	schema := make([]Element, ElementCount)
	for i := range schema {
		schema[i] = Element(i)
	}
	return schema
}

// String 返回元素在配置文件中使用的名称
func (e Element) String() string {
	if e < 0 || int(e) >= ElementCount {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Valid 检查元素索引是否在骨架范围内
func (e Element) Valid() bool {
	return e >= 0 && int(e) < ElementCount
}

// ParseElement 根据名称查找元素
func ParseElement(name string) (Element, bool) {
	for i, n := range elementNames {
		if n == name {
			return Element(i), true
		}
	}
	return -1, false
}

// Screws 四个螺旋推进器，顺序与骨架一致
var Screws = [4]Element{ElementScrewFL, ElementScrewFR, ElementScrewBL, ElementScrewBR}

// Channel 元素变换的通道
type Channel int

const (
	// ChannelPosition 位置
	ChannelPosition Channel = iota
	// ChannelRotation 旋转
	ChannelRotation
	// ChannelScale 缩放
	ChannelScale

	// ChannelCount 通道总数
	ChannelCount = int(iota)
)

// String 返回通道名称
func (c Channel) String() string {
	switch c {
	case ChannelPosition:
		return "position"
	case ChannelRotation:
		return "rotation"
	case ChannelScale:
		return "scale"
	default:
		return "unknown"
	}
}
