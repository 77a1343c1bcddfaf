package components

import (
	"fmt"
	"log"

	"github.com/gonewx/drillship/pkg/types"
	"github.com/gonewx/drillship/pkg/utils"
)

// RigSource 姿态容器的来源（由 config.RigConfig 实现）
// 元素按 schema 角色一次性解析，运行时不再按名称查找
type RigSource interface {
	HasContainer(name string) bool
	Pose(container string, e types.Element) (utils.Transform, bool)
}

// ResolutionError 按名称解析容器、配置或动画失败
type ResolutionError struct {
	// Kind 被查找对象的种类（"container"、"animation"）
	Kind string
	// Name 被查找的名称
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Unwrap 使 errors.Is(err, types.ErrResolution) 成立
func (e *ResolutionError) Unwrap() error {
	return types.ErrResolution
}

// Configuration 具名姿态快照：schema 中每个元素一个槽位
// nil 槽位表示容器中没有定义该元素
type Configuration struct {
	Name  string
	Slots [types.ElementCount]*utils.Transform
}

// NewConfiguration 创建所有槽位为空的配置
func NewConfiguration(name string) *Configuration {
	return &Configuration{Name: name}
}

// Resolve 从姿态来源解析具名容器
// 容器不存在时仍返回一个全空的配置，同时返回 *ResolutionError；
// 容器中缺失的元素保持为 nil，不视为错误
func Resolve(source RigSource, containerName string) (*Configuration, error) {
	c := NewConfiguration(containerName)
	if source == nil || !source.HasContainer(containerName) {
		err := &ResolutionError{Kind: "container", Name: containerName}
		log.Printf("[Configuration] 无法解析容器: %v", err)
		return c, err
	}

	for _, e := range types.Schema() {
		if pose, ok := source.Pose(containerName, e); ok {
			p := pose
			c.Slots[e] = &p
		}
	}
	return c, nil
}

// Get 返回元素姿态；槽位为空时第二个返回值为 false
func (c *Configuration) Get(e types.Element) (utils.Transform, bool) {
	if c == nil || !e.Valid() || c.Slots[e] == nil {
		return utils.Transform{}, false
	}
	return *c.Slots[e], true
}

// Set 设置元素姿态
func (c *Configuration) Set(e types.Element, tr utils.Transform) {
	if !e.Valid() {
		return
	}
	p := tr
	c.Slots[e] = &p
}

// FillGaps 用参考配置补全空槽位
// 已设置的槽位永远不会被覆盖；ref 为自身或 nil 时不做任何事
func (c *Configuration) FillGaps(ref *Configuration) {
	if ref == nil || ref == c {
		return
	}
	for i := range c.Slots {
		if c.Slots[i] != nil || ref.Slots[i] == nil {
			continue
		}
		p := *ref.Slots[i]
		c.Slots[i] = &p
	}
}

// Complete 所有槽位都已设置
func (c *Configuration) Complete() bool {
	for _, s := range c.Slots {
		if s == nil {
			return false
		}
	}
	return true
}

// Missing 返回空槽位对应的元素
func (c *Configuration) Missing() []types.Element {
	var missing []types.Element
	for i, s := range c.Slots {
		if s == nil {
			missing = append(missing, types.Element(i))
		}
	}
	return missing
}

// Clone 深拷贝，用于从基础配置创建实时配置
func (c *Configuration) Clone(name string) *Configuration {
	out := NewConfiguration(name)
	for i, s := range c.Slots {
		if s != nil {
			p := *s
			out.Slots[i] = &p
		}
	}
	return out
}
