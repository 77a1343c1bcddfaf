package systems

import (
	"fmt"
	"strconv"
	"strings"
)

// ScriptedControls 按帧回放的输入，脚本结束后返回空输入
type ScriptedControls struct {
	frames []Controls
	next   int
}

// NewScriptedControls 由逐帧输入创建
func NewScriptedControls(frames ...Controls) *ScriptedControls {
	return &ScriptedControls{frames: frames}
}

// ParseScript 解析逗号分隔的输入脚本
//
// 每一项为 "动作[+动作...][*帧数]"，动作为 down、left、right、brake、
// toggle、tilt-left、tilt-right、idle。toggle 只在该项的第一帧生效。
//
//	down*60,toggle,idle*40,right*30,brake*20,toggle
func ParseScript(script string) (*ScriptedControls, error) {
	s := &ScriptedControls{}
	for _, item := range strings.Split(script, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		actions, count := item, 1
		if i := strings.LastIndex(item, "*"); i >= 0 {
			n, err := strconv.Atoi(item[i+1:])
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("无效的帧数 %q", item)
			}
			actions, count = item[:i], n
		}

		var c Controls
		for _, a := range strings.Split(actions, "+") {
			switch strings.TrimSpace(a) {
			case "down":
				c.Down = true
			case "left":
				c.Left = true
			case "right":
				c.Right = true
			case "brake":
				c.Brake = true
			case "toggle":
				c.ToggleMode = true
			case "tilt-left":
				c.Tilt, c.HasTilt = -1, true
			case "tilt-right":
				c.Tilt, c.HasTilt = 1, true
			case "idle":
			default:
				return nil, fmt.Errorf("未知动作 %q", a)
			}
		}

		for i := 0; i < count; i++ {
			frame := c
			frame.ToggleMode = c.ToggleMode && i == 0
			s.frames = append(s.frames, frame)
		}
	}
	return s, nil
}

// Poll 返回下一帧输入
func (s *ScriptedControls) Poll() Controls {
	if s.next >= len(s.frames) {
		return Controls{}
	}
	c := s.frames[s.next]
	s.next++
	return c
}

// Len 脚本总帧数
func (s *ScriptedControls) Len() int {
	return len(s.frames)
}

// Done 脚本已回放完毕
func (s *ScriptedControls) Done() bool {
	return s.next >= len(s.frames)
}
