package app

import (
	"testing"
	"time"
)

func TestApp_FrameDelta(t *testing.T) {
	a := &App{}
	start := time.Unix(100, 0)

	if dt := a.frameDelta(start); dt <= 0 || dt > maxFrameDelta {
		t.Errorf("第一帧 dt = %v", dt)
	}

	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"正常帧", 20 * time.Millisecond, 0.02},
		{"卡顿帧被限制", 2 * time.Second, maxFrameDelta},
		{"时钟回拨", -time.Second, 0},
	}
	now := start
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = now.Add(tt.elapsed)
			if got := a.frameDelta(now); got != tt.want {
				t.Errorf("dt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewApp_DataDir(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, DataDir: "../../data"})
	if err != nil {
		t.Fatalf("NewApp 返回错误: %v", err)
	}
	if a.GetSceneManager().GetCurrentScene() == nil {
		t.Error("应加载挖掘场景")
	}
	w, h := a.Layout(0, 0)
	if w <= 0 || h <= 0 {
		t.Errorf("Layout = %dx%d", w, h)
	}
	a.Close()
}

func TestNewApp_MissingData(t *testing.T) {
	if _, err := NewApp(Config{Verbose: true, DataDir: t.TempDir()}); err == nil {
		t.Error("期望返回错误")
	}
}
