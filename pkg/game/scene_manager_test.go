package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.currentScene != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	if sm.currentScene != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles nil scene gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager()
	// Don't set any scene, currentScene should be nil
	sm.Update(0.016) // Should not panic
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	// Create a dummy screen image
	screen := ebiten.NewImage(800, 600)
	sm.Draw(screen)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerDrawNoScene verifies that Draw handles nil scene gracefully.
func TestSceneManagerDrawNoScene(t *testing.T) {
	sm := NewSceneManager()
	screen := ebiten.NewImage(800, 600)
	// Don't set any scene, currentScene should be nil
	sm.Draw(screen) // Should not panic
}

// TestSceneManagerSwitchBetweenScenes verifies switching between multiple scenes.
func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	// Switch to scene1
	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	// Switch to scene2
	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}

// closingScene 记录 Close 调用次数
type closingScene struct {
	MockScene
	closed int
}

func (c *closingScene) Close() {
	c.closed++
}

// TestSceneManagerSwitchClosesPrevious 切换场景时关闭旧场景
func TestSceneManagerSwitchClosesPrevious(t *testing.T) {
	sm := NewSceneManager()
	old := &closingScene{}
	sm.SwitchTo(old)
	sm.SwitchTo(old)
	if old.closed != 0 {
		t.Errorf("切换到同一场景不应关闭, closed=%d", old.closed)
	}

	sm.SwitchTo(&MockScene{})
	if old.closed != 1 {
		t.Errorf("closed = %d, want 1", old.closed)
	}
}

func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()
	if err := sm.Load("dig"); err == nil {
		t.Fatal("未设置工厂时应返回错误")
	}

	created := 0
	sm.SetSceneFactory(func(name string) (Scene, error) {
		if name != "dig" {
			return nil, errors.New("unknown scene")
		}
		created++
		return &closingScene{}, nil
	})

	if err := sm.Load("dig"); err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}
	first := sm.GetCurrentScene().(*closingScene)

	if err := sm.Load("menu"); err == nil {
		t.Error("未知场景应返回错误")
	}
	if sm.GetCurrentScene() != first {
		t.Error("创建失败时应保留当前场景")
	}

	if err := sm.Reload(); err != nil {
		t.Fatalf("Reload 返回错误: %v", err)
	}
	if created != 2 || first.closed != 1 {
		t.Errorf("created=%d closed=%d, want 2/1", created, first.closed)
	}

	current := sm.GetCurrentScene().(*closingScene)
	sm.Close()
	if current.closed != 1 || sm.GetCurrentScene() != nil {
		t.Error("Close 应关闭并清除当前场景")
	}
}

func TestSceneManagerReloadWithoutLoad(t *testing.T) {
	sm := NewSceneManager()
	sm.SwitchTo(&MockScene{})
	if err := sm.Reload(); err == nil {
		t.Error("期望返回错误")
	}
}
