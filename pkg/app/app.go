// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/game"
	"github.com/gonewx/drillship/pkg/scenes"
	"github.com/gonewx/drillship/pkg/systems"
	"github.com/gonewx/drillship/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxFrameDelta 单帧时间上限（秒），窗口拖动或断点暂停后不会一次推进过多
const maxFrameDelta = 0.1

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 覆盖 ship.yaml 中的 debug 开关
	Debug bool
	// DataDir 数据目录，默认 "data"（嵌入资源）
	DataDir string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool
	lastUpdate   time.Time

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// DataDir 为 "data" 时，调用此函数前必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	bundle, err := config.LoadBundle(dataDir)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if cfg.Debug {
		bundle.Ship.Debug = true
	}

	// 桌面端用 Q/E 键模拟横屏朝向，移动端由加速度计提供
	controls := &systems.KeyboardControls{Tilt: !utils.IsMobile()}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		if name != scenes.DigSceneName {
			return nil, fmt.Errorf("未知场景 %q", name)
		}
		return scenes.NewDigScene(bundle, controls)
	})
	if err := sceneManager.Load(scenes.DigSceneName); err != nil {
		return nil, err
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次；帧间隔按实际经过时间计算并限制上限
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// R 重新开始
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.sceneManager.Reload(); err != nil {
			log.Printf("[App] 重新开始失败: %v", err)
		}
		a.lastUpdate = time.Time{}
	}

	a.sceneManager.Update(a.frameDelta(time.Now()))
	return nil
}

// frameDelta 距上一帧的时间，第一帧使用 TPS 推算
func (a *App) frameDelta(now time.Time) float64 {
	dt := 1.0 / float64(ebiten.DefaultTPS)
	if !a.lastUpdate.IsZero() {
		dt = now.Sub(a.lastUpdate).Seconds()
	}
	a.lastUpdate = now
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}
	return dt
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// SetAcceleration 转发加速度计读数给当前场景（移动端）
func (a *App) SetAcceleration(x, y, z float64) {
	if scene, ok := a.sceneManager.GetCurrentScene().(*scenes.DigScene); ok {
		scene.SetAcceleration(x, y, z)
	}
}

// Close 关闭当前场景
func (a *App) Close() {
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
