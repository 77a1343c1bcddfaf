// rigterm 在终端中运行挖掘场景
//
// 方向键/WASD 加速，空格制动，Tab/Enter 切换模式，Q/W/E 模拟朝向，
// R 重新开始，Esc 或 Ctrl-C 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/game"
	"github.com/gonewx/drillship/pkg/scenes"
	"github.com/gonewx/drillship/pkg/termview"
)

var (
	dataDir = flag.String("data", "data", "数据目录")
	fps     = flag.Int("fps", 30, "每秒帧数")
	debug   = flag.Bool("debug", false, "启用调试模式")
	logFile = flag.String("log", "", "日志文件（终端界面占用标准输出）")
)

type viewer struct {
	screen   tcell.Screen
	scenes   *game.SceneManager
	controls *termview.KeyControls
}

func newViewer(bundle *config.Bundle) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &viewer{
		screen:   screen,
		scenes:   game.NewSceneManager(),
		controls: termview.NewKeyControls(nil),
	}
	v.scenes.SetSceneFactory(func(name string) (game.Scene, error) {
		return scenes.NewDigScene(bundle, v.controls)
	})
	if err := v.scenes.Load(scenes.DigSceneName); err != nil {
		screen.Fini()
		return nil, err
	}
	return v, nil
}

func (v *viewer) scene() *scenes.DigScene {
	s, _ := v.scenes.GetCurrentScene().(*scenes.DigScene)
	return s
}

// handleInput 返回 false 表示退出
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
			if err := v.scenes.Reload(); err != nil {
				log.Printf("[rigterm] 重新开始失败: %v", err)
			}
			return true
		}
		v.controls.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	s := v.scene()
	if s == nil {
		return
	}
	snap := s.Snapshot()
	lastErr := s.LastError()
	termview.Draw(v.screen, termview.Frame{
		Camera:      s.Camera(),
		Live:        s.Live(),
		Depth:       snap.Depth,
		Lateral:     snap.LateralOffset,
		Tiles:       s.Tiles(),
		Branches:    s.Branches(),
		Status:      scenes.StatusLines(snap, lastErr, s.Debug()),
		StatusError: lastErr != nil,
	})
	v.screen.Show()
}

func (v *viewer) run(frameRate int) {
	interval := time.Second / time.Duration(frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > 0.1 {
				dt = 0.1
			}
			v.scenes.Update(dt)
			v.draw()
		}
	}
}

func (v *viewer) cleanup() {
	v.scenes.Close()
	v.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	if *fps <= 0 {
		*fps = 30
	}

	bundle, err := config.LoadBundle(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		bundle.Ship.Debug = true
	}

	v, err := newViewer(bundle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	v.run(*fps)
}
