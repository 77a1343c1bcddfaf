// rigtrace 无窗口运行挖掘场景并输出逐帧状态
//
// 用法:
//
//	go run ./cmd/rigtrace -script "down*120,toggle,idle*90" -every 10
//	go run ./cmd/rigtrace -script "toggle,idle*60" -format yaml
//
// 脚本语法见 systems.ParseScript；脚本结束后继续以空输入运行到 -frames 帧。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/scenes"
	"github.com/gonewx/drillship/pkg/systems"
)

var (
	script  = flag.String("script", "", "输入脚本，例如 \"down*60,toggle,idle*30\"")
	frames  = flag.Int("frames", 0, "运行帧数（0 表示脚本长度）")
	dataDir = flag.String("data", "data", "数据目录")
	dt      = flag.Float64("dt", 1.0/60, "每帧时间（秒）")
	every   = flag.Int("every", 1, "每隔多少帧输出一次")
	format  = flag.String("format", "text", "输出格式: text 或 yaml")
	debug   = flag.Bool("debug", false, "启用调试模式（状态不变量违规时 panic）")
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

// options 一次运行的参数
type options struct {
	Script  string
	Frames  int
	DataDir string
	DT      float64
	Every   int
	Format  string
	Debug   bool
}

// record 一帧的输出记录
type record struct {
	Frame    int       `yaml:"frame"`
	Steps    int       `yaml:"steps"`
	Time     float64   `yaml:"time"`
	Mode     string    `yaml:"mode"`
	Heading  string    `yaml:"heading"`
	Progress float64   `yaml:"progress"`
	Status   string    `yaml:"status"`
	Velocity []float64 `yaml:"velocity,flow"`
	Depth    float64   `yaml:"depth"`
	Lateral  float64   `yaml:"lateral"`
	Pending  bool      `yaml:"pending,omitempty"`
	Camera   []float64 `yaml:"camera,flow"`
	Branches int       `yaml:"branches"`
	Error    string    `yaml:"error,omitempty"`
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	err := run(os.Stdout, options{
		Script:  *script,
		Frames:  *frames,
		DataDir: *dataDir,
		DT:      *dt,
		Every:   *every,
		Format:  *format,
		Debug:   *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "rigtrace: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	if opts.DT <= 0 {
		return fmt.Errorf("dt 必须为正数: %v", opts.DT)
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}
	if opts.Format != "text" && opts.Format != "yaml" {
		return fmt.Errorf("未知输出格式 %q", opts.Format)
	}

	controls, err := systems.ParseScript(opts.Script)
	if err != nil {
		return err
	}
	total := opts.Frames
	if total <= 0 {
		total = controls.Len()
	}

	bundle, err := config.LoadBundle(opts.DataDir)
	if err != nil {
		return err
	}
	if opts.Debug {
		bundle.Ship.Debug = true
	}

	scene, err := scenes.NewDigScene(bundle, controls)
	if err != nil {
		return err
	}
	defer scene.Close()

	var records []record
	for i := 1; i <= total; i++ {
		scene.Update(opts.DT)
		if i%opts.Every != 0 && i != total {
			continue
		}
		rec := newRecord(scene.Snapshot(), scene.LastError())
		if opts.Format == "text" {
			writeText(w, rec)
			continue
		}
		records = append(records, rec)
	}

	if opts.Format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}

func newRecord(snap scenes.Snapshot, lastErr error) record {
	rec := record{
		Frame:    snap.Frame,
		Steps:    snap.FixedSteps,
		Time:     snap.Time,
		Mode:     snap.Mode.String(),
		Heading:  snap.Heading.String(),
		Progress: snap.Progress,
		Status:   snap.Status.String(),
		Velocity: []float64{snap.Velocity.X(), snap.Velocity.Y()},
		Depth:    snap.Depth,
		Lateral:  snap.LateralOffset,
		Pending:  snap.Pending,
		Camera:   []float64{snap.CameraRotation, snap.CameraSize},
		Branches: snap.Branches,
	}
	if lastErr != nil {
		rec.Error = lastErr.Error()
	}
	return rec
}

func writeText(w io.Writer, rec record) {
	line := fmt.Sprintf("%5d %7.3fs %-13s -> %-10s p=%.3f %-11s v=(%+.2f,%+.2f) depth=%7.2f lat=%+6.2f cam=(%6.1f,%.2f) br=%d",
		rec.Frame, rec.Time, rec.Mode, rec.Heading, rec.Progress, rec.Status,
		rec.Velocity[0], rec.Velocity[1], rec.Depth, rec.Lateral, rec.Camera[0], rec.Camera[1], rec.Branches)
	if rec.Pending {
		line += " pending"
	}
	if rec.Error != "" {
		line += " err=" + rec.Error
	}
	fmt.Fprintln(w, line)
}
