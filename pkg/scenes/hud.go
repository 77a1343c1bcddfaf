package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 16

var (
	hudBackground = color.RGBA{A: 160}
	hudError      = color.RGBA{R: 255, G: 96, B: 96, A: 255}
)

// hud 状态栏
type hud struct {
	face text.Face
}

func newHUD() *hud {
	return &hud{face: text.NewGoXFace(basicfont.Face7x13)}
}

// StatusLines 状态栏文本，图形界面与终端界面共用
func StatusLines(snap Snapshot, lastErr error, debug bool) []string {
	lines := []string{
		fmt.Sprintf("mode %s -> %s  %.0f%%", snap.Mode, snap.Heading, snap.Progress*100),
		fmt.Sprintf("%s  v=(%.2f, %.2f)", snap.Status, snap.Velocity.X(), snap.Velocity.Y()),
		fmt.Sprintf("depth %.1f  branches %d", snap.Depth, snap.Branches),
	}
	if snap.Pending {
		lines = append(lines, "switch pending: braking")
	}
	if debug {
		lines = append(lines,
			fmt.Sprintf("frame %d  steps %d  t=%.2fs  tiles %d", snap.Frame, snap.FixedSteps, snap.Time, snap.Tiles),
			fmt.Sprintf("cam rot %.1f size %.2f  lat %.2f", snap.CameraRotation, snap.CameraSize, snap.LateralOffset),
		)
	}
	if lastErr != nil {
		lines = append(lines, lastErr.Error())
	}
	return lines
}

// Draw 绘制状态栏
func (h *hud) Draw(screen *ebiten.Image, snap Snapshot, lastErr error, debug bool) {
	lines := StatusLines(snap, lastErr, debug)
	height := float32(len(lines)*hudLineHeight + 8)
	vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), height, hudBackground, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(4+i*hudLineHeight))
		if lastErr != nil && i == len(lines)-1 {
			op.ColorScale.ScaleWithColor(hudError)
		}
		text.Draw(screen, line, h.face, op)
	}
}
