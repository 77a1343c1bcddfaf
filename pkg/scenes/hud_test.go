package scenes

import (
	"errors"
	"strings"
	"testing"

	"github.com/gonewx/drillship/pkg/types"
)

func TestStatusLines(t *testing.T) {
	snap := Snapshot{Mode: types.ModeTransitioning, Heading: types.ModeHorizontal, Progress: 0.5, Pending: true}

	tests := []struct {
		name      string
		err       error
		debug     bool
		wantLines int
		wantLast  string
	}{
		{"基本", nil, false, 4, "switch pending"},
		{"调试", nil, true, 6, "cam rot"},
		{"错误在最后一行", errors.New("ship is misaligned"), false, 5, "misaligned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := StatusLines(snap, tt.err, tt.debug)
			if len(lines) != tt.wantLines {
				t.Fatalf("行数 = %d, want %d: %v", len(lines), tt.wantLines, lines)
			}
			if !strings.Contains(lines[len(lines)-1], tt.wantLast) {
				t.Errorf("最后一行 = %q, want 包含 %q", lines[len(lines)-1], tt.wantLast)
			}
		})
	}

	if first := StatusLines(snap, nil, false)[0]; !strings.Contains(first, "transitioning -> horizontal") || !strings.Contains(first, "50%") {
		t.Errorf("第一行 = %q", first)
	}
}
