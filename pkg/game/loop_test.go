package game

import "testing"

func TestFixedStepper_Advance(t *testing.T) {
	tests := []struct {
		name      string
		step      float64
		maxSteps  int
		frames    []float64
		wantSteps []int
	}{
		{"正好一步", 0.25, 0, []float64{0.25}, []int{1}},
		{"累加到一步", 0.25, 0, []float64{0.125, 0.125}, []int{0, 1}},
		{"一帧多步", 0.25, 0, []float64{0.75}, []int{3}},
		{"超出上限丢弃", 0.25, 2, []float64{1.5, 0.25}, []int{2, 1}},
		{"步长为零", 0, 0, []float64{1}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFixedStepper(tt.step, tt.maxSteps)
			for i, dt := range tt.frames {
				calls := 0
				n := f.Advance(dt, func(step float64) {
					if step != tt.step {
						t.Errorf("step = %v, want %v", step, tt.step)
					}
					calls++
				})
				if n != tt.wantSteps[i] || calls != n {
					t.Errorf("帧 #%d: n=%d calls=%d, want %d", i, n, calls, tt.wantSteps[i])
				}
			}
		})
	}
}

// TestFixedStepper_Total 不同帧率下同样的时间执行同样多的固定步
func TestFixedStepper_Total(t *testing.T) {
	tests := []struct {
		name   string
		fps    int
		frames int
		want   int
	}{
		{"30 帧 3 秒", 30, 90, 150},
		{"60 帧 3 秒", 60, 180, 150},
		{"120 帧 3 秒", 120, 360, 150},
		{"30 帧 0.3 秒", 30, 9, 15},
		{"120 帧 0.3 秒", 120, 36, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFixedStepper(0.02, 5)
			dt := 1 / float64(tt.fps)
			for i := 0; i < tt.frames; i++ {
				f.Advance(dt, func(float64) {})
			}
			if got := f.Total(); got != tt.want {
				t.Errorf("Total = %d, want %d", got, tt.want)
			}
		})
	}
}
