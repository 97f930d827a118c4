package utils

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		x, y          int
		width, height float64
		wantX, wantY  float64
	}{
		{"中心", 400, 300, 800, 600, 0.5, 0.5},
		{"原点", 0, 0, 800, 600, 0, 0},
		{"越界截断", 900, -10, 800, 600, 1, 0},
		{"零画布", 10, 10, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := Normalize(tt.x, tt.y, tt.width, tt.height)
			if gx != tt.wantX || gy != tt.wantY {
				t.Errorf("Normalize(%d, %d, %v, %v) = (%v, %v), want (%v, %v)",
					tt.x, tt.y, tt.width, tt.height, gx, gy, tt.wantX, tt.wantY)
			}
		})
	}
}
