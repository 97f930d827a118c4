package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerJustPressed 检查本帧是否刚刚点击或触摸，触摸优先。
// 返回是否按下以及按下位置（屏幕坐标）。
func PointerJustPressed() (bool, int, int) {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// Normalize 把屏幕坐标换算为相对画布的 [0, 1] 坐标，画布尺寸为 0 时返回 0
func Normalize(x, y int, width, height float64) (float64, float64) {
	var nx, ny float64
	if width > 0 {
		nx = Clamp01(float64(x) / width)
	}
	if height > 0 {
		ny = Clamp01(float64(y) / height)
	}
	return nx, ny
}
