package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/particles/internal/particle"
	"github.com/decker502/particles/pkg/systems"
)

// 每个终端单元格对应的画布像素块
const (
	cellWidth  = 8
	cellHeight = 16
)

// 低于该不透明度的粒子不绘制
const minVisibleOpacity = 0.05

// Cell 一个待绘制的终端单元格
type Cell struct {
	X, Y  int
	Glyph rune
	Color tcell.Color
}

// glyphFor 返回图片 ID 对应的字符
func glyphFor(image string) rune {
	switch image {
	case systems.SpriteConfetti:
		return '▬'
	case systems.SpriteSpark:
		return '•'
	case systems.SpriteLine:
		return '│'
	default:
		return '■'
	}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// parseBackground 解析背景色，格式与预设文件中的颜色相同
func parseBackground(s string) (colorful.Color, error) {
	c, err := particle.ParseColor(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("background: %w", err)
	}
	return toColorful(c), nil
}

// cellColor 把粒子颜色按不透明度与背景混合
func cellColor(c color.NRGBA, opacity float64, background colorful.Color) tcell.Color {
	return toTcell(background.BlendRgb(toColorful(c), math.Max(0, math.Min(opacity, 1))))
}

// layoutCells 把采样映射到 cols×rows 的单元格网格。
// 同一单元格中后绘制的粒子覆盖先绘制的，与画布上的绘制顺序一致。
func layoutCells(samples []systems.ParticleSample, cols, rows int, background colorful.Color) []Cell {
	cells := make([]Cell, 0, len(samples))
	index := make(map[[2]int]int, len(samples))

	for _, s := range samples {
		if s.Opacity <= minVisibleOpacity {
			continue
		}
		x := int(math.Floor(s.X / cellWidth))
		y := int(math.Floor(s.Y / cellHeight))
		if x < 0 || y < 0 || x >= cols || y >= rows {
			continue
		}

		cell := Cell{X: x, Y: y, Glyph: glyphFor(s.Image), Color: cellColor(s.Color, s.Opacity, background)}
		if i, ok := index[[2]int{x, y}]; ok {
			cells[i] = cell
			continue
		}
		index[[2]int{x, y}] = len(cells)
		cells = append(cells, cell)
	}
	return cells
}
