package systems

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 粒子图片 ID（预设中 Images 引用的名字）
const (
	SpriteConfetti = "confetti"
	SpriteSpark    = "spark"
	SpriteLine     = "line"
)

// SpriteFactory 按图片 ID 程序化生成粒子贴图。
//
// 所有贴图都是白色的，颜色在绘制时通过顶点颜色乘入，
// 因此同一张贴图可以被不同颜色的粒子共享并批量绘制。
type SpriteFactory struct {
	cache map[string]*ebiten.Image
}

// NewSpriteFactory 创建贴图工厂
func NewSpriteFactory() *SpriteFactory {
	return &SpriteFactory{
		cache: make(map[string]*ebiten.Image),
	}
}

// SpriteSize 返回图片 ID 对应的贴图尺寸（像素）
func SpriteSize(id string) (w, h int) {
	switch id {
	case SpriteConfetti:
		return 8, 4
	case SpriteSpark:
		return 16, 16
	case SpriteLine:
		return 2, 16
	default:
		return 6, 6
	}
}

// Get 返回图片 ID 对应的贴图，首次请求时生成并缓存
func (f *SpriteFactory) Get(id string) *ebiten.Image {
	if img, ok := f.cache[id]; ok {
		return img
	}

	w, h := SpriteSize(id)
	img := ebiten.NewImage(w, h)

	switch id {
	case SpriteConfetti:
		img.Fill(color.White)

	case SpriteSpark:
		// 径向衰减的光点：由外向内叠加半透明圆
		cx, cy := float32(w)/2, float32(h)/2
		const rings = 6
		for i := 0; i < rings; i++ {
			r := cx * float32(rings-i) / rings
			a := uint8(40 + 215*i/(rings-1))
			vector.DrawFilledCircle(img, cx, cy, r, color.NRGBA{R: 255, G: 255, B: 255, A: a}, true)
		}

	case SpriteLine:
		// 上淡下浓的竖直条纹
		for y := 0; y < h; y++ {
			a := uint8(60 + 195*y/(h-1))
			vector.DrawFilledRect(img, 0, float32(y), float32(w), 1, color.NRGBA{R: 255, G: 255, B: 255, A: a}, false)
		}

	default:
		log.Printf("[SpriteFactory] Warning: unknown image %q, using square", id)
		img.Fill(color.White)
	}

	f.cache[id] = img
	return img
}

// Clear 释放所有缓存的贴图
func (f *SpriteFactory) Clear() {
	for id, img := range f.cache {
		img.Deallocate()
		delete(f.cache, id)
	}
}
