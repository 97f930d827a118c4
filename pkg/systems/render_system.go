package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/particles/internal/particle"
	"github.com/decker502/particles/pkg/utils"
)

// 混合模式
var (
	// blendAdditive 加法混合（发光效果）
	blendAdditive = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}

	// blendScreen 滤色：src + dst*(1-src)
	blendScreen = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}

	// blendMultiply 正片叠底：src*dst + dst*(1-srcA)
	blendMultiply = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
)

// BlendFor 返回混合模式对应的 ebiten 混合参数
func BlendFor(mode particle.BlendMode) ebiten.Blend {
	switch mode {
	case particle.BlendScreen:
		return blendScreen
	case particle.BlendAdditive:
		return blendAdditive
	case particle.BlendMultiply:
		return blendMultiply
	default:
		return ebiten.BlendSourceOver
	}
}

// RenderSystem 把粒子采样绘制到屏幕。
//
// 同一图片、同一混合模式的粒子合并为一次 DrawTriangles 调用：
// 每个粒子 4 个顶点、6 个索引，颜色和不透明度写入顶点颜色。
type RenderSystem struct {
	sprites  *SpriteFactory
	vertices []ebiten.Vertex // 复用，避免每帧分配
	indices  []uint16
	batches  map[batchKey][]int
	order    []batchKey
}

type batchKey struct {
	image string
	blend particle.BlendMode
}

// 单次 DrawTriangles 的顶点上限（uint16 索引）
const maxBatchVertices = math.MaxUint16 - 3

// NewRenderSystem 创建渲染系统
func NewRenderSystem(sprites *SpriteFactory) *RenderSystem {
	return &RenderSystem{
		sprites:  sprites,
		vertices: make([]ebiten.Vertex, 0, 4000), // 预分配：1000 个粒子
		indices:  make([]uint16, 0, 6000),
		batches:  make(map[batchKey][]int),
	}
}

// Draw 绘制所有采样。批次按首次出现的顺序绘制，批次内保持采样顺序。
func (s *RenderSystem) Draw(screen *ebiten.Image, samples []ParticleSample) {
	for k := range s.batches {
		s.batches[k] = s.batches[k][:0]
	}
	s.order = s.order[:0]

	for i, sample := range samples {
		if sample.Opacity <= 0 || sample.Scale == 0 {
			continue
		}
		key := batchKey{image: sample.Image, blend: sample.Blend}
		if len(s.batches[key]) == 0 {
			s.order = append(s.order, key)
		}
		s.batches[key] = append(s.batches[key], i)
	}

	for _, key := range s.order {
		img := s.sprites.Get(key.image)
		w, h := SpriteSize(key.image)

		op := &ebiten.DrawTrianglesOptions{}
		op.AntiAlias = true
		op.Blend = BlendFor(key.blend)

		s.vertices = s.vertices[:0]
		s.indices = s.indices[:0]
		for _, idx := range s.batches[key] {
			if len(s.vertices) >= maxBatchVertices {
				screen.DrawTriangles(s.vertices, s.indices, img, op)
				s.vertices = s.vertices[:0]
				s.indices = s.indices[:0]
			}

			quad := ParticleQuad(samples[idx], float64(w), float64(h))
			base := uint16(len(s.vertices))
			s.vertices = append(s.vertices, quad[:]...)
			s.indices = append(s.indices,
				base+0, base+1, base+2, // 第一个三角形
				base+1, base+3, base+2, // 第二个三角形
			)
		}

		if len(s.vertices) > 0 {
			screen.DrawTriangles(s.vertices, s.indices, img, op)
		}
	}
}

// ParticleQuad 计算单个粒子的 4 个顶点：左上、右上、左下、右下。
// 以采样位置为中心，先旋转、再缩放、最后平移。
func ParticleQuad(sample ParticleSample, w, h float64) [4]ebiten.Vertex {
	corners := [4][2]float64{
		{-w / 2, -h / 2},
		{w / 2, -h / 2},
		{-w / 2, h / 2},
		{w / 2, h / 2},
	}
	src := [4][2]float32{
		{0, 0},
		{float32(w), 0},
		{0, float32(h)},
		{float32(w), float32(h)},
	}

	cosTheta := math.Cos(sample.Rotation)
	sinTheta := math.Sin(sample.Rotation)

	r := float32(sample.Color.R) / 255
	g := float32(sample.Color.G) / 255
	b := float32(sample.Color.B) / 255
	a := float32(sample.Color.A) / 255 * float32(utils.Clamp01(sample.Opacity))

	var quad [4]ebiten.Vertex
	for i, c := range corners {
		x := (c[0]*cosTheta - c[1]*sinTheta) * sample.Scale
		y := (c[0]*sinTheta + c[1]*cosTheta) * sample.Scale

		quad[i] = ebiten.Vertex{
			DstX:   float32(sample.X + x),
			DstY:   float32(sample.Y + y),
			SrcX:   src[i][0],
			SrcY:   src[i][1],
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	return quad
}
