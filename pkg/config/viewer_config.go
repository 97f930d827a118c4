package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/particles/internal/particle"
	"github.com/decker502/particles/pkg/embedded"
)

// ViewerConfig 预览窗口配置
//
// 配置文件位置: data/viewer.yaml
type ViewerConfig struct {
	// Window 窗口尺寸与标题
	Window WindowConfig `yaml:"window"`

	// Background 背景色（颜色名、"#rrggbb" 或 "rgb(r, g, b)"）
	Background string `yaml:"background"`

	// DefaultMode 启动时的预设名称（如 "Confetti"）
	DefaultMode string `yaml:"defaultMode"`

	// Presets 预设文件路径（embedded FS 内，必须以 data/ 开头）
	Presets string `yaml:"presets"`

	// Seed 随机种子，0 表示每次运行随机
	Seed uint64 `yaml:"seed"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultViewerConfig 返回默认配置
func DefaultViewerConfig() *ViewerConfig {
	return &ViewerConfig{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Particles",
		},
		Background:  "black",
		DefaultMode: particle.ModeConfetti.String(),
		Presets:     "data/presets.yaml",
	}
}

// ParseViewerConfig 解析 YAML 格式的预览配置
//
// 未出现的字段保留 DefaultViewerConfig 的值。
func ParseViewerConfig(data []byte) (*ViewerConfig, error) {
	config := DefaultViewerConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse viewer config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid viewer config: %w", err)
	}
	return config, nil
}

// LoadViewerConfig 从文件系统加载预览配置
//
// 参数:
//   - path: 配置文件路径（如 "data/viewer.yaml"）
func LoadViewerConfig(path string) (*ViewerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read viewer config: %w", err)
	}
	return ParseViewerConfig(data)
}

// LoadEmbeddedViewerConfig 从 embedded FS 加载预览配置
func LoadEmbeddedViewerConfig(path string) (*ViewerConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read viewer config: %w", err)
	}
	return ParseViewerConfig(data)
}

// Validate 验证配置有效性
//
// 检查：
//   - 窗口尺寸必须为正
//   - 背景色可解析
//
// defaultMode 不在这里校验：预设文件可以定义内置模式以外的名字，
// 启动时按已加载的预设目录解析，找不到时回退到第一个预设。
func (c *ViewerConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := particle.ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

// BackgroundColor 返回解析后的背景色，解析失败时返回黑色
func (c *ViewerConfig) BackgroundColor() color.NRGBA {
	bg, err := particle.ParseColor(c.Background)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return bg
}
