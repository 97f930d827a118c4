package particle

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/particles/pkg/embedded"
)

// presetFile is the on-disk layout of a preset document (data/presets.yaml).
//
// Optional fields are pointers: a missing key keeps the DefaultEmitterConfig
// value instead of zeroing it.
type presetFile struct {
	Presets []presetDoc `yaml:"presets"`
}

type presetDoc struct {
	Name          string    `yaml:"name"`
	Images        []string  `yaml:"images"`
	Count         int       `yaml:"count"`
	CreationPoint *pointDoc `yaml:"creationPoint"`
	CreationRange *sizeDoc  `yaml:"creationRange"`
	Colors        []string  `yaml:"colors"`
	BlendMode     string    `yaml:"blendMode"`
	Angle         *angleDoc `yaml:"angle"`
	AngleRange    *angleDoc `yaml:"angleRange"`

	Opacity      *float64 `yaml:"opacity"`
	OpacityRange *float64 `yaml:"opacityRange"`
	OpacitySpeed *float64 `yaml:"opacitySpeed"`

	Rotation      *angleDoc `yaml:"rotation"`
	RotationRange *angleDoc `yaml:"rotationRange"`
	RotationSpeed *angleDoc `yaml:"rotationSpeed"`

	Scale      *float64 `yaml:"scale"`
	ScaleRange *float64 `yaml:"scaleRange"`
	ScaleSpeed *float64 `yaml:"scaleSpeed"`

	Speed      *float64 `yaml:"speed"`
	SpeedRange *float64 `yaml:"speedRange"`

	Animation               *animationDoc `yaml:"animation"`
	AnimationDelayThreshold *float64      `yaml:"animationDelayThreshold"`
}

// pointDoc 和 sizeDoc 的分量单独可选，缺省分量保留默认值
type pointDoc struct {
	X *float64 `yaml:"x"`
	Y *float64 `yaml:"y"`
}

type sizeDoc struct {
	Width  *float64 `yaml:"width"`
	Height *float64 `yaml:"height"`
}

type animationDoc struct {
	Curve    string   `yaml:"curve"`
	Duration *float64 `yaml:"duration"`
}

// angleDoc accepts any ParseAngle format, including bare YAML numbers.
type angleDoc struct {
	Value Angle
}

func (a *angleDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: angle must be a scalar", node.Line)
	}
	v, err := ParseAngle(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	a.Value = v
	return nil
}

// ParsePresets parses a YAML preset document into emitter configurations.
//
// Example document:
//
//	presets:
//	  - name: Rain
//	    images: [line]
//	    count: 100
//	    angle: 180deg
//	    colors: ["rgb(0.8, 0.8, 1)"]
func ParsePresets(data []byte) ([]EmitterConfig, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("preset document contains no presets")
	}

	configs := make([]EmitterConfig, 0, len(file.Presets))
	for i, doc := range file.Presets {
		cfg, err := doc.toConfig()
		if err != nil {
			name := doc.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// LoadPresetFile reads and parses a preset document from the filesystem.
func LoadPresetFile(path string) ([]EmitterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}
	configs, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return configs, nil
}

// LoadEmbeddedPresets reads and parses a preset document from the embedded
// data FS. embedded.Init must have been called.
func LoadEmbeddedPresets(path string) ([]EmitterConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}
	configs, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return configs, nil
}

func (d presetDoc) toConfig() (EmitterConfig, error) {
	c := DefaultEmitterConfig()
	c.Name = d.Name
	c.Images = d.Images
	c.Count = d.Count

	if d.CreationPoint != nil {
		setFloat(&c.CreationPoint.X, d.CreationPoint.X)
		setFloat(&c.CreationPoint.Y, d.CreationPoint.Y)
	}
	if d.CreationRange != nil {
		setFloat(&c.CreationRange.Width, d.CreationRange.Width)
		setFloat(&c.CreationRange.Height, d.CreationRange.Height)
	}

	if len(d.Colors) > 0 {
		c.Colors = make([]color.NRGBA, 0, len(d.Colors))
		for _, s := range d.Colors {
			col, err := ParseColor(s)
			if err != nil {
				return c, fmt.Errorf("colors: %w", err)
			}
			c.Colors = append(c.Colors, col)
		}
	}

	blend, err := ParseBlendMode(d.BlendMode)
	if err != nil {
		return c, fmt.Errorf("blendMode: %w", err)
	}
	c.BlendMode = blend

	setAngle(&c.Angle, d.Angle)
	setAngle(&c.AngleRange, d.AngleRange)
	setAngle(&c.Rotation, d.Rotation)
	setAngle(&c.RotationRange, d.RotationRange)
	setAngle(&c.RotationSpeed, d.RotationSpeed)

	setFloat(&c.Opacity, d.Opacity)
	setFloat(&c.OpacityRange, d.OpacityRange)
	setFloat(&c.OpacitySpeed, d.OpacitySpeed)
	setFloat(&c.Scale, d.Scale)
	setFloat(&c.ScaleRange, d.ScaleRange)
	setFloat(&c.ScaleSpeed, d.ScaleSpeed)
	setFloat(&c.Speed, d.Speed)
	setFloat(&c.SpeedRange, d.SpeedRange)
	setFloat(&c.AnimationDelayThreshold, d.AnimationDelayThreshold)

	if d.Animation != nil {
		curve, err := ParseCurve(d.Animation.Curve)
		if err != nil {
			return c, fmt.Errorf("animation: %w", err)
		}
		c.Animation.Curve = curve
		setFloat(&c.Animation.Duration, d.Animation.Duration)
	}

	return c, nil
}

func setAngle(dst *Angle, src *angleDoc) {
	if src != nil {
		*dst = src.Value
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
