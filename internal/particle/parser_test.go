package particle

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/decker502/particles/pkg/embedded"
)

// TestLoadPresetFile_MatchesBuiltins data/presets.yaml 必须与内置预设完全一致
func TestLoadPresetFile_MatchesBuiltins(t *testing.T) {
	configs, err := LoadPresetFile("../../data/presets.yaml")
	if err != nil {
		t.Fatalf("Failed to load presets.yaml: %v", err)
	}

	builtins := BuiltinPresets()
	if len(configs) != len(builtins) {
		t.Fatalf("Expected %d presets, got %d", len(builtins), len(configs))
	}

	for i := range builtins {
		if !reflect.DeepEqual(configs[i], builtins[i]) {
			t.Errorf("Preset %s differs from built-in:\n file:    %+v\n builtin: %+v",
				builtins[i].Name, configs[i], builtins[i])
		}
	}
}

// TestLoadEmbeddedPresets 测试从 embedded FS 读取
func TestLoadEmbeddedPresets(t *testing.T) {
	embedded.Init(os.DirFS("../.."))

	configs, err := LoadEmbeddedPresets("data/presets.yaml")
	if err != nil {
		t.Fatalf("Failed to load embedded presets: %v", err)
	}
	if len(configs) != len(Modes()) {
		t.Errorf("Expected %d presets, got %d", len(Modes()), len(configs))
	}

	if _, err := LoadEmbeddedPresets("data/missing.yaml"); err == nil {
		t.Error("Expected error for missing embedded file")
	}
}

// TestParsePresets_Defaults 测试缺省字段使用默认值
func TestParsePresets_Defaults(t *testing.T) {
	doc := `
presets:
  - name: Minimal
    images: [dot]
    count: 3
`
	configs, err := ParsePresets([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePresets failed: %v", err)
	}

	want := DefaultEmitterConfig()
	want.Name = "Minimal"
	want.Images = []string{"dot"}
	want.Count = 3

	if !reflect.DeepEqual(configs[0], want) {
		t.Errorf("Expected defaults:\n got:  %+v\n want: %+v", configs[0], want)
	}
}

// TestParsePresets_PartialNested 测试嵌套对象只给出部分分量时其余分量保留默认值
func TestParsePresets_PartialNested(t *testing.T) {
	doc := `
presets:
  - name: Partial
    images: [dot]
    count: 1
    creationPoint: {x: 0.2}
    creationRange: {height: 0.3}
`
	configs, err := ParsePresets([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePresets failed: %v", err)
	}

	def := DefaultEmitterConfig()
	got := configs[0]
	if got.CreationPoint.X != 0.2 || got.CreationPoint.Y != def.CreationPoint.Y {
		t.Errorf("creationPoint = %+v, want {X:0.2 Y:%v}", got.CreationPoint, def.CreationPoint.Y)
	}
	if got.CreationRange.Width != def.CreationRange.Width || got.CreationRange.Height != 0.3 {
		t.Errorf("creationRange = %+v, want {Width:%v Height:0.3}", got.CreationRange, def.CreationRange.Width)
	}
}

// TestParsePresets_Overrides 测试显式字段覆盖默认值（包括显式的 0）
func TestParsePresets_Overrides(t *testing.T) {
	doc := `
presets:
  - name: Custom
    images: [a, b]
    count: 10
    creationPoint: {x: 0.1, y: 0.9}
    colors: ["#00ff00", blue]
    blendMode: additive
    angle: 1.5
    rotationSpeed: -pi/2
    opacity: 0
    scale: 2
    speed: 0
    animation: {curve: easeIn}
`
	configs, err := ParsePresets([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePresets failed: %v", err)
	}
	c := configs[0]

	if c.CreationPoint != (Point{X: 0.1, Y: 0.9}) {
		t.Errorf("CreationPoint = %+v", c.CreationPoint)
	}
	if len(c.Colors) != 2 || c.Colors[0].G != 255 || c.Colors[1].B != 255 {
		t.Errorf("Colors = %+v", c.Colors)
	}
	if c.BlendMode != BlendAdditive {
		t.Errorf("BlendMode = %v", c.BlendMode)
	}
	if c.Angle != 1.5 {
		t.Errorf("Angle = %v", c.Angle)
	}
	if c.RotationSpeed >= 0 {
		t.Errorf("RotationSpeed = %v, want negative", c.RotationSpeed)
	}
	if c.Opacity != 0 || c.Speed != 0 || c.Scale != 2 {
		t.Errorf("Opacity/Speed/Scale = %v/%v/%v", c.Opacity, c.Speed, c.Scale)
	}
	// duration 缺省时保持 1 秒
	if c.Animation != (Animation{Curve: CurveEaseIn, Duration: 1}) {
		t.Errorf("Animation = %+v", c.Animation)
	}
}

// TestParsePresets_Errors 测试错误处理
func TestParsePresets_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"无效 YAML", "presets: [", "failed to parse presets"},
		{"空列表", "presets: []", "no presets"},
		{"未知颜色", "presets:\n  - name: X\n    colors: [mauve-ish]", "preset X: colors"},
		{"未知混合模式", "presets:\n  - name: X\n    blendMode: overlay", "blendMode"},
		{"未知曲线", "presets:\n  - name: X\n    animation: {curve: spring}", "animation"},
		{"非法角度", "presets:\n  - angle: north", "invalid angle"},
		{"角度非标量", "presets:\n  - name: X\n    angle: [1, 2]", "scalar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePresets([]byte(tt.doc))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestLoadPresetFile_Errors 测试文件读取错误
func TestLoadPresetFile_Errors(t *testing.T) {
	if _, err := LoadPresetFile("nonexistent.yaml"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("presets: {"), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	_, err := LoadPresetFile(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error naming %s, got %v", path, err)
	}
}
