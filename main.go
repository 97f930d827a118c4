// Package main provides the particle field viewer.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--mode <name>       Start with a preset (e.g., --mode=Rain)
//	--seed <n>          Random seed (0 = config seed, or time-based when that is 0 too)
//	--presets <file>    Load presets from an external YAML file
//	--verbose           Enable verbose logging (default off)
//
// Controls:
//
//	Left/Right Arrow  - Previous/next preset
//	1-7               - Select preset by index
//	Space             - Regenerate the field
//	P                 - Toggle pause
//	H                 - Toggle HUD
//	O                 - Open a preset file
//	Mouse Click/Tap   - Move the emitter to the pointer and regenerate
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/ncruces/zenity"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/particles/internal/particle"
	"github.com/decker502/particles/pkg/config"
	"github.com/decker502/particles/pkg/embedded"
	"github.com/decker502/particles/pkg/game"
	"github.com/decker502/particles/pkg/systems"
	"github.com/decker502/particles/pkg/utils"
)

const (
	appName          = "particles"
	viewerConfigPath = "data/viewer.yaml"
)

var (
	modeFlag    = flag.String("mode", "", "Start with a specific preset name")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 = use config or time)")
	presetsFlag = flag.String("presets", "", "Load presets from an external YAML file")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// ViewerGame implements ebiten.Game for the particle viewer
type ViewerGame struct {
	config   *config.ViewerConfig
	settings *game.SettingsManager

	field    *systems.ParticleFieldSystem
	renderer *systems.RenderSystem
	sprites  *systems.SpriteFactory

	catalog      *particle.Catalog
	currentIndex int
	seed         uint64

	canvas     particle.CanvasExtent
	background color.NRGBA

	hudFace       text.Face
	hudOpts       text.DrawOptions
	statusMessage string

	dialogResult chan dialogResult
	dialogOpen   bool
}

type dialogResult struct {
	path    string
	presets []particle.EmitterConfig
	err     error
}

// NewViewerGame creates the viewer with its config, presets and persisted settings
func NewViewerGame() (*ViewerGame, error) {
	embedded.Init(dataFS)

	cfg, err := config.LoadEmbeddedViewerConfig(viewerConfigPath)
	if err != nil {
		log.Printf("[Viewer] Warning: %v (using defaults)", err)
		cfg = config.DefaultViewerConfig()
	}

	storage, err := game.OpenStorage(appName)
	if err != nil {
		log.Printf("[Viewer] Warning: %v (settings will not persist)", err)
	}
	settings := game.NewSettingsManager(storage)

	catalog, err := loadCatalog(cfg, settings)
	if err != nil {
		return nil, err
	}

	seed := *seedFlag
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sprites := systems.NewSpriteFactory()
	g := &ViewerGame{
		config:       cfg,
		settings:     settings,
		field:        systems.NewParticleFieldSystem(particle.NewSeededGenerator(seed)),
		renderer:     systems.NewRenderSystem(sprites),
		sprites:      sprites,
		catalog:      catalog,
		seed:         seed,
		canvas:       particle.CanvasExtent{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)},
		background:   cfg.BackgroundColor(),
		hudFace:      text.NewGoXFace(basicfont.Face7x13),
		dialogResult: make(chan dialogResult, 1),
	}
	g.hudOpts.LineSpacing = 18

	g.currentIndex = g.initialIndex()
	if err := g.field.Reset(g.catalog.At(g.currentIndex), g.canvas); err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", g.catalog.At(g.currentIndex).Name, err)
	}
	g.updateStatusMessage()

	log.Printf("[Viewer] Initialized: %d presets, seed=%d", catalog.Len(), seed)
	return g, nil
}

// loadCatalog 按优先级加载预设：命令行文件 > 上次打开的文件 > 嵌入文件 > 内置表
func loadCatalog(cfg *config.ViewerConfig, settings *game.SettingsManager) (*particle.Catalog, error) {
	if *presetsFlag != "" {
		presets, err := particle.LoadPresetFile(*presetsFlag)
		if err != nil {
			return nil, err
		}
		return particle.NewCatalog(presets)
	}

	if path := settings.GetSettings().PresetFile; path != "" {
		presets, err := particle.LoadPresetFile(path)
		if err == nil {
			return particle.NewCatalog(presets)
		}
		log.Printf("[Viewer] Warning: %v (falling back to built-in presets)", err)
		settings.SetPresetFile("")
	}

	presets, err := particle.LoadEmbeddedPresets(cfg.Presets)
	if err != nil {
		log.Printf("[Viewer] Warning: %v (using built-in presets)", err)
		return particle.BuiltinCatalog(), nil
	}
	return particle.NewCatalog(presets)
}

func (g *ViewerGame) initialIndex() int {
	for _, name := range []string{*modeFlag, g.settings.GetSettings().LastMode, g.config.DefaultMode} {
		if name == "" {
			continue
		}
		if i, ok := g.catalog.Index(name); ok {
			return i
		}
		log.Printf("[Viewer] Warning: preset %q not found", name)
	}
	return 0
}

// Update handles input and advances the field clock
func (g *ViewerGame) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	g.pollDialog()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	// 布局尺寸变化时重新生成
	if err := g.field.Resize(g.canvas); err != nil {
		log.Printf("[Viewer] Warning: resize failed: %v", err)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.selectPreset(g.currentIndex - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.selectPreset(g.currentIndex + 1)
	}

	for i := 0; i < 7 && i < g.catalog.Len(); i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key(int(ebiten.Key1) + i)) {
			g.selectPreset(i)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := g.field.Regenerate(); err != nil {
			g.statusMessage = err.Error()
		} else {
			g.statusMessage = "Regenerated"
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.field.SetPaused(!g.field.Paused())
		if g.field.Paused() {
			g.statusMessage = "PAUSED - Press P to resume"
		} else {
			g.statusMessage = "Resumed"
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s := g.settings.GetSettings()
		g.settings.SetShowHUD(!s.ShowHUD)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.openPresetDialog()
	}

	if pressed, x, y := utils.PointerJustPressed(); pressed {
		g.moveEmitter(x, y)
	}

	g.field.Update(dt)
	return nil
}

func (g *ViewerGame) selectPreset(index int) {
	n := g.catalog.Len()
	index = ((index % n) + n) % n

	cfg := g.catalog.At(index)
	if err := g.field.Reset(cfg, g.canvas); err != nil {
		g.statusMessage = err.Error()
		log.Printf("[Viewer] Failed to select %s: %v", cfg.Name, err)
		return
	}

	g.currentIndex = index
	g.settings.SetLastMode(cfg.Name)
	g.updateStatusMessage()
}

// moveEmitter 把发射点移到指针位置并重新生成
func (g *ViewerGame) moveEmitter(x, y int) {
	cfg := g.field.Config()
	cfg.CreationPoint.X, cfg.CreationPoint.Y = utils.Normalize(x, y, g.canvas.Width, g.canvas.Height)
	if err := g.field.Reset(cfg, g.canvas); err != nil {
		g.statusMessage = err.Error()
		return
	}
	g.statusMessage = fmt.Sprintf("Emitter at (%.2f, %.2f)", cfg.CreationPoint.X, cfg.CreationPoint.Y)
}

// openPresetDialog 在后台打开文件对话框，结果在 pollDialog 中处理
func (g *ViewerGame) openPresetDialog() {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	g.statusMessage = "Opening preset file..."

	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Open Preset File"),
			zenity.FileFilters{{
				Name:     "Preset YAML",
				Patterns: []string{"*.yaml", "*.yml"},
			}},
		)
		if err != nil {
			g.dialogResult <- dialogResult{err: err}
			return
		}
		presets, err := particle.LoadPresetFile(path)
		g.dialogResult <- dialogResult{path: path, presets: presets, err: err}
	}()
}

func (g *ViewerGame) pollDialog() {
	select {
	case res := <-g.dialogResult:
		g.dialogOpen = false
		g.applyDialogResult(res)
	default:
	}
}

func (g *ViewerGame) applyDialogResult(res dialogResult) {
	if res.err != nil {
		if errors.Is(res.err, zenity.ErrCanceled) {
			g.updateStatusMessage()
			return
		}
		g.statusMessage = "Open failed: " + res.err.Error()
		log.Printf("[Viewer] Warning: %v", res.err)
		return
	}

	catalog, err := particle.NewCatalog(res.presets)
	if err != nil {
		g.statusMessage = "Open failed: " + err.Error()
		return
	}

	prev := g.catalog
	g.catalog = catalog
	g.currentIndex = 0
	if err := g.field.Reset(catalog.At(0), g.canvas); err != nil {
		g.catalog = prev
		g.statusMessage = "Open failed: " + err.Error()
		log.Printf("[Viewer] Warning: %v", err)
		return
	}

	g.settings.SetPresetFile(res.path)
	g.settings.SetLastMode(catalog.At(0).Name)
	g.statusMessage = fmt.Sprintf("Loaded %d presets from %s", catalog.Len(), res.path)
	log.Printf("[Viewer] %s", g.statusMessage)
}

func (g *ViewerGame) updateStatusMessage() {
	cfg := g.catalog.At(g.currentIndex)
	g.statusMessage = fmt.Sprintf("Selected: %s", cfg.Name)
	log.Printf("[Viewer] Current preset: %s (%d/%d)", cfg.Name, g.currentIndex+1, g.catalog.Len())
}

// shutdown 保存设置并释放贴图
func (g *ViewerGame) shutdown() {
	if err := g.settings.Save(); err != nil {
		log.Printf("[Viewer] Warning: %v", err)
	}
	g.sprites.Clear()
}

// Draw renders the field and the HUD
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	g.renderer.Draw(screen, g.field.Samples())

	if g.settings.GetSettings().ShowHUD {
		g.drawHUD(screen)
	}
}

func (g *ViewerGame) drawHUD(screen *ebiten.Image) {
	g.hudOpts.GeoM.Reset()
	g.hudOpts.GeoM.Translate(10, 10)
	g.hudOpts.ColorScale.Reset()
	g.hudOpts.ColorScale.ScaleWithColor(color.RGBA{220, 220, 220, 255})
	text.Draw(screen, strings.Join(g.hudLines(), "\n"), g.hudFace, &g.hudOpts)
}

func (g *ViewerGame) hudLines() []string {
	cfg := g.field.Config()
	return []string{
		fmt.Sprintf("Preset %d/%d: %s%s", g.currentIndex+1, g.catalog.Len(), cfg.Name, storageNote(g.settings.IsPersistent())),
		fmt.Sprintf("Particles: %d  Canvas: %.0fx%.0f  Seed: %d", len(g.field.Instances()), g.canvas.Width, g.canvas.Height, g.seed),
		fmt.Sprintf("Blend: %s  Curve: %s  Duration: %.1fs  t=%.1fs", cfg.BlendMode, cfg.Animation.Curve, cfg.Animation.Duration, g.field.Elapsed()),
		g.statusMessage,
		"<-/-> = Prev/Next  1-7 = Select  Space = Regenerate  Click = Move  P = Pause  H = HUD  O = Open  Q = Quit",
	}
}

// storageNote 存储不可用时提示设置只保存在内存中
func storageNote(persistent bool) string {
	if persistent {
		return ""
	}
	return "  (memory only)"
}

// Layout uses the window size as the canvas extent
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.canvas = particle.CanvasExtent{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

func main() {
	flag.Parse()

	// 默认静音运行；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	log.Println("=== Particle Field Viewer ===")
	log.Printf("Mode: %q  Seed: %d  Presets: %q", *modeFlag, *seedFlag, *presetsFlag)

	g, err := NewViewerGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize viewer: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(g.config.Window.Width, g.config.Window.Height)
	ebiten.SetWindowTitle(g.config.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		os.Exit(1)
	}

	g.shutdown()
	log.Println("Particle viewer closed")
}
