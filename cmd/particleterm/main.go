// Package main provides a terminal preview of the particle presets.
//
// Each terminal cell covers an 8x16 pixel block of the canvas, so the field
// is generated for the terminal size scaled to pixels.
//
// Usage:
//
//	go run ./cmd/particleterm [flags]
//
// Controls:
//
//	Left/Right Arrow  - Previous/next preset
//	1-7               - Select preset by index
//	Space             - Regenerate the field
//	P                 - Toggle pause
//	Q/Escape/Ctrl-C   - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/particles/internal/particle"
	"github.com/decker502/particles/pkg/systems"
)

var (
	modeFlag    = flag.String("mode", "Confetti", "Start with a specific preset name")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 = time-based)")
	presetsFlag = flag.String("presets", "", "Load presets from an external YAML file")
	fpsFlag     = flag.Int("fps", 30, "Target frames per second")
	bgFlag      = flag.String("background", "black", "Background color used to blend faded particles (name, #RRGGBB or rgb())")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging to stderr")
)

// TermPreview 终端预览状态
type TermPreview struct {
	screen       tcell.Screen
	field        *systems.ParticleFieldSystem
	catalog      *particle.Catalog
	currentIndex int
	background   colorful.Color
	cols, rows   int
}

// NewTermPreview 初始化屏幕并生成第一个粒子场
func NewTermPreview(catalog *particle.Catalog, start int, seed uint64, background colorful.Color) (*TermPreview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(toTcell(background)))

	t := &TermPreview{
		screen:       screen,
		field:        systems.NewParticleFieldSystem(particle.NewSeededGenerator(seed)),
		catalog:      catalog,
		currentIndex: start,
		background:   background,
	}
	t.cols, t.rows = screen.Size()

	if err := t.field.Reset(catalog.At(start), t.canvas()); err != nil {
		screen.Fini()
		return nil, err
	}
	return t, nil
}

func (t *TermPreview) canvas() particle.CanvasExtent {
	return particle.CanvasExtent{
		Width:  float64(t.cols * cellWidth),
		Height: float64(t.rows * cellHeight),
	}
}

func (t *TermPreview) selectPreset(index int) {
	n := t.catalog.Len()
	index = ((index % n) + n) % n
	cfg := t.catalog.At(index)
	if err := t.field.Reset(cfg, t.canvas()); err != nil {
		log.Printf("[TermPreview] Failed to select %s: %v", cfg.Name, err)
		return
	}
	t.currentIndex = index
}

// handleEvent 处理一个事件，返回 false 表示退出
func (t *TermPreview) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.cols, t.rows = t.screen.Size()
		if err := t.field.Resize(t.canvas()); err != nil {
			log.Printf("[TermPreview] Warning: resize failed: %v", err)
		}
		t.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			t.selectPreset(t.currentIndex - 1)
		case tcell.KeyRight:
			t.selectPreset(t.currentIndex + 1)
		case tcell.KeyRune:
			switch r := ev.Rune(); {
			case r == 'q' || r == 'Q':
				return false
			case r == ' ':
				if err := t.field.Regenerate(); err != nil {
					log.Printf("[TermPreview] Regenerate failed: %v", err)
				}
			case r == 'p' || r == 'P':
				t.field.SetPaused(!t.field.Paused())
			case r >= '1' && r <= '7':
				if i := int(r - '1'); i < t.catalog.Len() {
					t.selectPreset(i)
				}
			}
		}
	}
	return true
}

func (t *TermPreview) draw() {
	t.screen.Clear()

	base := tcell.StyleDefault.Background(toTcell(t.background))
	for _, c := range layoutCells(t.field.Samples(), t.cols, t.rows, t.background) {
		t.screen.SetContent(c.X, c.Y, c.Glyph, nil, base.Foreground(c.Color))
	}

	status := fmt.Sprintf(" %s (%d/%d)  %d particles  t=%.1fs ",
		t.catalog.At(t.currentIndex).Name, t.currentIndex+1, t.catalog.Len(),
		len(t.field.Instances()), t.field.Elapsed())
	if t.field.Paused() {
		status += "[PAUSED] "
	}
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		if i >= t.cols {
			break
		}
		t.screen.SetContent(i, 0, r, nil, style)
	}

	t.screen.Show()
}

// pumpEvents 把 poll 返回的事件送入 events，poll 返回 nil 时关闭通道。
// done 关闭后立即返回，不再阻塞在发送上。
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run 事件 goroutine 把事件送入通道，主循环按帧率推进和绘制
func (t *TermPreview) Run(fps int) {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(t.screen.PollEvent, events, done)

	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	t.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			t.field.Update(now.Sub(last).Seconds())
			last = now
			t.draw()
		}
	}
}

func loadCatalog(path string) (*particle.Catalog, error) {
	if path == "" {
		return particle.BuiltinCatalog(), nil
	}
	presets, err := particle.LoadPresetFile(path)
	if err != nil {
		return nil, err
	}
	return particle.NewCatalog(presets)
}

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志默认丢弃
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	catalog, err := loadCatalog(*presetsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load presets: %v\n", err)
		os.Exit(1)
	}

	start, ok := catalog.Index(*modeFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown preset %q (available: %v)\n", *modeFlag, catalog.Names())
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	fps := *fpsFlag
	if fps <= 0 {
		fps = 30
	}

	background, err := parseBackground(*bgFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	preview, err := NewTermPreview(catalog, start, seed, background)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	preview.Run(fps)
	preview.screen.Fini()
}
