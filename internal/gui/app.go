package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/experiment"
	"github.com/codebox/generative-city-map/internal/rng"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(16, 15, 13, 255)    // Deep Charcoal
	ColStreet  = rl.NewColor(216, 210, 196, 255) // Warm White
	ColAccent  = rl.NewColor(201, 111, 74, 255)  // Terracotta (roots)
	ColTip     = rl.NewColor(255, 255, 255, 255) // Growth front
	ColOutline = rl.NewColor(46, 44, 40, 255)    // Viewport edge
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
)

const (
	screenW = 1280
	screenH = 720
	margin  = 60
)

type App struct {
	Cfg       experiment.Config
	View      city.Viewport
	Model     *city.Model
	Seed      int64
	Running   bool
	Speed     int
	Telemetry []float64 // Ring buffer for the active-streets graph
	Camera    rl.Camera2D
	ZoomHome  float32
	Font      rl.Font
	quit      bool
}

// initWindow initializes the Raylib window with size 1280x720 and title
// "citymap", sets the target FPS to 60, and disables the default exit key.
func initWindow() {
	rl.InitWindow(screenW, screenH, "citymap")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables
// bilinear texture filtering, falling back to the built-in font when the
// file is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates an App growing one map from cfg, with the camera fitted to
// the viewport bounds.
func NewApp(cfg experiment.Config, view city.Viewport) *App {
	a := &App{
		Cfg:       cfg,
		View:      view,
		Seed:      cfg.Seed,
		Running:   true,
		Speed:     1,
		Telemetry: make([]float64, 0, 200),
		Font:      loadFont(),
	}
	a.homeCamera()
	a.rebuild()
	return a
}

// Run opens the window and grows the configured map until the user quits.
// It blocks until the window is closed.
func Run(cfg experiment.Config) error {
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = experiment.DefaultMaxTicks
	}
	view, err := experiment.NewViewport(cfg.Viewport, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	initWindow()
	defer rl.CloseWindow()

	app := NewApp(cfg, view)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// rebuild regrows the forest from the current seed.
func (a *App) rebuild() {
	a.Model = city.New(rng.New(uint32(a.Seed)), a.View, a.Cfg.City)
	a.Model.Generate()
	a.Telemetry = a.Telemetry[:0]
	a.Telemetry = append(a.Telemetry, float64(a.Model.ActiveLines()))
}

// homeCamera centers the viewport bounds on screen at a zoom that fits.
func (a *App) homeCamera() {
	b := a.View.Bounds()
	zoomX := float32(screenW-2*margin) / float32(b.W())
	zoomY := float32(screenH-2*margin) / float32(b.H())
	zoom := zoomX
	if zoomY < zoom {
		zoom = zoomY
	}
	c := b.Center()
	a.ZoomHome = zoom
	a.Camera = rl.Camera2D{
		Offset: rl.NewVector2(screenW/2, screenH/2),
		Target: rl.NewVector2(float32(c.X), float32(c.Y)),
		Zoom:   zoom,
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.rebuild()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.Seed++
		a.rebuild()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		rl.TakeScreenshot(fmt.Sprintf("citymap_%d.png", a.Seed))
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.homeCamera()
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		if a.Speed < 16 {
			a.Speed++
		}
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		if a.Speed > 1 {
			a.Speed--
		}
	}

	// Pan with right mouse drag, zoom on the wheel.
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.Camera.Target.X -= delta.X / a.Camera.Zoom
		a.Camera.Target.Y -= delta.Y / a.Camera.Zoom
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Camera.Zoom *= 1 + wheel*0.1
		if a.Camera.Zoom < a.ZoomHome*0.2 {
			a.Camera.Zoom = a.ZoomHome * 0.2
		}
	}

	if a.Running {
		for i := 0; i < a.Speed; i++ {
			if !a.Model.IsActive() || a.Model.Ticks() >= a.Cfg.MaxTicks {
				break
			}
			a.Model.Grow()
			a.Telemetry = append(a.Telemetry, float64(a.Model.ActiveLines()))
			if len(a.Telemetry) > 200 {
				a.Telemetry = a.Telemetry[1:]
			}
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode2D(a.Camera)
	a.drawOutline()
	a.drawMap()
	rl.EndMode2D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("citymap", 30, 30, 24, ColStreet)
	a.drawText(fmt.Sprintf(":: seed %d", a.Seed), 150, 34, 16, ColText)

	a.DrawTelemetry()

	status, col := "GROWING", ColStreet
	switch {
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	case !a.Model.IsActive():
		status, col = "SETTLED", ColText
	}
	a.drawText(status, 1150, 30, 16, col)

	a.drawText(fmt.Sprintf("TICK %d  STREETS %d  ACTIVE %d  SPEED %dx",
		a.Model.Ticks(), a.Model.LineCount(), a.Model.ActiveLines(), a.Speed), 30, 60, 14, ColText)

	a.drawText("[SPACE] PAUSE  [R] REPLAY  [N] NEW SEED  [S] SHOT  [H] HOME  [Q] QUIT", 620, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("ACTIVE %d", a.Model.ActiveLines()), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
