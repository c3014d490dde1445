// Package gui is the raylib window front end.
package gui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/raindrops/internal/audio"
	"github.com/san-kum/raindrops/internal/config"
	"github.com/san-kum/raindrops/internal/control"
	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/physics"
	"github.com/san-kum/raindrops/internal/sim"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColDrop    = rl.NewColor(255, 255, 255, 255)
	ColExit    = rl.NewColor(160, 200, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColHint    = rl.NewColor(255, 255, 255, 150)
)

const maxTelemetry = 200

// InputMode selects what drives gravity in the window.
type InputMode int

const (
	ModeKeyboard InputMode = iota
	ModePointer
)

func (m InputMode) String() string {
	if m == ModePointer {
		return "pointer"
	}
	return "keyboard"
}

type App struct {
	Cfg     *config.Config
	Sim     *sim.Simulator
	Manual  *control.Manual
	Pointer *control.Pointer
	Mode    InputMode
	Audio   *audio.Processor

	Running   bool
	Shakes    int
	Snap      *dynamo.Snapshot
	Telemetry []float64
	Err       error
}

func NewApp(cfg *config.Config, withAudio bool) (*App, error) {
	relaxer, err := physics.NewRelaxer(cfg.Broadphase)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(cfg.Params, cfg.Size(), sim.WithSeed(cfg.Seed), sim.WithRelaxer(relaxer))
	if err != nil {
		return nil, err
	}

	app := &App{
		Cfg:       cfg,
		Sim:       s,
		Manual:    control.NewManual(),
		Pointer:   control.NewPointer(),
		Running:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	app.Manual.Set(cfg.GravityVec())
	if cfg.Input == config.InputPointer {
		app.Mode = ModePointer
	}

	if withAudio {
		proc := audio.NewProcessor(cfg.Seed)
		if err := proc.Start(); err != nil {
			log.Warn("audio disabled", "err", err)
		} else {
			app.Audio = proc
		}
	}
	return app, nil
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Canvas.Width), int32(cfg.Canvas.Height), "raindrops")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, withAudio bool) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, withAudio)
	if err != nil {
		return err
	}
	defer app.Close()

	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && a.Err == nil {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) Close() {
	if a.Snap != nil {
		a.Sim.Release(a.Snap)
		a.Snap = nil
	}
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

func (a *App) canvas() dynamo.Size {
	return dynamo.Size{W: float64(rl.GetScreenWidth()), H: float64(rl.GetScreenHeight())}
}

func (a *App) input() dynamo.InputAdapter {
	if a.Mode == ModePointer {
		return a.Pointer
	}
	return a.Manual
}

// Update handles input and advances one frame. It reports true when the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}

	canvas := a.canvas()

	switch a.Mode {
	case ModeKeyboard:
		if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
			a.Manual.Nudge(-0.2, 0)
		}
		if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
			a.Manual.Nudge(0.2, 0)
		}
		if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
			a.Manual.Nudge(0, -0.2)
		}
		if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
			a.Manual.Nudge(0, 0.2)
		}
		if rl.IsKeyPressed(rl.KeyZero) {
			a.Manual.Zero()
		}
	case ModePointer:
		m := rl.GetMousePosition()
		a.Pointer.Move(float64(m.X), float64(m.Y), canvas)
	}

	if rl.IsKeyPressed(rl.KeyM) {
		a.Mode = 1 - a.Mode
	}
	if rl.IsKeyPressed(rl.KeySpace) || rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Manual.Fire()
		a.Pointer.Fire()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sim.Reset()
		a.Shakes = 0
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Running = !a.Running
	}

	if !a.Running {
		return false
	}

	if a.Snap != nil {
		a.Sim.Release(a.Snap)
		a.Snap = nil
	}
	snap, err := a.Sim.Tick(a.input(), canvas)
	if err != nil {
		log.Error("frame failed", "err", err)
		a.Err = err
		return true
	}
	a.Snap = snap
	a.Shakes += len(a.Sim.DrainEvents())

	speed := snap.MeanSpeed()
	a.Telemetry = append(a.Telemetry, float64(snap.Count()))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	if a.Audio != nil {
		a.Audio.Update(snap.Count(), speed)
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.Snap != nil {
		a.RenderDrops(a.Snap)
	}
	a.RenderHighlight()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	g := a.Sim.Gravity()
	rl.DrawText("raindrops", 20, 20, 20, ColText)
	rl.DrawText(fmt.Sprintf("%d drops  %d shakes  g=(%.2f, %.2f)  %s", a.Sim.Len(), a.Shakes, g.X(), g.Y(), a.Mode), 20, 46, 14, ColTextDim)
	a.DrawTelemetry(20, 70, 200, 40)
	a.drawNeedle(float32(w-60), 60, 40, g)
	if a.Audio != nil {
		a.DrawBands(20, 120, 60, 30)
	}

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(status, w-100, 20, 14, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, h-24, 14, ColTextDim)

	if a.Mode == ModePointer {
		msg := "Move the pointer to tilt, click or [SPACE] to shake"
		tw := rl.MeasureText(msg, 16)
		rl.DrawText(msg, (w-tw)/2, h-30, 16, ColHint)
	} else {
		rl.DrawText("[ARROWS] TILT  [SPACE] SHAKE  [M] MODE  [R] RESET  [P] PAUSE  [Q] QUIT", w-620, h-24, 14, ColTextDim)
	}
}

func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}
	maxVal := 1.0
	for _, v := range a.Telemetry {
		maxVal = math.Max(maxVal, v)
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := float32(x) + float32(i)/float32(maxTelemetry)*float32(width)
		py := float32(y+height) - float32(v/maxVal)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColText)
}

// DrawBands draws the low, mid and high energy of the audio output as bars.
func (a *App) DrawBands(x, y, width, height int32) {
	bands := a.Audio.Synth.Bands()
	total := bands[0] + bands[1] + bands[2]
	if total <= 0 {
		total = 1
	}
	barW := width / int32(len(bands))
	for i, v := range bands {
		bh := int32(v / total * float64(height))
		bx := x + int32(i)*barW
		rl.DrawRectangleLines(bx, y, barW-4, height, ColTextDim)
		rl.DrawRectangle(bx, y+height-bh, barW-4, bh, ColText)
	}
	rl.DrawText("audio", x+width+6, y+height-12, 12, ColTextDim)
}

func (a *App) drawNeedle(cx, cy, radius float32, g dynamo.Vec) {
	rl.DrawCircleLines(int32(cx), int32(cy), radius, ColTextDim)
	l := g.Len()
	if l < 1e-3 {
		return
	}
	scale := float32(math.Min(l, 1)) * radius
	tip := rl.NewVector2(cx+float32(g.X()/l)*scale, cy+float32(g.Y()/l)*scale)
	rl.DrawLineEx(rl.NewVector2(cx, cy), tip, 2, ColText)
}
