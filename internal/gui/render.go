package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/shape"
)

const dropSegments = 8

func (a *App) RenderDrops(snap *dynamo.Snapshot) {
	drop := shape.NewTeardrop(a.Cfg.Params.Radius)
	pts := make([]rl.Vector2, 0, 2*dropSegments+2)
	for _, p := range snap.Particles {
		col := ColDrop
		if p.Exiting {
			col = ColExit
		}
		pts = pts[:0]
		for _, v := range drop.Fan(p.Pos, p.Heading, dropSegments) {
			pts = append(pts, rl.NewVector2(float32(v.X()), float32(v.Y())))
		}
		rl.DrawTriangleFan(pts, col)
	}
}

func (a *App) RenderHighlight() {
	ev, ok := a.Sim.Highlight()
	if !ok {
		return
	}
	alpha := shape.HighlightAlpha(ev, time.Now(), a.Cfg.Params.HighlightDuration, rl.GetTime()*1000)
	if alpha <= 0 {
		return
	}

	p0, p1 := shape.EdgeLine(ev.Edge, a.canvas())
	start := rl.NewVector2(float32(p0.X()), float32(p0.Y()))
	end := rl.NewVector2(float32(p1.X()), float32(p1.Y()))
	for _, l := range shape.Glow {
		col := rl.NewColor(l.Color.R, l.Color.G, l.Color.B, uint8(alpha*l.Alpha))
		rl.DrawLineEx(start, end, float32(l.Weight), col)
	}
}
