package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/shape"
)

type SVGOptions struct {
	Radius     float64
	Background string
	Fill       string
	ExitFill   string
}

func DefaultSVGOptions(radius float64) SVGOptions {
	return SVGOptions{
		Radius:     radius,
		Background: "#000000",
		Fill:       "#ffffff",
		ExitFill:   "#a0c8ff",
	}
}

// SnapshotToSVG draws every particle of snap as a teardrop. When hl is
// non-nil its edge is drawn with the glow at the given alpha (0-255).
func SnapshotToSVG(snap *dynamo.Snapshot, hl *dynamo.EdgeHighlightEvent, alpha float64, opts SVGOptions) string {
	if snap == nil {
		return ""
	}
	w, h := snap.Canvas.W, snap.Canvas.H

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, opts.Background)

	drop := shape.NewTeardrop(opts.Radius)
	sb.WriteString("<g stroke=\"none\">\n")
	for _, p := range snap.Particles {
		fill := opts.Fill
		if p.Exiting {
			fill = opts.ExitFill
		}
		c := drop.Curves(p.Pos, p.Heading)
		fmt.Fprintf(&sb, `<path fill="%s" d="M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f Z"/>
`, fill,
			c[0].P0.X(), c[0].P0.Y(),
			c[0].P1.X(), c[0].P1.Y(), c[0].P2.X(), c[0].P2.Y(), c[0].P3.X(), c[0].P3.Y(),
			c[1].P1.X(), c[1].P1.Y(), c[1].P2.X(), c[1].P2.Y(), c[1].P3.X(), c[1].P3.Y())
	}
	sb.WriteString("</g>\n")

	if hl != nil && alpha > 0 {
		a, b := shape.EdgeLine(hl.Edge, snap.Canvas)
		fmt.Fprintf(&sb, "<g fill=\"none\" class=\"highlight-%s\">\n", hl.Kind)
		for _, l := range shape.Glow {
			fmt.Fprintf(&sb, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="rgb(%d,%d,%d)" stroke-opacity="%.3f" stroke-width="%.0f"/>
`, a.X(), a.Y(), b.X(), b.Y(), l.Color.R, l.Color.G, l.Color.B, alpha*l.Alpha/255, l.Weight)
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// LastHighlight returns the newest event in events and its alpha at now, or
// nil when none is still visible.
func LastHighlight(events []dynamo.EdgeHighlightEvent, now time.Time, d time.Duration) (*dynamo.EdgeHighlightEvent, float64) {
	if len(events) == 0 {
		return nil, 0
	}
	ev := events[len(events)-1]
	a := ev.Alpha(now, d) * 255
	if a == 0 {
		return nil, 0
	}
	return &ev, a
}

// SeriesToSVG draws a frame series as a polyline, y growing upward.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	last := float64(len(series) - 1)
	for i, v := range series {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
