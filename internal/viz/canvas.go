package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/raindrops/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Pen selects the colour layer a dot is drawn with. A cell takes the pen of
// the last dot set in it.
type Pen uint8

const (
	PenDrop Pen = iota
	PenExit
	PenGlow
	numPens
)

// Canvas is a braille pixel grid of Width x Height cells, each holding 2x4
// dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	pens          [][]Pen
	pen           Pen
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		pens:   make([][]Pen, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.pens[i] = make([]Pen, w)
	}
	c.Clear()
	return c
}

// DotsW and DotsH are the canvas size in dots.
func (c *Canvas) DotsW() int { return c.Width * 2 }
func (c *Canvas) DotsH() int { return c.Height * 4 }

func (c *Canvas) SetPen(p Pen) { c.pen = p }

// Set sets the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.pens[row][col] = c.pen
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.pens[i][j] = PenDrop
		}
	}
	c.pen = PenDrop
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolygon connects pts in order and closes the loop.
func (c *Canvas) DrawPolygon(pts [][2]int) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		c.Set(pts[0][0], pts[0][1])
		return
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		c.DrawLine(a[0], a[1], b[0], b[1])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colours each cell with the style of its pen. Runs of equal pens
// are rendered together.
func (c *Canvas) Render(styles [numPens]lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.pens[i][j] == c.pens[i][start] {
				continue
			}
			b.WriteString(styles[c.pens[i][start]].Render(string(row[start:j])))
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Projection maps canvas pixels onto braille dots.
type Projection struct {
	World        dynamo.Size
	DotsW, DotsH int
}

func (p Projection) Point(v dynamo.Vec) (int, int) {
	x := v.X() / p.World.W * float64(p.DotsW)
	y := v.Y() / p.World.H * float64(p.DotsH)
	return int(x), int(y)
}

// Scale converts a length in canvas pixels to dots along x.
func (p Projection) Scale(l float64) float64 {
	return l / p.World.W * float64(p.DotsW)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
