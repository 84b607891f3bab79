package engine

// CellKind classifies one output cell.
type CellKind uint8

const (
	CellCeiling CellKind = iota
	CellFloor
	CellWall
)

// FrameCell is the renderer-neutral description of one output cell.
// Shade and Face are only meaningful for walls.
type FrameCell struct {
	Kind  CellKind
	Shade int
	Face  Face
}

// Frame is the output of one engine step. The scheduler reuses one Frame
// between steps, so sinks must not keep it after Present returns.
type Frame struct {
	Number  uint64
	Width   int
	Height  int
	DT      float64 // seconds simulated by this frame
	Pose    Pose
	Shades  int // number of shade levels in use
	Columns []ColumnResult
	Cells   []FrameCell // row-major, Width*Height
}

// NewFrame allocates a frame of the given size.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.resize(width, height)
	return f
}

func (f *Frame) resize(width, height int) {
	if f.Width == width && f.Height == height && len(f.Cells) == width*height {
		return
	}
	f.Width = width
	f.Height = height
	f.Columns = make([]ColumnResult, width)
	f.Cells = make([]FrameCell, width*height)
}

// At returns the cell at (x, y). Out-of-range coordinates yield a ceiling cell.
func (f *Frame) At(x, y int) FrameCell {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return FrameCell{}
	}
	return f.Cells[y*f.Width+x]
}

func (f *Frame) paintColumn(x int, col ColumnResult) {
	horizon := f.Height / 2
	for y := 0; y < f.Height; y++ {
		c := FrameCell{Kind: CellCeiling}
		switch {
		case col.Hit && y >= col.DrawStart && y < col.DrawEnd:
			c = FrameCell{Kind: CellWall, Shade: col.Shade, Face: col.Face}
		case y >= horizon:
			c.Kind = CellFloor
		}
		f.Cells[y*f.Width+x] = c
	}
}

// Hits returns the number of columns that hit a wall and their mean distance.
func (f *Frame) Hits() (int, float64) {
	var n int
	var sum float64
	for _, c := range f.Columns {
		if c.Hit {
			n++
			sum += c.Distance
		}
	}
	if n == 0 {
		return 0, 0
	}
	return n, sum / float64(n)
}
