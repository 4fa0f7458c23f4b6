package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genopt/genetic"
	"github.com/lixenwraith/genopt/genetic/tsp"
	"github.com/lixenwraith/genopt/parameter"
)

var (
	styleRoute  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCity   = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// TerminalView draws the population as a grid of tour panels, one per individual
type TerminalView struct {
	screen  tcell.Screen
	points  []tsp.Point
	bounds  Bounds
	columns int
	limit   int

	quit     chan struct{}
	quitOnce sync.Once
}

// NewTerminalView takes over the terminal; call Close to restore it
func NewTerminalView(points []tsp.Point) (*TerminalView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewTerminalViewOn(screen, points), nil
}

// NewTerminalViewOn draws on an already initialized screen
func NewTerminalViewOn(screen tcell.Screen, points []tsp.Point) *TerminalView {
	v := &TerminalView{
		screen:  screen,
		points:  points,
		bounds:  BoundsOf(points),
		columns: parameter.RenderGridColumns,
		limit:   parameter.RenderMaxTours,
		quit:    make(chan struct{}),
	}
	go v.pollEvents()
	return v
}

// pollEvents closes Done on Esc, q or Ctrl-C; exits when the screen is finalized
func (v *TerminalView) pollEvents() {
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				v.quitOnce.Do(func() { close(v.quit) })
			}
		case *tcell.EventResize:
			v.screen.Sync()
		}
	}
}

// Done is closed once the user asks to quit
func (v *TerminalView) Done() <-chan struct{} {
	return v.quit
}

// Close restores the terminal
func (v *TerminalView) Close() {
	v.screen.Fini()
}

// Observer adapts the view into an engine observer
func (v *TerminalView) Observer() genetic.Observer[tsp.Tour, float64] {
	return v.Draw
}

// Draw renders up to the view limit of tours with their lengths
func (v *TerminalView) Draw(pool *genetic.Pool[tsp.Tour, float64]) {
	v.screen.Clear()
	w, h := v.screen.Size()

	title := fmt.Sprintf(" generation %d  best %.4f  (q to quit) ", pool.Generation, -pool.Stats.BestScore)
	v.text(0, 0, title, styleTitle)

	count := min(len(pool.Members), v.limit)
	if count == 0 || w < v.columns*4 || h < 6 {
		v.screen.Show()
		return
	}

	rows := (count + v.columns - 1) / v.columns
	cellW := w / v.columns
	cellH := (h - 1) / rows

	for i := 0; i < count; i++ {
		x0 := (i % v.columns) * cellW
		y0 := 1 + (i/v.columns)*cellH
		v.panel(x0, y0, cellW, cellH, pool.Members[i])
	}

	v.screen.Show()
}

// panel draws one bordered tour with its distance in the top-left corner
func (v *TerminalView) panel(x0, y0, w, h int, c genetic.Candidate[tsp.Tour, float64]) {
	for x := x0; x < x0+w; x++ {
		v.screen.SetContent(x, y0, '─', nil, styleBorder)
		v.screen.SetContent(x, y0+h-1, '─', nil, styleBorder)
	}
	for y := y0; y < y0+h; y++ {
		v.screen.SetContent(x0, y, '│', nil, styleBorder)
		v.screen.SetContent(x0+w-1, y, '│', nil, styleBorder)
	}

	// Interior excludes the border
	iw, ih := w-2, h-2
	if iw < 2 || ih < 2 {
		return
	}
	at := func(p tsp.Point) (int, int) {
		x, y := v.bounds.Project(p, iw, ih)
		return x0 + 1 + x, y0 + 1 + y
	}

	n := len(c.Data)
	for i := 0; i < n; i++ {
		ax, ay := at(v.points[c.Data[i]])
		bx, by := at(v.points[c.Data[(i+1)%n]])
		line(ax, ay, bx, by, func(x, y int) {
			v.screen.SetContent(x, y, '·', nil, styleRoute)
		})
	}
	for _, p := range v.points {
		x, y := at(p)
		v.screen.SetContent(x, y, 'o', nil, styleCity)
	}

	v.text(x0+1, y0, fmt.Sprintf("%.2f", -c.Score), styleLabel)
}

func (v *TerminalView) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
