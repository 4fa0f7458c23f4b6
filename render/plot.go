package render

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/genopt/genetic"
	"github.com/lixenwraith/genopt/genetic/tsp"
	"github.com/lixenwraith/genopt/parameter"
)

// PlotWriter saves the best tour of a snapshot as a PNG
type PlotWriter struct {
	dir    string
	points []tsp.Point
	size   vg.Length
}

// NewPlotWriter creates dir if needed
func NewPlotWriter(dir string, points []tsp.Point) (*PlotWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create plot dir")
	}
	return &PlotWriter{
		dir:    dir,
		points: points,
		size:   parameter.RenderPlotSize * vg.Inch,
	}, nil
}

// Write plots the best member and returns the file path
func (pw *PlotWriter) Write(pool *genetic.Pool[tsp.Tour, float64]) (string, error) {
	if len(pool.Members) == 0 {
		return "", errors.New("empty population")
	}

	best := pool.Members[0]
	for _, m := range pool.Members[1:] {
		if m.Score > best.Score {
			best = m
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("generation %d, length %.4f", pool.Generation, -best.Score)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	// Closed route: repeat the first city at the end
	route := make(plotter.XYs, len(best.Data)+1)
	for i, city := range best.Data {
		route[i].X, route[i].Y = pw.points[city].X, pw.points[city].Y
	}
	route[len(best.Data)] = route[0]

	edges, err := plotter.NewLine(route)
	if err != nil {
		return "", errors.Wrap(err, "tour line")
	}
	edges.LineStyle.Width = vg.Points(1)
	edges.LineStyle.Color = color.Black

	cities, err := plotter.NewScatter(route[:len(best.Data)])
	if err != nil {
		return "", errors.Wrap(err, "city scatter")
	}
	cities.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	cities.GlyphStyle.Radius = vg.Points(2)

	p.Add(edges, cities)

	path := filepath.Join(pw.dir, fmt.Sprintf("%s-gen%06d.png", pool.RunID, pool.Generation))
	if err := p.Save(pw.size, pw.size, path); err != nil {
		return "", errors.Wrapf(err, "save plot %s", path)
	}
	return path, nil
}

// Observer writes a plot per snapshot, logging failures rather than interrupting the run
func (pw *PlotWriter) Observer() genetic.Observer[tsp.Tour, float64] {
	return func(pool *genetic.Pool[tsp.Tour, float64]) {
		path, err := pw.Write(pool)
		if err != nil {
			log.Printf("plot generation %d: %v", pool.Generation, err)
			return
		}
		log.Printf("plot generation %d: %s", pool.Generation, path)
	}
}
