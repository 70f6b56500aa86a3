// Package graph renders aggregated benchmark series as PNG charts.
package graph

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/flightbench/flightbench/benchmark"
	"github.com/flightbench/flightbench/util/logging"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart file names. Downstream tooling looks for exactly these.
const (
	InsertChartName = "insercao_comparacao.png"
	SortChartName   = "ordenacao.png"
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var (
	avlColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	linearColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	sortColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Plotter writes the insertion comparison and sort charts into Dir.
type Plotter struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
	// Caption, when set, is appended to both titles (e.g. the host).
	Caption string
}

// Result lists the files written. Skipped is set when there was nothing to
// plot.
type Result struct {
	Files   []string
	Skipped bool
}

// Plot renders both charts. An empty series produces no files and no error,
// only a warning.
func (p *Plotter) Plot(s *benchmark.Series) (*Result, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	if s.Empty() {
		logging.Logger.Warnf("no benchmark rows to plot, no charts written to %s", p.Dir)
		return &Result{Skipped: true}, nil
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating graphs directory")
	}
	res := &Result{}

	insert := p.newPlot("Insertion: AVL tree vs linear")
	if err := addLine(insert, "AVL insertion", xys(s.Sizes, s.AVLInsert), avlColor, false); err != nil {
		return nil, err
	}
	if err := addLine(insert, "Linear insertion", xys(s.Sizes, s.LinearInsert), linearColor, true); err != nil {
		return nil, err
	}
	path, err := p.save(insert, InsertChartName)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)

	sorting := p.newPlot("Sort time")
	if err := addLine(sorting, "Sort", xys(s.Sizes, s.Sort), sortColor, false); err != nil {
		return nil, err
	}
	path, err = p.save(sorting, SortChartName)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)
	return res, nil
}

func (p *Plotter) newPlot(title string) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = title
	if p.Caption != "" {
		pl.Title.Text += "\n" + p.Caption
	}
	pl.X.Label.Text = "Flights"
	pl.Y.Label.Text = "Time (ms)"
	pl.Legend.Top = true
	pl.Legend.Left = true
	pl.Add(plotter.NewGrid())
	return pl
}

func (p *Plotter) save(pl *plot.Plot, name string) (string, error) {
	w, h := p.Width, p.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	path := filepath.Join(p.Dir, name)
	if err := pl.Save(w, h, path); err != nil {
		return "", errors.Wrapf(err, "saving %s", path)
	}
	return path, nil
}

func xys(sizes []int, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(sizes))
	for i := range sizes {
		pts[i].X = float64(sizes[i])
		pts[i].Y = ys[i]
	}
	return pts
}

func addLine(pl *plot.Plot, label string, pts plotter.XYs, c color.Color, dashed bool) error {
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return errors.Wrapf(err, "plotting %s", label)
	}
	line.Color = c
	points.Color = c
	if dashed {
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	}
	pl.Add(line, points)
	pl.Legend.Add(label, line, points)
	return nil
}
