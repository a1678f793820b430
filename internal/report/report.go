// Package report renders training output for people: PNG charts of the loss
// curve and of the batch predictions, and terminal tables.
package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"irisvision/internal/dataset"
	"irisvision/internal/metrics"
	"irisvision/internal/session"
	"irisvision/internal/trainer"
)

// File names written by WritePlots.
const (
	LossFileName        = "loss.png"
	PredictionsFileName = "predictions.png"
)

var (
	lossColor       = color.RGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff}
	setosaColor     = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	versicolorColor = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
)

// LossCurve saves the (epoch, loss) history as a line chart.
func LossCurve(history []trainer.Record, path string) error {
	if len(history) == 0 {
		return errors.New("report: empty loss history")
	}
	pts := make(plotter.XYs, len(history))
	for i, rec := range history {
		pts[i].X = float64(rec.Epoch)
		pts[i].Y = rec.Loss
	}

	p := plot.New()
	p.Title.Text = "Loss"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "mean squared error"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "loss line")
	}
	line.Color = lossColor
	line.Width = vg.Points(2)
	p.Add(line)

	return save(p, path)
}

// PredictionScatter saves sepal length against sepal width, colored by the
// predicted class.
func PredictionScatter(preds []trainer.Prediction, path string) error {
	if len(preds) == 0 {
		return errors.New("report: no predictions")
	}
	var setosa, versicolor plotter.XYs
	for _, pr := range preds {
		pt := plotter.XY{X: pr.SepalLength, Y: pr.SepalWidth}
		if dataset.ClassOf(pr.Score) == dataset.Setosa {
			setosa = append(setosa, pt)
		} else {
			versicolor = append(versicolor, pt)
		}
	}

	p := plot.New()
	p.Title.Text = "Dataset predictions"
	p.X.Label.Text = "sepal length"
	p.Y.Label.Text = "sepal width"
	p.Add(plotter.NewGrid())

	for _, series := range []struct {
		label string
		pts   plotter.XYs
		color color.Color
	}{
		{dataset.ClassName(dataset.Setosa), setosa, setosaColor},
		{dataset.ClassName(dataset.Versicolor), versicolor, versicolorColor},
	} {
		if len(series.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(series.pts)
		if err != nil {
			return errors.Wrapf(err, "%s scatter", series.label)
		}
		sc.GlyphStyle.Color = series.color
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
		p.Legend.Add(series.label, sc)
	}

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create plot dir")
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %q", path)
	}
	return nil
}

// WritePlots saves both charts under dir. Charts without data are skipped.
func WritePlots(dir string, history []trainer.Record, preds []trainer.Prediction) ([]string, error) {
	var written []string
	if len(history) > 0 {
		path := filepath.Join(dir, LossFileName)
		if err := LossCurve(history, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if len(preds) > 0 {
		path := filepath.Join(dir, PredictionsFileName)
		if err := PredictionScatter(preds, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func newTable() *lgtable.Table {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	return lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// PredictionTable lists the batch predictions with their predicted and
// actual classes.
func PredictionTable(preds []trainer.Prediction) string {
	table := newTable().Headers("#", "Sepal length", "Sepal width", "Score", "Predicted", "Actual")
	for i, pr := range preds {
		table.Row(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.1f", pr.SepalLength),
			fmt.Sprintf("%.1f", pr.SepalWidth),
			fmt.Sprintf("%.4f", pr.Score),
			dataset.ClassName(dataset.ClassOf(pr.Score)),
			dataset.ClassName(pr.Label),
		)
	}
	return table.String()
}

// Summary describes the state of a session in a small table.
func Summary(s *session.Session) string {
	loss := "-"
	if h := s.History(); len(h) > 0 {
		loss = fmt.Sprintf("%.4f", h[len(h)-1].Loss)
	}
	table := newTable().Headers("Epoch", "Accuracy", "Loss", "Corrections")
	table.Row(
		humanize.Comma(int64(s.Epoch())),
		fmt.Sprintf("%.1f%%", s.Accuracy()),
		loss,
		humanize.Comma(int64(s.Corrections())),
	)
	return table.String()
}

// Classification describes one classified image.
func Classification(name string, c session.Classification) string {
	label := dataset.ClassOf(c.Score)
	return fmt.Sprintf("%s: %s (confidence %.1f%%, output %.4f) blue=%.2f brightness=%.2f purple=%.2f saturation=%.2f",
		name,
		dataset.ClassName(label),
		metrics.Confidence(c.Score),
		c.Score,
		c.Features[0], c.Features[1], c.Features[2], c.Features[3],
	)
}
