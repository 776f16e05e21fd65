package services

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"resumefit/resume-analyzer/internal/models"
)

// ChartRenderer draws the report widgets as SVG documents.
type ChartRenderer struct{}

func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{}
}

// RenderMatchBarSVG draws the match-score bar with a fixed 0-100 scale.
func (r *ChartRenderer) RenderMatchBarSVG(w io.Writer, view *models.BarChartView) error {
	if view == nil || len(view.Bars) == 0 {
		return fmt.Errorf("no bar chart data to render")
	}

	bars := make([]chart.Value, 0, len(view.Bars))
	for _, bar := range view.Bars {
		bars = append(bars, chart.Value{
			Value: bar.Value,
			Label: fmt.Sprintf("%s (%.0f%%)", bar.Label, bar.Value),
			Style: chart.Style{
				FillColor:   chart.ColorGreen,
				StrokeColor: chart.ColorGreen,
			},
		})
	}

	graph := chart.BarChart{
		Title:    view.Title,
		Width:    600,
		Height:   240,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: view.Max},
		},
		Bars: bars,
	}

	return graph.Render(chart.SVG, w)
}

// RenderSkillRadarSVG plots the skill polygon on a polar grid mapped to XY
// coordinates, with the 100-score outline drawn for reference. Axes are laid
// out clockwise from the top, one spoke per skill.
func (r *ChartRenderer) RenderSkillRadarSVG(w io.Writer, view *models.RadarChartView) error {
	if view == nil || len(view.Axes) == 0 {
		return fmt.Errorf("no skill scores to render")
	}

	n := len(view.Axes)
	scoreXs := make([]float64, 0, n+1)
	scoreYs := make([]float64, 0, n+1)
	outlineXs := make([]float64, 0, n+1)
	outlineYs := make([]float64, 0, n+1)
	labels := make([]chart.Value2, 0, n)

	for i, axis := range view.Axes {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2

		scoreXs = append(scoreXs, axis.Value*math.Cos(angle))
		scoreYs = append(scoreYs, -axis.Value*math.Sin(angle))
		outlineXs = append(outlineXs, view.Max*math.Cos(angle))
		outlineYs = append(outlineYs, -view.Max*math.Sin(angle))

		labels = append(labels, chart.Value2{
			XValue: 1.08 * view.Max * math.Cos(angle),
			YValue: -1.08 * view.Max * math.Sin(angle),
			Label:  axis.Label,
		})
	}

	// Close both polygons
	scoreXs = append(scoreXs, scoreXs[0])
	scoreYs = append(scoreYs, scoreYs[0])
	outlineXs = append(outlineXs, outlineXs[0])
	outlineYs = append(outlineYs, outlineYs[0])

	limit := 1.3 * view.Max
	graph := chart.Chart{
		Title:  view.Title,
		Width:  500,
		Height: 500,
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: -limit, Max: limit},
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: -limit, Max: limit},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: outlineXs,
				YValues: outlineYs,
				Style: chart.Style{
					StrokeColor:     chart.ColorLightGray,
					StrokeDashArray: []float64{4.0, 4.0},
				},
			},
			chart.ContinuousSeries{
				XValues: scoreXs,
				YValues: scoreYs,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 2,
					FillColor:   chart.ColorGreen.WithAlpha(50),
				},
			},
			chart.AnnotationSeries{
				Annotations: labels,
			},
		},
	}

	return graph.Render(chart.SVG, w)
}
