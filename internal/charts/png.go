package charts

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"foodcpi/internal/models"
	"foodcpi/internal/selector"
)

// RenderPNG draws the same chart as LineSnippet into a PNG image
func (cg *ChartGenerator) RenderPNG(w io.Writer, table *models.PriceTable, view *selector.View, specs []models.SeriesSpec, overlay *Overlay) error {
	if table.Empty() || !hasValues(table, specs) {
		return ErrNoData
	}

	var series []chart.Series
	var ys []float64
	minX, maxX := math.Inf(1), math.Inf(-1)

	addPoints := func(name string, xs, vs []float64, style chart.Style) {
		s := chart.ContinuousSeries{Name: name, Style: style}
		for i, v := range vs {
			if math.IsNaN(v) {
				continue
			}
			s.XValues = append(s.XValues, xs[i])
			s.YValues = append(s.YValues, v)
			minX = math.Min(minX, xs[i])
			maxX = math.Max(maxX, xs[i])
		}
		if len(s.XValues) == 0 {
			return
		}
		ys = append(ys, s.YValues...)
		series = append(series, s)
	}

	xs := make([]float64, table.Len())
	for i, r := range table.Records {
		xs[i] = r.X
	}

	for _, spec := range specs {
		values, _ := table.Column(spec.Column)
		width := 2.0
		if spec.Role == models.RoleBaseline {
			width = 3
		}
		addPoints(spec.Label, xs, values, chart.Style{
			StrokeColor: pngColor(spec.Color),
			StrokeWidth: width,
			DotColor:    pngColor(spec.Color),
			DotWidth:    3,
		})
	}

	if overlay != nil && overlay.Line != nil {
		addPoints(overlay.Spec.Label, xs, overlay.Line.Fitted(table), chart.Style{
			StrokeColor:     pngColor(overlay.Spec.Color),
			StrokeWidth:     2,
			StrokeDashArray: []float64{6, 4},
		})
	}

	if overlay != nil && overlay.Projection != nil {
		p := overlay.Projection
		addPoints(projectionName(p), []float64{float64(p.Year)}, []float64{p.Value}, chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    pngColor(overlay.Spec.Color),
			DotWidth:    6,
		})
	}

	if len(series) == 0 {
		return ErrNoData
	}

	graph := chart.Chart{
		Title: view.Title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  900,
		Height: 450,
		XAxis: chart.XAxis{
			Name:  table.DateColumn,
			Range: paddedRange(minX, maxX, 0),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(math.Round(f)))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  cg.unit,
			Range: cg.yRange(view, ys),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.FormatFloat(f, 'f', 1, 64)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", view.ID, err)
	}
	return nil
}

func (cg *ChartGenerator) yRange(view *selector.View, ys []float64) *chart.ContinuousRange {
	if view.YAxis != nil {
		return &chart.ContinuousRange{Min: view.YAxis.Min, Max: view.YAxis.Max}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	return paddedRange(lo, hi, 0.05)
}

// paddedRange widens [lo, hi] by frac of its span, or by one unit when the
// span is zero, since go-chart rejects empty ranges
func paddedRange(lo, hi, frac float64) *chart.ContinuousRange {
	span := hi - lo
	if span == 0 {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	return &chart.ContinuousRange{Min: lo - span*frac, Max: hi + span*frac}
}

func pngColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
