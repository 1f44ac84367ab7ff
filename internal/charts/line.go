package charts

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"foodcpi/internal/models"
	"foodcpi/internal/selector"
)

// missing is how echarts marks a gap in a line
const missing = "-"

// LineSnippet builds the interactive chart for a view. Each series carries
// its own tooltip formatter. A table with no observations in the selected
// columns yields the placeholder snippet.
func (cg *ChartGenerator) LineSnippet(table *models.PriceTable, view *selector.View, specs []models.SeriesSpec, overlay *Overlay) (ChartSnippet, error) {
	id := "chart-" + view.ID
	if table.Empty() || !hasValues(table, specs) {
		return placeholderSnippet(id, view.Title), nil
	}

	axis := newDateAxis(table, overlay)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Width:   "100%",
			Height:  cg.height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    view.Title,
			Subtitle: view.Description,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   true,
			Bottom: "0",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: table.DateColumn,
			Type: "category",
		}),
		charts.WithYAxisOpts(cg.yAxis(view)),
	)

	line.SetXAxis(axis.labels)

	for _, spec := range specs {
		values, _ := table.Column(spec.Column)
		line.AddSeries(spec.Label, axis.series(values), seriesStyle(spec, 2)...)
	}

	if overlay != nil && overlay.Line != nil {
		fitted := overlay.Line.Fitted(table)
		line.AddSeries(overlay.Spec.Label, axis.series(fitted), seriesStyle(overlay.Spec, 2)...)
	}

	projected := overlay != nil && overlay.Projection != nil
	if projected {
		data := axis.series(nil)
		if axis.slot >= 0 {
			data[axis.slot] = opts.LineData{Value: round(overlay.Projection.Value)}
		}
		line.AddSeries(projectionName(overlay.Projection), data, seriesStyle(overlay.Spec, 0)...)
	}

	option, err := cg.option(line, specs, overlay)
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to serialise chart %s: %w", id, err)
	}

	return newSnippet(id, view.Title, cg.height, option), nil
}

func (cg *ChartGenerator) yAxis(view *selector.View) opts.YAxis {
	y := opts.YAxis{
		Name: cg.unit,
		Type: "value",
	}
	if view.YAxis != nil {
		y.Min = view.YAxis.Min
		y.Max = view.YAxis.Max
	} else {
		y.Scale = true
	}
	return y
}

func projectionName(p *models.Projection) string {
	return fmt.Sprintf("%s projection %d", p.Column, p.Year)
}

// series places record values on the axis, marking NaN and absent slots
// as gaps
func (a dateAxis) series(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(a.labels))
	for i := range data {
		j := i - a.lead
		if j >= 0 && j < len(values) && !math.IsNaN(values[j]) {
			data[i] = opts.LineData{Value: round(values[j])}
		} else {
			data[i] = opts.LineData{Value: missing}
		}
	}
	return data
}

func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func seriesStyle(spec models.SeriesSpec, width float32) []charts.SeriesOpts {
	style := opts.LineStyle{Color: spec.Color, Width: width}
	if spec.Role == models.RoleTrend && width > 0 {
		style.Type = "dashed"
	}
	if spec.Role == models.RoleBaseline {
		style.Width = 3
	}
	return []charts.SeriesOpts{
		charts.WithLineStyleOpts(style),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: spec.Color}),
	}
}

// option serialises the chart and attaches per-series markers and tooltips,
// which the line builder has no field for
func (cg *ChartGenerator) option(line *charts.Line, specs []models.SeriesSpec, overlay *Overlay) (string, error) {
	line.Validate()

	raw, err := json.Marshal(line.JSON())
	if err != nil {
		return "", err
	}

	var option map[string]interface{}
	if err := json.Unmarshal(raw, &option); err != nil {
		return "", err
	}

	series, _ := option["series"].([]interface{})
	decorate := func(i int, spec models.SeriesSpec, symbol string, size int) {
		if i >= len(series) {
			return
		}
		s, ok := series[i].(map[string]interface{})
		if !ok {
			return
		}
		s["tooltip"] = map[string]interface{}{"formatter": spec.HoverTemplate}
		s["connectNulls"] = false
		if symbol == "none" {
			s["showSymbol"] = false
		} else {
			s["symbol"] = symbol
			s["symbolSize"] = size
			s["showSymbol"] = true
		}
	}

	for i, spec := range specs {
		decorate(i, spec, spec.Marker, 7)
	}
	next := len(specs)
	if overlay != nil && overlay.Line != nil {
		decorate(next, overlay.Spec, "none", 0)
		next++
	}
	if overlay != nil && overlay.Projection != nil {
		decorate(next, overlay.Spec, "diamond", 14)
	}

	out, err := json.Marshal(option)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
