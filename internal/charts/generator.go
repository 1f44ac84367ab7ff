package charts

import (
	"errors"
	"math"

	"foodcpi/internal/models"
	"foodcpi/internal/trend"
)

// ErrNoData is returned when there is nothing to draw
var ErrNoData = errors.New(models.NoDataMessage)

// Overlay adds a fitted trend line and its projected point to a chart
type Overlay struct {
	Spec       models.SeriesSpec
	Line       *trend.Line
	Projection *models.Projection
}

// ChartGenerator renders CPI line charts as echarts snippets and PNG images
type ChartGenerator struct {
	unit   string
	height string
}

// NewChartGenerator creates a chart generator labelling values with unit
func NewChartGenerator(unit string) *ChartGenerator {
	return &ChartGenerator{
		unit:   unit,
		height: "440px",
	}
}

// dateAxis is the category axis of a chart. lead counts labels placed
// before the first record and slot is the projection's index, or -1.
type dateAxis struct {
	labels []string
	lead   int
	slot   int
}

// newDateAxis returns the date labels, extended by the projection year when
// it lies outside the observed years
func newDateAxis(table *models.PriceTable, overlay *Overlay) dateAxis {
	axis := dateAxis{labels: table.Labels(), slot: -1}
	if overlay == nil || overlay.Projection == nil {
		return axis
	}

	year := overlay.Projection.Year
	first, _ := table.FirstX()
	last, _ := table.LastX()
	switch {
	case float64(year) < math.Floor(first):
		axis.labels = append([]string{yearLabel(year)}, axis.labels...)
		axis.lead = 1
		axis.slot = 0
	case float64(year) > math.Floor(last):
		axis.labels = append(axis.labels, yearLabel(year))
		axis.slot = len(axis.labels) - 1
	default:
		for i, r := range table.Records {
			if int(math.Floor(r.X)) == year {
				axis.slot = i
				break
			}
		}
	}
	return axis
}

// hasValues reports whether any selected column holds an observation
func hasValues(table *models.PriceTable, specs []models.SeriesSpec) bool {
	for _, spec := range specs {
		values, _ := table.Column(spec.Column)
		for _, v := range values {
			if !math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}
