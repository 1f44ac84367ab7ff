// Package trend fits ordinary least-squares lines to CPI columns and
// extrapolates them to future years.
package trend

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"foodcpi/internal/models"
)

var (
	// ErrInsufficientData is returned when fewer than two usable points remain
	ErrInsufficientData = errors.New("insufficient data for trend fit")
	// ErrUnknownColumn is returned when the column is not in the table
	ErrUnknownColumn = errors.New("unknown column")
)

// Line is a fitted y = Intercept + Slope*x over numeric dates
type Line struct {
	Column    string  `json:"column"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Points    int     `json:"points"`
}

// Fit regresses column against the numeric date of each record.
// Rows with a missing value are skipped.
func Fit(table *models.PriceTable, column string) (*Line, error) {
	values, ok := table.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	xs := make([]float64, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, table.Records[i].X)
		ys = append(ys, v)
	}

	if len(xs) < 2 || stat.Variance(xs, nil) == 0 {
		return nil, fmt.Errorf("%w: %d usable points in %s", ErrInsufficientData, len(xs), column)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return &Line{
		Column:    column,
		Slope:     slope,
		Intercept: intercept,
		Points:    len(xs),
	}, nil
}

// Predict evaluates the line at x
func (l *Line) Predict(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// Fitted returns the line evaluated at every record date
func (l *Line) Fitted(table *models.PriceTable) []float64 {
	fitted := make([]float64, table.Len())
	for i := range fitted {
		fitted[i] = l.Predict(table.Records[i].X)
	}
	return fitted
}

// NextYear returns the calendar year after the last observed date
func NextYear(table *models.PriceTable) (int, bool) {
	last, ok := table.LastX()
	if !ok {
		return 0, false
	}
	return int(math.Floor(last)) + 1, true
}

// Project fits column and evaluates the line at year
func Project(table *models.PriceTable, column string, year int) (*models.Projection, error) {
	line, err := Fit(table, column)
	if err != nil {
		return nil, err
	}
	return line.Project(year), nil
}

// Project evaluates the line at year
func (l *Line) Project(year int) *models.Projection {
	return &models.Projection{
		Column:    l.Column,
		Year:      year,
		Value:     l.Predict(float64(year)),
		Slope:     l.Slope,
		Intercept: l.Intercept,
	}
}
