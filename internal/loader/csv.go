package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"foodcpi/internal/models"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
}

// ParseCSV reads a CPI table. The first column holds dates, every other
// column is numeric. Headers are trimmed and unparsable cells become NaN.
func ParseCSV(r io.Reader) (*models.PriceTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		names[i] = name
	}
	if len(names) < 2 {
		return nil, fmt.Errorf("header has no numeric columns")
	}

	table := &models.PriceTable{
		DateColumn: names[0],
		Columns:    names[1:],
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		label := strings.TrimSpace(row[0])
		x, err := ParseDate(label)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec := models.Record{
			Date:   label,
			X:      x,
			Values: make(map[string]float64, len(table.Columns)),
		}
		for i, col := range table.Columns {
			rec.Values[col] = parseValue(row[i+1])
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// ParseDate converts a date label into a numeric date. Plain years map to
// themselves and full dates map to a decimal year.
func ParseDate(label string) (float64, error) {
	if label == "" {
		return 0, fmt.Errorf("empty date")
	}
	if v, err := strconv.ParseFloat(label, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, label)
		if err != nil {
			continue
		}
		return decimalYear(t), nil
	}
	return 0, fmt.Errorf("unparsable date %q", label)
}

func decimalYear(t time.Time) float64 {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(t.Year()) + t.Sub(start).Hours()/end.Sub(start).Hours()
}

func parseValue(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
