package models

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// NoDataMessage is shown in every table and chart slot when the dataset is unavailable
const NoDataMessage = "No data available"

// PriceTable represents the loaded food CPI dataset, one record per date
type PriceTable struct {
	DateColumn string   `json:"date_column"`
	Columns    []string `json:"columns"` // Numeric columns in file order, trimmed
	Records    []Record `json:"records"`
}

// Record is a single row of the CPI dataset
type Record struct {
	Date   string             `json:"date"`   // Date label as it appears in the file
	X      float64            `json:"x"`      // Numeric date (year or decimal year)
	Values map[string]float64 `json:"values"` // NaN marks a missing or unparsable cell
}

// NewEmptyTable returns a table with no columns and no records
func NewEmptyTable() *PriceTable {
	return &PriceTable{}
}

// Len returns the number of records
func (t *PriceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Empty reports whether the table has no records
func (t *PriceTable) Empty() bool {
	return t.Len() == 0
}

// HasColumn reports whether name is one of the numeric columns
func (t *PriceTable) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the values of the named column in record order
func (t *PriceTable) Column(name string) ([]float64, bool) {
	if !t.HasColumn(name) {
		return nil, false
	}
	values := make([]float64, len(t.Records))
	for i, r := range t.Records {
		v, ok := r.Values[name]
		if !ok {
			v = math.NaN()
		}
		values[i] = v
	}
	return values, true
}

// Labels returns the date labels in record order
func (t *PriceTable) Labels() []string {
	labels := make([]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		labels[i] = t.Records[i].Date
	}
	return labels
}

// FirstX returns the smallest numeric date in the table
func (t *PriceTable) FirstX() (float64, bool) {
	if t.Empty() {
		return 0, false
	}
	first := t.Records[0].X
	for _, r := range t.Records[1:] {
		if r.X < first {
			first = r.X
		}
	}
	return first, true
}

// LastX returns the largest numeric date in the table
func (t *PriceTable) LastX() (float64, bool) {
	if t.Empty() {
		return 0, false
	}
	last := t.Records[0].X
	for _, r := range t.Records[1:] {
		if r.X > last {
			last = r.X
		}
	}
	return last, true
}

// FormatValue renders a cell for display, blank for missing values
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SelectionState holds the current values of the dashboard controls
type SelectionState struct {
	Checked    []string `json:"checked"`    // Checkbox keys
	Categories []string `json:"categories"` // Multi-select column names
	Target     string   `json:"target"`     // Single-select column name
	Number     *float64 `json:"number"`     // Numeric input, nil when unset
}

// ParseSelection builds a selection from query-style values.
// Keys: opt (repeated), cat (repeated), target, year.
func ParseSelection(values map[string][]string) SelectionState {
	var s SelectionState
	for _, v := range values["opt"] {
		if v = strings.TrimSpace(v); v != "" {
			s.Checked = append(s.Checked, v)
		}
	}
	for _, v := range values["cat"] {
		if v = strings.TrimSpace(v); v != "" {
			s.Categories = append(s.Categories, v)
		}
	}
	if t := values["target"]; len(t) > 0 {
		s.Target = strings.TrimSpace(t[0])
	}
	if y := values["year"]; len(y) > 0 {
		if n, err := strconv.ParseFloat(strings.TrimSpace(y[0]), 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			s.Number = &n
		}
	}
	return s
}

// Values encodes the selection back into query form, the inverse of ParseSelection
func (s SelectionState) Values() url.Values {
	v := url.Values{}
	for _, k := range s.Checked {
		v.Add("opt", k)
	}
	for _, c := range s.Categories {
		v.Add("cat", c)
	}
	if s.Target != "" {
		v.Set("target", s.Target)
	}
	if s.Number != nil {
		v.Set("year", strconv.FormatFloat(*s.Number, 'f', -1, 64))
	}
	return v
}

// IsChecked reports whether key is among the checked keys
func (s SelectionState) IsChecked(key string) bool {
	for _, k := range s.Checked {
		if k == key {
			return true
		}
	}
	return false
}

// HasCategory reports whether name is among the selected categories
func (s SelectionState) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Role identifies a series position for styling purposes
type Role string

const (
	RoleBaseline Role = "baseline"
	RoleTrend    Role = "trend"
)

// OptionRole returns the role of the n-th optional series (1-based)
func OptionRole(n int) Role {
	return Role("option " + strconv.Itoa(n))
}

// SeriesSpec describes one chart series derived from the current selection
type SeriesSpec struct {
	Column        string `json:"column"`
	Label         string `json:"label"`
	Color         string `json:"color"`
	Marker        string `json:"marker"`
	HoverTemplate string `json:"hover_template"`
	Role          Role   `json:"role"`
}

// Projection is a trend value extrapolated to a calendar year
type Projection struct {
	Column    string  `json:"column"`
	Year      int     `json:"year"`
	Value     float64 `json:"value"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}
