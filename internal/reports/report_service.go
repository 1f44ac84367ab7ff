package reports

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"math"

	"foodcpi/internal/charts"
	"foodcpi/internal/config"
	"foodcpi/internal/models"
	"foodcpi/internal/selector"
	"foodcpi/internal/trend"
)

var (
	// ErrUnknownView is returned for a view id missing from the catalog
	ErrUnknownView = errors.New("unknown view")
	// ErrNoChart is returned when a chart is requested for a table-only view
	ErrNoChart = errors.New("view has no chart")
)

// TableSource supplies the CPI dataset
type TableSource interface {
	Load(ctx context.Context) (*models.PriceTable, error)
}

// Dashboard is one view computed for one selection
type Dashboard struct {
	View       *selector.View
	State      models.SelectionState
	Table      *models.PriceTable
	LoadErr    error
	Specs      []models.SeriesSpec
	Target     string
	Year       int
	Overlay    *charts.Overlay
	Projection *models.Projection
	TrendErr   error
}

// NoData reports whether the dataset is unavailable or empty
func (d *Dashboard) NoData() bool {
	return d.Table.Empty()
}

// Service renders dashboard views
type Service struct {
	source  TableSource
	catalog *selector.Catalog
	charts  *charts.ChartGenerator
	header  *HeaderRenderer
	notes   *NotesRenderer
	tables  *TableRenderer
	pages   *PageBuilder
	version string
}

// NewService creates a dashboard service over a dataset and view catalog
func NewService(source TableSource, catalog *selector.Catalog) (*Service, error) {
	pages, err := NewPageBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize page builder: %w", err)
	}

	return &Service{
		source:  source,
		catalog: catalog,
		charts:  charts.NewChartGenerator(catalog.Unit),
		header:  NewHeaderRenderer(),
		notes:   NewNotesRenderer(),
		tables:  NewTableRenderer(),
		pages:   pages,
		version: config.GetVersion(),
	}, nil
}

// Catalog returns the view catalog
func (s *Service) Catalog() *selector.Catalog {
	return s.catalog
}

// Compute loads the dataset and derives the series and trend for a view
func (s *Service) Compute(ctx context.Context, viewID string, state models.SelectionState) (*Dashboard, error) {
	view, ok := s.catalog.Get(viewID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, viewID)
	}

	table, loadErr := s.source.Load(ctx)
	if table == nil {
		table = models.NewEmptyTable()
	}

	d := &Dashboard{
		View:    view,
		State:   state,
		Table:   table,
		LoadErr: loadErr,
		Specs:   selector.Select(table, view, state, s.catalog.Unit),
	}

	if view.Trend && !table.Empty() {
		d.Target = selector.ResolveTarget(table, view, state.Target)
		d.Year = projectionYear(table, state.Number)

		line, err := trend.Fit(table, d.Target)
		if err != nil {
			d.TrendErr = err
			return d, nil
		}
		d.Projection = line.Project(d.Year)
		d.Overlay = &charts.Overlay{
			Spec:       selector.TrendSpec(d.Target, s.catalog.Unit),
			Line:       line,
			Projection: d.Projection,
		}
	}

	return d, nil
}

// projectionYear uses the numeric input when it is a plausible year,
// otherwise the year after the data
func projectionYear(table *models.PriceTable, number *float64) int {
	if number != nil {
		if y := math.Round(*number); y >= 1 && y <= 9999 {
			return int(y)
		}
	}
	next, _ := trend.NextYear(table)
	return next
}

// RenderPage renders the full HTML page for a view. Static pages link to
// sibling files and carry no form.
func (s *Service) RenderPage(ctx context.Context, viewID string, state models.SelectionState, static bool) (string, error) {
	d, err := s.Compute(ctx, viewID, state)
	if err != nil {
		return "", err
	}

	header, err := s.header.Render(HeaderInput{
		View:       d.View,
		Specs:      d.Specs,
		Projection: d.Projection,
		TrendErr:   d.TrendErr,
		NoData:     d.NoData(),
		Unit:       s.catalog.Unit,
	})
	if err != nil {
		return "", err
	}

	data := PageData{
		View:       d.View,
		Nav:        NavLinks(s.catalog, d.View.ID, static),
		Header:     header,
		FormAction: ViewHref(d.View.ID, false),
		HasChart:   d.View.HasChart(),
		Notes:      s.notes.Render(),
		Version:    s.version,
	}

	if !static {
		data.Controls = BuildControls(d.Table, d.View, d.State, d.Year)
	}

	if data.HasChart {
		snippet, err := s.charts.LineSnippet(d.Table, d.View, d.Specs, d.Overlay)
		if err != nil {
			return "", err
		}
		data.Chart = template.HTML(snippet.HTML)
	}

	if d.View.Table {
		data.Grid = s.tables.RenderGrid(d.Table)
		data.Table = s.tables.Render(d.Table)
	}

	if !d.NoData() {
		data.Exports = exportLinks(d, static)
	}

	return s.pages.Build(data)
}

func exportLinks(d *Dashboard, static bool) []Link {
	var links []Link
	if d.View.HasChart() {
		href := d.View.ID + ".png"
		if !static {
			href = "/export/chart/" + href
			if q := d.State.Values().Encode(); q != "" {
				href += "?" + q
			}
		}
		links = append(links, Link{Title: "Chart (PNG)", Href: href})
	}
	if !static {
		links = append(links, Link{Title: "Table (Excel)", Href: "/export/table.xlsx"})
	}
	return links
}

// RenderChartPNG writes the chart of a view as a PNG image
func (s *Service) RenderChartPNG(ctx context.Context, w io.Writer, viewID string, state models.SelectionState) error {
	d, err := s.Compute(ctx, viewID, state)
	if err != nil {
		return err
	}
	if !d.View.HasChart() {
		return fmt.Errorf("%w: %s", ErrNoChart, viewID)
	}
	return s.charts.RenderPNG(w, d.Table, d.View, d.Specs, d.Overlay)
}

// WriteWorkbook exports the dataset as an Excel workbook
func (s *Service) WriteWorkbook(ctx context.Context, w io.Writer) error {
	table, _ := s.source.Load(ctx)
	return WriteWorkbook(w, table)
}

// SeriesValues is one series with its values, null where missing
type SeriesValues struct {
	models.SeriesSpec
	Values []*float64 `json:"values"`
}

// SeriesResponse is the JSON form of a computed view
type SeriesResponse struct {
	View       string             `json:"view"`
	Title      string             `json:"title"`
	DateColumn string             `json:"date_column"`
	Labels     []string           `json:"labels"`
	Series     []SeriesValues     `json:"series"`
	Trend      *SeriesValues      `json:"trend,omitempty"`
	Projection *models.Projection `json:"projection,omitempty"`
	TrendError string             `json:"trend_error,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// SeriesData returns the series of a view as plain data
func (s *Service) SeriesData(ctx context.Context, viewID string, state models.SelectionState) (*SeriesResponse, error) {
	d, err := s.Compute(ctx, viewID, state)
	if err != nil {
		return nil, err
	}

	resp := &SeriesResponse{
		View:       d.View.ID,
		Title:      d.View.Title,
		DateColumn: d.Table.DateColumn,
		Labels:     d.Table.Labels(),
		Series:     make([]SeriesValues, 0, len(d.Specs)),
		Projection: d.Projection,
	}
	if d.LoadErr != nil {
		resp.Error = models.NoDataMessage
	}
	if d.TrendErr != nil {
		resp.TrendError = d.TrendErr.Error()
	}

	for _, spec := range d.Specs {
		values, _ := d.Table.Column(spec.Column)
		resp.Series = append(resp.Series, SeriesValues{SeriesSpec: spec, Values: nullable(values, d.Table.Len())})
	}
	if d.Overlay != nil && d.Overlay.Line != nil {
		resp.Trend = &SeriesValues{SeriesSpec: d.Overlay.Spec, Values: nullable(d.Overlay.Line.Fitted(d.Table), d.Table.Len())}
	}

	return resp, nil
}

func nullable(values []float64, n int) []*float64 {
	out := make([]*float64, n)
	for i := 0; i < n && i < len(values); i++ {
		if !math.IsNaN(values[i]) {
			v := values[i]
			out[i] = &v
		}
	}
	return out
}
