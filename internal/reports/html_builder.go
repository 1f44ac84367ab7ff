package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"foodcpi/internal/charts"
	"foodcpi/internal/models"
	"foodcpi/internal/selector"
)

// Link is a titled href
type Link struct {
	Title  string
	Href   string
	Active bool
}

// Choice is one entry of a checkbox group or select box
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// Controls describes the form widgets shown for a view
type Controls struct {
	Visible    bool
	Options    []Choice
	Categories []Choice
	Targets    []Choice
	ShowYear   bool
	Year       string
}

// PageData represents the data structure for the page template
type PageData struct {
	View        *selector.View
	Nav         []Link
	Header      template.HTML
	Controls    Controls
	FormAction  string
	HasChart    bool
	Chart       template.HTML
	EChartsURL  string
	Exports     []Link
	Grid        template.HTML
	Table       template.HTML
	Notes       template.HTML
	Version     string
	GeneratedAt string
}

// PageBuilder assembles complete dashboard pages from the embedded template
type PageBuilder struct {
	tmpl *template.Template
}

// NewPageBuilder parses the page template
func NewPageBuilder() (*PageBuilder, error) {
	source, err := NewTemplateLoader().LoadHTMLTemplate()
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("page").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &PageBuilder{tmpl: tmpl}, nil
}

// Build executes the page template
func (p *PageBuilder) Build(data PageData) (string, error) {
	if data.EChartsURL == "" {
		data.EChartsURL = charts.EChartsCDN
	}
	if data.GeneratedAt == "" {
		data.GeneratedAt = time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// NavLinks lists every view. Static pages link to sibling files instead of routes.
func NavLinks(catalog *selector.Catalog, active string, static bool) []Link {
	links := make([]Link, 0, len(catalog.Views))
	for _, v := range catalog.Views {
		links = append(links, Link{
			Title:  v.Title,
			Href:   ViewHref(v.ID, static),
			Active: v.ID == active,
		})
	}
	return links
}

// ViewHref returns the link to a view
func ViewHref(id string, static bool) string {
	if static {
		return id + ".html"
	}
	return "/view/" + url.PathEscape(id)
}

// BuildControls derives the form widgets for a view from the table and selection
func BuildControls(table *models.PriceTable, view *selector.View, state models.SelectionState, year int) Controls {
	c := Controls{}
	if !view.HasChart() {
		return c
	}

	for _, opt := range view.Options {
		if !table.HasColumn(opt.Column) {
			continue
		}
		label := opt.Label
		if label == "" {
			label = opt.Column
		}
		c.Options = append(c.Options, Choice{Value: opt.Key, Label: label, Selected: state.IsChecked(opt.Key)})
	}

	for _, col := range selector.Categories(table, view) {
		c.Categories = append(c.Categories, Choice{Value: col, Label: col, Selected: state.HasCategory(col)})
	}

	if view.Trend {
		target := selector.ResolveTarget(table, view, state.Target)
		for _, col := range selector.Targets(table, view) {
			c.Targets = append(c.Targets, Choice{Value: col, Label: col, Selected: col == target})
		}
		c.ShowYear = true
		if year > 0 {
			c.Year = strconv.Itoa(year)
		}
	}

	c.Visible = len(c.Options) > 0 || len(c.Categories) > 0 || len(c.Targets) > 0 || c.ShowYear
	return c
}
