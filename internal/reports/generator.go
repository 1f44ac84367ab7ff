package reports

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"foodcpi/internal/models"
	"foodcpi/internal/selector"
)

//go:embed notes.md
var datasetNotes []byte

// HeaderInput is everything the page header describes
type HeaderInput struct {
	View       *selector.View
	Specs      []models.SeriesSpec
	Projection *models.Projection
	TrendErr   error
	NoData     bool
	Unit       string
}

// HeaderRenderer writes the view header as markdown and renders it with goldmark
type HeaderRenderer struct {
	goldmark goldmark.Markdown
}

// NewHeaderRenderer creates a header renderer
func NewHeaderRenderer() *HeaderRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &HeaderRenderer{goldmark: md}
}

// Markdown returns the header text for in
func (h *HeaderRenderer) Markdown(in HeaderInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", in.View.Title)
	if in.View.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", in.View.Description)
	}

	if in.NoData {
		fmt.Fprintf(&b, "_%s_\n", models.NoDataMessage)
		return b.String()
	}

	if len(in.Specs) > 0 {
		labels := make([]string, len(in.Specs))
		for i, s := range in.Specs {
			labels[i] = s.Label
			if s.Role == models.RoleBaseline {
				labels[i] = "**" + s.Label + "**"
			}
		}
		fmt.Fprintf(&b, "Showing %s.\n\n", joinLabels(labels))
	}

	switch {
	case in.Projection != nil:
		p := in.Projection
		fmt.Fprintf(&b, "Projected **%s** for **%d**: %s%s (trend %s%s per year).\n",
			p.Column, p.Year, formatNumber(p.Value, 2), in.Unit, formatSigned(p.Slope, 3), in.Unit)
	case in.TrendErr != nil:
		fmt.Fprintf(&b, "_Trend unavailable: %s._\n", in.TrendErr)
	}

	return b.String()
}

// Render converts the header markdown to HTML
func (h *HeaderRenderer) Render(in HeaderInput) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(h.Markdown(in)), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func formatSigned(v float64, digits int) string {
	s := formatNumber(v, digits)
	if v > 0 && s != "0" {
		return "+" + s
	}
	return s
}

// NotesRenderer renders the dataset notes with gomarkdown
type NotesRenderer struct {
	source []byte
}

// NewNotesRenderer creates a renderer for the built-in dataset notes
func NewNotesRenderer() *NotesRenderer {
	return &NotesRenderer{source: datasetNotes}
}

// Render converts the notes to HTML
func (n *NotesRenderer) Render() template.HTML {
	extensions := mdparser.CommonExtensions | mdparser.AutoHeadingIDs
	p := mdparser.NewWithExtensions(extensions)
	doc := p.Parse(append([]byte(nil), n.source...))

	htmlFlags := mdhtml.CommonFlags | mdhtml.HrefTargetBlank
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: htmlFlags})

	return template.HTML(markdown.Render(doc, renderer))
}
