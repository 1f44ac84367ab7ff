package reports

import (
	"errors"
	"strings"
	"testing"

	"foodcpi/internal/models"
	"foodcpi/internal/selector"
)

func TestHeaderMarkdown(t *testing.T) {
	view := &selector.View{ID: "trend", Title: "Trend", Description: "Linear trend."}
	specs := []models.SeriesSpec{
		{Label: "All food", Role: models.RoleBaseline},
		{Label: "Pork", Role: models.OptionRole(1)},
		{Label: "Eggs", Role: models.OptionRole(2)},
	}

	tests := []struct {
		name  string
		input HeaderInput
		want  []string
		skip  []string
	}{
		{
			name:  "no data",
			input: HeaderInput{View: view, Specs: specs, NoData: true},
			want:  []string{"## Trend", "Linear trend.", "_No data available_"},
			skip:  []string{"Showing"},
		},
		{
			name:  "series list",
			input: HeaderInput{View: view, Specs: specs},
			want:  []string{"Showing **All food**, Pork and Eggs."},
		},
		{
			name: "projection",
			input: HeaderInput{View: view, Specs: specs[:1], Unit: "%", Projection: &models.Projection{
				Column: "All food", Year: 2030, Value: 4.256, Slope: 0.1,
			}},
			want: []string{"Projected **All food** for **2030**: 4.26% (trend +0.1% per year)."},
		},
		{
			name:  "trend error",
			input: HeaderInput{View: view, Specs: specs[:1], TrendErr: errors.New("not enough points")},
			want:  []string{"_Trend unavailable: not enough points._"},
		},
	}

	h := NewHeaderRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := h.Markdown(tt.input)
			for _, w := range tt.want {
				if !strings.Contains(md, w) {
					t.Errorf("Expected markdown to contain %q, got:\n%s", w, md)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(md, s) {
					t.Errorf("Expected markdown not to contain %q", s)
				}
			}
		})
	}
}

func TestHeaderRender(t *testing.T) {
	h := NewHeaderRenderer()
	out, err := h.Render(HeaderInput{
		View:  &selector.View{Title: "Overview"},
		Specs: []models.SeriesSpec{{Label: "All food", Role: models.RoleBaseline}},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<h2 id="overview">Overview</h2>`) {
		t.Errorf("Expected heading with id, got %s", html)
	}
	if !strings.Contains(html, "<strong>All food</strong>") {
		t.Errorf("Expected bold baseline, got %s", html)
	}
}

func TestNotesRender(t *testing.T) {
	html := string(NewNotesRenderer().Render())
	if !strings.Contains(html, "<h") {
		t.Errorf("Expected notes to render headings, got %s", html)
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   string
	}{
		{4.256, 2, "4.26"},
		{3.0, 2, "3"},
		{-0.0001, 2, "0"},
		{-1.5, 3, "-1.5"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.v, tt.digits); got != tt.want {
			t.Errorf("formatNumber(%v, %d) = %q, want %q", tt.v, tt.digits, got, tt.want)
		}
	}

	if got := formatSigned(0.25, 3); got != "+0.25" {
		t.Errorf("formatSigned(0.25) = %q", got)
	}

	if got := joinLabels([]string{"a", "b", "c"}); got != "a, b and c" {
		t.Errorf("joinLabels = %q", got)
	}
	if got := joinLabels([]string{"a"}); got != "a" {
		t.Errorf("joinLabels single = %q", got)
	}
}
