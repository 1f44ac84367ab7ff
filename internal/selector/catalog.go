package selector

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed views.toml
var defaultViews []byte

// AxisRange fixes the y-axis bounds of a chart
type AxisRange struct {
	Min float64 `toml:"min" json:"min"`
	Max float64 `toml:"max" json:"max"`
}

// Option is a checkbox that adds one column to the chart
type Option struct {
	Key    string `toml:"key" json:"key"`
	Column string `toml:"column" json:"column"`
	Label  string `toml:"label" json:"label"`
}

// View is one dashboard page
type View struct {
	ID             string     `toml:"id" json:"id"`
	Title          string     `toml:"title" json:"title"`
	Description    string     `toml:"description" json:"description"`
	Baseline       string     `toml:"baseline" json:"baseline,omitempty"`
	Options        []Option   `toml:"options" json:"options,omitempty"`
	FreeCategories bool       `toml:"free_categories" json:"free_categories"`
	Trend          bool       `toml:"trend" json:"trend"`
	YAxis          *AxisRange `toml:"y_axis" json:"y_axis,omitempty"`
	Table          bool       `toml:"table" json:"table"`
}

// HasChart reports whether the view draws a chart
func (v *View) HasChart() bool {
	return v != nil && v.Baseline != ""
}

// Catalog is the ordered set of dashboard views
type Catalog struct {
	DefaultView string `toml:"default_view"`
	Unit        string `toml:"unit"`
	Views       []View `toml:"views"`
}

// DefaultCatalog returns the built-in view catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultViews)
}

// LoadCatalog reads a catalog file, or the built-in catalog when path is empty
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read views file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a TOML view catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse views: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Views) == 0 {
		return fmt.Errorf("catalog defines no views")
	}

	ids := make(map[string]bool, len(c.Views))
	for _, v := range c.Views {
		if v.ID == "" {
			return fmt.Errorf("view %q has no id", v.Title)
		}
		if ids[v.ID] {
			return fmt.Errorf("duplicate view id %q", v.ID)
		}
		ids[v.ID] = true

		keys := make(map[string]bool, len(v.Options))
		for _, o := range v.Options {
			if o.Key == "" || o.Column == "" {
				return fmt.Errorf("view %q: option needs a key and a column", v.ID)
			}
			if keys[o.Key] {
				return fmt.Errorf("view %q: duplicate option key %q", v.ID, o.Key)
			}
			keys[o.Key] = true
		}
		if v.YAxis != nil && v.YAxis.Min >= v.YAxis.Max {
			return fmt.Errorf("view %q: y_axis min must be below max", v.ID)
		}
		if (v.Trend || v.FreeCategories || len(v.Options) > 0) && v.Baseline == "" {
			return fmt.Errorf("view %q: charted views need a baseline", v.ID)
		}
	}

	if c.DefaultView == "" {
		c.DefaultView = c.Views[0].ID
	}
	if !ids[c.DefaultView] {
		return fmt.Errorf("default view %q is not defined", c.DefaultView)
	}
	return nil
}

// Get returns the view with the given id
func (c *Catalog) Get(id string) (*View, bool) {
	for i := range c.Views {
		if c.Views[i].ID == id {
			return &c.Views[i], true
		}
	}
	return nil, false
}

// Default returns the landing view
func (c *Catalog) Default() *View {
	v, _ := c.Get(c.DefaultView)
	return v
}
