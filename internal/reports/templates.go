package reports

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateLoader loads the built-in page templates
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate returns the dashboard page template
func (t *TemplateLoader) LoadHTMLTemplate() (string, error) {
	content, err := templateFS.ReadFile("templates/page.html")
	if err != nil {
		return "", fmt.Errorf("failed to read page template: %w", err)
	}
	return string(content), nil
}
