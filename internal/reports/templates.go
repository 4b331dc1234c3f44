package reports

import (
	"embed"
	"fmt"
)

//go:embed templates/index.html.tmpl templates/styles.css
var templateFS embed.FS

const (
	htmlTemplatePath = "templates/index.html.tmpl"
	cssPath          = "templates/styles.css"
)

// TemplateLoader handles loading HTML templates and CSS styles
type TemplateLoader struct {
	fs embed.FS
}

// NewTemplateLoader creates a loader over the embedded templates
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{fs: templateFS}
}

// LoadHTMLTemplate loads the page template
func (t *TemplateLoader) LoadHTMLTemplate() (string, error) {
	content, err := t.fs.ReadFile(htmlTemplatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", htmlTemplatePath, err)
	}
	return string(content), nil
}

// LoadCSSStyles loads the stylesheet
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	content, err := t.fs.ReadFile(cssPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", cssPath, err)
	}
	return string(content), nil
}
