package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"skisnap/internal/charts"
	"skisnap/internal/config"
	"skisnap/internal/models"
)

// PageTitle heads every snapshot page
const PageTitle = "Ski Conditions"

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
}

// NewHTMLBuilder creates an HTML builder. Raw HTML in the digest is not
// passed through.
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
	}
}

// TemplateData is what the page template renders
type TemplateData struct {
	Title            string
	SnapshotID       string
	Today            string
	GeneratedAt      string
	Version          string
	CSSFilePath      string
	EChartsScriptURL string
	Digest           template.HTML
	OverviewImage    string
	Avalanche        *models.AvalancheAssessment
	Resorts          []ResortSection
}

// ResortSection is a resort view plus its rendered chart
type ResortSection struct {
	models.ResortView
	Chart template.HTML
}

// PageInput carries everything the page is built from
type PageInput struct {
	Snapshot *models.Snapshot
	Digest   string
	// Charts holds snowfall snippets keyed by resort ID
	Charts map[string]charts.ChartSnippet
	// OverviewImage is the overview file name, empty when none was rendered
	OverviewImage string
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// GenerateStaticCSS returns the static CSS content
func (h *HTMLBuilder) GenerateStaticCSS() (string, error) {
	css, err := h.templateLoader.LoadCSSStyles()
	if err != nil {
		return "", fmt.Errorf("failed to load CSS: %w", err)
	}
	return css, nil
}

// BuildCompleteHTML renders the snapshot page
func (h *HTMLBuilder) BuildCompleteHTML(in PageInput) (string, error) {
	if in.Snapshot == nil {
		return "", fmt.Errorf("snapshot is required")
	}

	digest, err := h.ConvertMarkdownToHTML(in.Digest)
	if err != nil {
		return "", err
	}

	snap := in.Snapshot
	data := TemplateData{
		Title:            PageTitle,
		SnapshotID:       snap.ID,
		Today:            snap.Today,
		GeneratedAt:      snap.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
		Version:          config.GetVersion(),
		CSSFilePath:      StylesFile,
		EChartsScriptURL: charts.EChartsScriptURL,
		Digest:           template.HTML(digest),
		OverviewImage:    in.OverviewImage,
		Avalanche:        snap.Avalanche,
		Resorts:          make([]ResortSection, 0, len(snap.Resorts)),
	}
	for _, v := range snap.Resorts {
		section := ResortSection{ResortView: v}
		if snippet, ok := in.Charts[v.ID]; ok {
			section.Chart = template.HTML(snippet.HTML)
		}
		data.Resorts = append(data.Resorts, section)
	}

	return h.executeTemplate(data)
}

// executeTemplate executes the HTML template with the provided data
func (h *HTMLBuilder) executeTemplate(data TemplateData) (string, error) {
	htmlTemplate, err := h.templateLoader.LoadHTMLTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to load HTML template: %w", err)
	}

	tmpl, err := template.New("report").Funcs(templateFuncs()).Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
