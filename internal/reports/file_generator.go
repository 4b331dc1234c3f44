package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"skisnap/internal/charts"
	"skisnap/internal/llm"
	"skisnap/internal/logger"
	"skisnap/internal/models"
)

// Published file names
const (
	IndexFile    = "index.html"
	SnapshotFile = "snapshot.json"
	StylesFile   = "styles.css"
	DigestFile   = "digest.md"
	OverviewFile = charts.OverviewFile
)

// FileGenerator handles generation of all snapshot files
type FileGenerator struct {
	htmlBuilder *HTMLBuilder
	chartGen    *charts.ChartGenerator
	digester    *llm.Digester
}

// GeneratedFiles contains all files generated for a snapshot
type GeneratedFiles struct {
	HTMLContent string
	JSONFiles   map[string][]byte
	AssetFiles  map[string][]byte // CSS, images, markdown
}

// Files flattens the generated files into one name to content map
func (g *GeneratedFiles) Files() map[string][]byte {
	out := make(map[string][]byte, len(g.JSONFiles)+len(g.AssetFiles)+1)
	for name, data := range g.JSONFiles {
		out[name] = data
	}
	for name, data := range g.AssetFiles {
		out[name] = data
	}
	out[IndexFile] = []byte(g.HTMLContent)
	return out
}

// NewFileGenerator creates a new file generator
func NewFileGenerator(htmlBuilder *HTMLBuilder, chartGen *charts.ChartGenerator, digester *llm.Digester) *FileGenerator {
	return &FileGenerator{
		htmlBuilder: htmlBuilder,
		chartGen:    chartGen,
		digester:    digester,
	}
}

// GenerateAllFiles renders every published file of the snapshot. Charts are
// optional; a missing chart never fails generation.
func (fg *FileGenerator) GenerateAllFiles(ctx context.Context, snapshot *models.Snapshot) (*GeneratedFiles, error) {
	if snapshot == nil {
		return nil, errors.New("snapshot is required")
	}

	files := &GeneratedFiles{
		JSONFiles:  make(map[string][]byte),
		AssetFiles: make(map[string][]byte),
	}

	snapshotJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	files.JSONFiles[SnapshotFile] = snapshotJSON

	css, err := fg.htmlBuilder.GenerateStaticCSS()
	if err != nil {
		return nil, err
	}
	files.AssetFiles[StylesFile] = []byte(css)

	digest := fg.digester.Digest(ctx, snapshot)
	files.AssetFiles[DigestFile] = []byte(digest)

	overview := ""
	if png, err := fg.chartGen.GenerateOverviewPNG(snapshot); err == nil {
		files.AssetFiles[OverviewFile] = png
		overview = OverviewFile
	} else if !errors.Is(err, charts.ErrNoChartData) {
		logger.Warn("Failed to generate snowfall overview", map[string]interface{}{"error": err.Error()})
	}

	snippets := make(map[string]charts.ChartSnippet, len(snapshot.Resorts))
	for _, v := range snapshot.Resorts {
		snippet, err := fg.chartGen.GenerateSnowfallSnippet(v)
		if err != nil {
			if !errors.Is(err, charts.ErrNoChartData) {
				logger.Warn("Failed to generate snowfall chart", map[string]interface{}{
					"resort": v.ID,
					"error":  err.Error(),
				})
			}
			continue
		}
		snippets[v.ID] = snippet
	}

	html, err := fg.htmlBuilder.BuildCompleteHTML(PageInput{
		Snapshot:      snapshot,
		Digest:        digest,
		Charts:        snippets,
		OverviewImage: overview,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}
	files.HTMLContent = html

	logger.Debug("Generated snapshot files", map[string]interface{}{
		"snapshot_id": snapshot.ID,
		"html_bytes":  len(html),
		"charts":      len(snippets),
		"overview":    overview != "",
	})
	return files, nil
}
