package mocks

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"skisnap/internal/fetchers"
	"skisnap/internal/models"
)

// IndexFile lists the fixtures of a mocks directory
const IndexFile = "index.yaml"

// Fixture maps a source URL to a canned response body
type Fixture struct {
	// URL is compared on scheme, host and path; the query is ignored unless
	// Query names parameters that must match.
	URL    string            `yaml:"url"`
	Query  map[string]string `yaml:"query,omitempty"`
	File   string            `yaml:"file,omitempty"`
	Status int               `yaml:"status,omitempty"`
}

type fixtureIndex struct {
	Fixtures []Fixture `yaml:"fixtures"`
	Digest   string    `yaml:"digest,omitempty"`
}

// MockService handles loading mock data for offline runs and tests
type MockService struct {
	mocksDir string
	index    fixtureIndex
}

// NewMockService reads the fixture index of mocksDir
func NewMockService(mocksDir string) (*MockService, error) {
	data, err := os.ReadFile(filepath.Join(mocksDir, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture index: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var index fixtureIndex
	if err := dec.Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode fixture index: %w", err)
	}
	for i, f := range index.Fixtures {
		if f.URL == "" {
			return nil, fmt.Errorf("fixture #%d has no url", i+1)
		}
		if f.File == "" && f.Status == 0 {
			return nil, fmt.Errorf("fixture %s needs a file or a status", f.URL)
		}
	}

	return &MockService{
		mocksDir: mocksDir,
		index:    index,
	}, nil
}

// FetchText serves the body of the most specific matching fixture. URLs
// with no fixture fail like a 404 from the network.
func (m *MockService) FetchText(ctx context.Context, rawURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, ok := m.lookup(rawURL)
	if !ok {
		return "", fmt.Errorf("%w: GET %s returned status 404 (no fixture)", fetchers.ErrUnavailable, rawURL)
	}
	if f.Status != 0 && (f.Status < 200 || f.Status > 299) {
		return "", fmt.Errorf("%w: GET %s returned status %d", fetchers.ErrUnavailable, rawURL, f.Status)
	}

	content, err := os.ReadFile(filepath.Join(m.mocksDir, f.File))
	if err != nil {
		return "", fmt.Errorf("failed to read fixture %s: %w", f.File, err)
	}
	return string(content), nil
}

func (m *MockService) lookup(rawURL string) (Fixture, bool) {
	req, err := url.Parse(rawURL)
	if err != nil {
		return Fixture{}, false
	}
	query := req.Query()

	best, bestScore := Fixture{}, -1
	for _, f := range m.index.Fixtures {
		fu, err := url.Parse(f.URL)
		if err != nil || !sameEndpoint(req, fu) {
			continue
		}
		matched := true
		for k, v := range f.Query {
			if query.Get(k) != v {
				matched = false
				break
			}
		}
		if matched && len(f.Query) > bestScore {
			best, bestScore = f, len(f.Query)
		}
	}
	return best, bestScore >= 0
}

func sameEndpoint(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) &&
		strings.EqualFold(a.Host, b.Host) &&
		strings.TrimSuffix(a.Path, "/") == strings.TrimSuffix(b.Path, "/")
}

// LoadMockDigest loads the canned narrative digest, if the index names one
func (m *MockService) LoadMockDigest() (string, error) {
	if m.index.Digest == "" {
		return "", nil
	}
	content, err := os.ReadFile(filepath.Join(m.mocksDir, m.index.Digest))
	if err != nil {
		return "", fmt.Errorf("failed to read mock digest: %w", err)
	}
	return string(content), nil
}

// GenerateDigest serves the canned digest in place of a language model
func (m *MockService) GenerateDigest(ctx context.Context, _ *models.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	digest, err := m.LoadMockDigest()
	if err != nil {
		return "", err
	}
	if digest == "" {
		return "", fmt.Errorf("no mock digest in %s", m.mocksDir)
	}
	return digest, nil
}
