package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"skisnap/internal/models"
)

// ErrNoResorts is returned when the resort file lists nothing to process
var ErrNoResorts = errors.New("resort list is empty")

type resortsFile struct {
	Resorts []models.ResortConfig `yaml:"resorts"`
}

// LoadResorts reads and validates the resort list. Any error here is fatal for a run.
func LoadResorts(path string) ([]models.ResortConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resorts file: %w", err)
	}
	resorts, err := ParseResorts(data)
	if err != nil {
		return nil, fmt.Errorf("resorts file %s: %w", path, err)
	}
	return resorts, nil
}

// ParseResorts decodes a resort list, rejecting unknown keys
func ParseResorts(data []byte) ([]models.ResortConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file resortsFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoResorts
		}
		return nil, fmt.Errorf("decode resorts: %w", err)
	}
	if len(file.Resorts) == 0 {
		return nil, ErrNoResorts
	}

	seen := make(map[string]bool, len(file.Resorts))
	for i := range file.Resorts {
		r := &file.Resorts[i]
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		if err := validateResort(*r); err != nil {
			return nil, fmt.Errorf("resort #%d: %w", i+1, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("resort #%d: duplicate id %q", i+1, r.ID)
		}
		seen[r.ID] = true
	}
	return file.Resorts, nil
}

func validateResort(r models.ResortConfig) error {
	if r.ID == "" {
		return errors.New("id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("%s: name is required", r.ID)
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		return fmt.Errorf("%s: latitude %v out of range", r.ID, r.Latitude)
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return fmt.Errorf("%s: longitude %v out of range", r.ID, r.Longitude)
	}
	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			return fmt.Errorf("%s: timezone %q: %w", r.ID, r.Timezone, err)
		}
	}
	return nil
}
