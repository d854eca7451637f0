// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes extraction results to files: CSV and XLSX tables
// for spreadsheet work, JSON and YAML for downstream tooling. All formats
// share the same columns and field defaults, so switching format never
// changes the data.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (types.ExportFormat, error) {
	switch f := types.ExportFormat(strings.ToLower(s)); f {
	case types.FormatCSV, types.FormatXLSX, types.FormatJSON, types.FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv, xlsx, json, or yaml)", s)
	}
}

func extension(f types.ExportFormat) string {
	return "." + string(f)
}

// WritePublications writes a profile listing into cfg.OutDir as
// <stem>.<format> and returns the written path.
func WritePublications(cfg types.ExportConfig, stem string, pubs []types.Publication) (string, error) {
	path, err := exportPath(cfg, stem)
	if err != nil {
		return "", err
	}
	switch cfg.Format {
	case types.FormatCSV:
		err = WriteProfileCSV(path, pubs)
	case types.FormatXLSX:
		err = WriteProfileXLSX(path, pubs)
	case types.FormatJSON:
		err = writeJSON(path, pubs)
	case types.FormatYAML:
		err = writeYAML(path, pubs)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteCitingRecords writes a cited-by listing into cfg.OutDir as
// <stem>.<format> and returns the written path.
func WriteCitingRecords(cfg types.ExportConfig, stem string, recs []types.CitingRecord) (string, error) {
	path, err := exportPath(cfg, stem)
	if err != nil {
		return "", err
	}
	switch cfg.Format {
	case types.FormatCSV:
		err = WriteCitersCSV(path, recs)
	case types.FormatXLSX:
		err = WriteCitersXLSX(path, recs)
	case types.FormatJSON:
		err = writeJSON(path, recs)
	case types.FormatYAML:
		err = writeYAML(path, recs)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func exportPath(cfg types.ExportConfig, stem string) (string, error) {
	switch cfg.Format {
	case types.FormatCSV, types.FormatXLSX, types.FormatJSON, types.FormatYAML:
	default:
		return "", fmt.Errorf("unknown export format %q", cfg.Format)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	return filepath.Join(cfg.OutDir, stem+extension(cfg.Format)), nil
}
