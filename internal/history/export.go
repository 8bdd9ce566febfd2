// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// RunExport bundles a run with its per-file records for export.
type RunExport struct {
	Run   Run          `json:"run" yaml:"run"`
	Files []FileRecord `json:"files" yaml:"files"`
}

// Export collects every recorded run with its file records, newest run
// first.
func (s *Store) Export(ctx context.Context) ([]RunExport, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs`).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting runs: %w", err)
	}

	runs, err := s.Runs(ctx, total)
	if err != nil {
		return nil, err
	}

	exports := make([]RunExport, 0, len(runs))
	for _, r := range runs {
		files, err := s.RunFiles(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		exports = append(exports, RunExport{Run: r, Files: files})
	}
	return exports, nil
}

// ExportYAML writes the full history as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	exports, err := s.Export(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exports); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the full history as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	exports, err := s.Export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exports); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return nil
}
