package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hotmech/simulator/pkg/core"
)

// BatchExport is the root JSON structure of an exported batch.
type BatchExport struct {
	Batch   core.Batch         `json:"batch"`
	Results []core.MatchResult `json:"results"`
}

// exportFileName is "<tag>_<start>.json", with ".gz" appended when compressed.
func exportFileName(batch *core.Batch, compress bool) string {
	tag := batch.Tag
	if tag == "" {
		tag = "batch"
	}
	tag = strings.NewReplacer(" ", "_", ":", "_", "/", "_").Replace(tag)
	name := fmt.Sprintf("%s_%s.json", tag, batch.StartTime.Format("20060102_150405"))
	if compress {
		name += ".gz"
	}
	return name
}

// exportJSON writes the batch and its results to a JSON file, gzipped if configured.
func (b *Backend) exportJSON() error {
	export := BatchExport{
		Batch:   *b.batch,
		Results: slices.Clone(b.results),
	}
	if export.Results == nil {
		export.Results = []core.MatchResult{}
	}
	slices.SortFunc(export.Results, func(x, y core.MatchResult) int { return x.Index - y.Index })

	outputPath := filepath.Join(b.cfg.OutputDir, exportFileName(b.batch, b.cfg.CompressOutput))

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	write := writeJSON
	if b.cfg.CompressOutput {
		write = writeGzipJSON
	}
	if err := write(outputPath, export); err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func writeJSON(path string, data BatchExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(data)
}

func writeGzipJSON(path string, data BatchExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	if err := json.NewEncoder(gzWriter).Encode(data); err != nil {
		gzWriter.Close()
		return err
	}
	return gzWriter.Close()
}
