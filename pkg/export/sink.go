package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tidalsec/entradump/internal/message"
	"github.com/tidalsec/entradump/pkg/types"
)

// CSVSink writes the final records under OutputPath. An empty FileName
// gets a timestamped default.
type CSVSink struct {
	OutputPath string
	FileName   string
}

// Write sorts the records by display name (empty names first), creates
// the destination directory if needed, and writes one CSV row per
// record. Returns the written path.
func (s *CSVSink) Write(records []types.Record) (string, error) {
	sorted := make([]types.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayName < sorted[j].DisplayName
	})

	filename := s.FileName
	if filename == "" {
		filename = fmt.Sprintf("entra-users-%s.csv", time.Now().Format("2006-01-02-150405"))
	}
	fullpath := filepath.Join(s.OutputPath, filename)

	dir := filepath.Dir(fullpath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", err
		}
	}

	file, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(types.RecordHeader()); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, record := range sorted {
		if err := writer.Write(record.Row()); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	message.Success("CSV output written to %s (%d users)", fullpath, len(sorted))
	return fullpath, nil
}
