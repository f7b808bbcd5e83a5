package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/models"
)

// CSVSource reads atp_matches_YYYY.csv files from a data directory,
// one file per season.
type CSVSource struct {
	dir    string
	logger *zap.SugaredLogger
}

func NewCSVSource(dir string, logger *zap.Logger) *CSVSource {
	return &CSVSource{dir: dir, logger: logger.Sugar()}
}

// Matches loads the rows for the requested years. Files that fail to
// parse are skipped with a log line; the batch fails only when nothing
// at all could be loaded.
func (s *CSVSource) Matches(ctx context.Context, years []int) ([]models.MatchRecord, error) {
	files, err := s.listFiles(years)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files under %s", ErrNoData, s.dir)
	}

	var records []models.MatchRecord
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := readMatchFile(f)
		if err != nil {
			s.logger.Warnw("Skipping unreadable match file", "file", f, "error", err)
			continue
		}
		records = append(records, rows...)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %d files, 0 usable rows", ErrNoData, len(files))
	}

	s.logger.Infow("Loaded match files", "files", len(files), "rows", len(records))
	return records, nil
}

func (s *CSVSource) listFiles(years []int) ([]string, error) {
	if len(years) == 0 {
		matches, err := filepath.Glob(filepath.Join(s.dir, "atp_matches_*.csv"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		return matches, nil
	}

	var files []string
	for _, y := range years {
		f := filepath.Join(s.dir, fmt.Sprintf("atp_matches_%d.csv", y))
		if _, err := os.Stat(f); err == nil {
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files, nil
}

func readMatchFile(path string) ([]models.MatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // season files vary in trailing stat columns

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []models.MatchRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Catastrophic parse failure on a single line drops that
			// line only
			continue
		}
		m := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		rec := models.RecordFromRow(m)
		if rec.WinnerName == "" || rec.LoserName == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
