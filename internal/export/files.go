package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/logger"
	"github.com/theirongolddev/feeplan/internal/model"
	"github.com/theirongolddev/feeplan/internal/store"
)

// Format selects which files an export writes.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatTasksCSV Format = "tasks-csv"
	FormatXLSX     Format = "xlsx"
	FormatSQLite   Format = "sqlite"
	FormatAll      Format = "all"
)

// DBName is the SQLite export file name inside the output directory.
const DBName = "feeplan.db"

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatTasksCSV, FormatXLSX, FormatSQLite, FormatAll:
		return f, nil
	case "":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q (want csv, tasks-csv, xlsx, sqlite or all)", ErrUnknownFormat, s)
}

func (f Format) includes(g Format) bool {
	return f == g || f == FormatAll
}

// Request describes one export run.
type Request struct {
	Dir    string
	Format Format
	Result model.EstimateResult
	Params estimate.Params
	Locale cli.Locale
}

// FileNames returns the file names a discipline's export uses.
func FileNames(discipline string) (workplanCSV, tasksCSV, workplanXLSX string) {
	return discipline + "-workplan.csv", discipline + "-tasks.csv", discipline + "-workplan.xlsx"
}

// Write produces every file the request's format selects and returns their
// paths in write order.
func Write(req Request) ([]string, error) {
	log := logger.For("export")

	if err := os.MkdirAll(req.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	csvName, tasksName, xlsxName := FileNames(req.Result.Discipline)
	var paths []string

	writeFile := func(name string, fn func(io.Writer) error) error {
		var buf bytes.Buffer
		if err := fn(&buf); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		path := filepath.Join(req.Dir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		log.Debug().Str("path", path).Int("bytes", buf.Len()).Msg("wrote export file")
		paths = append(paths, path)
		return nil
	}

	if req.Format.includes(FormatCSV) {
		err := writeFile(csvName, func(w io.Writer) error { return WriteCSV(w, req.Result, req.Locale) })
		if err != nil {
			return paths, err
		}
	}
	if req.Format.includes(FormatTasksCSV) {
		err := writeFile(tasksName, func(w io.Writer) error { return WriteTasksCSV(w, req.Result) })
		if err != nil {
			return paths, err
		}
	}
	if req.Format.includes(FormatXLSX) {
		err := writeFile(xlsxName, func(w io.Writer) error { return WriteXLSX(w, req.Result) })
		if err != nil {
			return paths, err
		}
	}
	if req.Format.includes(FormatSQLite) {
		path := filepath.Join(req.Dir, DBName)
		id, err := writeDB(path, req.Result, req.Params)
		if err != nil {
			return paths, fmt.Errorf("%s: %w", DBName, err)
		}
		log.Debug().Str("path", path).Str("estimate_id", id).Msg("saved estimate")
		paths = append(paths, path)
	}
	return paths, nil
}

func writeDB(path string, res model.EstimateResult, p estimate.Params) (string, error) {
	s, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = s.Close() }()
	return s.SaveEstimate(res, p)
}
