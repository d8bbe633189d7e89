// Package common provides the delimited-file helpers shared by the store.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/budget-metrics/internal/logging"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the field separator used when none is configured.
const DefaultDelimiter = ','

// CSVFormat carries the delimiter and logger used for every file operation.
type CSVFormat struct {
	Delimiter rune
	Logger    logging.Logger
}

// NewCSVFormat creates a format, falling back to DefaultDelimiter for a zero rune.
func NewCSVFormat(delimiter rune, logger logging.Logger) CSVFormat {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return CSVFormat{Delimiter: delimiter, Logger: logger}
}

func (f CSVFormat) reader(file *os.File) *csv.Reader {
	r := csv.NewReader(file)
	r.Comma = f.Delimiter
	r.TrimLeadingSpace = true
	return r
}

func (f CSVFormat) open(filePath string) (*os.File, func(), error) {
	file, err := os.Open(filePath) // #nosec G304
	if err != nil {
		return nil, nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	closeFn := func() {
		if err := file.Close(); err != nil {
			f.Logger.WithError(err).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}
	return file, closeFn, nil
}

// Staged is a fully written temporary file waiting to replace its target.
type Staged struct {
	Temp   string
	Target string
}

// Commit moves the temporary file over its target.
func (s Staged) Commit() error {
	if err := os.Rename(s.Temp, s.Target); err != nil {
		return fmt.Errorf("error replacing %s: %w", s.Target, err)
	}
	return nil
}

// Discard removes the temporary file.
func (s Staged) Discard() {
	_ = os.Remove(s.Temp)
}

// CommitAll moves every staged file into place. A failure discards the
// temporary files not yet committed.
func CommitAll(staged []Staged) error {
	for i, s := range staged {
		if err := s.Commit(); err != nil {
			DiscardAll(staged[i:])
			return err
		}
	}
	return nil
}

// DiscardAll removes every temporary file.
func DiscardAll(staged []Staged) {
	for _, s := range staged {
		s.Discard()
	}
}

// stage writes a temporary file next to filePath through write. The
// temporary file is removed when anything fails.
func (f CSVFormat) stage(filePath string, write func(*csv.Writer) error) (staged Staged, err error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return Staged{}, fmt.Errorf("error creating directory: %w", err)
	}
	if info, err := os.Stat(filePath); err == nil && info.IsDir() {
		return Staged{}, fmt.Errorf("error creating CSV file: %s is a directory", filePath)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return Staged{}, fmt.Errorf("error creating temporary file: %w", err)
	}
	staged = Staged{Temp: file.Name(), Target: filePath}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing CSV file: %w", cerr)
		}
		if err != nil {
			staged.Discard()
			staged = Staged{}
		}
	}()

	w := csv.NewWriter(file)
	w.Comma = f.Delimiter
	if err := write(w); err != nil {
		return staged, fmt.Errorf("error writing CSV data: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return staged, fmt.Errorf("error writing CSV data: %w", err)
	}
	return staged, nil
}

// ReadCSVFile reads a headed CSV file into a slice of structs using gocsv.
// TCSVRow maps CSV columns through `csv` struct tags.
func ReadCSVFile[TCSVRow any](f CSVFormat, filePath string) ([]TCSVRow, error) {
	f.Logger.Debug("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, closeFn, err := f.open(filePath)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(f.reader(file), &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	f.Logger.Debug("Read CSV rows",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// StageCSVFile writes rows with a header derived from their `csv` tags to a
// temporary file next to filePath. Nothing replaces filePath until the
// returned Staged is committed.
func StageCSVFile[TCSVRow any](f CSVFormat, filePath string, rows []TCSVRow) (Staged, error) {
	staged, err := f.stage(filePath, func(w *csv.Writer) error {
		return gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(w))
	})
	if err != nil {
		return Staged{}, err
	}
	f.Logger.Debug("Staged CSV file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return staged, nil
}

// WriteCSVFile writes rows with a header derived from their `csv` tags,
// creating the parent directory when needed. The target is replaced only
// once the whole file is written.
func WriteCSVFile[TCSVRow any](f CSVFormat, filePath string, rows []TCSVRow) error {
	staged, err := StageCSVFile(f, filePath, rows)
	if err != nil {
		return err
	}
	if err := staged.Commit(); err != nil {
		staged.Discard()
		return err
	}

	f.Logger.Info("Wrote CSV file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

// ReadRecords reads every record of a CSV file whose columns are not known
// in advance.
func ReadRecords(f CSVFormat, filePath string) ([][]string, error) {
	file, closeFn, err := f.open(filePath)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	records, err := f.reader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return records, nil
}

// StageRecords writes raw records, first record being the header, to a
// temporary file next to filePath.
func StageRecords(f CSVFormat, filePath string, records [][]string) (Staged, error) {
	staged, err := f.stage(filePath, func(w *csv.Writer) error {
		return w.WriteAll(records)
	})
	if err != nil {
		return Staged{}, err
	}
	f.Logger.Debug("Staged CSV file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return staged, nil
}

// WriteRecords writes raw records, first record being the header.
func WriteRecords(f CSVFormat, filePath string, records [][]string) error {
	staged, err := StageRecords(f, filePath, records)
	if err != nil {
		return err
	}
	if err := staged.Commit(); err != nil {
		staged.Discard()
		return err
	}

	f.Logger.Info("Wrote CSV file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}
