package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// LoadCSV reads and cleans the telemetry CSV at path. Files ending in .sz or
// .snappy are decoded as snappy framed streams.
func LoadCSV(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	var r io.Reader = f
	if isSnappyPath(path) {
		r = snappy.NewReader(f)
	}
	ds, err := ReadCSV(r, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return ds, nil
}

func isSnappyPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".sz") || strings.HasSuffix(lower, ".snappy")
}

// ReadCSV parses a telemetry CSV stream. The header must name every required
// column; other columns are ignored. Rows with a missing value in any
// required column are dropped.
func ReadCSV(r io.Reader, opts LoadOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMissingColumn, "empty input")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	parser := rowParser{opts: opts}
	cells := make([]string, len(index))
	var records []Record
	dropped := 0
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read row %d", row)
		}
		for i, idx := range index {
			if idx < len(fields) {
				cells[i] = fields[idx]
			} else {
				cells[i] = ""
			}
		}
		rec, ok, err := parser.parse(row, cells)
		if err != nil {
			return nil, err
		}
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, errors.Wrapf(ErrEmptyDataset, "%d rows dropped", dropped)
	}
	return New(records, dropped), nil
}

// columnIndex maps each required column to its position in header.
func columnIndex(header []string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}
	required := RequiredColumns()
	index := make([]int, len(required))
	for i, col := range required {
		pos, ok := positions[col]
		if !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "%s", col)
		}
		index[i] = pos
	}
	return index, nil
}
