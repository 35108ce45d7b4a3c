package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// Load-time failures. Loaders wrap them with the offending column or row.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrBadDate       = errors.New("unparseable recording_date")
	ErrBadNumber     = errors.New("non-numeric or non-finite metric value")
	ErrEmptyDataset  = errors.New("no usable rows")
)

// naMarkers are the cell values treated as missing, following pandas'
// default na_values.
var naMarkers = mapset.NewSet(
	"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan", "null", "NULL",
	"None", "#N/A", "#N/A N/A", "<NA>", "#NA", "1.#IND", "-1.#IND", "1.#QNAN", "-1.#QNAN",
)

// IsMissing reports whether a raw cell value counts as a missing value.
func IsMissing(v string) bool {
	return naMarkers.Contains(strings.TrimSpace(v))
}

// DefaultDateLayouts are the recording_date formats tried when LoadOptions
// names none.
var DefaultDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// LoadOptions controls row parsing.
type LoadOptions struct {
	// DateLayouts are tried in order; the first that parses wins.
	DateLayouts []string
	// Location applies to layouts without a zone. Nil means UTC.
	Location *time.Location
}

func (o LoadOptions) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// rowParser turns raw text cells, ordered as RequiredColumns, into Records.
type rowParser struct {
	opts LoadOptions
}

// parse returns ok=false when the row holds a missing value and must be
// dropped. An error means the row is malformed and loading must stop.
func (p rowParser) parse(row int, cells []string) (rec Record, ok bool, err error) {
	cols := RequiredColumns()
	if len(cells) < len(cols) {
		return Record{}, false, nil
	}
	for _, c := range cells[:len(cols)] {
		if IsMissing(c) {
			return Record{}, false, nil
		}
	}

	rec.Row = row
	rec.SensorID = strings.TrimSpace(cells[0])
	rec.RecordingDate, err = p.parseDate(cells[1])
	if err != nil {
		return Record{}, false, errors.Wrapf(err, "row %d", row)
	}

	values := make([]float64, len(Metrics))
	for i, m := range Metrics {
		v, perr := strconv.ParseFloat(strings.TrimSpace(cells[2+i]), 64)
		if perr != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return Record{}, false, errors.Wrapf(ErrBadNumber, "row %d column %s value %q", row, m.Column(), cells[2+i])
		}
		values[i] = v
	}
	rec.ContrastSNRMean = values[ContrastSNRMean]
	rec.EnergySNRMean = values[EnergySNRMean]
	rec.ContrastStd = values[ContrastStd]
	rec.EnergySNRStd = values[EnergySNRStd]
	return rec, true, nil
}

func (p rowParser) parseDate(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	layouts := p.opts.DateLayouts
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, v, p.opts.location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrBadDate, "value %q", raw)
}
