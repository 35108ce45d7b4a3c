package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`)

// SensorReadingsQuery builds the SELECT used to pull the required columns
// from table, which may be schema-qualified.
func SensorReadingsQuery(table string) (string, error) {
	if !tableNamePattern.MatchString(table) {
		return "", errors.Errorf("invalid table name %q", table)
	}
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = "`" + p + "`"
	}
	cols := RequiredColumns()
	for i, c := range cols {
		cols[i] = "`" + c + "`"
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), strings.Join(parts, ".")), nil
}

// LoadMySQL reads the telemetry table through db. Values are fetched as text
// and cleaned exactly like CSV cells; NULL counts as missing.
func LoadMySQL(ctx context.Context, db *sql.DB, table string, opts LoadOptions) (*Dataset, error) {
	query, err := SensorReadingsQuery(table)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", table)
	}
	defer rows.Close()

	parser := rowParser{opts: opts}
	raw := make([]sql.NullString, len(RequiredColumns()))
	dest := make([]any, len(raw))
	for i := range raw {
		dest[i] = &raw[i]
	}
	cells := make([]string, len(raw))

	var records []Record
	dropped := 0
	row := 0
	for rows.Next() {
		row++
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scan row %d", row)
		}
		for i, v := range raw {
			cells[i] = nullToCell(v)
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
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows")
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(ErrEmptyDataset, "table %s, %d rows dropped", table, dropped)
	}
	return New(records, dropped), nil
}

func nullToCell(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
