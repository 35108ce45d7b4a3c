package dataset

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorReadingsQuery(t *testing.T) {
	q, err := SensorReadingsQuery("telemetry.sensor_readings")
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `sensor_id`, `recording_date`, `CONTRAST_SNR_mean`, `ENERGY_SNR_mean`, `CONTRAST_std`, `ENERGY_SNR_std` FROM `telemetry`.`sensor_readings`",
		q)

	for _, bad := range []string{"", "readings; DROP TABLE x", "a.b.c", "`quoted`"} {
		_, err := SensorReadingsQuery(bad)
		assert.Error(t, err, bad)
	}
}

func TestNullCellsAreMissing(t *testing.T) {
	assert.True(t, IsMissing(nullToCell(sql.NullString{})))
	assert.Equal(t, "2.5", nullToCell(sql.NullString{String: "2.5", Valid: true}))
}

func TestRowParserMySQLTimestamp(t *testing.T) {
	// database/sql renders parseTime values with RFC3339Nano.
	p := rowParser{}
	r, ok, err := p.parse(1, []string{"4", "2023-01-02T03:04:05.123Z", "1", "2", "3", "4"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2023, r.RecordingDate.Year())
	assert.Equal(t, 123000000, r.RecordingDate.Nanosecond())
}

func mockReadings(t *testing.T, rows *sqlmock.Rows) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	query, err := SensorReadingsQuery("sensor_readings")
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(rows)
	return db
}

func readingRows() *sqlmock.Rows {
	return sqlmock.NewRows(RequiredColumns())
}

func TestLoadMySQL(t *testing.T) {
	rows := readingRows().
		AddRow("2", "2023-01-01T00:00:00Z", "20", "0.4", "2.5", "0.04").
		AddRow("1", "2023-01-01T00:00:00Z", "10", "0.5", "1.5", "0.05").
		AddRow("2", "2023-01-02T00:00:00Z", nil, "0.41", "2.6", "0.05").
		AddRow("1", "2023-01-02T00:00:00Z", "11", "0.48", "1.4", "NA").
		AddRow("2", "2023-01-03T00:00:00Z", "18", "0.42", "2.4", "0.03")
	db := mockReadings(t, rows)

	ds, err := LoadMySQL(context.Background(), db, "sensor_readings", LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 2, ds.Dropped())
	assert.Equal(t, []string{"2", "1"}, ds.SensorIDs())

	two := ds.Filter("2")
	require.Len(t, two, 2)
	assert.Equal(t, 1, two[0].Row)
	assert.Equal(t, 5, two[1].Row)
	assert.Equal(t, 18.0, two[1].ContrastSNRMean)
}

func TestLoadMySQLAllDropped(t *testing.T) {
	rows := readingRows().
		AddRow("1", "2023-01-01T00:00:00Z", nil, "0.5", "1.5", "0.05")
	db := mockReadings(t, rows)

	_, err := LoadMySQL(context.Background(), db, "sensor_readings", LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyDataset), "got %v", err)
	assert.Contains(t, err.Error(), "1 rows dropped")
}

func TestLoadMySQLBadNumber(t *testing.T) {
	rows := readingRows().
		AddRow("1", "2023-01-01T00:00:00Z", "+Inf", "0.5", "1.5", "0.05")
	db := mockReadings(t, rows)

	_, err := LoadMySQL(context.Background(), db, "sensor_readings", LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadNumber), "got %v", err)
}

func TestLoadMySQLInvalidTable(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = LoadMySQL(context.Background(), db, "x; DROP TABLE y", LoadOptions{})
	assert.Error(t, err)
}
