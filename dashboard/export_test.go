package dashboard

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	u := loadViewer(t).Update("1")
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, u))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Fits", "CONTRAST_SNR_mean", "ENERGY_SNR_mean", "CONTRAST_std", "ENERGY_SNR_std"}, f.GetSheetList())

	header, err := f.GetCellValue("Fits", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sensor 1", header)

	metric, err := f.GetCellValue("Fits", "A4")
	require.NoError(t, err)
	assert.Equal(t, "CONTRAST_SNR_mean", metric)

	rows, err := f.GetRows("CONTRAST_SNR_mean")
	require.NoError(t, err)
	require.Len(t, rows, 1+u.Rows)
	assert.Equal(t, []string{"recording_date", "CONTRAST_SNR_mean", "CONTRAST_SNR_mean_regression"}, rows[0])
	assert.Equal(t, "2023-01-01 00:00:00", rows[1][0])
	v, err := strconv.ParseFloat(rows[1][1], 64)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestWriteWorkbookEmptySelection(t *testing.T) {
	u := loadViewer(t).Update("missing")
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, u))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("ENERGY_SNR_std")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
