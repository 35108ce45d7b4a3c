package dashboard

import (
	"io"

	"github.com/LilVoxy/sensor_dashboard/dataset"
	"github.com/LilVoxy/sensor_dashboard/linear_regression"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const fitsSheet = "Fits"

func cellName(col int, row int) string {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	name, err := excelize.JoinCellName(columnName, row)
	if err != nil {
		return ""
	}
	return name
}

// WriteWorkbook writes u as an XLSX workbook: a "Fits" sheet summarising each
// regression, then one sheet per metric with the raw and predicted values.
func WriteWorkbook(w io.Writer, u Update) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", fitsSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "create style")
	}

	_ = f.SetCellValue(fitsSheet, cellName(1, 1), u.Header)
	_ = f.SetCellStyle(fitsSheet, cellName(1, 1), cellName(1, 1), bold)
	fitHeaders := []string{"Metric", "Slope", "Intercept", "R", "R2", "Points", "Degenerate"}
	for i, h := range fitHeaders {
		_ = f.SetCellValue(fitsSheet, cellName(i+1, 3), h)
	}
	_ = f.SetCellStyle(fitsSheet, cellName(1, 3), cellName(len(fitHeaders), 3), bold)

	for i, fig := range u.Figures {
		row := 4 + i
		fit := fig.Fit
		values := []any{fig.Metric, fit.A, fit.B, fit.R, fit.R2, fit.N, fit.Degenerate}
		for col, v := range values {
			_ = f.SetCellValue(fitsSheet, cellName(col+1, row), v)
		}
		if err := writeFigureSheet(f, fig, bold); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func writeFigureSheet(f *excelize.File, fig Figure, bold int) error {
	sheet := fig.Metric
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "create sheet %s", sheet)
	}
	headers := []string{"recording_date", fig.Metric, fig.Metric + "_regression"}
	for i, h := range headers {
		_ = f.SetCellValue(sheet, cellName(i+1, 1), h)
	}
	_ = f.SetCellStyle(sheet, cellName(1, 1), cellName(len(headers), 1), bold)

	// Line is sorted by date, so predictions are re-evaluated per point.
	for i, p := range fig.Points {
		row := i + 2
		_ = f.SetCellValue(sheet, cellName(1, row), p.Date.Format("2006-01-02 15:04:05"))
		_ = f.SetCellValue(sheet, cellName(2, row), p.Y)
		_ = f.SetCellValue(sheet, cellName(3, row), linear_regression.Predict(fig.Fit, float64(dataset.OrdinalDay(p.Date))))
	}
	return nil
}
