// Package excel extracts grids and chart-candidate series from XLSX
// workbooks.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/prestaforge/content-engine/internal/extract"
	"github.com/prestaforge/content-engine/internal/models"
	"github.com/prestaforge/content-engine/pkg/converters"
	"github.com/prestaforge/content-engine/pkg/logger"
)

const defaultChartType = "line"

type Extractor struct {
	logger logger.Logger
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

// Extract reads every sheet in workbook order. The first row is the
// header row, the rest the data grid; each sheet is re-emitted as a
// table tagged by sheet name. Chart candidates: the first column is the
// x-axis and every other column whose values are all numeric becomes a
// "<y> vs <x>" line series. Cell values cross the boundary as plain
// scalars only.
func (e *Extractor) Extract(source extract.Source) (result extract.Result) {
	result.Tables = []models.Table{}
	result.ChartSeries = []models.ChartSeries{}

	data, err := source.Bytes()
	if err != nil {
		return result.Fail(fmt.Errorf("read source: %w", err))
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		e.logger.Error("Failed to open workbook", logger.Error(err))
		return result.Fail(fmt.Errorf("open workbook: %w", err))
	}
	defer wb.Close()

	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			e.logger.Error("Failed to read sheet",
				logger.String("sheet", sheet),
				logger.Error(err),
			)
			return result.Fail(fmt.Errorf("sheet %q: %w", sheet, err))
		}

		headers, grid := splitHeader(rows)
		result.Tables = append(result.Tables, models.Table{
			Sheet:       sheet,
			Headers:     headers,
			Data:        grid,
			RowCount:    len(grid),
			ColumnCount: len(headers),
		})
		result.ChartSeries = append(result.ChartSeries, chartCandidates(sheet, headers, grid)...)
	}

	return result
}

// splitHeader separates the header row from the data grid and pads
// ragged rows to the header width so empty trailing cells keep their
// position.
func splitHeader(rows [][]string) ([]string, [][]string) {
	if len(rows) == 0 {
		return []string{}, [][]string{}
	}
	headers := rows[0]
	grid := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(headers))
		copy(padded, row)
		if len(row) > len(headers) {
			padded = row
		}
		grid = append(grid, padded)
	}
	return headers, grid
}

func chartCandidates(sheet string, headers []string, grid [][]string) []models.ChartSeries {
	series := []models.ChartSeries{}
	if len(headers) == 0 || len(grid) == 0 {
		return series
	}

	xLabel := headers[0]
	xData := converters.Scalars(column(grid, 0))

	for i, yLabel := range headers {
		// The x-axis column never charts against itself.
		if yLabel == xLabel {
			continue
		}
		col := column(grid, i)
		if !converters.NumericColumn(col) {
			continue
		}
		series = append(series, models.ChartSeries{
			Sheet: sheet,
			Title: fmt.Sprintf("%s vs %s", yLabel, xLabel),
			Type:  defaultChartType,
			XAxis: models.Axis{Label: xLabel, Data: xData},
			YAxis: models.Axis{Label: yLabel, Data: converters.NumericScalars(col)},
		})
	}
	return series
}

func column(grid [][]string, idx int) []string {
	col := make([]string, len(grid))
	for i, row := range grid {
		if idx < len(row) {
			col[i] = row[idx]
		}
	}
	return col
}
