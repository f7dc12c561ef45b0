package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
)

// XLSXSource reads rows from the first sheet of a workbook. The header row
// names the columns; unknown headers are ignored so upstream spreadsheet
// edits do not break the import.
type XLSXSource struct {
	path string
}

// NewXLSXSource builds a source over an .xlsx file path.
func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{path: path}
}

// Rows opens the workbook and converts every data row.
func (s *XLSXSource) Rows(_ context.Context) ([]application.SourceRow, error) {
	workbook, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s contains no sheets", s.path)
	}
	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return []application.SourceRow{}, nil
	}

	headers := make([]string, len(cells[0]))
	for i, header := range cells[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	rows := make([]application.SourceRow, 0, len(cells)-1)
	for _, line := range cells[1:] {
		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(line) {
				continue
			}
			values[header] = strings.TrimSpace(line[i])
		}
		rows = append(rows, rowFromValues(values))
	}
	return rows, nil
}
