package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelWorkbook adapts an excelize file to the Workbook interface
type ExcelWorkbook struct {
	file *excelize.File
}

// OpenExcel opens an .xlsx workbook for tabular access
func OpenExcel(path string) (*ExcelWorkbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &ExcelWorkbook{file: file}, nil
}

// Sheets returns the worksheets in file order
func (w *ExcelWorkbook) Sheets() []Sheet {
	names := w.file.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		sheets = append(sheets, &excelSheet{file: w.file, name: name})
	}
	return sheets
}

// Close releases the underlying file handle
func (w *ExcelWorkbook) Close() error {
	return w.file.Close()
}

// excelSheet is one worksheet of an ExcelWorkbook
type excelSheet struct {
	file *excelize.File
	name string
}

func (s *excelSheet) Name() string {
	return s.name
}

func (s *excelSheet) Rows() ([][]string, error) {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", s.name, err)
	}
	return rows, nil
}
