package fetcher

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/indicator-cli/internal/frame"
)

// XLSXOptions configures the XLSX table reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // rows to skip before the header row
}

// ReadXLSXTable reads one sheet of an XLSX workbook into a frame. The first
// row after SkipRows is the header.
func ReadXLSXTable(path string, opts XLSXOptions) (*frame.Frame, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := pickSheet(file, opts)
	if err != nil {
		return nil, err
	}

	f := &frame.Frame{}
	for i, row := range sheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		if f.Columns == nil {
			f.Columns = cells
			continue
		}
		f.Rows = append(f.Rows, cells)
	}

	if f.Columns == nil {
		return nil, eris.Errorf("xlsx: sheet in %s has no header row", path)
	}

	return f, nil
}

func pickSheet(file *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := file.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(file.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(file.Sheets))
	}

	return file.Sheets[opts.SheetIndex], nil
}
