package tabular

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the first worksheet of an Office Open XML workbook.
func parseXLSX(r io.Reader) (*Frame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoColumns
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return frameFromSheet(rows)
}

// parseXLS reads the first worksheet of a legacy BIFF workbook.
// The decoder panics on some malformed files, so panics become errors.
func parseXLS(r io.ReadSeeker) (frame *Frame, err error) {
	defer func() {
		if p := recover(); p != nil {
			frame, err = nil, fmt.Errorf("failed to decode xls: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoColumns
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}

	return frameFromSheet(rows)
}

// frameFromSheet treats the first non-blank row as the header and drops
// blank rows below it.
func frameFromSheet(rows [][]string) (*Frame, error) {
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, ErrNoColumns
	}

	header := trimTrailingEmpty(rows[start])
	data := make([][]string, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if isBlankRow(row) {
			continue
		}
		data = append(data, trimTrailingEmpty(row))
	}

	return newFrame(header, data)
}
