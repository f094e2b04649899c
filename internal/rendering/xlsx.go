package rendering

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported results.
const SheetName = "Results"

func cellName(col, row int) (string, error) {
	return excelize.CoordinatesToCellName(col+1, row)
}

// WriteXLSX writes the header and rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return &RenderError{Format: "xlsx", Message: "failed to create sheet", Cause: err}
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for col, h := range Header {
		ref, err := cellName(col, 1)
		if err != nil {
			return &RenderError{Format: "xlsx", Message: "invalid header cell", Cause: err}
		}
		if err := f.SetCellValue(SheetName, ref, h); err != nil {
			return &RenderError{Format: "xlsx", Message: "failed to write header", Cause: err}
		}
	}

	for i, r := range rows {
		ref, err := cellName(0, i+2)
		if err != nil {
			return &RenderError{Format: "xlsx", Message: "invalid row cell", Cause: err}
		}
		values := r.Values()
		if err := f.SetSheetRow(SheetName, ref, &values); err != nil {
			return &RenderError{Format: "xlsx", Message: "failed to write row", Cause: err}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return &RenderError{Format: "xlsx", Message: "failed to write workbook", Cause: err}
	}
	return nil
}
